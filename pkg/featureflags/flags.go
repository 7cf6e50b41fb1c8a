// ABOUTME: Feature flags switch optional workbench behavior on or off at runtime
// ABOUTME: Flags come from FEATURE_* environment variables or a fixed map, with per-process overrides

package featureflags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FeatureFlag names one switch; the env variable is the prefix plus the
// upper-cased name
type FeatureFlag string

const (
	// CacheEnabled memoizes rendered results in the configured cache
	CacheEnabled FeatureFlag = "cache_enabled"

	// RateLimitEnabled throttles each client IP
	RateLimitEnabled FeatureFlag = "rate_limit_enabled"

	// MarkdownPreview serves POST /markdown/preview
	MarkdownPreview FeatureFlag = "markdown_preview"

	// ExternalFormatters lets formatter strategies run local commands
	ExternalFormatters FeatureFlag = "external_formatters"
)

// AllFlags lists every defined flag
var AllFlags = []FeatureFlag{CacheEnabled, RateLimitEnabled, MarkdownPreview, ExternalFormatters}

// Defaults apply when a flag has no environment value
var Defaults = map[FeatureFlag]bool{
	CacheEnabled:       true,
	RateLimitEnabled:   true,
	MarkdownPreview:    true,
	ExternalFormatters: false,
}

// Manager answers flag lookups for the service and the HTTP layer
type Manager interface {
	IsEnabled(ctx context.Context, flag FeatureFlag) bool
	// SetEnabled pins a flag for the life of the process
	SetEnabled(flag FeatureFlag, enabled bool)
	GetAllFlags() map[FeatureFlag]bool
}

// parseBool accepts true, 1 and enabled in any case; anything else is off
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "enabled":
		return true
	}
	return false
}

// EnvManager reads flags from the environment on every lookup, so a flag
// can change without a restart. SetEnabled overrides win over the env.
type EnvManager struct {
	prefix string

	mu        sync.RWMutex
	overrides map[FeatureFlag]bool
}

// NewEnvManager reads variables named prefix+FLAG; an empty prefix means
// FEATURE_
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "FEATURE_"
	}
	return &EnvManager{prefix: prefix, overrides: make(map[FeatureFlag]bool)}
}

func (m *EnvManager) override(flag FeatureFlag) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	enabled, ok := m.overrides[flag]
	return enabled, ok
}

// IsEnabled implements Manager
func (m *EnvManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	if enabled, ok := m.override(flag); ok {
		return enabled
	}
	value, ok := os.LookupEnv(m.prefix + strings.ToUpper(string(flag)))
	if !ok || value == "" {
		return Defaults[flag]
	}
	return parseBool(value)
}

// SetEnabled implements Manager
func (m *EnvManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[flag] = enabled
}

// GetAllFlags resolves every flag in AllFlags
func (m *EnvManager) GetAllFlags() map[FeatureFlag]bool {
	flags := make(map[FeatureFlag]bool, len(AllFlags))
	for _, flag := range AllFlags {
		flags[flag] = m.IsEnabled(context.Background(), flag)
	}
	return flags
}

// StaticManager serves a fixed map; flags missing from it are off
type StaticManager struct {
	mu    sync.RWMutex
	flags map[FeatureFlag]bool
}

// NewStaticManager wraps flags, which may be nil
func NewStaticManager(flags map[FeatureFlag]bool) *StaticManager {
	if flags == nil {
		flags = make(map[FeatureFlag]bool)
	}
	return &StaticManager{flags: flags}
}

// IsEnabled implements Manager
func (m *StaticManager) IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[flag]
}

// SetEnabled implements Manager
func (m *StaticManager) SetEnabled(flag FeatureFlag, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[flag] = enabled
}

// GetAllFlags returns a copy of the map
func (m *StaticManager) GetAllFlags() map[FeatureFlag]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[FeatureFlag]bool, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

type contextKey struct{}

// WithManager attaches manager to ctx
func WithManager(ctx context.Context, manager Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, manager)
}

// FromContext returns the attached manager, or one holding Defaults
func FromContext(ctx context.Context) Manager {
	if manager, ok := ctx.Value(contextKey{}).(Manager); ok {
		return manager
	}
	defaults := make(map[FeatureFlag]bool, len(Defaults))
	for k, v := range Defaults {
		defaults[k] = v
	}
	return NewStaticManager(defaults)
}

// IsEnabled looks flag up through the manager attached to ctx
func IsEnabled(ctx context.Context, flag FeatureFlag) bool {
	return FromContext(ctx).IsEnabled(ctx, flag)
}
