package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"textforge-api/core/domain"
	"textforge-api/core/workbench"
	"textforge-api/infrastructure/cache/memory"
	"textforge-api/infrastructure/cache/sqlite"
	"textforge-api/pkg/config"
	"textforge-api/pkg/featureflags"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

type fakeRunner struct{}

func (fakeRunner) Run(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	return input, nil
}

func (fakeRunner) LookPath(name string) (string, error) { return "/usr/bin/" + name, nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	return cfg
}

func TestNew_DefaultsToMemoryCache(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg, featureflags.NewStaticManager(nil))
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &memory.MemoryCache{}, app.Deps.Cache)
	assert.NotNil(t, app.Deps.Logger)
	assert.NotNil(t, app.Deps.Runner)

	out, err := app.Service.Format(context.Background(), `{"a":1}`, domain.FormatJSON, false)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1\n}", out.Content)
}

func TestNewLogger(t *testing.T) {
	for _, backend := range []string{"", "logrus", "zap"} {
		l, closeFn, err := NewLogger(config.LogConfig{Backend: backend, Level: "warn", Format: "json"})
		require.NoError(t, err, backend)
		assert.NotNil(t, l)
		assert.NoError(t, closeFn())
	}

	_, _, err := NewLogger(config.LogConfig{Backend: "syslog"})
	assert.Error(t, err)
}

func TestNewCache(t *testing.T) {
	cache, closeFn := NewCache(config.CacheConfig{Type: "none"}, nopLogger{})
	assert.Nil(t, cache)
	assert.Nil(t, closeFn)

	path := filepath.Join(t.TempDir(), "cache.db")
	cache, closeFn = NewCache(config.CacheConfig{Type: "sqlite", SQLitePath: path}, nopLogger{})
	require.NotNil(t, closeFn)
	assert.IsType(t, &sqlite.Client{}, cache)
	assert.NoError(t, closeFn())

	cache, _ = NewCache(config.CacheConfig{Type: "redis", Redis: config.RedisConfig{Address: "127.0.0.1:1"}}, nopLogger{})
	assert.IsType(t, &memory.MemoryCache{}, cache)
}

func TestNewFormatter_ExternalFormattersFlag(t *testing.T) {
	cfg := config.FormatterConfig{PythonFormatter: "command", PythonCommand: []string{"autopep8", "-"}}
	ctx := context.Background()

	off := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.ExternalFormatters: false})
	f, err := NewFormatter(cfg, off, fakeRunner{}, nopLogger{})
	require.NoError(t, err)
	out, err := f.Format(ctx, "    x = 1\n", domain.FormatPython)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", out)

	on := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.ExternalFormatters: true})
	f, err = NewFormatter(cfg, on, fakeRunner{}, nopLogger{})
	require.NoError(t, err)
	out, err = f.Format(ctx, "    x = 1\n", domain.FormatPython)
	require.NoError(t, err)
	assert.Equal(t, "    x = 1\n", out)

	_, err = NewFormatter(config.FormatterConfig{SQLFormatter: "sqlfluff"}, off, nil, nopLogger{})
	assert.Error(t, err)
}

func TestNew_FormatBatchUsesPool(t *testing.T) {
	cfg := testConfig(t)
	cfg.Limits.BatchWorkers = 2

	app, err := New(cfg, featureflags.NewStaticManager(nil))
	require.NoError(t, err)

	results, err := app.Service.FormatBatch(context.Background(), []workbench.BatchItem{
		{Name: "a", Content: "[1]", Format: "json"},
		{Name: "b", Content: "x:   1", Format: "yaml"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "x: 1\n", results[1].Result.Content)

	require.NoError(t, app.Close())
}
