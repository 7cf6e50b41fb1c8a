// ABOUTME: Format adapters map raw text to its canonical pretty-printed form
// ABOUTME: Dispatch is a closed table keyed by FormatKind with injected strategies

package formatter

import (
	"context"
	"fmt"

	"textforge-api/core/document"
	"textforge-api/core/domain"
	coreerrors "textforge-api/core/errors"
)

const (
	jsonIndent = "    "
	yamlIndent = 4
)

type adapter func(ctx context.Context, text string) (string, error)

// Formatter dispatches raw content to the adapter for its format
type Formatter struct {
	strategies Strategies
	adapters   map[domain.FormatKind]adapter
}

// New creates a Formatter. Missing strategies fall back to the defaults.
func New(strategies Strategies) *Formatter {
	defaults := DefaultStrategies()
	if strategies.TOML == nil {
		strategies.TOML = defaults.TOML
	}
	if strategies.SQL == nil {
		strategies.SQL = defaults.SQL
	}
	if strategies.Python == nil {
		strategies.Python = defaults.Python
	}
	if strategies.CSVDelimiter == 0 {
		strategies.CSVDelimiter = defaults.CSVDelimiter
	}

	f := &Formatter{strategies: strategies}
	f.adapters = map[domain.FormatKind]adapter{
		domain.FormatJSON:     pure(FormatJSON),
		domain.FormatXML:      pure(FormatXML),
		domain.FormatYAML:     pure(FormatYAML),
		domain.FormatCSV:      f.formatCSV,
		domain.FormatTOML:     f.formatTOML,
		domain.FormatINI:      pure(FormatINI),
		domain.FormatMarkdown: pure(func(s string) (string, error) { return FormatMarkdown(s), nil }),
		domain.FormatHTML:     pure(FormatHTML),
		domain.FormatSQL:      f.formatSQL,
		domain.FormatPython:   f.strategies.Python.FormatPython,
	}
	return f
}

func pure(fn func(string) (string, error)) adapter {
	return func(_ context.Context, text string) (string, error) {
		return fn(text)
	}
}

// Format canonicalizes text according to kind
func (f *Formatter) Format(ctx context.Context, text string, kind domain.FormatKind) (string, error) {
	fn, ok := f.adapters[kind]
	if !ok {
		return "", coreerrors.NewUnsupported("format", fmt.Sprintf("unknown format %q", kind))
	}
	return fn(ctx, text)
}

// Supports reports whether an adapter is registered for kind
func (f *Formatter) Supports(kind domain.FormatKind) bool {
	_, ok := f.adapters[kind]
	return ok
}

// Strategies returns the strategies in use
func (f *Formatter) Strategies() Strategies {
	return f.strategies
}

func (f *Formatter) formatCSV(_ context.Context, text string) (string, error) {
	return FormatCSV(text, f.strategies.CSVDelimiter)
}

func (f *Formatter) formatTOML(_ context.Context, text string) (string, error) {
	return FormatTOML(text, f.strategies.TOML)
}

func (f *Formatter) formatSQL(_ context.Context, text string) (string, error) {
	return f.strategies.SQL.FormatSQL(text)
}

// FormatJSON re-serializes JSON with 4-space indentation, keeping key order
// and number literals
func FormatJSON(text string) (string, error) {
	v, err := document.DecodeJSON(text)
	if err != nil {
		return "", err
	}
	return document.EncodeJSON(v, jsonIndent)
}

// FormatYAML re-dumps a single YAML document in block style
func FormatYAML(text string) (string, error) {
	v, err := document.DecodeYAML(text)
	if err != nil {
		return "", err
	}
	return document.EncodeYAML(v, yamlIndent)
}

// FormatTOML parses TOML and hands the data to writer
func FormatTOML(text string, writer TOMLWriter) (string, error) {
	v, err := document.DecodeTOML(text)
	if err != nil {
		return "", err
	}
	return writer.WriteTOML(v)
}
