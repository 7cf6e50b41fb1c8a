// ABOUTME: Injected capabilities for formats whose preferred formatter may be unavailable
// ABOUTME: Strategies are chosen once at startup so the adapters never branch on availability

package formatter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"textforge-api/core/document"
	coreerrors "textforge-api/core/errors"
	"textforge-api/core/interfaces"
	"textforge-api/pkg/utils/text"
)

// TOMLWriter serializes parsed TOML data
type TOMLWriter interface {
	Name() string
	WriteTOML(data any) (string, error)
}

// SQLFormatter rewrites SQL text
type SQLFormatter interface {
	Name() string
	FormatSQL(sql string) (string, error)
}

// PythonFormatter rewrites Python source
type PythonFormatter interface {
	Name() string
	FormatPython(ctx context.Context, source string) (string, error)
}

// Strategies bundles the per-format capabilities used by a Formatter
type Strategies struct {
	TOML   TOMLWriter
	SQL    SQLFormatter
	Python PythonFormatter
	// CSVDelimiter is the input field separator; output always uses a comma
	CSVDelimiter rune
}

// DefaultStrategies uses only in-process implementations
func DefaultStrategies() Strategies {
	return Strategies{
		TOML:         GoTOMLWriter{},
		SQL:          ReindentSQL{},
		Python:       DedentPython{},
		CSVDelimiter: ',',
	}
}

// StrategyConfig names the strategies to select at startup
type StrategyConfig struct {
	TOMLWriter      string
	SQLFormatter    string
	PythonFormatter string
	PythonCommand   []string
	PythonTimeout   time.Duration
	CSVDelimiter    rune
}

// NewStrategies resolves configured strategy names. A command-based Python
// formatter whose executable cannot be found degrades to dedent with a warning.
func NewStrategies(cfg StrategyConfig, runner interfaces.CommandRunner, logger interfaces.Logger) (Strategies, error) {
	s := DefaultStrategies()

	switch strings.ToLower(cfg.TOMLWriter) {
	case "", "toml":
	case "json":
		s.TOML = JSONFallbackWriter{}
	default:
		return s, fmt.Errorf("unknown TOML writer %q", cfg.TOMLWriter)
	}

	switch strings.ToLower(cfg.SQLFormatter) {
	case "", "reindent":
	case "naive":
		s.SQL = NaiveSQL{}
	default:
		return s, fmt.Errorf("unknown SQL formatter %q", cfg.SQLFormatter)
	}

	switch strings.ToLower(cfg.PythonFormatter) {
	case "", "dedent":
	case "command":
		python, err := newCommandPython(cfg, runner)
		if err != nil {
			if logger != nil {
				logger.Warn("Python formatter unavailable, falling back to dedent", map[string]interface{}{
					"error": err.Error(),
				})
			}
			break
		}
		s.Python = python
	default:
		return s, fmt.Errorf("unknown Python formatter %q", cfg.PythonFormatter)
	}

	if cfg.CSVDelimiter != 0 {
		s.CSVDelimiter = cfg.CSVDelimiter
	}
	return s, nil
}

func newCommandPython(cfg StrategyConfig, runner interfaces.CommandRunner) (*CommandPython, error) {
	if runner == nil {
		return nil, errors.New("no command runner configured")
	}
	command := cfg.PythonCommand
	if len(command) == 0 {
		command = []string{"autopep8", "-"}
	}
	path, err := runner.LookPath(command[0])
	if err != nil {
		return nil, err
	}
	return &CommandPython{
		Runner:  runner,
		Command: path,
		Args:    command[1:],
		Timeout: cfg.PythonTimeout,
	}, nil
}

// GoTOMLWriter writes canonical TOML with go-toml
type GoTOMLWriter struct{}

// Name implements TOMLWriter
func (GoTOMLWriter) Name() string { return "toml" }

// WriteTOML implements TOMLWriter
func (GoTOMLWriter) WriteTOML(data any) (string, error) {
	return document.EncodeTOML(data)
}

// JSONFallbackWriter renders TOML data as 4-space indented JSON
type JSONFallbackWriter struct{}

// Name implements TOMLWriter
func (JSONFallbackWriter) Name() string { return "json" }

// WriteTOML implements TOMLWriter
func (JSONFallbackWriter) WriteTOML(data any) (string, error) {
	return document.EncodeJSON(data, jsonIndent)
}

// ReindentSQL upper-cases keywords and puts each clause on its own line
type ReindentSQL struct{}

// Name implements SQLFormatter
func (ReindentSQL) Name() string { return "reindent" }

// FormatSQL implements SQLFormatter
func (ReindentSQL) FormatSQL(sql string) (string, error) {
	return reindentSQL(sql), nil
}

// naiveKeywords matches the fixed keyword list in any letter case
var naiveKeywords = regexp.MustCompile(`(?i)select|from|where|join|insert|update|delete`)

// NaiveSQL upper-cases a fixed keyword list by plain substring replacement.
// It is lossy: identifiers containing those words are rewritten too.
type NaiveSQL struct{}

// Name implements SQLFormatter
func (NaiveSQL) Name() string { return "naive" }

// FormatSQL implements SQLFormatter
func (NaiveSQL) FormatSQL(sql string) (string, error) {
	return naiveKeywords.ReplaceAllStringFunc(sql, strings.ToUpper), nil
}

// CommandPython pipes source through an external style fixer
type CommandPython struct {
	Runner  interfaces.CommandRunner
	Command string
	Args    []string
	Timeout time.Duration
}

// Name implements PythonFormatter
func (c *CommandPython) Name() string { return "command" }

// FormatPython implements PythonFormatter
func (c *CommandPython) FormatPython(ctx context.Context, source string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	out, err := c.Runner.Run(ctx, []byte(source), c.Command, c.Args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", coreerrors.WrapError(ctxErr, "python formatter")
		}
		return "", &coreerrors.ParseError{Format: "Python", Message: err.Error(), Cause: err}
	}
	return string(out), nil
}

// DedentPython removes common leading whitespace only
type DedentPython struct{}

// Name implements PythonFormatter
func (DedentPython) Name() string { return "dedent" }

// FormatPython implements PythonFormatter
func (DedentPython) FormatPython(_ context.Context, source string) (string, error) {
	return text.Dedent(source), nil
}
