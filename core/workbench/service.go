// ABOUTME: Workbench service is the entry point every surface uses for format, validate, tree, diff and convert
// ABOUTME: Checks input preconditions, memoizes results in the cache and logs each operation

package workbench

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"textforge-api/core/convert"
	"textforge-api/core/diff"
	"textforge-api/core/domain"
	coreerrors "textforge-api/core/errors"
	"textforge-api/core/formatter"
	"textforge-api/core/interfaces"
	"textforge-api/core/tree"
	"textforge-api/core/validator"
	"textforge-api/core/workers"
	"textforge-api/pkg/featureflags"
)

// Precondition messages shown to users
const (
	MsgContentRequired = "Please provide content."
	MsgDiffRequired    = "Please provide both original and modified content."
	MsgSchemaRequired  = "Please provide a JSON Schema to validate against."
	MsgXSDRequired     = "Please provide an XSD Schema to validate against."
)

// Config holds the service limits
type Config struct {
	// CacheTTL is how long memoized results live; zero keeps them indefinitely
	CacheTTL time.Duration
	// TreeMaxDepth bounds tree nesting; zero uses the builder default
	TreeMaxDepth int
	// MaxContentBytes rejects larger inputs; zero disables the check
	MaxContentBytes int
	// MaxBatchItems bounds FormatBatch; zero uses DefaultMaxBatchItems
	MaxBatchItems int
	// Pool runs batch items concurrently; nil runs them in order
	Pool *workers.Pool
}

// DefaultMaxBatchItems is the largest batch FormatBatch accepts by default
const DefaultMaxBatchItems = 100

// Service runs core operations on raw text
type Service struct {
	deps      interfaces.Dependencies
	formatter *formatter.Formatter
	trees     *tree.Builder
	flags     featureflags.Manager
	cfg       Config
}

// NewService creates a new workbench service instance. A nil formatter uses
// the default strategies and a nil flag manager uses the flag defaults.
func NewService(deps interfaces.Dependencies, f *formatter.Formatter, flags featureflags.Manager, cfg Config) *Service {
	if f == nil {
		f = formatter.New(formatter.DefaultStrategies())
	}
	if flags == nil {
		flags = featureflags.FromContext(context.Background())
	}
	return &Service{
		deps:      deps,
		formatter: f,
		trees:     tree.NewBuilder(cfg.TreeMaxDepth),
		flags:     flags,
		cfg:       cfg,
	}
}

// FormatResult is formatted content and, when requested and supported, its tree
type FormatResult struct {
	Content string       `json:"content"`
	Format  string       `json:"format"`
	Tree    *tree.Result `json:"tree,omitempty"`
}

// Format pretty-prints content as kind, optionally building its tree
func (s *Service) Format(ctx context.Context, content string, kind domain.FormatKind, withTree bool) (*FormatResult, error) {
	if err := s.requireContent("content", content); err != nil {
		return nil, err
	}

	return cached(ctx, s, "format", []string{string(kind), fmt.Sprint(withTree), content}, func() (*FormatResult, error) {
		out, err := s.formatter.Format(ctx, content, kind)
		if err != nil {
			return nil, err
		}
		result := &FormatResult{Content: out, Format: kind.DisplayName()}
		if withTree && kind.SupportsTree() {
			t, err := s.trees.Build(content, kind)
			if err != nil {
				return nil, err
			}
			result.Tree = t
		}
		return result, nil
	})
}

// BatchItem is one document of a batch
type BatchItem struct {
	Name    string
	Content string
	Format  string
}

// BatchResult is the outcome for the item at the same index
type BatchResult struct {
	Name   string
	Result *FormatResult
	Err    error
}

// FormatBatch formats every item, on the pool when one is configured.
// Item failures are reported per item; the returned error is only for the
// batch as a whole.
func (s *Service) FormatBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, &coreerrors.PreconditionError{Field: "items", Message: MsgContentRequired}
	}
	limit := s.cfg.MaxBatchItems
	if limit <= 0 {
		limit = DefaultMaxBatchItems
	}
	if len(items) > limit {
		return nil, &coreerrors.PreconditionError{
			Field:   "items",
			Message: fmt.Sprintf("batch exceeds %d items", limit),
		}
	}

	results := make([]BatchResult, len(items))
	formatOne := func(ctx context.Context, i int) {
		item := items[i]
		results[i].Name = item.Name
		kind, err := domain.ParseFormatKind(item.Format)
		if err != nil {
			results[i].Err = coreerrors.NewUnsupported("format", err.Error())
			return
		}
		results[i].Result, results[i].Err = s.Format(ctx, item.Content, kind, false)
	}

	if s.cfg.Pool == nil {
		for i := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			formatOne(ctx, i)
		}
	} else if err := s.cfg.Pool.Map(ctx, len(items), formatOne); err != nil {
		return nil, err
	}

	if s.deps.Logger != nil {
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		s.deps.Logger.Debug("Formatted batch", map[string]interface{}{
			"items":  len(items),
			"failed": failed,
		})
	}
	return results, nil
}

// PreviewMarkdown renders Markdown to HTML for preview
func (s *Service) PreviewMarkdown(ctx context.Context, content string) (string, error) {
	if !s.flags.IsEnabled(ctx, featureflags.MarkdownPreview) {
		return "", coreerrors.NewUnsupported("markdown preview", "disabled by feature flag")
	}
	if err := s.requireContent("content", content); err != nil {
		return "", err
	}
	return cached(ctx, s, "preview", []string{content}, func() (string, error) {
		return formatter.RenderMarkdown(content)
	})
}

// ValidateJSONSchema validates a JSON instance against a JSON Schema
func (s *Service) ValidateJSONSchema(ctx context.Context, content, schema string) (*domain.Report, error) {
	if err := s.requireContent("content", content); err != nil {
		return nil, err
	}
	if strings.TrimSpace(schema) == "" {
		return nil, &coreerrors.PreconditionError{Field: "schema", Message: MsgSchemaRequired}
	}
	report, err := validator.ValidateJSONSchema(content, schema)
	s.logReport("json-schema", report, err)
	return report, err
}

// ValidateXSD validates an XML document against an XSD
func (s *Service) ValidateXSD(ctx context.Context, content, schema string) (*domain.Report, error) {
	if err := s.requireContent("content", content); err != nil {
		return nil, err
	}
	if strings.TrimSpace(schema) == "" {
		return nil, &coreerrors.PreconditionError{Field: "schema", Message: MsgXSDRequired}
	}
	report, err := validator.ValidateXMLXSD(content, schema)
	s.logReport("xsd", report, err)
	return report, err
}

// LintYAML runs the YAML lint rules
func (s *Service) LintYAML(ctx context.Context, content string) (*domain.Report, error) {
	if err := s.requireContent("content", content); err != nil {
		return nil, err
	}
	report := validator.LintYAML(content)
	s.logReport("yaml-lint", report, nil)
	return report, nil
}

// Tree builds the structural tree of content
func (s *Service) Tree(ctx context.Context, content string, kind domain.FormatKind) (*tree.Result, error) {
	if err := s.requireContent("content", content); err != nil {
		return nil, err
	}
	return cached(ctx, s, "tree", []string{string(kind), content}, func() (*tree.Result, error) {
		return s.trees.Build(content, kind)
	})
}

// DiffMode selects how a diff is rendered
type DiffMode string

// Diff modes
const (
	DiffUnified     DiffMode = "unified"
	DiffUnifiedHTML DiffMode = "unified-html"
	DiffSideBySide  DiffMode = "side-by-side"
	DiffTable       DiffMode = "table"
)

// DiffModes lists every mode
var DiffModes = []DiffMode{DiffUnified, DiffUnifiedHTML, DiffSideBySide, DiffTable}

// DiffRequest describes a comparison
type DiffRequest struct {
	Original  string   `json:"original"`
	Modified  string   `json:"modified"`
	Mode      DiffMode `json:"mode"`
	// Context is unified context; nil means diff.DefaultContext
	Context   *int   `json:"context,omitempty"`
	FromLabel string `json:"from_label"`
	ToLabel   string `json:"to_label"`
	// ContextOnly collapses unchanged runs in table mode
	ContextOnly bool `json:"context_only"`
	// NumLines is table mode windowing; nil means diff.DefaultNumLines
	NumLines *int `json:"numlines,omitempty"`
}

func (r DiffRequest) contextLines() int {
	if r.Context == nil {
		return diff.DefaultContext
	}
	return *r.Context
}

func (r DiffRequest) numLines() int {
	if r.NumLines == nil {
		return diff.DefaultNumLines
	}
	return *r.NumLines
}

// DiffResult is the rendered diff and the structure behind it
type DiffResult struct {
	Mode    DiffMode               `json:"mode"`
	Output  string                 `json:"output"`
	Opcodes []domain.Opcode        `json:"opcodes"`
	Hunks   []domain.Hunk          `json:"hunks,omitempty"`
	Rows    []domain.SideBySideRow `json:"rows,omitempty"`
}

// Diff compares two texts. Either side being blank is a precondition
// failure.
func (s *Service) Diff(ctx context.Context, req DiffRequest) (*DiffResult, error) {
	if strings.TrimSpace(req.Original) == "" || strings.TrimSpace(req.Modified) == "" {
		return nil, &coreerrors.PreconditionError{Message: MsgDiffRequired}
	}
	if err := s.checkSize(req.Original); err != nil {
		return nil, err
	}
	if err := s.checkSize(req.Modified); err != nil {
		return nil, err
	}
	if req.Mode == "" {
		req.Mode = DiffUnified
	}

	key := []string{string(req.Mode), fmt.Sprint(req.contextLines()), req.FromLabel, req.ToLabel,
		fmt.Sprint(req.ContextOnly), fmt.Sprint(req.numLines()), req.Original, req.Modified}
	return cached(ctx, s, "diff", key, func() (*DiffResult, error) {
		return runDiff(req)
	})
}

func runDiff(req DiffRequest) (*DiffResult, error) {
	opts := diff.UnifiedOptions{FromLabel: req.FromLabel, ToLabel: req.ToLabel, Context: req.contextLines()}
	result := &DiffResult{Mode: req.Mode}

	switch req.Mode {
	case DiffUnified, DiffUnifiedHTML:
		render := diff.Unified
		if req.Mode == DiffUnifiedHTML {
			render = diff.UnifiedHTML
		}
		u := render(req.Original, req.Modified, opts)
		result.Output, result.Hunks, result.Opcodes = u.Text, u.Hunks, u.Opcodes
	case DiffSideBySide:
		sbs := diff.SideBySide(req.Original, req.Modified)
		result.Output, result.Rows = sbs.HTML, sbs.Rows
		result.Opcodes = diff.LineOpcodes(req.Original, req.Modified)
	case DiffTable:
		result.Output = diff.Table(req.Original, req.Modified, diff.TableOptions{
			FromDesc: req.FromLabel,
			ToDesc:   req.ToLabel,
			Context:  req.ContextOnly,
			NumLines: req.numLines(),
		})
		result.Opcodes = diff.LineOpcodes(req.Original, req.Modified)
	default:
		return nil, coreerrors.NewUnsupported("diff", fmt.Sprintf("unknown mode %q", req.Mode))
	}
	return result, nil
}

// Convert transforms content between formats
func (s *Service) Convert(ctx context.Context, content, from, to string, opts convert.Options) (*convert.Result, error) {
	if err := s.requireContent("content", content); err != nil {
		return nil, err
	}
	key := []string{from, to, opts.RootName, fmt.Sprint(opts.InferTypes, opts.UnwrapRoot, opts.Lenient), content}
	result, err := cached(ctx, s, "convert", key, func() (*convert.Result, error) {
		return convert.Convert(content, from, to, opts)
	})
	if err == nil && len(result.Warnings) > 0 && s.deps.Logger != nil {
		s.deps.Logger.Warn("Conversion produced warnings", map[string]interface{}{
			"from":     from,
			"to":       to,
			"warnings": len(result.Warnings),
		})
	}
	return result, err
}

func (s *Service) requireContent(field, content string) error {
	if strings.TrimSpace(content) == "" {
		return &coreerrors.PreconditionError{Field: field, Message: MsgContentRequired}
	}
	return s.checkSize(content)
}

func (s *Service) checkSize(content string) error {
	if s.cfg.MaxContentBytes > 0 && len(content) > s.cfg.MaxContentBytes {
		return &coreerrors.PreconditionError{
			Field:   "content",
			Message: fmt.Sprintf("content exceeds %d bytes", s.cfg.MaxContentBytes),
		}
	}
	return nil
}

func (s *Service) logReport(check string, report *domain.Report, err error) {
	if s.deps.Logger == nil {
		return
	}
	if err != nil {
		s.deps.Logger.Debug("Validation input rejected", map[string]interface{}{
			"check": check,
			"error": err.Error(),
		})
		return
	}
	s.deps.Logger.Debug("Validation finished", map[string]interface{}{
		"check":       check,
		"valid":       report.Valid,
		"diagnostics": len(report.Diagnostics),
	})
}

// cacheKey digests the operation and its inputs
func cacheKey(op string, parts []string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return op + ":" + hex.EncodeToString(h.Sum(nil))
}

// cached memoizes compute through the cache when caching is enabled.
// Failures are never cached and cache errors only cost a recomputation.
func cached[T any](ctx context.Context, s *Service, op string, parts []string, compute func() (T, error)) (T, error) {
	if s.deps.Cache == nil || !s.flags.IsEnabled(ctx, featureflags.CacheEnabled) {
		return compute()
	}

	key := cacheKey(op, parts)
	if data, err := s.deps.Cache.Get(ctx, key); err == nil && data != nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			if s.deps.Logger != nil {
				s.deps.Logger.Debug("Cache hit", map[string]interface{}{"op": op})
			}
			return v, nil
		}
	}

	v, err := compute()
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := s.deps.Cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil && s.deps.Logger != nil {
			s.deps.Logger.Warn("Failed to cache result", map[string]interface{}{
				"op":    op,
				"error": err.Error(),
			})
		}
	}
	return v, nil
}
