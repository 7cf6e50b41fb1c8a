// ABOUTME: Workbench handlers for the Huma API
// ABOUTME: Provides HTTP endpoints for formatting, validation, trees, diffs and conversions

package handlers

import (
	"context"
	"net/http"

	"textforge-api/api/dto/mappers"
	"textforge-api/api/dto/requests"
	"textforge-api/api/dto/responses"
	"textforge-api/core/convert"
	"textforge-api/core/domain"
	coreerrors "textforge-api/core/errors"
	"textforge-api/core/interfaces"
	"textforge-api/core/tree"
	"textforge-api/core/workbench"

	"github.com/danielgtaylor/huma/v2"
)

// WorkbenchService interface defines the methods needed from the workbench service
type WorkbenchService interface {
	Format(ctx context.Context, content string, kind domain.FormatKind, withTree bool) (*workbench.FormatResult, error)
	FormatBatch(ctx context.Context, items []workbench.BatchItem) ([]workbench.BatchResult, error)
	PreviewMarkdown(ctx context.Context, content string) (string, error)
	ValidateJSONSchema(ctx context.Context, content, schema string) (*domain.Report, error)
	ValidateXSD(ctx context.Context, content, schema string) (*domain.Report, error)
	LintYAML(ctx context.Context, content string) (*domain.Report, error)
	Tree(ctx context.Context, content string, kind domain.FormatKind) (*tree.Result, error)
	Diff(ctx context.Context, req workbench.DiffRequest) (*workbench.DiffResult, error)
	Convert(ctx context.Context, content, from, to string, opts convert.Options) (*convert.Result, error)
}

// WorkbenchHandler handles workbench HTTP requests
type WorkbenchHandler struct {
	service WorkbenchService
	logger  interfaces.Logger
}

// NewWorkbenchHandler creates a new workbench handler; logger may be nil
func NewWorkbenchHandler(service WorkbenchService, logger interfaces.Logger) *WorkbenchHandler {
	return &WorkbenchHandler{service: service, logger: logger}
}

// fail logs server-side failures and converts err to a problem response
func (h *WorkbenchHandler) fail(ctx context.Context, op string, err error) error {
	logServerError(ctx, h.logger, op, err)
	return toHumaError(err)
}

// RegisterRoutes registers all workbench routes
func (h *WorkbenchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listFormats",
		Method:      http.MethodGet,
		Path:        "/formats",
		Summary:     "List supported formats",
		Description: "Returns every supported format with its tree and validator support, the available conversions and diff modes",
		Tags:        []string{"Formats"},
	}, h.ListFormats)

	huma.Register(api, huma.Operation{
		OperationID: "formatContent",
		Method:      http.MethodPost,
		Path:        "/format",
		Summary:     "Format content",
		Description: "Pretty-prints content in the given format, optionally returning its structural tree",
		Tags:        []string{"Formats"},
	}, h.Format)

	huma.Register(api, huma.Operation{
		OperationID: "formatBatch",
		Method:      http.MethodPost,
		Path:        "/format/batch",
		Summary:     "Format several documents",
		Description: "Formats up to 100 documents concurrently; each result carries its own error",
		Tags:        []string{"Formats"},
	}, h.FormatBatch)

	huma.Register(api, huma.Operation{
		OperationID: "previewMarkdown",
		Method:      http.MethodPost,
		Path:        "/markdown/preview",
		Summary:     "Render Markdown",
		Description: "Renders Markdown to HTML for preview",
		Tags:        []string{"Formats"},
	}, h.PreviewMarkdown)

	huma.Register(api, huma.Operation{
		OperationID: "validateJSONSchema",
		Method:      http.MethodPost,
		Path:        "/validate/json-schema",
		Summary:     "Validate JSON against a JSON Schema",
		Tags:        []string{"Validation"},
	}, h.ValidateJSONSchema)

	huma.Register(api, huma.Operation{
		OperationID: "validateXSD",
		Method:      http.MethodPost,
		Path:        "/validate/xsd",
		Summary:     "Validate XML against an XSD",
		Tags:        []string{"Validation"},
	}, h.ValidateXSD)

	huma.Register(api, huma.Operation{
		OperationID: "lintYAML",
		Method:      http.MethodPost,
		Path:        "/lint/yaml",
		Summary:     "Lint YAML",
		Description: "Checks YAML for syntax errors and style problems",
		Tags:        []string{"Validation"},
	}, h.LintYAML)

	huma.Register(api, huma.Operation{
		OperationID: "buildTree",
		Method:      http.MethodPost,
		Path:        "/tree",
		Summary:     "Build a structural tree",
		Description: "Returns the node tree of JSON, XML, YAML or TOML content",
		Tags:        []string{"Trees"},
	}, h.Tree)

	huma.Register(api, huma.Operation{
		OperationID: "diffContent",
		Method:      http.MethodPost,
		Path:        "/diff",
		Summary:     "Compare two texts",
		Description: "Renders a line diff as unified text, unified HTML, a side-by-side view or a table",
		Tags:        []string{"Diff"},
	}, h.Diff)

	huma.Register(api, huma.Operation{
		OperationID: "convertContent",
		Method:      http.MethodPost,
		Path:        "/convert",
		Summary:     "Convert between formats",
		Description: "Supports json->xml, xml->json, json->toml, json->toon, html->markdown and markdown->html",
		Tags:        []string{"Conversion"},
	}, h.Convert)
}

// ListFormatsInput has no parameters
type ListFormatsInput struct{}

// ListFormatsOutput represents the formats response
type ListFormatsOutput struct {
	Body responses.FormatsResponse
}

// ListFormats handles GET /formats
func (h *WorkbenchHandler) ListFormats(ctx context.Context, input *ListFormatsInput) (*ListFormatsOutput, error) {
	formats := make([]responses.FormatInfo, 0, len(domain.AllFormats))
	for _, kind := range domain.AllFormats {
		formats = append(formats, mappers.ToFormatInfo(kind))
	}
	modes := make([]string, 0, len(workbench.DiffModes))
	for _, m := range workbench.DiffModes {
		modes = append(modes, string(m))
	}
	return &ListFormatsOutput{Body: responses.FormatsResponse{
		Formats:     formats,
		Conversions: convert.Supported(),
		DiffModes:   modes,
	}}, nil
}

// FormatInput represents the input for formatting
type FormatInput struct {
	Body requests.FormatRequest
}

// FormatOutput represents the formatted content
type FormatOutput struct {
	Body responses.FormatResponse
}

// Format handles POST /format
func (h *WorkbenchHandler) Format(ctx context.Context, input *FormatInput) (*FormatOutput, error) {
	kind, err := parseKind(input.Body.Format)
	if err != nil {
		return nil, h.fail(ctx, "format", err)
	}

	result, err := h.service.Format(ctx, input.Body.Content, kind, input.Body.Tree)
	if err != nil {
		return nil, h.fail(ctx, "format", err)
	}
	return &FormatOutput{Body: *mappers.ToFormatResponse(result, kind)}, nil
}

// FormatBatchInput represents the documents to format
type FormatBatchInput struct {
	Body requests.BatchFormatRequest
}

// FormatBatchOutput represents per-document results
type FormatBatchOutput struct {
	Body responses.BatchFormatResponse
}

// FormatBatch handles POST /format/batch
func (h *WorkbenchHandler) FormatBatch(ctx context.Context, input *FormatBatchInput) (*FormatBatchOutput, error) {
	results, err := h.service.FormatBatch(ctx, input.Body.ToService())
	if err != nil {
		return nil, h.fail(ctx, "format_batch", err)
	}

	out := responses.BatchFormatResponse{Results: make([]responses.BatchItemResponse, len(results))}
	for i, r := range results {
		item := responses.BatchItemResponse{Name: r.Name}
		if r.Err != nil {
			logServerError(ctx, h.logger, "format_batch", r.Err)
			item.Error = &responses.BatchErrorResponse{Status: errorStatus(r.Err), Detail: batchErrorDetail(r.Err)}
			out.Failed++
		} else {
			kind, _ := domain.ParseFormatKind(input.Body.Items[i].Format)
			formatted := mappers.ToFormatResponse(r.Result, kind)
			item.Content, item.Format, item.Extension = formatted.Content, formatted.Format, formatted.Extension
		}
		out.Results[i] = item
	}
	return &FormatBatchOutput{Body: out}, nil
}

// PreviewInput represents the Markdown to render
type PreviewInput struct {
	Body requests.ContentRequest
}

// PreviewOutput represents rendered HTML
type PreviewOutput struct {
	Body responses.PreviewResponse
}

// PreviewMarkdown handles POST /markdown/preview
func (h *WorkbenchHandler) PreviewMarkdown(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
	html, err := h.service.PreviewMarkdown(ctx, input.Body.Content)
	if err != nil {
		return nil, h.fail(ctx, "preview_markdown", err)
	}
	return &PreviewOutput{Body: responses.PreviewResponse{HTML: html}}, nil
}

// SchemaInput represents a document and its schema
type SchemaInput struct {
	Body requests.SchemaRequest
}

// ContentInput represents a single document
type ContentInput struct {
	Body requests.ContentRequest
}

// ReportOutput represents a validation report
type ReportOutput struct {
	Body responses.ReportResponse
}

// ValidateJSONSchema handles POST /validate/json-schema
func (h *WorkbenchHandler) ValidateJSONSchema(ctx context.Context, input *SchemaInput) (*ReportOutput, error) {
	report, err := h.service.ValidateJSONSchema(ctx, input.Body.Content, input.Body.Schema)
	return h.reportOutput(ctx, "validate_json_schema", report, err)
}

// ValidateXSD handles POST /validate/xsd
func (h *WorkbenchHandler) ValidateXSD(ctx context.Context, input *SchemaInput) (*ReportOutput, error) {
	report, err := h.service.ValidateXSD(ctx, input.Body.Content, input.Body.Schema)
	return h.reportOutput(ctx, "validate_xsd", report, err)
}

// LintYAML handles POST /lint/yaml
func (h *WorkbenchHandler) LintYAML(ctx context.Context, input *ContentInput) (*ReportOutput, error) {
	report, err := h.service.LintYAML(ctx, input.Body.Content)
	return h.reportOutput(ctx, "lint_yaml", report, err)
}

func (h *WorkbenchHandler) reportOutput(ctx context.Context, op string, report *domain.Report, err error) (*ReportOutput, error) {
	if err != nil {
		return nil, h.fail(ctx, op, err)
	}
	return &ReportOutput{Body: *mappers.ToReportResponse(report)}, nil
}

// TreeInput represents the content to build a tree from
type TreeInput struct {
	Body requests.TreeRequest
}

// TreeOutput represents a structural tree
type TreeOutput struct {
	Body responses.TreeResponse
}

// Tree handles POST /tree
func (h *WorkbenchHandler) Tree(ctx context.Context, input *TreeInput) (*TreeOutput, error) {
	kind, err := parseKind(input.Body.Format)
	if err != nil {
		return nil, h.fail(ctx, "tree", err)
	}

	result, err := h.service.Tree(ctx, input.Body.Content, kind)
	if err != nil {
		return nil, h.fail(ctx, "tree", err)
	}
	return &TreeOutput{Body: *mappers.ToTreeResponse(result)}, nil
}

// DiffInput represents the texts to compare
type DiffInput struct {
	Body requests.DiffRequest
}

// DiffOutput represents a rendered diff
type DiffOutput struct {
	Body responses.DiffResponse
}

// Diff handles POST /diff
func (h *WorkbenchHandler) Diff(ctx context.Context, input *DiffInput) (*DiffOutput, error) {
	input.Body.ApplyDefaults()

	result, err := h.service.Diff(ctx, input.Body.ToService())
	if err != nil {
		return nil, h.fail(ctx, "diff", err)
	}
	return &DiffOutput{Body: *mappers.ToDiffResponse(result)}, nil
}

// ConvertInput represents a conversion request
type ConvertInput struct {
	Body requests.ConvertRequest
}

// ConvertOutput represents converted content
type ConvertOutput struct {
	Body responses.ConvertResponse
}

// Convert handles POST /convert
func (h *WorkbenchHandler) Convert(ctx context.Context, input *ConvertInput) (*ConvertOutput, error) {
	result, err := h.service.Convert(ctx, input.Body.Content, input.Body.From, input.Body.To, input.Body.ToOptions())
	if err != nil {
		return nil, h.fail(ctx, "convert", err)
	}
	return &ConvertOutput{Body: responses.ConvertResponse{
		Content:  result.Content,
		From:     input.Body.From,
		To:       input.Body.To,
		Warnings: result.Warnings,
	}}, nil
}

func parseKind(name string) (domain.FormatKind, error) {
	kind, err := domain.ParseFormatKind(name)
	if err != nil {
		return "", coreerrors.NewUnsupported("format", err.Error())
	}
	return kind, nil
}
