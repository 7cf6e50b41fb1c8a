// ABOUTME: MCP tools exposing the workbench operations to model clients
// ABOUTME: Mirrors the HTTP endpoints; failures come back as tool errors rather than protocol errors

package mcptools

import (
	"context"
	"fmt"
	"strings"

	"textforge-api/api/dto/mappers"
	"textforge-api/api/dto/requests"
	"textforge-api/api/dto/responses"
	"textforge-api/api/handlers"
	"textforge-api/core/convert"
	"textforge-api/core/diff"
	"textforge-api/core/domain"
	"textforge-api/core/interfaces"
	"textforge-api/core/workbench"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tools holds the MCP tool handlers
type Tools struct {
	service handlers.WorkbenchService
	logger  interfaces.Logger
}

// New creates the tool set; logger may be nil
func New(service handlers.WorkbenchService, logger interfaces.Logger) *Tools {
	return &Tools{service: service, logger: logger}
}

func formatNames() []string {
	names := make([]string, 0, len(domain.AllFormats))
	for _, k := range domain.AllFormats {
		names = append(names, string(k))
	}
	return names
}

// Register adds every tool to s
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_formats",
		mcp.WithDescription("List supported formats, conversions and diff modes"),
	), t.ListFormats)

	s.AddTool(mcp.NewTool("format",
		mcp.WithDescription("Pretty-print structured text"),
		mcp.WithString("content", mcp.Required(), mcp.Description("Raw content")),
		mcp.WithString("format", mcp.Required(), mcp.Description("Format name or extension: "+strings.Join(formatNames(), ", "))),
	), t.Format)

	s.AddTool(mcp.NewTool("preview_markdown",
		mcp.WithDescription("Render Markdown to HTML"),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown source")),
	), t.PreviewMarkdown)

	s.AddTool(mcp.NewTool("validate_json_schema",
		mcp.WithDescription("Validate a JSON document against a JSON Schema"),
		mcp.WithString("content", mcp.Required(), mcp.Description("JSON document")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("JSON Schema")),
	), t.ValidateJSONSchema)

	s.AddTool(mcp.NewTool("validate_xsd",
		mcp.WithDescription("Validate an XML document against an XSD"),
		mcp.WithString("content", mcp.Required(), mcp.Description("XML document")),
		mcp.WithString("schema", mcp.Required(), mcp.Description("XSD schema")),
	), t.ValidateXSD)

	s.AddTool(mcp.NewTool("lint_yaml",
		mcp.WithDescription("Lint YAML for syntax errors and style problems"),
		mcp.WithString("content", mcp.Required(), mcp.Description("YAML document")),
	), t.LintYAML)

	s.AddTool(mcp.NewTool("tree",
		mcp.WithDescription("Build the structural tree of JSON, XML, YAML, TOML or HTML content"),
		mcp.WithString("content", mcp.Required(), mcp.Description("Raw content")),
		mcp.WithString("format", mcp.Required(), mcp.Description("Format name or extension")),
	), t.Tree)

	modes := make([]string, 0, len(workbench.DiffModes))
	for _, m := range workbench.DiffModes {
		modes = append(modes, string(m))
	}
	s.AddTool(mcp.NewTool("diff",
		mcp.WithDescription("Compare two texts line by line"),
		mcp.WithString("original", mcp.Required(), mcp.Description("Original text")),
		mcp.WithString("modified", mcp.Required(), mcp.Description("Modified text")),
		mcp.WithString("mode", mcp.Enum(modes...), mcp.Description("Rendering mode (default unified)")),
		mcp.WithNumber("context", mcp.Description(fmt.Sprintf("Context lines around unified hunks (default %d)", diff.DefaultContext))),
		mcp.WithString("from_label", mcp.Description("Label of the original side")),
		mcp.WithString("to_label", mcp.Description("Label of the modified side")),
		mcp.WithBoolean("context_only", mcp.Description("Table mode: show only changes with surrounding lines")),
		mcp.WithNumber("numlines", mcp.Description(fmt.Sprintf("Table mode: lines of context around changes (default %d)", diff.DefaultNumLines))),
	), t.Diff)

	s.AddTool(mcp.NewTool("convert",
		mcp.WithDescription("Convert content between formats: "+strings.Join(convert.Supported(), ", ")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to convert")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Source format")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Target format")),
		mcp.WithString("root_name", mcp.Description("JSON to XML: root element name")),
		mcp.WithBoolean("infer_types", mcp.Description("XML to JSON: infer numbers and booleans")),
		mcp.WithBoolean("unwrap_root", mcp.Description("XML to JSON: drop the root element")),
		mcp.WithBoolean("lenient", mcp.Description("JSON to TOON: warn on mismatched record keys")),
	), t.Convert)
}

// ListFormats handles list_formats
func (t *Tools) ListFormats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	formats := make([]responses.FormatInfo, 0, len(domain.AllFormats))
	for _, kind := range domain.AllFormats {
		formats = append(formats, mappers.ToFormatInfo(kind))
	}
	modes := make([]string, 0, len(workbench.DiffModes))
	for _, m := range workbench.DiffModes {
		modes = append(modes, string(m))
	}
	return mcp.NewToolResultStructuredOnly(responses.FormatsResponse{
		Formats:     formats,
		Conversions: convert.Supported(),
		DiffModes:   modes,
	}), nil
}

// Format handles format
func (t *Tools) Format(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := domain.ParseFormatKind(request.GetString("format", ""))
	if err != nil {
		return t.toolError("format", err), nil
	}
	result, err := t.service.Format(ctx, request.GetString("content", ""), kind, false)
	if err != nil {
		return t.toolError("format", err), nil
	}
	return mcp.NewToolResultText(result.Content), nil
}

// PreviewMarkdown handles preview_markdown
func (t *Tools) PreviewMarkdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	html, err := t.service.PreviewMarkdown(ctx, request.GetString("content", ""))
	if err != nil {
		return t.toolError("preview_markdown", err), nil
	}
	return mcp.NewToolResultText(html), nil
}

// ValidateJSONSchema handles validate_json_schema
func (t *Tools) ValidateJSONSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.service.ValidateJSONSchema(ctx, request.GetString("content", ""), request.GetString("schema", ""))
	return t.reportResult("validate_json_schema", report, err), nil
}

// ValidateXSD handles validate_xsd
func (t *Tools) ValidateXSD(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.service.ValidateXSD(ctx, request.GetString("content", ""), request.GetString("schema", ""))
	return t.reportResult("validate_xsd", report, err), nil
}

// LintYAML handles lint_yaml
func (t *Tools) LintYAML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.service.LintYAML(ctx, request.GetString("content", ""))
	return t.reportResult("lint_yaml", report, err), nil
}

// Tree handles tree
func (t *Tools) Tree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := domain.ParseFormatKind(request.GetString("format", ""))
	if err != nil {
		return t.toolError("tree", err), nil
	}
	result, err := t.service.Tree(ctx, request.GetString("content", ""), kind)
	if err != nil {
		return t.toolError("tree", err), nil
	}
	return mcp.NewToolResultStructuredOnly(mappers.ToTreeResponse(result)), nil
}

// Diff handles diff
func (t *Tools) Diff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := requests.DiffRequest{
		Original:    request.GetString("original", ""),
		Modified:    request.GetString("modified", ""),
		Mode:        request.GetString("mode", ""),
		FromLabel:   request.GetString("from_label", ""),
		ToLabel:     request.GetString("to_label", ""),
		ContextOnly: request.GetBool("context_only", false),
	}
	contextLines := request.GetInt("context", diff.DefaultContext)
	numLines := request.GetInt("numlines", diff.DefaultNumLines)
	req.Context, req.NumLines = &contextLines, &numLines
	req.ApplyDefaults()

	result, err := t.service.Diff(ctx, req.ToService())
	if err != nil {
		return t.toolError("diff", err), nil
	}
	return mcp.NewToolResultText(result.Output), nil
}

// Convert handles convert
func (t *Tools) Convert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := convert.Options{
		RootName:   request.GetString("root_name", ""),
		InferTypes: request.GetBool("infer_types", false),
		UnwrapRoot: request.GetBool("unwrap_root", false),
		Lenient:    request.GetBool("lenient", false),
	}
	from, to := request.GetString("from", ""), request.GetString("to", "")
	result, err := t.service.Convert(ctx, request.GetString("content", ""), from, to, opts)
	if err != nil {
		return t.toolError("convert", err), nil
	}
	return mcp.NewToolResultStructuredOnly(responses.ConvertResponse{
		Content:  result.Content,
		From:     from,
		To:       to,
		Warnings: result.Warnings,
	}), nil
}

func (t *Tools) reportResult(tool string, report *domain.Report, err error) *mcp.CallToolResult {
	if err != nil {
		return t.toolError(tool, err)
	}
	return mcp.NewToolResultStructuredOnly(mappers.ToReportResponse(report))
}

func (t *Tools) toolError(tool string, err error) *mcp.CallToolResult {
	if t.logger != nil {
		t.logger.Debug("Tool call failed", map[string]interface{}{
			"tool":  tool,
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultError(err.Error())
}
