// ABOUTME: Response DTOs for the format, validate, tree, diff and convert endpoints
// ABOUTME: Decouples the wire shape from core domain types

package responses

// FormatInfo describes one supported format
type FormatInfo struct {
	Name        string   `json:"name" doc:"Format identifier"`
	DisplayName string   `json:"display_name" doc:"Human-readable name"`
	Extension   string   `json:"extension" doc:"Preferred file extension for downloads, without the leading dot"`
	Tree        bool     `json:"tree" doc:"Whether a structural tree is available"`
	Validators  []string `json:"validators" doc:"Validators and linters that accept this format"`
}

// FormatsResponse lists the supported formats and conversions
type FormatsResponse struct {
	Formats     []FormatInfo `json:"formats"`
	Conversions []string     `json:"conversions" doc:"Available conversions as from->to"`
	DiffModes   []string     `json:"diff_modes"`
}

// AttributeResponse is one element attribute
type AttributeResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NodeResponse is one structural tree node; children are indexes into nodes
type NodeResponse struct {
	Key        string              `json:"key"`
	Kind       string              `json:"kind"`
	Attributes []AttributeResponse `json:"attributes,omitempty"`
	Text       *string             `json:"text,omitempty"`
	Children   []int               `json:"children,omitempty"`
	Depth      int                 `json:"depth"`
}

// TreeResponse is a structural tree, or a message when the format has none
type TreeResponse struct {
	Supported bool           `json:"supported"`
	Message   string         `json:"message,omitempty"`
	Format    string         `json:"format,omitempty"`
	Root      int            `json:"root"`
	Nodes     []NodeResponse `json:"nodes,omitempty"`
}

// FormatResponse is formatted content
type FormatResponse struct {
	Content   string        `json:"content"`
	Format    string        `json:"format"`
	Extension string        `json:"extension"`
	Tree      *TreeResponse `json:"tree,omitempty"`
}

// PreviewResponse is rendered Markdown
type PreviewResponse struct {
	HTML string `json:"html"`
}

// DiagnosticResponse is one positional finding
type DiagnosticResponse struct {
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ReportResponse is a validation or lint outcome
type ReportResponse struct {
	Valid       bool                 `json:"valid"`
	Message     string               `json:"message"`
	Text        string               `json:"text" doc:"The report as displayed to users"`
	Diagnostics []DiagnosticResponse `json:"diagnostics,omitempty"`
}

// OpcodeResponse relates original[i1:i2] to modified[j1:j2]
type OpcodeResponse struct {
	Tag string `json:"tag"`
	I1  int    `json:"i1"`
	I2  int    `json:"i2"`
	J1  int    `json:"j1"`
	J2  int    `json:"j2"`
}

// HunkLineResponse is one line of a unified hunk
type HunkLineResponse struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
	OldNum  int    `json:"old_num,omitempty"`
	NewNum  int    `json:"new_num,omitempty"`
}

// HunkResponse is one unified hunk
type HunkResponse struct {
	Header   string             `json:"header"`
	OldStart int                `json:"old_start"`
	OldLines int                `json:"old_lines"`
	NewStart int                `json:"new_start"`
	NewLines int                `json:"new_lines"`
	Lines    []HunkLineResponse `json:"lines"`
}

// SegmentResponse is a run of characters in a side-by-side cell
type SegmentResponse struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// RowResponse is one side-by-side row
type RowResponse struct {
	Index int               `json:"index"`
	Kind  string            `json:"kind"`
	Left  []SegmentResponse `json:"left"`
	Right []SegmentResponse `json:"right"`
}

// DiffResponse is a rendered diff and its structure
type DiffResponse struct {
	Mode    string           `json:"mode"`
	Output  string           `json:"output" doc:"Unified text or HTML depending on mode"`
	Changed bool             `json:"changed"`
	Opcodes []OpcodeResponse `json:"opcodes"`
	Hunks   []HunkResponse   `json:"hunks,omitempty"`
	Rows    []RowResponse    `json:"rows,omitempty"`
}

// ConvertResponse is converted content
type ConvertResponse struct {
	Content  string   `json:"content"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Warnings []string `json:"warnings,omitempty"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status  string          `json:"status"`
	Version string          `json:"version"`
	Flags   map[string]bool `json:"flags"`
}

// BatchErrorResponse describes why one batch item failed
type BatchErrorResponse struct {
	Status int    `json:"status" doc:"HTTP status the item would have produced on its own"`
	Detail string `json:"detail"`
}

// BatchItemResponse is the outcome of one batch item
type BatchItemResponse struct {
	Name      string              `json:"name,omitempty"`
	Content   string              `json:"content,omitempty"`
	Format    string              `json:"format,omitempty"`
	Extension string              `json:"extension,omitempty"`
	Error     *BatchErrorResponse `json:"error,omitempty"`
}

// BatchFormatResponse lists results in request order
type BatchFormatResponse struct {
	Results []BatchItemResponse `json:"results"`
	Failed  int                 `json:"failed"`
}
