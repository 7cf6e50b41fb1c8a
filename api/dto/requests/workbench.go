// ABOUTME: Request DTOs for the format, validate, tree, diff and convert endpoints
// ABOUTME: Provides validation tags and default values for incoming requests

package requests

import (
	"textforge-api/core/convert"
	"textforge-api/core/diff"
	"textforge-api/core/workbench"
)

// FormatRequest is the body of POST /format
type FormatRequest struct {
	Content string `json:"content" doc:"Raw content to format"`
	Format  string `json:"format" doc:"Format name or file extension, e.g. json, yml, md"`
	// Tree also returns the structural tree for formats that have one
	Tree bool `json:"tree,omitempty" doc:"Include the structural tree when the format supports one"`
}

// ContentRequest carries a single piece of content
type ContentRequest struct {
	Content string `json:"content" doc:"Raw content"`
}

// SchemaRequest is the body of the schema validation endpoints
type SchemaRequest struct {
	Content string `json:"content" doc:"Document to validate"`
	Schema  string `json:"schema" doc:"Schema to validate against"`
}

// TreeRequest is the body of POST /tree
type TreeRequest struct {
	Content string `json:"content" doc:"Raw content"`
	Format  string `json:"format" doc:"Format name or file extension"`
}

// DiffRequest is the body of POST /diff
type DiffRequest struct {
	Original string `json:"original" doc:"Original text"`
	Modified string `json:"modified" doc:"Modified text"`
	Mode     string `json:"mode,omitempty" enum:"unified,unified-html,side-by-side,table" default:"unified" doc:"Rendering mode"`
	// Context is the number of unchanged lines around each unified hunk; negative shows everything
	Context   *int   `json:"context,omitempty" doc:"Context lines around unified hunks (default 3, negative for the whole file)"`
	FromLabel string `json:"from_label,omitempty" maxLength:"256" doc:"Label of the original side"`
	ToLabel   string `json:"to_label,omitempty" maxLength:"256" doc:"Label of the modified side"`
	// ContextOnly collapses unchanged runs in table mode
	ContextOnly bool `json:"context_only,omitempty" doc:"Table mode: show only changes with surrounding lines"`
	NumLines    *int `json:"numlines,omitempty" minimum:"0" doc:"Table mode: lines of context around changes (default 5)"`
}

// ApplyDefaults sets default values for optional fields
func (r *DiffRequest) ApplyDefaults() {
	if r.Mode == "" {
		r.Mode = string(workbench.DiffUnified)
	}
	if r.Context == nil {
		n := diff.DefaultContext
		r.Context = &n
	}
	if r.NumLines == nil {
		n := diff.DefaultNumLines
		r.NumLines = &n
	}
}

// ToService converts the request into the workbench form
func (r *DiffRequest) ToService() workbench.DiffRequest {
	return workbench.DiffRequest{
		Original:    r.Original,
		Modified:    r.Modified,
		Mode:        workbench.DiffMode(r.Mode),
		Context:     r.Context,
		FromLabel:   r.FromLabel,
		ToLabel:     r.ToLabel,
		ContextOnly: r.ContextOnly,
		NumLines:    r.NumLines,
	}
}

// ConvertOptions tunes individual converters
type ConvertOptions struct {
	RootName   string `json:"root_name,omitempty" doc:"JSON to XML: name of the wrapping root element (default root)"`
	InferTypes bool   `json:"infer_types,omitempty" doc:"XML to JSON: turn numeric and boolean text into JSON numbers and booleans"`
	UnwrapRoot bool   `json:"unwrap_root,omitempty" doc:"XML to JSON: drop the root element wrapper"`
	Lenient    bool   `json:"lenient,omitempty" doc:"JSON to TOON: warn instead of failing on records with different keys"`
}

// ConvertRequest is the body of POST /convert
type ConvertRequest struct {
	Content string          `json:"content" doc:"Content to convert"`
	From    string          `json:"from" doc:"Source format, e.g. json"`
	To      string          `json:"to" doc:"Target format, e.g. xml"`
	Options *ConvertOptions `json:"options,omitempty" doc:"Converter options"`
}

// ToOptions returns the converter options, zero when none were sent
func (r *ConvertRequest) ToOptions() convert.Options {
	if r.Options == nil {
		return convert.Options{}
	}
	return convert.Options{
		RootName:   r.Options.RootName,
		InferTypes: r.Options.InferTypes,
		UnwrapRoot: r.Options.UnwrapRoot,
		Lenient:    r.Options.Lenient,
	}
}

// BatchItemRequest is one document of a batch
type BatchItemRequest struct {
	Name    string `json:"name,omitempty" maxLength:"256" doc:"Caller label echoed in the result, e.g. a file name"`
	Content string `json:"content" doc:"Raw content to format"`
	Format  string `json:"format" doc:"Format name or file extension"`
}

// BatchFormatRequest is the body of POST /format/batch
type BatchFormatRequest struct {
	Items []BatchItemRequest `json:"items" minItems:"1" maxItems:"100" doc:"Documents to format"`
}

// ToService converts the request into workbench batch items
func (r *BatchFormatRequest) ToService() []workbench.BatchItem {
	items := make([]workbench.BatchItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = workbench.BatchItem{Name: it.Name, Content: it.Content, Format: it.Format}
	}
	return items
}
