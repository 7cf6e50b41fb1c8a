// ABOUTME: Mappers for converting core results into API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"textforge-api/api/dto/responses"
	"textforge-api/core/domain"
	"textforge-api/core/tree"
	"textforge-api/core/workbench"
)

// validatorsFor lists the validators that accept a format
func validatorsFor(kind domain.FormatKind) []string {
	switch kind {
	case domain.FormatJSON:
		return []string{"json-schema"}
	case domain.FormatXML:
		return []string{"xsd"}
	case domain.FormatYAML:
		return []string{"yaml-lint"}
	}
	return []string{}
}

// ToFormatInfo describes a format kind
func ToFormatInfo(kind domain.FormatKind) responses.FormatInfo {
	return responses.FormatInfo{
		Name:        string(kind),
		DisplayName: kind.DisplayName(),
		Extension:   kind.Extension(),
		Tree:        kind.SupportsTree(),
		Validators:  validatorsFor(kind),
	}
}

// ToTreeResponse converts a tree build result
func ToTreeResponse(result *tree.Result) *responses.TreeResponse {
	if result == nil {
		return nil
	}
	if !result.Supported || result.Tree == nil {
		return &responses.TreeResponse{Supported: false, Message: result.Message, Root: -1}
	}

	t := result.Tree
	out := &responses.TreeResponse{
		Supported: true,
		Format:    string(t.Format),
		Root:      t.Root,
		Nodes:     make([]responses.NodeResponse, 0, len(t.Nodes)),
	}
	for _, n := range t.Nodes {
		node := responses.NodeResponse{
			Key:      n.Key,
			Kind:     string(n.Kind),
			Text:     n.Text,
			Children: n.Children,
			Depth:    n.Depth,
		}
		for _, a := range n.Attributes {
			node.Attributes = append(node.Attributes, responses.AttributeResponse{Name: a.Name, Value: a.Value})
		}
		out.Nodes = append(out.Nodes, node)
	}
	return out
}

// ToFormatResponse converts a format result
func ToFormatResponse(result *workbench.FormatResult, kind domain.FormatKind) *responses.FormatResponse {
	if result == nil {
		return nil
	}
	return &responses.FormatResponse{
		Content:   result.Content,
		Format:    result.Format,
		Extension: kind.Extension(),
		Tree:      ToTreeResponse(result.Tree),
	}
}

// ToReportResponse converts a validation report
func ToReportResponse(report *domain.Report) *responses.ReportResponse {
	if report == nil {
		return nil
	}
	out := &responses.ReportResponse{
		Valid:   report.Valid,
		Message: report.Message,
		Text:    report.Text(),
	}
	for _, d := range report.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, responses.DiagnosticResponse{
			Line:    d.Line,
			Column:  d.Column,
			Message: d.Message,
			Rule:    d.Rule,
			Path:    d.Path,
		})
	}
	return out
}

// ToOpcodeResponses converts opcodes
func ToOpcodeResponses(ops []domain.Opcode) []responses.OpcodeResponse {
	out := make([]responses.OpcodeResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, responses.OpcodeResponse{Tag: string(op.Tag), I1: op.I1, I2: op.I2, J1: op.J1, J2: op.J2})
	}
	return out
}

func toSegments(segs []domain.Segment) []responses.SegmentResponse {
	out := make([]responses.SegmentResponse, 0, len(segs))
	for _, s := range segs {
		out = append(out, responses.SegmentResponse{Tag: string(s.Tag), Text: s.Text})
	}
	return out
}

// ToDiffResponse converts a diff result
func ToDiffResponse(result *workbench.DiffResult) *responses.DiffResponse {
	if result == nil {
		return nil
	}
	out := &responses.DiffResponse{
		Mode:    string(result.Mode),
		Output:  result.Output,
		Opcodes: ToOpcodeResponses(result.Opcodes),
	}
	for _, op := range result.Opcodes {
		if op.Tag != domain.OpEqual {
			out.Changed = true
			break
		}
	}

	for _, h := range result.Hunks {
		hunk := responses.HunkResponse{
			Header:   h.Header,
			OldStart: h.OldStart,
			OldLines: h.OldLines,
			NewStart: h.NewStart,
			NewLines: h.NewLines,
			Lines:    make([]responses.HunkLineResponse, 0, len(h.Lines)),
		}
		for _, l := range h.Lines {
			hunk.Lines = append(hunk.Lines, responses.HunkLineResponse{
				Kind:    string(l.Kind),
				Content: l.Content,
				OldNum:  l.OldNum,
				NewNum:  l.NewNum,
			})
		}
		out.Hunks = append(out.Hunks, hunk)
	}

	for _, r := range result.Rows {
		out.Rows = append(out.Rows, responses.RowResponse{
			Index: r.Index,
			Kind:  string(r.Kind),
			Left:  toSegments(r.Left),
			Right: toSegments(r.Right),
		})
	}
	return out
}
