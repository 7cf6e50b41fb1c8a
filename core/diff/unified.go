package diff

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"textforge-api/core/domain"
	"textforge-api/pkg/utils/text"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines kept around each change
const DefaultContext = 3

// UnifiedOptions controls unified rendering. A negative Context keeps every
// unchanged line in a single hunk.
type UnifiedOptions struct {
	FromLabel string
	ToLabel   string
	Context   int
}

// DefaultUnifiedOptions returns the labels Original and Modified with three
// lines of context
func DefaultUnifiedOptions() UnifiedOptions {
	return UnifiedOptions{FromLabel: "Original", ToLabel: "Modified", Context: DefaultContext}
}

// UnifiedResult carries the patch text and its structure
type UnifiedResult struct {
	Text    string
	Hunks   []domain.Hunk
	Opcodes []domain.Opcode
}

// Unified renders a unified diff of the two texts. Identical input yields no
// hunks and empty text.
func Unified(original, modified string, opts UnifiedOptions) *UnifiedResult {
	opts = withLabels(opts)
	a, b := text.SplitLines(original), text.SplitLines(modified)
	if slices.Equal(a, b) {
		return &UnifiedResult{Opcodes: Opcodes(a, b)}
	}
	matcher := difflib.NewMatcher(a, b)

	n := opts.Context
	if n < 0 {
		n = len(a) + len(b) + 1
	}

	result := &UnifiedResult{Opcodes: convert(matcher.GetOpCodes())}
	for _, group := range matcher.GetGroupedOpCodes(n) {
		result.Hunks = append(result.Hunks, buildHunk(convert(group), a, b))
	}
	result.Text = renderUnified(result.Hunks, opts)
	return result
}

// UnifiedHTML renders the same diff as Unified with every added and removed
// line wrapped in a colored span. All text is HTML-escaped.
func UnifiedHTML(original, modified string, opts UnifiedOptions) *UnifiedResult {
	result := Unified(original, modified, opts)
	opts = withLabels(opts)
	if len(result.Hunks) == 0 {
		result.Text = ""
		return result
	}

	lines := []string{
		html.EscapeString("--- " + opts.FromLabel),
		html.EscapeString("+++ " + opts.ToLabel),
	}
	for _, h := range result.Hunks {
		lines = append(lines, html.EscapeString(h.Header))
		for _, l := range h.Lines {
			escaped := html.EscapeString(l.Prefix() + l.Content)
			switch l.Kind {
			case domain.LineAdd:
				lines = append(lines, span(ColorAdded, escaped))
			case domain.LineDelete:
				lines = append(lines, span(ColorRemoved, escaped))
			default:
				lines = append(lines, escaped)
			}
		}
	}
	result.Text = strings.Join(lines, "\n")
	return result
}

func withLabels(opts UnifiedOptions) UnifiedOptions {
	if opts.FromLabel == "" {
		opts.FromLabel = "Original"
	}
	if opts.ToLabel == "" {
		opts.ToLabel = "Modified"
	}
	return opts
}

func span(color, content string) string {
	return `<span style="background-color:` + color + `">` + content + `</span>`
}

func buildHunk(group []domain.Opcode, a, b []string) domain.Hunk {
	first, last := group[0], group[len(group)-1]
	oldStart, oldLines := unifiedRange(first.I1, last.I2)
	newStart, newLines := unifiedRange(first.J1, last.J2)

	h := domain.Hunk{
		OldStart: oldStart,
		OldLines: oldLines,
		NewStart: newStart,
		NewLines: newLines,
		Header:   fmt.Sprintf("@@ -%s +%s @@", formatRange(oldStart, oldLines), formatRange(newStart, newLines)),
		Opcodes:  group,
	}

	for _, op := range group {
		switch op.Tag {
		case domain.OpEqual:
			for k := 0; k < op.I2-op.I1; k++ {
				h.Lines = append(h.Lines, domain.HunkLine{
					Kind:    domain.LineContext,
					Content: a[op.I1+k],
					OldNum:  op.I1 + k + 1,
					NewNum:  op.J1 + k + 1,
				})
			}
			continue
		}
		if op.Tag == domain.OpReplace || op.Tag == domain.OpDelete {
			for i := op.I1; i < op.I2; i++ {
				h.Lines = append(h.Lines, domain.HunkLine{Kind: domain.LineDelete, Content: a[i], OldNum: i + 1})
			}
		}
		if op.Tag == domain.OpReplace || op.Tag == domain.OpInsert {
			for j := op.J1; j < op.J2; j++ {
				h.Lines = append(h.Lines, domain.HunkLine{Kind: domain.LineAdd, Content: b[j], NewNum: j + 1})
			}
		}
	}
	return h
}

// unifiedRange converts a half-open index range to GNU unified start and
// length; an empty range starts on the line before it
func unifiedRange(start, stop int) (int, int) {
	length := stop - start
	begin := start + 1
	if length == 0 {
		begin--
	}
	return begin, length
}

func formatRange(begin, length int) string {
	if length == 1 {
		return fmt.Sprintf("%d", begin)
	}
	return fmt.Sprintf("%d,%d", begin, length)
}

func renderUnified(hunks []domain.Hunk, opts UnifiedOptions) string {
	if len(hunks) == 0 {
		return ""
	}
	lines := []string{"--- " + opts.FromLabel, "+++ " + opts.ToLabel}
	for _, h := range hunks {
		lines = append(lines, h.Header)
		for _, l := range h.Lines {
			lines = append(lines, l.Prefix()+l.Content)
		}
	}
	return strings.Join(lines, "\n")
}
