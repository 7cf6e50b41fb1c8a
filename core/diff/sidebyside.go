package diff

import (
	"html"
	"strings"

	"textforge-api/core/domain"
	"textforge-api/pkg/utils/text"
)

const (
	tableStyle = "width:100%; border-collapse:collapse; font-family:monospace;"
	cellStyle  = "padding:2px 6px; border:1px solid #ddd; vertical-align:top; white-space:pre-wrap;"
)

// SideBySideResult carries the HTML table and the rows it was built from
type SideBySideResult struct {
	HTML string
	Rows []domain.SideBySideRow
}

// SideBySide pairs the lines of both texts by index, padding the shorter
// side with empty lines. Rows whose lines differ carry character segments.
func SideBySide(original, modified string) *SideBySideResult {
	a, b := text.SplitLines(original), text.SplitLines(modified)
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	rows := make([]domain.SideBySideRow, 0, n)
	for i := 0; i < n; i++ {
		left, right := lineAt(a, i), lineAt(b, i)
		if left == right {
			rows = append(rows, domain.SideBySideRow{
				Index: i,
				Kind:  domain.RowEqual,
				Left:  []domain.Segment{{Tag: domain.OpEqual, Text: left}},
				Right: []domain.Segment{{Tag: domain.OpEqual, Text: right}},
			})
			continue
		}
		l, r := charSegments(left, right)
		rows = append(rows, domain.SideBySideRow{Index: i, Kind: domain.RowChanged, Left: l, Right: r})
	}

	return &SideBySideResult{HTML: renderSideBySide(rows), Rows: rows}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func charSegments(left, right string) ([]domain.Segment, []domain.Segment) {
	a, b := []rune(left), []rune(right)
	var l, r []domain.Segment
	for _, op := range CharOpcodes(left, right) {
		if op.I2 > op.I1 && op.Tag != domain.OpInsert {
			l = append(l, domain.Segment{Tag: op.Tag, Text: string(a[op.I1:op.I2])})
		}
		if op.J2 > op.J1 && op.Tag != domain.OpDelete {
			r = append(r, domain.Segment{Tag: op.Tag, Text: string(b[op.J1:op.J2])})
		}
	}
	return l, r
}

func renderSideBySide(rows []domain.SideBySideRow) string {
	var sb strings.Builder
	sb.WriteString(`<table style="` + tableStyle + `">` + "\n")
	sb.WriteString(`<tr style="background-color:` + ColorHeader + `;">`)
	sb.WriteString(`<th style="` + cellStyle + `">Original</th><th style="` + cellStyle + `">Modified</th></tr>` + "\n")
	for _, row := range rows {
		if row.Kind == domain.RowEqual {
			sb.WriteString(`<tr style="background-color:` + ColorNeutral + `;">`)
		} else {
			sb.WriteString("<tr>")
		}
		sb.WriteString(`<td style="` + cellStyle + `">` + renderSegments(row.Left, ColorRemoved) + "</td>")
		sb.WriteString(`<td style="` + cellStyle + `">` + renderSegments(row.Right, ColorAdded) + "</td>")
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>")
	return sb.String()
}

// renderSegments leaves equal runs unstyled and colors everything else
func renderSegments(segments []domain.Segment, color string) string {
	var sb strings.Builder
	for _, s := range segments {
		escaped := html.EscapeString(s.Text)
		if s.Tag == domain.OpEqual {
			sb.WriteString(escaped)
			continue
		}
		sb.WriteString(span(color, escaped))
	}
	return sb.String()
}
