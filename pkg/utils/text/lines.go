// ABOUTME: Line utilities shared by the formatters and the diff renderers
// ABOUTME: Provides line splitting, common-indent removal and tab expansion

package text

import (
	"strings"
)

// SplitLines splits s on \n, \r\n and \r. A trailing line break does not
// produce an empty final element.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// SplitLinesKeepEnds is SplitLines but every element keeps its line break
func SplitLinesKeepEnds(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i+1])
			start = i + 1
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// Dedent removes whitespace common to the start of every non-blank line.
// Lines made only of spaces and tabs are emptied.
func Dedent(s string) string {
	lines := strings.SplitAfter(s, "\n")

	var margin string
	first := true
	for _, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		if strings.TrimLeft(body, " \t") == "" {
			continue
		}
		indent := body[:len(body)-len(strings.TrimLeft(body, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}

	var b strings.Builder
	for _, line := range lines {
		body := strings.TrimRight(line, "\r\n")
		ending := line[len(body):]
		if strings.TrimLeft(body, " \t") == "" {
			b.WriteString(ending)
			continue
		}
		b.WriteString(strings.TrimPrefix(body, margin))
		b.WriteString(ending)
	}
	return b.String()
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// ExpandTabs replaces tabs with spaces up to the next multiple of tabSize,
// resetting the column at every line break
func ExpandTabs(s string, tabSize int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			if tabSize > 0 {
				n := tabSize - col%tabSize
				b.WriteString(strings.Repeat(" ", n))
				col += n
			}
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
