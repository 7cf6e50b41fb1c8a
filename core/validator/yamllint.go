package validator

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"textforge-api/core/domain"

	"gopkg.in/yaml.v3"
)

// LintRules holds the thresholds of the default rule set
type LintRules struct {
	MaxLineLength        int
	MaxEmptyLines        int
	MaxEmptyLinesAtStart int
	MaxEmptyLinesAtEnd   int
	MinSpacesForComment  int
	RequireDocumentStart bool
}

// DefaultLintRules mirrors yamllint's "extends: default" configuration
func DefaultLintRules() LintRules {
	return LintRules{
		MaxLineLength:        80,
		MaxEmptyLines:        2,
		MinSpacesForComment:  2,
		RequireDocumentStart: true,
	}
}

var (
	truthyValues = map[string]bool{
		"YES": true, "Yes": true, "yes": true, "NO": true, "No": true, "no": true,
		"TRUE": true, "True": true, "FALSE": true, "False": true,
		"ON": true, "On": true, "on": true, "OFF": true, "Off": true, "off": true,
	}
	blockScalarRe = regexp.MustCompile(`(^|[\s:-])[|>][0-9+-]*\s*(#.*)?$`)
	syntaxLineRe  = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)
)

// LintYAML runs the default rule set over text
func LintYAML(text string) *domain.Report {
	return Lint(text, DefaultLintRules())
}

// Lint runs the rule set over text. Every diagnostic is rendered as
// "line:column message", sorted by position.
func Lint(text string, rules LintRules) *domain.Report {
	l := &linter{rules: rules}
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	l.checkLines(text, lines)
	l.checkTokens(lines)
	l.checkDocuments(text)

	if len(l.problems) == 0 {
		return domain.PassReport(YAMLLintPass)
	}

	sort.SliceStable(l.problems, func(i, j int) bool {
		if l.problems[i].Line != l.problems[j].Line {
			return l.problems[i].Line < l.problems[j].Line
		}
		return l.problems[i].Column < l.problems[j].Column
	})
	return domain.FailReport("", l.problems...)
}

type linter struct {
	rules    LintRules
	problems []domain.Diagnostic
}

func (l *linter) add(line, column int, rule, format string, args ...any) {
	l.problems = append(l.problems, domain.Diagnostic{
		Line:    line,
		Column:  column,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	})
}

// checkLines applies the rules that only look at raw lines
func (l *linter) checkLines(text string, lines []string) {
	if len(lines) == 0 {
		return
	}

	if strings.HasSuffix(lines[0], "\r\n") {
		l.add(1, len(strings.TrimSuffix(lines[0], "\r\n"))+1, "new-lines", `wrong new line character: expected \n`)
	}

	blankRun := 0
	seenContent := false
	for i, raw := range lines {
		n := i + 1
		line := strings.TrimRight(raw, "\r\n")

		if trimmed := strings.TrimRight(line, " \t"); len(trimmed) != len(line) {
			l.add(n, len(trimmed)+1, "trailing-spaces", "trailing spaces")
		}

		if length := utf8.RuneCountInString(line); length > l.rules.MaxLineLength && breakable(line) {
			l.add(n, l.rules.MaxLineLength+1, "line-length", "line too long (%d > %d characters)", length, l.rules.MaxLineLength)
		}

		if line == "" {
			blankRun++
			continue
		}
		if blankRun > 0 {
			limit := l.rules.MaxEmptyLines
			if !seenContent {
				limit = l.rules.MaxEmptyLinesAtStart
			}
			if blankRun > limit {
				l.add(n-1, 1, "empty-lines", "too many blank lines (%d > %d)", blankRun, limit)
			}
		}
		blankRun = 0
		seenContent = true
	}
	if blankRun > 0 {
		limit := l.rules.MaxEmptyLinesAtEnd
		if !seenContent {
			limit = l.rules.MaxEmptyLinesAtStart
		}
		if blankRun > limit {
			l.add(len(lines), 1, "empty-lines", "too many blank lines (%d > %d)", blankRun, limit)
		}
	}

	if !strings.HasSuffix(text, "\n") {
		last := lines[len(lines)-1]
		l.add(len(lines), utf8.RuneCountInString(last)+1, "new-line-at-end-of-file", "no new line character at the end of file")
	}
}

// breakable reports whether a long line contains a space after its first
// word, so it could have been wrapped
func breakable(line string) bool {
	start := len(line) - len(strings.TrimLeft(line, " "))
	if start == len(line) {
		return false
	}
	switch line[start] {
	case '#':
		for start < len(line) && line[start] == '#' {
			start++
		}
		start++
	case '-':
		start += 2
	}
	if start >= len(line) {
		return false
	}
	return strings.Contains(line[start:], " ")
}

// checkTokens applies the spacing rules for comments, colons, hyphens, commas
// and flow collections, scanning outside quotes and block scalars
func (l *linter) checkTokens(lines []string) {
	flowDepth := 0
	blockIndent := -1
	documentStarted := !l.rules.RequireDocumentStart

	for i, raw := range lines {
		n := i + 1
		line := strings.TrimRight(raw, "\r\n")
		indent := len(line) - len(strings.TrimLeft(line, " "))
		content := strings.TrimSpace(line)

		if blockIndent >= 0 {
			if content == "" || indent > blockIndent {
				continue
			}
			blockIndent = -1
		}

		if !documentStarted && content != "" && !strings.HasPrefix(content, "#") && !strings.HasPrefix(content, "%") {
			documentStarted = true
			if content != "---" && !strings.HasPrefix(content, "--- ") {
				l.add(n, indent+1, "document-start", `missing document start "---"`)
			}
		}

		l.scanLine(n, line, &flowDepth)

		if flowDepth == 0 && blockScalarRe.MatchString(stripComment(line)) {
			blockIndent = indent
		}
	}
}

// stripComment returns line without a trailing comment outside quotes
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case (c == '\'' || c == '"') && tokenStart(line, i):
			quote = c
		case c == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t'):
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}

// tokenStart reports whether position i begins a token
func tokenStart(line string, i int) bool {
	if i == 0 {
		return true
	}
	switch line[i-1] {
	case ' ', '\t', '[', '{', ',':
		return true
	}
	return false
}

func nextNonSpace(line string, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

func prevNonSpace(line string, i int) int {
	for i >= 0 && (line[i] == ' ' || line[i] == '\t') {
		i--
	}
	return i
}

func (l *linter) scanLine(n int, line string, flowDepth *int) {
	var quote byte
	lineStart := true

	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == quote {
				if quote == '\'' && i+1 < len(line) && line[i+1] == '\'' {
					i++
					continue
				}
				if quote == '"' && line[i-1] == '\\' {
					continue
				}
				quote = 0
			}
			continue
		}

		if c == ' ' || c == '\t' {
			continue
		}
		atStart := lineStart
		lineStart = false

		switch {
		case c == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t'):
			l.checkComment(n, line, i, atStart)
			return
		case (c == '\'' || c == '"') && tokenStart(line, i):
			quote = c
		case c == '-' && (atStart || line[i-1] == ' ') && i+1 < len(line) && line[i+1] == ' ' && *flowDepth == 0:
			if next := nextNonSpace(line, i+1); next < len(line) && next-i-1 > 1 && line[next] != '#' {
				l.add(n, next, "hyphens", "too many spaces after hyphen")
			}
			lineStart = true
		case c == ':' && (i+1 == len(line) || line[i+1] == ' ' || (*flowDepth > 0 && strings.ContainsRune(",]}", rune(line[i+1])))):
			if prev := prevNonSpace(line, i-1); prev >= 0 && prev < i-1 && line[prev] != '?' {
				l.add(n, i, "colons", "too many spaces before colon")
			}
			if next := nextNonSpace(line, i+1); next < len(line) && next-i-1 > 1 && line[next] != '#' {
				l.add(n, next, "colons", "too many spaces after colon")
			}
		case (c == '[' || c == '{') && (*flowDepth > 0 || tokenStart(line, i)):
			*flowDepth++
			l.checkFlowOpen(n, line, i)
		case (c == ']' || c == '}') && *flowDepth > 0:
			*flowDepth--
			l.checkFlowClose(n, line, i)
		case c == ',' && *flowDepth > 0:
			if prev := prevNonSpace(line, i-1); prev >= 0 && prev < i-1 {
				l.add(n, i, "commas", "too many spaces before comma")
			}
			next := nextNonSpace(line, i+1)
			switch {
			case next >= len(line) || line[next] == '#':
			case next == i+1:
				l.add(n, next+1, "commas", "too few spaces after comma")
			case next-i-1 > 1:
				l.add(n, next, "commas", "too many spaces after comma")
			}
		}
	}
}

func flowNoun(c byte) string {
	if c == '[' || c == ']' {
		return "brackets"
	}
	return "braces"
}

func (l *linter) checkFlowOpen(n int, line string, i int) {
	next := nextNonSpace(line, i+1)
	if next == i+1 || next >= len(line) || line[next] == '#' {
		return
	}
	if line[next] == ']' || line[next] == '}' {
		l.add(n, next, flowNoun(line[i]), "too many spaces inside empty %s", flowNoun(line[i]))
		return
	}
	l.add(n, next, flowNoun(line[i]), "too many spaces inside %s", flowNoun(line[i]))
}

func (l *linter) checkFlowClose(n int, line string, i int) {
	prev := prevNonSpace(line, i-1)
	if prev < 0 || prev == i-1 || line[prev] == '[' || line[prev] == '{' {
		return
	}
	l.add(n, i, flowNoun(line[i]), "too many spaces inside %s", flowNoun(line[i]))
}

func (l *linter) checkComment(n int, line string, i int, ownLine bool) {
	if !ownLine {
		if prev := prevNonSpace(line, i-1); i-prev-1 < l.rules.MinSpacesForComment {
			l.add(n, i+1, "comments", "too few spaces before comment")
		}
	}

	if n == 1 && i == 0 && strings.HasPrefix(line, "#!") {
		return
	}
	start := i
	for start < len(line) && line[start] == '#' {
		start++
	}
	if start < len(line) && line[start] != ' ' {
		l.add(n, start+1, "comments", "missing starting space in comment")
	}
}

// checkDocuments parses every document for the semantic rules and reports
// syntax errors
func (l *linter) checkDocuments(text string) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			line, msg := 1, strings.TrimPrefix(err.Error(), "yaml: ")
			if m := syntaxLineRe.FindStringSubmatch(err.Error()); m != nil {
				line, _ = strconv.Atoi(m[1])
				msg = m[2]
			}
			l.add(line, 1, "syntax", "syntax error: %s (syntax)", msg)
			return
		}
		l.walk(&node)
	}
}

func (l *linter) walk(root *yaml.Node) {
	stack := []*yaml.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Kind {
		case yaml.ScalarNode:
			if n.Style == 0 && truthyValues[n.Value] {
				l.add(n.Line, n.Column, "truthy", "truthy value should be one of [false, true]")
			}
		case yaml.MappingNode:
			seen := make(map[string]bool, len(n.Content)/2)
			for i := 0; i+1 < len(n.Content); i += 2 {
				key := n.Content[i]
				if key.Kind == yaml.ScalarNode && key.Value != "<<" {
					if seen[key.Value] {
						l.add(key.Line, key.Column, "key-duplicates", "duplication of key %q in mapping", key.Value)
					}
					seen[key.Value] = true
				}
			}
		}

		for i := len(n.Content) - 1; i >= 0; i-- {
			stack = append(stack, n.Content[i])
		}
	}
}
