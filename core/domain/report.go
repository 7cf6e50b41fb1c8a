// ABOUTME: Report domain model carries validator and linter outcomes
// ABOUTME: A failing report is an expected result, never an error

package domain

import (
	"fmt"
	"strings"
)

// Diagnostic is a single positional finding from a validator or linter
type Diagnostic struct {
	Line    int
	Column  int
	Message string
	// Rule names the lint rule or validator keyword that fired, when known
	Rule string
	// Path is the instance location for schema violations (JSON pointer)
	Path string
}

// String renders the diagnostic as "line:column message"
func (d Diagnostic) String() string {
	if d.Line == 0 && d.Column == 0 {
		return d.Message
	}
	return fmt.Sprintf("%d:%d %s", d.Line, d.Column, d.Message)
}

// Report is the human-readable pass/fail result of a validation
type Report struct {
	Valid       bool
	Message     string
	Diagnostics []Diagnostic
}

// PassReport builds a passing report
func PassReport(message string) *Report {
	return &Report{Valid: true, Message: message}
}

// FailReport builds a failing report
func FailReport(message string, diagnostics ...Diagnostic) *Report {
	return &Report{Valid: false, Message: message, Diagnostics: diagnostics}
}

// Text renders the report the way the front end displays it
func (r *Report) Text() string {
	if r == nil {
		return ""
	}
	if r.Message != "" {
		return r.Message
	}
	lines := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
