package formatter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	coreerrors "textforge-api/core/errors"

	"gopkg.in/ini.v1"
)

// FormatCSV round-trips rows through a reader and writer, normalizing quoting
// and the delimiter without touching cell values. Rows may differ in length.
func FormatCSV(text string, delimiter rune) (string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		pe := &coreerrors.ParseError{Format: "CSV", Message: err.Error(), Cause: err}
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			pe.Line, pe.Column = csvErr.Line, csvErr.Column
			pe.Message = csvErr.Err.Error()
		}
		return "", pe
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatINI parses sections of key/value pairs and re-emits them as
// "[section]" headers followed by "key = value" lines. Keys are lower-cased
// and comments are dropped.
func FormatINI(text string) (string, error) {
	if line, n := firstINIEntry(text); line != "" && !strings.HasPrefix(line, "[") {
		return "", &coreerrors.ParseError{
			Format:  "INI",
			Line:    n,
			Column:  1,
			Message: fmt.Sprintf("file contains no section headers: %q", line),
		}
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:        true,
		IgnoreContinuation:         true,
		PreserveSurroundedQuote:    true,
		AllowPythonMultilineValues: true,
	}, []byte(text))
	if err != nil {
		return "", &coreerrors.ParseError{Format: "INI", Message: err.Error(), Cause: err}
	}

	var b strings.Builder
	for _, section := range cfg.Sections() {
		keys := section.Keys()
		if section.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}

		b.WriteString("[" + section.Name() + "]\n")
		seen := make(map[string]bool, len(keys))
		for _, key := range keys {
			name := strings.ToLower(key.Name())
			if seen[name] {
				return "", &coreerrors.ParseError{
					Format:  "INI",
					Message: fmt.Sprintf("option %q in section %q already exists", name, section.Name()),
				}
			}
			seen[name] = true

			value := strings.ReplaceAll(key.Value(), "\n", "\n\t")
			b.WriteString(name + " = " + value + "\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// firstINIEntry returns the first line that is neither blank nor a comment,
// with its 1-based line number
func firstINIEntry(text string) (string, int) {
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		return trimmed, i + 1
	}
	return "", 0
}
