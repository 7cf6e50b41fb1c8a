// ABOUTME: Format domain model enumerates the structured-text formats the tool understands
// ABOUTME: Provides parsing of format names and file extensions into a closed FormatKind set

package domain

import (
	"fmt"
	"strings"
)

// FormatKind selects which adapter handles a piece of raw content
type FormatKind string

// Supported format kinds
const (
	FormatJSON     FormatKind = "json"
	FormatXML      FormatKind = "xml"
	FormatYAML     FormatKind = "yaml"
	FormatCSV      FormatKind = "csv"
	FormatTOML     FormatKind = "toml"
	FormatINI      FormatKind = "ini"
	FormatMarkdown FormatKind = "markdown"
	FormatHTML     FormatKind = "html"
	FormatSQL      FormatKind = "sql"
	FormatPython   FormatKind = "python"
)

// AllFormats lists every FormatKind in display order
var AllFormats = []FormatKind{
	FormatJSON,
	FormatXML,
	FormatYAML,
	FormatCSV,
	FormatTOML,
	FormatINI,
	FormatMarkdown,
	FormatHTML,
	FormatSQL,
	FormatPython,
}

var formatAliases = map[string]FormatKind{
	"json":     FormatJSON,
	"xml":      FormatXML,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
	"csv":      FormatCSV,
	"toml":     FormatTOML,
	"ini":      FormatINI,
	"cfg":      FormatINI,
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"html":     FormatHTML,
	"htm":      FormatHTML,
	"sql":      FormatSQL,
	"python":   FormatPython,
	"py":       FormatPython,
}

// ParseFormatKind resolves a format name or file extension, case-insensitively
func ParseFormatKind(name string) (FormatKind, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if kind, ok := formatAliases[key]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// Valid reports whether k is one of the supported kinds
func (k FormatKind) Valid() bool {
	for _, f := range AllFormats {
		if f == k {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable name used in messages
func (k FormatKind) DisplayName() string {
	switch k {
	case FormatMarkdown:
		return "Markdown"
	case FormatPython:
		return "Python"
	case "":
		return "unknown"
	default:
		return strings.ToUpper(string(k))
	}
}

// Extension returns the preferred file extension for downloads
func (k FormatKind) Extension() string {
	switch k {
	case FormatMarkdown:
		return "md"
	case FormatPython:
		return "py"
	default:
		return string(k)
	}
}

// SupportsTree reports whether the tree builder can render this kind
func (k FormatKind) SupportsTree() bool {
	switch k {
	case FormatJSON, FormatYAML, FormatXML, FormatTOML, FormatHTML:
		return true
	}
	return false
}
