package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name:     "message without position",
			err:      &ParseError{Format: "JSON", Message: "unexpected end of input"},
			expected: "invalid JSON: unexpected end of input",
		},
		{
			name:     "message with position",
			err:      &ParseError{Format: "YAML", Line: 3, Column: 7, Message: "mapping values are not allowed"},
			expected: "invalid YAML at line 3, column 7: mapping values are not allowed",
		},
		{
			name:     "falls back to cause",
			err:      NewParseError("XML", errors.New("EOF")),
			expected: "invalid XML: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ParseError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewParseError("TOML", cause)

	if !errors.Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
}

func TestUnsupportedOperationError_Error(t *testing.T) {
	err := NewUnsupported("JSON to TOON", "records do not share the same keys")

	expected := "JSON to TOON not supported: records do not share the same keys"
	if err.Error() != expected {
		t.Errorf("UnsupportedOperationError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestPreconditionError_Error(t *testing.T) {
	err := &PreconditionError{Field: "content", Message: "please provide content"}
	if err.Error() != "content: please provide content" {
		t.Errorf("unexpected message %q", err.Error())
	}

	bare := &PreconditionError{Message: "please provide both original and modified content"}
	if bare.Error() != "please provide both original and modified content" {
		t.Errorf("unexpected message %q", bare.Error())
	}
}

func TestIsHelpers(t *testing.T) {
	parseErr := NewParseError("JSON", errors.New("bad"))
	unsupported := NewUnsupported("tree", "INI")
	precondition := &PreconditionError{Message: "empty"}

	if !IsParse(parseErr) || IsParse(unsupported) {
		t.Error("IsParse misclassified errors")
	}
	if !IsUnsupported(unsupported) || IsUnsupported(precondition) {
		t.Error("IsUnsupported misclassified errors")
	}
	if !IsPrecondition(precondition) || IsPrecondition(parseErr) {
		t.Error("IsPrecondition misclassified errors")
	}
}

func TestIsHelpers_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("format failed: %w", NewParseError("CSV", errors.New("bare quote")))

	if !IsParse(wrapped) {
		t.Error("IsParse should see through wrapping")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := WrapError(base, "context")
	if wrapped.Error() != "context: base" {
		t.Errorf("WrapError() = %v", wrapped)
	}
	if !errors.Is(wrapped, base) {
		t.Error("WrapError should preserve the chain")
	}
}
