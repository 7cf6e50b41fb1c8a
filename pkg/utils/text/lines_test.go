package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare cr", "a\rb", []string{"a", "b"}},
		{"blank lines", "\n\nx", []string{"", "", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLines(tt.input))
		})
	}
}

func TestSplitLinesKeepEnds(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\r\n", "c"}, SplitLinesKeepEnds("a\nb\r\nc"))
	assert.Nil(t, SplitLinesKeepEnds(""))
}

func TestDedent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"common spaces", "    a\n      b\n    c\n", "a\n  b\nc\n"},
		{"blank lines ignored", "  a\n\n  b", "a\n\nb"},
		{"whitespace-only lines emptied", "  a\n   \n  b\n", "a\n\nb\n"},
		{"mixed tabs and spaces share nothing", "\ta\n  b\n", "\ta\n  b\n"},
		{"no indent", "a\n  b\n", "a\n  b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dedent(tt.input))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "a       b", ExpandTabs("a\tb", 8))
	assert.Equal(t, "abcdefgh        x", ExpandTabs("abcdefgh\tx", 8))
	assert.Equal(t, "x\n        y", ExpandTabs("x\n\ty", 8))
	assert.Equal(t, "plain", ExpandTabs("plain", 8))
}
