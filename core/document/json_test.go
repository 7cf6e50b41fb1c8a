package document

import (
	"encoding/json"
	"testing"

	coreerrors "textforge-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_PreservesKeyOrder(t *testing.T) {
	v, err := DecodeJSON(`{"z": 1, "a": {"y": true, "b": null}, "m": [1, "two"]}`)
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, Keys(obj))

	inner, _ := obj.Get("a")
	assert.Equal(t, []string{"y", "b"}, Keys(inner.(Object)))

	list, _ := obj.Get("m")
	assert.Equal(t, []any{json.Number("1"), "two"}, list)
}

func TestDecodeJSON_Scalars(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{`"text"`, "text"},
		{`12.50`, json.Number("12.50")},
		{`false`, false},
		{`null`, nil},
		{`[]`, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := DecodeJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"truncated object", `{"a": 1`},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"missing colon", `{"a" 1}`},
		{"bare word", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(tt.input)
			require.Error(t, err)
			assert.True(t, coreerrors.IsParse(err), "expected ParseError, got %T", err)
		})
	}
}

func TestDecodeJSON_ErrorPosition(t *testing.T) {
	_, err := DecodeJSON("{\n  \"a\": 1,\n  \"b\": ]\n}")
	require.Error(t, err)

	var pe *coreerrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
}

func TestDecodeJSON_TrailingDataPosition(t *testing.T) {
	tests := []struct {
		input string
		line  int
		col   int
	}{
		{`{"a": 1} x`, 1, 10},
		{`{"a": 1} {"b": 2}`, 1, 10},
		{"[1]\n\n  2", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := DecodeJSON(tt.input)
			var pe *coreerrors.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.col, pe.Column)
			assert.Contains(t, pe.Message, "extra data")
		})
	}
}

func TestEncodeJSON_Indented(t *testing.T) {
	v, err := DecodeJSON(`{"name":"café","tags":["<a>", "b"],"empty":{},"none":[]}`)
	require.NoError(t, err)

	out, err := EncodeJSON(v, "    ")
	require.NoError(t, err)

	expected := "{\n" +
		"    \"name\": \"café\",\n" +
		"    \"tags\": [\n" +
		"        \"<a>\",\n" +
		"        \"b\"\n" +
		"    ],\n" +
		"    \"empty\": {},\n" +
		"    \"none\": []\n" +
		"}"
	assert.Equal(t, expected, out)
}

func TestEncodeJSON_SingleLine(t *testing.T) {
	v, err := DecodeJSON(`{"a": [1, 2], "b": {"c": "d"}}`)
	require.NoError(t, err)

	out, err := EncodeJSON(v, "")
	require.NoError(t, err)
	assert.Equal(t, `{"a": [1, 2], "b": {"c": "d"}}`, out)
}

func TestEncodeJSON_Floats(t *testing.T) {
	out, err := EncodeJSON([]any{1.0, 2.5, 1e20}, "")
	require.NoError(t, err)
	assert.Equal(t, `[1.0, 2.5, 1e+20]`, out)
}

func TestEqual(t *testing.T) {
	a, _ := DecodeJSON(`{"a": 1, "b": [true, null]}`)
	b, _ := DecodeJSON(`{"b": [true, null], "a": 1.0}`)
	c, _ := DecodeJSON(`{"a": 2, "b": [true, null]}`)

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal("1", json.Number("1")))
}

func TestPosition(t *testing.T) {
	line, col := Position("ab\ncd\nef", 4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}
