package validator

import (
	"fmt"
	"strings"
	"testing"

	coreerrors "textforge-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"]
}`

func TestValidateJSONSchema_Pass(t *testing.T) {
	report, err := ValidateJSONSchema(`{"name": "Ada", "age": 36}`, personSchema)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, JSONSchemaPass, report.Text())
}

func TestValidateJSONSchema_FirstViolation(t *testing.T) {
	report, err := ValidateJSONSchema(`{"name": "Ada", "age": "old"}`, personSchema)
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.True(t, strings.HasPrefix(report.Message, JSONSchemaFail), report.Message)

	require.Len(t, report.Diagnostics, 1)
	d := report.Diagnostics[0]
	assert.Equal(t, "/age", d.Path)
	assert.Equal(t, "type", d.Rule)
	assert.Contains(t, d.Message, "integer")
}

func TestValidateJSONSchema_MissingRequired(t *testing.T) {
	report, err := ValidateJSONSchema(`{"age": 3}`, personSchema)
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Message, "name")
}

func TestValidateJSONSchema_ParseErrors(t *testing.T) {
	_, err := ValidateJSONSchema(`{"name": `, personSchema)
	require.Error(t, err)
	var pe *coreerrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "JSON instance", pe.Format)

	_, err = ValidateJSONSchema(`{}`, `{"type": `)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "JSON Schema", pe.Format)

	_, err = ValidateJSONSchema(`{}`, `{"type": 12}`)
	require.Error(t, err)
	assert.True(t, coreerrors.IsParse(err), "uncompilable schema is a parse error")
}

const personXSD = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="person">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="name" type="xs:string"/>
        <xs:element name="age" type="xs:integer"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func TestValidateXMLXSD(t *testing.T) {
	report, err := ValidateXMLXSD(`<person><name>Ada</name><age>36</age></person>`, personXSD)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, XSDPass, report.Text())

	report, err = ValidateXMLXSD(`<person><name>Ada</name><age>old</age></person>`, personXSD)
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.True(t, strings.HasPrefix(report.Message, XSDFail), report.Message)
	assert.NotEmpty(t, report.Diagnostics)
}

func TestValidateXMLXSD_ParseErrors(t *testing.T) {
	_, err := ValidateXMLXSD(`<person>`, personXSD)
	require.Error(t, err)
	assert.True(t, coreerrors.IsParse(err))

	_, err = ValidateXMLXSD(`<person/>`, `<xs:schema`)
	require.Error(t, err)
	assert.True(t, coreerrors.IsParse(err))
}

func TestLintYAML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "clean document",
			input: "---\nkey: value\nlist:\n  - a\n  - b\n",
		},
		{
			name:  "document start, truthy, colon spacing and trailing spaces",
			input: "key: yes\nfoo:  bar   \n",
			expected: []string{
				`1:1 missing document start "---"`,
				"1:6 truthy value should be one of [false, true]",
				"2:6 too many spaces after colon",
				"2:10 trailing spaces",
			},
		},
		{
			name:     "duplicate keys",
			input:    "---\na: 1\na: 2\n",
			expected: []string{`3:1 duplication of key "a" in mapping`},
		},
		{
			name:  "comments",
			input: "---\nx: 1 # c\n#bad\n",
			expected: []string{
				"2:6 too few spaces before comment",
				"3:2 missing starting space in comment",
			},
		},
		{
			name:  "flow sequence spacing",
			input: "---\nlist: [ 1,2 ]\n",
			expected: []string{
				"2:8 too many spaces inside brackets",
				"2:11 too few spaces after comma",
				"2:12 too many spaces inside brackets",
			},
		},
		{
			name:     "missing final newline",
			input:    "---\na: 1",
			expected: []string{"2:5 no new line character at the end of file"},
		},
		{
			name:  "blank lines",
			input: "---\na: 1\n\n\n\nb: 2\n\n",
			expected: []string{
				"5:1 too many blank lines (3 > 2)",
				"7:1 too many blank lines (1 > 0)",
			},
		},
		{
			name:     "hyphen spacing",
			input:    "---\n-   a\n- b\n",
			expected: []string{"2:4 too many spaces after hyphen"},
		},
		{
			name:  "block scalar content is not linted",
			input: "---\ntext: |\n  key:   value #not a comment\n",
		},
		{
			name:  "long unbreakable words are allowed",
			input: "---\n- " + strings.Repeat("x", 100) + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := LintYAML(tt.input)
			if len(tt.expected) == 0 {
				assert.True(t, report.Valid, report.Text())
				assert.Equal(t, YAMLLintPass, report.Text())
				return
			}
			assert.False(t, report.Valid)
			assert.Equal(t, strings.Join(tt.expected, "\n"), report.Text())
		})
	}
}

func TestLintYAML_LineLength(t *testing.T) {
	line := "k: " + strings.Repeat("ab ", 29) + "ab"
	report := LintYAML("---\n" + line + "\n")

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, fmt.Sprintf("2:81 line too long (%d > 80 characters)", len(line)), report.Diagnostics[0].String())
	assert.Equal(t, "line-length", report.Diagnostics[0].Rule)
}

func TestLintYAML_SyntaxError(t *testing.T) {
	report := LintYAML("---\na: b: c\n")
	assert.False(t, report.Valid)

	var found bool
	for _, d := range report.Diagnostics {
		if d.Rule == "syntax" {
			found = true
			assert.Equal(t, 2, d.Line)
			assert.True(t, strings.HasPrefix(d.Message, "syntax error: "), d.Message)
		}
	}
	assert.True(t, found, "expected a syntax diagnostic in %q", report.Text())
}
