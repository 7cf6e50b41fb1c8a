package formatter

import (
	"context"
	"strings"
	"testing"

	"textforge-api/core/document"
	"textforge-api/core/domain"
	coreerrors "textforge-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestFormatter_EveryKindHasAnAdapter(t *testing.T) {
	f := New(DefaultStrategies())
	for _, kind := range domain.AllFormats {
		assert.True(t, f.Supports(kind), "no adapter for %s", kind)
	}
	assert.Len(t, f.adapters, len(domain.AllFormats))
}

func TestFormatter_UnknownKind(t *testing.T) {
	f := New(Strategies{})
	_, err := f.Format(context.Background(), "x", domain.FormatKind("txt"))
	require.Error(t, err)
	assert.True(t, coreerrors.IsUnsupported(err))
}

func TestFormatter_DispatchesByKind(t *testing.T) {
	f := New(Strategies{})
	ctx := context.Background()

	out, err := f.Format(ctx, `{"b":1,"a":[true]}`, domain.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"b\": 1,\n    \"a\": [\n        true\n    ]\n}", out)

	out, err = f.Format(ctx, "a: [1, 2]\n", domain.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "a:\n    - 1\n    - 2\n", out)
}

func TestFormatJSON_Idempotent(t *testing.T) {
	inputs := []string{
		`{"z":1,"a":{"nested":[1,2.50,{"k":"v"}]},"u":"ünïcode","h":"<b>&</b>"}`,
		`[]`,
		`"just a string"`,
		`[1e3, -0.0, 12345678901234567890]`,
	}

	for _, input := range inputs {
		once, err := FormatJSON(input)
		require.NoError(t, err)
		twice, err := FormatJSON(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestFormatJSON_KeepsNonASCIILiteral(t *testing.T) {
	out, err := FormatJSON(`{"name":"café ☕"}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"café ☕\"\n}", out)
}

func TestFormatJSON_ParseError(t *testing.T) {
	_, err := FormatJSON(`{"a": }`)
	require.Error(t, err)
	assert.True(t, coreerrors.IsParse(err))
}

func TestFormatYAML_SemanticRoundTrip(t *testing.T) {
	inputs := []string{
		"name: demo\nitems:\n- a\n- b: {c: 1}\nempty: []\n",
		"anchors:\n  base: &base {x: 1}\n  copy: *base\n",
		"- 1\n- two\n- 3.5\n- null\n- true\n",
	}

	for _, input := range inputs {
		formatted, err := FormatYAML(input)
		require.NoError(t, err)

		original, err := document.DecodeYAML(input)
		require.NoError(t, err)
		reparsed, err := document.DecodeYAML(formatted)
		require.NoError(t, err)
		assert.True(t, document.Equal(original, reparsed), "mismatch after formatting:\n%s", formatted)
	}
}

func TestFormatYAML_RejectsCustomTags(t *testing.T) {
	_, err := FormatYAML("x: !!python/object:os.system ls\n")
	require.Error(t, err)
	assert.True(t, coreerrors.IsParse(err))
}

func TestFormatXML(t *testing.T) {
	input := `<root><a x="1">hi</a><b/><c>  <d>t &amp; u</d>  </c><!-- note --></root>`

	out, err := FormatXML(input)
	require.NoError(t, err)

	expected := "<?xml version=\"1.0\" ?>\n" +
		"<root>\n" +
		"    <a x=\"1\">hi</a>\n" +
		"    <b/>\n" +
		"    <c>\n" +
		"        <d>t &amp; u</d>\n" +
		"    </c>\n" +
		"    <!-- note -->\n" +
		"</root>\n"
	assert.Equal(t, expected, out)

	again, err := FormatXML(out)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestFormatXML_KeepsDeclaration(t *testing.T) {
	out, err := FormatXML(`<?xml version="1.0" encoding="UTF-8"?><r/>`)
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<r/>\n", out)
}

func TestFormatXML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mismatched tags", "<a><b></a>"},
		{"empty", ""},
		{"two roots", "<a/><b/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormatXML(tt.input)
			require.Error(t, err)
			assert.True(t, coreerrors.IsParse(err))
		})
	}
}

func TestFormatCSV(t *testing.T) {
	out, err := FormatCSV("a;b\n\"x,1\";2\nlonger;row;here\n", ';')
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\"x,1\",2\nlonger,row,here\n", out)
}

func TestFormatCSV_ParseError(t *testing.T) {
	_, err := FormatCSV("a,\"b\nc", ',')
	require.Error(t, err)

	var pe *coreerrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "CSV", pe.Format)
}

func TestFormatTOML_Writers(t *testing.T) {
	input := "b = 1\na = \"x\"\n[t]\nk = true\n"

	out, err := FormatTOML(input, GoTOMLWriter{})
	require.NoError(t, err)
	original, err := document.DecodeTOML(input)
	require.NoError(t, err)
	reparsed, err := document.DecodeTOML(out)
	require.NoError(t, err)
	assert.True(t, document.Equal(original, reparsed))

	out, err = FormatTOML(input, JSONFallbackWriter{})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": \"x\",\n    \"b\": 1,\n    \"t\": {\n        \"k\": true\n    }\n}", out)
}

func TestFormatTOML_ParseError(t *testing.T) {
	_, err := FormatTOML("a = = 1", GoTOMLWriter{})
	require.Error(t, err)
	assert.True(t, coreerrors.IsParse(err))
}

func TestFormatINI(t *testing.T) {
	input := "; comment\n[Server]\nHost = example.com\nPort=8080\n\n[empty]\n"

	out, err := FormatINI(input)
	require.NoError(t, err)
	assert.Equal(t, "[Server]\nhost = example.com\nport = 8080\n\n[empty]\n\n", out)
}

func TestFormatINI_Errors(t *testing.T) {
	_, err := FormatINI("key = value\n[s]\n")
	require.Error(t, err)
	var pe *coreerrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
	assert.Contains(t, pe.Message, "no section headers")

	_, err = FormatINI("[s]\nName = a\nname = b\n")
	require.Error(t, err)
	assert.True(t, coreerrors.IsParse(err))
}

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"heading after text", "# Title\ntext\n## Sub\n\n## Other\nmore", "# Title\ntext\n\n## Sub\n\n## Other\nmore"},
		{"heading at start untouched", "# Top\n", "# Top"},
		{"whitespace-only line counts as blank", "a\n   \n# H", "a\n   \n# H"},
		{"no headings", "plain\ntext  ", "plain\ntext  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMarkdown(tt.input))
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Hi\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Hi</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>gone</del>")
}

func TestFormatHTML_Fragment(t *testing.T) {
	out, err := FormatHTML(`<div><p>Hello <b>world</b></p><br><img src="a.png" alt="x &amp; y"></div>`)
	require.NoError(t, err)

	expected := "<div>\n" +
		" <p>\n" +
		"  Hello\n" +
		"  <b>\n" +
		"   world\n" +
		"  </b>\n" +
		" </p>\n" +
		" <br/>\n" +
		" <img src=\"a.png\" alt=\"x &amp; y\"/>\n" +
		"</div>\n"
	assert.Equal(t, expected, out)
}

func TestFormatHTML_Document(t *testing.T) {
	out, err := FormatHTML("<!DOCTYPE html><html><head><title>T</title></head><body><pre>  keep\n me</pre></body></html>")
	require.NoError(t, err)

	expected := "<!DOCTYPE html>\n" +
		"<html>\n" +
		" <head>\n" +
		"  <title>\n" +
		"   T\n" +
		"  </title>\n" +
		" </head>\n" +
		" <body>\n" +
		"  <pre>  keep\n me</pre>\n" +
		" </body>\n" +
		"</html>\n"
	assert.Equal(t, expected, out)
}

func TestPrettifyHTML_ReturnsRenderErrors(t *testing.T) {
	br := &html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br}
	br.AppendChild(&html.Node{Type: html.TextNode, Data: "x"})
	pre := &html.Node{Type: html.ElementNode, Data: "pre", DataAtom: atom.Pre}
	pre.AppendChild(br)

	var b strings.Builder
	err := prettifyHTML(&b, pre, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "void element")
}
