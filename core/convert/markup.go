package convert

import (
	"bytes"

	coreerrors "textforge-api/core/errors"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithXHTML()),
)

// HTMLToMarkdown converts an HTML document or fragment to Markdown
func HTMLToMarkdown(source string) (string, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(source)
	if err != nil {
		return "", &coreerrors.ParseError{Format: "HTML", Message: err.Error(), Cause: err}
	}
	return markdown, nil
}

// MarkdownToHTML renders Markdown as XHTML with generated heading ids
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(source), &buf); err != nil {
		return "", coreerrors.WrapError(err, "render markdown")
	}
	return buf.String(), nil
}
