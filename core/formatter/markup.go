package formatter

import (
	"bytes"
	"strings"

	coreerrors "textforge-api/core/errors"
	"textforge-api/pkg/utils/text"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FormatMarkdown inserts a blank line before every heading that is not
// already preceded by one. The first line is left alone and nothing else
// changes.
func FormatMarkdown(source string) string {
	lines := text.SplitLines(source)
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && strings.HasPrefix(line, "#") && strings.TrimSpace(lines[i-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var preview = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown renders Markdown to HTML with GitHub-flavored tables,
// strikethrough, task lists and autolinks. Raw HTML is omitted.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := preview.Convert([]byte(source), &buf); err != nil {
		return "", &coreerrors.ParseError{Format: "Markdown", Message: err.Error(), Cause: err}
	}
	return buf.String(), nil
}

var (
	htmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	htmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// FormatHTML reparses HTML and prints one tag or text run per line, indented
// by one space per nesting level. Fragments stay fragments; html, head and
// body are only emitted when the input is a full document.
func FormatHTML(source string) (string, error) {
	nodes, err := parseHTML(source)
	if err != nil {
		return "", &coreerrors.ParseError{Format: "HTML", Message: err.Error(), Cause: err}
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := prettifyHTML(&b, n, 0); err != nil {
			return "", &coreerrors.ParseError{Format: "HTML", Message: err.Error(), Cause: err}
		}
	}
	return b.String(), nil
}

func parseHTML(source string) ([]*html.Node, error) {
	lower := strings.ToLower(source)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype") {
		doc, err := html.Parse(strings.NewReader(source))
		if err != nil {
			return nil, err
		}
		var nodes []*html.Node
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
		return nodes, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(source), body)
}

func prettifyHTML(b *strings.Builder, n *html.Node, depth int) error {
	pad := strings.Repeat(" ", depth)

	switch n.Type {
	case html.DoctypeNode:
		b.WriteString(pad + "<!DOCTYPE " + n.Data + ">\n")
	case html.CommentNode:
		b.WriteString(pad + "<!--" + n.Data + "-->\n")
	case html.TextNode:
		trimmed := strings.TrimSpace(n.Data)
		if trimmed == "" {
			return nil
		}
		if p := n.Parent; p != nil && (p.Data == "script" || p.Data == "style") {
			b.WriteString(pad + trimmed + "\n")
			return nil
		}
		b.WriteString(pad + htmlTextEscaper.Replace(trimmed) + "\n")
	case html.ElementNode:
		b.WriteString(pad + "<" + n.Data)
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			b.WriteString(" " + name + `="` + htmlAttrEscaper.Replace(a.Val) + `"`)
		}
		if voidElements[n.Data] {
			b.WriteString("/>\n")
			return nil
		}
		b.WriteString(">")

		if n.Data == "pre" || n.Data == "textarea" {
			var inner bytes.Buffer
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if err := html.Render(&inner, c); err != nil {
					return err
				}
			}
			b.WriteString(inner.String() + "</" + n.Data + ">\n")
			return nil
		}

		b.WriteString("\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := prettifyHTML(b, c, depth+1); err != nil {
				return err
			}
		}
		b.WriteString(pad + "</" + n.Data + ">\n")
	}
	return nil
}
