package formatter

import (
	"strings"

	"textforge-api/core/document"

	"github.com/antchfx/xmlquery"
)

const xmlIndent = "    "

var (
	xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// FormatXML parses text into a DOM and re-serializes it with 4-space
// indentation. Whitespace-only text is dropped and an element holding a
// single text run is printed on one line.
func FormatXML(text string) (string, error) {
	doc, err := document.ParseXML(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeXMLDeclaration(&b, doc)
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		writeXMLNode(&b, n, 0)
	}
	return b.String(), nil
}

func writeXMLDeclaration(b *strings.Builder, doc *xmlquery.Node) {
	version, encoding := "1.0", ""
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.DeclarationNode && n.Data == "xml" {
			if v := n.SelectAttr("version"); v != "" {
				version = v
			}
			encoding = n.SelectAttr("encoding")
			break
		}
	}
	if encoding != "" {
		b.WriteString(`<?xml version="` + version + `" encoding="` + encoding + `"?>` + "\n")
		return
	}
	b.WriteString(`<?xml version="` + version + `" ?>` + "\n")
}

// significantChildren skips whitespace-only text runs
func significantChildren(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func writeXMLNode(b *strings.Builder, n *xmlquery.Node, depth int) {
	pad := strings.Repeat(xmlIndent, depth)

	switch n.Type {
	case xmlquery.ElementNode:
		name := document.XMLName(n)
		b.WriteString(pad + "<" + name)
		for _, a := range n.Attr {
			b.WriteString(" " + document.XMLAttrName(a) + `="` + xmlAttrEscaper.Replace(a.Value) + `"`)
		}

		children := significantChildren(n)
		if len(children) == 0 {
			b.WriteString("/>\n")
			return
		}
		if len(children) == 1 && children[0].Type == xmlquery.TextNode {
			b.WriteString(">" + xmlTextEscaper.Replace(children[0].Data) + "</" + name + ">\n")
			return
		}

		b.WriteString(">\n")
		for _, c := range children {
			writeXMLNode(b, c, depth+1)
		}
		b.WriteString(pad + "</" + name + ">\n")
	case xmlquery.TextNode:
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			b.WriteString(pad + xmlTextEscaper.Replace(trimmed) + "\n")
		}
	case xmlquery.CharDataNode:
		b.WriteString(pad + "<![CDATA[" + n.Data + "]]>\n")
	case xmlquery.CommentNode:
		b.WriteString(pad + "<!--" + n.Data + "-->\n")
	case xmlquery.DeclarationNode:
		if n.Data == "xml" {
			return
		}
		b.WriteString(pad + "<?" + n.Data)
		for _, a := range n.Attr {
			b.WriteString(" " + document.XMLAttrName(a) + `="` + xmlAttrEscaper.Replace(a.Value) + `"`)
		}
		b.WriteString("?>\n")
	}
}
