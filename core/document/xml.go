package document

import (
	"encoding/xml"
	"errors"
	"strings"

	coreerrors "textforge-api/core/errors"

	"github.com/antchfx/xmlquery"
)

// ParseXML parses text into an xmlquery DOM and requires exactly one root
// element
func ParseXML(text string) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		pe := &coreerrors.ParseError{Format: "XML", Message: err.Error(), Cause: err}
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			pe.Line = syntaxErr.Line
			pe.Message = syntaxErr.Msg
		}
		return nil, pe
	}

	roots := 0
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			roots++
		}
	}
	switch {
	case roots == 0:
		return nil, &coreerrors.ParseError{Format: "XML", Message: "no element found"}
	case roots > 1:
		return nil, &coreerrors.ParseError{Format: "XML", Message: "junk after document element"}
	}
	return doc, nil
}

// XMLRoot returns the document element of a parsed document
func XMLRoot(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// XMLName returns the prefixed tag name of an element
func XMLName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

const xmlNamespaceNS = "http://www.w3.org/XML/1998/namespace"

// XMLAttrName returns the prefixed name of an attribute
func XMLAttrName(a xmlquery.Attr) string {
	switch a.Name.Space {
	case "":
		return a.Name.Local
	case xmlNamespaceNS:
		return "xml:" + a.Name.Local
	}
	return a.Name.Space + ":" + a.Name.Local
}

// XMLText concatenates the direct text and CDATA children of an element,
// trimmed
func XMLText(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
