// ABOUTME: Structural converters between JSON, XML, TOML, TOON, HTML and Markdown
// ABOUTME: XML mapping uses @-prefixed attributes and #text for mixed content

package convert

import (
	"fmt"
	"strings"
	"unicode"

	"textforge-api/core/document"
	coreerrors "textforge-api/core/errors"

	"github.com/antchfx/xmlquery"
)

const (
	// DefaultRootName wraps converted JSON in a single document element
	DefaultRootName = "root"

	attrPrefix = "@"
	textKey    = "#text"
	xmlHeader  = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
)

var (
	xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;",
	)
)

// XMLOptions controls JSON to XML conversion
type XMLOptions struct {
	RootName string
}

// JSONToXML wraps the parsed JSON value in a root element and serializes it
// as tab-indented XML
func JSONToXML(text string, opts XMLOptions) (string, error) {
	value, err := document.DecodeJSON(text)
	if err != nil {
		return "", err
	}
	root := opts.RootName
	if root == "" {
		root = DefaultRootName
	}

	if items, ok := value.([]any); ok {
		if len(items) != 1 {
			return "", coreerrors.NewUnsupported("JSON to XML", fmt.Sprintf("a top-level array needs exactly one item to form a document, got %d", len(items)))
		}
		value = items[0]
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	if err := emitXML(&b, root, value, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func emitXML(b *strings.Builder, name string, value any, depth int) error {
	if items, ok := value.([]any); ok {
		for _, item := range items {
			if _, nested := item.([]any); nested {
				return coreerrors.NewUnsupported("JSON to XML", fmt.Sprintf("nested arrays under %q have no XML form", name))
			}
			if err := emitElement(b, name, item, depth); err != nil {
				return err
			}
		}
		return nil
	}
	return emitElement(b, name, value, depth)
}

func emitElement(b *strings.Builder, name string, value any, depth int) error {
	if !validXMLName(name) {
		return coreerrors.NewUnsupported("JSON to XML", fmt.Sprintf("%q is not a valid element name", name))
	}

	type child struct {
		name  string
		value any
	}
	var (
		attrs    []string
		children []child
		text     *string
	)

	switch v := value.(type) {
	case nil:
	case document.Object:
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			switch {
			case pair.Key == textKey:
				s := document.ScalarString(pair.Value)
				text = &s
			case strings.HasPrefix(pair.Key, attrPrefix):
				attr := strings.TrimPrefix(pair.Key, attrPrefix)
				if !validXMLName(attr) {
					return coreerrors.NewUnsupported("JSON to XML", fmt.Sprintf("%q is not a valid attribute name", attr))
				}
				switch document.KindOf(pair.Value) {
				case document.KindArray, document.KindObject:
					return coreerrors.NewUnsupported("JSON to XML", fmt.Sprintf("attribute %q must be a scalar", attr))
				}
				attrs = append(attrs, " "+attr+`="`+xmlAttrEscaper.Replace(document.ScalarString(pair.Value))+`"`)
			default:
				children = append(children, child{pair.Key, pair.Value})
			}
		}
	default:
		s := document.ScalarString(v)
		text = &s
	}

	pad := strings.Repeat("\t", depth)
	b.WriteString(pad + "<" + name + strings.Join(attrs, ""))

	if len(children) == 0 && (text == nil || *text == "") {
		b.WriteString("/>")
	} else {
		b.WriteString(">")
		if len(children) > 0 {
			b.WriteString("\n")
			for _, c := range children {
				if err := emitXML(b, c.name, c.value, depth+1); err != nil {
					return err
				}
			}
		}
		if text != nil {
			b.WriteString(xmlTextEscaper.Replace(*text))
		}
		if len(children) > 0 {
			b.WriteString(pad)
		}
		b.WriteString("</" + name + ">")
	}

	if depth > 0 {
		b.WriteString("\n")
	}
	return nil
}

// validXMLName accepts names made of letters, digits, '-', '.', '_' and ':'
// that do not start with a digit, '-' or '.'
func validXMLName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), r == '_', r == ':':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// JSONOptions controls XML to JSON conversion
type JSONOptions struct {
	// InferTypes turns text that is a JSON number or boolean into that type
	InferTypes bool
	// UnwrapRoot returns the document element's value without its name
	UnwrapRoot bool
}

// XMLToJSON maps the document element to a JSON value and prints it with
// 4-space indentation
func XMLToJSON(text string, opts JSONOptions) (string, error) {
	doc, err := document.ParseXML(text)
	if err != nil {
		return "", err
	}
	root := document.XMLRoot(doc)

	value := elementValue(root, opts)
	if !opts.UnwrapRoot {
		wrapped := document.NewObject()
		wrapped.Set(document.XMLName(root), value)
		value = wrapped
	}
	return document.EncodeJSON(value, "    ")
}

func elementValue(n *xmlquery.Node, opts JSONOptions) any {
	var obj document.Object
	ensure := func() document.Object {
		if obj == nil {
			obj = document.NewObject()
		}
		return obj
	}

	for _, a := range n.Attr {
		ensure().Set(attrPrefix+document.XMLAttrName(a), scalarValue(a.Value, opts))
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		case xmlquery.ElementNode:
			name := document.XMLName(c)
			v := elementValue(c, opts)
			o := ensure()
			existing, ok := o.Get(name)
			if !ok {
				o.Set(name, v)
				continue
			}
			if list, isList := existing.([]any); isList {
				o.Set(name, append(list, v))
			} else {
				o.Set(name, []any{existing, v})
			}
		}
	}

	data := strings.TrimSpace(text.String())
	switch {
	case obj == nil && data == "":
		return nil
	case obj == nil:
		return scalarValue(data, opts)
	case data != "":
		obj.Set(textKey, scalarValue(data, opts))
	}
	return obj
}

// scalarValue keeps text as a string unless type inference is on and the
// text is a JSON number or boolean
func scalarValue(s string, opts JSONOptions) any {
	if !opts.InferTypes {
		return s
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	v, err := document.DecodeJSON(s)
	if err == nil && document.KindOf(v) == document.KindNumber {
		return v
	}
	return s
}
