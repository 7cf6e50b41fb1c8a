// ABOUTME: Tree builder turns JSON, YAML, TOML, XML and HTML into a uniform arena tree
// ABOUTME: Construction is iterative with an explicit stack and a depth limit

package tree

import (
	"fmt"
	"strconv"
	"strings"

	"textforge-api/core/document"
	"textforge-api/core/domain"
	coreerrors "textforge-api/core/errors"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
)

// DefaultMaxDepth bounds nesting for adversarial input
const DefaultMaxDepth = 512

// NotSupportedMessage is reported for kinds without a tree view
const NotSupportedMessage = "Tree view not supported for this format."

// Result is the outcome of a build; Supported is false for kinds without a
// tree view, which is not an error
type Result struct {
	Tree      *domain.Tree
	Supported bool
	Message   string
}

// Builder builds structural trees
type Builder struct {
	maxDepth int
}

// NewBuilder creates a Builder; a non-positive maxDepth uses DefaultMaxDepth
func NewBuilder(maxDepth int) *Builder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Builder{maxDepth: maxDepth}
}

// Build parses text as kind and returns its tree
func (b *Builder) Build(text string, kind domain.FormatKind) (*Result, error) {
	var (
		t   *domain.Tree
		err error
	)

	switch kind {
	case domain.FormatJSON:
		t, err = b.fromValue(kind, func() (any, error) { return document.DecodeJSON(text) })
	case domain.FormatYAML:
		t, err = b.fromValue(kind, func() (any, error) { return document.DecodeYAML(text) })
	case domain.FormatTOML:
		t, err = b.fromValue(kind, func() (any, error) { return document.DecodeTOML(text) })
	case domain.FormatXML:
		t, err = b.fromXML(text)
	case domain.FormatHTML:
		t, err = b.fromHTML(text)
	default:
		return &Result{Supported: false, Message: NotSupportedMessage}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Result{Tree: t, Supported: true}, nil
}

func (b *Builder) tooDeep() error {
	return coreerrors.NewUnsupported("tree view", fmt.Sprintf("nesting deeper than %d levels", b.maxDepth))
}

func (b *Builder) add(t *domain.Tree, parent int, node domain.StructuralNode) (int, error) {
	if parent >= 0 && t.Nodes[parent].Depth+1 > b.maxDepth {
		return 0, b.tooDeep()
	}
	return t.Add(parent, node), nil
}

type valueFrame struct {
	key    string
	value  any
	parent int
}

func (b *Builder) fromValue(kind domain.FormatKind, decode func() (any, error)) (*domain.Tree, error) {
	root, err := decode()
	if err != nil {
		return nil, err
	}

	t := domain.NewTree(kind)
	stack := []valueFrame{{value: root, parent: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := domain.StructuralNode{Key: f.key}
		var children []valueFrame

		switch v := f.value.(type) {
		case document.Object:
			node.Kind = domain.NodeObject
			for pair := v.Oldest(); pair != nil; pair = pair.Next() {
				children = append(children, valueFrame{key: pair.Key, value: pair.Value})
			}
		case []any:
			node.Kind = domain.NodeArray
			for i, item := range v {
				children = append(children, valueFrame{key: "[" + strconv.Itoa(i) + "]", value: item})
			}
		default:
			node.Kind = scalarKind(v)
			if v == nil {
				node.Text = domain.TextPtr("null")
			} else {
				node.Text = domain.TextPtr(document.ScalarString(v))
			}
		}

		idx, err := b.add(t, f.parent, node)
		if err != nil {
			return nil, err
		}
		for i := len(children) - 1; i >= 0; i-- {
			children[i].parent = idx
			stack = append(stack, children[i])
		}
	}
	return t, nil
}

func scalarKind(v any) domain.NodeKind {
	switch document.KindOf(v) {
	case document.KindNull:
		return domain.NodeNull
	case document.KindBool:
		return domain.NodeBoolean
	case document.KindNumber:
		return domain.NodeNumber
	default:
		return domain.NodeString
	}
}

type xmlFrame struct {
	node   *xmlquery.Node
	parent int
}

func (b *Builder) fromXML(text string) (*domain.Tree, error) {
	doc, err := document.ParseXML(text)
	if err != nil {
		return nil, err
	}

	t := domain.NewTree(domain.FormatXML)
	stack := []xmlFrame{{node: document.XMLRoot(doc), parent: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := domain.StructuralNode{Key: document.XMLName(f.node), Kind: domain.NodeElement}
		for _, a := range f.node.Attr {
			node.Attributes = append(node.Attributes, domain.Attribute{Name: document.XMLAttrName(a), Value: a.Value})
		}
		if s := document.XMLText(f.node); s != "" {
			node.Text = domain.TextPtr(s)
		}

		idx, err := b.add(t, f.parent, node)
		if err != nil {
			return nil, err
		}

		var children []*xmlquery.Node
		for c := f.node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				children = append(children, c)
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, xmlFrame{node: children[i], parent: idx})
		}
	}
	return t, nil
}

type htmlFrame struct {
	sel    *goquery.Selection
	parent int
}

func (b *Builder) fromHTML(text string) (*domain.Tree, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, &coreerrors.ParseError{Format: "HTML", Message: err.Error(), Cause: err}
	}

	t := domain.NewTree(domain.FormatHTML)
	stack := []htmlFrame{{sel: doc.Children().First(), parent: -1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.sel.Length() == 0 {
			continue
		}

		raw := f.sel.Get(0)
		node := domain.StructuralNode{Key: goquery.NodeName(f.sel), Kind: domain.NodeElement}
		for _, a := range raw.Attr {
			node.Attributes = append(node.Attributes, domain.Attribute{Name: a.Key, Value: a.Val})
		}
		if s := directText(raw); s != "" {
			node.Text = domain.TextPtr(s)
		}

		idx, err := b.add(t, f.parent, node)
		if err != nil {
			return nil, err
		}

		children := f.sel.Children()
		for i := children.Length() - 1; i >= 0; i-- {
			stack = append(stack, htmlFrame{sel: children.Eq(i), parent: idx})
		}
	}
	return t, nil
}

// directText joins the element's own text runs, collapsing whitespace
func directText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if s := strings.Join(strings.Fields(c.Data), " "); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " ")
}
