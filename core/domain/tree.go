// ABOUTME: Structural tree domain model used to present JSON, YAML and XML uniformly
// ABOUTME: Nodes live in an arena and reference children by index

package domain

// NodeKind classifies a structural node
type NodeKind string

// Node kinds
const (
	NodeObject  NodeKind = "object"
	NodeArray   NodeKind = "array"
	NodeString  NodeKind = "string"
	NodeNumber  NodeKind = "number"
	NodeBoolean NodeKind = "boolean"
	NodeNull    NodeKind = "null"
	NodeElement NodeKind = "element"
)

// Attribute is one key/value pair on an element node, kept in document order
type Attribute struct {
	Name  string
	Value string
}

// StructuralNode is a tree node with a key or tag, optional attributes,
// optional text and ordered children
type StructuralNode struct {
	Key        string
	Kind       NodeKind
	Attributes []Attribute
	Text       *string
	Children   []int
	Depth      int
}

// Tree is an arena of nodes; Nodes[Root] is the document root
type Tree struct {
	Format FormatKind
	Nodes  []StructuralNode
	Root   int
}

// NewTree creates an empty tree for the given format
func NewTree(format FormatKind) *Tree {
	return &Tree{Format: format, Root: -1}
}

// Add appends a node to the arena, links it under parent (or makes it the root
// when parent is negative) and returns its index
func (t *Tree) Add(parent int, node StructuralNode) int {
	idx := len(t.Nodes)
	if parent >= 0 {
		node.Depth = t.Nodes[parent].Depth + 1
	}
	t.Nodes = append(t.Nodes, node)
	if parent < 0 {
		t.Root = idx
	} else {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	}
	return idx
}

// Node returns the node at idx
func (t *Tree) Node(idx int) *StructuralNode {
	return &t.Nodes[idx]
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// TextPtr returns a pointer to a copy of s
func TextPtr(s string) *string {
	return &s
}
