package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	coreerrors "textforge-api/core/errors"

	"gopkg.in/yaml.v3"
)

// maxYAMLNodes bounds alias expansion so a small document cannot expand
// into an unbounded value
const maxYAMLNodes = 1_000_000

var yamlLineRe = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

// safeTags are the tags a safe loader constructs; anything else is rejected
var safeTags = map[string]bool{
	"!!str":       true,
	"!!int":       true,
	"!!float":     true,
	"!!bool":      true,
	"!!null":      true,
	"!!timestamp": true,
	"!!binary":    true,
	"!!map":       true,
	"!!seq":       true,
	"!!merge":     true,
}

// DecodeYAML parses a single YAML document into an ordered value. Custom tags
// are rejected, aliases are expanded and an empty stream decodes to nil.
func DecodeYAML(text string) (any, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var node yaml.Node
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, yamlParseError(err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, yamlParseError(err)
		}
		return nil, &coreerrors.ParseError{
			Format:  "YAML",
			Line:    extra.Line,
			Column:  extra.Column,
			Message: "expected a single document in the stream",
		}
	}

	budget := maxYAMLNodes
	return fromYAMLNode(&node, &budget)
}

func yamlParseError(err error) *coreerrors.ParseError {
	pe := &coreerrors.ParseError{Format: "YAML", Message: strings.TrimPrefix(err.Error(), "yaml: "), Cause: err}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			pe.Column, _ = strconv.Atoi(m[2])
		}
	}
	return pe
}

func nodeError(n *yaml.Node, format string, args ...any) *coreerrors.ParseError {
	return &coreerrors.ParseError{Format: "YAML", Line: n.Line, Column: n.Column, Message: fmt.Sprintf(format, args...)}
}

func fromYAMLNode(n *yaml.Node, budget *int) (any, error) {
	*budget--
	if *budget < 0 {
		return nil, nodeError(n, "document expands beyond %d nodes", maxYAMLNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(n.Content[0], budget)
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias, budget)
	case yaml.SequenceNode:
		if !safeTags[n.ShortTag()] {
			return nil, nodeError(n, "could not determine a constructor for the tag %s", n.Tag)
		}
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := fromYAMLNode(child, budget)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		if !safeTags[n.ShortTag()] {
			return nil, nodeError(n, "could not determine a constructor for the tag %s", n.Tag)
		}
		return fromYAMLMapping(n, budget)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return nil, nodeError(n, "unexpected node kind %d", n.Kind)
}

func fromYAMLMapping(n *yaml.Node, budget *int) (any, error) {
	obj := NewObject()

	// Merged keys come first; explicit keys override them in place.
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.ShortTag() != "!!merge" {
			continue
		}
		sources := []*yaml.Node{value}
		if value.Kind == yaml.SequenceNode {
			sources = value.Content
		}
		for _, src := range sources {
			merged, err := fromYAMLNode(src, budget)
			if err != nil {
				return nil, err
			}
			mo, ok := merged.(Object)
			if !ok {
				return nil, nodeError(src, "expected a mapping for merging")
			}
			for pair := mo.Oldest(); pair != nil; pair = pair.Next() {
				if _, exists := obj.Get(pair.Key); !exists {
					obj.Set(pair.Key, pair.Value)
				}
			}
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.ShortTag() == "!!merge" {
			continue
		}
		for key.Kind == yaml.AliasNode {
			key = key.Alias
		}
		if key.Kind != yaml.ScalarNode {
			return nil, nodeError(key, "unsupported non-scalar mapping key")
		}
		v, err := fromYAMLNode(value, budget)
		if err != nil {
			return nil, err
		}
		obj.Set(keyString(key), v)
	}
	return obj, nil
}

func keyString(key *yaml.Node) string {
	if key.ShortTag() == "!!null" {
		return "null"
	}
	return key.Value
}

func fromYAMLScalar(n *yaml.Node) (any, error) {
	tag := n.ShortTag()
	if !safeTags[tag] {
		return nil, nodeError(n, "could not determine a constructor for the tag %s", n.Tag)
	}

	switch tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, nodeError(n, "%v", err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, nodeError(n, "%v", err)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, nodeError(n, "%v", err)
		}
		return f, nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return n.Value, nil
		}
		return t, nil
	case "!!binary":
		var s string
		if err := n.Decode(&s); err != nil {
			return nil, nodeError(n, "%v", err)
		}
		return s, nil
	default:
		return n.Value, nil
	}
}

// EncodeYAML dumps v in block style with the given indent width, preserving
// object key order
func EncodeYAML(v any, indent int) (string, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func toYAMLNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", ScalarString(x)), nil
	case string:
		return scalarNode("!!str", x), nil
	case json.Number:
		if IsInteger(x) {
			return scalarNode("!!int", string(x)), nil
		}
		return scalarNode("!!float", string(x)), nil
	case int, int64, uint64:
		return scalarNode("!!int", ScalarString(x)), nil
	case float64:
		return scalarNode("!!float", yamlFloat(x)), nil
	case time.Time:
		return scalarNode("!!timestamp", x.Format(time.RFC3339Nano)), nil
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case Object:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			child, err := toYAMLNode(pair.Value)
			if err != nil {
				return nil, err
			}
			mapping.Content = append(mapping.Content, scalarNode("!!str", pair.Key), child)
		}
		return mapping, nil
	case map[string]any:
		return toYAMLNode(FromPlain(x))
	case fmt.Stringer:
		return scalarNode("!!str", x.String()), nil
	}
	return nil, fmt.Errorf("cannot encode %T as YAML", v)
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return formatFloat(f)
}
