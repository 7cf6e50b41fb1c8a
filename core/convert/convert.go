package convert

import (
	"fmt"
	"sort"
	"strings"

	coreerrors "textforge-api/core/errors"
)

// Options carries the settings of every conversion; each converter reads
// only its own fields
type Options struct {
	RootName   string
	InferTypes bool
	UnwrapRoot bool
	Lenient    bool
}

// Result is converted content plus warnings from lenient conversions
type Result struct {
	Content  string
	Warnings []string
}

type converter func(text string, opts Options) (*Result, error)

func plain(fn func(string) (string, error)) converter {
	return func(text string, _ Options) (*Result, error) {
		out, err := fn(text)
		if err != nil {
			return nil, err
		}
		return &Result{Content: out}, nil
	}
}

var converters = map[string]converter{
	"json->xml": func(text string, opts Options) (*Result, error) {
		out, err := JSONToXML(text, XMLOptions{RootName: opts.RootName})
		if err != nil {
			return nil, err
		}
		return &Result{Content: out}, nil
	},
	"xml->json": func(text string, opts Options) (*Result, error) {
		out, err := XMLToJSON(text, JSONOptions{InferTypes: opts.InferTypes, UnwrapRoot: opts.UnwrapRoot})
		if err != nil {
			return nil, err
		}
		return &Result{Content: out}, nil
	},
	"json->toml": plain(JSONToTOML),
	"json->toon": func(text string, opts Options) (*Result, error) {
		res, err := JSONToTOON(text, TOONOptions{Lenient: opts.Lenient})
		if err != nil {
			return nil, err
		}
		return &Result{Content: res.Text, Warnings: res.Warnings}, nil
	},
	"html->markdown": plain(HTMLToMarkdown),
	"markdown->html": plain(MarkdownToHTML),
}

func pairKey(from, to string) string {
	return strings.ToLower(from) + "->" + strings.ToLower(to)
}

// Supported lists the available conversions as "from->to"
func Supported() []string {
	out := make([]string, 0, len(converters))
	for k := range converters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Convert runs the from->to conversion on text
func Convert(text, from, to string, opts Options) (*Result, error) {
	fn, ok := converters[pairKey(from, to)]
	if !ok {
		return nil, coreerrors.NewUnsupported("conversion", fmt.Sprintf("%s to %s is not available", from, to))
	}
	return fn(text, opts)
}
