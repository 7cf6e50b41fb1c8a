package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	coreerrors "textforge-api/core/errors"
)

type jsonFrame struct {
	obj    Object
	arr    []any
	isObj  bool
	key    string
	hasKey bool
}

// DecodeJSON parses text into an ordered value. Numbers are kept as
// json.Number so their literal form survives re-serialization. Data after the
// top-level value is rejected.
func DecodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var (
		stack []*jsonFrame
		root  any
		done  bool
	)

	emit := func(v any) {
		if len(stack) == 0 {
			root = v
			done = true
			return
		}
		top := stack[len(stack)-1]
		if top.isObj {
			top.obj.Set(top.key, v)
			top.hasKey = false
			return
		}
		top.arr = append(top.arr, v)
	}

	for !done {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, jsonParseError(text, dec, err)
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, &jsonFrame{obj: NewObject(), isObj: true})
			case '[':
				stack = append(stack, &jsonFrame{arr: []any{}})
			case '}', ']':
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.isObj {
					emit(top.obj)
				} else {
					emit(top.arr)
				}
			}
		case string:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.isObj && !top.hasKey {
					top.key = t
					top.hasKey = true
					continue
				}
			}
			emit(t)
		default:
			emit(t)
		}
	}

	end := int(dec.InputOffset())
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		offset := end + len(text[end:]) - len(strings.TrimLeft(text[end:], " \t\r\n"))
		line, col := Position(text, offset)
		msg := "extra data after the top-level value"
		return nil, &coreerrors.ParseError{Format: "JSON", Line: line, Column: col, Message: msg, Cause: errors.New(msg)}
	}

	return root, nil
}

func jsonParseError(text string, dec *json.Decoder, err error) *coreerrors.ParseError {
	offset := dec.InputOffset()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = errors.New("unexpected end of JSON input")
	}
	line, col := Position(text, int(offset))
	return &coreerrors.ParseError{Format: "JSON", Line: line, Column: col, Message: err.Error(), Cause: err}
}

// Position converts a byte offset into a 1-based line and column
func Position(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := offset - strings.LastIndex(prefix, "\n")
	return line, col
}

// EncodeJSON serializes v. A non-empty indent produces one member per line;
// an empty indent produces a single line with ", " and ": " separators.
// Non-ASCII and HTML characters are written literally.
func EncodeJSON(v any, indent string) (string, error) {
	var b strings.Builder
	if err := writeJSON(&b, v, indent, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(b *strings.Builder, v any, indent string, depth int) error {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case bool, json.Number, int, int64, uint64, float64:
		b.WriteString(ScalarString(x))
	case string:
		writeJSONString(b, x)
	case time.Time:
		writeJSONString(b, x.Format(time.RFC3339Nano))
	case []any:
		if len(x) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			writeBreak(b, indent, depth+1, i > 0)
			if err := writeJSON(b, item, indent, depth+1); err != nil {
				return err
			}
		}
		writeBreak(b, indent, depth, false)
		b.WriteByte(']')
	case Object:
		if x.Len() == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteByte('{')
		i := 0
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeBreak(b, indent, depth+1, i > 0)
			writeJSONString(b, pair.Key)
			b.WriteString(": ")
			if err := writeJSON(b, pair.Value, indent, depth+1); err != nil {
				return err
			}
			i++
		}
		writeBreak(b, indent, depth, false)
		b.WriteByte('}')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, x[k])
		}
		return writeJSON(b, obj, indent, depth)
	case fmt.Stringer:
		writeJSONString(b, x.String())
	default:
		return fmt.Errorf("cannot encode %T as JSON", v)
	}
	return nil
}

func writeBreak(b *strings.Builder, indent string, depth int, afterComma bool) {
	if indent == "" {
		if afterComma {
			b.WriteByte(' ')
		}
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(indent, depth))
}

func writeJSONString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	b.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
