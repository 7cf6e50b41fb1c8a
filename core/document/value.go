// Package document holds the ordered generic value model shared by the format
// adapters, the converters and the tree builder.
//
// A value is one of: nil, bool, string, json.Number, int64, float64,
// time.Time, a fmt.Stringer scalar (TOML local dates and times), []any, or
// Object. Objects keep keys in the order they were first encountered.
package document

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an insertion-ordered string-keyed mapping
type Object = *orderedmap.OrderedMap[string, any]

// NewObject creates an empty Object
func NewObject() Object {
	return orderedmap.New[string, any]()
}

// Keys returns the keys of o in order
func Keys(o Object) []string {
	keys := make([]string, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Kind names the JSON type of a value
type Kind int

// Value kinds
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// KindOf classifies v
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, int, int64, uint64, float64:
		return KindNumber
	case []any:
		return KindArray
	case Object, map[string]any:
		return KindObject
	default:
		return KindString
	}
}

// IsInteger reports whether a numeric value has no fractional part in its
// literal form (json.Number) or its Go type
func IsInteger(v any) bool {
	switch n := v.(type) {
	case int, int64, uint64:
		return true
	case json.Number:
		_, err := strconv.ParseInt(string(n), 10, 64)
		return err == nil
	}
	return false
}

// ScalarString renders a scalar the way converters print it in text formats
func ScalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	case json.Number:
		return string(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return formatFloat(s)
	case time.Time:
		return s.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat prints floats with the shortest round-tripping form, keeping a
// trailing ".0" on integral values so they stay floats when re-read
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', -1, 64) + ".0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Equal compares two values structurally. Object key order is ignored and
// numbers compare by value.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.(bool) == b.(bool)
	case KindNumber:
		fa, errA := toFloat(a)
		fb, errB := toFloat(b)
		if errA != nil || errB != nil {
			return ScalarString(a) == ScalarString(b)
		}
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	case KindString:
		return ScalarString(a) == ScalarString(b)
	case KindArray:
		xa, xb := a.([]any), b.([]any)
		if len(xa) != len(xb) {
			return false
		}
		for i := range xa {
			if !Equal(xa[i], xb[i]) {
				return false
			}
		}
		return true
	case KindObject:
		oa, ob := asObject(a), asObject(b)
		if oa.Len() != ob.Len() {
			return false
		}
		for pair := oa.Oldest(); pair != nil; pair = pair.Next() {
			other, ok := ob.Get(pair.Key)
			if !ok || !Equal(pair.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("not a number: %T", v)
}

func asObject(v any) Object {
	if o, ok := v.(Object); ok {
		return o
	}
	return FromPlain(v).(Object)
}

// FromPlain converts map[string]any values (as produced by go-toml) into
// Objects. Map keys are sorted since their original order is unknown.
func FromPlain(v any) any {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromPlain(x[k]))
		}
		return obj
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = FromPlain(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = FromPlain(item)
		}
		return out
	case int:
		return int64(x)
	default:
		return v
	}
}

// Plain converts a value into map[string]any/[]any form with json.Number
// resolved to int64 or float64, for libraries that reflect over plain Go values
func Plain(v any) any {
	switch x := v.(type) {
	case Object:
		out := make(map[string]any, x.Len())
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = Plain(pair.Value)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Plain(item)
		}
		return out
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return string(x)
	default:
		return v
	}
}
