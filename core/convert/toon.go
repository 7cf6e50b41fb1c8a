package convert

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"textforge-api/core/document"
	coreerrors "textforge-api/core/errors"
)

// TOONOptions controls JSON to TOON conversion
type TOONOptions struct {
	// Lenient renders records with a different key set instead of failing;
	// missing keys print as empty values and extra keys are dropped
	Lenient bool
}

// TOONResult is the rendered table plus any records Lenient mode repaired
type TOONResult struct {
	Text     string
	Warnings []string
}

// JSONToTOON flattens an array of objects into a header line of count and
// keys followed by one space-separated line of values per record. The key
// set comes from the first record.
func JSONToTOON(text string, opts TOONOptions) (*TOONResult, error) {
	value, err := document.DecodeJSON(text)
	if err != nil {
		return nil, err
	}
	items, ok := value.([]any)
	if !ok {
		return nil, coreerrors.NewUnsupported("JSON to TOON", "the JSON root must be an array of objects")
	}

	records := make([]document.Object, 0, len(items))
	for i, item := range items {
		obj, ok := item.(document.Object)
		if !ok {
			return nil, coreerrors.NewUnsupported("JSON to TOON", fmt.Sprintf("record %d is not an object", i))
		}
		records = append(records, obj)
	}

	var keys []string
	if len(records) > 0 {
		keys = document.Keys(records[0])
	}

	result := &TOONResult{}
	lines := []string{strings.Join(append([]string{strconv.Itoa(len(records))}, keys...), " ")}
	for i, rec := range records {
		missing, extra := keyMismatch(keys, rec)
		if len(missing) > 0 || len(extra) > 0 {
			msg := mismatchMessage(i, missing, extra)
			if !opts.Lenient {
				return nil, coreerrors.NewUnsupported("JSON to TOON", msg)
			}
			result.Warnings = append(result.Warnings, msg)
		}

		values := make([]string, len(keys))
		for k, key := range keys {
			v, ok := rec.Get(key)
			if !ok {
				continue
			}
			s, err := toonValue(v)
			if err != nil {
				return nil, err
			}
			values[k] = s
		}
		lines = append(lines, strings.Join(values, " "))
	}

	result.Text = strings.Join(lines, "\n")
	return result, nil
}

func keyMismatch(keys []string, rec document.Object) (missing, extra []string) {
	for _, k := range keys {
		if _, ok := rec.Get(k); !ok {
			missing = append(missing, k)
		}
	}
	for _, k := range document.Keys(rec) {
		if !slices.Contains(keys, k) {
			extra = append(extra, k)
		}
	}
	return missing, extra
}

func mismatchMessage(index int, missing, extra []string) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing keys ["+strings.Join(missing, ", ")+"]")
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected keys ["+strings.Join(extra, ", ")+"]")
	}
	return fmt.Sprintf("record %d does not share the first record's keys: %s", index, strings.Join(parts, ", "))
}

// toonValue prints scalars raw and composites as single-line JSON
func toonValue(v any) (string, error) {
	switch document.KindOf(v) {
	case document.KindArray, document.KindObject:
		return document.EncodeJSON(v, "")
	}
	return document.ScalarString(v), nil
}
