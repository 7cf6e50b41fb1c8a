package convert

import (
	"fmt"
	"strconv"

	"textforge-api/core/document"
	coreerrors "textforge-api/core/errors"
)

// JSONToTOML serializes a JSON object as TOML. Nulls and arrays mixing value
// types have no TOML form and are rejected.
func JSONToTOML(text string) (string, error) {
	value, err := document.DecodeJSON(text)
	if err != nil {
		return "", err
	}
	if _, ok := value.(document.Object); !ok {
		return "", coreerrors.NewUnsupported("JSON to TOML", "the JSON root must be an object")
	}
	if err := checkTOML(value, ""); err != nil {
		return "", err
	}

	out, err := document.EncodeTOML(value)
	if err != nil {
		return "", coreerrors.NewUnsupported("JSON to TOML", err.Error())
	}
	return out, nil
}

func checkTOML(v any, path string) error {
	switch x := v.(type) {
	case nil:
		return coreerrors.NewUnsupported("JSON to TOML", fmt.Sprintf("null at %s has no TOML form", displayPath(path)))
	case document.Object:
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			if err := checkTOML(pair.Value, joinPath(path, pair.Key)); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range x {
			if i > 0 && document.KindOf(item) != document.KindOf(x[0]) {
				return coreerrors.NewUnsupported("JSON to TOML", fmt.Sprintf("array at %s mixes value types", displayPath(path)))
			}
			if err := checkTOML(item, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "the root"
	}
	return path
}
