package document

import (
	"errors"
	"fmt"

	coreerrors "textforge-api/core/errors"

	"github.com/pelletier/go-toml/v2"
)

// DecodeTOMLPlain parses TOML into go-toml's plain map form
func DecodeTOMLPlain(text string) (map[string]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(text), &data); err != nil {
		return nil, tomlParseError(err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

// DecodeTOML parses TOML into an ordered value. go-toml does not expose key
// order through maps, so table keys come back sorted.
func DecodeTOML(text string) (any, error) {
	data, err := DecodeTOMLPlain(text)
	if err != nil {
		return nil, err
	}
	return FromPlain(data), nil
}

func tomlParseError(err error) *coreerrors.ParseError {
	pe := &coreerrors.ParseError{Format: "TOML", Message: err.Error(), Cause: err}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		pe.Line, pe.Column = decodeErr.Position()
		pe.Message = decodeErr.Error()
	}
	return pe
}

// EncodeTOML serializes a table value with go-toml
func EncodeTOML(v any) (string, error) {
	plain := Plain(v)
	if _, ok := plain.(map[string]any); !ok {
		return "", fmt.Errorf("TOML documents must be tables, got %T", plain)
	}
	out, err := toml.Marshal(plain)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
