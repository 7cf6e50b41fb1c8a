// ABOUTME: Validators turn (content, schema or rule set) into a pass/fail report
// ABOUTME: A failing instance is a report; only malformed input or schemas are errors

package validator

import (
	"encoding/json"
	"errors"
	"strings"

	"textforge-api/core/document"
	"textforge-api/core/domain"
	coreerrors "textforge-api/core/errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Report messages
const (
	JSONSchemaPass   = "✅ JSON is valid against schema."
	JSONSchemaFail   = "❌ JSON validation error: "
	XSDPass          = "✅ XML is valid against XSD."
	XSDFail          = "❌ XML validation error: "
	YAMLLintPass     = "✅ YAML passed lint checks."
	schemaResourceID = "schema.json"
)

// ValidateJSONSchema checks instance against schema and reports the first
// violation only. Malformed instance or schema JSON, and schemas that do not
// compile, are ParseErrors.
func ValidateJSONSchema(instance, schema string) (*domain.Report, error) {
	inst, err := document.DecodeJSON(instance)
	if err != nil {
		return nil, relabel(err, "JSON instance")
	}
	if _, err := document.DecodeJSON(schema); err != nil {
		return nil, relabel(err, "JSON Schema")
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResourceID, strings.NewReader(schema)); err != nil {
		return nil, &coreerrors.ParseError{Format: "JSON Schema", Message: err.Error(), Cause: err}
	}
	compiled, err := compiler.Compile(schemaResourceID)
	if err != nil {
		return nil, &coreerrors.ParseError{Format: "JSON Schema", Message: err.Error(), Cause: err}
	}

	err = compiled.Validate(schemaValue(inst))
	if err == nil {
		return domain.PassReport(JSONSchemaPass), nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, coreerrors.WrapError(err, "schema validation")
	}
	leaf := firstCause(verr)
	return domain.FailReport(JSONSchemaFail+leaf.Message, domain.Diagnostic{
		Message: leaf.Message,
		Rule:    keyword(leaf.KeywordLocation),
		Path:    leaf.InstanceLocation,
	}), nil
}

// firstCause follows the first cause down to the most specific violation
func firstCause(e *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(e.Causes) > 0 {
		e = e.Causes[0]
	}
	return e
}

func keyword(location string) string {
	if i := strings.LastIndex(location, "/"); i >= 0 {
		return location[i+1:]
	}
	return location
}

func relabel(err error, format string) error {
	var pe *coreerrors.ParseError
	if errors.As(err, &pe) {
		relabeled := *pe
		relabeled.Format = format
		return &relabeled
	}
	return err
}

// schemaValue converts ordered values into the plain form the validator
// walks, keeping json.Number so big integers validate exactly
func schemaValue(v any) any {
	switch x := v.(type) {
	case document.Object:
		out := make(map[string]any, x.Len())
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = schemaValue(pair.Value)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = schemaValue(item)
		}
		return out
	case json.Number, string, bool, nil:
		return x
	default:
		return document.ScalarString(x)
	}
}
