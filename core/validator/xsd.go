package validator

import (
	"errors"
	"strings"

	"textforge-api/core/domain"
	coreerrors "textforge-api/core/errors"

	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/xsd"
)

// ValidateXMLXSD compiles xsdText and validates xmlText against it. Every
// libxml2 diagnostic becomes a report entry.
func ValidateXMLXSD(xmlText, xsdText string) (*domain.Report, error) {
	schema, err := xsd.Parse([]byte(xsdText))
	if err != nil {
		return nil, &coreerrors.ParseError{Format: "XSD", Message: err.Error(), Cause: err}
	}
	defer schema.Free()

	doc, err := libxml2.ParseString(xmlText)
	if err != nil {
		return nil, &coreerrors.ParseError{Format: "XML", Message: err.Error(), Cause: err}
	}
	defer doc.Free()

	err = schema.Validate(doc)
	if err == nil {
		return domain.PassReport(XSDPass), nil
	}

	var diagnostics []domain.Diagnostic
	var sve xsd.SchemaValidationError
	if errors.As(err, &sve) {
		for _, e := range sve.Errors() {
			diagnostics = append(diagnostics, domain.Diagnostic{Message: strings.TrimSpace(e.Error())})
		}
	}
	if len(diagnostics) == 0 {
		diagnostics = append(diagnostics, domain.Diagnostic{Message: strings.TrimSpace(err.Error())})
	}

	messages := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		messages[i] = d.Message
	}
	return domain.FailReport(XSDFail+strings.Join(messages, "\n"), diagnostics...), nil
}
