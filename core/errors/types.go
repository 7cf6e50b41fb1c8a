// ABOUTME: Custom error types for the core formatting, diffing and conversion logic
// ABOUTME: Provides structured errors so surfaces can map them to user-facing messages

package errors

import (
	"errors"
	"fmt"
)

// ParseError reports input that is malformed for its declared format
type ParseError struct {
	Format  string
	Line    int
	Column  int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s at line %d, column %d: %s", e.Format, e.Line, e.Column, msg)
	}
	return fmt.Sprintf("invalid %s: %s", e.Format, msg)
}

// Unwrap returns the underlying library error
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError wraps an upstream parser failure for the named format
func NewParseError(format string, cause error) *ParseError {
	return &ParseError{Format: format, Cause: cause}
}

// UnsupportedOperationError reports an operation that cannot be applied to
// well-formed input, such as TOON conversion of non-uniform records
type UnsupportedOperationError struct {
	Operation string
	Reason    string
}

// Error implements the error interface
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s not supported: %s", e.Operation, e.Reason)
}

// NewUnsupported creates an UnsupportedOperationError
func NewUnsupported(operation, reason string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Operation: operation, Reason: reason}
}

// PreconditionError reports missing or blank input where content is required
type PreconditionError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsUnsupported checks if an error is an UnsupportedOperationError
func IsUnsupported(err error) bool {
	var unsupportedErr *UnsupportedOperationError
	return errors.As(err, &unsupportedErr)
}

// IsPrecondition checks if an error is a PreconditionError
func IsPrecondition(err error) bool {
	var preconditionErr *PreconditionError
	return errors.As(err, &preconditionErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
