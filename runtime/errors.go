package runtime

import (
	"errors"
	"fmt"

	"github.com/deicod/gobars/nodes"
)

// ErrorType represents different types of runtime errors
type ErrorType string

const (
	ErrorTypeEvaluation ErrorType = "evaluation_error"
	ErrorTypeHelper     ErrorType = "helper_error"
	ErrorTypeContract   ErrorType = "contract_error"
)

// Error represents a runtime error with position information
type Error struct {
	Type     ErrorType
	Message  string
	Position nodes.Position
	Cause    error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Position.Line > 0 {
		if e.Position.Column > 0 {
			return fmt.Sprintf("%s at line %d, column %d: %s", e.Type, e.Position.Line, e.Position.Column, e.Message)
		}
		return fmt.Sprintf("%s at line %d: %s", e.Type, e.Position.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new runtime error
func NewError(errorType ErrorType, message string, position nodes.Position) *Error {
	return &Error{
		Type:     errorType,
		Message:  message,
		Position: position,
	}
}

// NewErrorWithCause creates a new runtime error with an underlying cause
func NewErrorWithCause(errorType ErrorType, message string, position nodes.Position, cause error) *Error {
	return &Error{
		Type:     errorType,
		Message:  message,
		Position: position,
		Cause:    cause,
	}
}

// MissingHelperError is raised when a parameterized invocation names a
// helper that is not registered and no helperMissing fallback exists
type MissingHelperError struct {
	error
	Helper string
}

// NewMissingHelperError creates a new missing helper error
func NewMissingHelperError(name string, position nodes.Position) *MissingHelperError {
	return &MissingHelperError{
		error:  NewError(ErrorTypeHelper, fmt.Sprintf("could not find helper: '%s'", name), position),
		Helper: name,
	}
}

// IsMissingHelperError checks if an error is a missing helper error
func IsMissingHelperError(err error) bool {
	if err == nil {
		return false
	}
	var missing *MissingHelperError
	return errors.As(err, &missing)
}
