package opcode

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/strictenc/strictenc/errs"
)

// Error codes
const (
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeUnsupportedOperation = "UNSUPPORTED_OPERATION"
)

// Error represents a structured error with code and details
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap maps the code to its package-level sentinel so callers can match
// with errors.Is.
func (e *Error) Unwrap() error {
	switch e.Code {
	case ErrCodeInvalidInput:
		return errs.ErrInvalidInput
	case ErrCodeUnsupportedOperation:
		return errs.ErrUnsupportedOperation
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (e *Error) MarshalJSON() ([]byte, error) {
	type Alias Error
	return json.Marshal(&struct {
		*Alias
		Error string `json:"error"`
	}{
		Alias: (*Alias)(e),
		Error: e.Error(),
	})
}

// NewError creates a new Error with the given code and message
func NewError(code string, message string, details ...any) *Error {
	e := &Error{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// IsInvalidInput returns true if the error is an input coercion error
func IsInvalidInput(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeInvalidInput
	}
	return false
}

// IsUnsupportedOperation returns true if the error is an unparseable
// instruction error
func IsUnsupportedOperation(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeUnsupportedOperation
	}
	return false
}
