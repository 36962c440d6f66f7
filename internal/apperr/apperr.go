// Package apperr defines the error codes surfaced to the user by the wizard,
// the calculator and the HTTP layer. None of them are fatal: every one is
// recoverable by re-prompting at the point of entry.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error code.
type Code string

const (
	// MissingField: a required step was left empty on an attempted advance.
	MissingField Code = "MISSING_FIELD"
	// InvalidInput: a field could not be parsed, or holds an implausible value.
	InvalidInput Code = "INVALID_INPUT"
	// UnrecognizedEnum: gender or activity level text did not match a known label.
	UnrecognizedEnum Code = "UNRECOGNIZED_ENUM"
	// InvalidAction: the action is not accepted in the current wizard step.
	InvalidAction Code = "INVALID_ACTION"
	NotFound      Code = "NOT_FOUND"
)

// Error carries a Code, the offending field (if any) and a user-facing message.
type Error struct {
	Code    Code   `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"error"`
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an *Error without a field.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Field builds an *Error bound to a named input field.
func Field(code Code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

// Wrap builds an *Error that keeps err as its cause.
func Wrap(code Code, field string, err error, message string) *Error {
	return &Error{Code: code, Field: field, Message: message, cause: err}
}

// CodeOf returns the Code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps a code to the status the API answers with.
func HTTPStatus(code Code) int {
	switch code {
	case MissingField:
		return http.StatusBadRequest
	case InvalidInput, UnrecognizedEnum:
		return http.StatusUnprocessableEntity
	case InvalidAction:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
