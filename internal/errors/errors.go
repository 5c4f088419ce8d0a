// Package errors provides the coded domain errors returned by the services.
//
// Usage:
//
//	// In services - return typed errors
//	if errors.Is(err, data.ErrRecordNotFound) {
//	    return errors.ResourceNotFound("No found records for this ID!")
//	}
//
//	// In handlers - switch on the code
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    app.errorResponse(w, r, domainErr.HTTPStatus(), domainErr.Message)
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is = errors.Is
	As = errors.As
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeResourceNotFound     Code = "RESOURCE_NOT_FOUND"
	CodeRequiredObjectIsNull Code = "REQUIRED_OBJECT_IS_NULL"
	CodeValidation           Code = "VALIDATION"
	CodeInternal             Code = "INTERNAL"
)

// Fixed messages carried by the sentinel errors.
const (
	MsgResourceNotFound     = "No found records for this ID!"
	MsgRequiredObjectIsNull = "It is not allowed to persist a null object!"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeResourceNotFound:
		return http.StatusNotFound
	case CodeRequiredObjectIsNull:
		return http.StatusBadRequest
	case CodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrResourceNotFound     = &Error{Code: CodeResourceNotFound, Message: MsgResourceNotFound}
	ErrRequiredObjectIsNull = &Error{Code: CodeRequiredObjectIsNull, Message: MsgRequiredObjectIsNull}
	ErrValidation           = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrInternal             = &Error{Code: CodeInternal, Message: "internal error"}
)

// ResourceNotFound creates a not found error.
func ResourceNotFound(msg string) *Error {
	return &Error{Code: CodeResourceNotFound, Message: msg}
}

// RequiredObjectIsNull creates the error returned when a create or update
// receives no payload.
func RequiredObjectIsNull() *Error {
	return &Error{Code: CodeRequiredObjectIsNull, Message: MsgRequiredObjectIsNull}
}

// ValidationWithDetails creates a validation error with field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return ErrInternal.WithCause(err)
}
