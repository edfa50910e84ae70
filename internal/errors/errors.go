// Package errors defines the typed failures shared by the cover engines
// and the HTTP layer.
//
// Every failure the layout and extraction code can produce carries a
// machine-readable [Code]. The HTTP layer maps codes to status codes; any
// error without a code is treated as an unanticipated internal fault.
//
//	err := errors.New(errors.ErrCodeInvalidParameter, "width must be positive, got %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidParameter) {
//	    // reject with 400
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Caller input errors
	ErrCodeInvalidParameter  Code = "INVALID_PARAMETER"
	ErrCodeImageDecode       Code = "IMAGE_DECODE_ERROR"
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"
	ErrCodeInvalidPanelKind  Code = "INVALID_PANEL_KIND"

	// Artwork collaborator errors
	ErrCodeUpstreamGeneration Code = "UPSTREAM_GENERATION_FAILURE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// The outermost *Error in the chain decides.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidParameter, ErrCodeImageDecode, ErrCodeDimensionMismatch, ErrCodeInvalidPanelKind:
		return true
	}
	return false
}
