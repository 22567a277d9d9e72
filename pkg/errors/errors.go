// Package errors provides structured error types for the Tourmaline application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes partition failures by who can act on them:
//   - INVALID_*: the input is wrong and must be corrected by the caller
//   - RESOURCE_EXHAUSTED: the instance exceeds the solvable size or memory bound
//   - RENDER_FAILED: an output artifact could not be produced
//   - CANCELED: the surrounding context was canceled mid-solve
//   - INTERNAL_ERROR: a bug; nothing the caller did caused it
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMatrix, "row %d has %d columns, want %d", i, got, n)
//	if errors.Is(err, errors.ErrCodeInvalidMatrix) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "convert %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidMatrix Code = "INVALID_MATRIX"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidView   Code = "INVALID_VIEW"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Size and memory bounds
	ErrCodeResourceExhausted Code = "RESOURCE_EXHAUSTED"

	// Output errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Lifecycle errors
	ErrCodeCanceled Code = "CANCELED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error with a matching code.
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
