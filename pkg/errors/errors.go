// Package errors provides structured error types for phosphor-uikit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and pipeline
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages carrying document/group/icon context
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map to the failure stages of the generation pipeline:
//   - CONFIG_ERROR: a malformed configuration document
//   - FETCH_ERROR: a failed icon download or cache miss resolution
//   - RASTER_ERROR: a failed vector-to-raster conversion
//   - WRITE_ERROR: a filesystem failure writing catalog output
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "unknown style token: %q", tok)
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // Handle config error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "fetch %s/%s", style, name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Pipeline stage errors
	ErrCodeConfig Code = "CONFIG_ERROR"
	ErrCodeFetch  Code = "FETCH_ERROR"
	ErrCodeRaster Code = "RASTER_ERROR"
	ErrCodeWrite  Code = "WRITE_ERROR"

	// Input validation errors
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidSize     Code = "INVALID_SIZE"
	ErrCodeInvalidRenderer Code = "INVALID_RENDERER"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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
