// Package errors provides structured error types for goctave.
//
// Every failure raised while resolving a package atom or rendering a recipe
// carries a machine-readable [Code], so callers can tell a malformed request
// apart from a missing package or a failed external step:
//
//   - INVALID_*: malformed input (atoms, comparators, keywords, paths)
//   - PACKAGE_NOT_FOUND / UNRESOLVABLE_DEPENDENCY: metadata lookups that came up empty
//   - DEPENDENCY_CYCLE: a self-dependency chain that leads back to itself
//   - MANIFEST_FAILED: the external manifest step exited non-zero
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAtom, "invalid atom: %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidAtom) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeManifestFailed, origErr, "manifest for %s", path)
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
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidAtom       Code = "INVALID_ATOM"
	ErrCodeInvalidPackage    Code = "INVALID_PACKAGE"
	ErrCodeInvalidConstraint Code = "INVALID_CONSTRAINT"
	ErrCodeInvalidKeyword    Code = "INVALID_KEYWORD"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Resolution errors
	ErrCodePackageNotFound        Code = "PACKAGE_NOT_FOUND"
	ErrCodeUnresolvableDependency Code = "UNRESOLVABLE_DEPENDENCY"
	ErrCodeDependencyCycle        Code = "DEPENDENCY_CYCLE"

	// External step errors
	ErrCodeManifestFailed Code = "MANIFEST_FAILED"
	ErrCodeNetwork        Code = "NETWORK_ERROR"
	ErrCodeChecksum       Code = "CHECKSUM_MISMATCH"

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
// It walks the whole error chain, so a resolution failure wrapped by an
// outer context error still matches its original code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
