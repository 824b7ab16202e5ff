// Package errors provides structured error types for aasgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the model, codec, store and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of the meta-model:
//   - NAMING_CONFLICT, MALFORMED_VALUE: graph mutations that violate an invariant
//   - NOT_FOUND, NOT_A_NAMESPACE, UNEXPECTED_TYPE, EMPTY_REFERENCE,
//     UNSUPPORTED_REFERENCE_KIND: reference resolution failures
//   - UNKNOWN_DISCRIMINATOR, DECODE_FAILURE: codec failures
//   - DUPLICATE, CONFLICT, NO_BACKEND: object store and backend failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNamingConflict, "id_short %q already in use", name)
//	if errors.Is(err, errors.ErrCodeNamingConflict) {
//	    // Handle the clash
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecodeFailure, origErr, "at %s", path)
//
// [Is] walks the whole wrap chain, so a decode failure that wraps a naming
// conflict matches both codes.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph mutation errors
	ErrCodeNamingConflict Code = "NAMING_CONFLICT"
	ErrCodeMalformedValue Code = "MALFORMED_VALUE"

	// Resolution errors
	ErrCodeNotFound                 Code = "NOT_FOUND"
	ErrCodeNotANamespace            Code = "NOT_A_NAMESPACE"
	ErrCodeUnexpectedType           Code = "UNEXPECTED_TYPE"
	ErrCodeEmptyReference           Code = "EMPTY_REFERENCE"
	ErrCodeUnsupportedReferenceKind Code = "UNSUPPORTED_REFERENCE_KIND"

	// Codec errors
	ErrCodeUnknownDiscriminator Code = "UNKNOWN_DISCRIMINATOR"
	ErrCodeDecodeFailure        Code = "DECODE_FAILURE"

	// Store and backend errors
	ErrCodeDuplicate Code = "DUPLICATE"
	ErrCodeConflict  Code = "CONFLICT"
	ErrCodeNoBackend Code = "NO_BACKEND"

	// Generic errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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

// ErrorCode returns the error code.
func (e *Error) ErrorCode() Code {
	return e.Code
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

type coder interface {
	ErrorCode() Code
}

// Is reports whether err, or any error it wraps, carries the given code.
func Is(err error, code Code) bool {
	for err != nil {
		if c, ok := err.(coder); ok && c.ErrorCode() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As is [errors.As] from the standard library, re-exported so callers
// need a single errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
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

// UnexpectedTypeError is returned when a reference resolves to an object
// whose kind does not match the declared target type. Found holds the
// resolved object so callers can recover it.
type UnexpectedTypeError struct {
	Found    any
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("%s: resolved object is a %s, expected %s", ErrCodeUnexpectedType, e.Actual, e.Expected)
}

// ErrorCode returns ErrCodeUnexpectedType.
func (e *UnexpectedTypeError) ErrorCode() Code {
	return ErrCodeUnexpectedType
}
