// Package errors provides structured error types for ratioplot.
//
// Every failure the comparison engine, the band generator or the layout can
// report carries a machine-readable [Code], so callers (CLI, HTTP server,
// interactive viewer) can react to a class of error without matching strings.
//
// # Error Codes
//
//   - INCOMPATIBLE_BINNING: primary and secondary histograms are binned differently
//   - MISSING_FIT: fit residuals requested but no fitted model is available
//   - INVALID_CONFIDENCE_LEVEL: levels outside (0,1) or not strictly increasing
//   - INVALID_SPLIT_FRACTION: split fraction outside (0,1); reported, then clamped
//   - INVALID_*: other input validation failures
//   - NOT_FOUND, INTERNAL_ERROR: the usual suspects
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingFit, "no fit attached to %q", h.Name)
//	if errors.Is(err, errors.ErrCodeMissingFit) {
//	    // ask the user for a fit
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Comparison errors
	ErrCodeIncompatibleBinning    Code = "INCOMPATIBLE_BINNING"
	ErrCodeMissingFit             Code = "MISSING_FIT"
	ErrCodeInvalidConfidenceLevel Code = "INVALID_CONFIDENCE_LEVEL"
	ErrCodeInvalidSplitFraction   Code = "INVALID_SPLIT_FRACTION"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidOption Code = "INVALID_OPTION"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// HTTPStatus maps an error code to the HTTP status the render service
// answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeIncompatibleBinning, ErrCodeMissingFit, ErrCodeInvalidConfidenceLevel,
		ErrCodeInvalidSplitFraction, ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeInvalidConfig, ErrCodeInvalidOption:
		return 400
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return 404
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
