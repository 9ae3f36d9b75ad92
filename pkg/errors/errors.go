// Package errors defines the coded errors stakemap returns at its edges.
//
// The graph engine never fails: stale references are dropped and empty input
// yields an empty view. Errors come from loading datasets, reading config,
// exporting snapshots and serving requests, and each carries a [Code] that
// hosts switch on:
//
//   - the CLI prints [UserMessage] and exits non-zero, except for export
//     failures, which it reports as warnings
//   - the HTTP server maps codes to statuses with [HTTPStatus] and returns
//     [Details] as a list
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidViewMode, "unknown view mode %q", mode)
//	if errors.Is(err, errors.ErrCodeInvalidViewMode) { ... }
//
//	err = errors.Wrap(errors.ErrCodeExportFailed, cause, "write %s", path)
//
// Validation reports every problem at once:
//
//	errors.New(errors.ErrCodeInvalidDataset, "2 invalid records").WithDetails(problems...)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDataset  Code = "INVALID_DATASET"
	ErrCodeInvalidViewMode Code = "INVALID_VIEW_MODE"
	ErrCodeInvalidLayout   Code = "INVALID_LAYOUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Failures of collaborators outside the engine.
	ErrCodeSourceUnavailable Code = "SOURCE_UNAVAILABLE"
	ErrCodeSurfaceDetached   Code = "SURFACE_DETACHED"
	ErrCodeExportFailed      Code = "EXPORT_FAILED"
	ErrCodeCache             Code = "CACHE_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error. Message is shown to users; Details lists
// individual problems, such as each invalid record of a dataset.
type Error struct {
	Code    Code
	Message string
	Details []string
	Cause   error
}

// Error renders "CODE: message [detail; detail]: cause".
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Details, "; "))
		b.WriteString("]")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// WithDetails appends problem descriptions and returns e.
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without code or cause. Errors that are not
// coded are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Details returns the problem list of the first *Error in err's chain.
func Details(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// HTTPStatus maps an error code to the status the HTTP server responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidViewMode, ErrCodeInvalidLayout, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidDataset:
		return http.StatusUnprocessableEntity
	case ErrCodeSourceUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
