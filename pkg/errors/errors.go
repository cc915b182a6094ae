// Package errors defines the coded errors returned by pathgraph packages.
//
// A [Code] says what kind of failure happened; the message says where. Codes
// survive wrapping with fmt.Errorf("...: %w", err), so callers far from the
// failure can still branch on them:
//
//	err := errors.New(errors.ErrCodeInvalidHierarchy, "duplicate tier id %q", id)
//	...
//	if errors.Is(err, errors.ErrCodeInvalidHierarchy) {
//	    // fix the catalog file
//	}
//
// The CLI prints [UserMessage] and exits with [ExitCode].
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable failure class.
type Code string

const (
	// Bad input: a hierarchy file, a layout file, a flag value.
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidHierarchy Code = "INVALID_HIERARCHY"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeInvalidPosition  Code = "INVALID_POSITION"
	ErrCodeInvalidID        Code = "INVALID_ID"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Valid input, failed operation.
	ErrCodeRenderFailed Code = "RENDER_FAILED"
	ErrCodeCacheFailed  Code = "CACHE_FAILED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// usage reports whether c blames the caller's input.
func (c Code) usage() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidHierarchy, ErrCodeInvalidFormat,
		ErrCodeInvalidLayout, ErrCodeInvalidPosition, ErrCodeInvalidID,
		ErrCodeNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}

// Error carries a Code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether any *Error in err's chain has code.
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

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the outermost *Error's message without its code, or
// err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ExitCode maps err to a process exit status: 0 for nil, 2 when the input
// was at fault, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case GetCode(err).usage():
		return 2
	default:
		return 1
	}
}
