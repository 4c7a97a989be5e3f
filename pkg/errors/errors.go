// Package errors defines the coded error type shared by the generator, the
// exporters, the CLI and the HTTP server.
//
// Every failure a caller can act on carries a [Code]. Codes in the input
// family ([Code.Input]) describe bad parameters or files and map to HTTP
// 400; everything else is an internal or unsupported condition.
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "unit count must be at least 1, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // reject the request
//	}
//
// [Wrap] attaches a code to a lower-level cause; the cause stays reachable
// through the standard errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category. Codes appear verbatim in CLI
// messages and in the "code" field of HTTP error bodies.
type Code string

const (
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeNumericDomain   Code = "NUMERIC_DOMAIN"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Input reports whether c describes a problem with caller-supplied input.
func (c Code) Input() bool {
	switch c {
	case ErrCodeInvalidArgument, ErrCodeNumericDomain, ErrCodeInvalidFormat,
		ErrCodeInvalidStyle, ErrCodeInvalidPath:
		return true
	}
	return false
}

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error, or "" if there is none.
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix, or err.Error()
// for uncoded errors.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsInput reports whether err was caused by bad caller input.
func IsInput(err error) bool {
	return GetCode(err).Input()
}
