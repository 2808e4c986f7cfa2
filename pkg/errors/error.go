// Package errors defines the coded errors returned across the indicator engine.
//
// Every error built here implements Coder, so callers branch on GetCode instead of
// matching messages. Codes are grouped by range:
//   - 1-99: unknown
//   - 100-199: rejected parameters or bars
//   - 200-299: bar source lookups
//   - 300-399: indicator registry and calculation
//   - 900-999: host service sessions and request lifecycle
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeOutOfOrderData, "bar %d: time not after previous bar", i)
//	if errors.IsValidation(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strconv"
)

// Coder is implemented by every error of this package.
type Coder interface {
	error
	ErrorCode() ErrorCode
}

// Error is a failure with a code. Cause, when set, is the lower-level error it wraps.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

var _ Coder = (*Error)(nil)

// New creates an Error without a cause.
func New(code ErrorCode, message string) *Error {
	return Wrap(code, message, nil)
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error renders "[code] message" followed by ": cause" when wrapped.
func (e *Error) Error() string {
	msg := "[" + strconv.Itoa(int(e.Code)) + "] " + e.Message
	if e.Cause == nil {
		return msg
	}

	return msg + ": " + e.Cause.Error()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorCode implements Coder.
func (e *Error) ErrorCode() ErrorCode {
	return e.Code
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost Coder in err's chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.ErrorCode()
	}

	return ErrCodeUnknown
}

// HasCode reports whether GetCode(err) is code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsValidation reports whether err rejects the input bars themselves.
func IsValidation(err error) bool {
	return GetCode(err).IsValidation()
}
