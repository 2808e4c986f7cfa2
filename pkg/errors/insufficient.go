package errors

import (
	"errors"
	"fmt"
)

// InsufficientDataError reports a bar series shorter than the warm-up of Indicator.
type InsufficientDataError struct {
	Required  int
	Actual    int
	Indicator string
}

var _ Coder = (*InsufficientDataError)(nil)

// NewInsufficientDataError creates the error for indicator needing required bars when
// actual were supplied.
func NewInsufficientDataError(required, actual int, indicator string) *InsufficientDataError {
	return &InsufficientDataError{Required: required, Actual: actual, Indicator: indicator}
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient history for %s: required %d bars, got %d", e.Indicator, e.Required, e.Actual)
}

// ErrorCode implements Coder.
func (e *InsufficientDataError) ErrorCode() ErrorCode {
	return ErrCodeInsufficientData
}

// IsInsufficientDataError reports whether err's chain holds an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficient *InsufficientDataError

	return errors.As(err, &insufficient)
}
