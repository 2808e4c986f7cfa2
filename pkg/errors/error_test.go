package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestMessages() {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", New(ErrCodeEmptySeries, "bar series is empty"), "[120] bar series is empty"},
		{"formatted", Newf(ErrCodeOutOfOrderData, "bar %d: time not after previous bar", 7), "[121] bar 7: time not after previous bar"},
		{"wrapped", Wrapf(ErrCodeMalformedBar, New(ErrCodeMalformedBar, "high 9 < low 10"), "bar %d", 3), "[122] bar 3: [122] high 9 < low 10"},
		{"cancelled", Wrap(ErrCodeComputationCancelled, "computation cancelled", context.Canceled), "[901] computation cancelled: context canceled"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.want, tt.err.Error())
		})
	}
}

func (suite *ErrorTestSuite) TestGetCodeUsesOutermostCoder() {
	inner := New(ErrCodeDataNotFound, "no bars found for symbol AAPL")
	outer := Wrap(ErrCodeQueryFailed, "bundle failed", inner)

	suite.Equal(ErrCodeQueryFailed, GetCode(outer))
	suite.Equal(ErrCodeDataNotFound, GetCode(inner))
	suite.Equal(ErrCodeQueryFailed, GetCode(fmt.Errorf("symbol AAPL: %w", outer)))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestCauseStaysReachable() {
	err := Wrap(ErrCodeComputationCancelled, "computation cancelled", context.DeadlineExceeded)

	suite.True(Is(err, context.DeadlineExceeded))
	suite.Equal(context.DeadlineExceeded, err.Unwrap())
	suite.Nil(New(ErrCodeUnknown, "x").Unwrap())

	var coded *Error
	suite.Require().True(As(fmt.Errorf("compute: %w", err), &coded))
	suite.Equal(ErrCodeComputationCancelled, coded.Code)
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataError(34, 12, "macd")

	suite.Equal("insufficient history for macd: required 34 bars, got 12", err.Error())
	suite.Equal(ErrCodeInsufficientData, GetCode(err))
	suite.True(HasCode(fmt.Errorf("symbol MSFT: %w", err), ErrCodeInsufficientData))
	suite.True(IsInsufficientDataError(fmt.Errorf("wrapped: %w", err)))
	suite.False(IsInsufficientDataError(New(ErrCodeInsufficientData, "coded but untyped")))
	suite.False(IsInsufficientDataError(nil))
}

func (suite *ErrorTestSuite) TestIsValidation() {
	for _, code := range []ErrorCode{ErrCodeEmptySeries, ErrCodeOutOfOrderData, ErrCodeMalformedBar, ErrCodeInsufficientData} {
		suite.True(code.IsValidation(), "code %d", code)
		suite.True(IsValidation(New(code, "x")), "code %d", code)
	}

	for _, code := range []ErrorCode{ErrCodeInvalidPeriod, ErrCodeUnknownIndicator, ErrCodeSessionNotFound, ErrCodeUnknown} {
		suite.False(code.IsValidation(), "code %d", code)
	}

	suite.True(IsValidation(NewInsufficientDataError(15, 3, "rsi")))
	suite.False(IsValidation(errors.New("plain")))
}

func (suite *ErrorTestSuite) TestCodeRanges() {
	suite.Equal(ErrorCode(106), ErrCodeInsufficientData)
	suite.Equal(ErrorCode(121), ErrCodeOutOfOrderData)
	suite.Equal(ErrorCode(122), ErrCodeMalformedBar)
	suite.Equal(ErrorCode(123), ErrCodeUnknownIndicator)
	suite.Equal(ErrorCode(900), ErrCodeSessionNotFound)
	suite.Equal(ErrorCode(901), ErrCodeComputationCancelled)
}
