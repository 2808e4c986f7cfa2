package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeEmptySeries          ErrorCode = 120
	ErrCodeOutOfOrderData       ErrorCode = 121
	ErrCodeMalformedBar         ErrorCode = 122
	ErrCodeUnknownIndicator     ErrorCode = 123

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Host errors (900-999)
	ErrCodeSessionNotFound      ErrorCode = 900
	ErrCodeComputationCancelled ErrorCode = 901
)

// IsValidation reports whether the code describes rejected input bars rather than
// a configuration or internal problem.
func (c ErrorCode) IsValidation() bool {
	switch c {
	case ErrCodeEmptySeries, ErrCodeOutOfOrderData, ErrCodeMalformedBar, ErrCodeInsufficientData:
		return true
	default:
		return false
	}
}
