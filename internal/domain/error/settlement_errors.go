package error

import "errors"

// Settlement domain errors.
var (
	// ErrSettlementNotFound is returned when a settlement does not exist.
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrNoTransactionsInRange is returned when an issue range has no active transactions.
	ErrNoTransactionsInRange = errors.New("no transactions in range")

	// ErrVendorNotFoundForSettlement is returned when the vendor is absent or soft-deleted.
	ErrVendorNotFoundForSettlement = errors.New("vendor not found")
)

// SettlementErrorCode defines error codes for settlement errors.
// Format: STL-XXYYYY where XX is category and YYYY is specific error.
type SettlementErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSettlementInvalidRange SettlementErrorCode = "STL-010001"
	ErrCodeNoTransactionsInRange  SettlementErrorCode = "STL-010002"

	// Lookup errors (02XXXX)
	ErrCodeSettlementNotFound       SettlementErrorCode = "STL-020001"
	ErrCodeSettlementVendorNotFound SettlementErrorCode = "STL-020002"
)

// SettlementError represents a settlement error with code and message.
type SettlementError struct {
	Code    SettlementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettlementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// NewSettlementError creates a new SettlementError with the given code and message.
func NewSettlementError(code SettlementErrorCode, message string, err error) *SettlementError {
	return &SettlementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
