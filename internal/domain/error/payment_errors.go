package error

import "errors"

// Payment domain errors.
var (
	// ErrInvalidPaymentAmount is returned when a payment amount is zero.
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

	// ErrVendorNotFoundForPayment is returned when the paying vendor is not active.
	ErrVendorNotFoundForPayment = errors.New("vendor not found")
)

// PaymentErrorCode defines error codes for payment errors.
type PaymentErrorCode string

const (
	ErrCodeInvalidPaymentAmount  PaymentErrorCode = "PAY-010001"
	ErrCodePaymentVendorNotFound PaymentErrorCode = "PAY-020001"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
