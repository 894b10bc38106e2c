package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is absent or soft-deleted.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidUnitPrice is returned when the unit price is negative.
	ErrInvalidUnitPrice = errors.New("unit price must be zero or greater")

	// ErrInvalidQty is returned when a quantity has more decimal places than can be stored.
	ErrInvalidQty = errors.New("invalid quantity")

	// ErrInvalidProductNameForTransaction is returned when the product name is empty or too long.
	ErrInvalidProductNameForTransaction = errors.New("invalid product name")

	// ErrInvalidProductUnitForTransaction is returned when the product unit is too long.
	ErrInvalidProductUnitForTransaction = errors.New("invalid product unit")

	// ErrVendorNotFoundForTransaction is returned when the referenced vendor is not active.
	ErrVendorNotFoundForTransaction = errors.New("vendor not found")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidUnitPrice         TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTxnProductName    TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTxnProductUnit    TransactionErrorCode = "TXN-010003"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidQty               TransactionErrorCode = "TXN-010005"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnVendorNotFound   TransactionErrorCode = "TXN-020002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
