package error

import "errors"

// Product domain errors.
var (
	// ErrProductNotFound is returned when a product is absent or soft-deleted.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProductName is returned when the product name is empty or too long.
	ErrInvalidProductName = errors.New("invalid product name")

	// ErrInvalidProductUnit is returned when the unit of measure is too long.
	ErrInvalidProductUnit = errors.New("invalid product unit")
)

// ProductErrorCode defines error codes for product errors.
type ProductErrorCode string

const (
	ErrCodeInvalidProductName ProductErrorCode = "PRD-010001"
	ErrCodeInvalidProductUnit ProductErrorCode = "PRD-010002"
	ErrCodeProductNotFound    ProductErrorCode = "PRD-020001"
)

// ProductError represents a product error with code and message.
type ProductError struct {
	Code    ProductErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProductError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProductError) Unwrap() error {
	return e.Err
}

// NewProductError creates a new ProductError with the given code and message.
func NewProductError(code ProductErrorCode, message string, err error) *ProductError {
	return &ProductError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
