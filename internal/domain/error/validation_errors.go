// Package error defines domain-specific errors for the ledger back-office.
package error

import "errors"

// Shared input-shape errors raised before any repository is touched.
var (
	// ErrInvalidDateKey is returned when a date key is malformed or not a calendar date.
	ErrInvalidDateKey = errors.New("invalid date key")

	// ErrInvalidTimeKey is returned when a time key does not match HH:mm:ss.
	ErrInvalidTimeKey = errors.New("invalid time key")

	// ErrInvalidRange is returned when a start key is after its end key.
	ErrInvalidRange = errors.New("start date must not be after end date")

	// ErrInvalidID is returned when an identifier is not 24 hex characters.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidPreset is returned for an unknown date range preset.
	ErrInvalidPreset = errors.New("invalid date range preset")

	// ErrNoFieldsToUpdate is returned when a partial update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// ValidationErrorCode defines error codes for shared validation errors.
// Format: VAL-XXYYYY where XX is category and YYYY is specific error.
type ValidationErrorCode string

const (
	ErrCodeInvalidDateKey   ValidationErrorCode = "VAL-010001"
	ErrCodeInvalidTimeKey   ValidationErrorCode = "VAL-010002"
	ErrCodeInvalidRange     ValidationErrorCode = "VAL-010003"
	ErrCodeInvalidID        ValidationErrorCode = "VAL-010004"
	ErrCodeInvalidPreset    ValidationErrorCode = "VAL-010005"
	ErrCodeNoFieldsToUpdate ValidationErrorCode = "VAL-010006"
	ErrCodeInvalidRequest   ValidationErrorCode = "VAL-010007"
)

// ValidationError represents a malformed-input error with code and message.
type ValidationError struct {
	Code    ValidationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError with the given code and message.
func NewValidationError(code ValidationErrorCode, message string, err error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsValidationError maps a shared sentinel to its coded form. Any other error
// is returned unchanged.
func AsValidationError(err error) error {
	var existing *ValidationError
	if errors.As(err, &existing) {
		return existing
	}

	switch {
	case errors.Is(err, ErrInvalidDateKey):
		return NewValidationError(ErrCodeInvalidDateKey, "invalid date key (YYYY-MM-DD, KST)", err)
	case errors.Is(err, ErrInvalidTimeKey):
		return NewValidationError(ErrCodeInvalidTimeKey, "invalid time key (HH:mm:ss, KST)", err)
	case errors.Is(err, ErrInvalidRange):
		return NewValidationError(ErrCodeInvalidRange, "invalid date range", err)
	case errors.Is(err, ErrInvalidID):
		return NewValidationError(ErrCodeInvalidID, "invalid id", err)
	case errors.Is(err, ErrInvalidPreset):
		return NewValidationError(ErrCodeInvalidPreset, "invalid date range preset", err)
	case errors.Is(err, ErrNoFieldsToUpdate):
		return NewValidationError(ErrCodeNoFieldsToUpdate, "no fields to update", err)
	}
	return err
}
