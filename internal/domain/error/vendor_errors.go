package error

import "errors"

// Vendor domain errors.
var (
	// ErrVendorNotFound is returned when a vendor is absent or soft-deleted.
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrVendorNameTaken is returned when another active vendor already uses the name.
	ErrVendorNameTaken = errors.New("vendor name already exists")

	// ErrInvalidVendorName is returned when the vendor name is empty or too long.
	ErrInvalidVendorName = errors.New("invalid vendor name")

	// ErrInvalidVendorPhone is returned when the phone number has an invalid shape.
	ErrInvalidVendorPhone = errors.New("invalid vendor phone")

	// ErrInvalidRepresentativeName is returned when the representative name is too long.
	ErrInvalidRepresentativeName = errors.New("invalid representative name")
)

// VendorErrorCode defines error codes for vendor errors.
// Format: VND-XXYYYY where XX is category and YYYY is specific error.
type VendorErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidVendorName         VendorErrorCode = "VND-010001"
	ErrCodeInvalidVendorPhone        VendorErrorCode = "VND-010002"
	ErrCodeVendorNameTaken           VendorErrorCode = "VND-010003"
	ErrCodeInvalidRepresentativeName VendorErrorCode = "VND-010004"

	// Lookup errors (02XXXX)
	ErrCodeVendorNotFound VendorErrorCode = "VND-020001"
)

// VendorError represents a vendor error with code and message.
type VendorError struct {
	Code    VendorErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *VendorError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *VendorError) Unwrap() error {
	return e.Err
}

// NewVendorError creates a new VendorError with the given code and message.
func NewVendorError(code VendorErrorCode, message string, err error) *VendorError {
	return &VendorError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
