package error

import "errors"

// Audit domain errors.
var (
	// ErrInvalidAuditEntityType is returned when filtering by an unknown entity type.
	ErrInvalidAuditEntityType = errors.New("invalid audit entity type")

	// ErrInvalidAuditAction is returned when filtering by an unknown action.
	ErrInvalidAuditAction = errors.New("invalid audit action")
)

// AuditErrorCode defines error codes for audit errors.
type AuditErrorCode string

const (
	ErrCodeInvalidAuditEntityType AuditErrorCode = "AUD-010001"
	ErrCodeInvalidAuditAction     AuditErrorCode = "AUD-010002"
)

// AuditError represents an audit error with code and message.
type AuditError struct {
	Code    AuditErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuditError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuditError) Unwrap() error {
	return e.Err
}

// NewAuditError creates a new AuditError with the given code and message.
func NewAuditError(code AuditErrorCode, message string, err error) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
