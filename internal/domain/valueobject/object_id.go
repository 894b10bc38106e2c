package valueobject

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
)

// NewID returns a fresh 24-hex-character identifier.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ParseID validates an identifier and returns its canonical lowercase form.
func ParseID(id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", domainerror.ErrInvalidID
	}
	return oid.Hex(), nil
}

// IsValidID reports whether id has the 24-hex-character shape.
func IsValidID(id string) bool {
	_, err := ParseID(id)
	return err == nil
}
