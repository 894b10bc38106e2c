// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
)

// DefaultBcryptCost is used for operator hashes generated by cmd/hashpass.
const DefaultBcryptCost = 12

type bcryptPasswordService struct {
	cost int
}

// NewPasswordService creates a bcrypt password service. Costs outside
// bcrypt's accepted range fall back to DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &bcryptPasswordService{cost: cost}
}

func (s *bcryptPasswordService) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Check maps a mismatch to ErrInvalidCredentials. A malformed configured hash
// is reported as its own error so it can be logged as a setup problem.
func (s *bcryptPasswordService) Check(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domainerror.ErrInvalidCredentials
	default:
		return fmt.Errorf("invalid operator password hash: %w", err)
	}
}
