// Package auth contains operator authentication use cases.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
)

// OperatorCredentials holds the configured operator account.
type OperatorCredentials struct {
	Username     string
	PasswordHash string
}

// LoginOperatorInput represents the input for operator login.
type LoginOperatorInput struct {
	Username string
	Password string
}

// LoginOperatorOutput represents the output of operator login.
type LoginOperatorOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	Username    string
}

// LoginOperatorUseCase handles operator login.
type LoginOperatorUseCase struct {
	credentials     OperatorCredentials
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginOperatorUseCase creates a new LoginOperatorUseCase instance.
func NewLoginOperatorUseCase(
	credentials OperatorCredentials,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginOperatorUseCase {
	return &LoginOperatorUseCase{
		credentials:     credentials,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute verifies the operator password and issues an access token.
func (uc *LoginOperatorUseCase) Execute(_ context.Context, input LoginOperatorInput) (*LoginOperatorOutput, error) {
	if uc.credentials.PasswordHash == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAuthDisabled,
			"authentication is not configured",
			domainerror.ErrAuthDisabled,
		)
	}

	username := strings.TrimSpace(input.Username)
	userMatches := subtle.ConstantTimeCompare([]byte(username), []byte(uc.credentials.Username)) == 1

	// Verify the password even on a username mismatch so both paths cost the same
	passwordErr := uc.passwordService.Check(uc.credentials.PasswordHash, input.Password)
	if passwordErr != nil && !errors.Is(passwordErr, domainerror.ErrInvalidCredentials) {
		slog.Error("Operator password hash is unusable", "error", passwordErr)
	}
	if !userMatches || passwordErr != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid username or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	token, expiresAt, err := uc.tokenService.GenerateAccessToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginOperatorOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Username:    username,
	}, nil
}
