package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
)

type fakePasswordService struct{}

func (fakePasswordService) Hash(password string) (string, error) {
	return "hash:" + password, nil
}

func (fakePasswordService) Check(hash, password string) error {
	if hash != "hash:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

type fakeTokenService struct {
	subjects []string
}

func (f *fakeTokenService) GenerateAccessToken(subject string) (string, time.Time, error) {
	f.subjects = append(f.subjects, subject)
	return "token-for-" + subject, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), nil
}

func (f *fakeTokenService) ValidateAccessToken(string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func TestLoginOperator(t *testing.T) {
	credentials := OperatorCredentials{Username: "operator", PasswordHash: "hash:s3cret"}

	tests := []struct {
		name     string
		creds    OperatorCredentials
		input    LoginOperatorInput
		wantCode domainerror.AuthErrorCode
	}{
		{name: "valid credentials", creds: credentials, input: LoginOperatorInput{Username: " operator ", Password: "s3cret"}},
		{name: "wrong password", creds: credentials, input: LoginOperatorInput{Username: "operator", Password: "nope"}, wantCode: domainerror.ErrCodeInvalidCredentials},
		{name: "wrong username", creds: credentials, input: LoginOperatorInput{Username: "admin", Password: "s3cret"}, wantCode: domainerror.ErrCodeInvalidCredentials},
		{name: "auth disabled", creds: OperatorCredentials{Username: "operator"}, input: LoginOperatorInput{Username: "operator", Password: "s3cret"}, wantCode: domainerror.ErrCodeAuthDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokenService{}
			uc := NewLoginOperatorUseCase(tt.creds, fakePasswordService{}, tokens)

			out, err := uc.Execute(context.Background(), tt.input)

			if tt.wantCode != "" {
				var authErr *domainerror.AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantCode, authErr.Code)
				assert.Empty(t, tokens.subjects)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "token-for-operator", out.AccessToken)
			assert.Equal(t, "operator", out.Username)
			assert.Equal(t, []string{"operator"}, tokens.subjects)
		})
	}
}
