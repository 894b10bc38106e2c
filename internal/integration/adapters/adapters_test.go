package adapters

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
)

func TestPasswordService(t *testing.T) {
	service := NewPasswordService(bcrypt.MinCost)

	hash, err := service.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, service.Check(hash, "s3cret-pass"))
	assert.ErrorIs(t, service.Check(hash, "wrong"), domainerror.ErrInvalidCredentials)

	err = service.Check("not-a-hash", "s3cret-pass")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerror.ErrInvalidCredentials)

	_, err = service.Hash("")
	assert.Error(t, err)
}

func TestNewPasswordService_CostOutOfRange(t *testing.T) {
	service := NewPasswordService(0).(*bcryptPasswordService)
	assert.Equal(t, DefaultBcryptCost, service.cost)
}

func newTestTokenService(now time.Time) *tokenService {
	service := NewTokenService("test-secret", time.Hour).(*tokenService)
	service.now = func() time.Time { return now }
	return service
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 2, 12, 1, 30, 0, 0, time.UTC)
	service := newTestTokenService(now)

	token, expiresAt, err := service.GenerateAccessToken("operator")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
}

func TestTokenService_Rejects(t *testing.T) {
	now := time.Date(2026, 2, 12, 1, 30, 0, 0, time.UTC)
	service := newTestTokenService(now)

	token, _, err := service.GenerateAccessToken("operator")
	require.NoError(t, err)

	expired := newTestTokenService(now.Add(2 * time.Hour))
	otherSecret := NewTokenService("another-secret", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "operator",
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = expired.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domainerror.ErrExpiredToken)

	_, err = otherSecret.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken, "wrong secret")

	_, err = service.ValidateAccessToken(unsigned)
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken, "alg none")

	_, err = service.ValidateAccessToken("garbage")
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken, "malformed")
}
