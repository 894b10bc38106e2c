package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/application/usecase/audit"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/integration/adapters"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(enabled bool) (*gin.Engine, string) {
	tokens := adapters.NewTokenService("test-secret", time.Hour)
	token, _, _ := tokens.GenerateAccessToken("alice")

	router := gin.New()
	router.Use(NewAuthMiddleware(tokens, enabled).Authenticate())
	router.GET("/whoami", func(c *gin.Context) {
		actor, _ := audit.ActorFromContext(c.Request.Context())
		operator, _ := GetOperatorFromContext(c)
		c.JSON(http.StatusOK, gin.H{"actor": actor, "operator": operator})
	})
	return router, token
}

func TestAuthenticate(t *testing.T) {
	router, token := newAuthRouter(true)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantBody: "AUTH-030003"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantBody: "AUTH-03000"},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: `"actor":"alice"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

type expiredTokens struct{}

func (expiredTokens) GenerateAccessToken(string) (string, time.Time, error) {
	return "stale", time.Time{}, nil
}

func (expiredTokens) ValidateAccessToken(string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrExpiredToken
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	router := gin.New()
	router.Use(NewAuthMiddleware(expiredTokens{}, true).Authenticate())
	router.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeExpiredToken))
}

func TestAuthenticate_DisabledPassesThrough(t *testing.T) {
	router, _ := newAuthRouter(false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"actor":""`)
}

func TestRateLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	limiter := NewRateLimiterWithConfig(2, time.Minute)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		return rec
	}

	assert.Equal(t, http.StatusOK, hit().Code)
	current = current.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, hit().Code)

	blocked := hit()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "30", blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), "AUTH-020003")

	current = current.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, hit().Code)

	current = current.Add(2 * time.Minute)
	limiter.Cleanup()
	assert.Empty(t, limiter.entries)
}

func TestRateLimiter_SweepsExpiredEntries(t *testing.T) {
	limiter := NewRateLimiterWithConfig(5, time.Minute)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	allowed, _ := limiter.allow("10.0.0.1")
	require.True(t, allowed)

	current = current.Add(2 * time.Minute)
	allowed, _ = limiter.allow("10.0.0.2")
	require.True(t, allowed)

	assert.Len(t, limiter.entries, 1)
	assert.Contains(t, limiter.entries, "10.0.0.2")
}

func TestRateLimiter_DisabledWithZeroAttempts(t *testing.T) {
	limiter := NewRateLimiterWithConfig(0, time.Minute)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 10 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/vendors/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	t.Run("generates an id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vendors/abc", nil))

		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), `"path":"/vendors/:id"`)
	})

	t.Run("keeps the caller id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/vendors/abc", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	})
}

func TestRequestLogger_RecordsOperator(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	tokens := adapters.NewTokenService("test-secret", time.Hour)
	token, _, err := tokens.GenerateAccessToken("alice")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	protected := router.Group("", NewAuthMiddleware(tokens, true).Authenticate())
	protected.GET("/vendors", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/vendors", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), `"operator":"alice"`)

	buf.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotContains(t, buf.String(), `"operator"`)
}
