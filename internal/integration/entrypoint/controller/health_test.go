package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := func() bool { return true }
	down := func() bool { return false }
	depth := func(n int64) QueueDepthFunc {
		return func(context.Context) (int64, error) { return n, nil }
	}
	lost := func(context.Context) (int64, error) { return 0, errors.New("connection refused") }
	three := int64(3)

	tests := []struct {
		name       string
		db         func() bool
		queue      QueueDepthFunc
		wantStatus int
		want       HealthResponse
	}{
		{
			name:       "store only",
			db:         up,
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Database: "connected", AuditQueue: "direct"},
		},
		{
			name:       "store and queue",
			db:         up,
			queue:      depth(3),
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Database: "connected", AuditQueue: "connected", AuditQueueDepth: &three},
		},
		{
			name:       "queue lost",
			db:         up,
			queue:      lost,
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "degraded", Database: "connected", AuditQueue: "disconnected"},
		},
		{
			name:       "store lost",
			db:         down,
			queue:      depth(3),
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "unavailable", Database: "disconnected", AuditQueue: "connected", AuditQueueDepth: &three},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthController(tt.db, tt.queue).Check)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.NotEmpty(t, got.Timestamp)
			got.Timestamp = ""
			assert.Equal(t, tt.want, got)
		})
	}
}
