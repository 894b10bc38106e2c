// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const queueProbeTimeout = 2 * time.Second

// QueueDepthFunc reports how many audit entries wait to be drained.
type QueueDepthFunc func(ctx context.Context) (int64, error)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
	queueDepth      QueueDepthFunc
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status          string `json:"status"`
	Database        string `json:"database"`
	AuditQueue      string `json:"audit_queue"`
	AuditQueueDepth *int64 `json:"audit_queue_depth,omitempty"`
	Timestamp       string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil
// queueDepth means audit entries are written directly to the store.
func NewHealthController(dbHealthChecker func() bool, queueDepth QueueDepthFunc) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		queueDepth:      queueDepth,
	}
}

// Check handles GET /health requests.
// The ledger store is required; a lost audit queue only degrades the status
// because entries fall back to direct writes.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:     "ok",
		Database:   "connected",
		AuditQueue: "direct",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.dbHealthChecker == nil || !h.dbHealthChecker() {
		response.Status = "unavailable"
		response.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}

	if h.queueDepth != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), queueProbeTimeout)
		depth, err := h.queueDepth(ctx)
		cancel()

		if err != nil {
			slog.Warn("Audit queue health probe failed", "error", err)
			response.AuditQueue = "disconnected"
			if status == http.StatusOK {
				response.Status = "degraded"
			}
		} else {
			response.AuditQueue = "connected"
			response.AuditQueueDepth = &depth
			slog.Debug("Audit queue depth", "depth", depth)
		}
	}

	c.JSON(status, response)
}
