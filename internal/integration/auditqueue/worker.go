package auditqueue

import (
	"context"
	"log/slog"
	"time"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
)

// Worker drains the audit queue into the audit log store.
type Worker struct {
	queue        *Queue
	store        adapter.AuditLogRepository
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the drain worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    100,
	}
}

// NewWorker creates a new drain worker.
func NewWorker(queue *Queue, store adapter.AuditLogRepository, config WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}

	return &Worker{
		queue:        queue,
		store:        store,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled and
// then makes one last drain attempt.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Audit drain worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			w.drain(flushCtx)
			cancel()
			slog.Info("Audit drain worker shutting down")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain moves batches until the queue is empty or a step fails.
func (w *Worker) drain(ctx context.Context) {
	for {
		n, ok := w.processBatch(ctx)
		if !ok || n < w.batchSize {
			return
		}
	}
}

// processBatch moves one batch and reports how many entries it stored.
func (w *Worker) processBatch(ctx context.Context) (int, bool) {
	logs, err := w.queue.Pop(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to pop audit entries", "error", err)
		return 0, false
	}
	if len(logs) == 0 {
		return 0, true
	}

	if err := w.store.CreateBatch(ctx, logs); err != nil {
		slog.Error("Failed to store audit batch", "count", len(logs), "error", err)
		if requeueErr := w.queue.Requeue(context.WithoutCancel(ctx), logs); requeueErr != nil {
			slog.Error("Failed to requeue audit batch, entries lost",
				"count", len(logs),
				"error", requeueErr,
			)
		}
		return 0, false
	}

	slog.Debug("Stored audit batch", "count", len(logs))
	return len(logs), true
}

// ProcessNow drains the queue immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.drain(ctx)
}
