// Package auditqueue buffers audit entries in a Redis list and drains them
// into the audit log store in batches.
package auditqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
)

// Queue is a FIFO of audit entries. New entries are pushed on the head of the
// list and popped from the tail.
type Queue struct {
	client   *redis.Client
	key      string
	fallback adapter.AuditSink
}

// NewQueue creates a new Queue. When fallback is set, entries that cannot be
// enqueued are written to it directly.
func NewQueue(client *redis.Client, key string, fallback adapter.AuditSink) *Queue {
	return &Queue{
		client:   client,
		key:      key,
		fallback: fallback,
	}
}

// Record enqueues a single audit entry.
func (q *Queue) Record(ctx context.Context, log *entity.AuditLog) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		if q.fallback == nil {
			return fmt.Errorf("failed to enqueue audit entry: %w", err)
		}
		slog.Warn("Audit queue unavailable, writing entry directly",
			"entity_type", log.EntityType,
			"entity_id", log.EntityID,
			"error", err,
		)
		return q.fallback.Record(ctx, log)
	}
	return nil
}

// Pop removes up to max of the oldest entries. Entries that cannot be decoded
// are logged and dropped.
func (q *Queue) Pop(ctx context.Context, max int) ([]*entity.AuditLog, error) {
	payloads, err := q.client.RPopCount(ctx, q.key, max).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	logs := make([]*entity.AuditLog, 0, len(payloads))
	for _, payload := range payloads {
		var log entity.AuditLog
		if err := json.Unmarshal([]byte(payload), &log); err != nil {
			slog.Error("Dropping undecodable audit entry", "error", err)
			continue
		}
		logs = append(logs, &log)
	}
	return logs, nil
}

// Requeue puts popped entries back at the tail so they are popped first again.
func (q *Queue) Requeue(ctx context.Context, logs []*entity.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	payloads := make([]any, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		payload, err := json.Marshal(logs[i])
		if err != nil {
			return fmt.Errorf("failed to encode audit entry: %w", err)
		}
		payloads = append(payloads, payload)
	}
	return q.client.RPush(ctx, q.key, payloads...).Err()
}

// Len returns the number of queued entries.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

// Ping checks the Redis connection.
func (q *Queue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
