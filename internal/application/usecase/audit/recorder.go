// Package audit contains audit trail use cases.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
)

type actorContextKey struct{}

// WithActor returns a context carrying the operator responsible for mutations.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the operator set by WithActor.
func ActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(string)
	return actor, ok && actor != ""
}

// Entry describes one mutation to record.
type Entry struct {
	Action     entity.AuditAction
	EntityType entity.AuditEntityType
	EntityID   string
	Before     any
	After      any
}

// Recorder writes audit entries for mutating use cases. A failed write is
// logged and never reported to the caller.
type Recorder struct {
	sink         adapter.AuditSink
	clock        valueobject.Clock
	defaultActor string
}

// NewRecorder creates a new Recorder instance.
func NewRecorder(sink adapter.AuditSink, clock valueobject.Clock, defaultActor string) *Recorder {
	if defaultActor == "" {
		defaultActor = "operator"
	}
	return &Recorder{
		sink:         sink,
		clock:        clock,
		defaultActor: defaultActor,
	}
}

// Record emits an audit entry. It runs after the primary write has committed.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.sink == nil {
		return
	}

	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = r.defaultActor
	}

	logger := slog.With(
		"action", entry.Action,
		"entity_type", entry.EntityType,
		"entity_id", entry.EntityID,
	)

	before, err := snapshot(entry.Before)
	if err != nil {
		logger.Warn("Failed to encode audit before state", "error", err)
	}
	after, err := snapshot(entry.After)
	if err != nil {
		logger.Warn("Failed to encode audit after state", "error", err)
	}

	auditLog := entity.NewAuditLog(entry.Action, entry.EntityType, entry.EntityID, actor, before, after, r.clock.Now())

	// The request may already be finished; the write should not be cancelled with it.
	if err := r.sink.Record(context.WithoutCancel(ctx), auditLog); err != nil {
		logger.Warn("Failed to write audit log", "error", err)
	}
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
