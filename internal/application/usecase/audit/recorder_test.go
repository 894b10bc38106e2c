package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	domainerror "github.com/ledger-backoffice/backend/internal/domain/error"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/memory"
)

type recordingSink struct {
	ctxErr error
	logs   []*entity.AuditLog
}

func (s *recordingSink) Record(ctx context.Context, log *entity.AuditLog) error {
	s.ctxErr = ctx.Err()
	s.logs = append(s.logs, log)
	return nil
}

func TestRecorder_Record(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	sink := &recordingSink{}
	recorder := NewRecorder(sink, valueobject.NewFixedClock(now), "")

	ctx, cancel := context.WithCancel(WithActor(context.Background(), "lee"))
	cancel()

	recorder.Record(ctx, Entry{
		Action:     entity.AuditActionUpdate,
		EntityType: entity.AuditEntityVendor,
		EntityID:   "v1",
		Before:     map[string]string{"name": "old"},
		After:      map[string]string{"name": "new"},
	})

	require.Len(t, sink.logs, 1)
	log := sink.logs[0]
	assert.NoError(t, sink.ctxErr, "sink must not see the request cancellation")
	assert.Equal(t, "lee", log.Actor)
	assert.JSONEq(t, `{"name":"old"}`, string(log.Before))
	assert.JSONEq(t, `{"name":"new"}`, string(log.After))
	assert.True(t, log.CreatedAt.Equal(now))
	assert.True(t, valueobject.IsValidID(log.ID))
}

func TestRecorder_DefaultActorAndNilSafety(t *testing.T) {
	sink := &recordingSink{}
	recorder := NewRecorder(sink, valueobject.NewKSTClock(), "")

	recorder.Record(context.Background(), Entry{Action: entity.AuditActionCreate, EntityType: entity.AuditEntityProduct, EntityID: "p1"})
	require.Len(t, sink.logs, 1)
	assert.Equal(t, "operator", sink.logs[0].Actor)
	assert.Nil(t, sink.logs[0].Before)

	var disabled *Recorder
	assert.NotPanics(t, func() {
		disabled.Record(context.Background(), Entry{Action: entity.AuditActionCreate})
	})
}

func TestRecorder_SinkFailureIsSwallowed(t *testing.T) {
	store := memory.NewStore()
	store.FailAudit = errors.New("down")
	recorder := NewRecorder(store.AuditLogs(), valueobject.NewKSTClock(), "operator")

	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), Entry{Action: entity.AuditActionDelete, EntityType: entity.AuditEntityTransaction, EntityID: "t1"})
	})
}

func TestListAuditLogs(t *testing.T) {
	store := memory.NewStore()
	recorder := NewRecorder(store.AuditLogs(), valueobject.NewKSTClock(), "operator")
	ctx := context.Background()

	recorder.Record(ctx, Entry{Action: entity.AuditActionCreate, EntityType: entity.AuditEntityVendor, EntityID: "v1"})
	recorder.Record(ctx, Entry{Action: entity.AuditActionCreate, EntityType: entity.AuditEntityTransaction, EntityID: "t1"})
	recorder.Record(ctx, Entry{Action: entity.AuditActionDelete, EntityType: entity.AuditEntityTransaction, EntityID: "t1"})

	uc := NewListAuditLogsUseCase(store.AuditLogs())

	out, err := uc.Execute(ctx, ListAuditLogsInput{EntityType: " transaction "})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Total)
	assert.Equal(t, adapter.DefaultLimit, out.Limit)

	out, err = uc.Execute(ctx, ListAuditLogsInput{EntityType: "transaction", Action: "delete"})
	require.NoError(t, err)
	require.Len(t, out.Logs, 1)
	assert.Equal(t, "t1", out.Logs[0].EntityID)
}

func TestListAuditLogs_RejectsUnknownFilters(t *testing.T) {
	uc := NewListAuditLogsUseCase(memory.NewStore().AuditLogs())

	tests := []struct {
		name     string
		input    ListAuditLogsInput
		wantCode domainerror.AuditErrorCode
	}{
		{name: "entity type", input: ListAuditLogsInput{EntityType: "invoice"}, wantCode: domainerror.ErrCodeInvalidAuditEntityType},
		{name: "action", input: ListAuditLogsInput{Action: "purge"}, wantCode: domainerror.ErrCodeInvalidAuditAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)

			var auditErr *domainerror.AuditError
			require.True(t, errors.As(err, &auditErr))
			assert.Equal(t, tt.wantCode, auditErr.Code)
		})
	}
}
