package auditqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/memory"
)

const testKey = "ledger:audit:test"

var queueNow = time.Date(2026, 2, 12, 1, 30, 0, 0, time.UTC)

func newTestQueue(t *testing.T, fallback adapter.AuditSink) (*Queue, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewQueue(client, testKey, fallback), server
}

func newEntry(entityID string, offset time.Duration) *entity.AuditLog {
	return entity.NewAuditLog(
		entity.AuditActionCreate,
		entity.AuditEntityVendor,
		entityID,
		"operator",
		nil,
		[]byte(`{"name":"Alpha Mart"}`),
		queueNow.Add(offset),
	)
}

func TestQueue_FIFO(t *testing.T) {
	queue, _ := newTestQueue(t, nil)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, queue.Record(ctx, newEntry(id, time.Duration(i)*time.Second)))
	}

	n, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	logs, err := queue.Pop(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "a", logs[0].EntityID)
	assert.Equal(t, "b", logs[1].EntityID)
	assert.JSONEq(t, `{"name":"Alpha Mart"}`, string(logs[0].After))
	assert.True(t, logs[0].CreatedAt.Equal(queueNow))

	require.NoError(t, queue.Requeue(ctx, logs))

	logs, err = queue.Pop(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{logs[0].EntityID, logs[1].EntityID, logs[2].EntityID})

	logs, err = queue.Pop(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestQueue_DropsUndecodableEntries(t *testing.T) {
	queue, server := newTestQueue(t, nil)
	ctx := context.Background()

	require.NoError(t, queue.Record(ctx, newEntry("a", 0)))
	_, err := server.Lpush(testKey, "not json")
	require.NoError(t, err)

	logs, err := queue.Pop(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "a", logs[0].EntityID)
}

func TestQueue_FallsBackWhenRedisIsDown(t *testing.T) {
	store := memory.NewStore()
	queue, server := newTestQueue(t, store.AuditLogs())
	server.Close()

	require.NoError(t, queue.Record(context.Background(), newEntry("a", 0)))

	result, err := store.AuditLogs().FindByFilter(context.Background(), adapter.AuditLogFilter{}, adapter.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestQueue_ErrorsWithoutFallback(t *testing.T) {
	queue, server := newTestQueue(t, nil)
	server.Close()

	assert.Error(t, queue.Record(context.Background(), newEntry("a", 0)))
}

func TestWorker_DrainsInBatches(t *testing.T) {
	store := memory.NewStore()
	queue, _ := newTestQueue(t, nil)
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, queue.Record(ctx, newEntry(string(rune('a'+i)), time.Duration(i)*time.Second)))
	}

	worker := NewWorker(queue, store.AuditLogs(), WorkerConfig{PollInterval: time.Hour, BatchSize: 2})
	worker.ProcessNow(ctx)

	n, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	result, err := store.AuditLogs().FindByFilter(ctx, adapter.AuditLogFilter{}, adapter.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, result.Logs, 5)
	assert.Equal(t, "e", result.Logs[0].EntityID, "newest first")
}

func TestWorker_RequeuesWhenStoreFails(t *testing.T) {
	store := memory.NewStore()
	store.FailAudit = errors.New("disk full")
	queue, _ := newTestQueue(t, nil)
	ctx := context.Background()

	require.NoError(t, queue.Record(ctx, newEntry("a", 0)))
	require.NoError(t, queue.Record(ctx, newEntry("b", time.Second)))

	worker := NewWorker(queue, store.AuditLogs(), WorkerConfig{BatchSize: 10})
	worker.ProcessNow(ctx)

	n, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	store.FailAudit = nil
	worker.ProcessNow(ctx)

	result, err := store.AuditLogs().FindByFilter(ctx, adapter.AuditLogFilter{}, adapter.NewPagination(1, 10))
	require.NoError(t, err)
	require.Len(t, result.Logs, 2)
	assert.Equal(t, "b", result.Logs[0].EntityID)
}

func TestWorker_StartStopsOnCancel(t *testing.T) {
	store := memory.NewStore()
	queue, _ := newTestQueue(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	worker := NewWorker(queue, store.AuditLogs(), WorkerConfig{PollInterval: 10 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	require.NoError(t, queue.Record(context.Background(), newEntry("a", 0)))
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	result, err := store.AuditLogs().FindByFilter(context.Background(), adapter.AuditLogFilter{}, adapter.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total, "pending entries are flushed on shutdown")
}
