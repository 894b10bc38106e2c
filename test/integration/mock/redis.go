package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisConn   *redis.Client
)

// NewRedis returns a client connected to a process-wide miniredis instance
// backing the audit queue.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisConn
}

// FailRedis makes every command answer with msg until RestoreRedis is called.
func FailRedis(msg string) {
	NewRedis()
	redisServer.SetError(msg)
}

// RestoreRedis clears a simulated outage.
func RestoreRedis() {
	NewRedis()
	redisServer.SetError("")
}

// ClearRedis drops every queued audit entry.
func ClearRedis(conn *redis.Client) error {
	return conn.FlushAll(context.TODO()).Err()
}
