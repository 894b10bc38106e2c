// Package main is the entry point for the ledger back-office API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ledger-backoffice/backend/config"
	"github.com/ledger-backoffice/backend/internal/application/adapter"
	"github.com/ledger-backoffice/backend/internal/infra/db"
	"github.com/ledger-backoffice/backend/internal/infra/dependency"
	"github.com/ledger-backoffice/backend/internal/integration/auditqueue"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/memory"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	slog.Info("Starting ledger back-office API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database_driver", cfg.Database.Driver,
		"auth_enabled", cfg.Auth.Enabled(),
	)

	if err := dto.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// Open the ledger store
	var repos dependency.Repositories
	var healthCheck func() bool
	if cfg.Database.Driver == config.DriverMemory {
		slog.Warn("Using in-memory store, data is lost on restart")
		repos = dependency.NewMemoryRepositories(memory.NewStore())
		healthCheck = func() bool { return true }
	} else {
		database, err := db.NewConnection(&cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
		repos = dependency.NewGormRepositories(database.DB())
		healthCheck = database.HealthCheck
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Buffer audit entries in redis when configured
	var auditSink adapter.AuditSink
	var queueDepth controller.QueueDepthFunc
	workerDone := make(chan struct{})
	if cfg.Redis.URL != "" {
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		queue := auditqueue.NewQueue(client, cfg.Audit.QueueKey, repos.AuditLogs)
		if err := queue.Ping(ctx); err != nil {
			slog.Warn("Redis unreachable, audit entries fall back to direct writes", "error", err)
		}
		auditSink = queue
		queueDepth = queue.Len

		worker := auditqueue.NewWorker(queue, repos.AuditLogs, auditqueue.WorkerConfig{
			PollInterval: cfg.Audit.DrainInterval,
			BatchSize:    cfg.Audit.DrainBatch,
		})
		go func() {
			defer close(workerDone)
			worker.Start(ctx)
		}()
	} else {
		close(workerDone)
	}

	injector := dependency.NewInjector(cfg, repos, dependency.Options{
		AuditSink:   auditSink,
		HealthCheck: healthCheck,
		QueueDepth:  queueDepth,
		Logger:      logger,
	})
	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// The worker flushes what is left in the queue before returning.
	<-workerDone

	slog.Info("Server exited properly")
	return nil
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}
