// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Vanlife van API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run the embedded database migrations (idempotent).
//  6. Load the token signing keys.
//  7. Connect to object storage for van photos (optional).
//  8. Wire health checks and domain handlers.
//  9. Start HTTP server with graceful shutdown.
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

	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/vanlife/data"
	"github.com/taibuivan/vanlife/internal/api"
	"github.com/taibuivan/vanlife/internal/auth"
	"github.com/taibuivan/vanlife/internal/host"
	"github.com/taibuivan/vanlife/internal/platform/config"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/migration"
	"github.com/taibuivan/vanlife/internal/platform/objectstore"
	pgstore "github.com/taibuivan/vanlife/internal/platform/postgres"
	redisstore "github.com/taibuivan/vanlife/internal/platform/redis"
	"github.com/taibuivan/vanlife/internal/platform/sec"
	"github.com/taibuivan/vanlife/internal/van"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	undoMaxProcs, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Info("gomaxprocs_adjusted", slog.String("detail", fmt.Sprintf(format, args...)))
	}))
	must(log, err, "set GOMAXPROCS from the CPU quota")
	defer undoMaxProcs()

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.Connect(startupCtx, pgstore.Options{
		DSN:              cfg.DatabaseURL,
		MaxConns:         cfg.DatabaseMaxConns,
		StatementTimeout: cfg.DatabaseStatementTimeout,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.Connect(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	migrations := data.Migrations()
	if cfg.MigrationPath != "" {
		migrations = os.DirFS(cfg.MigrationPath)
		log.Info("migrations_from_disk", slog.String("path", cfg.MigrationPath))
	}
	must(log, migration.RunUp(cfg.DatabaseURL, migrations, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Object Storage ─────────────────────────────────────────────────
	var photos objectstore.Provider
	if cfg.ObjectStorageEnabled() {
		photos, err = objectstore.NewMinIOProvider(objectstore.Options{
			Endpoint:        cfg.S3Endpoint,
			BucketName:      cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UseSSL:          cfg.S3UseSSL,
		}, log)
		must(log, err, "create object storage client")
		must(log, photos.CheckBucket(startupCtx), "check photo bucket")
		log.Info("object_storage_enabled", slog.String("bucket", cfg.S3Bucket))
	}
	images := objectstore.NewResolver(photos, cfg.S3PresignExpiry)

	// ── 8. Health & Domain Wiring ─────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers([]api.HealthCheck{
		{Name: "postgres", Check: pgstore.HealthCheck(pool)},
		{Name: "redis", Check: redisstore.HealthCheck(rdb)},
	}, log)

	authService := auth.NewService(auth.NewUserRepository(pool), tokens, constants.AccessTokenTTL, log)
	vanService := van.NewService(van.NewPostgresRepository(pool), images, log)
	hostService := host.NewService(host.NewPostgresRepository(pool), log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Van:       van.NewHandler(vanService),
		Host:      host.NewHandler(hostService),
	}

	// ── 9. HTTP Server & Graceful Shutdown ────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := api.NewServer(ctx, cfg, log, tokens, handlers)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
		return server.Shutdown(constants.ShutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		log.Error("server_stopped_with_error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the app name and installs it as default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("service", "api"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
