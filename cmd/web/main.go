// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the Vanlife browser frontend.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis for visitor state, or fall back to memory.
//  4. Build the van API client and the page handlers.
//  5. Serve until a signal arrives, then shut down gracefully.
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

	"github.com/taibuivan/vanlife/internal/client"
	"github.com/taibuivan/vanlife/internal/nav"
	"github.com/taibuivan/vanlife/internal/platform/config"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	redisstore "github.com/taibuivan/vanlife/internal/platform/redis"
	"github.com/taibuivan/vanlife/internal/session"
	"github.com/taibuivan/vanlife/internal/web"
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
	cfg, err := config.LoadWeb()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("api", cfg.APIBaseURL),
	)

	// ── 3. Visitor State ──────────────────────────────────────────────────
	var (
		sessions   session.Provider = session.NewMemoryProvider()
		navigation nav.Store        = nav.NewMemoryStore()
	)

	if cfg.RedisURL != "" {
		startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		rdb, err := redisstore.Connect(startupCtx, cfg.RedisURL, log)
		startupCancel()
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		sessions = session.NewRedisProvider(rdb, log)
		navigation = nav.NewRedisStore(rdb, constants.NavStateTTL)
		log.Info("visitor_state_backend", slog.String("backend", "redis"))
	} else {
		log.Warn("visitor_state_backend", slog.String("backend", "memory"))
	}

	// ── 4. API Client & Pages ─────────────────────────────────────────────
	handler, err := web.NewHandler(client.New(cfg.APIBaseURL, cfg.APITimeout), sessions, navigation, web.Options{
		DefaultHostPath: cfg.DefaultHostPath,
		CookieSecure:    cfg.CookieSecure,
		RenderWait:      cfg.RenderWait,
	})
	must(log, err, "parse page templates")

	// ── 5. HTTP Server & Graceful Shutdown ────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := web.NewServer(ctx, cfg, log, handler)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		With(slog.String("app", constants.AppName), slog.String("service", "web"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
