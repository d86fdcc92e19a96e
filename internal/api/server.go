// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package api assembles the van API: the chi router, its middleware chain,
// the infrastructure probes and the /api/v1 route tree.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/vanlife/internal/auth"
	"github.com/taibuivan/vanlife/internal/host"
	"github.com/taibuivan/vanlife/internal/platform/config"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/metrics"
	"github.com/taibuivan/vanlife/internal/platform/middleware"
	"github.com/taibuivan/vanlife/internal/van"
)

// Server is the van API HTTP server.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers collects everything the router dispatches to.
type Handlers struct {
	Liveness  http.HandlerFunc // GET /health
	Readiness http.HandlerFunc // GET /ready, 200 only when postgres and redis answer

	Auth *auth.Handler
	Van  *van.Handler
	Host *host.Handler
}

// NewServer builds the router and the [http.Server] listening on cfg.ServerPort.
// ctx stops the rate limiter's sweep loop.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		metrics.Instrument("api"),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(ctx),
		middleware.PanicRecovery(log),
		middleware.Authenticate(verifier),
		middleware.CORS(cfg, cfg.ExtraOrigins),
		chimw.CleanPath,
	)

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)
	router.Handle("/metrics", metrics.Handler())
	router.Route("/api/v1", h.routes)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.GlobalRequestTimeout + constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

/*
routes lays out /api/v1:

	GET  /vans                    public catalogue
	GET  /vans/{id}
	POST /login
	GET  /host/vans               bearer token required from here on
	GET  /host/vans/{id}
	GET  /host/income
	GET  /host/reviews
*/
func (h Handlers) routes(router chi.Router) {
	router.Mount("/vans", h.Van.Routes())
	router.Route("/host", func(host chi.Router) {
		host.Mount("/vans", h.Van.HostRoutes())
		h.Host.RegisterRoutes(host)
	})
	router.Mount("/", h.Auth.Routes())
}

// Handler exposes the wired router to tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server. It blocks until the server is closed.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
