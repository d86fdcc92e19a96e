// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web is the browser-facing frontend of Vanlife.

It renders every route server-side from the van API's data and keeps the
per-visitor state the browser would otherwise hold: the session flag that
gates the host area, and one-shot navigation state between pages.

Architecture:

  - [Visitor] identifies the browser with a cookie.
  - [RequireSession] gates the /host subtree on the visitor's session flag.
  - [LoginFlow] flips the flag only after the API accepts the credentials.
  - Pages drive a [resource.Resource] per request and render its state.
*/
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/vanlife/internal/platform/config"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/metrics"
	"github.com/taibuivan/vanlife/internal/platform/middleware"
	"github.com/taibuivan/vanlife/internal/platform/respond"
)

// LoginPath is where gated requests are sent.
const LoginPath = "/login"

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// NewServer builds the frontend router. ctx bounds background middleware work.
func NewServer(ctx context.Context, cfg *config.WebConfig, log *slog.Logger, handler *Handler) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(Visitor(cfg.CookieSecure))
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Instrument("web"))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	handler.Register(r)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.GlobalRequestTimeout + constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

/*
Register mounts every page on router.

# Routes
  - GET  /, /about, /vans, /vans/{id}
  - GET  /login, POST /login, POST /logout, POST /navigate
  - GET  /host, /host/income, /host/reviews, /host/vans, /host/vans/{id}[/pricing|/photos] (gated)
  - everything else renders the not-found page
*/
func (handler *Handler) Register(router chi.Router) {
	router.Get("/", handler.home)
	router.Get("/about", handler.about)
	router.Get("/vans", handler.vans)
	router.Get("/vans/{id}", handler.vanDetail)

	router.Get(LoginPath, handler.loginPage)
	router.Post(LoginPath, handler.loginSubmit)
	router.Post("/logout", handler.logout)
	router.Post("/navigate", handler.navigate)

	router.Route("/host", func(hostRouter chi.Router) {
		hostRouter.Use(RequireSession(handler.sessions, handler.navigation, LoginPath))

		hostRouter.Get("/", handler.hostDashboard)
		hostRouter.Get("/income", handler.hostIncome)
		hostRouter.Get("/reviews", handler.hostReviews)
		hostRouter.Get("/vans", handler.hostVans)
		hostRouter.Get("/vans/{id}", handler.hostVanDetail(tabInfo))
		hostRouter.Get("/vans/{id}/pricing", handler.hostVanDetail(tabPricing))
		hostRouter.Get("/vans/{id}/photos", handler.hostVanDetail(tabPhotos))
		hostRouter.NotFound(handler.notFound)
	})

	router.NotFound(handler.notFound)
}

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

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
