// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/vanlife/internal/nav"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/platform/metrics"
	"github.com/taibuivan/vanlife/internal/session"
)

// GateMessage is shown on the login page after a gated redirect.
const GateMessage = "You must log in first."

// RequireSession guards a route subtree behind the visitor's session flag.
//
// The flag is read on every request and never cached, so a login or logout
// takes effect on the very next navigation. When the flag is false the
// originally requested path (with its query) and [GateMessage] are handed to
// the login page as navigation state, and the visitor is redirected to
// loginPath. A flag that cannot be read counts as false.
func RequireSession(sessions session.Provider, navigation nav.Store, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)
			visitorID := ctxutil.GetVisitor(ctx)

			loggedIn, err := sessions.For(visitorID).Get(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "session_read_failed", slog.Any("error", err))
				loggedIn = false
			}

			if loggedIn {
				metrics.GateDecisionsTotal.WithLabelValues("allowed").Inc()
				next.ServeHTTP(writer, request)
				return
			}

			metrics.GateDecisionsTotal.WithLabelValues("redirecting").Inc()

			state := nav.State{From: request.URL.RequestURI(), Message: GateMessage}
			if err := navigation.Put(ctx, visitorID, state); err != nil {
				logger.ErrorContext(ctx, "nav_state_write_failed", slog.Any("error", err))
			}

			logger.DebugContext(ctx, "gate_redirecting", slog.String("from", state.From))
			http.Redirect(writer, request, loginPath, http.StatusSeeOther)
		})
	}
}
