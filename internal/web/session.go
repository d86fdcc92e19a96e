// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/vanlife/internal/nav"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/session"
)

// SessionExpiredMessage is shown on the login page when the van API stopped
// accepting the visitor's token.
const SessionExpiredMessage = "Your session has expired. Please log in again."

// broadcastWait bounds how long a flag write waits to see its own change
// notification.
const broadcastWait = 250 * time.Millisecond

// writeFlag stores loggedIn and waits for the store to announce the change,
// which is how other frontend replicas sharing the store learn of it. A
// missing announcement is logged; the stored flag stays authoritative.
func writeFlag(ctx context.Context, store session.Store, loggedIn bool) error {
	announced := make(chan struct{}, 1)
	cancel := store.Subscribe(func(value bool) {
		if value != loggedIn {
			return
		}
		select {
		case announced <- struct{}{}:
		default:
		}
	})
	defer cancel()

	if err := store.Set(ctx, loggedIn); err != nil {
		return err
	}

	logger := ctxutil.GetLogger(ctx)
	timer := time.NewTimer(broadcastWait)
	defer timer.Stop()

	select {
	case <-announced:
		logger.DebugContext(ctx, "session_flag_changed", slog.Bool("logged_in", loggedIn))
	case <-timer.C:
		logger.WarnContext(ctx, "session_change_unannounced", slog.Bool("logged_in", loggedIn))
	case <-ctx.Done():
	}
	return nil
}

// clearToken drops the host API token cookie.
func (handler *Handler) clearToken(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.options.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// expireSession handles a token the van API rejected: the flag goes false,
// the token cookie is dropped and the visitor is sent to log in again, with
// the current page as the destination.
func (handler *Handler) expireSession(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)
	visitorID := ctxutil.GetVisitor(ctx)

	if err := writeFlag(ctx, handler.sessions.For(visitorID), false); err != nil {
		logger.ErrorContext(ctx, "session_write_failed", slog.Any("error", err))
	}
	handler.clearToken(writer)

	state := nav.State{From: request.URL.RequestURI(), Message: SessionExpiredMessage}
	if err := handler.navigation.Put(ctx, visitorID, state); err != nil {
		logger.ErrorContext(ctx, "nav_state_write_failed", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "host_token_rejected", slog.String("from", state.From))
	http.Redirect(writer, request, LoginPath, http.StatusSeeOther)
}
