// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/taibuivan/vanlife/internal/client"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/platform/metrics"
	"github.com/taibuivan/vanlife/internal/session"
)

// LoginStatus is the state of a [LoginFlow].
type LoginStatus string

const (
	LoginIdle       LoginStatus = "idle"
	LoginSubmitting LoginStatus = "submitting"
)

// ErrLoginInFlight is returned when Submit is called while a submission is
// still pending.
var ErrLoginInFlight = errors.New("web: login already in progress")

// Authenticator exchanges credentials for a host token.
type Authenticator interface {
	LoginUser(ctx context.Context, credentials client.Credentials) (client.LoginResult, error)
}

// LoginFlow submits one visitor's credentials.
//
// While a submission is in flight the status is submitting and further
// submissions are refused. The session flag is set to true only after the
// API accepted the credentials; a failure leaves it untouched and returns the
// flow to idle so the form can be resubmitted.
type LoginFlow struct {
	api     Authenticator
	session session.Store

	mu     sync.Mutex
	status LoginStatus
}

// NewLoginFlow creates an idle flow writing to store.
func NewLoginFlow(api Authenticator, store session.Store) *LoginFlow {
	return &LoginFlow{api: api, session: store, status: LoginIdle}
}

// Status returns the current status.
func (flow *LoginFlow) Status() LoginStatus {
	flow.mu.Lock()
	defer flow.mu.Unlock()
	return flow.status
}

// Submit authenticates credentials and, on success, marks the visitor as
// logged in. The returned error's message is suitable for display.
func (flow *LoginFlow) Submit(ctx context.Context, credentials client.Credentials) (client.LoginResult, error) {
	flow.mu.Lock()
	if flow.status == LoginSubmitting {
		flow.mu.Unlock()
		return client.LoginResult{}, ErrLoginInFlight
	}
	flow.status = LoginSubmitting
	flow.mu.Unlock()

	defer func() {
		flow.mu.Lock()
		flow.status = LoginIdle
		flow.mu.Unlock()
	}()

	credentials.Email = strings.TrimSpace(credentials.Email)
	logger := ctxutil.GetLogger(ctx)

	result, err := flow.api.LoginUser(ctx, credentials)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		logger.InfoContext(ctx, "login_rejected", slog.String("reason", err.Error()))
		return client.LoginResult{}, err
	}

	if err := writeFlag(ctx, flow.session, true); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		logger.ErrorContext(ctx, "session_write_failed", slog.Any("error", err))
		return client.LoginResult{}, &client.Error{
			Kind:    client.KindUnexpected,
			Message: "Could not start your session. Please try again.",
			Cause:   err,
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logger.InfoContext(ctx, "login_succeeded", slog.String("user_id", result.User.ID))
	return result, nil
}

// # Flow Registry

// loginFlows keeps one [LoginFlow] per visitor so a double submit from the
// same browser is refused rather than raced.
type loginFlows struct {
	api      Authenticator
	sessions session.Provider

	mu    sync.Mutex
	flows map[string]*LoginFlow
}

func newLoginFlows(api Authenticator, sessions session.Provider) *loginFlows {
	return &loginFlows{api: api, sessions: sessions, flows: make(map[string]*LoginFlow)}
}

// acquire returns the visitor's flow. release must be called when the
// submission is done; idle flows are dropped.
func (registry *loginFlows) acquire(visitorID string) (flow *LoginFlow, release func()) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	flow, ok := registry.flows[visitorID]
	if !ok {
		flow = NewLoginFlow(registry.api, registry.sessions.For(visitorID))
		registry.flows[visitorID] = flow
	}

	return flow, func() {
		registry.mu.Lock()
		defer registry.mu.Unlock()
		if current, ok := registry.flows[visitorID]; ok && current == flow && flow.Status() == LoginIdle {
			delete(registry.flows, visitorID)
		}
	}
}

// # Handlers

type loginData struct {
	Message    string
	Error      string
	Email      string
	From       string
	Submitting bool
}

// localPath reports whether target stays on this site.
func localPath(target string) bool {
	return strings.HasPrefix(target, "/") &&
		!strings.HasPrefix(target, "//") &&
		!strings.HasPrefix(target, `/\`)
}

func (handler *Handler) destination(from string) string {
	if localPath(from) {
		return from
	}
	return handler.options.DefaultHostPath
}

/*
loginPage handles GET /login.

A visitor who is already logged in is sent on to the host area, so the form
is not reachable by going back after a successful login. Otherwise the
navigation state left by the gate supplies the banner message and the
destination.
*/
func (handler *Handler) loginPage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)
	visitorID := ctxutil.GetVisitor(ctx)

	loggedIn, err := handler.sessions.For(visitorID).Get(ctx)
	if err != nil {
		logger.WarnContext(ctx, "session_read_failed", slog.Any("error", err))
	}
	if loggedIn {
		http.Redirect(writer, request, handler.options.DefaultHostPath, http.StatusSeeOther)
		return
	}

	state, _, err := handler.navigation.Take(ctx, visitorID)
	if err != nil {
		logger.WarnContext(ctx, "nav_state_read_failed", slog.Any("error", err))
	}

	data := loginData{Message: state.Message, From: handler.destination(state.From)}
	handler.pages.render(writer, request, http.StatusOK, pageLogin, handler.view(request, frame{title: "Log in", section: "login"}, data))
}

/*
loginSubmit handles POST /login.

Response:
  - 303: to the recorded destination, with the token cookie set
  - 401: form re-rendered with the API's message; the session flag is unchanged
  - 409: a submission from this visitor is still in flight
*/
func (handler *Handler) loginSubmit(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	chrome := frame{title: "Log in", section: "login"}

	if err := request.ParseForm(); err != nil {
		handler.pages.render(writer, request, http.StatusBadRequest, pageLogin, handler.view(request, chrome, loginData{
			Error: "Invalid form submission.",
			From:  handler.options.DefaultHostPath,
		}))
		return
	}

	credentials := client.Credentials{
		Email:    request.PostForm.Get("email"),
		Password: request.PostForm.Get("password"),
	}
	from := handler.destination(request.PostForm.Get("from"))

	flow, release := handler.logins.acquire(ctxutil.GetVisitor(ctx))
	defer release()

	result, err := flow.Submit(ctx, credentials)
	if errors.Is(err, ErrLoginInFlight) {
		handler.pages.render(writer, request, http.StatusConflict, pageLogin, handler.view(request, chrome, loginData{
			Email:      credentials.Email,
			From:       from,
			Submitting: true,
		}))
		return
	}
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, client.ErrUnauthorized) {
			status = http.StatusBadGateway
		}
		handler.pages.render(writer, request, status, pageLogin, handler.view(request, chrome, loginData{
			Error: err.Error(),
			Email: credentials.Email,
			From:  from,
		}))
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.TokenCookieName,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(constants.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.options.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(writer, request, from, http.StatusSeeOther)
}

// logout handles POST /logout: the flag goes false and the token cookie is dropped.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if err := writeFlag(ctx, handler.sessions.For(ctxutil.GetVisitor(ctx)), false); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_write_failed", slog.Any("error", err))
		handler.pages.render(writer, request, http.StatusInternalServerError, pageError, handler.view(request, frame{title: "Error"}, "could not end your session"))
		return
	}

	handler.clearToken(writer)
	http.Redirect(writer, request, "/", http.StatusSeeOther)
}
