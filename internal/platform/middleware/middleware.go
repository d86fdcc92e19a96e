// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware is the HTTP chain shared by the van API and the web
frontend.

Order used by both servers:

	RequestID -> [Visitor] -> StructuredLogger -> metrics -> Timeout -> RateLimit -> PanicRecovery

The API adds Authenticate and CORS after PanicRecovery.
*/
package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/pkg/uuid"
)

// maxRequestIDLength bounds caller-supplied correlation ids.
const maxRequestIDLength = 128

// # Request Tracing

// RequestID adopts the caller's X-Request-ID, or mints a UUIDv7, and echoes
// it on the response. The web frontend forwards it to the API, so one id
// follows a page render through both logs.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := strings.TrimSpace(request.Header.Get(constants.HeaderXRequestID))
			if requestID == "" || len(requestID) > maxRequestIDLength {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// StructuredLogger puts a request-scoped logger in the context and writes one
// http_request_finished entry per request. 5xx log at error, 4xx at warn.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()

			attrs := []any{
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			}
			if visitor := ctxutil.GetVisitor(request.Context()); visitor != "" {
				attrs = append(attrs, slog.String("visitor_id", visitor))
			}

			requestLogger := logger.With(attrs...)
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case recorder.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case recorder.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			route := ""
			if routeContext := chi.RouteContext(ctx); routeContext != nil {
				route = routeContext.RoutePattern()
			}

			requestLogger.Log(ctx, level, "http_request_finished",
				slog.Int("status", recorder.status),
				slog.String("route", route),
				slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

// # Helpers

// RealIP returns the client address: X-Real-IP, then the first
// X-Forwarded-For hop, then the connection's remote address.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// writeError renders the API error envelope. It is used where the
// request-scoped logger of respond.Error may not exist yet.
func writeError(writer http.ResponseWriter, appError *apperr.AppError) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(appError.HTTPStatus)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  appError.Code,
		constants.FieldError: appError.Message,
	})
}
