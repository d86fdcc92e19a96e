// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries request-scoped values through [context.Context]:
// the correlation id and logger on both binaries, the verified host on the
// API, and the visitor id on the web frontend.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vanlife/internal/platform/sec"
)

// key is unexported so no other package can collide with these entries.
type key int

const (
	requestIDKey key = iota
	loggerKey
	hostKey
	visitorKey
)

func lookup[T any](ctx context.Context, k key) (T, bool) {
	value, ok := ctx.Value(k).(T)
	return value, ok
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the X-Request-ID of the request, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, requestIDKey)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request's logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, loggerKey); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Hosts

// WithHost attaches the claims of a verified host token.
func WithHost(ctx context.Context, claims *sec.HostClaims) context.Context {
	return context.WithValue(ctx, hostKey, claims)
}

// GetHost returns the verified host, or nil for anonymous requests.
func GetHost(ctx context.Context) *sec.HostClaims {
	claims, _ := lookup[*sec.HostClaims](ctx, hostKey)
	return claims
}

// # Visitors

func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorKey, visitorID)
}

// GetVisitor returns the browser's visitor id, or "" outside the web frontend.
func GetVisitor(ctx context.Context) string {
	id, _ := lookup[string](ctx, visitorKey)
	return id
}
