// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared by the van API and the web
// frontend: server timing, rate limits, token and cookie names, and the Redis
// key layout for per-visitor state.
package constants

import "time"

const (
	AppName    = "vanlife"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout caps a single request, API fetches included.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting (per client IP)

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// Buckets idle longer than RateLimitClientTTL are swept every RateLimitCleanupInterval.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Host Access

const (
	// AuthIssuer is the iss claim on every host access token.
	AuthIssuer     = "vanlife.app"
	AccessTokenTTL = 24 * time.Hour

	// VisitorCookieName keys the session flag and navigation state of one browser.
	VisitorCookieName   = "vanlife_visitor"
	VisitorCookieMaxAge = 365 * 24 * time.Hour

	// TokenCookieName holds the bearer token the frontend forwards to /api/v1/host.
	TokenCookieName = "vanlife_token"
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXRequestID    = "X-Request-ID"
)

// # Envelope Fields

const (
	FieldData   = "data"
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Keys

const (
	RedisPrefixSession  = "vanlife:session:"
	RedisChannelSession = "vanlife:session-events:"
	RedisPrefixNav      = "vanlife:nav:"

	// NavStateTTL bounds how long navigation state waits to be read.
	NavStateTTL = 10 * time.Minute
)
