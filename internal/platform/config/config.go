// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values. Each binary owns
its own schema: [Config] for the van API and [WebConfig] for the browser
frontend.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components via constructors.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Vanlife API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL              string        `env:"DATABASE_URL,required"`
	DatabaseMaxConns         int32         `env:"DATABASE_MAX_CONNS"         envDefault:"10"`
	DatabaseStatementTimeout time.Duration `env:"DATABASE_STATEMENT_TIMEOUT" envDefault:"30s"`

	// MigrationPath overrides the migrations embedded in the binary when set.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for host access tokens
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Object Storage for van photos (MinIO / S3-compatible). Empty endpoint disables it.
	S3Endpoint        string        `env:"S3_ENDPOINT"`
	S3Bucket          string        `env:"S3_BUCKET"            envDefault:"vanlife-photos"`
	S3AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY"`
	S3UseSSL          bool          `env:"S3_USE_SSL"           envDefault:"true"`
	S3PresignExpiry   time.Duration `env:"S3_PRESIGN_EXPIRY"    envDefault:"1h"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// WebConfig holds all runtime configuration for the Vanlife web frontend.
type WebConfig struct {

	// Server settings
	ServerPort  string `env:"WEB_PORT"     envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// APIBaseURL is the root of the van API (e.g. http://localhost:8080/api/v1).
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080/api/v1"`

	// APITimeout bounds each API call. Zero leaves calls to the transport's own behavior.
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"0s"`

	// RenderWait caps how long a page waits for its data before rendering the
	// loading view instead. Zero waits for the fetch to settle.
	RenderWait time.Duration `env:"RENDER_WAIT" envDefault:"0s"`

	// RedisURL backs the session flag and navigation state. Empty keeps them in memory.
	RedisURL string `env:"REDIS_URL"`

	// CookieSecure marks visitor and token cookies as HTTPS-only.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	// DefaultHostPath is where a successful login lands when no destination was recorded.
	DefaultHostPath string `env:"DEFAULT_HOST_PATH" envDefault:"/host"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// LoadWeb parses environment variables into a [WebConfig] struct.
func LoadWeb() (*WebConfig, error) {
	cfg := &WebConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ObjectStorageEnabled reports whether van photos are served from object storage.
func (c *Config) ObjectStorageEnabled() bool {
	return c.S3Endpoint != ""
}

// IsDevelopment reports whether the frontend is running in development mode.
func (c *WebConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
