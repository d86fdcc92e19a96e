// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the go-redis client shared by both binaries.

The web frontend stores each visitor's session flag and one-shot navigation
state in it and publishes session changes on it. The API only probes it for
readiness.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// Connect parses redisURL (redis:// or rediss://), applies per-call
// timeouts suited to small key reads, and pings the server.
func Connect(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	opts.DialTimeout = 3 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	opts.MinIdleConns = 2

	client := redis.NewClient(opts)

	if err := HealthCheck(client)(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected", slog.String("addr", opts.Addr), slog.Int("db", opts.DB))
	return client, nil
}

// HealthCheck returns a readiness probe for client.
func HealthCheck(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: ping: %w", err)
		}
		return nil
	}
}
