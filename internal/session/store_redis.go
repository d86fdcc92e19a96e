// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vanlife/internal/platform/constants"
)

// RedisProvider persists flags in Redis.
//
// # Key Taxonomy
//
//	vanlife:session:<visitor>:loggedin   "true" | "false", no TTL
//	vanlife:session-events:<visitor>     pub/sub channel carrying the new value
type RedisProvider struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisProvider creates a [RedisProvider] on client.
func NewRedisProvider(client *redis.Client, logger *slog.Logger) *RedisProvider {
	return &RedisProvider{client: client, logger: logger}
}

// For returns the store of visitorID.
func (provider *RedisProvider) For(visitorID string) Store {
	return &redisStore{
		client:  provider.client,
		logger:  provider.logger,
		key:     constants.RedisPrefixSession + visitorID + ":loggedin",
		channel: constants.RedisChannelSession + visitorID,
	}
}

type redisStore struct {
	client  *redis.Client
	logger  *slog.Logger
	key     string
	channel string
}

func (store *redisStore) Get(ctx context.Context) (bool, error) {
	value, err := store.client.Get(ctx, store.key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("session: read flag: %w", err)
	}

	loggedIn, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("session: corrupt flag %q: %w", value, err)
	}
	return loggedIn, nil
}

// Set writes the flag and publishes it. The write is a single SET, so
// readers never observe a partial value.
func (store *redisStore) Set(ctx context.Context, loggedIn bool) error {
	value := strconv.FormatBool(loggedIn)

	if err := store.client.Set(ctx, store.key, value, 0).Err(); err != nil {
		return fmt.Errorf("session: write flag: %w", err)
	}

	// Notification is best effort; the stored flag is authoritative.
	if err := store.client.Publish(ctx, store.channel, value).Err(); err != nil {
		store.logger.WarnContext(ctx, "session_publish_failed", slog.String("channel", store.channel), slog.Any("error", err))
	}
	return nil
}

func (store *redisStore) Subscribe(listener func(bool)) (cancel func()) {
	ctx, stop := context.WithCancel(context.Background())
	pubsub := store.client.Subscribe(ctx, store.channel)
	done := make(chan struct{})

	// Wait for the subscription confirmation so a Set issued right after
	// Subscribe returns is not missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		store.logger.Warn("session_subscribe_failed", slog.String("channel", store.channel), slog.Any("error", err))
	}

	go func() {
		defer close(done)
		for message := range pubsub.Channel() {
			loggedIn, err := strconv.ParseBool(message.Payload)
			if err != nil {
				store.logger.Warn("session_event_malformed", slog.String("payload", message.Payload))
				continue
			}
			listener(loggedIn)
		}
	}()

	return func() {
		stop()
		_ = pubsub.Close()
		<-done
	}
}
