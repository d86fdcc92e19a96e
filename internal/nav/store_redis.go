// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package nav

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vanlife/internal/platform/constants"
)

// RedisStore keeps pending states under vanlife:nav:<visitor> as JSON.
//
// Take uses GETDEL so two concurrent requests can never both consume the
// same state.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a [RedisStore]. Unconsumed states expire after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (store *RedisStore) key(visitorID string) string {
	return constants.RedisPrefixNav + visitorID
}

func (store *RedisStore) Put(ctx context.Context, visitorID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("nav: encode state: %w", err)
	}

	if err := store.client.Set(ctx, store.key(visitorID), payload, store.ttl).Err(); err != nil {
		return fmt.Errorf("nav: write state: %w", err)
	}
	return nil
}

func (store *RedisStore) Take(ctx context.Context, visitorID string) (State, bool, error) {
	payload, err := store.client.GetDel(ctx, store.key(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("nav: take state: %w", err)
	}

	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, false, fmt.Errorf("nav: decode state: %w", err)
	}
	return state, true, nil
}
