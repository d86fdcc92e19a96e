// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vanlife/internal/session"
	"github.com/taibuivan/vanlife/pkg/uuid"
)

// exerciseProvider runs the shared contract against any provider.
func exerciseProvider(t *testing.T, provider session.Provider) {
	ctx := context.Background()
	alice, bob := provider.For(uuid.New()), provider.For(uuid.New())

	loggedIn, err := alice.Get(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn, "unknown visitor reads false")

	var mu sync.Mutex
	var events []bool
	cancel := alice.Subscribe(func(value bool) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, value)
	})

	require.NoError(t, alice.Set(ctx, true))

	loggedIn, err = alice.Get(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	loggedIn, err = bob.Get(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn, "flags are per visitor")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) == 1 && events[0]
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, alice.Set(ctx, false))

	loggedIn, err = alice.Get(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true}, events, "no events after cancel")
}

func TestMemoryProvider(t *testing.T) {
	exerciseProvider(t, session.NewMemoryProvider())
}

func TestMemoryProvider_SharedAcrossLookups(t *testing.T) {
	provider := session.NewMemoryProvider()
	ctx := context.Background()

	require.NoError(t, provider.For("v1").Set(ctx, true))

	loggedIn, err := provider.For("v1").Get(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)
}

// TestRedisProvider runs against a live Redis when VANLIFE_TEST_REDIS_URL is set.
func TestRedisProvider(t *testing.T) {
	redisURL := os.Getenv("VANLIFE_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("VANLIFE_TEST_REDIS_URL not set")
	}

	options, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })

	exerciseProvider(t, session.NewRedisProvider(client, slog.Default()))
}
