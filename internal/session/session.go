// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session holds each visitor's "logged in" flag.

The flag is the only thing the route gate consults. It becomes true only
after a login completes, survives restarts of the web frontend, and goes
back to false only through an explicit logout. There is no expiry.

Flags are scoped per visitor: a [Provider] hands out the [Store] for one
visitor id. [MemoryProvider] serves tests and single-process development;
[RedisProvider] persists flags and fans out changes over pub/sub.
*/
package session

import (
	"context"
	"sync"
)

// Store is one visitor's session flag.
type Store interface {
	// Get returns the flag. A visitor that never logged in reads false.
	Get(ctx context.Context) (bool, error)

	// Set replaces the flag and notifies subscribers.
	Set(ctx context.Context, loggedIn bool) error

	// Subscribe calls listener with every new value until cancel is called.
	Subscribe(listener func(loggedIn bool)) (cancel func())
}

// Provider resolves the [Store] of a visitor.
type Provider interface {
	For(visitorID string) Store
}

// # Memory

// MemoryProvider keeps flags in process memory.
type MemoryProvider struct {
	mu        sync.Mutex
	flags     map[string]bool
	listeners map[string]map[int]func(bool)
	nextID    int
}

// NewMemoryProvider creates an empty [MemoryProvider].
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		flags:     make(map[string]bool),
		listeners: make(map[string]map[int]func(bool)),
	}
}

// For returns the store of visitorID.
func (provider *MemoryProvider) For(visitorID string) Store {
	return &memoryStore{provider: provider, visitorID: visitorID}
}

type memoryStore struct {
	provider  *MemoryProvider
	visitorID string
}

func (store *memoryStore) Get(ctx context.Context) (bool, error) {
	store.provider.mu.Lock()
	defer store.provider.mu.Unlock()
	return store.provider.flags[store.visitorID], nil
}

func (store *memoryStore) Set(ctx context.Context, loggedIn bool) error {
	store.provider.mu.Lock()
	store.provider.flags[store.visitorID] = loggedIn
	listeners := make([]func(bool), 0, len(store.provider.listeners[store.visitorID]))
	for _, listener := range store.provider.listeners[store.visitorID] {
		listeners = append(listeners, listener)
	}
	store.provider.mu.Unlock()

	for _, listener := range listeners {
		listener(loggedIn)
	}
	return nil
}

func (store *memoryStore) Subscribe(listener func(bool)) (cancel func()) {
	provider := store.provider
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if provider.listeners[store.visitorID] == nil {
		provider.listeners[store.visitorID] = make(map[int]func(bool))
	}
	id := provider.nextID
	provider.nextID++
	provider.listeners[store.visitorID][id] = listener

	return func() {
		provider.mu.Lock()
		defer provider.mu.Unlock()
		delete(provider.listeners[store.visitorID], id)
	}
}
