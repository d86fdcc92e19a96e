// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package nav carries state across exactly one navigation.

A page that redirects or links elsewhere can [Store.Put] a [State] for the
visitor; the next page rendered for that visitor [Store.Take]s it, which
also removes it. The state never appears in the URL and is never persisted
beyond that hand-off.

Two hand-offs use it:

  - the host gate tells the login page where the visitor was going and why
    they were stopped (From, Message);
  - the van list tells the detail page which filter to return to (Search, Type).
*/
package nav

import (
	"context"
	"sync"
)

// State is the data attached to a single navigation.
type State struct {
	From    string `json:"from,omitempty"`
	Message string `json:"message,omitempty"`
	Search  string `json:"search,omitempty"`
	Type    string `json:"type,omitempty"`
}

// IsZero reports whether s carries nothing.
func (s State) IsZero() bool {
	return s == State{}
}

// Store hands navigation state from one request of a visitor to the next.
type Store interface {
	// Put replaces any pending state of visitorID.
	Put(ctx context.Context, visitorID string, state State) error

	// Take returns and removes the pending state. ok is false when there was none.
	Take(ctx context.Context, visitorID string) (state State, ok bool, err error)
}

// # Memory

// MemoryStore keeps pending states in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]State
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pending: make(map[string]State)}
}

func (store *MemoryStore) Put(_ context.Context, visitorID string, state State) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.pending[visitorID] = state
	return nil
}

func (store *MemoryStore) Take(_ context.Context, visitorID string) (State, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	state, ok := store.pending[visitorID]
	delete(store.pending, visitorID)
	return state, ok, nil
}
