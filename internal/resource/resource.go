// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package resource tracks one asynchronous fetch per view.

A [Resource] is always in exactly one of four states: idle, loading, success
or error. Load moves it to loading before the fetch starts and every Load
bumps a generation counter; a fetch that settles after a newer Load is
discarded, so the last requested key always wins regardless of the order
in which responses arrive.

There is no caching and no deduplication. Every Load performs a fresh fetch.
*/
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"

	"github.com/taibuivan/vanlife/internal/platform/metrics"
)

// # States & Events

// Status is the tag of a [State].
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	eventLoad    = "load"
	eventResolve = "resolve"
	eventReject  = "reject"
)

// State is a snapshot of a resource. Data is set only for success and Err
// only for error.
type State[K comparable, T any] struct {
	Status Status
	Key    K
	Data   T
	Err    error
}

// Message returns the human-readable failure reason, or "" outside the error state.
func (s State[K, T]) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// FetchFunc retrieves the data for key.
type FetchFunc[K comparable, T any] func(ctx context.Context, key K) (T, error)

// # Resource

// Resource drives the fetch lifecycle for a single view.
type Resource[K comparable, T any] struct {
	name  string
	fetch FetchFunc[K, T]

	mu         sync.Mutex
	machine    *fsm.FSM
	generation uint64
	state      State[K, T]
	changed    chan struct{}
	outbox     []State[K, T] // snapshots not yet delivered, guarded by mu

	// notifyMu serializes deliveries so listeners see transitions in order.
	// It is never acquired while mu is held.
	notifyMu  sync.Mutex
	listeners map[int]func(State[K, T])
	nextID    int
}

// New creates an idle resource. name labels its metrics.
func New[K comparable, T any](name string, fetch FetchFunc[K, T]) *Resource[K, T] {
	return &Resource[K, T]{
		name:  name,
		fetch: fetch,
		machine: fsm.NewFSM(
			string(StatusIdle),
			fsm.Events{
				{Name: eventLoad, Src: []string{string(StatusIdle), string(StatusLoading), string(StatusSuccess), string(StatusError)}, Dst: string(StatusLoading)},
				{Name: eventResolve, Src: []string{string(StatusLoading)}, Dst: string(StatusSuccess)},
				{Name: eventReject, Src: []string{string(StatusLoading)}, Dst: string(StatusError)},
			},
			fsm.Callbacks{},
		),
		state:     State[K, T]{Status: StatusIdle},
		changed:   make(chan struct{}),
		listeners: make(map[int]func(State[K, T])),
	}
}

// Load switches to loading for key and starts the fetch in the background.
//
// The loading state is visible as soon as Load returns. The fetch runs with
// ctx; a superseded fetch is left to finish and its result is dropped.
func (r *Resource[K, T]) Load(ctx context.Context, key K) {
	r.mu.Lock()
	r.generation++
	generation := r.generation
	r.transition(ctx, eventLoad, State[K, T]{Status: StatusLoading, Key: key})
	r.mu.Unlock()

	r.flush()

	go r.run(ctx, generation, key)
}

func (r *Resource[K, T]) run(ctx context.Context, generation uint64, key K) {
	data, err := r.fetch(ctx, key)
	r.settle(ctx, generation, key, data, err)
}

// settle commits a fetch outcome if generation is still current.
func (r *Resource[K, T]) settle(ctx context.Context, generation uint64, key K, data T, fetchErr error) {
	r.mu.Lock()
	if generation != r.generation {
		r.mu.Unlock()
		metrics.ResourceSettledTotal.WithLabelValues(r.name, "discarded").Inc()
		return
	}

	event, next, outcome := eventResolve, State[K, T]{Status: StatusSuccess, Key: key, Data: data}, "success"
	if fetchErr != nil {
		event, next, outcome = eventReject, State[K, T]{Status: StatusError, Key: key, Err: fetchErr}, "error"
	}

	r.transition(ctx, event, next)
	r.mu.Unlock()

	r.flush()
	metrics.ResourceSettledTotal.WithLabelValues(r.name, outcome).Inc()
}

// transition fires event on the machine and stores next. Must hold mu.
//
// Reloading while already loading is a self-transition, which the machine
// reports as NoTransitionError. Resolve and reject only run for the current
// generation, which is always loading, so any other error is a bug. The
// machine never sees cancellation: a fetch aborted by ctx still settles.
func (r *Resource[K, T]) transition(ctx context.Context, event string, next State[K, T]) {
	if err := r.machine.Event(context.WithoutCancel(ctx), event); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			panic(fmt.Sprintf("resource %s: %s from %s: %v", r.name, event, r.machine.Current(), err))
		}
	}

	r.state = next
	r.outbox = append(r.outbox, next)
	close(r.changed)
	r.changed = make(chan struct{})
}

// flush delivers queued snapshots in order. Whichever caller holds notifyMu
// drains the queue, so a snapshot is delivered before the call that queued
// it returns.
func (r *Resource[K, T]) flush() {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	r.drain()
}

// drain delivers every queued snapshot. Must hold notifyMu.
func (r *Resource[K, T]) drain() {
	for {
		r.mu.Lock()
		if len(r.outbox) == 0 {
			r.mu.Unlock()
			return
		}
		snapshot := r.outbox[0]
		r.outbox = r.outbox[1:]
		r.mu.Unlock()

		for _, listener := range r.listeners {
			listener(snapshot)
		}
	}
}

// # Observation

// State returns the current snapshot.
func (r *Resource[K, T]) State() State[K, T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers listener for every subsequent state change. Listeners
// are called one at a time in transition order, and a change is delivered
// before the Load or fetch that caused it completes. They may call State but
// must not call Load, Subscribe or a cancel func.
func (r *Resource[K, T]) Subscribe(listener func(State[K, T])) (cancel func()) {
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	r.drain()

	id := r.nextID
	r.nextID++
	r.listeners[id] = listener

	return func() {
		r.notifyMu.Lock()
		defer r.notifyMu.Unlock()
		r.drain()
		delete(r.listeners, id)
	}
}

// Wait blocks until the resource is not loading and returns that state.
// It follows reloads: a Load issued while waiting extends the wait to the
// newer fetch.
func (r *Resource[K, T]) Wait(ctx context.Context) (State[K, T], error) {
	for {
		r.mu.Lock()
		state, changed := r.state, r.changed
		r.mu.Unlock()

		if state.Status != StatusLoading {
			return state, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}
