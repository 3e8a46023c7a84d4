// Package cache provides bounded memoization for expensive calls.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// FetchFunc computes the value for a key on a cache miss.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// outcome is a completed call, error included. Failures are stored like
// successes, so a failed call replays from cache instead of retrying.
type outcome[V any] struct {
	value V
	err   error
}

// Memo memoizes a single operation behind a fixed-capacity LRU cache.
// Concurrent misses for the same key are collapsed into one fetch.
// Safe for concurrent use.
type Memo[K comparable, V any] struct {
	fetch    FetchFunc[K, V]
	store    *lru.Cache[K, outcome[V]]
	capacity int
	flight   singleflight.Group

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewMemo creates a memo with the given capacity around fetch.
// Capacity must be positive.
func NewMemo[K comparable, V any](capacity int, fetch FetchFunc[K, V]) (*Memo[K, V], error) {
	if fetch == nil {
		return nil, errors.New("fetch function is required")
	}
	m := &Memo[K, V]{fetch: fetch, capacity: capacity}
	store, err := lru.NewWithEvict(capacity, func(K, outcome[V]) {
		m.evictions.Add(1)
	})
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	m.store = store
	return m, nil
}

// Get returns the memoized outcome for key, fetching it on first use.
// A hit marks the key most-recently-used; a miss fetches, stores the
// outcome (evicting the least-recently-used entry if at capacity), and
// returns it.
func (m *Memo[K, V]) Get(ctx context.Context, key K) (V, error) {
	if out, ok := m.store.Get(key); ok {
		m.hits.Add(1)
		return out.value, out.err
	}

	v, _, _ := m.flight.Do(fmt.Sprintf("%v", key), func() (any, error) {
		// A concurrent caller may have stored the outcome between our
		// lookup and the flight starting.
		if out, ok := m.store.Get(key); ok {
			m.hits.Add(1)
			return out, nil
		}
		m.misses.Add(1)
		value, err := m.fetch(ctx, key)
		out := outcome[V]{value: value, err: err}
		m.store.Add(key, out)
		return out, nil
	})

	out := v.(outcome[V])
	return out.value, out.err
}

// Contains reports whether key is cached without touching recency order.
func (m *Memo[K, V]) Contains(key K) bool {
	return m.store.Contains(key)
}

// Len returns the number of cached entries.
func (m *Memo[K, V]) Len() int {
	return m.store.Len()
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
	Capacity  int   `json:"capacity"`
}

// Stats returns current counters and occupancy.
func (m *Memo[K, V]) Stats() Stats {
	return Stats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
		Entries:   m.store.Len(),
		Capacity:  m.capacity,
	}
}
