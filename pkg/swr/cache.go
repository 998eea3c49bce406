package swr

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/collagio/pkg/log"
	"github.com/bornholm/collagio/pkg/syncx"
	"github.com/pkg/errors"
)

// FetchFunc retrieves the value associated with a key.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

type entry[V any] struct {
	mu        sync.RWMutex
	data      V
	fetchedAt time.Time
	hasData   bool

	refreshing bool
}

func (e *entry[V]) snapshot() (V, time.Time, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.data, e.fetchedAt, e.hasData
}

// Cache is a stale-while-revalidate cache. Reads return the last known
// value immediately; when the value is older than the freshness window a
// background refresh is triggered. Entries are keyed so that a late
// result for one key can never surface under another.
type Cache[K comparable, V any] struct {
	fetch   FetchFunc[K, V]
	window  time.Duration
	entries syncx.Map[K, *entry[V]]

	now func() time.Time
}

func NewCache[K comparable, V any](window time.Duration, fetch FetchFunc[K, V]) *Cache[K, V] {
	return &Cache[K, V]{
		fetch:  fetch,
		window: window,
		now:    time.Now,
	}
}

// Get returns the cached value for the key and whether a value is known.
// A cold entry triggers a synchronous fetch; a stale entry returns the
// stale value and refreshes in the background. Fetch failures degrade to
// the last known value (or to "no value" on a cold entry) and are logged,
// never returned.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool) {
	e, _ := c.entries.LoadOrStore(key, &entry[V]{})

	data, fetchedAt, hasData := e.snapshot()

	if !hasData {
		return c.refresh(ctx, key, e)
	}

	if c.now().Sub(fetchedAt) > c.window {
		c.refreshAsync(ctx, key, e)
	}

	return data, true
}

// Invalidate drops the entry for the key; the next Get fetches anew.
func (c *Cache[K, V]) Invalidate(key K) {
	c.entries.Delete(key)
}

func (c *Cache[K, V]) refresh(ctx context.Context, key K, e *entry[V]) (V, bool) {
	data, err := c.fetch(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "could not fetch value", log.Error(errors.WithStack(err)))

		return e.currentData()
	}

	e.mu.Lock()
	e.data = data
	e.fetchedAt = c.now()
	e.hasData = true
	e.mu.Unlock()

	return data, true
}

func (c *Cache[K, V]) refreshAsync(ctx context.Context, key K, e *entry[V]) {
	e.mu.Lock()
	if e.refreshing {
		e.mu.Unlock()
		return
	}

	e.refreshing = true
	e.mu.Unlock()

	// The refresh must outlive the request that triggered it
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()

		c.refresh(ctx, key, e)

		e.mu.Lock()
		e.refreshing = false
		e.mu.Unlock()
	}()
}

func (e *entry[V]) currentData() (V, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.data, e.hasData
}
