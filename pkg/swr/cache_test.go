package swr

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestCacheColdFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int64
	cache := NewCache(time.Minute, func(ctx context.Context, key string) ([]string, error) {
		atomic.AddInt64(&calls, 1)
		return []string{key + "-1", key + "-2"}, nil
	})

	data, ok := cache.Get(ctx, "alice")
	if !ok {
		t.Fatalf("expected a value on cold fetch")
	}

	if e, g := 2, len(data); e != g {
		t.Errorf("len(data): expected '%v', got '%v'", e, g)
	}

	// Second read within the freshness window must not refetch
	if _, ok := cache.Get(ctx, "alice"); !ok {
		t.Fatalf("expected cached value")
	}

	if e, g := int64(1), atomic.LoadInt64(&calls); e != g {
		t.Errorf("calls: expected '%v', got '%v'", e, g)
	}
}

func TestCacheStaleWhileRevalidate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int64
	cache := NewCache(time.Minute, func(ctx context.Context, key string) ([]string, error) {
		n := atomic.AddInt64(&calls, 1)
		if n == 1 {
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	})

	if _, ok := cache.Get(ctx, "alice"); !ok {
		t.Fatalf("expected a value on cold fetch")
	}

	// Move the clock past the freshness window
	cache.now = func() time.Time {
		return time.Now().Add(2 * time.Minute)
	}

	// Stale read returns the last known value immediately
	data, ok := cache.Get(ctx, "alice")
	if !ok {
		t.Fatalf("expected stale value")
	}

	if e, g := "stale", data[0]; e != g {
		t.Errorf("data[0]: expected '%v', got '%v'", e, g)
	}

	// The background refresh eventually swaps in the fresh value
	deadline := time.Now().Add(5 * time.Second)
	for {
		if atomic.LoadInt64(&calls) >= 2 {
			break
		}

		if time.Now().After(deadline) {
			t.Fatalf("background refresh never ran")
		}

		time.Sleep(10 * time.Millisecond)
	}
}

func TestCacheFetchFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := NewCache(time.Minute, func(ctx context.Context, key string) ([]string, error) {
		return nil, errors.New("transient failure")
	})

	// A cold entry with a failing fetch degrades to "no value"
	if _, ok := cache.Get(ctx, "alice"); ok {
		t.Errorf("expected no value when fetch fails")
	}
}

func TestCacheKeyedByIdentity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := NewCache(time.Minute, func(ctx context.Context, key string) ([]string, error) {
		return []string{key}, nil
	})

	alice, _ := cache.Get(ctx, "alice")
	bob, _ := cache.Get(ctx, "bob")

	if e, g := "alice", alice[0]; e != g {
		t.Errorf("alice[0]: expected '%v', got '%v'", e, g)
	}

	if e, g := "bob", bob[0]; e != g {
		t.Errorf("bob[0]: expected '%v', got '%v'", e, g)
	}

	cache.Invalidate("alice")

	if _, ok := cache.Get(ctx, "bob"); !ok {
		t.Errorf("invalidating one identity must not drop another")
	}
}
