// Package cache keeps slow-changing backend state warm in memory. Site
// settings, category lists, the sitemap and the RSS feed change rarely
// but sit on every request path; each lives in a typed Entry with a TTL,
// deduplicated loading, and stale-while-error fallback so a backend
// outage degrades to slightly old chrome instead of error pages.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"fresh-motors-web/internal/observability/metrics"
)

// Entry is one cached value. All methods are safe for concurrent use.
type Entry[V any] struct {
	name   string
	ttl    time.Duration
	loader func(context.Context) (V, error)

	// now is replaced in tests to steer expiry.
	now func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	value    V
	loadedAt time.Time
	ok       bool
}

// NewEntry creates a cache entry that fills itself through loader.
func NewEntry[V any](name string, ttl time.Duration, loader func(context.Context) (V, error)) *Entry[V] {
	return &Entry[V]{
		name:   name,
		ttl:    ttl,
		loader: loader,
		now:    time.Now,
	}
}

// Name returns the entry name used in logs and metrics.
func (e *Entry[V]) Name() string {
	return e.name
}

// Get returns the cached value, loading it when missing or expired.
// Concurrent misses collapse into one backend call. When a reload fails
// and an old value exists, the old value is served and the failure only
// surfaces in logs and metrics; the error returns only when there is
// nothing at all to serve.
func (e *Entry[V]) Get(ctx context.Context) (V, error) {
	if value, ok := e.fresh(); ok {
		metrics.RecordCacheHit(e.name)
		return value, nil
	}
	metrics.RecordCacheMiss(e.name)

	if err := e.load(ctx, false); err != nil {
		e.mu.RLock()
		value, ok := e.value, e.ok
		e.mu.RUnlock()
		if ok {
			metrics.RecordCacheStale(e.name)
			return value, nil
		}
		var zero V
		return zero, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value, nil
}

// Refresh reloads the entry regardless of freshness. The old value
// stays in place when the load fails.
func (e *Entry[V]) Refresh(ctx context.Context) error {
	return e.load(ctx, true)
}

// Peek returns the current value without triggering a load.
func (e *Entry[V]) Peek() (V, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value, e.ok
}

// Warm reports whether the entry holds an unexpired value. Readiness
// checks use it to tell "serving cached data" from "would hit the
// backend on the first request".
func (e *Entry[V]) Warm() bool {
	_, ok := e.fresh()
	return ok
}

func (e *Entry[V]) fresh() (V, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.ok || e.now().Sub(e.loadedAt) >= e.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// load runs the loader through singleflight and stores the result. A
// non-forced flight that finds the entry already refreshed by a racing
// caller returns without a second backend call; forced loads always hit
// the backend.
func (e *Entry[V]) load(ctx context.Context, force bool) error {
	_, err, _ := e.group.Do("load", func() (interface{}, error) {
		if !force {
			if _, ok := e.fresh(); ok {
				return nil, nil
			}
		}

		value, err := e.loader(ctx)
		if err != nil {
			return nil, fmt.Errorf("load cache entry %q: %w", e.name, err)
		}

		e.mu.Lock()
		e.value = value
		e.loadedAt = e.now()
		e.ok = true
		e.mu.Unlock()
		return nil, nil
	})
	return err
}
