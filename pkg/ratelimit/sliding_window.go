package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Config holds the limiter settings.
type Config struct {
	// Limit is the number of requests one key may spend per Window.
	Limit int

	// Window is the sliding window length.
	Window time.Duration

	// MaxKeys caps how many client keys the limiter tracks at once.
	// When full, the stalest key is evicted; a brand-new client is a
	// better use of memory than one not seen for the longest time.
	// Default: 10000.
	MaxKeys int

	// Clock defaults to SystemClock.
	Clock Clock

	// Metrics defaults to NoopMetrics.
	Metrics Metrics
}

// entry tracks one client's requests inside the current window.
type entry struct {
	timestamps []time.Time
	lastSeen   time.Time
}

// Limiter is a sliding window rate limiter over in-memory state.
// Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	limit   int
	window  time.Duration
	maxKeys int
	clock   Clock
	metrics Metrics
}

const defaultMaxKeys = 10000

// New creates a limiter from the given config, applying defaults for
// unset optional fields.
func New(cfg Config) *Limiter {
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = defaultMaxKeys
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetrics{}
	}
	return &Limiter{
		entries: make(map[string]*entry),
		limit:   cfg.Limit,
		window:  cfg.Window,
		maxKeys: cfg.MaxKeys,
		clock:   cfg.Clock,
		metrics: cfg.Metrics,
	}
}

// Allow checks whether key may spend one request now and records it if
// so. Check and record happen under one lock, so concurrent requests
// cannot slip past the limit between them.
func (l *Limiter) Allow(key string) Decision {
	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	if e == nil {
		l.evictIfFullLocked()
		e = &entry{timestamps: make([]time.Time, 0, l.limit)}
		l.entries[key] = e
	}
	e.lastSeen = now

	// Drop requests that have left the window.
	kept := e.timestamps[:0]
	for _, ts := range e.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	e.timestamps = kept

	if len(e.timestamps) >= l.limit {
		oldest := e.timestamps[0]
		resetAt := oldest.Add(l.window)
		l.metrics.RecordDenied(key)
		return Decision{
			Key:        key,
			Allowed:    false,
			Limit:      l.limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: resetAt.Sub(now),
		}
	}

	e.timestamps = append(e.timestamps, now)
	l.metrics.RecordAllowed(key)
	return Decision{
		Key:       key,
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - len(e.timestamps),
		ResetAt:   e.timestamps[0].Add(l.window),
	}
}

// Len reports how many client keys are currently tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cleanup drops every key whose last request is older than twice the
// window. Run it periodically; without it, one-time visitors would be
// tracked forever.
func (l *Limiter) Cleanup() int {
	cutoff := l.clock.Now().Add(-2 * l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	l.metrics.SetTrackedKeys(len(l.entries))
	return removed
}

// StartCleanup runs Cleanup every interval until ctx ends. Call it in a
// goroutine from the server entrypoint.
func (l *Limiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// evictIfFullLocked makes room for a new key by removing the least
// recently seen one. Caller holds l.mu.
func (l *Limiter) evictIfFullLocked() {
	if len(l.entries) < l.maxKeys {
		return
	}
	var stalest string
	var stalestSeen time.Time
	first := true
	for key, e := range l.entries {
		if first || e.lastSeen.Before(stalestSeen) {
			stalest = key
			stalestSeen = e.lastSeen
			first = false
		}
	}
	if !first {
		delete(l.entries, stalest)
		l.metrics.RecordEviction()
	}
}
