// Package ratelimit implements the per-client sliding window limiter
// used by the engagement endpoints. Comments, ratings, favorites and
// subscriptions are open to anonymous visitors, so the limiter keys on
// client IP and keeps all state in memory; this service runs as a single
// instance and the limits protect the backend, not a billing plan.
package ratelimit

import (
	"fmt"
	"time"
)

// Clock abstracts time for the limiter so tests can steer it.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock reading the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Decision is the outcome of one Allow call, carrying everything the
// middleware needs for X-RateLimit-* and Retry-After headers.
type Decision struct {
	// Key is the client identifier the decision applies to.
	Key string

	// Allowed reports whether the request fits in the window.
	Allowed bool

	// Limit is the configured request cap per window.
	Limit int

	// Remaining is how many requests the window still admits. Zero on
	// denied requests.
	Remaining int

	// ResetAt is when the oldest counted request leaves the window.
	ResetAt time.Time

	// RetryAfter is how long a denied client should wait. Zero on
	// allowed requests.
	RetryAfter time.Duration
}

// String renders the decision for debug logs.
func (d Decision) String() string {
	if d.Allowed {
		return fmt.Sprintf("allow %s (%d/%d left)", d.Key, d.Remaining, d.Limit)
	}
	return fmt.Sprintf("deny %s (retry after %s)", d.Key, d.RetryAfter.Round(time.Millisecond))
}
