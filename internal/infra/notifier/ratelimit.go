package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces webhook requests with a token bucket so a burst of
// editorial activity stays under the chat service limits.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter returns a limiter refilling at requestsPerSecond with
// the given burst capacity.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Allow blocks until a token is available or the context is canceled.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
