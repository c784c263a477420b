// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep page
// serving degradable when the content backend or external sites misbehave.
//
// The package supports:
//   - Circuit breakers for backend API calls, source previews and oEmbed lookups
//   - Retry logic with exponential backoff and jitter for background jobs
//
// Usage Example:
//
//	hcb := circuitbreaker.NewHTTPCircuitBreaker(httpClient)
//	resp, err := hcb.Do(req)
//
//	err := retry.WithBackoff(ctx, retry.CacheWarmConfig(), func() error {
//	    return refreshEntry()
//	})
package resilience
