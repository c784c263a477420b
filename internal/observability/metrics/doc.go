// Package metrics defines the Prometheus instruments for the site and
// small recording helpers around them.
//
// Instruments fall into four groups: HTTP server traffic, backend API
// round trips (per resource, with circuit breaker transitions), page
// renders with their cache hit/miss/stale outcomes, and editorial
// activity (logins, generation watches, engagement actions, webhook
// deliveries). Everything registers with the Prometheus default
// registry through promauto and is scraped from /metrics.
//
// Recording goes through the helpers in business.go rather than the
// raw vectors, so label sets stay consistent:
//
//	import "fresh-motors-web/internal/observability/metrics"
//
//	func fetchArticle(ctx context.Context, slug string) {
//	    start := time.Now()
//	    // ... call the backend ...
//
//	    metrics.RecordBackendRequest("articles", "GET", 200, time.Since(start))
//	}
package metrics
