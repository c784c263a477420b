package metrics

import (
	"strconv"
	"time"
)

// RecordHTTPRequest records one served request. The path is the route
// pattern, not the raw URL, to keep label cardinality bounded.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordBackendRequest records one backend API round trip. The resource is
// the first REST path segment (articles, tags, settings, ...); status 0
// means the request never produced a response (transport error, open
// breaker).
func RecordBackendRequest(resource, method string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	BackendRequestsTotal.WithLabelValues(resource, method, label).Inc()
	BackendRequestDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// RecordBreakerTransition records a state change of the named circuit.
func RecordBreakerTransition(circuit, from, to string) {
	BreakerTransitions.WithLabelValues(circuit, from, to).Inc()
}

// RecordPageRender records a rendered page.
// Page names the template (home, article, tag, admin_articles, ...).
func RecordPageRender(page string, status int, duration time.Duration) {
	PageRendersTotal.WithLabelValues(page, strconv.Itoa(status)).Inc()
	PageRenderDuration.WithLabelValues(page).Observe(duration.Seconds())
}

// RecordCacheHit records a cache lookup served from memory.
func RecordCacheHit(entry string) {
	CacheRequestsTotal.WithLabelValues(entry, "hit").Inc()
}

// RecordCacheMiss records a cache lookup that had to load from the backend.
func RecordCacheMiss(entry string) {
	CacheRequestsTotal.WithLabelValues(entry, "miss").Inc()
}

// RecordCacheStale records a lookup that served expired data because the
// backend refresh failed.
func RecordCacheStale(entry string) {
	CacheRequestsTotal.WithLabelValues(entry, "stale").Inc()
}

// RecordCacheRefresh records one background refresh run.
func RecordCacheRefresh(entry string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	CacheRefreshTotal.WithLabelValues(entry, status).Inc()
	CacheRefreshDuration.WithLabelValues(entry).Observe(duration.Seconds())
}

// Progress watch outcomes.
const (
	WatchCompleted = "completed"
	WatchFailed    = "failed"
	WatchCancelled = "cancelled"
)

// RecordGenerationWatch records a finished progress watch.
func RecordGenerationWatch(outcome string, duration time.Duration) {
	GenerationWatchesTotal.WithLabelValues(outcome).Inc()
	GenerationWatchDuration.Observe(duration.Seconds())
}

// ProxySessionOpened bumps the open proxy session gauge.
func ProxySessionOpened() {
	GenerationProxySessions.Inc()
}

// ProxySessionClosed decrements the open proxy session gauge.
func ProxySessionClosed() {
	GenerationProxySessions.Dec()
}

// RecordEngagementAction records a reader action submitted via /api/ui.
// Status should be "accepted", "rejected" (validation) or "error".
func RecordEngagementAction(action, status string) {
	EngagementActionsTotal.WithLabelValues(action, status).Inc()
}

// RecordAdminLogin records an admin login attempt.
func RecordAdminLogin(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	AdminLoginsTotal.WithLabelValues(status).Inc()
}

// RecordNotification records one webhook delivery attempt outcome.
func RecordNotification(channel string, success bool) {
	status := "sent"
	if !success {
		status = "failed"
	}
	NotificationsTotal.WithLabelValues(channel, status).Inc()
}

// UpdateSitemapEntries updates the sitemap size gauge after a rebuild.
func UpdateSitemapEntries(count int) {
	SitemapEntries.Set(float64(count))
}

// RecordFeedBuild records an RSS feed build.
func RecordFeedBuild(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	FeedBuildsTotal.WithLabelValues(status).Inc()
}
