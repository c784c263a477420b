package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Backend API metrics track calls to the Fresh Motors backend
var (
	// BackendRequestsTotal counts backend API calls by resource, method and status
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"resource", "method", "status"},
	)

	// BackendRequestDuration measures one backend round trip
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Backend API request duration in seconds",
			Buckets: []float64{0.025, 0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4},
		},
		[]string{"resource"},
	)

	// BreakerTransitions counts state changes across all circuit
	// breakers (backend-api, source-preview, youtube-oembed)
	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"circuit", "from", "to"},
	)
)

// Page metrics track server-side rendering
var (
	// PageRendersTotal counts rendered pages by template and status
	PageRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_renders_total",
			Help: "Total number of rendered pages",
		},
		[]string{"page", "status"},
	)

	// PageRenderDuration measures full page assembly including backend calls
	PageRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "page_render_duration_seconds",
			Help:    "Time taken to assemble and render a page",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2},
		},
		[]string{"page"},
	)
)

// Cache metrics track the shared TTL cache and its background refresher
var (
	// CacheRequestsTotal counts cache lookups by entry and result
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache lookups",
		},
		[]string{"entry", "result"}, // result: hit, miss, stale
	)

	// CacheRefreshTotal counts background refresh runs by entry and status
	CacheRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_refresh_total",
			Help: "Total number of cache refresh runs",
		},
		[]string{"entry", "status"},
	)

	// CacheRefreshDuration measures one refresh run
	CacheRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_refresh_duration_seconds",
			Help:    "Time taken to refresh a cache entry",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"entry"},
	)
)

// Generation metrics track progress watches and the admin WS proxy
var (
	// GenerationWatchesTotal counts finished progress watches by outcome
	GenerationWatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_watches_total",
			Help: "Total number of generation progress watches",
		},
		[]string{"outcome"}, // outcome: completed, failed, cancelled
	)

	// GenerationWatchDuration measures how long a task took start to finish
	GenerationWatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_watch_duration_seconds",
			Help:    "Duration of generation progress watches",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// GenerationProxySessions tracks open browser progress connections
	GenerationProxySessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "generation_proxy_sessions",
			Help: "Number of open generation progress proxy sessions",
		},
	)
)

// Engagement metrics track reader actions submitted through /api/ui
var (
	// EngagementActionsTotal counts engagement submissions by action and status
	EngagementActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_actions_total",
			Help: "Total number of reader engagement actions",
		},
		[]string{"action", "status"}, // action: comment, rating, favorite, subscribe
	)

	// AdminLoginsTotal counts admin login attempts by result
	AdminLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"status"},
	)
)

// Notification metrics track editorial webhook deliveries
var (
	// NotificationsTotal counts webhook deliveries by channel and status
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of editorial webhook notifications",
		},
		[]string{"channel", "status"}, // status: sent, failed
	)
)

// SEO surface metrics
var (
	// SitemapEntries tracks the number of URLs in the current sitemap
	SitemapEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sitemap_entries",
			Help: "Number of URLs in the generated sitemap",
		},
	)

	// FeedBuildsTotal counts RSS feed builds by status
	FeedBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_builds_total",
			Help: "Total number of RSS feed builds",
		},
		[]string{"status"},
	)
)
