// Package observability wires the monitoring surface of the frontend:
// structured logs, Prometheus metrics, OpenTelemetry traces and the SLO
// tracker. The site renders from one fallible upstream, the backend API,
// so most signals here answer two questions: is the backend healthy, and
// are pages still rendering from cache when it is not.
//
// Subpackages:
//   - logging: slog construction plus request/trace ID enrichment
//   - metrics: central Prometheus registry and Record* helpers
//   - tracing: tracer setup and HTTP middleware with W3C propagation
//   - slo: availability/latency targets and the rolling-window tracker
//
// Example usage:
//
//	import (
//	    "fresh-motors-web/internal/observability/logging"
//	    "fresh-motors-web/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordPageRender("article", "ok", 0.12)
//	}
package observability
