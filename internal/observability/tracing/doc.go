// Package tracing provides OpenTelemetry tracing integration for HTTP handlers.
//
// The middleware extracts W3C Trace Context from incoming requests, opens a
// server span per request, and echoes the trace ID back in the X-Trace-Id
// response header so frontend errors can be correlated with server logs.
//
// Example usage:
//
//	shutdown := tracing.Init("fresh-motors-web")
//	defer shutdown(context.Background())
//
//	handler := tracing.Middleware(mux)
package tracing
