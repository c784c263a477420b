// Package requestid tags every request with an ID that survives from
// the access log to the backend client log, so one slow page can be
// traced through all its calls.
package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// contextKey keeps the ID under a package-private key type.
type contextKey string

const (
	// RequestIDKey is the context key for storing request IDs.
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader is the HTTP header name for request IDs.
	RequestIDHeader = "X-Request-ID"

	// maxInboundLength caps reused inbound IDs. Anything longer is
	// replaced rather than echoed into logs and the response.
	maxInboundLength = 64
)

// 外部から来たIDはUUIDに似た安全な文字だけ通す
var validInboundID = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// FromContext returns the request ID stored in ctx, or "" when the
// request never went through Middleware.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID stores a request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Middleware generates or propagates request IDs for HTTP requests.
// A well-formed X-Request-ID header is reused so traces continue across
// the CDN; anything absent, oversized or odd-looking is replaced with a
// fresh UUID v4. The ID lands in the response header and the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !reusable(requestID) {
			requestID = uuid.New().String()
		}

		// レスポンスヘッダーにも追加（クライアントが追跡可能に）
		w.Header().Set(RequestIDHeader, requestID)

		// コンテキストに追加
		ctx := WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// reusable reports whether an inbound ID is safe to adopt. The site is
// public, so header values are attacker-controlled.
func reusable(id string) bool {
	return id != "" && len(id) <= maxInboundLength && validInboundID.MatchString(id)
}
