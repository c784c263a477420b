package http

import (
	"net/http"

	"fresh-motors-web/internal/handler/http/respond"
)

// InputValidation returns middleware that validates and limits request inputs.
// It enforces limits on:
// - Cookie header size (8KB)
// - URI path length (2KB)
// - Request body size (10MB)
//
// This prevents DoS attacks and ensures reasonable request sizes.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Cookie header length limit (8KB)
			// セッションと訪問者IDを合わせても1KBに届かない
			if len(r.Header.Get("Cookie")) > 8192 {
				respond.Error(w, http.StatusBadRequest, "cookie header too large")
				return
			}

			// Path length limit (2KB)
			if len(r.URL.Path) > 2048 {
				respond.Error(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			// Request body size limit (10MB)
			// JSON APIはルート側でさらに狭い上限を掛ける
			r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

			next.ServeHTTP(w, r)
		})
	}
}
