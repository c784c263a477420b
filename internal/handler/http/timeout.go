package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fresh-motors-web/internal/handler/http/respond"
)

// Timeout returns middleware that answers 504 when a request outlives
// the given budget. The deadline rides the request context, so backend
// calls and template renders underneath abort with it.
//
// The wrapped writer does not implement http.Hijacker, so the generation
// progress WebSocket proxy must be mounted outside this middleware.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			r = r.WithContext(ctx)

			// Only one goroutine (the handler or the timeout branch)
			// may write the response.
			done := make(chan struct{})
			var mu sync.Mutex
			timedOut := false

			wrappedWriter := &timeoutResponseWriter{
				ResponseWriter: w,
				mu:             &mu,
				timedOut:       &timedOut,
			}

			go func() {
				next.ServeHTTP(wrappedWriter, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				mu.Lock()
				timedOut = true
				if !wrappedWriter.written {
					respond.Error(w, http.StatusGatewayTimeout, "request timeout")
				}
				mu.Unlock()
			}
		})
	}
}

// timeoutResponseWriter drops handler writes that arrive after the 504
// went out. The handler goroutine keeps running to completion; it just
// loses the response.
type timeoutResponseWriter struct {
	http.ResponseWriter
	mu       *sync.Mutex
	timedOut *bool
	written  bool
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !*w.timedOut && !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *timeoutResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if *w.timedOut {
		return 0, http.ErrHandlerTimeout
	}

	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(data)
}
