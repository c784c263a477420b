package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/pkg/ratelimit"
)

// RateLimit throttles the anonymous engagement endpoints per client IP.
// The sliding window itself lives in pkg/ratelimit; this middleware
// resolves the client key, sets the X-RateLimit-* headers and answers
// 429s in the UI API's JSON envelope.
type RateLimit struct {
	limiter   *ratelimit.Limiter
	extractor IPExtractor
}

// NewRateLimit wires a limiter to an IP extraction strategy.
func NewRateLimit(limiter *ratelimit.Limiter, extractor IPExtractor) *RateLimit {
	return &RateLimit{limiter: limiter, extractor: extractor}
}

// Middleware enforces the limit on every request passing through.
func (rl *RateLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.extractor.ExtractIP(r)
		if err != nil {
			// 抽出に失敗してもRemoteAddrで続行する
			slog.Warn("rate limit: IP extraction failed, falling back to RemoteAddr",
				slog.String("error", err.Error()),
				slog.String("remote_addr", r.RemoteAddr),
			)
			ip, err = extractIPFromAddr(r.RemoteAddr)
			if err != nil {
				slog.Error("rate limit: unparsable RemoteAddr",
					slog.String("remote_addr", r.RemoteAddr),
				)
				respond.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}
		}

		decision := rl.limiter.Allow(ip)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			slog.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
			)
			respond.DomainError(w, entity.ErrRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}
