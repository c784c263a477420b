// Package visitor assigns each browser a stable anonymous ID. Ratings
// and favorites key on it, so the same visitor cannot rate an article
// twice and sees their favorites across visits without an account.
package visitor

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the visitor ID cookie.
const CookieName = "fm_visitor"

// cookieTTL keeps favorites alive across visits. Refreshed on every
// request, so only a year of absence loses them.
const cookieTTL = 365 * 24 * time.Hour

type ctxKey string

const ctxVisitor ctxKey = "visitor_id"

// FromContext returns the visitor ID of the request. Empty only on
// routes outside the middleware.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxVisitor).(string); ok {
		return id
	}
	return ""
}

// Middleware reads or mints the visitor ID cookie and puts the ID into
// the request context. Malformed cookie values are replaced, never
// trusted, since they end up as backend identifiers.
func Middleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(CookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.New().String()
			}

			// 期限を毎回延長する
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				Expires:  time.Now().Add(cookieTTL),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), ctxVisitor, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
