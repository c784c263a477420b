package session

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/infra/apiclient"
)

type ctxKey string

const ctxSession ctxKey = "session"

// loginPath is where browsers without a valid session are sent.
const loginPath = "/admin/login"

// FromContext returns the verified session of the request, or nil on
// routes outside the middleware.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxSession).(*Session); ok {
		return s
	}
	return nil
}

// CanManage reports whether the session role may enter the admin area.
func (s *Session) CanManage() bool {
	return s.Role == entity.RoleAdmin || s.Role == entity.RoleEditor
}

// IsAdmin reports whether the session holds the admin role. Subscriber
// deletion and site settings require it; editors get the rest.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == entity.RoleAdmin
}

// Middleware gates admin routes behind a verified session. Paths listed
// as public in the security policy pass through. Browser requests
// without a session are redirected to the login page with the original
// path preserved; API-style requests get a JSON 401 instead. On success
// the session lands in the context and the backend token is attached for
// outgoing API calls.
func (m *Manager) Middleware(public []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range public {
				if r.URL.Path == p {
					next.ServeHTTP(w, r)
					return
				}
			}

			sess, err := m.Verify(r)
			if err != nil {
				// 壊れたクッキーは消してからログインへ
				if err == ErrInvalidSession {
					m.Clear(w)
				}
				if wantsHTML(r) {
					redirectToLogin(w, r)
					return
				}
				respond.DomainError(w, entity.ErrUnauthorized)
				return
			}

			if !sess.CanManage() {
				// Role revoked after the cookie was issued.
				m.Clear(w)
				if wantsHTML(r) {
					redirectToLogin(w, r)
					return
				}
				respond.DomainError(w, entity.ErrForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ctxSession, sess)
			ctx = apiclient.WithToken(ctx, sess.BackendToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// wantsHTML distinguishes page navigations from fetch() calls and the
// WebSocket proxy dial.
func wantsHTML(r *http.Request) bool {
	if r.Header.Get("Upgrade") != "" {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := loginPath
	// ログイン後に元のページへ戻すためのnextパラメータ
	if r.Method == http.MethodGet && r.URL.Path != loginPath {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
