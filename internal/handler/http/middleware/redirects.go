package middleware

import (
	"net/http"
	"strings"

	"fresh-motors-web/internal/config"
)

// Redirects serves the legacy URL table before routing. Old platform
// paths answer 301 (or 302 for entries not marked permanent) so links
// from search results and social posts survive the migration.
func Redirects(cfg *config.RedirectsConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg == nil || cfg.Len() == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			redirect, ok := cfg.Lookup(r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			status := http.StatusFound
			if redirect.Permanent {
				status = http.StatusMovedPermanently
			}

			target := redirect.To
			if r.URL.RawQuery != "" {
				// クエリは引き継ぐ。UTM付きの旧リンクが多い。
				sep := "?"
				if strings.Contains(target, "?") {
					sep = "&"
				}
				target += sep + r.URL.RawQuery
			}
			http.Redirect(w, r, target, status)
		})
	}
}
