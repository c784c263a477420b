package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"fresh-motors-web/internal/handler/http/respond"
)

// seoCacheControl keeps crawler traffic off this service between cron
// refreshes of the underlying documents.
const seoCacheControl = "public, max-age=3600"

// RobotsHandler serves robots.txt. The body depends only on the
// deployment environment, so it renders per request without caching.
type RobotsHandler struct {
	Site *Site
}

func (h RobotsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := h.Site.SEO.RobotsTxt()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write([]byte(body))
}

// SitemapHandler serves the cached sitemap.xml. The cache entry is
// cron-refreshed; a cold cache with a dead backend answers 503 so
// crawlers retry later instead of indexing an empty document.
type SitemapHandler struct {
	Site *Site
}

func (h SitemapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Site.serveCachedXML(w, r, h.Site.Sitemap.Get, "application/xml; charset=utf-8")
}

// FeedHandler serves the cached RSS 2.0 feed.
type FeedHandler struct {
	Site *Site
}

func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Site.serveCachedXML(w, r, h.Site.Feed.Get, "application/rss+xml; charset=utf-8")
}

func (s *Site) serveCachedXML(w http.ResponseWriter, r *http.Request, load func(context.Context) ([]byte, error), contentType string) {
	body, err := load(r.Context())
	if err != nil {
		s.Logger.Warn("seo document unavailable",
			slog.String("path", r.URL.Path),
			slog.String("error", respond.SanitizeError(err)),
		)
		w.Header().Set("Retry-After", "60")
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", seoCacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}
