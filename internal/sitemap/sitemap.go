// Package sitemap renders sitemap.xml from the backend's slug list plus the
// static public routes. Like the feed, the document is built whole, cached
// and refreshed on the cron schedule.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"time"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/observability/metrics"
	"fresh-motors-web/internal/repository"
)

// maxEntries is the sitemaps.org limit for a single file.
const maxEntries = 50000

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Service builds the sitemap document.
type Service struct {
	site       *config.SiteConfig
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// NewService creates a sitemap service.
func NewService(site *config.SiteConfig, articles repository.ArticleRepository, categories repository.CategoryRepository, logger *slog.Logger) *Service {
	return &Service{
		site:       site,
		articles:   articles,
		categories: categories,
		logger:     logger,
	}
}

// Build fetches slugs and categories and renders the document, XML header
// included. A category fetch failure drops the category URLs and keeps
// going; a slug fetch failure fails the build so the cached document stays.
func (s *Service) Build(ctx context.Context) ([]byte, error) {
	refs, err := s.articles.Slugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap build: list slugs: %w", err)
	}

	urls := make([]urlEntry, 0, len(refs)+8)
	urls = append(urls,
		urlEntry{Loc: s.site.BaseURL + "/", ChangeFreq: "daily", Priority: "1.0"},
		urlEntry{Loc: s.site.AbsoluteURL("/news"), ChangeFreq: "daily", Priority: "0.9"},
	)

	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Warn("sitemap build: categories unavailable, omitting",
			slog.Any("error", err))
	}
	for _, c := range categories {
		urls = append(urls, urlEntry{
			Loc:        s.site.AbsoluteURL("/category/" + c.Slug),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	for _, ref := range refs {
		if len(urls) >= maxEntries {
			s.logger.Warn("sitemap build: entry limit reached, truncating",
				slog.Int("limit", maxEntries))
			break
		}
		urls = append(urls, urlEntry{
			Loc:        s.site.AbsoluteURL("/news/" + ref.Slug),
			LastMod:    lastModDate(ref.UpdatedAt),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	body, err := xml.MarshalIndent(urlSet{XMLNS: sitemapNamespace, URLs: urls}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap build: marshal: %w", err)
	}

	metrics.UpdateSitemapEntries(len(urls))
	return append([]byte(xml.Header), body...), nil
}

// lastModDate normalizes the backend timestamp to the W3C date form.
// パースできない値はlastmodごと省略する。
func lastModDate(updatedAt string) string {
	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
