// Package feeds builds the public RSS 2.0 document from recent published
// articles. The feed is rendered whole and cached; the handler only writes
// bytes.
package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"mime"
	"net/url"
	"path"
	"time"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/observability/metrics"
	"fresh-motors-web/internal/repository"
)

// itemLimit caps the feed length. Readers poll often; old entries live in
// the sitemap, not the feed.
const itemLimit = 30

const atomNamespace = "http://www.w3.org/2005/Atom"

type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	AtomNS  string   `xml:"xmlns:atom,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string   `xml:"title"`
	Link          string   `xml:"link"`
	Description   string   `xml:"description"`
	Language      string   `xml:"language,omitempty"`
	LastBuildDate string   `xml:"lastBuildDate,omitempty"`
	AtomLink      atomLink `xml:"atom:link"`
	Items         []item   `xml:"item"`
}

// atomLink is the rel=self element feed validators expect.
type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type item struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        guid       `xml:"guid"`
	PubDate     string     `xml:"pubDate,omitempty"`
	Description string     `xml:"description,omitempty"`
	Category    string     `xml:"category,omitempty"`
	Enclosure   *enclosure `xml:"enclosure,omitempty"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type enclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

// SettingsFunc supplies current site settings, normally backed by the
// settings cache entry.
type SettingsFunc func(ctx context.Context) (*entity.SiteSettings, error)

// Service renders the feed. It is wired as a cache entry loader, so Build
// runs at boot and on the refresh schedule, not per request.
type Service struct {
	site     *config.SiteConfig
	articles repository.ArticleRepository
	settings SettingsFunc
	logger   *slog.Logger
}

// NewService creates a feed service.
func NewService(site *config.SiteConfig, articles repository.ArticleRepository, settings SettingsFunc, logger *slog.Logger) *Service {
	return &Service{
		site:     site,
		articles: articles,
		settings: settings,
		logger:   logger,
	}
}

// Build fetches the most recent published articles and renders the RSS
// document, XML header included. A settings failure falls back to defaults;
// an article fetch failure fails the build so the cache keeps serving the
// previous document.
func (s *Service) Build(ctx context.Context) ([]byte, error) {
	settings, err := s.settings(ctx)
	if err != nil {
		s.logger.Warn("feed build: settings unavailable, using defaults",
			slog.Any("error", err))
		settings = entity.DefaultSettings()
	}

	listing, err := s.articles.List(ctx, repository.ArticleFilters{PublishedOnly: true}, 0, itemLimit)
	if err != nil {
		metrics.RecordFeedBuild(false)
		return nil, fmt.Errorf("feed build: list articles: %w", err)
	}

	doc := rssDoc{
		Version: "2.0",
		AtomNS:  atomNamespace,
		Channel: channel{
			Title:         settings.SiteName,
			Link:          s.site.BaseURL,
			Description:   channelDescription(settings),
			Language:      "ru",
			LastBuildDate: time.Now().UTC().Format(time.RFC1123Z),
			AtomLink: atomLink{
				Href: s.site.AbsoluteURL("/feed.xml"),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: s.buildItems(listing.Articles),
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		metrics.RecordFeedBuild(false)
		return nil, fmt.Errorf("feed build: marshal: %w", err)
	}

	metrics.RecordFeedBuild(true)
	return append([]byte(xml.Header), body...), nil
}

func (s *Service) buildItems(articles []*entity.Article) []item {
	items := make([]item, 0, len(articles))
	for _, a := range articles {
		if a.PublishedAt == nil {
			continue
		}
		link := s.site.AbsoluteURL("/news/" + a.Slug)
		it := item{
			Title:       a.Title,
			Link:        link,
			GUID:        guid{IsPermaLink: true, Value: link},
			PubDate:     a.PublishedAt.UTC().Format(time.RFC1123Z),
			Description: a.Excerpt,
		}
		if a.Category != nil {
			it.Category = a.Category.Name
		}
		if a.CoverURL != "" {
			it.Enclosure = &enclosure{
				URL:  a.CoverURL,
				Type: coverMIMEType(a.CoverURL),
			}
		}
		items = append(items, it)
	}
	return items
}

// coverMIMEType guesses the enclosure type from the URL extension.
// 拡張子が不明な場合はjpegとして扱う。
func coverMIMEType(coverURL string) string {
	u, err := url.Parse(coverURL)
	if err != nil {
		return "image/jpeg"
	}
	if t := mime.TypeByExtension(path.Ext(u.Path)); t != "" {
		return t
	}
	return "image/jpeg"
}

func channelDescription(settings *entity.SiteSettings) string {
	if settings.Description != "" {
		return settings.Description
	}
	return settings.Tagline
}
