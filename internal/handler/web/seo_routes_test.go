package web_test

import (
	"net/http"
	"strings"
	"testing"

	"fresh-motors-web/internal/domain/entity"
)

func TestRobotsTxt_Production(t *testing.T) {
	f := newSiteFixture(t)

	rec := f.get("/robots.txt")

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Disallow: /admin/") {
		t.Error("admin area must be closed to crawlers")
	}
	if !strings.Contains(body, "Sitemap: https://freshmotors.ru/sitemap.xml") {
		t.Error("sitemap reference missing")
	}
}

func TestSitemap_ServesCachedDocument(t *testing.T) {
	f := newSiteFixture(t)
	f.sitemapXML = []byte(`<?xml version="1.0"?><urlset></urlset>`)

	rec := f.get("/sitemap.xml")

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("content type = %q, want application/xml", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age") {
		t.Errorf("cache control = %q, want a max-age directive", cc)
	}
	if rec.Body.String() != string(f.sitemapXML) {
		t.Error("sitemap body does not match the cached document")
	}
}

func TestSitemap_ColdCacheWithDeadBackend(t *testing.T) {
	f := newSiteFixture(t)
	f.sitemapErr = entity.ErrBackendUnavailable

	rec := f.get("/sitemap.xml")

	// 空のsitemapを渡すくらいなら503でリトライさせる
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestFeed_ServesRSS(t *testing.T) {
	f := newSiteFixture(t)
	f.feedXML = []byte(`<?xml version="1.0"?><rss version="2.0"></rss>`)

	rec := f.get("/feed.xml")

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("content type = %q, want application/rss+xml", ct)
	}
	if !strings.Contains(rec.Body.String(), `<rss version="2.0">`) {
		t.Error("feed body missing")
	}
}
