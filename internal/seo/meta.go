package seo

import (
	"encoding/json"
	"html/template"

	"fresh-motors-web/internal/domain/entity"
)

// OpenGraph object types.
const (
	OGTypeWebsite = "website"
	OGTypeArticle = "article"
)

// PageMeta carries everything the layout template renders into <head>:
// title, description, canonical URL, OpenGraph/Twitter card fields and
// serialized JSON-LD blocks.
type PageMeta struct {
	Title       string
	Description string
	Canonical   string
	Image       string
	OGType      string
	SiteName    string
	Robots      string
	JSONLD      []template.JS
}

// TwitterCard picks the card type from the available media. Value
// receiver: templates call this on the embedded meta field.
func (m PageMeta) TwitterCard() string {
	if m.Image != "" {
		return "summary_large_image"
	}
	return "summary"
}

// ForArticle assembles metadata for an article detail page, including its
// NewsArticle and BreadcrumbList documents.
func (b *Builder) ForArticle(a *entity.Article, settings *entity.SiteSettings) PageMeta {
	crumbs := []Crumb{{Name: settings.SiteName, Path: "/"}}
	if a.Category != nil {
		crumbs = append(crumbs, Crumb{Name: a.Category.Name, Path: "/category/" + a.Category.Slug})
	}
	crumbs = append(crumbs, Crumb{Name: a.Title, Path: "/news/" + a.Slug})

	meta := PageMeta{
		Title:       composeTitle(a.Title, settings.SiteName),
		Description: a.Excerpt,
		Canonical:   b.site.AbsoluteURL("/news/" + a.Slug),
		Image:       a.CoverURL,
		OGType:      OGTypeArticle,
		SiteName:    settings.SiteName,
	}
	if !a.IsPublished {
		// 下書きプレビューはインデックスさせない。
		meta.Robots = "noindex, nofollow"
	}
	meta.appendJSONLD(b.NewsArticle(a, settings))
	meta.appendJSONLD(b.Breadcrumbs(crumbs...))
	return meta
}

// ForPage assembles metadata for a non-article page. path is site-relative
// and becomes the canonical URL.
func (b *Builder) ForPage(title, description, path string, settings *entity.SiteSettings) PageMeta {
	if description == "" {
		description = settings.Description
	}
	return PageMeta{
		Title:       composeTitle(title, settings.SiteName),
		Description: description,
		Canonical:   b.site.AbsoluteURL(path),
		Image:       settings.LogoURL,
		OGType:      OGTypeWebsite,
		SiteName:    settings.SiteName,
	}
}

// ForHome is ForPage plus the site-level WebSite and Organization documents.
func (b *Builder) ForHome(settings *entity.SiteSettings) PageMeta {
	meta := PageMeta{
		Title:       composeTitle(settings.Tagline, settings.SiteName),
		Description: settings.Description,
		Canonical:   b.site.BaseURL + "/",
		Image:       settings.LogoURL,
		OGType:      OGTypeWebsite,
		SiteName:    settings.SiteName,
	}
	meta.appendJSONLD(b.WebSite(settings))
	meta.appendJSONLD(b.Organization(settings))
	return meta
}

// appendJSONLD serializes doc for a <script type="application/ld+json">
// block. json.Marshal escapes < and >, so the output cannot break out of
// the script element; template.JS keeps the autoescaper from re-quoting
// it inside the script context.
func (m *PageMeta) appendJSONLD(doc any) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	m.JSONLD = append(m.JSONLD, template.JS(raw))
}

// composeTitle joins the page title with the site name. The home page uses
// the tagline, which may be empty on a fresh install.
func composeTitle(title, siteName string) string {
	if title == "" {
		return siteName
	}
	return title + " — " + siteName
}
