// Package seo assembles the machine-readable metadata served with public
// pages: schema.org JSON-LD documents, OpenGraph/Twitter tags and canonical
// URLs. Every URL emitted here is absolute, rooted at the canonical site
// origin, so crawlers never see internal hostnames.
package seo

import (
	"strings"
	"time"

	"fresh-motors-web/internal/config"
	"fresh-motors-web/internal/domain/entity"
)

// schema.org document types and context.
const (
	schemaContext = "https://schema.org"

	typeNewsArticle    = "NewsArticle"
	typeBreadcrumbList = "BreadcrumbList"
	typeListItem       = "ListItem"
	typeOrganization   = "Organization"
	typeWebSite        = "WebSite"
	typeWebPage        = "WebPage"
	typeImageObject    = "ImageObject"
	typeSearchAction   = "SearchAction"
)

// NewsArticle is the JSON-LD document embedded on article detail pages.
type NewsArticle struct {
	Context        string        `json:"@context"`
	Type           string        `json:"@type"`
	Headline       string        `json:"headline"`
	Description    string        `json:"description,omitempty"`
	Image          []string      `json:"image,omitempty"`
	DatePublished  string        `json:"datePublished,omitempty"`
	DateModified   string        `json:"dateModified,omitempty"`
	Author         *Organization `json:"author,omitempty"`
	Publisher      *Organization `json:"publisher,omitempty"`
	MainEntity     *WebPageRef   `json:"mainEntityOfPage,omitempty"`
	ArticleSection string        `json:"articleSection,omitempty"`
	Keywords       string        `json:"keywords,omitempty"`
}

// WebPageRef points a document at its canonical page.
type WebPageRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// ImageObject wraps an image URL the way schema.org expects for logos.
type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// Organization describes the publisher. Embedded inside NewsArticle the
// context is omitted; as a standalone document it is set.
type Organization struct {
	Context string       `json:"@context,omitempty"`
	Type    string       `json:"@type"`
	Name    string       `json:"name"`
	URL     string       `json:"url,omitempty"`
	Logo    *ImageObject `json:"logo,omitempty"`
	Email   string       `json:"email,omitempty"`
	SameAs  []string     `json:"sameAs,omitempty"`
}

// WebSite is the site-level document served on the home page. The
// SearchAction teaches crawlers the site search URL template.
type WebSite struct {
	Context         string        `json:"@context"`
	Type            string        `json:"@type"`
	Name            string        `json:"name"`
	URL             string        `json:"url"`
	Description     string        `json:"description,omitempty"`
	PotentialAction *SearchAction `json:"potentialAction,omitempty"`
}

// SearchAction is the sitelinks-searchbox hint inside WebSite.
type SearchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

// BreadcrumbList names the page's position in the site hierarchy.
type BreadcrumbList struct {
	Context string     `json:"@context"`
	Type    string     `json:"@type"`
	Items   []ListItem `json:"itemListElement"`
}

// ListItem is one breadcrumb. The last crumb carries no item URL per the
// Google structured-data guidelines.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Crumb is a builder input: a display name plus a site-relative path.
type Crumb struct {
	Name string
	Path string
}

// Builder produces JSON-LD documents and page metadata for one deployment.
// Site settings are passed per call because they are cached and may change
// between requests.
type Builder struct {
	site *config.SiteConfig
}

// NewBuilder creates a Builder bound to the canonical site origin.
func NewBuilder(site *config.SiteConfig) *Builder {
	return &Builder{site: site}
}

// NewsArticle builds the article document. Unpublished drafts previewed by
// editors get no dates so they never look live to a crawler.
func (b *Builder) NewsArticle(a *entity.Article, settings *entity.SiteSettings) NewsArticle {
	doc := NewsArticle{
		Context:     schemaContext,
		Type:        typeNewsArticle,
		Headline:    a.Title,
		Description: a.Excerpt,
		Author:      b.orgRef(settings),
		Publisher:   b.orgRef(settings),
		MainEntity: &WebPageRef{
			Type: typeWebPage,
			ID:   b.site.AbsoluteURL("/news/" + a.Slug),
		},
	}
	if a.CoverURL != "" {
		doc.Image = []string{a.CoverURL}
	}
	if a.IsPublished && a.PublishedAt != nil {
		doc.DatePublished = a.PublishedAt.UTC().Format(time.RFC3339)
		doc.DateModified = a.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if a.Category != nil {
		doc.ArticleSection = a.Category.Name
	}
	if len(a.Tags) > 0 {
		names := make([]string, 0, len(a.Tags))
		for _, t := range a.Tags {
			names = append(names, t.Name)
		}
		doc.Keywords = strings.Join(names, ", ")
	}
	return doc
}

// Breadcrumbs builds a BreadcrumbList from ordered crumbs. The final crumb
// is the current page and gets no URL.
func (b *Builder) Breadcrumbs(crumbs ...Crumb) BreadcrumbList {
	items := make([]ListItem, 0, len(crumbs))
	for i, c := range crumbs {
		item := ListItem{
			Type:     typeListItem,
			Position: i + 1,
			Name:     c.Name,
		}
		if i < len(crumbs)-1 {
			item.Item = b.site.AbsoluteURL(c.Path)
		}
		items = append(items, item)
	}
	return BreadcrumbList{
		Context: schemaContext,
		Type:    typeBreadcrumbList,
		Items:   items,
	}
}

// Organization builds the standalone publisher document.
func (b *Builder) Organization(settings *entity.SiteSettings) Organization {
	org := b.orgRef(settings)
	org.Context = schemaContext
	org.Email = settings.ContactEmail
	org.SameAs = socialProfiles(settings)
	return *org
}

// WebSite builds the site document with the search URL template.
func (b *Builder) WebSite(settings *entity.SiteSettings) WebSite {
	return WebSite{
		Context:     schemaContext,
		Type:        typeWebSite,
		Name:        settings.SiteName,
		URL:         b.site.BaseURL,
		Description: settings.Description,
		PotentialAction: &SearchAction{
			Type:       typeSearchAction,
			Target:     b.site.AbsoluteURL("/search?q={search_term_string}"),
			QueryInput: "required name=search_term_string",
		},
	}
}

func (b *Builder) orgRef(settings *entity.SiteSettings) *Organization {
	org := &Organization{
		Type: typeOrganization,
		Name: settings.SiteName,
		URL:  b.site.BaseURL,
	}
	if settings.LogoURL != "" {
		org.Logo = &ImageObject{Type: typeImageObject, URL: settings.LogoURL}
	}
	return org
}

func socialProfiles(settings *entity.SiteSettings) []string {
	var profiles []string
	for _, u := range []string{settings.TelegramURL, settings.YouTubeURL, settings.VKURL} {
		if u != "" {
			profiles = append(profiles, u)
		}
	}
	return profiles
}
