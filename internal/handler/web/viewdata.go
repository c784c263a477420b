package web

import (
	"net/http"
	"time"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/session"
	"fresh-motors-web/internal/seo"
)

// Chrome is what every layout render needs around the page content:
// head metadata, site settings, the category navigation and, in the
// admin area, the active session.
type Chrome struct {
	Meta       seo.PageMeta
	Settings   *entity.SiteSettings
	Categories []*entity.Category
	Session    *session.Session
	Path       string
	Year       int
}

// chromeFor assembles the layout data for one request. The category nav
// fails soft to empty: a page without the nav strip beats an error page.
func chromeFor(r *http.Request, settings *entity.SiteSettings, categories *cache.Entry[[]*entity.Category], meta seo.PageMeta) Chrome {
	var cats []*entity.Category
	if categories != nil {
		if loaded, err := categories.Get(r.Context()); err == nil {
			cats = loaded
		}
	}
	return Chrome{
		Meta:       meta,
		Settings:   settings,
		Categories: cats,
		Session:    session.FromContext(r.Context()),
		Path:       r.URL.Path,
		Year:       time.Now().Year(),
	}
}

// chrome builds admin page chrome: session user in the header, no public
// nav, and a hard noindex whatever robots.txt says.
func (a *Admin) chrome(r *http.Request, title string) Chrome {
	settings := a.Settings.Current(r.Context())
	return Chrome{
		Meta: seo.PageMeta{
			Title:    title + " — " + settings.SiteName,
			SiteName: settings.SiteName,
			Robots:   "noindex, nofollow",
		},
		Settings: settings,
		Session:  session.FromContext(r.Context()),
		Path:     r.URL.Path,
		Year:     time.Now().Year(),
	}
}
