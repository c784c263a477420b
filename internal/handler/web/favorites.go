package web

import (
	"net/http"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/visitor"
)

type favoritesData struct {
	Chrome
	Articles []*entity.Article
}

// FavoritesHandler renders the visitor's saved articles. Favorites hang
// off the anonymous visitor cookie, so the page is personal without an
// account and stays out of search indexes.
type FavoritesHandler struct {
	Site *Site
}

func (h FavoritesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := h.Site.Settings.Current(ctx)

	meta := h.Site.SEO.ForPage("Избранное", "", "/favorites", settings)
	meta.Robots = "noindex, nofollow"
	chrome := chromeFor(r, settings, h.Site.Categories, meta)

	data := favoritesData{Chrome: chrome}

	// 初訪問（クッキー未設定）は空の一覧を出すだけ
	if visitorID := visitor.FromContext(ctx); visitorID != "" {
		articles, err := h.Site.Engagement.FavoritesOf(ctx, visitorID)
		if err != nil {
			renderError(w, r, h.Site.Render, h.Site.Logger, chrome, err)
			return
		}
		data.Articles = articles
	}

	h.Site.Render.Render(w, http.StatusOK, "favorites", data)
}
