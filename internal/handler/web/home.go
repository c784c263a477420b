package web

import (
	"net/http"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// homeArticleCount is how many articles the front page shows: one lead
// plus three rows of cards.
const homeArticleCount = 13

type homeData struct {
	Chrome
	Lead     *entity.Article
	Articles []*entity.Article
}

// HomeHandler renders the front page: the freshest published article as
// the lead, the next dozen as cards.
type HomeHandler struct {
	Site *Site
}

func (h HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := h.Site.Settings.Current(ctx)
	chrome := chromeFor(r, settings, h.Site.Categories, h.Site.SEO.ForHome(settings))

	page, err := h.Site.Articles.Page(ctx,
		repository.ArticleFilters{PublishedOnly: true},
		pagination.Params{Page: 1, Limit: homeArticleCount},
	)
	if err != nil {
		renderError(w, r, h.Site.Render, h.Site.Logger, chrome, err)
		return
	}

	data := homeData{Chrome: chrome}
	if len(page.Articles) > 0 {
		data.Lead = page.Articles[0]
		data.Articles = page.Articles[1:]
	}

	h.Site.Render.Render(w, http.StatusOK, "home", data)
}
