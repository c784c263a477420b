package web

import (
	"context"
	"net/http"

	"fresh-motors-web/internal/domain/entity"
)

type articleData struct {
	Chrome
	Article  *entity.Article
	Comments []*entity.Comment
	Related  []*entity.Article
	Spec     *entity.VehicleSpec
}

// ArticleHandler renders the article detail page: body, vehicle spec
// sheet, approved comments and related articles. Side sections fail soft
// inside the usecase; only a missing article yields the 404 page.
type ArticleHandler struct {
	Site *Site
}

func (h ArticleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings := h.Site.Settings.Current(ctx)
	slug := r.PathValue("slug")

	detail, err := h.Site.Articles.Detail(ctx, slug)
	if err != nil {
		chrome := chromeFor(r, settings, h.Site.Categories, h.Site.SEO.ForPage("", "", r.URL.Path, settings))
		renderError(w, r, h.Site.Render, h.Site.Logger, chrome, err)
		return
	}

	// 閲覧カウントは応答をブロックしない。リクエスト終了後も生きるctxで送る。
	go h.Site.Articles.RecordView(context.WithoutCancel(ctx), detail.Article.ID)

	meta := h.Site.SEO.ForArticle(detail.Article, settings)
	h.Site.Render.Render(w, http.StatusOK, "article", articleData{
		Chrome:   chromeFor(r, settings, h.Site.Categories, meta),
		Article:  detail.Article,
		Comments: detail.Comments,
		Related:  detail.Related,
		Spec:     detail.Spec,
	})
}
