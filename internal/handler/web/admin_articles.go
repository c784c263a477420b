package web

import (
	"net/http"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/pathutil"
	"fresh-motors-web/internal/repository"
)

type adminArticlesData struct {
	Chrome
	Articles   []*entity.Article
	Pagination pagination.Metadata
	Query      string
	Notice     string
}

// adminArticleNotices maps redirect flags onto list banner messages.
var adminArticleNotices = map[string]string{
	"created":     "Статья создана.",
	"saved":       "Изменения сохранены.",
	"deleted":     "Статья удалена.",
	"published":   "Статья опубликована.",
	"unpublished": "Статья снята с публикации.",
}

// AdminArticlesHandler renders the article manager list: drafts and
// published pieces together, newest first, searchable.
type AdminArticlesHandler struct {
	Admin *Admin
}

func (h AdminArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chrome := h.Admin.chrome(r, "Статьи")
	query := r.URL.Query().Get("q")

	params := pagination.ParsePage(r, h.Admin.Pagination)
	page, err := h.Admin.Articles.Page(r.Context(),
		repository.ArticleFilters{Query: query}, params)
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, chrome, err)
		return
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_articles", adminArticlesData{
		Chrome:     chrome,
		Articles:   page.Articles,
		Pagination: page.Pagination,
		Query:      query,
		Notice:     noticeFromQuery(r, adminArticleNotices),
	})
}

// ArticleDeleteHandler removes an article and returns to the list.
type ArticleDeleteHandler struct {
	Admin *Admin
}

func (h ArticleDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Статьи"), entity.ErrNotFound)
		return
	}

	if err := h.Admin.Articles.Delete(r.Context(), id); err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Статьи"), err)
		return
	}

	http.Redirect(w, r, "/admin/articles?deleted=1", http.StatusSeeOther)
}

// ArticlePublishHandler flips the published flag. The form posts the
// target state so the button can both publish and unpublish.
type ArticlePublishHandler struct {
	Admin *Admin
}

func (h ArticlePublishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Статьи"), entity.ErrNotFound)
		return
	}

	publish := r.PostFormValue("published") == "1"
	if err := h.Admin.Articles.SetPublished(r.Context(), id, publish); err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Статьи"), err)
		return
	}

	flag := "published"
	if !publish {
		flag = "unpublished"
	}
	http.Redirect(w, r, "/admin/articles?"+flag+"=1", http.StatusSeeOther)
}

// noticeFromQuery turns a redirect flag into a banner message. Redirects
// set at most one flag.
func noticeFromQuery(r *http.Request, texts map[string]string) string {
	for key, text := range texts {
		if r.URL.Query().Has(key) {
			return text
		}
	}
	return ""
}
