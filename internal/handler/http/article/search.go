package article

import (
	"net/http"
	"strings"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/repository"
	artUC "fresh-motors-web/internal/usecase/article"
)

type SearchHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP 記事検索
// @Summary      記事検索
// @Description  公開記事を全文検索し、該当するカードをページ単位で返します。検索ボックスのライブサジェストが呼び出します。
// @Tags         articles
// @Produce      json
// @Param        q     query string true  "検索キーワード"
// @Param        page  query int    false "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit query int    false "1ページあたりの件数" default(12)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} respond.ErrorResponse "missing or invalid query"
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/articles/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respond.JSON(w, http.StatusBadRequest, respond.ErrorResponse{
			Error: "search query is required",
			Field: "q",
		})
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.Svc.Page(r.Context(), repository.ArticleFilters{
		Query:         query,
		PublishedOnly: true,
	}, params)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(page.Articles), page.Pagination))
}
