package article

import (
	"net/http"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/repository"
	artUC "fresh-motors-web/internal/usecase/article"
)

type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP 記事カード一覧取得
// @Summary      記事カード一覧取得
// @Description  公開記事のカードをページ単位で返します。インデックスページの「もっと見る」が呼び出します。
// @Tags         articles
// @Produce      json
// @Param        page     query int    false "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit    query int    false "1ページあたりの件数" default(12)
// @Param        category query string false "カテゴリスラッグで絞り込み"
// @Param        tag      query string false "タグスラッグで絞り込み"
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} respond.ErrorResponse "invalid query parameters"
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	filters := repository.ArticleFilters{
		CategorySlug:  r.URL.Query().Get("category"),
		TagSlug:       r.URL.Query().Get("tag"),
		PublishedOnly: true,
	}

	page, err := h.Svc.Page(r.Context(), filters, params)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(page.Articles), page.Pagination))
}
