package taxonomy

import (
	"net/http"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
)

// CategoriesHandler serves the category list from the same cache entry
// the page header renders from, so API and HTML never disagree.
type CategoriesHandler struct {
	Categories *cache.Entry[[]*entity.Category]
}

// ServeHTTP カテゴリ一覧取得
// @Summary      カテゴリ一覧取得
// @Description  公開カテゴリの一覧を返します。モバイルメニューが遅延読み込みで呼び出します。
// @Tags         taxonomy
// @Produce      json
// @Success      200 {array} taxonomy.CategoryDTO
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/categories [get]
func (h CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.Get(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toCategoryDTOs(categories))
}
