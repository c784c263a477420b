package engagement

import (
	"net/http"

	"fresh-motors-web/internal/handler/http/respond"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

type CountsHandler struct{ Svc *engUC.Service }

// ServeHTTP エンゲージメント件数取得
// @Summary      エンゲージメント件数取得
// @Description  キャッシュ済みページの表示後に最新の閲覧数・コメント数・評価を返します。
// @Tags         engagement
// @Produce      json
// @Param        slug path string true "記事スラッグ"
// @Success      200 {object} engagement.Counts
// @Failure      404 {object} respond.ErrorResponse "article not found"
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/articles/{slug}/engagement [get]
func (h CountsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Svc.CountsBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	// ページ本体はキャッシュされても件数は常に最新を返す
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, http.StatusOK, counts)
}
