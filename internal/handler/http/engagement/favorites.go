package engagement

import (
	"net/http"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/handler/http/visitor"
	"fresh-motors-web/internal/observability/metrics"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

type ToggleFavoriteHandler struct{ Svc *engUC.Service }

// ServeHTTP お気に入り切替
// @Summary      お気に入り切替
// @Description  訪問者のお気に入り状態を反転し、新しい状態と件数を返します。
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        favorite body object true "対象記事"
// @Success      200 {object} engagement.FavoriteState
// @Failure      400 {object} respond.ErrorResponse "validation failed"
// @Failure      429 {object} respond.ErrorResponse "rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/favorites/toggle [post]
func (h ToggleFavoriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArticleID int64 `json:"article_id"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		metrics.RecordEngagementAction("favorite", "rejected")
		return
	}

	state, err := h.Svc.ToggleFavorite(r.Context(), req.ArticleID, visitor.FromContext(r.Context()))
	if err != nil {
		metrics.RecordEngagementAction("favorite", outcome(err))
		respond.DomainError(w, err)
		return
	}

	metrics.RecordEngagementAction("favorite", "accepted")
	respond.JSON(w, http.StatusOK, state)
}

type ListFavoritesHandler struct{ Svc *engUC.Service }

// ServeHTTP お気に入り一覧
// @Summary      お気に入り一覧
// @Description  訪問者がお気に入りにした記事を返します。
// @Tags         engagement
// @Produce      json
// @Success      200 {array} entity.Article
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/favorites [get]
func (h ListFavoritesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.FavoritesOf(r.Context(), visitor.FromContext(r.Context()))
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	if articles == nil {
		// ページスクリプトはnullではなく空配列を期待する
		articles = []*entity.Article{}
	}
	respond.JSON(w, http.StatusOK, articles)
}
