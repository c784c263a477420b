package engagement

import (
	"net/http"

	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/handler/http/visitor"
	"fresh-motors-web/internal/observability/metrics"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

type RatingHandler struct{ Svc *engUC.Service }

// ServeHTTP 記事評価
// @Summary      記事評価
// @Description  記事に1〜5点の評価を付けます。同じ訪問者の再投票は上書きされます。
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        rating body object true "評価内容"
// @Success      200 {object} entity.Rating
// @Failure      400 {object} respond.ErrorResponse "validation failed"
// @Failure      429 {object} respond.ErrorResponse "rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/ratings [post]
func (h RatingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArticleID int64 `json:"article_id"`
		Score     int   `json:"score"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		metrics.RecordEngagementAction("rating", "rejected")
		return
	}

	rating, err := h.Svc.Rate(r.Context(), req.ArticleID, visitor.FromContext(r.Context()), req.Score)
	if err != nil {
		metrics.RecordEngagementAction("rating", outcome(err))
		respond.DomainError(w, err)
		return
	}

	metrics.RecordEngagementAction("rating", "accepted")
	respond.JSON(w, http.StatusOK, rating)
}
