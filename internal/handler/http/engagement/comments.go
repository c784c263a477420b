package engagement

import (
	"net/http"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/observability/metrics"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

type CommentHandler struct{ Svc *engUC.Service }

// ServeHTTP コメント投稿
// @Summary      コメント投稿
// @Description  記事にコメントを投稿します。承認されるまで公開ページには表示されません。
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        comment body object true "コメント内容"
// @Success      201 {object} entity.Comment
// @Failure      400 {object} respond.ErrorResponse "validation failed"
// @Failure      429 {object} respond.ErrorResponse "rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/comments [post]
func (h CommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArticleID int64  `json:"article_id"`
		Author    string `json:"author_name"`
		Email     string `json:"author_email"`
		Body      string `json:"text"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		metrics.RecordEngagementAction("comment", "rejected")
		return
	}

	created, err := h.Svc.SubmitComment(r.Context(), &entity.Comment{
		ArticleID: req.ArticleID,
		Author:    req.Author,
		Email:     req.Email,
		Body:      req.Body,
	})
	if err != nil {
		metrics.RecordEngagementAction("comment", outcome(err))
		respond.DomainError(w, err)
		return
	}

	metrics.RecordEngagementAction("comment", "accepted")
	respond.JSON(w, http.StatusCreated, created)
}
