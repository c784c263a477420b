package engagement

import (
	"net/http"

	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/observability/metrics"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

type SubscribeHandler struct{ Svc *engUC.Service }

// ServeHTTP ニュースレター登録
// @Summary      ニュースレター登録
// @Description  メールアドレスを登録します。確認メールのリンクを開くまで購読は有効になりません。
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Param        subscription body object true "メールアドレス"
// @Success      201 {object} entity.Subscriber
// @Failure      400 {object} respond.ErrorResponse "validation failed"
// @Failure      429 {object} respond.ErrorResponse "rate limit exceeded"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      502 {object} respond.ErrorResponse "backend unavailable"
// @Router       /api/ui/subscribe [post]
func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		metrics.RecordEngagementAction("subscribe", "rejected")
		return
	}

	subscriber, err := h.Svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		metrics.RecordEngagementAction("subscribe", outcome(err))
		respond.DomainError(w, err)
		return
	}

	metrics.RecordEngagementAction("subscribe", "accepted")
	respond.JSON(w, http.StatusCreated, subscriber)
}
