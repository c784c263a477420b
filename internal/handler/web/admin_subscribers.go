package web

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"time"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/pathutil"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/handler/http/session"
	subUC "fresh-motors-web/internal/usecase/subscriber"
)

type subscribersData struct {
	Chrome
	Page   *subUC.Page
	Notice string
}

var subscriberNotices = map[string]string{
	"deleted": "Подписчик удалён.",
}

// SubscribersHandler renders the newsletter audience table with email
// search and pagination.
type SubscribersHandler struct {
	Admin *Admin
}

func (h SubscribersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chrome := h.Admin.chrome(r, "Подписчики")

	params := pagination.ParsePage(r, h.Admin.Pagination)
	page, err := h.Admin.Subscribers.List(r.Context(), r.URL.Query().Get("q"), params)
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, chrome, err)
		return
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_subscribers", subscribersData{
		Chrome: chrome,
		Page:   page,
		Notice: noticeFromQuery(r, subscriberNotices),
	})
}

// SubscriberDeleteHandler removes one subscriber. Admin role only;
// editors manage content, not the audience.
type SubscriberDeleteHandler struct {
	Admin *Admin
}

func (h SubscriberDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !session.FromContext(r.Context()).IsAdmin() {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Подписчики"), entity.ErrForbidden)
		return
	}

	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Подписчики"), entity.ErrNotFound)
		return
	}

	if err := h.Admin.Subscribers.Delete(r.Context(), id); err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Подписчики"), err)
		return
	}

	http.Redirect(w, r, "/admin/subscribers?deleted=1", http.StatusSeeOther)
}

// SubscribersExportHandler streams the audience as a CSV download. The
// export batches through the backend, so rows flush as they arrive and
// a failure mid-stream can only truncate, never corrupt headers.
type SubscribersExportHandler struct {
	Admin *Admin
}

func (h SubscribersExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filename := "subscribers-" + time.Now().Format("20060102") + ".csv"

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	rows, err := h.Admin.Subscribers.ExportCSV(r.Context(), query, csv.NewWriter(w))
	if err != nil {
		// ヘッダ送信済みなのでログに残すしかない
		h.Admin.Logger.Error("subscriber export failed",
			slog.Int("rows_written", rows),
			slog.String("error", respond.SanitizeError(err)),
		)
		return
	}

	h.Admin.Logger.Info("subscriber export completed",
		slog.Int("rows", rows),
		slog.String("query", query),
	)
}
