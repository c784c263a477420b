package web

import (
	"net/http"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/pathutil"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

type moderationData struct {
	Chrome
	Page   *engUC.ModerationPage
	Notice string
}

var moderationNotices = map[string]string{
	"approved": "Комментарий одобрен.",
	"deleted":  "Комментарий удалён.",
}

// CommentsModerationHandler renders the queue of unapproved comments.
type CommentsModerationHandler struct {
	Admin *Admin
}

func (h CommentsModerationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chrome := h.Admin.chrome(r, "Комментарии")

	params := pagination.ParsePage(r, h.Admin.Pagination)
	page, err := h.Admin.Engagement.PendingComments(r.Context(), params)
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, chrome, err)
		return
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_comments", moderationData{
		Chrome: chrome,
		Page:   page,
		Notice: noticeFromQuery(r, moderationNotices),
	})
}

// CommentApproveHandler releases a pending comment onto its article page.
type CommentApproveHandler struct {
	Admin *Admin
}

func (h CommentApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Комментарии"), entity.ErrNotFound)
		return
	}

	if err := h.Admin.Engagement.ApproveComment(r.Context(), id); err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Комментарии"), err)
		return
	}

	http.Redirect(w, r, "/admin/comments?approved=1", http.StatusSeeOther)
}

// CommentDeleteHandler drops a comment from the queue for good.
type CommentDeleteHandler struct {
	Admin *Admin
}

func (h CommentDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Комментарии"), entity.ErrNotFound)
		return
	}

	if err := h.Admin.Engagement.DeleteComment(r.Context(), id); err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Комментарии"), err)
		return
	}

	http.Redirect(w, r, "/admin/comments?deleted=1", http.StatusSeeOther)
}
