package web

import (
	"net/http"
	"strconv"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/pathutil"
	"fresh-motors-web/internal/handler/http/respond"
	tagUC "fresh-motors-web/internal/usecase/tagview"
)

type adminTagsData struct {
	Chrome
	Overview *tagUC.GroupedTags
	Letters  []string
	Letter   string
	Errors   map[string]string
	Notice   string
}

var tagNotices = map[string]string{
	"tag_created":   "Тег создан.",
	"tag_saved":     "Тег обновлён.",
	"tag_deleted":   "Тег удалён.",
	"group_created": "Группа создана.",
	"group_saved":   "Группа обновлена.",
	"group_deleted": "Группа удалена.",
}

// AdminTagsHandler renders the tag manager: groups with their tags, the
// ungrouped bucket, and inline create/edit forms.
type AdminTagsHandler struct {
	Admin *Admin
}

func (h AdminTagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Admin.renderTagsPage(w, r, http.StatusOK, nil)
}

// renderTagsPage loads the grouped overview and renders the manager.
// The overview itself failing is an error page; this screen is nothing
// without it. ?letter= narrows the listing to one leading letter; the
// letter strip always reflects the full tag set.
func (a *Admin) renderTagsPage(w http.ResponseWriter, r *http.Request, status int, errs map[string]string) {
	chrome := a.chrome(r, "Теги")

	overview, err := a.Tags.Overview(r.Context())
	if err != nil {
		renderError(w, r, a.Render, a.Logger, chrome, err)
		return
	}

	letter := strings.TrimSpace(r.URL.Query().Get("letter"))

	data := adminTagsData{
		Chrome:   chrome,
		Overview: overview.Narrow(letter),
		Letters:  tagUC.Letters(overview.All()),
		Letter:   letter,
		Errors:   errs,
	}
	if errs == nil {
		data.Notice = noticeFromQuery(r, tagNotices)
	}

	a.Render.Render(w, status, "admin_tags", data)
}

// TagCreateHandler adds a tag from the inline form.
type TagCreateHandler struct {
	Admin *Admin
}

func (h TagCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tag := tagFromForm(r)
	if _, err := h.Admin.Tags.CreateTag(r.Context(), tag); err != nil {
		h.Admin.renderTagsPage(w, r, respond.StatusForError(err), formErrors(err))
		return
	}
	http.Redirect(w, r, "/admin/tags?tag_created=1", http.StatusSeeOther)
}

// TagUpdateHandler renames or regroups a tag.
type TagUpdateHandler struct {
	Admin *Admin
}

func (h TagUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Теги"), entity.ErrNotFound)
		return
	}

	tag := tagFromForm(r)
	tag.ID = id
	if _, err := h.Admin.Tags.UpdateTag(r.Context(), tag); err != nil {
		h.Admin.renderTagsPage(w, r, respond.StatusForError(err), formErrors(err))
		return
	}
	http.Redirect(w, r, "/admin/tags?tag_saved=1", http.StatusSeeOther)
}

// TagDeleteHandler removes a tag.
type TagDeleteHandler struct {
	Admin *Admin
}

func (h TagDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Теги"), entity.ErrNotFound)
		return
	}

	if err := h.Admin.Tags.DeleteTag(r.Context(), id); err != nil {
		h.Admin.renderTagsPage(w, r, respond.StatusForError(err), formErrors(err))
		return
	}
	http.Redirect(w, r, "/admin/tags?tag_deleted=1", http.StatusSeeOther)
}

// GroupCreateHandler adds a tag group.
type GroupCreateHandler struct {
	Admin *Admin
}

func (h GroupCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	group := groupFromForm(r)
	if _, err := h.Admin.Tags.CreateGroup(r.Context(), group); err != nil {
		h.Admin.renderTagsPage(w, r, respond.StatusForError(err), formErrors(err))
		return
	}
	http.Redirect(w, r, "/admin/tags?group_created=1", http.StatusSeeOther)
}

// GroupUpdateHandler renames or reorders a tag group.
type GroupUpdateHandler struct {
	Admin *Admin
}

func (h GroupUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Теги"), entity.ErrNotFound)
		return
	}

	group := groupFromForm(r)
	group.ID = id
	if _, err := h.Admin.Tags.UpdateGroup(r.Context(), group); err != nil {
		h.Admin.renderTagsPage(w, r, respond.StatusForError(err), formErrors(err))
		return
	}
	http.Redirect(w, r, "/admin/tags?group_saved=1", http.StatusSeeOther)
}

// GroupDeleteHandler removes a tag group. Its tags survive and fall into
// the ungrouped bucket; the backend clears their group id.
type GroupDeleteHandler struct {
	Admin *Admin
}

func (h GroupDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Теги"), entity.ErrNotFound)
		return
	}

	if err := h.Admin.Tags.DeleteGroup(r.Context(), id); err != nil {
		h.Admin.renderTagsPage(w, r, respond.StatusForError(err), formErrors(err))
		return
	}
	http.Redirect(w, r, "/admin/tags?group_deleted=1", http.StatusSeeOther)
}

func tagFromForm(r *http.Request) *entity.Tag {
	tag := &entity.Tag{
		Name: strings.TrimSpace(r.PostFormValue("name")),
		Slug: strings.TrimSpace(r.PostFormValue("slug")),
	}
	if groupID, err := strconv.ParseInt(r.PostFormValue("group_id"), 10, 64); err == nil && groupID > 0 {
		tag.GroupID = groupID
	}
	if order, err := strconv.Atoi(r.PostFormValue("sort_order")); err == nil {
		tag.SortOrder = order
	}
	return tag
}

func groupFromForm(r *http.Request) *entity.TagGroup {
	group := &entity.TagGroup{
		Name: strings.TrimSpace(r.PostFormValue("name")),
		Slug: strings.TrimSpace(r.PostFormValue("slug")),
	}
	if order, err := strconv.Atoi(r.PostFormValue("sort_order")); err == nil {
		group.SortOrder = order
	}
	return group
}
