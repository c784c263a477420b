package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/pathutil"
	"fresh-motors-web/internal/handler/http/respond"
	tagUC "fresh-motors-web/internal/usecase/tagview"
)

type articleFormData struct {
	Chrome
	Article    *entity.Article
	Categories []*entity.Category
	Tags       *tagUC.GroupedTags
	Errors     map[string]string
	Notice     string
	IsNew      bool
}

// ArticleNewHandler renders an empty editor form.
type ArticleNewHandler struct {
	Admin *Admin
}

func (h ArticleNewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Admin.renderArticleForm(w, r, &entity.Article{}, true, http.StatusOK, nil)
}

// ArticleCreateHandler stores a new article and opens it for editing.
type ArticleCreateHandler struct {
	Admin *Admin
}

func (h ArticleCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	art := articleFromForm(r)

	created, err := h.Admin.Articles.Create(r.Context(), art)
	if err != nil {
		h.Admin.renderArticleForm(w, r, art, true, respond.StatusForError(err), formErrors(err))
		return
	}

	http.Redirect(w, r, "/admin/articles/"+strconv.FormatInt(created.ID, 10)+"/edit?created=1", http.StatusSeeOther)
}

// ArticleEditHandler renders the editor form loaded with an article.
type ArticleEditHandler struct {
	Admin *Admin
}

func (h ArticleEditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Статьи"), entity.ErrNotFound)
		return
	}

	art, err := h.Admin.Articles.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Статьи"), err)
		return
	}

	h.Admin.renderArticleForm(w, r, art, false, http.StatusOK, nil)
}

// ArticleUpdateHandler applies the submitted form to an existing article
// and re-renders the editor.
type ArticleUpdateHandler struct {
	Admin *Admin
}

func (h ArticleUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Статьи"), entity.ErrNotFound)
		return
	}

	art := articleFromForm(r)
	art.ID = id

	if _, err := h.Admin.Articles.Update(r.Context(), art); err != nil {
		h.Admin.renderArticleForm(w, r, art, false, respond.StatusForError(err), formErrors(err))
		return
	}

	http.Redirect(w, r, "/admin/articles/"+strconv.FormatInt(id, 10)+"/edit?saved=1", http.StatusSeeOther)
}

// renderArticleForm loads the pickers and renders the editor. Picker
// failures degrade to a form without them rather than an error page.
func (a *Admin) renderArticleForm(w http.ResponseWriter, r *http.Request, art *entity.Article, isNew bool, status int, errs map[string]string) {
	title := "Новая статья"
	if !isNew {
		title = "Редактирование статьи"
	}

	data := articleFormData{
		Chrome:  a.chrome(r, title),
		Article: art,
		Errors:  errs,
		IsNew:   isNew,
	}
	if errs == nil {
		data.Notice = noticeFromQuery(r, adminArticleNotices)
	}

	if cats, err := a.Categories.Get(r.Context()); err == nil {
		data.Categories = cats
	}
	if overview, err := a.Tags.Overview(r.Context()); err == nil {
		data.Tags = overview
	}

	a.Render.Render(w, status, "admin_article_form", data)
}

// articleFromForm builds the article entity from the editor form.
func articleFromForm(r *http.Request) *entity.Article {
	art := &entity.Article{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Slug:        strings.TrimSpace(r.PostFormValue("slug")),
		Subtitle:    strings.TrimSpace(r.PostFormValue("subtitle")),
		BodyHTML:    r.PostFormValue("content"),
		Excerpt:     strings.TrimSpace(r.PostFormValue("excerpt")),
		CoverURL:    strings.TrimSpace(r.PostFormValue("cover_image")),
		YouTubeURL:  strings.TrimSpace(r.PostFormValue("youtube_url")),
		SourceName:  strings.TrimSpace(r.PostFormValue("source_name")),
		SourceURL:   strings.TrimSpace(r.PostFormValue("source_url")),
		IsPublished: r.PostFormValue("is_published") == "1",
	}

	show := r.PostFormValue("show_source") == "1"
	art.ShowSource = &show

	if catID, err := strconv.ParseInt(r.PostFormValue("category_id"), 10, 64); err == nil && catID > 0 {
		art.Category = &entity.Category{ID: catID}
	}
	for _, raw := range r.PostForm["tag_ids"] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			art.Tags = append(art.Tags, entity.Tag{ID: id})
		}
	}

	return art
}

// formErrors flattens a submit failure into per-field messages. The ""
// key carries the form-level message shown above the fields.
func formErrors(err error) map[string]string {
	errs := map[string]string{}

	var verr *entity.ValidationError
	var fields entity.FieldErrors
	switch {
	case errors.As(err, &verr):
		errs[verr.Field] = verr.Message
	case errors.As(err, &fields):
		for field := range fields {
			errs[field] = fields.First(field)
		}
	case errors.Is(err, entity.ErrBackendUnavailable):
		errs[""] = "Бэкенд недоступен, изменения не сохранены. Попробуйте ещё раз."
	case errors.Is(err, entity.ErrNotFound):
		errs[""] = "Запись не найдена. Возможно, её уже удалили."
	default:
		errs[""] = "Не удалось сохранить изменения."
	}

	return errs
}
