package web

import (
	"net/http"
	"strconv"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/pathutil"
	"fresh-motors-web/internal/handler/http/respond"
)

type specFormData struct {
	Chrome
	Article *entity.Article
	Spec    *entity.VehicleSpec
	Text    string
	Errors  map[string]string
	Notice  string
}

// SpecFormHandler renders the vehicle spec sheet editor of one article.
// An article without a sheet opens an empty form.
type SpecFormHandler struct {
	Admin *Admin
}

func (h SpecFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Характеристики"), entity.ErrNotFound)
		return
	}

	article, spec, err := h.Admin.loadSpecPage(r, articleID)
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Характеристики"), err)
		return
	}

	data := specFormData{
		Chrome:  h.Admin.chrome(r, "Характеристики"),
		Article: article,
		Spec:    spec,
	}
	if r.URL.Query().Has("saved") {
		data.Notice = "Характеристики сохранены."
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_specs", data)
}

// SpecSaveHandler upserts the sheet from the form.
type SpecSaveHandler struct {
	Admin *Admin
}

func (h SpecSaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Характеристики"), entity.ErrNotFound)
		return
	}

	spec := specFromForm(r, articleID)
	if _, err := h.Admin.Specs.Save(r.Context(), spec); err != nil {
		h.Admin.renderSpecForm(w, r, articleID, spec, "", respond.StatusForError(err), formErrors(err))
		return
	}

	http.Redirect(w, r, "/admin/articles/"+strconv.FormatInt(articleID, 10)+"/specs?saved=1", http.StatusSeeOther)
}

// SpecExtractHandler posts pasted text to the backend extraction helper
// and re-renders the form populated with the parsed sheet. Nothing is
// saved until the editor submits the form.
type SpecExtractHandler struct {
	Admin *Admin
}

func (h SpecExtractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Характеристики"), entity.ErrNotFound)
		return
	}

	text := r.PostFormValue("text")
	spec, err := h.Admin.Specs.Extract(r.Context(), articleID, text)
	if err != nil {
		h.Admin.renderSpecForm(w, r, articleID, nil, text, respond.StatusForError(err), formErrors(err))
		return
	}

	h.Admin.renderSpecForm(w, r, articleID, spec, "", http.StatusOK, nil)
}

// loadSpecPage fetches the article and its sheet together; the article
// anchors the page heading and the back link.
func (a *Admin) loadSpecPage(r *http.Request, articleID int64) (*entity.Article, *entity.VehicleSpec, error) {
	article, err := a.Articles.Get(r.Context(), articleID)
	if err != nil {
		return nil, nil, err
	}
	spec, err := a.Specs.ForArticle(r.Context(), articleID)
	if err != nil {
		return nil, nil, err
	}
	return article, spec, nil
}

// renderSpecForm re-renders the editor around a submitted or extracted
// sheet. A nil spec falls back to the stored one.
func (a *Admin) renderSpecForm(w http.ResponseWriter, r *http.Request, articleID int64, spec *entity.VehicleSpec, text string, status int, errs map[string]string) {
	chrome := a.chrome(r, "Характеристики")

	article, stored, err := a.loadSpecPage(r, articleID)
	if err != nil {
		renderError(w, r, a.Render, a.Logger, chrome, err)
		return
	}
	if spec == nil {
		spec = stored
	}

	data := specFormData{
		Chrome:  chrome,
		Article: article,
		Spec:    spec,
		Text:    text,
		Errors:  errs,
	}
	if errs == nil && spec != stored {
		data.Notice = "Характеристики распознаны. Проверьте поля и сохраните."
	}

	a.Render.Render(w, status, "admin_specs", data)
}

func specFromForm(r *http.Request, articleID int64) *entity.VehicleSpec {
	return &entity.VehicleSpec{
		ArticleID:    articleID,
		Make:         strings.TrimSpace(r.PostFormValue("make")),
		Model:        strings.TrimSpace(r.PostFormValue("model")),
		Year:         strings.TrimSpace(r.PostFormValue("year")),
		Engine:       strings.TrimSpace(r.PostFormValue("engine")),
		Power:        strings.TrimSpace(r.PostFormValue("power")),
		Torque:       strings.TrimSpace(r.PostFormValue("torque")),
		Transmission: strings.TrimSpace(r.PostFormValue("transmission")),
		Drivetrain:   strings.TrimSpace(r.PostFormValue("drivetrain")),
		Acceleration: strings.TrimSpace(r.PostFormValue("acceleration")),
		TopSpeed:     strings.TrimSpace(r.PostFormValue("top_speed")),
		Weight:       strings.TrimSpace(r.PostFormValue("weight")),
		Price:        strings.TrimSpace(r.PostFormValue("price")),
	}
}
