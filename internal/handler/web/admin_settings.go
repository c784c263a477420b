package web

import (
	"net/http"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/handler/http/session"
)

type settingsData struct {
	Chrome
	Form   *entity.SiteSettings
	Errors map[string]string
	Notice string
}

// SettingsFormHandler renders the site settings form. It reads past the
// cache: an editor looking at the form needs the stored truth, not a
// possibly stale copy.
type SettingsFormHandler struct {
	Admin *Admin
}

func (h SettingsFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chrome := h.Admin.chrome(r, "Настройки сайта")

	settings, err := h.Admin.Settings.Fresh(r.Context())
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, chrome, err)
		return
	}

	data := settingsData{Chrome: chrome, Form: settings}
	if r.URL.Query().Has("saved") {
		data.Notice = "Настройки сохранены."
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_settings", data)
}

// SettingsSaveHandler persists the settings form. Admin role only. A
// successful save refreshes the settings cache, so public pages pick the
// change up on the next request.
type SettingsSaveHandler struct {
	Admin *Admin
}

func (h SettingsSaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chrome := h.Admin.chrome(r, "Настройки сайта")

	if !session.FromContext(r.Context()).IsAdmin() {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, chrome, entity.ErrForbidden)
		return
	}

	form := settingsFromForm(r)
	if _, err := h.Admin.Settings.Update(r.Context(), form); err != nil {
		h.Admin.Render.Render(w, respond.StatusForError(err), "admin_settings", settingsData{
			Chrome: chrome,
			Form:   form,
			Errors: formErrors(err),
		})
		return
	}

	http.Redirect(w, r, "/admin/settings?saved=1", http.StatusSeeOther)
}

func settingsFromForm(r *http.Request) *entity.SiteSettings {
	return &entity.SiteSettings{
		SiteName:       strings.TrimSpace(r.PostFormValue("site_name")),
		Tagline:        strings.TrimSpace(r.PostFormValue("tagline")),
		Description:    strings.TrimSpace(r.PostFormValue("description")),
		LogoURL:        strings.TrimSpace(r.PostFormValue("logo_url")),
		ContactEmail:   strings.TrimSpace(r.PostFormValue("contact_email")),
		TelegramURL:    strings.TrimSpace(r.PostFormValue("telegram_url")),
		YouTubeURL:     strings.TrimSpace(r.PostFormValue("youtube_url")),
		VKURL:          strings.TrimSpace(r.PostFormValue("vk_url")),
		AnalyticsID:    strings.TrimSpace(r.PostFormValue("analytics_id")),
		CommentsOpen:   r.PostFormValue("comments_enabled") == "1",
		RatingsOpen:    r.PostFormValue("ratings_enabled") == "1",
		FavoritesOpen:  r.PostFormValue("favorites_enabled") == "1",
		SubscribesOpen: r.PostFormValue("subscriptions_enabled") == "1",
	}
}
