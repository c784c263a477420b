package web

import (
	"net/http"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/handler/http/session"
	"fresh-motors-web/internal/repository"
)

type profileData struct {
	Chrome
	User   *entity.User
	Errors map[string]string
	Notice string
}

var profileNotices = map[string]string{
	"saved":            "Профиль обновлён.",
	"password_changed": "Пароль изменён.",
}

// ProfileFormHandler renders the account page of the logged-in editor:
// profile fields plus the password change form.
type ProfileFormHandler struct {
	Admin *Admin
}

func (h ProfileFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Admin.renderProfile(w, r, http.StatusOK, nil, noticeFromQuery(r, profileNotices))
}

// ProfileUpdateHandler applies name and email changes.
type ProfileUpdateHandler struct {
	Admin *Admin
}

func (h ProfileUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	update := repository.ProfileUpdate{Name: &name, Email: &email}

	if _, err := h.Admin.Accounts.UpdateProfile(r.Context(), sess.BackendToken, update); err != nil {
		h.Admin.renderProfile(w, r, respond.StatusForError(err), formErrors(err), "")
		return
	}

	http.Redirect(w, r, "/admin/profile?saved=1", http.StatusSeeOther)
}

// PasswordChangeHandler submits a password change. The confirmation
// equality check runs in the usecase before any backend call, so a typo
// never leaves the process.
type PasswordChangeHandler struct {
	Admin *Admin
}

func (h PasswordChangeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	err := h.Admin.Accounts.ChangePassword(r.Context(),
		sess.BackendToken,
		r.PostFormValue("current_password"),
		r.PostFormValue("new_password"),
		r.PostFormValue("confirm_password"),
	)
	if err != nil {
		h.Admin.renderProfile(w, r, respond.StatusForError(err), formErrors(err), "")
		return
	}

	http.Redirect(w, r, "/admin/profile?password_changed=1", http.StatusSeeOther)
}

func (a *Admin) renderProfile(w http.ResponseWriter, r *http.Request, status int, errs map[string]string, notice string) {
	chrome := a.chrome(r, "Профиль")
	sess := session.FromContext(r.Context())

	user, err := a.Accounts.Profile(r.Context(), sess.BackendToken)
	if err != nil {
		renderError(w, r, a.Render, a.Logger, chrome, err)
		return
	}

	a.Render.Render(w, status, "admin_profile", profileData{
		Chrome: chrome,
		User:   user,
		Errors: errs,
		Notice: notice,
	})
}
