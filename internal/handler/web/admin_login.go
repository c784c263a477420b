package web

import (
	"errors"
	"net/http"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/observability/metrics"
)

type loginData struct {
	Chrome
	Email string
	Next  string
	Error string
}

// LoginPageHandler renders the admin login form. A browser that already
// carries a valid session skips straight to the dashboard.
type LoginPageHandler struct {
	Admin *Admin
}

func (h LoginPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if sess, err := h.Admin.Sessions.Verify(r); err == nil && sess.CanManage() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_login", loginData{
		Chrome: h.Admin.chrome(r, "Вход"),
		Next:   sanitizeNext(r.URL.Query().Get("next")),
	})
}

// LoginSubmitHandler exchanges the form credentials at the backend and
// seals the returned token into the session cookie.
type LoginSubmitHandler struct {
	Admin *Admin
}

func (h LoginSubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	next := sanitizeNext(r.PostFormValue("next"))

	creds, err := h.Admin.Accounts.Login(r.Context(), email, password)
	if err != nil {
		metrics.RecordAdminLogin(false)
		h.Admin.Render.Render(w, respond.StatusForError(err), "admin_login", loginData{
			Chrome: h.Admin.chrome(r, "Вход"),
			Email:  email,
			Next:   next,
			Error:  loginFailureMessage(err),
		})
		return
	}

	if err := h.Admin.Sessions.Issue(w, creds); err != nil {
		metrics.RecordAdminLogin(false)
		h.Admin.Render.Render(w, http.StatusInternalServerError, "admin_login", loginData{
			Chrome: h.Admin.chrome(r, "Вход"),
			Email:  email,
			Next:   next,
			Error:  "Не удалось создать сессию. Попробуйте ещё раз.",
		})
		return
	}

	metrics.RecordAdminLogin(true)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// LogoutHandler drops the session cookie.
type LogoutHandler struct {
	Admin *Admin
}

func (h LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Admin.Sessions.Clear(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// sanitizeNext keeps the post-login redirect inside the admin area so the
// next parameter can never become an open redirect.
func sanitizeNext(next string) string {
	if strings.HasPrefix(next, "/admin") {
		return next
	}
	return "/admin"
}

func loginFailureMessage(err error) string {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		return "Введите адрес и пароль."
	case errors.Is(err, entity.ErrUnauthorized):
		return "Неверный адрес или пароль."
	case errors.Is(err, entity.ErrForbidden):
		return "У этой учётной записи нет доступа к админке."
	case errors.Is(err, entity.ErrRateLimited):
		return "Слишком много попыток входа. Подождите немного."
	default:
		return "Сервис авторизации недоступен. Попробуйте позже."
	}
}
