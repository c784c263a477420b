package web

import (
	"context"
	"errors"
	"net/http"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
)

type subscribeResultData struct {
	Chrome
	OK      bool
	Heading string
	Message string
}

// SubscribeConfirmHandler lands the double opt-in confirmation link from
// the subscription mail.
type SubscribeConfirmHandler struct {
	Site *Site
}

func (h SubscribeConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Site.renderTokenResult(w, r,
		h.Site.Engagement.ConfirmSubscription,
		"Подписка подтверждена",
		"Спасибо! Теперь вы будете получать наши новости на почту.",
		"Не удалось подтвердить подписку",
	)
}

// UnsubscribeHandler lands the opt-out link every newsletter carries.
type UnsubscribeHandler struct {
	Site *Site
}

func (h UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Site.renderTokenResult(w, r,
		h.Site.Engagement.Unsubscribe,
		"Вы отписались",
		"Адрес удалён из списка рассылки. Нам жаль расставаться!",
		"Не удалось отписаться",
	)
}

// renderTokenResult runs one token-carrying mail link action and renders
// its outcome page. Expired and already-used tokens are a normal outcome,
// not an error page; only a backend outage is.
func (s *Site) renderTokenResult(w http.ResponseWriter, r *http.Request, action func(context.Context, string) error, okHeading, okMessage, failHeading string) {
	ctx := r.Context()
	settings := s.Settings.Current(ctx)

	meta := s.SEO.ForPage(okHeading, "", r.URL.Path, settings)
	meta.Robots = "noindex, nofollow"
	chrome := chromeFor(r, settings, s.Categories, meta)

	err := action(ctx, r.URL.Query().Get("token"))
	if err != nil && errors.Is(err, entity.ErrBackendUnavailable) {
		renderError(w, r, s.Render, s.Logger, chrome, err)
		return
	}

	data := subscribeResultData{Chrome: chrome, OK: err == nil}
	status := http.StatusOK
	if err != nil {
		status = respond.StatusForError(err)
		data.Heading = failHeading
		data.Message = "Ссылка устарела или уже была использована."
		chrome.Meta.Title = failHeading
		data.Chrome = chrome
	} else {
		data.Heading = okHeading
		data.Message = okMessage
	}

	s.Render.Render(w, status, "subscribe_result", data)
}

// NotFoundHandler answers every path no other pattern claimed with the
// rendered 404 page.
type NotFoundHandler struct {
	Site *Site
}

func (h NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	settings := h.Site.Settings.Current(r.Context())
	chrome := chromeFor(r, settings, h.Site.Categories, h.Site.SEO.ForPage("", "", r.URL.Path, settings))
	renderError(w, r, h.Site.Render, h.Site.Logger, chrome, entity.ErrNotFound)
}
