package web

import (
	"log/slog"
	"net/http"

	"fresh-motors-web/internal/handler/http/respond"
)

// errorData feeds the shared error page template.
type errorData struct {
	Chrome
	Status  int
	Heading string
	Message string
}

// エラーページの見出しと本文。ステータスごとに固定。
var errorCopy = map[int][2]string{
	http.StatusNotFound:            {"Страница не найдена", "Такой страницы нет или она была удалена."},
	http.StatusBadRequest:          {"Некорректный запрос", "Проверьте адрес страницы и попробуйте ещё раз."},
	http.StatusBadGateway:          {"Сервис временно недоступен", "Мы уже работаем над этим. Попробуйте обновить страницу через минуту."},
	http.StatusTooManyRequests:     {"Слишком много запросов", "Подождите немного и попробуйте снова."},
	http.StatusInternalServerError: {"Что-то пошло не так", "Произошла внутренняя ошибка. Попробуйте обновить страницу."},
}

// renderError maps a page assembly failure onto the error template with
// the status DomainError would have answered. The not-found case stays a
// regular page render, never a crash page.
func renderError(w http.ResponseWriter, r *http.Request, rnd *Renderer, logger *slog.Logger, chrome Chrome, err error) {
	status := respond.StatusForError(err)
	text, ok := errorCopy[status]
	if !ok {
		status = http.StatusInternalServerError
		text = errorCopy[status]
	}

	if status >= http.StatusInternalServerError {
		logger.Error("page failed",
			slog.String("path", r.URL.Path),
			slog.String("error", respond.SanitizeError(err)),
		)
	}

	chrome.Meta.Title = text[0]
	chrome.Meta.Robots = "noindex, nofollow"
	rnd.Render(w, status, "error", errorData{
		Chrome:  chrome,
		Status:  status,
		Heading: text[0],
		Message: text[1],
	})
}
