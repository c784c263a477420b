package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/infra/progress"
	"fresh-motors-web/internal/observability/metrics"
	genUC "fresh-motors-web/internal/usecase/generation"
)

type generateData struct {
	Chrome
	Kind       string
	SourceURL  string
	CategoryID int64
	Publish    bool
	Categories []*entity.Category
	Info       *genUC.SourceInfo
	Errors     map[string]string
}

type generateProgressData struct {
	Chrome
	Task *entity.GenerationTask
}

// GenerateFormHandler renders the article generation form: paste a
// YouTube or foreign-article URL, pick a category, submit.
type GenerateFormHandler struct {
	Admin *Admin
}

func (h GenerateFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Admin.renderGenerateForm(w, r, http.StatusOK, generateData{
		Kind: entity.GenerationFromYouTube,
	})
}

// GenerateSubmitHandler drives the two-step flow: "resolve" fetches
// source metadata for the confirmation card, "submit" starts the task
// and redirects to its progress page.
type GenerateSubmitHandler struct {
	Admin *Admin
}

func (h GenerateSubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := generateData{
		Kind:      r.PostFormValue("kind"),
		SourceURL: strings.TrimSpace(r.PostFormValue("source_url")),
		Publish:   r.PostFormValue("publish") == "1",
	}
	if id, err := strconv.ParseInt(r.PostFormValue("category_id"), 10, 64); err == nil && id > 0 {
		data.CategoryID = id
	}

	if r.PostFormValue("action") == "submit" {
		task, err := h.Admin.Generation.Submit(r.Context(), &entity.GenerationRequest{
			Kind:       data.Kind,
			SourceURL:  data.SourceURL,
			CategoryID: data.CategoryID,
			Publish:    data.Publish,
		})
		if err != nil {
			h.Admin.renderGenerateForm(w, r, respond.StatusForError(err), withFormErrors(data, err))
			return
		}
		http.Redirect(w, r, "/admin/generate/"+url.PathEscape(task.TaskID), http.StatusSeeOther)
		return
	}

	info, err := h.Admin.Generation.Resolve(r.Context(), data.Kind, data.SourceURL)
	if err != nil {
		h.Admin.renderGenerateForm(w, r, respond.StatusForError(err), withFormErrors(data, err))
		return
	}

	data.Info = info
	h.Admin.renderGenerateForm(w, r, http.StatusOK, data)
}

func withFormErrors(data generateData, err error) generateData {
	data.Errors = formErrors(err)
	return data
}

func (a *Admin) renderGenerateForm(w http.ResponseWriter, r *http.Request, status int, data generateData) {
	data.Chrome = a.chrome(r, "Генерация статьи")
	if cats, err := a.Categories.Get(r.Context()); err == nil {
		data.Categories = cats
	}
	a.Render.Render(w, status, "admin_generate", data)
}

// GenerateProgressHandler renders the live progress page of one task.
// The page script connects to the WebSocket bridge for updates; the
// initial state comes from the REST status endpoint so a reload lands on
// the current step.
type GenerateProgressHandler struct {
	Admin *Admin
}

func (h GenerateProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("taskID")

	task, err := h.Admin.Generation.Status(r.Context(), taskID)
	if err != nil {
		renderError(w, r, h.Admin.Render, h.Admin.Logger, h.Admin.chrome(r, "Генерация статьи"), err)
		return
	}

	h.Admin.Render.Render(w, http.StatusOK, "admin_generate_progress", generateProgressData{
		Chrome: h.Admin.chrome(r, "Генерация статьи"),
		Task:   task,
	})
}

// progressUpgrader upgrades browser connections for the progress bridge.
// 同一オリジンのみ許可。
var progressUpgrader = websocket.Upgrader{
	HandshakeTimeout: 10 * time.Second,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	},
}

// GenerateStreamHandler bridges the browser to the backend progress
// stream for one task. Events pass through untouched; the bridge owns
// both connections and closes them together. Mounted outside the timeout
// middleware, which cannot hijack.
type GenerateStreamHandler struct {
	Admin *Admin
}

func (h GenerateStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("taskID")

	conn, err := progressUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its error response.
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.ProxySessionOpened()
	defer metrics.ProxySessionClosed()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// ブラウザ側の切断を検知するための読み捨てループ
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	_, err = h.Admin.Generation.Watch(ctx, taskID, func(ev entity.ProgressEvent) {
		_ = conn.WriteJSON(&ev)
	})

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, progress.ErrGenerationFailed):
		// 失敗イベントは転送済み。閉じるだけでよい。
	default:
		// 合成イベントでページ側に中断を知らせる
		_ = conn.WriteJSON(&entity.ProgressEvent{
			Error: "Соединение с конвейером потеряно. Обновите страницу.",
		})
	}

	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
}
