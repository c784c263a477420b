// Package web serves the HTML side of the site: public pages, the admin
// area and the SEO surfaces. Pages are rendered with html/template from
// an embedded tree; in development the templates can be read from disk
// and hot-reloaded on change.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"fresh-motors-web/internal/observability/metrics"

	"github.com/fsnotify/fsnotify"
)

//go:embed templates
var templateFS embed.FS

const (
	publicLayout = "layout.gohtml"
	adminLayout  = "admin_layout.gohtml"
)

// page is one parsed page template plus the layout it executes.
type page struct {
	tmpl   *template.Template
	layout string
}

// Renderer parses and executes the page templates. It is safe for
// concurrent use; Watch swaps the parsed set atomically on reload.
type Renderer struct {
	logger *slog.Logger

	// dir, when set, overrides the embedded templates with an on-disk
	// tree and enables hot reload. Env: TEMPLATES_DIR.
	dir string

	mu    sync.RWMutex
	pages map[string]page
}

// NewRenderer parses every page template. dir is empty in production;
// a non-empty dir points at a templates directory on disk for
// development reload.
func NewRenderer(dir string, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{dir: dir, logger: logger}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// sourceFS picks the template tree: disk in development, embedded
// otherwise.
func (r *Renderer) sourceFS() (fs.FS, error) {
	if r.dir != "" {
		if _, err := os.Stat(r.dir); err != nil {
			return nil, fmt.Errorf("templates dir: %w", err)
		}
		return os.DirFS(r.dir), nil
	}
	return fs.Sub(templateFS, "templates")
}

// reload parses the full template tree and swaps it in. On failure the
// previously parsed set stays active.
func (r *Renderer) reload() error {
	fsys, err := r.sourceFS()
	if err != nil {
		return err
	}

	names, err := fs.Glob(fsys, "pages/*.gohtml")
	if err != nil {
		return fmt.Errorf("glob pages: %w", err)
	}
	if len(names) == 0 {
		return fmt.Errorf("no page templates found")
	}

	pages := make(map[string]page, len(names))
	for _, name := range names {
		base := path.Base(name)
		pageName := strings.TrimSuffix(base, ".gohtml")

		layout := publicLayout
		if strings.HasPrefix(pageName, "admin_") {
			layout = adminLayout
		}

		tmpl, err := template.New(base).Funcs(funcMap()).ParseFS(fsys,
			layout, "partials/*.gohtml", name)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[pageName] = page{tmpl: tmpl, layout: layout}
	}

	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// Render executes one page into a buffer and writes it with the given
// status. Buffering first means a template error can still become a
// clean 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	start := time.Now()

	r.mu.RLock()
	pg, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		r.logger.Error("unknown page template", slog.String("page", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		metrics.RecordPageRender(name, http.StatusInternalServerError, time.Since(start))
		return
	}

	var buf bytes.Buffer
	if err := pg.tmpl.ExecuteTemplate(&buf, pg.layout, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("page", name),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		metrics.RecordPageRender(name, http.StatusInternalServerError, time.Since(start))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("response write failed", slog.Any("error", err))
	}
	metrics.RecordPageRender(name, status, time.Since(start))
}

// Watch reloads templates when files under the development directory
// change. It blocks until ctx is done and is a no-op without a dir.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("template watcher: %w", err)
	}
	defer watcher.Close()

	for _, sub := range []string{"", "pages", "partials"} {
		if err := watcher.Add(path.Join(r.dir, sub)); err != nil {
			return fmt.Errorf("watch %s: %w", path.Join(r.dir, sub), err)
		}
	}
	r.logger.Info("template hot reload enabled", slog.String("dir", r.dir))

	// エディタ保存は複数イベントを連射するのでまとめて1回だけ再読込する
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				pending = time.After(100 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("template watcher error", slog.Any("error", err))
		case <-pending:
			pending = nil
			if err := r.reload(); err != nil {
				// 編集途中の壊れたテンプレートは前の版のまま動かす
				r.logger.Warn("template reload failed", slog.Any("error", err))
				continue
			}
			r.logger.Info("templates reloaded")
		}
	}
}
