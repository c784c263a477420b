package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fresh-motors-web/internal/config"
)

func loadRedirects(t *testing.T, yaml string) *config.RedirectsConfig {
	t.Helper()

	path := filepath.Join(t.TempDir(), "redirects.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("failed to write redirects file: %v", err)
	}

	cfg, err := config.LoadRedirectsConfig(path)
	if err != nil {
		t.Fatalf("LoadRedirectsConfig() returned unexpected error: %v", err)
	}
	return cfg
}

const testRedirectsYAML = `
redirects:
  - from: /articles/123
    to: /news/lada-vesta-2024
    permanent: true
  - from: /promo
    to: /news
    permanent: false
`

func serveRedirects(t *testing.T, cfg *config.RedirectsConfig, target string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	handler := Redirects(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec, called
}

func TestRedirects_PermanentMove(t *testing.T) {
	cfg := loadRedirects(t, testRedirectsYAML)

	rec, called := serveRedirects(t, cfg, "/articles/123")

	if called {
		t.Error("next handler should not run for a redirected path")
	}
	if rec.Code != http.StatusMovedPermanently {
		t.Errorf("status = %d, expected 301", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/news/lada-vesta-2024" {
		t.Errorf("Location = %q, expected %q", got, "/news/lada-vesta-2024")
	}
}

func TestRedirects_TemporaryMove(t *testing.T) {
	cfg := loadRedirects(t, testRedirectsYAML)

	rec, _ := serveRedirects(t, cfg, "/promo")

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, expected 302", rec.Code)
	}
}

func TestRedirects_PreservesQueryString(t *testing.T) {
	cfg := loadRedirects(t, testRedirectsYAML)

	rec, _ := serveRedirects(t, cfg, "/articles/123?utm_source=vk&utm_campaign=autumn")

	want := "/news/lada-vesta-2024?utm_source=vk&utm_campaign=autumn"
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, expected %q", got, want)
	}
}

func TestRedirects_PassesUnmatchedPaths(t *testing.T) {
	cfg := loadRedirects(t, testRedirectsYAML)

	rec, called := serveRedirects(t, cfg, "/news/lada-vesta-2024")

	if !called {
		t.Error("next handler should run for paths outside the table")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}

func TestRedirects_EmptyTableIsPassThrough(t *testing.T) {
	cfg, err := config.LoadRedirectsConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadRedirectsConfig() returned unexpected error: %v", err)
	}

	rec, called := serveRedirects(t, cfg, "/articles/123")

	if !called {
		t.Error("next handler should run when no redirects are configured")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}
