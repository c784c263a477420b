package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubBackend struct {
	err error
}

func (s *stubBackend) Healthz(ctx context.Context) error {
	return s.err
}

type stubCacheEntry struct {
	name string
	warm bool
}

func (s stubCacheEntry) Name() string { return s.name }
func (s stubCacheEntry) Warm() bool   { return s.warm }

func TestReadyHandler(t *testing.T) {
	backendDown := errors.New("connection refused")

	tests := []struct {
		name        string
		backend     BackendChecker
		caches      []CacheEntry
		wantCode    int
		wantStatus  string
		wantBackend string
		wantCache   string
	}{
		{
			name:    "backend up and caches warm",
			backend: &stubBackend{},
			caches: []CacheEntry{
				stubCacheEntry{name: "settings", warm: true},
				stubCacheEntry{name: "categories", warm: true},
			},
			wantCode:    http.StatusOK,
			wantStatus:  "healthy",
			wantBackend: "healthy",
			wantCache:   "healthy",
		},
		{
			name:    "cold cache degrades readiness",
			backend: &stubBackend{},
			caches: []CacheEntry{
				stubCacheEntry{name: "settings", warm: true},
				stubCacheEntry{name: "sitemap", warm: false},
			},
			wantCode:    http.StatusOK,
			wantStatus:  "degraded",
			wantBackend: "healthy",
			wantCache:   "degraded",
		},
		{
			// 古い記事でも出せる間はトラフィックを受け続ける
			name:    "dead backend with warm caches stays ready",
			backend: &stubBackend{err: backendDown},
			caches: []CacheEntry{
				stubCacheEntry{name: "settings", warm: true},
				stubCacheEntry{name: "categories", warm: true},
			},
			wantCode:    http.StatusOK,
			wantStatus:  "degraded",
			wantBackend: "unhealthy",
			wantCache:   "healthy",
		},
		{
			name:    "dead backend and cold caches",
			backend: &stubBackend{err: backendDown},
			caches: []CacheEntry{
				stubCacheEntry{name: "settings", warm: false},
			},
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "unhealthy",
			wantBackend: "unhealthy",
			wantCache:   "degraded",
		},
		{
			name:        "dead backend and no caches registered",
			backend:     &stubBackend{err: backendDown},
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "unhealthy",
			wantBackend: "unhealthy",
		},
		{
			name:        "no backend configured",
			backend:     nil,
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "unhealthy",
			wantBackend: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &ReadyHandler{
				Backend: tt.backend,
				Caches:  tt.caches,
				Version: "1.2.3",
			}
			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.Version != "1.2.3" {
				t.Errorf("version = %q, want %q", resp.Version, "1.2.3")
			}
			if got := resp.Checks["backend"].Status; got != tt.wantBackend {
				t.Errorf("backend check = %q, want %q", got, tt.wantBackend)
			}
			if tt.wantCache != "" {
				if got := resp.Checks["cache"].Status; got != tt.wantCache {
					t.Errorf("cache check = %q, want %q", got, tt.wantCache)
				}
			}
		})
	}
}

func TestReadyHandlerReportsPerEntryWarmth(t *testing.T) {
	handler := &ReadyHandler{
		Backend: &stubBackend{},
		Caches: []CacheEntry{
			stubCacheEntry{name: "settings", warm: true},
			stubCacheEntry{name: "sitemap", warm: false},
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	details := resp.Checks["cache"].Details
	if got, ok := details["settings"].(bool); !ok || !got {
		t.Errorf("details[settings] = %v, want true", details["settings"])
	}
	if got, ok := details["sitemap"].(bool); !ok || got {
		t.Errorf("details[sitemap] = %v, want false", details["sitemap"])
	}
}

func TestReadyHandlerDisablesCaching(t *testing.T) {
	handler := &ReadyHandler{Backend: &stubBackend{}}
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func TestLiveHandler(t *testing.T) {
	handler := &LiveHandler{}
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "alive" {
		t.Errorf("body = %q, want %q", got, "alive")
	}
}
