package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fresh-motors-web/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewarePassesResponseThrough(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("заварка"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/news/lada-vesta-2024", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := rec.Body.String(); got != "заварка" {
		t.Errorf("body = %q, want %q", got, "заварка")
	}
}

func TestMetricsMiddlewareCountsNormalizedPath(t *testing.T) {
	// 418はテスト専用。他のテストとラベルが衝突しないようにする。
	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/news/:slug", "418")
	before := testutil.ToFloat64(counter)

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/news/lada-vesta-2024", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	after := testutil.ToFloat64(counter)
	if after-before != 1 {
		t.Errorf("http_requests_total delta = %v, want 1", after-before)
	}
}

func TestMetricsMiddlewareRestoresConnectionGauge(t *testing.T) {
	before := testutil.ToFloat64(metrics.ActiveConnections)

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := testutil.ToFloat64(metrics.ActiveConnections); got != before+1 {
			t.Errorf("active connections during request = %v, want %v", got, before+1)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if after := testutil.ToFloat64(metrics.ActiveConnections); after != before {
		t.Errorf("active connections after request = %v, want %v", after, before)
	}
}

func TestMetricsHandlerServesPrometheusFormat(t *testing.T) {
	// 最低1リクエストを記録してからスクレイプする
	warm := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	warm.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	MetricsHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); !strings.Contains(body, "http_requests_total") {
		t.Errorf("metrics output missing http_requests_total")
	}
}
