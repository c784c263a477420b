package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/visitor"
	"fresh-motors-web/tests/fixtures"
)

/* ───────── 購読のメールリンク ───────── */

func TestSubscribeConfirm_Success(t *testing.T) {
	f := newSiteFixture(t)

	rec := f.get("/subscribe/confirm?token=tok-abc")

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Подписка подтверждена") {
		t.Error("confirmation heading missing")
	}
	if !strings.Contains(body, "result-ok") {
		t.Error("success styling missing")
	}
	if len(f.subscribers.confirmed) != 1 || f.subscribers.confirmed[0] != "tok-abc" {
		t.Errorf("confirmed tokens = %v, want [tok-abc]", f.subscribers.confirmed)
	}
}

func TestSubscribeConfirm_ExpiredToken(t *testing.T) {
	f := newSiteFixture(t)
	f.subscribers.confirmErr = entity.ErrNotFound

	rec := f.get("/subscribe/confirm?token=stale")

	// 期限切れは正常系のページで伝える。エラーページではない。
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusNotFound)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ссылка устарела или уже была использована") {
		t.Error("stale link copy missing")
	}
	if !strings.Contains(body, "result-fail") {
		t.Error("failure styling missing")
	}
}

func TestSubscribeConfirm_BackendDown(t *testing.T) {
	f := newSiteFixture(t)
	f.subscribers.confirmErr = entity.ErrBackendUnavailable

	rec := f.get("/subscribe/confirm?token=tok-abc")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if !strings.Contains(rec.Body.String(), "Сервис временно недоступен") {
		t.Error("outage page copy missing")
	}
}

func TestSubscribeConfirm_MissingToken(t *testing.T) {
	f := newSiteFixture(t)

	rec := f.get("/subscribe/confirm")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if len(f.subscribers.confirmed) != 0 {
		t.Error("missing token must not reach the backend")
	}
}

func TestUnsubscribe_Success(t *testing.T) {
	f := newSiteFixture(t)

	rec := f.get("/unsubscribe?token=tok-out")

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Вы отписались") {
		t.Error("unsubscribe heading missing")
	}
	if len(f.subscribers.unsubscribed) != 1 || f.subscribers.unsubscribed[0] != "tok-out" {
		t.Errorf("unsubscribed tokens = %v, want [tok-out]", f.subscribers.unsubscribed)
	}
}

/* ───────── избранное ───────── */

// favoritesVisitorID is a fixed visitor cookie value for favorites tests.
const favoritesVisitorID = "8a6bfa6d-4f0e-44a7-9b2e-6a2a8f0f4f10"

// getWithVisitor runs a request through the visitor middleware, the way
// the production chain wraps every public route.
func (f *siteFixture) getWithVisitor(path string, visitorID string) *httptest.ResponseRecorder {
	handler := visitor.Middleware(false)(f.mux)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if visitorID != "" {
		req.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: visitorID})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestFavorites_ListsSavedArticles(t *testing.T) {
	f := newSiteFixture(t)
	f.favorites.articles = fixtures.Articles(2)

	rec := f.getWithVisitor("/favorites", favoritesVisitorID)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()

	if !strings.Contains(body, fixtures.Article(1).Title) {
		t.Error("saved article missing from the page")
	}
	if f.favorites.lastVisitor != favoritesVisitorID {
		t.Errorf("visitor id = %q, want %q", f.favorites.lastVisitor, favoritesVisitorID)
	}
	// 個人ページはインデックスさせない
	if !strings.Contains(body, `content="noindex, nofollow"`) {
		t.Error("favorites page must carry a noindex robots meta")
	}
}

func TestFavorites_NewVisitorSeesEmptyState(t *testing.T) {
	f := newSiteFixture(t)

	rec := f.getWithVisitor("/favorites", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Здесь появятся статьи") {
		t.Error("empty state missing")
	}
}
