package engagement_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/engagement"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

/* ───────── モック実装 ───────── */

type stubFavoriteRepo struct {
	favorited    bool
	count        int64
	toggleErr    error
	toggleCalled bool
	gotArticleID int64
	gotVisitorID string
	articles     []*entity.Article
	listCalled   bool
}

func (s *stubFavoriteRepo) Toggle(_ context.Context, articleID int64, visitorID string) (bool, int64, error) {
	s.toggleCalled = true
	s.gotArticleID = articleID
	s.gotVisitorID = visitorID
	if s.toggleErr != nil {
		return false, 0, s.toggleErr
	}
	return s.favorited, s.count, nil
}

func (s *stubFavoriteRepo) ListByVisitor(_ context.Context, _ string) ([]*entity.Article, error) {
	s.listCalled = true
	return s.articles, nil
}

func newFavoriteService(repo *stubFavoriteRepo) *engUC.Service {
	return &engUC.Service{Favorites: repo, Logger: testLogger()}
}

/* ───────── テスト ───────── */

func TestToggleFavoriteHandler(t *testing.T) {
	repo := &stubFavoriteRepo{favorited: true, count: 8}
	handler := withVisitor(engagement.ToggleFavoriteHandler{Svc: newFavoriteService(repo)})

	req := visitorRequest(http.MethodPost, "/api/ui/favorites/toggle", `{"article_id":42}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if repo.gotArticleID != 42 {
		t.Errorf("article id = %d, want 42", repo.gotArticleID)
	}
	if repo.gotVisitorID != testVisitorID {
		t.Errorf("visitor id = %q, want cookie value", repo.gotVisitorID)
	}

	var state engUC.FavoriteState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !state.Favorited || state.Count != 8 {
		t.Errorf("state = %+v, want favorited with count 8", state)
	}
}

func TestToggleFavoriteHandler_MissingArticleID(t *testing.T) {
	repo := &stubFavoriteRepo{}
	handler := withVisitor(engagement.ToggleFavoriteHandler{Svc: newFavoriteService(repo)})

	req := visitorRequest(http.MethodPost, "/api/ui/favorites/toggle", `{}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if repo.toggleCalled {
		t.Error("toggle without article id must not reach the repository")
	}
}

func TestListFavoritesHandler(t *testing.T) {
	repo := &stubFavoriteRepo{
		articles: []*entity.Article{
			{ID: 1, Slug: "lada-vesta-2024", Title: "Новая Lada Vesta"},
			{ID: 2, Slug: "uaz-hunter-test", Title: "Тест-драйв УАЗ Хантер"},
		},
	}
	handler := withVisitor(engagement.ListFavoritesHandler{Svc: newFavoriteService(repo)})

	req := visitorRequest(http.MethodGet, "/api/ui/favorites", "")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	var articles []*entity.Article
	if err := json.NewDecoder(rec.Body).Decode(&articles); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !repo.listCalled {
		t.Error("repository was not queried")
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	if articles[0].Slug != "lada-vesta-2024" {
		t.Errorf("slug = %q, want lada-vesta-2024", articles[0].Slug)
	}
}

func TestListFavoritesHandler_EmptyIsArrayNotNull(t *testing.T) {
	repo := &stubFavoriteRepo{}
	handler := withVisitor(engagement.ListFavoritesHandler{Svc: newFavoriteService(repo)})

	req := visitorRequest(http.MethodGet, "/api/ui/favorites", "")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if body == "null\n" || body == "null" {
		t.Errorf("body = %q, want empty array", body)
	}
}
