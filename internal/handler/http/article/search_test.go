package article_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/handler/http/article"
	"fresh-motors-web/internal/handler/http/respond"
	"fresh-motors-web/internal/repository"
)

func TestSearchHandler_RequiresQuery(t *testing.T) {
	repo := &stubArticleRepo{}
	handler := newMux(repo)

	for _, target := range []string{
		"/api/ui/articles/search",
		"/api/ui/articles/search?q=",
		"/api/ui/articles/search?q=%20%20",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status code = %d, want %d", target, rec.Code, http.StatusBadRequest)
			continue
		}
		var resp respond.ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("%s: failed to decode response: %v", target, err)
		}
		if resp.Field != "q" {
			t.Errorf("%s: field = %q, want q", target, resp.Field)
		}
	}
	if repo.gotLimit != 0 {
		t.Error("repository was called despite missing query")
	}
}

func TestSearchHandler_TrimsAndForwardsQuery(t *testing.T) {
	repo := &stubArticleRepo{listing: &repository.ArticleListing{
		Articles: sampleCards()[:1],
		Total:    1,
	}}
	handler := newMux(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ui/articles/search?q=%20lada%20vesta%20", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if repo.gotFilters.Query != "lada vesta" {
		t.Errorf("query = %q, want trimmed \"lada vesta\"", repo.gotFilters.Query)
	}
	if !repo.gotFilters.PublishedOnly {
		t.Error("filters.PublishedOnly = false, want true")
	}
	// 検索はカテゴリ・タグ絞り込みを持たない
	if repo.gotFilters.CategorySlug != "" || repo.gotFilters.TagSlug != "" {
		t.Errorf("filters = %+v, want no category or tag", repo.gotFilters)
	}

	var resp pagination.Response[article.DTO]
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Slug != "lada-vesta-2024" {
		t.Errorf("data = %+v, want the single lada-vesta-2024 card", resp.Data)
	}
}

func TestSearchHandler_PagesResults(t *testing.T) {
	repo := &stubArticleRepo{}
	handler := newMux(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ui/articles/search?q=bmw&page=2&limit=4", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if repo.gotOffset != 4 || repo.gotLimit != 4 {
		t.Errorf("offset/limit = %d/%d, want 4/4", repo.gotOffset, repo.gotLimit)
	}
}
