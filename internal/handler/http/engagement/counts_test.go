package engagement_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/engagement"
	"fresh-motors-web/internal/repository"
	engUC "fresh-motors-web/internal/usecase/engagement"
)

/* ───────── モック実装 ───────── */

type stubArticleReader struct {
	article *entity.Article
	getErr  error
}

func (s *stubArticleReader) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.article != nil && s.article.Slug == slug {
		return s.article, nil
	}
	return nil, entity.ErrNotFound
}

// 以下は未使用だが、インターフェースを満たすために実装
func (s *stubArticleReader) GetByID(_ context.Context, _ int64) (*entity.Article, error) {
	return nil, entity.ErrNotFound
}
func (s *stubArticleReader) List(_ context.Context, _ repository.ArticleFilters, _, _ int) (*repository.ArticleListing, error) {
	return nil, nil
}
func (s *stubArticleReader) Related(_ context.Context, _ int64, _ int) ([]*entity.Article, error) {
	return nil, nil
}
func (s *stubArticleReader) Slugs(_ context.Context) ([]repository.ArticleRef, error) {
	return nil, nil
}
func (s *stubArticleReader) Create(_ context.Context, _ *entity.Article) (*entity.Article, error) {
	return nil, nil
}
func (s *stubArticleReader) Update(_ context.Context, _ *entity.Article) (*entity.Article, error) {
	return nil, nil
}
func (s *stubArticleReader) Delete(_ context.Context, _ int64) error               { return nil }
func (s *stubArticleReader) SetPublished(_ context.Context, _ int64, _ bool) error { return nil }
func (s *stubArticleReader) IncrementView(_ context.Context, _ int64) error        { return nil }

/* ───────── テスト ───────── */

func newCountsHandler(articles *stubArticleReader, ratings *stubRatingRepo) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/ui/articles/{slug}/engagement", engagement.CountsHandler{Svc: &engUC.Service{
		Articles: articles,
		Ratings:  ratings,
		Logger:   testLogger(),
	}})
	return mux
}

func TestCountsHandler_ReturnsFreshCounts(t *testing.T) {
	articles := &stubArticleReader{article: &entity.Article{
		ID:           42,
		Slug:         "lada-vesta-2024",
		ViewCount:    1200,
		CommentCount: 9,
		RatingAvg:    4.1,
		RatingCount:  30,
	}}
	ratings := &stubRatingRepo{}
	ratings.rating = &entity.Rating{ArticleID: 42, Average: 4.4, Count: 33}

	handler := newCountsHandler(articles, ratings)

	req := httptest.NewRequest(http.MethodGet, "/api/ui/articles/lada-vesta-2024/engagement", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", got)
	}

	var counts engUC.Counts
	if err := json.NewDecoder(rec.Body).Decode(&counts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if counts.ArticleID != 42 || counts.Views != 1200 || counts.Comments != 9 {
		t.Errorf("counts = %+v, want article 42 with 1200 views and 9 comments", counts)
	}
	// 評価はレーティングAPIの新しい集計で上書きされる
	if counts.RatingAvg != 4.4 || counts.RatingCount != 33 {
		t.Errorf("rating = %v/%d, want fresh aggregate 4.4/33", counts.RatingAvg, counts.RatingCount)
	}
}

func TestCountsHandler_FallsBackToArticleCounters(t *testing.T) {
	articles := &stubArticleReader{article: &entity.Article{
		ID:          42,
		Slug:        "lada-vesta-2024",
		RatingAvg:   4.1,
		RatingCount: 30,
	}}
	ratings := &stubRatingRepo{}
	ratings.rateErr = fmt.Errorf("get rating: %w", entity.ErrBackendUnavailable)

	handler := newCountsHandler(articles, ratings)

	req := httptest.NewRequest(http.MethodGet, "/api/ui/articles/lada-vesta-2024/engagement", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	var counts engUC.Counts
	if err := json.NewDecoder(rec.Body).Decode(&counts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if counts.RatingAvg != 4.1 || counts.RatingCount != 30 {
		t.Errorf("rating = %v/%d, want article's own counters 4.1/30", counts.RatingAvg, counts.RatingCount)
	}
}

func TestCountsHandler_UnknownSlug(t *testing.T) {
	handler := newCountsHandler(&stubArticleReader{}, &stubRatingRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/ui/articles/no-such-article/engagement", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
