package taxonomy_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fresh-motors-web/internal/cache"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/handler/http/taxonomy"
	tagUC "fresh-motors-web/internal/usecase/tagview"
)

/* ───────── モック実装 ───────── */

type stubTagRepo struct {
	tags    []*entity.Tag
	listErr error
}

func (s *stubTagRepo) List(_ context.Context) ([]*entity.Tag, error) {
	return s.tags, s.listErr
}

// 以下は未使用だが、インターフェースを満たすために実装
func (s *stubTagRepo) Get(_ context.Context, _ int64) (*entity.Tag, error) {
	return nil, entity.ErrNotFound
}
func (s *stubTagRepo) Create(_ context.Context, _ *entity.Tag) (*entity.Tag, error) {
	return nil, nil
}
func (s *stubTagRepo) Update(_ context.Context, _ *entity.Tag) (*entity.Tag, error) {
	return nil, nil
}
func (s *stubTagRepo) Delete(_ context.Context, _ int64) error { return nil }

type stubTagGroupRepo struct {
	groups []*entity.TagGroup
}

func (s *stubTagGroupRepo) List(_ context.Context) ([]*entity.TagGroup, error) {
	return s.groups, nil
}
func (s *stubTagGroupRepo) Create(_ context.Context, _ *entity.TagGroup) (*entity.TagGroup, error) {
	return nil, nil
}
func (s *stubTagGroupRepo) Update(_ context.Context, _ *entity.TagGroup) (*entity.TagGroup, error) {
	return nil, nil
}
func (s *stubTagGroupRepo) Delete(_ context.Context, _ int64) error { return nil }

func newTagsMux(tags *stubTagRepo, groups *stubTagGroupRepo) http.Handler {
	mux := http.NewServeMux()
	taxonomy.Register(mux, emptyCategories(), &tagUC.Service{Tags: tags, Groups: groups})
	return mux
}

func emptyCategories() *cache.Entry[[]*entity.Category] {
	return categoriesEntry(nil, nil)
}

/* ───────── テスト ───────── */

func TestTagsHandler_GroupsTags(t *testing.T) {
	tags := &stubTagRepo{tags: []*entity.Tag{
		{ID: 1, Name: "Lada", Slug: "lada", GroupID: 10},
		{ID: 2, Name: "BMW", Slug: "bmw", GroupID: 10},
		{ID: 3, Name: "Электромобили", Slug: "elektromobili"},
	}}
	groups := &stubTagGroupRepo{groups: []*entity.TagGroup{
		{ID: 10, Name: "Марки", SortOrder: 1},
	}}

	handler := newTagsMux(tags, groups)

	req := httptest.NewRequest(http.MethodGet, "/api/ui/tags", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp taxonomy.TagsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Groups) != 1 || resp.Groups[0].Name != "Марки" {
		t.Fatalf("groups = %+v, want the single Марки group", resp.Groups)
	}
	// グループ内は名前順（SortOrderが同じ場合）
	if len(resp.Groups[0].Tags) != 2 || resp.Groups[0].Tags[0].Name != "BMW" {
		t.Errorf("group tags = %+v, want BMW first", resp.Groups[0].Tags)
	}
	if got := resp.Groups[0].Tags[0].URL; got != "/tag/bmw" {
		t.Errorf("tag url = %q, want /tag/bmw", got)
	}
	if len(resp.Ungrouped) != 1 || resp.Ungrouped[0].Slug != "elektromobili" {
		t.Errorf("ungrouped = %+v, want elektromobili", resp.Ungrouped)
	}
	if len(resp.Letters) != 3 {
		t.Errorf("letters = %v, want three distinct leading letters", resp.Letters)
	}
}

func TestTagsHandler_LetterFilterKeepsFullStrip(t *testing.T) {
	tags := &stubTagRepo{tags: []*entity.Tag{
		{ID: 1, Name: "Lada", Slug: "lada"},
		{ID: 2, Name: "BMW", Slug: "bmw"},
	}}

	handler := newTagsMux(tags, &stubTagGroupRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/ui/tags?letter=b", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp taxonomy.TagsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Ungrouped) != 1 || resp.Ungrouped[0].Name != "BMW" {
		t.Errorf("ungrouped = %+v, want only BMW after letter filter", resp.Ungrouped)
	}
	// 文字ストリップは絞り込み後も全タグ分を維持する
	if len(resp.Letters) != 2 {
		t.Errorf("letters = %v, want both B and L", resp.Letters)
	}
}

func TestTagsHandler_EmptySetEncodesEmptyArrays(t *testing.T) {
	handler := newTagsMux(&stubTagRepo{}, &stubTagGroupRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/ui/tags", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, key := range []string{"letters", "groups", "ungrouped"} {
		if string(raw[key]) != "[]" {
			t.Errorf("%s = %s, want []", key, raw[key])
		}
	}
}

func TestTagsHandler_BackendUnavailable(t *testing.T) {
	tags := &stubTagRepo{
		listErr: fmt.Errorf("list tags: %w", entity.ErrBackendUnavailable),
	}
	handler := newTagsMux(tags, &stubTagGroupRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/ui/tags", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}
