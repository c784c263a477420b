package fixtures_test

import (
	"strings"
	"testing"

	"fresh-motors-web/internal/utils/text"
	"fresh-motors-web/tests/fixtures"
)

// TestText_TargetLengths verifies generated copy lands within ±10% of
// the requested rune count across the lengths suites actually use.
func TestText_TargetLengths(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"short", 500},
		{"medium", 2000},
		{"long", 6000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixtures.Text(fixtures.TextOptions{Length: tt.length})

			actual := text.CountRunes(got)
			minLength := int(float64(tt.length) * 0.9)
			maxLength := int(float64(tt.length) * 1.1)

			if actual < minLength || actual > maxLength {
				t.Errorf("length %d not within expected range [%d, %d]", actual, minLength, maxLength)
			}
		})
	}
}

// TestText_Deterministic verifies two calls with the same options agree,
// so assertions made against generated copy stay stable.
func TestText_Deterministic(t *testing.T) {
	opts := fixtures.TextOptions{Length: 1000}

	if fixtures.Text(opts) != fixtures.Text(opts) {
		t.Error("same options produced different copy")
	}
}

func TestBodyHTML_ParagraphMarkup(t *testing.T) {
	body := fixtures.BodyHTML(3)

	if got := strings.Count(body, "<p>"); got != 3 {
		t.Errorf("paragraph count = %d, want 3", got)
	}
	if strings.Count(body, "<p>") != strings.Count(body, "</p>") {
		t.Error("unbalanced paragraph tags")
	}
}

func TestArticle_Deterministic(t *testing.T) {
	a := fixtures.Article(7)
	b := fixtures.Article(7)

	if a.Slug != b.Slug || a.Title != b.Title {
		t.Errorf("same id produced different articles: %q/%q vs %q/%q", a.Slug, a.Title, b.Slug, b.Title)
	}
	if a.Slug != "test-drive-7" {
		t.Errorf("slug = %q, want %q", a.Slug, "test-drive-7")
	}
	if !a.IsPublished {
		t.Error("fixture article must be published")
	}
	if a.PublishedAt == nil {
		t.Fatal("fixture article must carry a publication time")
	}
	if !a.DisplaySource() && a.SourceName != "" {
		t.Error("source display flag inconsistent")
	}
}

func TestDraft_Unpublished(t *testing.T) {
	d := fixtures.Draft(3)

	if d.IsPublished {
		t.Error("draft must not be published")
	}
	if d.PublishedAt != nil {
		t.Error("draft must not carry a publication time")
	}
	if d.ViewCount != 0 || d.CommentCount != 0 {
		t.Error("draft must not carry engagement counters")
	}
}

// TestArticles_NewestFirst verifies the listing order matches the
// backend's published_at DESC contract.
func TestArticles_NewestFirst(t *testing.T) {
	list := fixtures.Articles(5)

	if len(list) != 5 {
		t.Fatalf("len = %d, want 5", len(list))
	}
	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1].PublishedAt, list[i].PublishedAt
		if prev == nil || cur == nil {
			t.Fatal("every listed article must carry a publication time")
		}
		if cur.After(*prev) {
			t.Errorf("articles out of order at %d: %v after %v", i, cur, prev)
		}
	}
}

func TestApprovedComments_Shape(t *testing.T) {
	comments := fixtures.ApprovedComments(42, 3)

	if len(comments) != 3 {
		t.Fatalf("len = %d, want 3", len(comments))
	}
	for i, c := range comments {
		if c.ArticleID != 42 {
			t.Errorf("comment %d article id = %d, want 42", i, c.ArticleID)
		}
		if !c.IsApproved {
			t.Errorf("comment %d must be approved", i)
		}
		if i > 0 && c.CreatedAt.Before(comments[i-1].CreatedAt) {
			t.Errorf("comments must be oldest first, got %v before %v", c.CreatedAt, comments[i-1].CreatedAt)
		}
	}
}

func TestSettings_FeaturesOpen(t *testing.T) {
	s := fixtures.Settings()

	if !s.CommentsOpen || !s.RatingsOpen || !s.FavoritesOpen || !s.SubscribesOpen {
		t.Error("fixture settings must enable every public feature")
	}
	if s.SiteName == "" {
		t.Error("fixture settings must name the site")
	}
}

func BenchmarkText2000(b *testing.B) {
	for i := 0; i < b.N; i++ {
		fixtures.Text(fixtures.TextOptions{Length: 2000})
	}
}
