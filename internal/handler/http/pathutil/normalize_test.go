package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		// Slug routes (should be normalized)
		{
			name:     "article page",
			path:     "/news/new-crossover-review",
			expected: "/news/:slug",
		},
		{
			name:     "article page with cyrillic-transliterated slug",
			path:     "/news/test-drayv-novogo-sedana-2025",
			expected: "/news/:slug",
		},
		{
			name:     "article page with trailing slash",
			path:     "/news/new-crossover-review/",
			expected: "/news/:slug",
		},
		{
			name:     "article page with UTM noise",
			path:     "/news/new-crossover-review?utm_source=telegram",
			expected: "/news/:slug",
		},
		{
			name:     "category page",
			path:     "/category/reviews",
			expected: "/category/:slug",
		},
		{
			name:     "tag page",
			path:     "/tag/electric-cars",
			expected: "/tag/:slug",
		},
		{
			name:     "engagement API",
			path:     "/api/ui/articles/new-crossover-review/engagement",
			expected: "/api/ui/articles/:slug/engagement",
		},

		// Admin ID routes (should be normalized)
		{
			name:     "article editor",
			path:     "/admin/articles/42/edit",
			expected: "/admin/articles/:id/edit",
		},
		{
			name:     "spec sheet editor",
			path:     "/admin/articles/42/specs",
			expected: "/admin/articles/:id/specs",
		},
		{
			name:     "article delete target",
			path:     "/admin/articles/42",
			expected: "/admin/articles/:id",
		},
		{
			name:     "generation progress proxy",
			path:     "/admin/generate/a1b2c3d4/ws",
			expected: "/admin/generate/:task/ws",
		},

		// Static routes (should pass through unchanged)
		{
			name:     "home",
			path:     "/",
			expected: "/",
		},
		{
			name:     "news index",
			path:     "/news",
			expected: "/news",
		},
		{
			name:     "search",
			path:     "/search?q=crossover",
			expected: "/search",
		},
		{
			name:     "sitemap",
			path:     "/sitemap.xml",
			expected: "/sitemap.xml",
		},
		{
			name:     "feed",
			path:     "/feed.xml",
			expected: "/feed.xml",
		},
		{
			name:     "health",
			path:     "/healthz",
			expected: "/healthz",
		},
		{
			name:     "admin article list",
			path:     "/admin/articles",
			expected: "/admin/articles",
		},
		{
			name:     "admin editor with non-numeric ID stays raw",
			path:     "/admin/articles/abc/edit",
			expected: "/admin/articles/abc/edit",
		},
		{
			name:     "unknown path",
			path:     "/unknown/path/123",
			expected: "/unknown/path/123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
