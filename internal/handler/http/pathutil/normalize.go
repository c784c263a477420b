package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization so metric recording stays cheap.
var pathPatterns = []*PathPattern{
	// Public pages keyed by slug
	{Pattern: regexp.MustCompile(`^/news/[^/]+$`), Template: "/news/:slug"},
	{Pattern: regexp.MustCompile(`^/category/[^/]+$`), Template: "/category/:slug"},
	{Pattern: regexp.MustCompile(`^/tag/[^/]+$`), Template: "/tag/:slug"},

	// Engagement API keyed by slug
	{Pattern: regexp.MustCompile(`^/api/ui/articles/[^/]+/engagement$`), Template: "/api/ui/articles/:slug/engagement"},

	// Admin editor routes keyed by numeric ID
	{Pattern: regexp.MustCompile(`^/admin/articles/\d+/edit$`), Template: "/admin/articles/:id/edit"},
	{Pattern: regexp.MustCompile(`^/admin/articles/\d+/specs$`), Template: "/admin/articles/:id/specs"},
	{Pattern: regexp.MustCompile(`^/admin/articles/\d+$`), Template: "/admin/articles/:id"},

	// Generation progress proxy keyed by backend task ID
	{Pattern: regexp.MustCompile(`^/admin/generate/[^/]+/ws$`), Template: "/admin/generate/:task/ws"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// Every article slug would otherwise become its own Prometheus label value.
//
// Examples:
//
//	NormalizePath("/news/new-crossover-review")  // "/news/:slug"
//	NormalizePath("/news/electric-suv-2025")     // "/news/:slug"
//	NormalizePath("/admin/articles/42/edit")     // "/admin/articles/:id/edit"
//	NormalizePath("/news")                       // "/news" (unchanged)
//	NormalizePath("/healthz")                    // "/healthz" (unchanged)
//	NormalizePath("/sitemap.xml")                // "/sitemap.xml" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/news/some-slug?utm=x")       // "/news/:slug"
//	NormalizePath("/news/some-slug/")            // "/news/:slug"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	// Try to match against known patterns
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path. Static paths like /news,
	// /healthz and /sitemap.xml pass through unchanged.
	return path
}
