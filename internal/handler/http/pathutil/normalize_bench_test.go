package pathutil

import (
	"testing"
)

// BenchmarkNormalizePath covers the request mix a page load produces.
func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/news/new-crossover-review",
		"/category/reviews",
		"/api/ui/articles/new-crossover-review/engagement",
		"/news",
		"/healthz",
		"/admin/articles/42/edit",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(paths[i%len(paths)])
	}
}

// BenchmarkNormalizePath_Match benchmarks the common matching case.
func BenchmarkNormalizePath_Match(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NormalizePath("/news/new-crossover-review")
	}
}

// BenchmarkNormalizePath_NoMatch benchmarks the worst case where every
// pattern is checked and none matches.
func BenchmarkNormalizePath_NoMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = NormalizePath("/unknown/very/long/path/that/matches/nothing")
	}
}

// BenchmarkNormalizePath_Parallel simulates concurrent metric recording.
func BenchmarkNormalizePath_Parallel(b *testing.B) {
	paths := []string{
		"/news/new-crossover-review",
		"/tag/electric-cars",
		"/healthz",
		"/search",
	}

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = NormalizePath(paths[i%len(paths)])
			i++
		}
	})
}
