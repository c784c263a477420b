package sitemap

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"fresh-motors-web/internal/repository"
)

// Warmer sweeps the published slug list after boot and prefetches every
// article detail, so the backend's render cache is hot before readers
// arrive. The limiter paces the sweep; live traffic always outranks it.
type Warmer struct {
	articles repository.ArticleRepository
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewWarmer creates a warmer capped at rps requests per second against
// the backend.
func NewWarmer(articles repository.ArticleRepository, rps float64, logger *slog.Logger) *Warmer {
	return &Warmer{
		articles: articles,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
		logger:   logger,
	}
}

// Run crawls every published slug once. A failed prefetch only leaves
// that article cold, so errors are counted and the sweep moves on.
func (w *Warmer) Run(ctx context.Context) {
	refs, err := w.articles.Slugs(ctx)
	if err != nil {
		w.logger.Warn("warm crawl skipped, slug list unavailable", slog.Any("error", err))
		return
	}

	start := time.Now()
	failed := 0
	for _, ref := range refs {
		if err := w.limiter.Wait(ctx); err != nil {
			// シャットダウン中。残りはあきらめる。
			return
		}
		if _, err := w.articles.GetBySlug(ctx, ref.Slug); err != nil {
			failed++
		}
	}

	w.logger.Info("warm crawl finished",
		slog.Int("articles", len(refs)),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(start)),
	)
}
