package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fresh-motors-web/internal/observability/metrics"
	"fresh-motors-web/internal/resilience/retry"
)

// Refreshable is what the refresher schedules: a named entry that can
// reload itself. Every Entry[V] satisfies it.
type Refreshable interface {
	Name() string
	Refresh(ctx context.Context) error
}

// Refresher reloads cache entries on a cron schedule so readers rarely
// pay for a cold load. Refresh failures keep the old value in place;
// the retry here is acceptable because no request waits on this path.
type Refresher struct {
	schedule string
	timeout  time.Duration
	entries  []Refreshable
	logger   *slog.Logger
	cron     *cron.Cron
}

// NewRefresher creates a refresher for the given entries. schedule is a
// standard 5-field cron expression; timeout bounds one full refresh
// sweep.
func NewRefresher(schedule string, timeout time.Duration, logger *slog.Logger, entries ...Refreshable) *Refresher {
	return &Refresher{
		schedule: schedule,
		timeout:  timeout,
		entries:  entries,
		logger:   logger,
	}
}

// RunOnce refreshes every entry immediately. The server calls it at
// boot so the first visitor never waits on a cold cache.
func (r *Refresher) RunOnce(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for _, entry := range r.entries {
		r.refreshEntry(sweepCtx, entry)
	}
}

// Start schedules the periodic refresh. Returns an error only for an
// invalid cron expression.
func (r *Refresher) Start() error {
	c := cron.New()
	_, err := c.AddFunc(r.schedule, func() {
		r.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}
	c.Start()
	r.cron = c

	r.logger.Info("cache refresher started",
		slog.String("schedule", r.schedule),
		slog.Int("entries", len(r.entries)),
	)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish or
// ctx to end, whichever comes first.
func (r *Refresher) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *Refresher) refreshEntry(ctx context.Context, entry Refreshable) {
	start := time.Now()
	err := retry.WithBackoff(ctx, retry.CacheWarmConfig(), func() error {
		return entry.Refresh(ctx)
	})
	metrics.RecordCacheRefresh(entry.Name(), err == nil, time.Since(start))

	if err != nil {
		// 古い値は残したまま。次のtickで再試行する。
		r.logger.Warn("cache refresh failed, keeping stale value",
			slog.String("entry", entry.Name()),
			slog.Any("error", err),
		)
		return
	}
	r.logger.Debug("cache entry refreshed",
		slog.String("entry", entry.Name()),
		slog.Duration("took", time.Since(start)),
	)
}
