package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"fresh-motors-web/internal/cache"
)

type stubEntry struct {
	name      string
	err       error
	refreshes atomic.Int32
}

func (s *stubEntry) Name() string { return s.name }

func (s *stubEntry) Refresh(ctx context.Context) error {
	s.refreshes.Add(1)
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnceRefreshesEveryEntry(t *testing.T) {
	t.Parallel()

	first := &stubEntry{name: "settings"}
	second := &stubEntry{name: "categories"}
	r := cache.NewRefresher("*/10 * * * *", time.Second, discardLogger(), first, second)

	r.RunOnce(context.Background())

	if got := first.refreshes.Load(); got != 1 {
		t.Errorf("first entry refreshed %d times, want 1", got)
	}
	if got := second.refreshes.Load(); got != 1 {
		t.Errorf("second entry refreshed %d times, want 1", got)
	}
}

func TestRunOnceContinuesPastFailures(t *testing.T) {
	t.Parallel()

	failing := &stubEntry{name: "settings", err: errors.New("backend down")}
	healthy := &stubEntry{name: "categories"}
	r := cache.NewRefresher("*/10 * * * *", time.Second, discardLogger(), failing, healthy)

	r.RunOnce(context.Background())

	if got := healthy.refreshes.Load(); got != 1 {
		t.Errorf("healthy entry refreshed %d times after sibling failure, want 1", got)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	r := cache.NewRefresher("not a cron line", time.Second, discardLogger())
	if err := r.Start(); err == nil {
		t.Fatal("Start() with an invalid schedule should fail")
	}
}

func TestStartStopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	entry := &stubEntry{name: "sitemap"}
	r := cache.NewRefresher("*/10 * * * *", time.Second, discardLogger(), entry)

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r.Stop(ctx)
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	t.Parallel()

	r := cache.NewRefresher("*/10 * * * *", time.Second, discardLogger())
	r.Stop(context.Background())
}
