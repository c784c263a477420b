package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/usecase/analytics"
)

type stubRepo struct {
	summary *entity.AnalyticsSummary
	err     error
}

func (s *stubRepo) Summary(context.Context) (*entity.AnalyticsSummary, error) {
	return s.summary, s.err
}

func TestOverviewScalesDailyChart(t *testing.T) {
	t.Parallel()

	svc := analytics.NewService(&stubRepo{summary: &entity.AnalyticsSummary{
		TotalArticles: 42,
		TotalViews:    9000,
		ViewsByDay: []entity.DayViewCount{
			{Day: "2025-06-01", Views: 50},
			{Day: "2025-06-02", Views: 200},
			{Day: "2025-06-03", Views: 0},
		},
	}})

	dash, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error: %v", err)
	}

	if dash.MaxDayViews != 200 {
		t.Errorf("MaxDayViews = %d, want 200", dash.MaxDayViews)
	}
	want := []analytics.DayBar{
		{Day: "2025-06-01", Views: 50, Percent: 25},
		{Day: "2025-06-02", Views: 200, Percent: 100},
		{Day: "2025-06-03", Views: 0, Percent: 0},
	}
	if diff := cmp.Diff(want, dash.ViewsByDay); diff != "" {
		t.Errorf("ViewsByDay mismatch (-want +got):\n%s", diff)
	}
	if dash.Summary.TotalArticles != 42 {
		t.Errorf("Summary.TotalArticles = %d, want backend value untouched", dash.Summary.TotalArticles)
	}
}

func TestOverviewHandlesEmptySeries(t *testing.T) {
	t.Parallel()

	svc := analytics.NewService(&stubRepo{summary: &entity.AnalyticsSummary{}})

	dash, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error: %v", err)
	}
	if dash.MaxDayViews != 0 || len(dash.ViewsByDay) != 0 {
		t.Errorf("empty summary produced bars: %+v", dash)
	}
}

func TestOverviewPropagatesBackendFailure(t *testing.T) {
	t.Parallel()

	svc := analytics.NewService(&stubRepo{err: entity.ErrBackendUnavailable})

	if _, err := svc.Overview(context.Background()); !errors.Is(err, entity.ErrBackendUnavailable) {
		t.Errorf("Overview() error = %v, want backend failure", err)
	}
}
