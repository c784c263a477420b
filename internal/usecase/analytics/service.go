// Package analytics serves the admin dashboard. All counters are
// aggregated by the backend; this service only reshapes them for
// rendering, since html/template cannot do the bar-chart arithmetic.
package analytics

import (
	"context"
	"fmt"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// Service provides dashboard use cases.
type Service struct {
	Repo repository.AnalyticsRepository
}

// NewService creates an analytics service.
func NewService(repo repository.AnalyticsRepository) *Service {
	return &Service{Repo: repo}
}

// Dashboard is the overview page model: the backend summary plus
// precomputed bar widths for the daily views chart.
type Dashboard struct {
	Summary     *entity.AnalyticsSummary
	ViewsByDay  []DayBar
	MaxDayViews int64
}

// DayBar is one bar of the daily views chart.
type DayBar struct {
	Day     string
	Views   int64
	Percent int // width relative to the busiest day, 0..100
}

// Overview fetches the backend summary and derives the chart scale.
func (s *Service) Overview(ctx context.Context) (*Dashboard, error) {
	summary, err := s.Repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("load analytics summary: %w", err)
	}

	dash := &Dashboard{Summary: summary}
	for _, day := range summary.ViewsByDay {
		if day.Views > dash.MaxDayViews {
			dash.MaxDayViews = day.Views
		}
	}
	for _, day := range summary.ViewsByDay {
		bar := DayBar{Day: day.Day, Views: day.Views}
		if dash.MaxDayViews > 0 {
			bar.Percent = int(day.Views * 100 / dash.MaxDayViews)
		}
		dash.ViewsByDay = append(dash.ViewsByDay, bar)
	}
	return dash, nil
}
