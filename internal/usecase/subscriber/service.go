// Package subscriber serves the admin newsletter tools: the searchable
// subscriber list, CSV export and removal. Public signup and token
// redemption live in the engagement service.
package subscriber

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// exportBatchSize is the page size used when draining the full list for a
// CSV export.
const exportBatchSize = 500

// exportMaxRows caps an export so a runaway backend count cannot produce
// an unbounded response.
const exportMaxRows = 100000

// Service provides subscriber administration use cases.
type Service struct {
	Repo repository.SubscriberRepository
}

// Page is one page of the admin subscriber table.
type Page struct {
	Subscribers []*entity.Subscriber
	Query       string
	Pagination  pagination.Metadata
}

// List retrieves one page of subscribers, optionally filtered by email
// substring.
func (s *Service) List(ctx context.Context, query string, params pagination.Params) (*Page, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)
	subscribers, total, err := s.Repo.List(ctx, query, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return &Page{
		Subscribers: subscribers,
		Query:       query,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// ExportCSV drains every subscriber matching query into CSV rows:
// email, confirmed flag, signup time, confirmation time. Returns the
// number of data rows written.
func (s *Service) ExportCSV(ctx context.Context, query string, w *csv.Writer) (int, error) {
	if err := w.Write([]string{"email", "confirmed", "created_at", "confirmed_at"}); err != nil {
		return 0, fmt.Errorf("export subscribers: write header: %w", err)
	}

	rows := 0
	offset := 0
	for {
		batch, _, err := s.Repo.List(ctx, query, offset, exportBatchSize)
		if err != nil {
			return rows, fmt.Errorf("export subscribers at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, sub := range batch {
			confirmedAt := ""
			if sub.ConfirmedAt != nil {
				confirmedAt = sub.ConfirmedAt.UTC().Format(time.RFC3339)
			}
			record := []string{
				sub.Email,
				strconv.FormatBool(sub.IsConfirmed),
				sub.CreatedAt.UTC().Format(time.RFC3339),
				confirmedAt,
			}
			if err := w.Write(record); err != nil {
				return rows, fmt.Errorf("export subscribers: write row: %w", err)
			}
			rows++
			if rows >= exportMaxRows {
				w.Flush()
				return rows, fmt.Errorf("export subscribers: row limit %d reached", exportMaxRows)
			}
		}

		if len(batch) < exportBatchSize {
			break
		}
		offset += exportBatchSize
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return rows, fmt.Errorf("export subscribers: flush: %w", err)
	}
	return rows, nil
}

// Delete removes a subscriber. Admin only; the handler enforces the role.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return fmt.Errorf("%w: subscriber id is required", entity.ErrInvalidInput)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete subscriber %d: %w", id, err)
	}
	return nil
}
