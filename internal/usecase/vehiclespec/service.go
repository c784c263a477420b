// Package vehiclespec serves the admin spec-sheet form: load, save and
// the extract-from-text helper. Extraction itself is a backend concern;
// this service only moves the parsed sheet into the form.
package vehiclespec

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// maxExtractLength bounds the pasted text sent to the extraction helper.
const maxExtractLength = 20000

// Service provides vehicle spec use cases.
type Service struct {
	Repo repository.VehicleSpecRepository
}

// ForArticle loads the sheet of an article. A missing sheet is not an
// error: the form opens empty, keyed to the article.
func (s *Service) ForArticle(ctx context.Context, articleID int64) (*entity.VehicleSpec, error) {
	if articleID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	spec, err := s.Repo.GetByArticle(ctx, articleID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return &entity.VehicleSpec{ArticleID: articleID}, nil
		}
		return nil, fmt.Errorf("load vehicle spec for article %d: %w", articleID, err)
	}
	return spec, nil
}

// Save validates and upserts the sheet.
func (s *Service) Save(ctx context.Context, spec *entity.VehicleSpec) (*entity.VehicleSpec, error) {
	if spec.ArticleID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	saved, err := s.Repo.Upsert(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("save vehicle spec for article %d: %w", spec.ArticleID, err)
	}
	return saved, nil
}

// Extract posts pasted free text to the backend extraction helper and
// returns the parsed sheet for form population. Nothing is persisted;
// the editor reviews and saves explicitly.
func (s *Service) Extract(ctx context.Context, articleID int64, text string) (*entity.VehicleSpec, error) {
	if articleID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &entity.ValidationError{Field: "text", Message: "paste the text to extract from"}
	}
	if len([]rune(text)) > maxExtractLength {
		return nil, &entity.ValidationError{Field: "text", Message: "text is too long"}
	}

	spec, err := s.Repo.Extract(ctx, articleID, text)
	if err != nil {
		return nil, fmt.Errorf("extract vehicle spec: %w", err)
	}
	if spec.IsEmpty() {
		return nil, &entity.ValidationError{Field: "text", Message: "no specifications recognized in the text"}
	}
	spec.ArticleID = articleID
	return spec, nil
}
