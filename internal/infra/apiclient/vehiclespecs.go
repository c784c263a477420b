package apiclient

import (
	"context"
	"fmt"

	"fresh-motors-web/internal/domain/entity"
)

// VehicleSpecsClient implements repository.VehicleSpecRepository.
type VehicleSpecsClient struct {
	*Client
}

// NewVehicleSpecsClient creates a vehicle spec repository backed by the REST API.
func NewVehicleSpecsClient(c *Client) *VehicleSpecsClient {
	return &VehicleSpecsClient{Client: c}
}

// GetByArticle retrieves the spec sheet attached to an article.
// Returns entity.ErrNotFound when no sheet exists yet.
func (v *VehicleSpecsClient) GetByArticle(ctx context.Context, articleID int64) (*entity.VehicleSpec, error) {
	var spec entity.VehicleSpec
	if err := v.get(ctx, fmt.Sprintf("/articles/%d/vehicle-specs/", articleID), nil, &spec); err != nil {
		return nil, fmt.Errorf("get vehicle specs for article %d: %w", articleID, err)
	}
	return &spec, nil
}

// Upsert creates or replaces the spec sheet of an article.
func (v *VehicleSpecsClient) Upsert(ctx context.Context, spec *entity.VehicleSpec) (*entity.VehicleSpec, error) {
	if spec.ArticleID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	var stored entity.VehicleSpec
	path := fmt.Sprintf("/articles/%d/vehicle-specs/", spec.ArticleID)
	if err := v.put(ctx, path, spec, &stored); err != nil {
		return nil, fmt.Errorf("upsert vehicle specs for article %d: %w", spec.ArticleID, err)
	}
	return &stored, nil
}

// Extract posts free text to the backend extraction helper and returns the
// parsed sheet without persisting it.
func (v *VehicleSpecsClient) Extract(ctx context.Context, articleID int64, text string) (*entity.VehicleSpec, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: extraction text is empty", entity.ErrInvalidInput)
	}
	body := map[string]interface{}{
		"article_id": articleID,
		"text":       text,
	}
	var spec entity.VehicleSpec
	if err := v.post(ctx, "/vehicle-specs/extract/", body, &spec); err != nil {
		return nil, fmt.Errorf("extract vehicle specs: %w", err)
	}
	return &spec, nil
}
