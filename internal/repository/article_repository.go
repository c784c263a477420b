// Package repository declares the data-access interfaces of the service.
// Every implementation talks to the Fresh Motors backend REST API; the
// interfaces keep usecases independent of the transport so tests can stub
// them with in-memory fakes.
package repository

import (
	"context"

	"fresh-motors-web/internal/domain/entity"
)

// ArticleFilters contains optional filters for article listing.
type ArticleFilters struct {
	CategorySlug  string // Optional: only articles in this category
	TagSlug       string // Optional: only articles carrying this tag
	Query         string // Optional: full-text search string
	PublishedOnly bool   // Public pages set this; admin lists do not
}

// ArticleListing is one page of articles plus the backend's total count,
// which drives pagination metadata.
type ArticleListing struct {
	Articles []*entity.Article
	Total    int64
}

type ArticleRepository interface {
	// GetBySlug retrieves one article by its public slug.
	// Returns entity.ErrNotFound when the backend answers 404.
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	// List retrieves one page of articles ordered by published_at DESC.
	// offset and limit map onto the backend's pagination query params.
	List(ctx context.Context, filters ArticleFilters, offset, limit int) (*ArticleListing, error)
	// Related retrieves articles sharing category or tags with the given
	// one, as selected by the backend.
	Related(ctx context.Context, id int64, limit int) ([]*entity.Article, error)
	// Slugs retrieves every published slug with its last-modified time.
	// Drives the sitemap; the backend serves it as a lightweight list.
	Slugs(ctx context.Context) ([]ArticleRef, error)
	Create(ctx context.Context, article *entity.Article) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) (*entity.Article, error)
	Delete(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published bool) error
	// IncrementView bumps the backend view counter. Failures are not
	// user-visible; callers fire and forget.
	IncrementView(ctx context.Context, id int64) error
}

// ArticleRef is the sitemap-oriented projection of an article.
type ArticleRef struct {
	Slug      string `json:"slug"`
	UpdatedAt string `json:"updated_at"`
}
