package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/repository"
)

// ArticlesClient implements repository.ArticleRepository against the
// backend's /articles endpoints.
type ArticlesClient struct {
	*Client
}

// NewArticlesClient creates an article repository backed by the REST API.
func NewArticlesClient(c *Client) *ArticlesClient {
	return &ArticlesClient{Client: c}
}

// GetBySlug retrieves one article by its public slug.
func (a *ArticlesClient) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	var article entity.Article
	if err := a.get(ctx, "/articles/"+url.PathEscape(slug)+"/", nil, &article); err != nil {
		return nil, fmt.Errorf("get article %q: %w", slug, err)
	}
	return &article, nil
}

// GetByID retrieves one article by its numeric id.
func (a *ArticlesClient) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	var article entity.Article
	if err := a.get(ctx, fmt.Sprintf("/articles/%d/", id), nil, &article); err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	return &article, nil
}

// List retrieves one page of articles ordered by published_at DESC.
func (a *ArticlesClient) List(ctx context.Context, filters repository.ArticleFilters, offset, limit int) (*repository.ArticleListing, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	if filters.CategorySlug != "" {
		query.Set("category", filters.CategorySlug)
	}
	if filters.TagSlug != "" {
		query.Set("tag", filters.TagSlug)
	}
	if filters.Query != "" {
		query.Set("search", filters.Query)
	}
	if filters.PublishedOnly {
		query.Set("is_published", "true")
	}

	var envelope listEnvelope[*entity.Article]
	if err := a.get(ctx, "/articles/", query, &envelope); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return &repository.ArticleListing{
		Articles: envelope.Results,
		Total:    envelope.Count,
	}, nil
}

// Related retrieves articles sharing category or tags with the given one.
func (a *ArticlesClient) Related(ctx context.Context, id int64, limit int) ([]*entity.Article, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var envelope listEnvelope[*entity.Article]
	if err := a.get(ctx, fmt.Sprintf("/articles/%d/related/", id), query, &envelope); err != nil {
		return nil, fmt.Errorf("list related articles for %d: %w", id, err)
	}
	return envelope.Results, nil
}

// Slugs retrieves every published slug with its last-modified time.
func (a *ArticlesClient) Slugs(ctx context.Context) ([]repository.ArticleRef, error) {
	var refs []repository.ArticleRef
	if err := a.get(ctx, "/articles/slugs/", nil, &refs); err != nil {
		return nil, fmt.Errorf("list article slugs: %w", err)
	}
	return refs, nil
}

// Create stores a new article draft.
func (a *ArticlesClient) Create(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	if err := article.Validate(); err != nil {
		return nil, err
	}
	var created entity.Article
	if err := a.post(ctx, "/articles/", article, &created); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return &created, nil
}

// Update applies changed fields of an existing article.
func (a *ArticlesClient) Update(ctx context.Context, article *entity.Article) (*entity.Article, error) {
	if article.ID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}
	var updated entity.Article
	if err := a.patch(ctx, fmt.Sprintf("/articles/%d/", article.ID), article, &updated); err != nil {
		return nil, fmt.Errorf("update article %d: %w", article.ID, err)
	}
	return &updated, nil
}

// Delete removes an article.
func (a *ArticlesClient) Delete(ctx context.Context, id int64) error {
	if err := a.delete(ctx, fmt.Sprintf("/articles/%d/", id)); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

// SetPublished flips the publication state of an article.
func (a *ArticlesClient) SetPublished(ctx context.Context, id int64, published bool) error {
	body := map[string]bool{"is_published": published}
	if err := a.post(ctx, fmt.Sprintf("/articles/%d/publish/", id), body, nil); err != nil {
		return fmt.Errorf("set article %d published=%v: %w", id, published, err)
	}
	return nil
}

// IncrementView bumps the backend view counter with the short view timeout,
// so a slow backend never delays the page response it is attached to.
func (a *ArticlesClient) IncrementView(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/articles/%d/view/", id)
	if err := a.doWithTimeout(ctx, a.viewTimeout, "POST", path, nil, nil, nil); err != nil {
		return fmt.Errorf("increment view for article %d: %w", id, err)
	}
	return nil
}
