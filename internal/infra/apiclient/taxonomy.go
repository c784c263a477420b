package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"fresh-motors-web/internal/domain/entity"
)

// TagsClient implements repository.TagRepository against /tags.
type TagsClient struct {
	*Client
}

// NewTagsClient creates a tag repository backed by the REST API.
func NewTagsClient(c *Client) *TagsClient {
	return &TagsClient{Client: c}
}

// List retrieves every tag. The backend list is small enough that the
// endpoint is unpaginated.
func (t *TagsClient) List(ctx context.Context) ([]*entity.Tag, error) {
	var envelope listEnvelope[*entity.Tag]
	if err := t.get(ctx, "/tags/", nil, &envelope); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return envelope.Results, nil
}

// Get retrieves one tag by id.
func (t *TagsClient) Get(ctx context.Context, id int64) (*entity.Tag, error) {
	var tag entity.Tag
	if err := t.get(ctx, fmt.Sprintf("/tags/%d/", id), nil, &tag); err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, err)
	}
	return &tag, nil
}

// Create stores a new tag.
func (t *TagsClient) Create(ctx context.Context, tag *entity.Tag) (*entity.Tag, error) {
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	var created entity.Tag
	if err := t.post(ctx, "/tags/", tag, &created); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return &created, nil
}

// Update applies changed fields of an existing tag.
func (t *TagsClient) Update(ctx context.Context, tag *entity.Tag) (*entity.Tag, error) {
	if tag.ID == 0 {
		return nil, fmt.Errorf("%w: tag id is required", entity.ErrInvalidInput)
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	var updated entity.Tag
	if err := t.patch(ctx, fmt.Sprintf("/tags/%d/", tag.ID), tag, &updated); err != nil {
		return nil, fmt.Errorf("update tag %d: %w", tag.ID, err)
	}
	return &updated, nil
}

// Delete removes a tag. Article associations are dropped backend-side.
func (t *TagsClient) Delete(ctx context.Context, id int64) error {
	if err := t.delete(ctx, fmt.Sprintf("/tags/%d/", id)); err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return nil
}

// TagGroupsClient implements repository.TagGroupRepository against /tag-groups.
type TagGroupsClient struct {
	*Client
}

// NewTagGroupsClient creates a tag group repository backed by the REST API.
func NewTagGroupsClient(c *Client) *TagGroupsClient {
	return &TagGroupsClient{Client: c}
}

// List retrieves every tag group ordered by sort_order.
func (g *TagGroupsClient) List(ctx context.Context) ([]*entity.TagGroup, error) {
	var envelope listEnvelope[*entity.TagGroup]
	if err := g.get(ctx, "/tag-groups/", nil, &envelope); err != nil {
		return nil, fmt.Errorf("list tag groups: %w", err)
	}
	return envelope.Results, nil
}

// Create stores a new tag group.
func (g *TagGroupsClient) Create(ctx context.Context, group *entity.TagGroup) (*entity.TagGroup, error) {
	if err := group.Validate(); err != nil {
		return nil, err
	}
	var created entity.TagGroup
	if err := g.post(ctx, "/tag-groups/", group, &created); err != nil {
		return nil, fmt.Errorf("create tag group: %w", err)
	}
	return &created, nil
}

// Update applies changed fields of an existing tag group.
func (g *TagGroupsClient) Update(ctx context.Context, group *entity.TagGroup) (*entity.TagGroup, error) {
	if group.ID == 0 {
		return nil, fmt.Errorf("%w: tag group id is required", entity.ErrInvalidInput)
	}
	if err := group.Validate(); err != nil {
		return nil, err
	}
	var updated entity.TagGroup
	if err := g.patch(ctx, fmt.Sprintf("/tag-groups/%d/", group.ID), group, &updated); err != nil {
		return nil, fmt.Errorf("update tag group %d: %w", group.ID, err)
	}
	return &updated, nil
}

// Delete removes a tag group. Tags in the group become ungrouped.
func (g *TagGroupsClient) Delete(ctx context.Context, id int64) error {
	if err := g.delete(ctx, fmt.Sprintf("/tag-groups/%d/", id)); err != nil {
		return fmt.Errorf("delete tag group %d: %w", id, err)
	}
	return nil
}

// CategoriesClient implements repository.CategoryRepository against /categories.
type CategoriesClient struct {
	*Client
}

// NewCategoriesClient creates a category repository backed by the REST API.
func NewCategoriesClient(c *Client) *CategoriesClient {
	return &CategoriesClient{Client: c}
}

// List retrieves every category.
func (cc *CategoriesClient) List(ctx context.Context) ([]*entity.Category, error) {
	var envelope listEnvelope[*entity.Category]
	if err := cc.get(ctx, "/categories/", nil, &envelope); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return envelope.Results, nil
}

// GetBySlug retrieves one category by its public slug.
func (cc *CategoriesClient) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	if err := cc.get(ctx, "/categories/"+url.PathEscape(slug)+"/", nil, &category); err != nil {
		return nil, fmt.Errorf("get category %q: %w", slug, err)
	}
	return &category, nil
}
