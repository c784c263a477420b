// Package taxonomy provides the read-only category and tag JSON
// endpoints. The tags index page filters by letter through it without a
// full page load; the mobile menu fetches categories lazily.
package taxonomy

import "fresh-motors-web/internal/domain/entity"

// CategoryDTO is one category as the navigation scripts consume it.
type CategoryDTO struct {
	ID            int64  `json:"id" example:"3"`
	Name          string `json:"name" example:"Новинки"`
	Slug          string `json:"slug" example:"novinki"`
	URL           string `json:"url" example:"/category/novinki"`
	ArticlesCount int64  `json:"articles_count"`
}

// TagDTO is one tag as the tag cloud renders it.
type TagDTO struct {
	ID            int64  `json:"id" example:"17"`
	Name          string `json:"name" example:"Lada"`
	Slug          string `json:"slug" example:"lada"`
	URL           string `json:"url" example:"/tag/lada"`
	ArticlesCount int64  `json:"articles_count"`
}

// TagGroupDTO is one named group with its tags in sort order.
type TagGroupDTO struct {
	ID   int64    `json:"id"`
	Name string   `json:"name"`
	Tags []TagDTO `json:"tags"`
}

// TagsResponse is the full tag listing: the letter strip always covers
// the whole tag set even when a letter filter narrowed the groups.
type TagsResponse struct {
	Letters   []string      `json:"letters"`
	Groups    []TagGroupDTO `json:"groups"`
	Ungrouped []TagDTO      `json:"ungrouped"`
}

func toCategoryDTOs(categories []*entity.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryDTO{
			ID:            c.ID,
			Name:          c.Name,
			Slug:          c.Slug,
			URL:           "/category/" + c.Slug,
			ArticlesCount: c.ArticleCount,
		})
	}
	return out
}

func toTagDTOs(tags []*entity.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagDTO{
			ID:            t.ID,
			Name:          t.Name,
			Slug:          t.Slug,
			URL:           "/tag/" + t.Slug,
			ArticlesCount: t.ArticleCount,
		})
	}
	return out
}
