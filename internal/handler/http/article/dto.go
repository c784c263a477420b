// Package article provides the JSON article endpoints page scripts call:
// the load-more feed behind the public index pages and live search. Both
// return card data only; full bodies are server-rendered.
package article

import (
	"time"

	"fresh-motors-web/internal/domain/entity"
)

// DTO is the article card shape returned to page scripts: everything the
// load-more grid renders, none of the body.
type DTO struct {
	ID            int64      `json:"id" example:"42"`
	Slug          string     `json:"slug" example:"bmw-m5-2026"`
	URL           string     `json:"url" example:"/news/bmw-m5-2026"`
	Title         string     `json:"title" example:"Новый BMW M5 представлен официально"`
	Excerpt       string     `json:"excerpt,omitempty"`
	CoverURL      string     `json:"cover_image,omitempty"`
	CategoryName  string     `json:"category_name,omitempty"`
	CategorySlug  string     `json:"category_slug,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ReadingTime   int        `json:"reading_time,omitempty"`
	ViewsCount    int64      `json:"views_count"`
	CommentsCount int64      `json:"comments_count"`
	RatingAvg     float64    `json:"rating_avg"`
	RatingCount   int64      `json:"rating_count"`
}

func toDTO(a *entity.Article) DTO {
	dto := DTO{
		ID:            a.ID,
		Slug:          a.Slug,
		URL:           "/news/" + a.Slug,
		Title:         a.Title,
		Excerpt:       a.Excerpt,
		CoverURL:      a.CoverURL,
		PublishedAt:   a.PublishedAt,
		ReadingTime:   a.ReadingTime,
		ViewsCount:    a.ViewCount,
		CommentsCount: a.CommentCount,
		RatingAvg:     a.RatingAvg,
		RatingCount:   a.RatingCount,
	}
	if a.Category != nil {
		dto.CategoryName = a.Category.Name
		dto.CategorySlug = a.Category.Slug
	}
	return dto
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}
