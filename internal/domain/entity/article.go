// Package entity defines the domain entities exchanged with the Fresh Motors
// backend API. Entities mirror the JSON documents served under /api/v1; the
// backend owns their lifecycle, this service only renders and submits them.
// Validation here covers what the UI checks before issuing a request.
package entity

import "time"

// Article represents one published or draft article as served by the backend.
// BodyHTML is trusted backend-rendered HTML; relative media URLs inside it are
// rewritten against the API origin before rendering.
type Article struct {
	ID           int64      `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Subtitle     string     `json:"subtitle,omitempty"`
	BodyHTML     string     `json:"content"`
	Excerpt      string     `json:"excerpt,omitempty"`
	CoverURL     string     `json:"cover_image,omitempty"`
	YouTubeURL   string     `json:"youtube_url,omitempty"`
	Category     *Category  `json:"category,omitempty"`
	Tags         []Tag      `json:"tags,omitempty"`
	SourceName   string     `json:"source_name,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	ShowSource   *bool      `json:"show_source,omitempty"`
	IsPublished  bool       `json:"is_published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ViewCount    int64      `json:"views_count"`
	RatingAvg    float64    `json:"rating_avg"`
	RatingCount  int64      `json:"rating_count"`
	CommentCount int64      `json:"comments_count"`
	ReadingTime  int        `json:"reading_time,omitempty"`
}

// DisplaySource reports whether source attribution should be rendered.
// 省略時は表示する（show_sourceが明示的にfalseの場合のみ非表示）。
func (a *Article) DisplaySource() bool {
	return a.SourceName != "" && a.SourceShown()
}

// SourceShown reports the raw show_source flag, defaulting to on when
// unset. The editor checkbox binds here; DisplaySource additionally
// requires a source name.
func (a *Article) SourceShown() bool {
	return a.ShowSource == nil || *a.ShowSource
}

// TagIDs returns the ids of all tags attached to the article.
func (a *Article) TagIDs() []int64 {
	if len(a.Tags) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(a.Tags))
	for _, t := range a.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// HasTag reports whether the tag id is attached to the article. The tag
// picker uses this to restore checkbox state.
func (a *Article) HasTag(id int64) bool {
	for _, t := range a.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Validate checks the fields an editor must fill before the article can be
// submitted to the backend. The backend revalidates on its side.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(a.Title) > 300 {
		return &ValidationError{Field: "title", Message: "title must not exceed 300 characters"}
	}
	if a.Slug != "" {
		if err := ValidateSlug(a.Slug); err != nil {
			return err
		}
	}
	if a.SourceURL != "" {
		if err := ValidateURL(a.SourceURL); err != nil {
			return err
		}
	}
	return nil
}
