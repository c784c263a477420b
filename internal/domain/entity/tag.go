package entity

// Tag is a label attached to articles. Tags may belong to a TagGroup;
// ungrouped tags carry a zero GroupID.
type Tag struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	GroupID      int64  `json:"group_id,omitempty"`
	SortOrder    int    `json:"sort_order"`
	ArticleCount int64  `json:"articles_count"`
}

// Validate checks tag fields before create/update requests.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(t.Name) > 100 {
		return &ValidationError{Field: "name", Message: "name must not exceed 100 characters"}
	}
	if t.Slug != "" {
		if err := ValidateSlug(t.Slug); err != nil {
			return err
		}
	}
	return nil
}

// TagGroup is a named bucket of tags used by the tag manager UI
// (e.g. "Brands", "Body styles").
type TagGroup struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

// Validate checks tag group fields before create/update requests.
func (g *TagGroup) Validate() error {
	if g.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(g.Name) > 100 {
		return &ValidationError{Field: "name", Message: "name must not exceed 100 characters"}
	}
	if g.Slug != "" {
		if err := ValidateSlug(g.Slug); err != nil {
			return err
		}
	}
	return nil
}

// Category is the single primary rubric of an article. Unlike tags an
// article carries at most one category.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	ArticleCount int64  `json:"articles_count"`
}
