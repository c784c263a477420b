package entity

import "time"

// Comment is one reader comment on an article. New comments enter the
// backend unapproved; public pages only receive approved ones.
type Comment struct {
	ID         int64     `json:"id"`
	ArticleID  int64     `json:"article_id"`
	Author     string    `json:"author_name"`
	Email      string    `json:"author_email,omitempty"`
	Body       string    `json:"text"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// コメント本文の上限。バックエンド側の制限と揃える。
const maxCommentLength = 3000

// Validate checks the comment form input before submission.
func (c *Comment) Validate() error {
	if c.Author == "" {
		return &ValidationError{Field: "author_name", Message: "name is required"}
	}
	if len(c.Author) > 100 {
		return &ValidationError{Field: "author_name", Message: "name must not exceed 100 characters"}
	}
	if c.Email != "" {
		if err := ValidateEmail(c.Email); err != nil {
			return err
		}
	}
	if c.Body == "" {
		return &ValidationError{Field: "text", Message: "comment text is required"}
	}
	if len([]rune(c.Body)) > maxCommentLength {
		return &ValidationError{Field: "text", Message: "comment is too long"}
	}
	return nil
}

// Rating carries the aggregate rating of an article plus, on submission
// responses, the score the caller just cast.
type Rating struct {
	ArticleID int64   `json:"article_id"`
	Score     int     `json:"score,omitempty"`
	Average   float64 `json:"average"`
	Count     int64   `json:"count"`
}

// Validate checks a rating submission.
func (r *Rating) Validate() error {
	if r.Score < 1 || r.Score > 5 {
		return &ValidationError{Field: "score", Message: "score must be between 1 and 5"}
	}
	return nil
}

// Favorite marks an article as favorited by an anonymous visitor.
// VisitorID comes from a first-party cookie, not from an account.
type Favorite struct {
	ArticleID int64     `json:"article_id"`
	VisitorID string    `json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}
