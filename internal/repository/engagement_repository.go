package repository

import (
	"context"

	"fresh-motors-web/internal/domain/entity"
)

type CommentRepository interface {
	// ListApproved retrieves the approved comments of an article for
	// public rendering, oldest first.
	ListApproved(ctx context.Context, articleID int64) ([]*entity.Comment, error)
	// ListPending retrieves unmoderated comments for the admin queue.
	ListPending(ctx context.Context, offset, limit int) ([]*entity.Comment, int64, error)
	Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type RatingRepository interface {
	// Rate casts a score for an article and returns the new aggregate.
	// The backend deduplicates repeated votes per visitor.
	Rate(ctx context.Context, articleID int64, visitorID string, score int) (*entity.Rating, error)
	Get(ctx context.Context, articleID int64) (*entity.Rating, error)
}

type FavoriteRepository interface {
	// Toggle flips the favorite state for a visitor and returns the new
	// state plus the article's favorite count.
	Toggle(ctx context.Context, articleID int64, visitorID string) (favorited bool, count int64, err error)
	ListByVisitor(ctx context.Context, visitorID string) ([]*entity.Article, error)
}

type SubscriberRepository interface {
	List(ctx context.Context, query string, offset, limit int) ([]*entity.Subscriber, int64, error)
	Subscribe(ctx context.Context, email string) (*entity.Subscriber, error)
	Confirm(ctx context.Context, token string) error
	Unsubscribe(ctx context.Context, token string) error
	Delete(ctx context.Context, id int64) error
}
