// Package engagement serves anonymous reader actions posted from public
// pages: comments, ratings, favorites and newsletter signup, plus the
// fresh-count lookup the article page polls after rendering from cache.
package engagement

import (
	"context"
	"fmt"
	"log/slog"

	"fresh-motors-web/internal/common/pagination"
	"fresh-motors-web/internal/domain/entity"
	"fresh-motors-web/internal/infra/notifier"
	"fresh-motors-web/internal/repository"
	"fresh-motors-web/internal/utils/text"
)

// Service provides engagement use cases. Every write is validated here
// before any network call; the backend remains the authority and may still
// reject with field errors.
type Service struct {
	Articles    repository.ArticleRepository
	Comments    repository.CommentRepository
	Ratings     repository.RatingRepository
	Favorites   repository.FavoriteRepository
	Subscribers repository.SubscriberRepository
	Logger      *slog.Logger

	// Events, when set, hears about new comments entering the
	// moderation queue. Channels log their own delivery failures.
	Events notifier.Notifier
}

// Counts is the fresh engagement state of one article, keyed by slug so
// the page script needs no backend ids.
type Counts struct {
	ArticleID   int64   `json:"article_id"`
	Views       int64   `json:"views_count"`
	Comments    int64   `json:"comments_count"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int64   `json:"rating_count"`
}

// FavoriteState is the result of a toggle.
type FavoriteState struct {
	ArticleID int64 `json:"article_id"`
	Favorited bool  `json:"favorited"`
	Count     int64 `json:"count"`
}

// SubmitComment validates and submits a comment. The comment enters the
// backend moderation queue; the caller renders a "pending review" notice.
func (s *Service) SubmitComment(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	if comment.ArticleID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	created, err := s.Comments.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("submit comment: %w", err)
	}

	if s.Events != nil {
		_ = s.Events.Notify(ctx, notifier.Event{
			Kind:   notifier.KindCommentSubmitted,
			Title:  created.Author,
			Detail: text.Excerpt(created.Body, 200),
			URL:    "/admin/comments",
			At:     created.CreatedAt,
		})
	}

	return created, nil
}

// Rate casts a 1..5 score and returns the new aggregate. The backend
// deduplicates repeat votes by visitor id.
func (s *Service) Rate(ctx context.Context, articleID int64, visitorID string, score int) (*entity.Rating, error) {
	if articleID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	if visitorID == "" {
		return nil, fmt.Errorf("%w: visitor id is required", entity.ErrInvalidInput)
	}
	submission := entity.Rating{ArticleID: articleID, Score: score}
	if err := submission.Validate(); err != nil {
		return nil, err
	}
	rating, err := s.Ratings.Rate(ctx, articleID, visitorID, score)
	if err != nil {
		return nil, fmt.Errorf("rate article %d: %w", articleID, err)
	}
	return rating, nil
}

// ToggleFavorite flips the favorite state of an article for a visitor.
func (s *Service) ToggleFavorite(ctx context.Context, articleID int64, visitorID string) (*FavoriteState, error) {
	if articleID == 0 {
		return nil, fmt.Errorf("%w: article id is required", entity.ErrInvalidInput)
	}
	if visitorID == "" {
		return nil, fmt.Errorf("%w: visitor id is required", entity.ErrInvalidInput)
	}
	favorited, count, err := s.Favorites.Toggle(ctx, articleID, visitorID)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite on article %d: %w", articleID, err)
	}
	return &FavoriteState{ArticleID: articleID, Favorited: favorited, Count: count}, nil
}

// FavoritesOf lists the articles a visitor has favorited.
func (s *Service) FavoritesOf(ctx context.Context, visitorID string) ([]*entity.Article, error) {
	if visitorID == "" {
		return nil, nil
	}
	articles, err := s.Favorites.ListByVisitor(ctx, visitorID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return articles, nil
}

// Subscribe validates and registers a newsletter signup. The backend sends
// the confirmation mail.
func (s *Service) Subscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	subscriber, err := s.Subscribers.Subscribe(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return subscriber, nil
}

// ConfirmSubscription redeems a double-opt-in token from the mail link.
func (s *Service) ConfirmSubscription(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", entity.ErrInvalidInput)
	}
	if err := s.Subscribers.Confirm(ctx, token); err != nil {
		return fmt.Errorf("confirm subscription: %w", err)
	}
	return nil
}

// Unsubscribe redeems an unsubscribe token from a newsletter footer.
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", entity.ErrInvalidInput)
	}
	if err := s.Subscribers.Unsubscribe(ctx, token); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

// CountsBySlug reloads the engagement numbers of one article. The rating
// aggregate fails soft onto the article's own counters, which may lag by
// one cache interval.
func (s *Service) CountsBySlug(ctx context.Context, slug string) (*Counts, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", entity.ErrInvalidInput)
	}

	art, err := s.Articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article by slug: %w", err)
	}

	counts := &Counts{
		ArticleID:   art.ID,
		Views:       art.ViewCount,
		Comments:    art.CommentCount,
		RatingAvg:   art.RatingAvg,
		RatingCount: art.RatingCount,
	}

	rating, err := s.Ratings.Get(ctx, art.ID)
	if err != nil {
		s.Logger.Debug("engagement counts: rating fetch failed",
			slog.String("slug", slug),
			slog.Any("error", err))
		return counts, nil
	}
	counts.RatingAvg = rating.Average
	counts.RatingCount = rating.Count

	return counts, nil
}

// ModerationPage is one page of the admin comment queue.
type ModerationPage struct {
	Comments   []*entity.Comment
	Pagination pagination.Metadata
}

// PendingComments lists unmoderated comments for the admin queue,
// newest first as the backend serves them.
func (s *Service) PendingComments(ctx context.Context, params pagination.Params) (*ModerationPage, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)
	comments, total, err := s.Comments.ListPending(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list pending comments: %w", err)
	}
	return &ModerationPage{
		Comments: comments,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// ApproveComment releases a comment from the moderation queue.
func (s *Service) ApproveComment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: comment id is required", entity.ErrInvalidInput)
	}
	if err := s.Comments.Approve(ctx, id); err != nil {
		return fmt.Errorf("approve comment %d: %w", id, err)
	}
	return nil
}

// DeleteComment drops a comment, approved or not.
func (s *Service) DeleteComment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: comment id is required", entity.ErrInvalidInput)
	}
	if err := s.Comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}
