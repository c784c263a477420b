package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"fresh-motors-web/internal/domain/entity"
)

// CommentsClient implements repository.CommentRepository.
type CommentsClient struct {
	*Client
}

// NewCommentsClient creates a comment repository backed by the REST API.
func NewCommentsClient(c *Client) *CommentsClient {
	return &CommentsClient{Client: c}
}

// ListApproved retrieves the approved comments of an article, oldest first.
func (cm *CommentsClient) ListApproved(ctx context.Context, articleID int64) ([]*entity.Comment, error) {
	var envelope listEnvelope[*entity.Comment]
	if err := cm.get(ctx, fmt.Sprintf("/articles/%d/comments/", articleID), nil, &envelope); err != nil {
		return nil, fmt.Errorf("list comments for article %d: %w", articleID, err)
	}
	return envelope.Results, nil
}

// ListPending retrieves unmoderated comments for the admin queue.
func (cm *CommentsClient) ListPending(ctx context.Context, offset, limit int) ([]*entity.Comment, int64, error) {
	query := url.Values{}
	query.Set("is_approved", "false")
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var envelope listEnvelope[*entity.Comment]
	if err := cm.get(ctx, "/comments/", query, &envelope); err != nil {
		return nil, 0, fmt.Errorf("list pending comments: %w", err)
	}
	return envelope.Results, envelope.Count, nil
}

// Create submits a visitor comment. It lands in the moderation queue
// unapproved.
func (cm *CommentsClient) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	var created entity.Comment
	path := fmt.Sprintf("/articles/%d/comments/", comment.ArticleID)
	if err := cm.post(ctx, path, comment, &created); err != nil {
		return nil, fmt.Errorf("create comment on article %d: %w", comment.ArticleID, err)
	}
	return &created, nil
}

// Approve marks a pending comment as approved.
func (cm *CommentsClient) Approve(ctx context.Context, id int64) error {
	if err := cm.post(ctx, fmt.Sprintf("/comments/%d/approve/", id), nil, nil); err != nil {
		return fmt.Errorf("approve comment %d: %w", id, err)
	}
	return nil
}

// Delete removes a comment.
func (cm *CommentsClient) Delete(ctx context.Context, id int64) error {
	if err := cm.delete(ctx, fmt.Sprintf("/comments/%d/", id)); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}

// RatingsClient implements repository.RatingRepository.
type RatingsClient struct {
	*Client
}

// NewRatingsClient creates a rating repository backed by the REST API.
func NewRatingsClient(c *Client) *RatingsClient {
	return &RatingsClient{Client: c}
}

// Rate casts a score for an article and returns the new aggregate.
func (r *RatingsClient) Rate(ctx context.Context, articleID int64, visitorID string, score int) (*entity.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: score must be between 1 and 5", entity.ErrInvalidInput)
	}
	body := map[string]interface{}{
		"score":      score,
		"visitor_id": visitorID,
	}
	var rating entity.Rating
	if err := r.post(ctx, fmt.Sprintf("/articles/%d/rating/", articleID), body, &rating); err != nil {
		return nil, fmt.Errorf("rate article %d: %w", articleID, err)
	}
	return &rating, nil
}

// Get retrieves the rating aggregate of an article.
func (r *RatingsClient) Get(ctx context.Context, articleID int64) (*entity.Rating, error) {
	var rating entity.Rating
	if err := r.get(ctx, fmt.Sprintf("/articles/%d/rating/", articleID), nil, &rating); err != nil {
		return nil, fmt.Errorf("get rating for article %d: %w", articleID, err)
	}
	return &rating, nil
}

// FavoritesClient implements repository.FavoriteRepository.
type FavoritesClient struct {
	*Client
}

// NewFavoritesClient creates a favorite repository backed by the REST API.
func NewFavoritesClient(c *Client) *FavoritesClient {
	return &FavoritesClient{Client: c}
}

// toggleResponse is the backend answer to a favorite toggle.
type toggleResponse struct {
	Favorited bool  `json:"favorited"`
	Count     int64 `json:"count"`
}

// Toggle flips the favorite state for a visitor and returns the new state
// plus the article's favorite count.
func (f *FavoritesClient) Toggle(ctx context.Context, articleID int64, visitorID string) (bool, int64, error) {
	body := map[string]string{"visitor_id": visitorID}
	var result toggleResponse
	if err := f.post(ctx, fmt.Sprintf("/articles/%d/favorite/", articleID), body, &result); err != nil {
		return false, 0, fmt.Errorf("toggle favorite on article %d: %w", articleID, err)
	}
	return result.Favorited, result.Count, nil
}

// ListByVisitor retrieves the articles a visitor has favorited.
func (f *FavoritesClient) ListByVisitor(ctx context.Context, visitorID string) ([]*entity.Article, error) {
	query := url.Values{}
	query.Set("visitor_id", visitorID)

	var envelope listEnvelope[*entity.Article]
	if err := f.get(ctx, "/favorites/", query, &envelope); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return envelope.Results, nil
}

// SubscribersClient implements repository.SubscriberRepository.
type SubscribersClient struct {
	*Client
}

// NewSubscribersClient creates a subscriber repository backed by the REST API.
func NewSubscribersClient(c *Client) *SubscribersClient {
	return &SubscribersClient{Client: c}
}

// List retrieves one page of subscribers, optionally filtered by email substring.
func (s *SubscribersClient) List(ctx context.Context, search string, offset, limit int) ([]*entity.Subscriber, int64, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	if search != "" {
		query.Set("search", search)
	}

	var envelope listEnvelope[*entity.Subscriber]
	if err := s.get(ctx, "/subscribers/", query, &envelope); err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	return envelope.Results, envelope.Count, nil
}

// Subscribe registers a new email address. The backend sends the
// confirmation mail.
func (s *SubscribersClient) Subscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	if err := entity.ValidateEmail(email); err != nil {
		return nil, err
	}
	body := map[string]string{"email": email}
	var subscriber entity.Subscriber
	if err := s.post(ctx, "/subscribers/", body, &subscriber); err != nil {
		return nil, fmt.Errorf("subscribe %q: %w", email, err)
	}
	return &subscriber, nil
}

// Confirm redeems a confirmation token from the double-opt-in mail.
func (s *SubscribersClient) Confirm(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	if err := s.post(ctx, "/subscribers/confirm/", body, nil); err != nil {
		return fmt.Errorf("confirm subscription: %w", err)
	}
	return nil
}

// Unsubscribe redeems an unsubscribe token from a newsletter footer link.
func (s *SubscribersClient) Unsubscribe(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	if err := s.post(ctx, "/subscribers/unsubscribe/", body, nil); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

// Delete removes a subscriber from the admin list.
func (s *SubscribersClient) Delete(ctx context.Context, id int64) error {
	if err := s.delete(ctx, fmt.Sprintf("/subscribers/%d/", id)); err != nil {
		return fmt.Errorf("delete subscriber %d: %w", id, err)
	}
	return nil
}
