package notifier

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "request_id"

// kindHeadings are the chat headings per event kind. The editorial team
// works in Russian.
var kindHeadings = map[Kind]string{
	KindArticlePublished:   "Статья опубликована",
	KindCommentSubmitted:   "Новый комментарий",
	KindGenerationFinished: "Генерация завершена",
	KindGenerationFailed:   "Ошибка генерации",
}

func heading(k Kind) string {
	if h, ok := kindHeadings[k]; ok {
		return h
	}
	return string(k)
}

// eventTime normalizes the event timestamp; producers may leave At zero.
func eventTime(ev Event) time.Time {
	if ev.At.IsZero() {
		return time.Now()
	}
	return ev.At
}

// absoluteURL rebases a site-relative link onto the canonical origin.
// Links that already carry a scheme pass through untouched. Chat
// clients cannot resolve relative URLs.
func absoluteURL(siteURL, link string) string {
	if link == "" || siteURL == "" {
		return link
	}
	if strings.Contains(link, "://") || strings.HasPrefix(link, "//") {
		return link
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return strings.TrimSuffix(siteURL, "/") + link
}

// truncateText caps text at max runes, appending suffix when cut.
// The chat services count characters, not bytes, and most of our titles
// are Cyrillic.
func truncateText(text string, max int, suffix string) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := max - len([]rune(suffix))
	if cut < 0 {
		cut = 0
	}

	return string(runes[:cut]) + suffix
}

// Common webhook error types used by the Discord and Slack channels

// RateLimitError represents a 429 rate limit error from a webhook service.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string // Optional custom message
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a 4xx client error from a webhook service.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx server error from a webhook service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// is429Error checks if the error is a rate limit error and extracts retry_after.
func is429Error(err error) (*RateLimitError, bool) {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr, true
	}
	return nil, false
}

// isRetryableError checks if the error is worth retrying (5xx server errors, network errors).
// Client errors (4xx) are not retryable except for rate limits (429).
func isRetryableError(err error) bool {
	// Server errors are retryable
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}

	// Client errors are NOT retryable
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}

	// Rate limit errors are handled separately
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return false // Handled by is429Error
	}

	// Network errors, context errors, etc. are retryable
	return true
}
