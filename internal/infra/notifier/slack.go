package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"fresh-motors-web/internal/observability/metrics"

	"github.com/google/uuid"
)

// SlackNotifier posts events to Slack via Incoming Webhook using Block Kit.
type SlackNotifier struct {
	webhookURL  string
	siteURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// NewSlackNotifier builds the Slack channel. The rate limiter matches
// the Incoming Webhook allowance of one message per second.
func NewSlackNotifier(cfg Config, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: cfg.SlackWebhookURL,
		siteURL:    cfg.SiteURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 1), // 1 req/s, burst of 1
		logger:      logger,
	}
}

// SlackWebhookPayload represents the JSON payload sent to Slack webhook using Block Kit.
type SlackWebhookPayload struct {
	Text   string       `json:"text"`   // Fallback text (required)
	Blocks []SlackBlock `json:"blocks"` // Rich formatting blocks
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`               // "section", "context", "divider"
	Text     *SlackTextObject  `json:"text,omitempty"`     // Text content (for section)
	Elements []SlackTextObject `json:"elements,omitempty"` // Elements (for context)
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"` // Actual text content
}

const (
	// Slack Block Kit limits
	maxSectionTextLength = 3000
	maxFallbackLength    = 150

	// Truncation suffix
	slackTruncationSuffix = "..."
)

// buildBlockKitPayload creates a Slack webhook payload from an event.
//
// The payload carries a short fallback line for OS notifications, a
// section block with the linked title and the detail text, and a
// context block with the kind heading and timestamp.
func (s *SlackNotifier) buildBlockKitPayload(ev Event) SlackWebhookPayload {
	head := heading(ev.Kind)

	fallbackText := truncateText(fmt.Sprintf("%s: %s", head, ev.Title), maxFallbackLength, slackTruncationSuffix)

	// Section: *<url|title>*\n\ndetail
	titleLine := fmt.Sprintf("*%s*", ev.Title)
	if link := absoluteURL(s.siteURL, ev.URL); link != "" {
		titleLine = fmt.Sprintf("*<%s|%s>*", link, ev.Title)
	}
	sectionText := titleLine
	if ev.Detail != "" {
		sectionText = fmt.Sprintf("%s\n\n%s", titleLine, ev.Detail)
	}
	sectionText = truncateText(sectionText, maxSectionTextLength, slackTruncationSuffix)

	contextText := fmt.Sprintf("%s • %s", head, eventTime(ev).Format(time.RFC3339))

	sectionBlock := SlackBlock{
		Type: "section",
		Text: &SlackTextObject{
			Type: "mrkdwn",
			Text: sectionText,
		},
	}

	contextBlock := SlackBlock{
		Type: "context",
		Elements: []SlackTextObject{
			{
				Type: "mrkdwn",
				Text: contextText,
			},
		},
	}

	return SlackWebhookPayload{
		Text:   fallbackText,
		Blocks: []SlackBlock{sectionBlock, contextBlock},
	}
}

// sendWebhookRequest sends one Slack webhook request.
//
// Error types:
//   - 429: Rate limit error (retryable, contains retry_after duration)
//   - 4xx (non-429): Client error (non-retryable)
//   - 5xx: Server error (retryable)
//   - Network error: Connection/timeout error (retryable)
func (s *SlackNotifier) sendWebhookRequest(ctx context.Context, ev Event) error {
	payload := s.buildBlockKitPayload(ev)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read response body for error messages
	body, _ := io.ReadAll(resp.Body)

	// Success (Slack returns "ok" as plain text on success)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Rate limit error (429)
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := extractRetryAfter(resp, body)
		return &RateLimitError{
			Message:    "Slack rate limit exceeded",
			RetryAfter: retryAfter,
		}
	}

	// Client error (4xx, non-retryable)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API client error: %s", string(body)),
		}
	}

	// Server error (5xx, retryable)
	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Slack API server error: %s", string(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// sendWebhookRequestWithRetry sends a Slack webhook request with retry logic.
//
// Retry strategy:
//   - Max attempts: 2
//   - Base delay: 5 seconds
//   - 429 errors: Use retry_after from the response (or Retry-After header)
//   - Server errors (5xx): Exponential backoff (5s, 10s)
//   - Client errors (4xx): No retry, fail immediately
func (s *SlackNotifier) sendWebhookRequestWithRetry(ctx context.Context, ev Event) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.sendWebhookRequest(ctx, ev)

		// Success
		if err == nil {
			s.logger.Info("slack notification delivered",
				slog.String("request_id", requestID),
				slog.String("kind", string(ev.Kind)),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		// Handle rate limit error (429)
		if rateLimitErr, ok := is429Error(err); ok {
			s.logger.Warn("slack rate limit hit, backing off",
				slog.String("request_id", requestID),
				slog.String("kind", string(ev.Kind)),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))

			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		// Handle non-retryable errors (4xx client errors)
		if !isRetryableError(err) {
			s.logger.Error("slack notification failed, non-retryable",
				slog.String("request_id", requestID),
				slog.String("kind", string(ev.Kind)),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		// Retry on retryable errors (5xx server errors, network errors)
		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			s.logger.Warn("slack request failed, retrying",
				slog.String("request_id", requestID),
				slog.String("kind", string(ev.Kind)),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	// All retries exhausted
	s.logger.Error("slack notification failed after all retries",
		slog.String("request_id", requestID),
		slog.String("kind", string(ev.Kind)),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return fmt.Errorf("slack notification failed after %d attempts: %w", maxAttempts, lastErr)
}

// Notify implements the Notifier interface. It applies rate limiting,
// posts the event with retry and records the delivery outcome metric.
func (s *SlackNotifier) Notify(ctx context.Context, ev Event) error {
	// Unique request ID for tracing the delivery through the logs
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	s.logger.Info("sending slack notification",
		slog.String("request_id", requestID),
		slog.String("kind", string(ev.Kind)),
		slog.String("title", ev.Title))

	if err := s.rateLimiter.Allow(ctx); err != nil {
		s.logger.Error("slack rate limiter wait failed",
			slog.String("request_id", requestID),
			slog.String("kind", string(ev.Kind)),
			slog.Any("error", err))
		metrics.RecordNotification("slack", false)
		return fmt.Errorf("rate limiter error: %w", err)
	}

	err := s.sendWebhookRequestWithRetry(ctx, ev)
	metrics.RecordNotification("slack", err == nil)
	return err
}
