package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fresh-motors-web/internal/observability/metrics"

	"github.com/google/uuid"
)

// DiscordNotifier posts events to a Discord channel webhook as embeds.
type DiscordNotifier struct {
	webhookURL  string
	siteURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// NewDiscordNotifier builds the Discord channel. The rate limiter stays
// under the webhook allowance of 30 requests per minute.
func NewDiscordNotifier(cfg Config, logger *slog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: cfg.DiscordWebhookURL,
		siteURL:    cfg.SiteURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: NewRateLimiter(0.5, 3), // 0.5 req/s (30 req/min), burst of 3
		logger:      logger,
	}
}

// DiscordWebhookPayload represents the JSON payload sent to Discord webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord embed message.
type DiscordEmbed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Color       int                `json:"color"`
	Footer      DiscordEmbedFooter `json:"footer"`
	Timestamp   string             `json:"timestamp"`
}

// DiscordEmbedFooter represents the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// DiscordErrorResponse represents the error response from Discord API.
type DiscordErrorResponse struct {
	Message    string  `json:"message"`
	Code       int     `json:"code"`
	RetryAfter float64 `json:"retry_after"` // In seconds
}

const (
	// Discord limits
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	truncationSuffix     = "..."
)

// Discord palette
const (
	discordBlueColor  = 5793266  // #5865F2
	discordGreenColor = 5763719  // #57F287
	discordRedColor   = 15548997 // #ED4245
)

// discordKindColors picks the embed stripe color per event kind.
var discordKindColors = map[Kind]int{
	KindArticlePublished:   discordGreenColor,
	KindCommentSubmitted:   discordBlueColor,
	KindGenerationFinished: discordGreenColor,
	KindGenerationFailed:   discordRedColor,
}

// buildEmbedPayload creates a Discord webhook payload from an event.
//
// The embed carries the event title (linked), the detail text as
// description, a kind-dependent color and the kind heading as footer.
func (d *DiscordNotifier) buildEmbedPayload(ev Event) DiscordWebhookPayload {
	color, ok := discordKindColors[ev.Kind]
	if !ok {
		color = discordBlueColor
	}

	embed := DiscordEmbed{
		Title:       truncateText(ev.Title, maxTitleLength, ""),
		Description: truncateText(ev.Detail, maxDescriptionLength, truncationSuffix),
		URL:         absoluteURL(d.siteURL, ev.URL),
		Color:       color,
		Footer: DiscordEmbedFooter{
			Text: heading(ev.Kind),
		},
		Timestamp: eventTime(ev).Format(time.RFC3339),
	}

	return DiscordWebhookPayload{
		Embeds: []DiscordEmbed{embed},
	}
}

// sendWebhookRequest sends one Discord webhook request.
//
// Error types:
//   - 429: Rate limit error (retryable, contains retry_after duration)
//   - 4xx (non-429): Client error (non-retryable)
//   - 5xx: Server error (retryable)
//   - Network error: Connection/timeout error (retryable)
func (d *DiscordNotifier) sendWebhookRequest(ctx context.Context, ev Event) error {
	payload := d.buildEmbedPayload(ev)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read response body for error messages
	body, _ := io.ReadAll(resp.Body)

	// Success
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Rate limit error (429)
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := extractRetryAfter(resp, body)
		return &RateLimitError{
			Message:    "Discord rate limit exceeded",
			RetryAfter: retryAfter,
		}
	}

	// Client error (4xx, non-retryable)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API client error: %s", string(body)),
		}
	}

	// Server error (5xx, retryable)
	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Discord API server error: %s", string(body)),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// extractRetryAfter extracts retry_after duration from Discord error response.
// It tries to parse from JSON body first, then falls back to Retry-After header.
// Default is 5s when neither carries a value.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	// Try to parse from JSON response
	var discordErr DiscordErrorResponse
	if err := json.Unmarshal(body, &discordErr); err == nil && discordErr.RetryAfter > 0 {
		return time.Duration(discordErr.RetryAfter * float64(time.Second))
	}

	// Fall back to Retry-After header (in seconds)
	if retryAfterHeader := resp.Header.Get("Retry-After"); retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	// Default retry after 5 seconds
	return 5 * time.Second
}

// sendWebhookRequestWithRetry sends a Discord webhook request with retry logic.
//
// Retry strategy:
//   - Max attempts: 2
//   - Base delay: 5 seconds
//   - 429 errors: Use retry_after from Discord response
//   - Server errors (5xx): Exponential backoff (5s, 10s)
//   - Client errors (4xx): No retry, fail immediately
func (d *DiscordNotifier) sendWebhookRequestWithRetry(ctx context.Context, ev Event) error {
	const (
		maxAttempts = 2
		baseDelay   = 5 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := d.sendWebhookRequest(ctx, ev)

		// Success
		if err == nil {
			d.logger.Info("discord notification delivered",
				slog.String("request_id", requestID),
				slog.String("kind", string(ev.Kind)),
				slog.Int("attempt", attempt))
			return nil
		}

		lastErr = err

		// Handle rate limit error (429)
		if rateLimitErr, ok := is429Error(err); ok {
			d.logger.Warn("discord rate limit hit, backing off",
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
			d.logger.Error("discord notification failed, non-retryable",
				slog.String("request_id", requestID),
				slog.String("kind", string(ev.Kind)),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return err
		}

		// Retry on retryable errors (5xx server errors, network errors)
		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			d.logger.Warn("discord request failed, retrying",
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
	d.logger.Error("discord notification failed after all retries",
		slog.String("request_id", requestID),
		slog.String("kind", string(ev.Kind)),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return fmt.Errorf("discord notification failed after %d attempts: %w", maxAttempts, lastErr)
}

// Notify implements the Notifier interface. It applies rate limiting,
// posts the event with retry and records the delivery outcome metric.
func (d *DiscordNotifier) Notify(ctx context.Context, ev Event) error {
	// Unique request ID for tracing the delivery through the logs
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	d.logger.Info("sending discord notification",
		slog.String("request_id", requestID),
		slog.String("kind", string(ev.Kind)),
		slog.String("title", ev.Title))

	if err := d.rateLimiter.Allow(ctx); err != nil {
		d.logger.Error("discord rate limiter wait failed",
			slog.String("request_id", requestID),
			slog.String("kind", string(ev.Kind)),
			slog.Any("error", err))
		metrics.RecordNotification("discord", false)
		return fmt.Errorf("rate limiter error: %w", err)
	}

	err := d.sendWebhookRequestWithRetry(ctx, ev)
	metrics.RecordNotification("discord", err == nil)
	return err
}
