// Package youtube resolves YouTube video metadata for the generation
// flow. Source URLs submitted with kind "youtube" are checked and
// enriched here: the video ID is parsed from any of the common URL
// shapes and title/channel/thumbnail come from the public oEmbed
// endpoint, which needs no API key.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"fresh-motors-web/internal/resilience/circuitbreaker"
)

// Sentinel errors for video resolution.
var (
	// ErrNotYouTubeURL indicates the URL does not point at a YouTube
	// video in any recognized form.
	ErrNotYouTubeURL = errors.New("not a YouTube video URL")

	// ErrVideoUnavailable indicates the video exists in form but cannot
	// be used: deleted, private or region-blocked.
	ErrVideoUnavailable = errors.New("video unavailable")
)

const (
	oembedEndpoint = "https://www.youtube.com/oembed"
	lookupTimeout  = 10 * time.Second
	maxOEmbedBody  = 64 * 1024
)

// videoIDPattern matches the fixed 11 character video ID alphabet.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Video is the oEmbed metadata of a single video.
type Video struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// ParseVideoID extracts the video ID from a YouTube URL. Recognized
// shapes:
//
//	https://www.youtube.com/watch?v=ID
//	https://youtu.be/ID
//	https://www.youtube.com/shorts/ID
//	https://www.youtube.com/embed/ID
//	https://www.youtube.com/live/ID
//
// including the m. and music. hosts. Anything else returns
// ErrNotYouTubeURL.
func ParseVideoID(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotYouTubeURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q", ErrNotYouTubeURL, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())

	if host == "youtu.be" {
		id := strings.Trim(u.Path, "/")
		return checkVideoID(id)
	}

	switch host {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "music.youtube.com":
	default:
		return "", fmt.Errorf("%w: host %q", ErrNotYouTubeURL, host)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch segments[0] {
	case "watch":
		return checkVideoID(u.Query().Get("v"))
	case "shorts", "embed", "live":
		if len(segments) < 2 {
			return "", fmt.Errorf("%w: missing video segment", ErrNotYouTubeURL)
		}
		return checkVideoID(segments[1])
	}

	return "", fmt.Errorf("%w: unrecognized path %q", ErrNotYouTubeURL, u.Path)
}

func checkVideoID(id string) (string, error) {
	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: malformed video id %q", ErrNotYouTubeURL, id)
	}
	return id, nil
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Client looks up video metadata over oEmbed. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	endpoint   string
	logger     *slog.Logger
}

// NewClient creates an oEmbed metadata client.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: lookupTimeout},
		breaker:    circuitbreaker.New(circuitbreaker.OEmbedConfig()),
		endpoint:   oembedEndpoint,
		logger:     logger,
	}
}

// SetEndpoint overrides the oEmbed endpoint.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = strings.TrimSuffix(endpoint, "/")
}

// Lookup resolves the metadata of the video a URL points to.
func (c *Client) Lookup(ctx context.Context, rawURL string) (*Video, error) {
	id, err := ParseVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	return c.LookupID(ctx, id)
}

// LookupID resolves metadata by video ID.
func (c *Client) LookupID(ctx context.Context, id string) (*Video, error) {
	if _, err := checkVideoID(id); err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchOEmbed(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Video), nil
}

func (c *Client) fetchOEmbed(ctx context.Context, id string) (*Video, error) {
	query := url.Values{}
	query.Set("url", WatchURL(id))
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build oembed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound:
		// oEmbed answers with these for deleted, private and malformed
		// videos; which one varies over time, so they map together.
		return nil, fmt.Errorf("%w: oembed returned %d", ErrVideoUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("oembed returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Title        string `json:"title"`
		AuthorName   string `json:"author_name"`
		AuthorURL    string `json:"author_url"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxOEmbedBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode oembed response: %w", err)
	}

	video := &Video{
		ID:           id,
		URL:          WatchURL(id),
		Title:        body.Title,
		AuthorName:   body.AuthorName,
		AuthorURL:    body.AuthorURL,
		ThumbnailURL: body.ThumbnailURL,
	}

	c.logger.Debug("video metadata resolved",
		slog.String("video_id", id),
		slog.String("title", video.Title),
	)

	return video, nil
}
