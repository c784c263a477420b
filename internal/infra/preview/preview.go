// Package preview fetches and summarizes source pages for the article
// generation form. Before an operator submits a URL for generation, the
// admin UI shows what the server can actually read from it: title, site
// name and an excerpt of the extracted text. The fetch runs server-side,
// so every URL is treated as hostile input: SSRF validation, redirect
// re-validation, size caps and a circuit breaker around the source host.
package preview

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"

	"fresh-motors-web/internal/resilience/circuitbreaker"
	"fresh-motors-web/internal/utils/text"
)

const userAgent = "FreshMotorsBot/1.0"

// Preview is the readable summary of a source page.
type Preview struct {
	// URL is the final URL after redirects.
	URL string `json:"url"`

	Title    string `json:"title"`
	SiteName string `json:"site_name,omitempty"`
	Byline   string `json:"byline,omitempty"`
	Image    string `json:"image,omitempty"`

	// Excerpt is the leading extracted text, whitespace-collapsed and
	// cut to the configured length.
	Excerpt string `json:"excerpt"`

	// WordCount counts whitespace-delimited words of the full extracted
	// text, not just the excerpt.
	WordCount int `json:"word_count"`
}

// Service fetches source previews. Safe for concurrent use.
type Service struct {
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	cfg     Config
	logger  *slog.Logger
}

// NewService creates a preview service with the given limits.
func NewService(cfg Config, logger *slog.Logger) *Service {
	svc := &Service{
		breaker: circuitbreaker.New(circuitbreaker.SourcePreviewConfig()),
		cfg:     cfg,
		logger:  logger,
	}

	svc.client = &http.Client{
		// Hard cap regardless of the per-request timeout.
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= svc.cfg.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			// Redirect targets get the same SSRF treatment as the
			// original URL.
			if err := validateURL(req.URL.String(), svc.cfg.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target rejected: %w", err)
			}
			return nil
		},
	}

	return svc
}

// Fetch downloads urlStr and extracts a preview of its article content.
// One failing source host eventually opens the breaker for all preview
// requests; the form then reports the source as unavailable instead of
// hanging.
func (s *Service) Fetch(ctx context.Context, urlStr string) (*Preview, error) {
	if err := validateURL(urlStr, s.cfg.DenyPrivateIPs); err != nil {
		return nil, err
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.doFetch(ctx, urlStr)
	})
	if err != nil {
		return nil, err
	}

	return result.(*Preview), nil
}

func (s *Service) doFetch(ctx context.Context, urlStr string) (*Preview, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: no response within %v", ErrTimeout, s.cfg.Timeout)
		}
		// Redirect validation errors arrive wrapped in *url.Error.
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("source request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned HTTP %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, s.cfg.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read source body: %w", err)
	}
	if int64(len(htmlBytes)) > s.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrBodyTooLarge, s.cfg.MaxBodySize)
	}

	// Redirects may have moved the page; extraction and the preview URL
	// should reflect where the content actually lives.
	finalURL, _ := url.Parse(urlStr)
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), finalURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	content := article.TextContent
	if content == "" {
		content = article.Content
	}
	if content == "" {
		return nil, ErrUnreadable
	}

	p := &Preview{
		URL:       finalURL.String(),
		Title:     article.Title,
		SiteName:  article.SiteName,
		Byline:    article.Byline,
		Image:     article.Image,
		Excerpt:   text.Excerpt(content, s.cfg.ExcerptLength),
		WordCount: text.CountWords(content),
	}

	s.logger.Debug("source preview extracted",
		slog.String("url", p.URL),
		slog.String("title", p.Title),
		slog.Int("word_count", p.WordCount),
	)

	return p, nil
}
