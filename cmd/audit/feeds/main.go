// Package main provides a CLI command for validating RSS feeds: the site's
// own feed after a deploy, or any list of feed URLs.
// Usage: fresh-motors-audit-feeds [--base URL] [--max-age DURATION] [--json FILE] [URL ...]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"fresh-motors-web/internal/resilience/retry"
	pkgconfig "fresh-motors-web/pkg/config"
)

// FeedDiagnostic represents the diagnostic result for a single feed.
type FeedDiagnostic struct {
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "HTTP_ERROR", "FETCH_ERROR", "PARSE_ERROR", "EMPTY", "STALE"
	HTTPCode     int    `json:"http_code,omitempty"`
	FeedType     string `json:"feed_type,omitempty"`
	Title        string `json:"title,omitempty"`
	ItemCount    int    `json:"item_count"`
	BrokenItems  int    `json:"broken_items,omitempty"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	// Parse command-line arguments
	var (
		baseURL  string
		maxAge   time.Duration
		jsonPath string
		timeout  time.Duration
	)

	flag.StringVar(&baseURL, "base", pkgconfig.GetEnvString("NEXT_PUBLIC_SITE_URL", "http://localhost:3000"), "Site origin whose /feed.xml is checked by default")
	flag.DurationVar(&maxAge, "max-age", 7*24*time.Hour, "Flag the feed as stale when its newest item is older than this")
	flag.StringVar(&jsonPath, "json", "", "Write the full report to this file as JSON")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-feed fetch deadline")
	flag.Parse()

	logger := initLogger()

	feeds := flag.Args()
	if len(feeds) == 0 {
		feeds = []string{baseURL + "/feed.xml"}
	}

	logger.Info("diagnosing feeds", slog.Int("count", len(feeds)))

	diagnostics := make([]FeedDiagnostic, 0, len(feeds))
	for i, feedURL := range feeds {
		diag := diagnoseFeed(feedURL, timeout, maxAge)
		diagnostics = append(diagnostics, diag)
		printDiagnostic(diag)

		// Rate limiting to be nice to servers
		if i < len(feeds)-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	broken := printSummary(diagnostics)

	if jsonPath != "" {
		if err := writeJSONReport(jsonPath, diagnostics); err != nil {
			logger.Error("failed to write JSON report", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Failed to write JSON report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("JSON report written: %s\n", jsonPath)
	}

	if broken > 0 {
		os.Exit(1)
	}
}

// diagnoseFeed fetches and parses one feed and grades the result.
func diagnoseFeed(feedURL string, timeout, maxAge time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{URL: feedURL}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.UserAgent = "FreshMotorsAudit/1.0"
	fp.Client = &http.Client{Timeout: timeout}

	start := time.Now()
	var feed *gofeed.Feed
	// Right after a deploy the feed can answer 503 for a few seconds
	// while the server warms its cache; retry those before grading.
	err := retry.WithBackoff(ctx, retry.FeedAuditConfig(), func() error {
		var fetchErr error
		feed, fetchErr = fp.ParseURLWithContext(feedURL, ctx)
		return gradeableError(fetchErr)
	})
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		var httpErr *retry.HTTPError
		switch {
		case errors.As(err, &httpErr):
			diag.Status = "HTTP_ERROR"
			diag.HTTPCode = httpErr.StatusCode
		case errors.Is(err, context.DeadlineExceeded):
			diag.Status = "FETCH_ERROR"
			diag.ErrorMessage = fmt.Sprintf("request timeout after %v", timeout)
			return diag
		case errors.Is(err, gofeed.ErrFeedTypeNotDetected):
			diag.Status = "PARSE_ERROR"
		default:
			diag.Status = "FETCH_ERROR"
		}
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.FeedType = feed.FeedType
	diag.Title = feed.Title
	diag.ItemCount = len(feed.Items)

	if len(feed.Items) == 0 {
		diag.Status = "EMPTY"
		diag.ErrorMessage = "feed has no items"
		return diag
	}

	var newest time.Time
	for _, it := range feed.Items {
		if it.Title == "" || it.Link == "" {
			diag.BrokenItems++
		}
		if it.PublishedParsed != nil && it.PublishedParsed.After(newest) {
			newest = *it.PublishedParsed
		}
	}
	if !newest.IsZero() {
		diag.LatestDate = newest.UTC().Format(time.RFC3339)
	}

	switch {
	case diag.BrokenItems > 0:
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = fmt.Sprintf("%d items lack a title or link", diag.BrokenItems)
	case !newest.IsZero() && time.Since(newest) > maxAge:
		diag.Status = "STALE"
		diag.ErrorMessage = fmt.Sprintf("newest item is from %s", diag.LatestDate)
	default:
		diag.Status = "OK"
	}
	return diag
}

// gradeableError converts gofeed status errors so the retry policy can
// tell a transient 503 from a permanent 404.
func gradeableError(err error) error {
	if err == nil {
		return nil
	}
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return &retry.HTTPError{
			StatusCode: httpErr.StatusCode,
			Message:    http.StatusText(httpErr.StatusCode),
		}
	}
	return err
}

// printDiagnostic prints one feed result in human-readable format.
func printDiagnostic(diag FeedDiagnostic) {
	fmt.Printf("[%s] %s (%dms)\n", diag.Status, diag.URL, diag.ResponseTime)
	if diag.Status == "OK" || diag.Status == "STALE" {
		fmt.Printf("      %s | items: %d | latest: %s\n", diag.FeedType, diag.ItemCount, diag.LatestDate)
	}
	if diag.ErrorMessage != "" {
		fmt.Printf("      %s\n", diag.ErrorMessage)
	}
}

// printSummary prints aggregate counts and returns how many feeds are not OK.
func printSummary(diagnostics []FeedDiagnostic) int {
	ok := 0
	for _, d := range diagnostics {
		if d.Status == "OK" {
			ok++
		}
	}
	broken := len(diagnostics) - ok
	fmt.Printf("\nChecked %d feeds: %d OK, %d broken\n", len(diagnostics), ok, broken)
	return broken
}

// writeJSONReport writes the full diagnostic list to a file.
func writeJSONReport(path string, diagnostics []FeedDiagnostic) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(diagnostics)
}

// initLogger initializes and returns a structured logger.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
