// Package main provides a CLI command for auditing the SEO surface of
// rendered pages: metadata, canonical links and JSON-LD documents.
// Usage: fresh-motors-audit-seo [--base URL] [--limit N] [--json FILE] [URL ...]
package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fresh-motors-web/internal/seoaudit"
	pkgconfig "fresh-motors-web/pkg/config"
)

// sitemapDoc is the subset of the sitemap schema the crawler needs.
type sitemapDoc struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

func main() {
	// Parse command-line arguments
	var (
		baseURL  string
		limit    int
		jsonPath string
		timeout  time.Duration
	)

	flag.StringVar(&baseURL, "base", pkgconfig.GetEnvString("NEXT_PUBLIC_SITE_URL", "http://localhost:3000"), "Site origin whose sitemap is crawled")
	flag.IntVar(&limit, "limit", 50, "Maximum number of pages to audit")
	flag.StringVar(&jsonPath, "json", "", "Write the full report to this file as JSON")
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Overall deadline for the crawl")
	flag.Parse()

	logger := initLogger()

	client := &http.Client{Timeout: 30 * time.Second}
	auditor := seoaudit.NewAuditor(client)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Explicit URLs skip the sitemap
	pages := flag.Args()
	if len(pages) == 0 {
		var err error
		pages, err = sitemapPages(ctx, client, baseURL)
		if err != nil {
			logger.Error("failed to load sitemap", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Failed to load sitemap: %v\n", err)
			os.Exit(1)
		}
	}
	if limit > 0 && len(pages) > limit {
		pages = pages[:limit]
	}

	logger.Info("auditing pages", slog.Int("count", len(pages)))

	audits := make([]*seoaudit.PageAudit, 0, len(pages))
	for i, page := range pages {
		audit, err := auditor.Page(ctx, page)
		if err != nil {
			logger.Error("audit failed", slog.String("url", page), slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Audit of %s failed: %v\n", page, err)
			os.Exit(1)
		}
		audits = append(audits, audit)
		printAudit(audit)

		// Rate limiting to be nice to the server
		if i < len(pages)-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	errorPages := printSummary(audits)

	if jsonPath != "" {
		if err := writeJSONReport(jsonPath, audits); err != nil {
			logger.Error("failed to write JSON report", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Failed to write JSON report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("JSON report written: %s\n", jsonPath)
	}

	if errorPages > 0 {
		os.Exit(1)
	}
}

// sitemapPages fetches and parses the site's sitemap.
func sitemapPages(ctx context.Context, client *http.Client, baseURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/sitemap.xml", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "FreshMotorsAudit/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, err
	}

	var doc sitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse sitemap: %w", err)
	}
	if len(doc.URLs) == 0 {
		return nil, fmt.Errorf("sitemap has no URLs")
	}

	pages := make([]string, 0, len(doc.URLs))
	for _, u := range doc.URLs {
		if u.Loc != "" {
			pages = append(pages, u.Loc)
		}
	}
	return pages, nil
}

// printAudit prints one page result in human-readable format.
func printAudit(audit *seoaudit.PageAudit) {
	mark := "OK "
	if audit.ErrorCount() > 0 {
		mark = "ERR"
	} else if len(audit.Problems) > 0 {
		mark = "WRN"
	}
	fmt.Printf("[%s] %s (%dms)\n", mark, audit.URL, audit.ResponseTime)
	for _, p := range audit.Problems {
		fmt.Printf("      %s %s: %s\n", p.Severity, p.Field, p.Message)
	}
}

// printSummary prints aggregate counts and returns the number of pages
// with error-severity findings.
func printSummary(audits []*seoaudit.PageAudit) int {
	clean, warned, failed := 0, 0, 0
	for _, a := range audits {
		switch {
		case a.ErrorCount() > 0:
			failed++
		case len(a.Problems) > 0:
			warned++
		default:
			clean++
		}
	}
	fmt.Printf("\nAudited %d pages: %d clean, %d with warnings, %d with errors\n",
		len(audits), clean, warned, failed)
	return failed
}

// writeJSONReport writes the full audit list to a file.
func writeJSONReport(path string, audits []*seoaudit.PageAudit) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(audits)
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
