// Package seoaudit inspects rendered public pages and reports problems
// with the metadata crawlers read: title and description, canonical link,
// OpenGraph/Twitter tags, robots directives and embedded JSON-LD documents.
// It audits served HTML, so it catches template regressions the unit tests
// of the metadata builders cannot see.
package seoaudit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB

	maxTitleLength       = 70
	maxDescriptionLength = 160
)

// Problem severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Problem is one finding on one page.
type Problem struct {
	Severity string `json:"severity"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// PageAudit is the audit result for a single page.
type PageAudit struct {
	URL          string    `json:"url"`
	Status       int       `json:"status"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Canonical    string    `json:"canonical"`
	Robots       string    `json:"robots,omitempty"`
	OGType       string    `json:"og_type"`
	OGImage      string    `json:"og_image,omitempty"`
	TwitterCard  string    `json:"twitter_card,omitempty"`
	JSONLDTypes  []string  `json:"jsonld_types,omitempty"`
	H1Count      int       `json:"h1_count"`
	Problems     []Problem `json:"problems,omitempty"`
	ResponseTime int64     `json:"response_time_ms"`
}

// Indexable reports whether crawlers are allowed to index the page.
func (p *PageAudit) Indexable() bool {
	return !strings.Contains(p.Robots, "noindex")
}

// ErrorCount counts error-severity problems.
func (p *PageAudit) ErrorCount() int {
	n := 0
	for _, pr := range p.Problems {
		if pr.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Auditor fetches pages and checks their metadata surface.
type Auditor struct {
	client *http.Client
}

// NewAuditor creates an Auditor using the given HTTP client.
func NewAuditor(client *http.Client) *Auditor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Auditor{client: client}
}

// Page fetches one page and audits its metadata. A transport failure is an
// error; an HTTP error status comes back as an audit with a single problem
// so a sweep over many pages keeps going.
func (a *Auditor) Page(ctx context.Context, pageURL string) (*PageAudit, error) {
	audit := &PageAudit{URL: pageURL}

	start := time.Now()
	doc, status, err := a.fetchHTML(ctx, pageURL)
	audit.ResponseTime = time.Since(start).Milliseconds()
	audit.Status = status
	if err != nil {
		return nil, err
	}
	if doc == nil {
		audit.addProblem(SeverityError, "status", fmt.Sprintf("HTTP %d", status))
		return audit, nil
	}

	a.extract(doc, audit)
	a.check(audit, pageURL)
	checkJSONLD(doc, audit)
	return audit, nil
}

// fetchHTML fetches and parses HTML from the given URL. A non-2xx status
// returns a nil document and the status code.
func (a *Auditor) fetchHTML(ctx context.Context, pageURL string) (*goquery.Document, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "FreshMotorsAudit/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, resp.StatusCode, nil
	}

	// Limit body size to prevent memory exhaustion
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, resp.StatusCode, nil
}

// extract pulls the audited fields out of the document head and body.
func (a *Auditor) extract(doc *goquery.Document, audit *PageAudit) {
	audit.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	audit.Description = metaContent(doc, `meta[name="description"]`)
	audit.Robots = metaContent(doc, `meta[name="robots"]`)
	audit.OGType = metaContent(doc, `meta[property="og:type"]`)
	audit.OGImage = metaContent(doc, `meta[property="og:image"]`)
	audit.TwitterCard = metaContent(doc, `meta[name="twitter:card"]`)
	if href, ok := doc.Find(`head link[rel="canonical"]`).First().Attr("href"); ok {
		audit.Canonical = strings.TrimSpace(href)
	}
	audit.H1Count = doc.Find("h1").Length()
}

// check validates the extracted fields against the limits search engines
// actually truncate at.
func (a *Auditor) check(audit *PageAudit, pageURL string) {
	if audit.Title == "" {
		audit.addProblem(SeverityError, "title", "page has no <title>")
	} else if len([]rune(audit.Title)) > maxTitleLength {
		audit.addProblem(SeverityWarning, "title",
			fmt.Sprintf("title is %d characters, search results truncate around %d", len([]rune(audit.Title)), maxTitleLength))
	}

	if audit.Description == "" {
		audit.addProblem(SeverityWarning, "description", "page has no meta description")
	} else if len([]rune(audit.Description)) > maxDescriptionLength {
		audit.addProblem(SeverityWarning, "description",
			fmt.Sprintf("description is %d characters, snippets truncate around %d", len([]rune(audit.Description)), maxDescriptionLength))
	}

	switch {
	case audit.Canonical == "":
		audit.addProblem(SeverityError, "canonical", "page has no canonical link")
	default:
		cu, err := url.Parse(audit.Canonical)
		if err != nil || !cu.IsAbs() {
			audit.addProblem(SeverityError, "canonical", "canonical URL must be absolute")
		} else if pu, err := url.Parse(pageURL); err == nil && cu.Path != pu.Path {
			// 別ページを正規として指すのは意図的な場合もあるので警告どまり
			audit.addProblem(SeverityWarning, "canonical",
				fmt.Sprintf("canonical points at %s, not the audited path", cu.Path))
		}
	}

	if audit.OGType == "" {
		audit.addProblem(SeverityWarning, "og:type", "page has no og:type")
	}
	if audit.OGImage == "" {
		audit.addProblem(SeverityWarning, "og:image", "page has no og:image, link previews fall back to text")
	}
	if audit.TwitterCard == "" {
		audit.addProblem(SeverityWarning, "twitter:card", "page has no twitter:card")
	}
	if !audit.Indexable() {
		audit.addProblem(SeverityWarning, "robots", "page is excluded from indexing")
	}

	switch audit.H1Count {
	case 0:
		audit.addProblem(SeverityWarning, "h1", "page has no <h1>")
	case 1:
	default:
		audit.addProblem(SeverityWarning, "h1", fmt.Sprintf("page has %d <h1> elements", audit.H1Count))
	}
}

func (p *PageAudit) addProblem(severity, field, message string) {
	p.Problems = append(p.Problems, Problem{Severity: severity, Field: field, Message: message})
}

// metaContent reads the content attribute of the first matching meta tag.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find("head " + selector).First().Attr("content")
	return strings.TrimSpace(content)
}
