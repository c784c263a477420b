package seoaudit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fresh-motors-web/internal/seoaudit"
)

const articlePage = `<!DOCTYPE html>
<html lang="ru">
<head>
  <title>Новый BMW M5 представлен официально — Fresh Motors</title>
  <meta name="description" content="Баварцы показали седьмое поколение спортседана.">
  <meta name="twitter:card" content="summary_large_image">
  <meta property="og:type" content="article">
  <meta property="og:image" content="https://cdn.fresh-motors.app/media/m5.jpg">
  <link rel="canonical" href="https://fresh-motors.app/news/bmw-m5-2026">
  <script type="application/ld+json">{"@context":"https://schema.org","@type":"NewsArticle","headline":"Новый BMW M5 представлен официально","datePublished":"2026-08-20T10:00:00Z","image":["https://cdn.fresh-motors.app/media/m5.jpg"],"publisher":{"@type":"Organization","name":"Fresh Motors"}}</script>
  <script type="application/ld+json">{"@context":"https://schema.org","@type":"BreadcrumbList","itemListElement":[{"@type":"ListItem","position":1,"name":"Fresh Motors","item":"https://fresh-motors.app/"},{"@type":"ListItem","position":2,"name":"Новый BMW M5 представлен официально"}]}</script>
</head>
<body>
  <h1>Новый BMW M5 представлен официально</h1>
</body>
</html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write body: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAuditor_Page_CleanArticle(t *testing.T) {
	server := serve(t, http.StatusOK, articlePage)

	auditor := seoaudit.NewAuditor(&http.Client{Timeout: 10 * time.Second})
	audit, err := auditor.Page(context.Background(), server.URL+"/news/bmw-m5-2026")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if audit.ErrorCount() != 0 {
		t.Fatalf("ErrorCount() = %d, problems: %+v", audit.ErrorCount(), audit.Problems)
	}
	if len(audit.Problems) != 0 {
		t.Errorf("Problems = %+v, want none", audit.Problems)
	}
	if audit.OGType != "article" {
		t.Errorf("OGType = %q, want %q", audit.OGType, "article")
	}
	if !audit.Indexable() {
		t.Error("Indexable() = false, want true")
	}
	if len(audit.JSONLDTypes) != 2 {
		t.Fatalf("JSONLDTypes = %v, want NewsArticle and BreadcrumbList", audit.JSONLDTypes)
	}
}

func TestAuditor_Page_MissingMetadata(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>Страница</title></head><body><p>без метаданных</p></body></html>`
	server := serve(t, http.StatusOK, page)

	auditor := seoaudit.NewAuditor(nil)
	audit, err := auditor.Page(context.Background(), server.URL+"/about")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	wantFields := map[string]bool{
		"description":  false,
		"canonical":    false,
		"og:type":      false,
		"og:image":     false,
		"twitter:card": false,
		"h1":           false,
	}
	for _, p := range audit.Problems {
		if _, ok := wantFields[p.Field]; ok {
			wantFields[p.Field] = true
		}
	}
	for field, found := range wantFields {
		if !found {
			t.Errorf("no problem reported for %s", field)
		}
	}

	// canonicalが無いのはerror、descriptionが無いのはwarning
	for _, p := range audit.Problems {
		switch p.Field {
		case "canonical":
			if p.Severity != seoaudit.SeverityError {
				t.Errorf("canonical severity = %q, want error", p.Severity)
			}
		case "description":
			if p.Severity != seoaudit.SeverityWarning {
				t.Errorf("description severity = %q, want warning", p.Severity)
			}
		}
	}
}

func TestAuditor_Page_ArticleWithoutNewsArticleDoc(t *testing.T) {
	page := `<!DOCTYPE html><html><head>
<title>Статья</title>
<meta name="description" content="desc">
<meta property="og:type" content="article">
<meta property="og:image" content="https://example.com/img.jpg">
<meta name="twitter:card" content="summary">
<link rel="canonical" href="https://fresh-motors.app/news/x">
</head><body><h1>Статья</h1></body></html>`
	server := serve(t, http.StatusOK, page)

	auditor := seoaudit.NewAuditor(nil)
	audit, err := auditor.Page(context.Background(), server.URL+"/news/x")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	found := false
	for _, p := range audit.Problems {
		if p.Field == "jsonld" && p.Severity == seoaudit.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Errorf("missing NewsArticle not reported, problems: %+v", audit.Problems)
	}
}

func TestAuditor_Page_BrokenJSONLD(t *testing.T) {
	page := `<!DOCTYPE html><html><head>
<title>Статья</title>
<link rel="canonical" href="https://fresh-motors.app/news/x">
<script type="application/ld+json">{not json</script>
</head><body><h1>x</h1></body></html>`
	server := serve(t, http.StatusOK, page)

	auditor := seoaudit.NewAuditor(nil)
	audit, err := auditor.Page(context.Background(), server.URL+"/news/x")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	found := false
	for _, p := range audit.Problems {
		if p.Field == "jsonld" && p.Severity == seoaudit.SeverityError {
			found = true
		}
	}
	if !found {
		t.Errorf("invalid JSON-LD not reported, problems: %+v", audit.Problems)
	}
}

func TestAuditor_Page_DraftPreviewNoindex(t *testing.T) {
	page := `<!DOCTYPE html><html><head>
<title>Черновик</title>
<meta name="robots" content="noindex, nofollow">
<link rel="canonical" href="https://fresh-motors.app/news/draft">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"NewsArticle","headline":"Черновик","image":["https://example.com/i.jpg"],"publisher":{"@type":"Organization","name":"FM"}}</script>
</head><body><h1>Черновик</h1></body></html>`
	server := serve(t, http.StatusOK, page)

	auditor := seoaudit.NewAuditor(nil)
	audit, err := auditor.Page(context.Background(), server.URL+"/news/draft")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if audit.Indexable() {
		t.Error("Indexable() = true, want false")
	}
	// 下書きにdatePublishedが無いのは正常なので指摘しない
	for _, p := range audit.Problems {
		if p.Field == "jsonld" && p.Message == "NewsArticle has no datePublished" {
			t.Errorf("datePublished flagged on noindex page: %+v", p)
		}
	}
}

func TestAuditor_Page_ErrorStatus(t *testing.T) {
	server := serve(t, http.StatusBadGateway, "upstream down")

	auditor := seoaudit.NewAuditor(nil)
	audit, err := auditor.Page(context.Background(), server.URL+"/news/x")
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}

	if audit.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want 502", audit.Status)
	}
	if audit.ErrorCount() == 0 {
		t.Error("ErrorCount() = 0, want status problem")
	}
}

func TestAuditor_Page_Unreachable(t *testing.T) {
	auditor := seoaudit.NewAuditor(&http.Client{Timeout: time.Second})
	if _, err := auditor.Page(context.Background(), "http://127.0.0.1:1/none"); err == nil {
		t.Fatal("Page() error = nil, want transport error")
	}
}
