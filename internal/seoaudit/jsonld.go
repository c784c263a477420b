package seoaudit

import (
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Structured-data types the public pages embed.
const (
	typeNewsArticle    = "NewsArticle"
	typeBreadcrumbList = "BreadcrumbList"
	typeOrganization   = "Organization"
	typeWebSite        = "WebSite"
)

// checkJSONLD parses every ld+json script on the page, records the document
// types and validates the fields rich results depend on. Each script block
// holds one document; a top-level array is accepted too.
func checkJSONLD(doc *goquery.Document, audit *PageAudit) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		raw := s.Text()
		if raw == "" {
			audit.addProblem(SeverityError, "jsonld", fmt.Sprintf("script block %d is empty", i+1))
			return
		}
		for _, d := range decodeDocuments([]byte(raw), audit, i) {
			auditDocument(d, audit)
		}
	})

	if audit.OGType == "article" && !audit.hasJSONLDType(typeNewsArticle) {
		audit.addProblem(SeverityWarning, "jsonld", "article page has no NewsArticle document")
	}
}

// decodeDocuments unmarshals a script block into one or more documents.
func decodeDocuments(raw []byte, audit *PageAudit, index int) []map[string]any {
	var one map[string]any
	if err := json.Unmarshal(raw, &one); err == nil {
		return []map[string]any{one}
	}
	var many []map[string]any
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	audit.addProblem(SeverityError, "jsonld", fmt.Sprintf("script block %d is not valid JSON", index+1))
	return nil
}

// auditDocument records the document type and runs per-type checks.
func auditDocument(d map[string]any, audit *PageAudit) {
	docType, _ := d["@type"].(string)
	if docType == "" {
		audit.addProblem(SeverityError, "jsonld", "document has no @type")
		return
	}
	audit.JSONLDTypes = append(audit.JSONLDTypes, docType)

	if ctx, _ := d["@context"].(string); ctx == "" {
		audit.addProblem(SeverityError, "jsonld", docType+" document has no @context")
	}

	switch docType {
	case typeNewsArticle:
		auditNewsArticle(d, audit)
	case typeBreadcrumbList:
		auditBreadcrumbs(d, audit)
	}
}

// auditNewsArticle checks the fields Google requires for the article rich
// result.
func auditNewsArticle(d map[string]any, audit *PageAudit) {
	if s, _ := d["headline"].(string); s == "" {
		audit.addProblem(SeverityError, "jsonld", "NewsArticle has no headline")
	}
	if s, _ := d["datePublished"].(string); s == "" && audit.Indexable() {
		// 下書きプレビューは意図的に日付を持たない
		audit.addProblem(SeverityWarning, "jsonld", "NewsArticle has no datePublished")
	}
	if _, ok := d["publisher"].(map[string]any); !ok {
		audit.addProblem(SeverityWarning, "jsonld", "NewsArticle has no publisher")
	}
	if _, ok := d["image"]; !ok {
		audit.addProblem(SeverityWarning, "jsonld", "NewsArticle has no image")
	}
}

// auditBreadcrumbs checks crumb ordering and that every crumb but the last
// carries an item URL.
func auditBreadcrumbs(d map[string]any, audit *PageAudit) {
	items, ok := d["itemListElement"].([]any)
	if !ok || len(items) == 0 {
		audit.addProblem(SeverityError, "jsonld", "BreadcrumbList has no items")
		return
	}
	for i, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			audit.addProblem(SeverityError, "jsonld", fmt.Sprintf("breadcrumb %d is not an object", i+1))
			continue
		}
		if pos, ok := item["position"].(float64); !ok || int(pos) != i+1 {
			audit.addProblem(SeverityError, "jsonld", fmt.Sprintf("breadcrumb %d has position %v", i+1, item["position"]))
		}
		if name, _ := item["name"].(string); name == "" {
			audit.addProblem(SeverityError, "jsonld", fmt.Sprintf("breadcrumb %d has no name", i+1))
		}
		if url, _ := item["item"].(string); url == "" && i < len(items)-1 {
			audit.addProblem(SeverityWarning, "jsonld", fmt.Sprintf("breadcrumb %d has no item URL", i+1))
		}
	}
}

func (p *PageAudit) hasJSONLDType(t string) bool {
	for _, have := range p.JSONLDTypes {
		if have == t {
			return true
		}
	}
	return false
}
