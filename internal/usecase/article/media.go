package article

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fresh-motors-web/internal/utils/text"
)

// wordsPerMinute is the reading speed behind derived reading times.
const wordsPerMinute = 200

// FixMediaURL resolves a media URL for the browser. The backend returns
// media paths relative to its own origin ("/media/covers/x.jpg"); pages
// are served from a different origin, so relative paths are rebased onto
// the public API origin. Absolute, protocol-relative and data URLs pass
// through untouched.
func FixMediaURL(raw, base string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "//") ||
		strings.HasPrefix(raw, "data:") {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return strings.TrimSuffix(base, "/") + raw
}

// RewriteBodyHTML rebases every media reference inside backend article
// HTML onto the public API origin: img/src, srcset variants, and video
// and audio sources. The HTML itself is backend-rendered and trusted;
// only URLs change. On parse failure the original markup is returned so
// a malformed fragment degrades to broken images, not a broken page.
func RewriteBodyHTML(html, base string) string {
	if html == "" {
		return html
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		rewriteAttr(sel, "src", base)
		rewriteSrcset(sel, base)
	})
	doc.Find("source").Each(func(_ int, sel *goquery.Selection) {
		rewriteAttr(sel, "src", base)
		rewriteSrcset(sel, base)
	})
	doc.Find("video, audio").Each(func(_ int, sel *goquery.Selection) {
		rewriteAttr(sel, "src", base)
		rewriteAttr(sel, "poster", base)
	})

	// goquery parses fragments into a full document; the body selection
	// unwraps it again.
	out, err := doc.Find("body").Html()
	if err != nil {
		return html
	}
	return out
}

func rewriteAttr(sel *goquery.Selection, attr, base string) {
	if val, ok := sel.Attr(attr); ok && val != "" {
		sel.SetAttr(attr, FixMediaURL(val, base))
	}
}

// rewriteSrcset rebases each URL of a srcset list, keeping the width and
// density descriptors attached to it.
func rewriteSrcset(sel *goquery.Selection, base string) {
	srcset, ok := sel.Attr("srcset")
	if !ok || srcset == "" {
		return
	}

	parts := strings.Split(srcset, ",")
	for i, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		fields[0] = FixMediaURL(fields[0], base)
		parts[i] = strings.Join(fields, " ")
	}
	sel.SetAttr("srcset", strings.Join(parts, ", "))
}

// ExtractText strips the markup from article HTML and returns the plain
// text with normalized whitespace.
func ExtractText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return text.CollapseWhitespace(doc.Text())
}

// ReadingTime estimates reading minutes for article HTML at 200 words
// per minute, rounding up with a one minute floor. Commonly served
// precomputed by the backend; this is the fallback when the field is
// absent.
func ReadingTime(html string) int {
	words := text.CountWords(ExtractText(html))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
