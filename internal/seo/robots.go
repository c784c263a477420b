package seo

import "strings"

// RobotsTxt renders the robots.txt body. Anything but the production
// deployment is closed to crawlers so staging URLs never leak into search
// results.
func (b *Builder) RobotsTxt() string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if !b.site.IsProduction() {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	sb.WriteString("Allow: /\n")
	sb.WriteString("Disallow: /admin/\n")
	sb.WriteString("Disallow: /api/\n")
	sb.WriteString("\n")
	sb.WriteString("Sitemap: " + b.site.AbsoluteURL("/sitemap.xml") + "\n")
	return sb.String()
}
