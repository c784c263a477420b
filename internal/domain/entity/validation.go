package entity

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// slugPattern matches the slugs the backend generates: lowercase latin,
// digits, single hyphens between segments.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateURL checks a URL a user or editor handed to us. These URLs
// (generation sources, preview targets) are fetched server-side, so
// besides well-formedness the hostname must not resolve into private
// address space.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	// SSRF対策。名前解決の失敗はここでは通し、フェッチ側が改めて拒む。
	ips, err := net.LookupIP(parsedURL.Hostname())
	if err == nil {
		for _, ip := range ips {
			if isRestrictedIP(ip) {
				return &ValidationError{
					Field:   "url",
					Message: "url cannot point to private network",
				}
			}
		}
	}

	return nil
}

// isRestrictedIP reports whether an address must never be fetched from
// this server: loopback, RFC 1918 and ULA private space, link-local
// (which includes the 169.254.169.254 cloud metadata endpoint) and the
// unspecified address.
func isRestrictedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}

// ValidateEmail validates a subscriber or comment author email address.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > 254 {
		return &ValidationError{Field: "email", Message: "email is too long"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "email format is invalid"}
	}
	// mail.ParseAddressはドメインなしのローカルアドレスも通すため追加チェック
	if !strings.Contains(email, "@") || strings.HasSuffix(email, "@") {
		return &ValidationError{Field: "email", Message: "email format is invalid"}
	}
	return nil
}

// ValidateSlug validates a URL slug as used in article and tag paths.
func ValidateSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug", Message: "slug is required"}
	}
	if len(slug) > 200 {
		return &ValidationError{Field: "slug", Message: "slug must not exceed 200 characters"}
	}
	if !slugPattern.MatchString(slug) {
		return &ValidationError{
			Field:   "slug",
			Message: "slug may contain only lowercase letters, digits and hyphens",
		}
	}
	return nil
}
