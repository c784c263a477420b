package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor resolves the client IP used as the rate-limit key for
// anonymous engagement endpoints. Behind a reverse proxy the TCP peer
// is the proxy, so the real client IP has to come from forwarding
// headers, but only when the peer is a proxy we actually trust.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address directly. It is the
// safe default when the server is reached without a reverse proxy:
// RemoteAddr cannot be spoofed by the client.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the proxy ranges whose forwarding headers
// are believed.
type TrustedProxyConfig struct {
	// Enabled is false when no proxies are configured; header-based
	// extraction is then disabled entirely.
	Enabled bool

	// AllowedCIDRs holds trusted proxy ranges. Single IPs are stored
	// as /32 or /128 prefixes.
	AllowedCIDRs []netip.Prefix
}

// NewTrustedProxyConfig builds the config from the trusted_proxies list
// in security.yaml. Entries may be single IPs ("10.0.0.1") or CIDR
// ranges ("172.16.0.0/12"). An empty list disables header trust.
// Invalid entries fail startup rather than silently opening a spoofing
// hole.
func NewTrustedProxyConfig(cidrs []string) (*TrustedProxyConfig, error) {
	config := &TrustedProxyConfig{AllowedCIDRs: []netip.Prefix{}}

	for _, raw := range cidrs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			ip, ipErr := netip.ParseAddr(raw)
			if ipErr != nil {
				return nil, fmt.Errorf("trusted_proxies: %q is not an IP or CIDR", raw)
			}
			if ip.Is4() {
				prefix = netip.PrefixFrom(ip, 32)
			} else {
				prefix = netip.PrefixFrom(ip, 128)
			}
		}
		config.AllowedCIDRs = append(config.AllowedCIDRs, prefix)
	}

	config.Enabled = len(config.AllowedCIDRs) > 0
	return config, nil
}

// IsTrusted reports whether remoteAddr belongs to a configured proxy
// range.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// TrustedProxyExtractor reads X-Forwarded-For / X-Real-IP, but only
// when the TCP peer is a trusted proxy. Untrusted peers carrying those
// headers are logged and fall back to RemoteAddr, so clients cannot
// rotate their apparent IP to dodge the rate limiter.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor creates an extractor for the given proxy
// config.
func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

// ExtractIP resolves the client IP. Priority for trusted peers:
// X-Forwarded-For first entry, then X-Real-IP, then RemoteAddr.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
			)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			slog.Warn("untrusted peer sent X-Real-IP",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_real_ip", xri),
			)
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip, nil
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String(), nil
		}
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// extractIPFromAddr strips the port from "IP:port" and "[v6]:port"
// forms; bare IPs pass through.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the first address of a comma-separated
// X-Forwarded-For value, or "" when it is not a valid IP.
func parseFirstIP(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	if ip := net.ParseIP(strings.TrimSpace(s)); ip != nil {
		return ip.String()
	}
	return ""
}
