package middleware

import (
	"net/http/httptest"
	"net/netip"
	"testing"
)

func TestRemoteAddrExtractor_ExtractsIP(t *testing.T) {
	extractor := &RemoteAddrExtractor{}

	testCases := []struct {
		name       string
		remoteAddr string
		expected   string
	}{
		{"IPv4 with port", "192.168.1.1:54321", "192.168.1.1"},
		{"IPv4 localhost", "127.0.0.1:8080", "127.0.0.1"},
		{"IPv6 with port", "[2001:db8::1]:443", "2001:db8::1"},
		{"IPv6 loopback", "[::1]:8080", "::1"},
		{"IPv4 without port", "203.0.113.9", "203.0.113.9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr

			ip, err := extractor.ExtractIP(req)
			if err != nil {
				t.Fatalf("ExtractIP() returned unexpected error: %v", err)
			}
			if ip != tc.expected {
				t.Errorf("ExtractIP() = %q, expected %q", ip, tc.expected)
			}
		})
	}
}

func TestRemoteAddrExtractor_RejectsGarbage(t *testing.T) {
	extractor := &RemoteAddrExtractor{}
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "not-an-address"

	if _, err := extractor.ExtractIP(req); err == nil {
		t.Error("ExtractIP() expected error for unparsable RemoteAddr")
	}
}

func TestNewTrustedProxyConfig(t *testing.T) {
	testCases := []struct {
		name        string
		cidrs       []string
		wantEnabled bool
		wantCount   int
		wantErr     bool
	}{
		{"empty list disables trust", nil, false, 0, false},
		{"blank entries are skipped", []string{"", "  "}, false, 0, false},
		{"single IPv4 becomes /32", []string{"10.0.0.1"}, true, 1, false},
		{"single IPv6 becomes /128", []string{"2001:db8::1"}, true, 1, false},
		{"CIDR range kept as-is", []string{"172.16.0.0/12"}, true, 1, false},
		{"mixed entries", []string{"10.0.0.1", "192.168.0.0/16"}, true, 2, false},
		{"hostname rejected", []string{"proxy.internal"}, false, 0, true},
		{"malformed CIDR rejected", []string{"10.0.0.0/real-big"}, false, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := NewTrustedProxyConfig(tc.cidrs)

			if tc.wantErr {
				if err == nil {
					t.Fatal("NewTrustedProxyConfig() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTrustedProxyConfig() returned unexpected error: %v", err)
			}
			if config.Enabled != tc.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", config.Enabled, tc.wantEnabled)
			}
			if len(config.AllowedCIDRs) != tc.wantCount {
				t.Errorf("len(AllowedCIDRs) = %d, expected %d", len(config.AllowedCIDRs), tc.wantCount)
			}
		})
	}
}

func TestNewTrustedProxyConfig_SingleIPPrefixLength(t *testing.T) {
	config, err := NewTrustedProxyConfig([]string{"10.0.0.1", "2001:db8::1"})
	if err != nil {
		t.Fatalf("NewTrustedProxyConfig() returned unexpected error: %v", err)
	}

	if got := config.AllowedCIDRs[0].Bits(); got != 32 {
		t.Errorf("IPv4 prefix bits = %d, expected 32", got)
	}
	if got := config.AllowedCIDRs[1].Bits(); got != 128 {
		t.Errorf("IPv6 prefix bits = %d, expected 128", got)
	}
}

func TestTrustedProxyConfig_IsTrusted(t *testing.T) {
	config := TrustedProxyConfig{
		Enabled: true,
		AllowedCIDRs: []netip.Prefix{
			netip.MustParsePrefix("10.0.0.0/8"),
			netip.MustParsePrefix("2001:db8::/32"),
		},
	}

	testCases := []struct {
		name       string
		remoteAddr string
		expected   bool
	}{
		{"inside IPv4 range", "10.1.2.3:443", true},
		{"outside IPv4 range", "192.0.2.5:443", false},
		{"inside IPv6 range", "[2001:db8::9]:443", true},
		{"outside IPv6 range", "[2001:db9::9]:443", false},
		{"unparsable address", "garbage", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := config.IsTrusted(tc.remoteAddr); got != tc.expected {
				t.Errorf("IsTrusted(%q) = %v, expected %v", tc.remoteAddr, got, tc.expected)
			}
		})
	}
}

func TestTrustedProxyExtractor_UsesXFFWhenTrusted(t *testing.T) {
	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})

	req := httptest.NewRequest("GET", "/api/ui/ratings", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP() returned unexpected error: %v", err)
	}
	if ip != "203.0.113.7" {
		t.Errorf("ExtractIP() = %q, expected forwarded client IP", ip)
	}
}

func TestTrustedProxyExtractor_FirstXFFEntryWins(t *testing.T) {
	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2, 10.0.0.1")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP() returned unexpected error: %v", err)
	}
	if ip != "203.0.113.7" {
		t.Errorf("ExtractIP() = %q, expected first X-Forwarded-For entry", ip)
	}
}

func TestTrustedProxyExtractor_IgnoresHeadersFromUntrustedPeer(t *testing.T) {
	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})

	// レート制限回避を狙ったヘッダ偽装を想定
	req := httptest.NewRequest("POST", "/api/ui/comments", nil)
	req.RemoteAddr = "198.51.100.23:44000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	req.Header.Set("X-Real-IP", "203.0.113.8")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP() returned unexpected error: %v", err)
	}
	if ip != "198.51.100.23" {
		t.Errorf("ExtractIP() = %q, expected TCP peer address", ip)
	}
}

func TestTrustedProxyExtractor_XRealIPFallback(t *testing.T) {
	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Real-IP", "203.0.113.9")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP() returned unexpected error: %v", err)
	}
	if ip != "203.0.113.9" {
		t.Errorf("ExtractIP() = %q, expected X-Real-IP value", ip)
	}
}

func TestTrustedProxyExtractor_InvalidXFFFallsThrough(t *testing.T) {
	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("X-Forwarded-For", "unknown, 203.0.113.7")
	req.Header.Set("X-Real-IP", "203.0.113.9")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP() returned unexpected error: %v", err)
	}
	if ip != "203.0.113.9" {
		t.Errorf("ExtractIP() = %q, expected X-Real-IP fallback", ip)
	}
}

func TestTrustedProxyExtractor_TrustedPeerWithoutHeaders(t *testing.T) {
	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP() returned unexpected error: %v", err)
	}
	if ip != "10.0.0.1" {
		t.Errorf("ExtractIP() = %q, expected RemoteAddr fallback", ip)
	}
}

func TestTrustedProxyExtractor_DisabledIgnoresHeaders(t *testing.T) {
	extractor := NewTrustedProxyExtractor(TrustedProxyConfig{Enabled: false})

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "198.51.100.23:44000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	ip, err := extractor.ExtractIP(req)
	if err != nil {
		t.Fatalf("ExtractIP() returned unexpected error: %v", err)
	}
	if ip != "198.51.100.23" {
		t.Errorf("ExtractIP() = %q, expected RemoteAddr when trust is disabled", ip)
	}
}

func TestExtractIPFromAddr(t *testing.T) {
	testCases := []struct {
		name     string
		addr     string
		expected string
		wantErr  bool
	}{
		{"IPv4 with port", "192.168.1.1:8080", "192.168.1.1", false},
		{"IPv6 with port", "[2001:db8::1]:8080", "2001:db8::1", false},
		{"IPv4 without port", "127.0.0.1", "127.0.0.1", false},
		{"empty string", "", "", true},
		{"hostname", "example.com", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ip, err := extractIPFromAddr(tc.addr)

			if tc.wantErr {
				if err == nil {
					t.Errorf("extractIPFromAddr(%q) expected error, got %q", tc.addr, ip)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractIPFromAddr(%q) returned unexpected error: %v", tc.addr, err)
			}
			if ip != tc.expected {
				t.Errorf("extractIPFromAddr(%q) = %q, expected %q", tc.addr, ip, tc.expected)
			}
		})
	}
}

func TestParseFirstIP(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"single IP", "192.168.1.1", "192.168.1.1"},
		{"multiple IPs", "192.168.1.1, 10.0.0.1", "192.168.1.1"},
		{"IPv6 first", "2001:db8::1, 10.0.0.1", "2001:db8::1"},
		{"leading space", " 203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"invalid first entry", "unknown, 10.0.0.1", ""},
		{"empty string", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseFirstIP(tc.input); got != tc.expected {
				t.Errorf("parseFirstIP(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
