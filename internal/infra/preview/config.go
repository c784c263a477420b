package preview

import (
	"fmt"
	"time"

	pkgconfig "fresh-motors-web/pkg/config"
)

// Config controls source preview fetching. The limits exist because the
// operator pastes arbitrary URLs into the generate form and the fetch runs
// from inside the deployment network.
type Config struct {
	// Timeout bounds one preview request. Default: 10s
	Timeout time.Duration

	// MaxBodySize is the largest response body read, in bytes.
	// Default: 10MB
	MaxBodySize int64

	// MaxRedirects limits redirect chains. Every redirect target goes
	// through the same SSRF validation as the original URL. Default: 5
	MaxRedirects int

	// DenyPrivateIPs rejects URLs resolving to loopback, private or
	// link-local addresses. Always true in production. Default: true
	DenyPrivateIPs bool

	// ExcerptLength is the number of runes kept for the preview excerpt.
	// Default: 280
	ExcerptLength int
}

// DefaultConfig returns production defaults for preview fetching.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		ExcerptLength:  280,
	}
}

// LoadConfigFromEnv loads preview settings from the environment, falling
// back to defaults for unset variables.
//
// Environment variables:
//   - SOURCE_PREVIEW_TIMEOUT: duration, e.g. "10s"
//   - SOURCE_PREVIEW_MAX_BODY_SIZE: bytes
//   - SOURCE_PREVIEW_MAX_REDIRECTS: integer
//   - SOURCE_PREVIEW_DENY_PRIVATE_IPS: "true" or "false"
//   - SOURCE_PREVIEW_EXCERPT_LENGTH: integer (runes)
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Timeout:        pkgconfig.GetEnvDuration("SOURCE_PREVIEW_TIMEOUT", def.Timeout),
		MaxBodySize:    int64(pkgconfig.GetEnvInt("SOURCE_PREVIEW_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects:   pkgconfig.GetEnvInt("SOURCE_PREVIEW_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs: pkgconfig.GetEnvBool("SOURCE_PREVIEW_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
		ExcerptLength:  pkgconfig.GetEnvInt("SOURCE_PREVIEW_EXCERPT_LENGTH", def.ExcerptLength),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid source preview configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against sane operating bounds.
func (c *Config) Validate() error {
	if err := pkgconfig.ValidateDurationRange(c.Timeout, time.Second, 2*time.Minute); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	minBody := int64(1024)
	maxBody := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBody || c.MaxBodySize > maxBody {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBody, maxBody, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.ExcerptLength < 40 || c.ExcerptLength > 2000 {
		return fmt.Errorf("excerpt length must be between 40 and 2000 runes, got %d", c.ExcerptLength)
	}

	return nil
}
