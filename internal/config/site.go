package config

import (
	"fmt"
	"net/url"
	"strings"

	pkgconfig "fresh-motors-web/pkg/config"
)

// SiteConfig holds the public identity of this deployment: the canonical
// origin used in absolute links, sitemaps, feeds and JSON-LD.
type SiteConfig struct {
	// BaseURL is the canonical site origin, without trailing slash.
	// Env: NEXT_PUBLIC_SITE_URL. Default: "http://localhost:3000"
	BaseURL string

	// Environment names the deployment (production, staging, development).
	// Env: RAILWAY_ENVIRONMENT, falling back to APP_ENV.
	// robots.txt disallows crawling outside production.
	Environment string

	// Version is the build version exposed on health endpoints.
	// Env: VERSION. Default: "dev"
	Version string
}

// LoadSiteConfig loads the site identity from environment variables.
func LoadSiteConfig() (*SiteConfig, error) {
	env := pkgconfig.GetEnvString("RAILWAY_ENVIRONMENT", "")
	if env == "" {
		env = pkgconfig.GetEnvString("APP_ENV", "development")
	}

	cfg := &SiteConfig{
		BaseURL:     strings.TrimSuffix(pkgconfig.GetEnvString("NEXT_PUBLIC_SITE_URL", "http://localhost:3000"), "/"),
		Environment: env,
		Version:     pkgconfig.GetEnvString("VERSION", "dev"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration correctness.
func (c *SiteConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("NEXT_PUBLIC_SITE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("NEXT_PUBLIC_SITE_URL must use http or https scheme")
	}
	if u.Host == "" {
		return fmt.Errorf("NEXT_PUBLIC_SITE_URL must include a host")
	}
	return nil
}

// IsProduction reports whether this deployment serves real traffic.
func (c *SiteConfig) IsProduction() bool {
	return c.Environment == "production"
}

// AbsoluteURL joins a site-relative path onto the canonical origin.
func (c *SiteConfig) AbsoluteURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}
