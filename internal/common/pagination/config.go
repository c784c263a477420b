// Package pagination turns ?page= style query input into backend offsets
// and render-ready page metadata. Public pages and the admin JSON API
// share it: pages parse forgivingly (bad input falls back to page 1, the
// way the original site behaved), the API parses strictly and reports
// bad parameters.
package pagination

import (
	pkgconfig "fresh-motors-web/pkg/config"
)

// Config holds the page-size policy applied when parsing request input.
type Config struct {
	DefaultPage  int // page used when the request names none
	DefaultLimit int // items per page when the request names none
	MaxLimit     int // hard cap on requested page sizes
}

// DefaultConfig returns the built-in policy: 12 cards per public page
// (the article grid renders rows of three), capped at 100 for API
// callers that ask for more.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 12,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads the pagination policy from environment variables,
// falling back to DefaultConfig values per variable:
//
//   - PAGINATION_DEFAULT_LIMIT: items per page
//   - PAGINATION_MAX_LIMIT: page size cap
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  def.DefaultPage,
		DefaultLimit: pkgconfig.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     pkgconfig.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.DefaultLimit < 1 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}
	return cfg
}
