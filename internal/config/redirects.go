package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RedirectsConfig holds the legacy URL redirect map. The site migrated
// platforms twice; old article and section paths keep resolving through
// this table so inbound links and search results never break.
type RedirectsConfig struct {
	Redirects []Redirect `yaml:"redirects"`

	byPath map[string]*Redirect
}

// Redirect maps one legacy path onto its current location.
type Redirect struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Permanent bool   `yaml:"permanent"`
}

// LoadRedirectsConfig loads the redirect map from a YAML file.
// A missing file is not an error: the service simply runs without
// legacy redirects.
func LoadRedirectsConfig(path string) (*RedirectsConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RedirectsConfig{byPath: map[string]*Redirect{}}, nil
		}
		return nil, fmt.Errorf("failed to read redirects file: %w", err)
	}

	var config RedirectsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse redirects file: %w", err)
	}

	if err := config.index(); err != nil {
		return nil, fmt.Errorf("redirects validation failed: %w", err)
	}

	return &config, nil
}

// index validates entries and builds the lookup map.
func (c *RedirectsConfig) index() error {
	c.byPath = make(map[string]*Redirect, len(c.Redirects))
	for i := range c.Redirects {
		r := &c.Redirects[i]
		if !strings.HasPrefix(r.From, "/") {
			return fmt.Errorf("redirect from %q must start with /", r.From)
		}
		if r.To == "" {
			return fmt.Errorf("redirect from %q has empty target", r.From)
		}
		// Scheme-relative targets would turn the table into an open redirect.
		if strings.HasPrefix(r.To, "//") {
			return fmt.Errorf("redirect target %q must not be scheme-relative", r.To)
		}
		if !strings.HasPrefix(r.To, "/") && !strings.HasPrefix(r.To, "http://") && !strings.HasPrefix(r.To, "https://") {
			return fmt.Errorf("redirect target %q must be a path or absolute URL", r.To)
		}
		if r.From == r.To {
			return fmt.Errorf("redirect from %q points to itself", r.From)
		}
		if _, dup := c.byPath[r.From]; dup {
			return fmt.Errorf("duplicate redirect for %q", r.From)
		}
		c.byPath[r.From] = r
	}
	return nil
}

// Lookup returns the redirect registered for a request path, if any.
func (c *RedirectsConfig) Lookup(path string) (*Redirect, bool) {
	if c == nil || len(c.byPath) == 0 {
		return nil, false
	}
	r, ok := c.byPath[path]
	return r, ok
}

// Len returns the number of configured redirects.
func (c *RedirectsConfig) Len() int {
	return len(c.Redirects)
}
