// Package config loads the service configuration: backend API connection
// settings from environment variables and the YAML policy files (security,
// legacy redirects).
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	pkgconfig "fresh-motors-web/pkg/config"
)

// BackendConfig holds the connection settings for the Fresh Motors backend
// API. Two base URLs exist because Railway deployments reach the backend
// over the private network while browsers (and local dev) use the public
// hostname.
type BackendConfig struct {
	// PublicBaseURL is the browser-facing API origin.
	// Env: NEXT_PUBLIC_API_URL. Default: "http://localhost:8000"
	PublicBaseURL string

	// InternalBaseURL is the private origin used for server-side calls
	// when running inside Railway. Env: API_INTERNAL_URL. Empty means
	// "use PublicBaseURL".
	InternalBaseURL string

	// RailwayEnvironment is set by the platform on deployed services.
	// Env: RAILWAY_ENVIRONMENT. Its presence switches server-side calls
	// to InternalBaseURL.
	RailwayEnvironment string

	// Timeout bounds one round trip to the backend.
	// Env: BACKEND_TIMEOUT. Default: 10s
	Timeout time.Duration

	// ViewTimeout bounds fire-and-forget view counter calls, kept short
	// so they never hold up a page render teardown.
	// Env: BACKEND_VIEW_TIMEOUT. Default: 3s
	ViewTimeout time.Duration

	// WarmRPS caps the request rate of background warm crawls against
	// the backend. Env: BACKEND_WARM_RPS. Default: 5
	WarmRPS float64

	// CircuitBreaker guards server-side calls to the backend.
	CircuitBreaker BreakerConfig
}

// BreakerConfig mirrors the gobreaker settings used for backend calls.
type BreakerConfig struct {
	// MaxRequests in half-open state. Default: 3
	MaxRequests uint32
	// Interval for clearing failure counts. Default: 60s
	Interval time.Duration
	// Timeout before transitioning from open to half-open. Default: 30s
	Timeout time.Duration
	// FailureThreshold ratio to trip the circuit (0.0 to 1.0). Default: 0.6
	FailureThreshold float64
	// MinRequests before the ratio is evaluated. Default: 5
	MinRequests uint32
}

// LoadBackendConfig loads backend connection settings from environment
// variables. Returns a config with defaults applied for unset variables.
func LoadBackendConfig() (*BackendConfig, error) {
	cfg := &BackendConfig{
		PublicBaseURL:      pkgconfig.GetEnvString("NEXT_PUBLIC_API_URL", "http://localhost:8000"),
		InternalBaseURL:    pkgconfig.GetEnvString("API_INTERNAL_URL", ""),
		RailwayEnvironment: pkgconfig.GetEnvString("RAILWAY_ENVIRONMENT", ""),
		Timeout:            pkgconfig.GetEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		ViewTimeout:        pkgconfig.GetEnvDuration("BACKEND_VIEW_TIMEOUT", 3*time.Second),
		WarmRPS:            pkgconfig.GetEnvFloat("BACKEND_WARM_RPS", 5),
		CircuitBreaker: BreakerConfig{
			MaxRequests:      uint32(pkgconfig.GetEnvInt("BACKEND_CB_MAX_REQUESTS", 3)),
			Interval:         pkgconfig.GetEnvDuration("BACKEND_CB_INTERVAL", 60*time.Second),
			Timeout:          pkgconfig.GetEnvDuration("BACKEND_CB_TIMEOUT", 30*time.Second),
			FailureThreshold: 0.6,
			MinRequests:      5,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration correctness.
func (c *BackendConfig) Validate() error {
	if err := validateBaseURL("NEXT_PUBLIC_API_URL", c.PublicBaseURL); err != nil {
		return err
	}
	if c.InternalBaseURL != "" {
		if err := validateBaseURL("API_INTERNAL_URL", c.InternalBaseURL); err != nil {
			return err
		}
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("BACKEND_TIMEOUT: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.ViewTimeout); err != nil {
		return fmt.Errorf("BACKEND_VIEW_TIMEOUT: %w", err)
	}
	if c.WarmRPS <= 0 {
		return fmt.Errorf("BACKEND_WARM_RPS must be positive")
	}
	if c.CircuitBreaker.MaxRequests == 0 {
		return fmt.Errorf("BACKEND_CB_MAX_REQUESTS must be positive")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.CircuitBreaker.Interval); err != nil {
		return fmt.Errorf("BACKEND_CB_INTERVAL: %w", err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.CircuitBreaker.Timeout); err != nil {
		return fmt.Errorf("BACKEND_CB_TIMEOUT: %w", err)
	}
	return nil
}

// BaseURL returns the origin server-side calls should use. Inside Railway
// the private URL wins; everywhere else the public one is used.
func (c *BackendConfig) BaseURL() string {
	if c.RailwayEnvironment != "" && c.InternalBaseURL != "" {
		return c.InternalBaseURL
	}
	return c.PublicBaseURL
}

// APIBase returns the versioned REST prefix of the server-side origin,
// e.g. "https://api.fresh-motors.app/api/v1".
func (c *BackendConfig) APIBase() string {
	return strings.TrimSuffix(c.BaseURL(), "/") + "/api/v1"
}

// PublicAPIBase returns the versioned REST prefix of the public origin.
// Rendered pages use it to rewrite relative media URLs for browsers.
func (c *BackendConfig) PublicAPIBase() string {
	return strings.TrimSuffix(c.PublicBaseURL, "/") + "/api/v1"
}

// WebSocketURL returns the generation progress endpoint for a task,
// derived from the public origin: wss://{host}/ws/generation/{taskId}/.
func (c *BackendConfig) WebSocketURL(taskID string) (string, error) {
	u, err := url.Parse(c.BaseURL())
	if err != nil {
		return "", fmt.Errorf("parse backend base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported backend scheme %q", u.Scheme)
	}
	u.Path = "/ws/generation/" + taskID + "/"
	u.RawQuery = ""
	return u.String(), nil
}

func validateBaseURL(envKey, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", envKey, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme", envKey)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", envKey)
	}
	return nil
}
