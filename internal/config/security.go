package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents the security policy loaded from YAML: admin
// session settings, endpoints exempt from the session check, trusted
// reverse proxies, and the password rules enforced before a change is
// submitted to the backend.
type SecurityConfig struct {
	Security struct {
		Session struct {
			CookieName string `yaml:"cookie_name"`
			SecretEnv  string `yaml:"secret_env"`
			TTLHours   int    `yaml:"ttl_hours"`
		} `yaml:"session"`
		PublicEndpoints []string `yaml:"public_endpoints"`
		TrustedProxies  []string `yaml:"trusted_proxies"`
		Password        struct {
			MinLength     int      `yaml:"min_length"`
			WeakPasswords []string `yaml:"weak_passwords"`
		} `yaml:"password"`
	} `yaml:"security"`
}

// LoadSecurityConfig loads the security policy from a YAML file.
// The path parameter is expected to come from a trusted source (command-line argument or hardcoded default).
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SecurityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// DefaultSecurityConfig returns the policy used when no YAML file is
// deployed alongside the binary.
func DefaultSecurityConfig() *SecurityConfig {
	var config SecurityConfig
	config.Security.Session.CookieName = "fm_session"
	config.Security.Session.SecretEnv = "SESSION_SECRET"
	config.Security.Session.TTLHours = 24
	config.Security.PublicEndpoints = []string{"/admin/login"}
	config.Security.Password.MinLength = 8
	config.Security.Password.WeakPasswords = []string{"password", "12345678", "qwerty123"}
	return &config
}

// validateSecurityConfig validates the loaded configuration.
func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Session.CookieName == "" {
		return fmt.Errorf("session cookie_name is required")
	}

	if config.Security.Session.SecretEnv == "" {
		return fmt.Errorf("session secret_env is required")
	}

	if config.Security.Session.TTLHours <= 0 {
		return fmt.Errorf("session ttl_hours must be positive")
	}

	if config.Security.Password.MinLength < 8 {
		return fmt.Errorf("password min_length must be at least 8")
	}

	for _, endpoint := range config.Security.PublicEndpoints {
		if !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("public endpoint %q must start with /", endpoint)
		}
	}

	return nil
}

// GetSessionCookieName returns the name of the admin session cookie.
func (c *SecurityConfig) GetSessionCookieName() string {
	return c.Security.Session.CookieName
}

// GetSessionSecretEnv returns the environment variable holding the
// session signing secret.
func (c *SecurityConfig) GetSessionSecretEnv() string {
	return c.Security.Session.SecretEnv
}

// GetSessionTTLHours returns the session lifetime in hours.
func (c *SecurityConfig) GetSessionTTLHours() int {
	return c.Security.Session.TTLHours
}

// GetPublicEndpoints returns the admin paths exempt from the session check.
func (c *SecurityConfig) GetPublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// GetTrustedProxies returns the CIDR ranges allowed to set forwarding headers.
func (c *SecurityConfig) GetTrustedProxies() []string {
	return c.Security.TrustedProxies
}

// GetMinPasswordLength returns the minimum accepted new-password length.
func (c *SecurityConfig) GetMinPasswordLength() int {
	return c.Security.Password.MinLength
}

// GetWeakPasswords returns the list of rejected common passwords.
func (c *SecurityConfig) GetWeakPasswords() []string {
	return c.Security.Password.WeakPasswords
}
