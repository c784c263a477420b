package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "security.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSecurityConfig_Valid(t *testing.T) {
	path := writeTempConfig(t, `
security:
  session:
    cookie_name: fm_session
    secret_env: SESSION_SECRET
    ttl_hours: 24
  public_endpoints:
    - /admin/login
  trusted_proxies:
    - 10.0.0.0/8
  password:
    min_length: 10
    weak_passwords:
      - password123
      - qwerty12345
`)

	cfg, err := LoadSecurityConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fm_session", cfg.GetSessionCookieName())
	assert.Equal(t, "SESSION_SECRET", cfg.GetSessionSecretEnv())
	assert.Equal(t, 24, cfg.GetSessionTTLHours())
	assert.Equal(t, []string{"/admin/login"}, cfg.GetPublicEndpoints())
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.GetTrustedProxies())
	assert.Equal(t, 10, cfg.GetMinPasswordLength())
	assert.Len(t, cfg.GetWeakPasswords(), 2)
}

func TestLoadSecurityConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing cookie name",
			content: `
security:
  session:
    secret_env: SESSION_SECRET
    ttl_hours: 24
  password:
    min_length: 8
`,
		},
		{
			name: "zero ttl",
			content: `
security:
  session:
    cookie_name: fm_session
    secret_env: SESSION_SECRET
    ttl_hours: 0
  password:
    min_length: 8
`,
		},
		{
			name: "short password minimum",
			content: `
security:
  session:
    cookie_name: fm_session
    secret_env: SESSION_SECRET
    ttl_hours: 24
  password:
    min_length: 4
`,
		},
		{
			name: "public endpoint without slash",
			content: `
security:
  session:
    cookie_name: fm_session
    secret_env: SESSION_SECRET
    ttl_hours: 24
  public_endpoints:
    - admin/login
  password:
    min_length: 8
`,
		},
		{
			name:    "malformed yaml",
			content: "security: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.content)
			_, err := LoadSecurityConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadSecurityConfig_MissingFile(t *testing.T) {
	_, err := LoadSecurityConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	assert.Equal(t, "fm_session", cfg.GetSessionCookieName())
	assert.Equal(t, "SESSION_SECRET", cfg.GetSessionSecretEnv())
	assert.Equal(t, 24, cfg.GetSessionTTLHours())
	assert.Equal(t, 8, cfg.GetMinPasswordLength())
	assert.NoError(t, validateSecurityConfig(cfg))
}
