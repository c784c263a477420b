package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRedirects(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "redirects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRedirectsConfig(t *testing.T) {
	path := writeRedirects(t, `
redirects:
  - from: /blog/bmw-m5-test
    to: /news/bmw-m5-review
    permanent: true
  - from: /rss.xml
    to: /feed.xml
`)

	cfg, err := LoadRedirectsConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Len())

	r, ok := cfg.Lookup("/blog/bmw-m5-test")
	require.True(t, ok)
	assert.Equal(t, "/news/bmw-m5-review", r.To)
	assert.True(t, r.Permanent)

	r, ok = cfg.Lookup("/rss.xml")
	require.True(t, ok)
	assert.False(t, r.Permanent)

	_, ok = cfg.Lookup("/news/bmw-m5-review")
	assert.False(t, ok)
}

func TestLoadRedirectsConfig_MissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadRedirectsConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Len())

	_, ok := cfg.Lookup("/anything")
	assert.False(t, ok)
}

func TestLoadRedirectsConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "relative from",
			content: `
redirects:
  - from: blog/old
    to: /news/new
`,
		},
		{
			name: "empty target",
			content: `
redirects:
  - from: /blog/old
    to: ""
`,
		},
		{
			name: "self redirect",
			content: `
redirects:
  - from: /blog/old
    to: /blog/old
`,
		},
		{
			name: "duplicate from",
			content: `
redirects:
  - from: /blog/old
    to: /news/a
  - from: /blog/old
    to: /news/b
`,
		},
		{
			name: "scheme-relative target",
			content: `
redirects:
  - from: /blog/old
    to: //evil.example.com/
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRedirects(t, tt.content)
			_, err := LoadRedirectsConfig(path)
			assert.Error(t, err)
		})
	}
}
