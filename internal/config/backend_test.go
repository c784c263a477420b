package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBackendConfig_Defaults(t *testing.T) {
	cfg, err := LoadBackendConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.PublicBaseURL)
	assert.Equal(t, "", cfg.InternalBaseURL)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL())
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIBase())
}

func TestLoadBackendConfig_RailwayPrefersInternal(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_API_URL", "https://api.fresh-motors.app")
	t.Setenv("API_INTERNAL_URL", "http://backend.railway.internal:8000")
	t.Setenv("RAILWAY_ENVIRONMENT", "production")

	cfg, err := LoadBackendConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://backend.railway.internal:8000", cfg.BaseURL())
	assert.Equal(t, "http://backend.railway.internal:8000/api/v1", cfg.APIBase())
	// browsers still get the public origin
	assert.Equal(t, "https://api.fresh-motors.app/api/v1", cfg.PublicAPIBase())
}

func TestLoadBackendConfig_InternalIgnoredOutsideRailway(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_API_URL", "https://api.fresh-motors.app")
	t.Setenv("API_INTERNAL_URL", "http://backend.railway.internal:8000")

	cfg, err := LoadBackendConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.fresh-motors.app", cfg.BaseURL())
}

func TestLoadBackendConfig_InvalidURL(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_API_URL", "not a url")

	_, err := LoadBackendConfig()
	assert.Error(t, err)
}

func TestBackendConfig_WebSocketURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		railway string
		taskID  string
		want    string
	}{
		{
			name:   "https becomes wss",
			base:   "https://api.fresh-motors.app",
			taskID: "abc-123",
			want:   "wss://api.fresh-motors.app/ws/generation/abc-123/",
		},
		{
			name:   "http becomes ws",
			base:   "http://localhost:8000",
			taskID: "t1",
			want:   "ws://localhost:8000/ws/generation/t1/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NEXT_PUBLIC_API_URL", tt.base)
			cfg, err := LoadBackendConfig()
			require.NoError(t, err)

			got, err := cfg.WebSocketURL(tt.taskID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSiteConfig(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_SITE_URL", "https://fresh-motors.app/")
	t.Setenv("RAILWAY_ENVIRONMENT", "production")
	t.Setenv("VERSION", "1.4.2")

	cfg, err := LoadSiteConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://fresh-motors.app", cfg.BaseURL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "1.4.2", cfg.Version)
	assert.Equal(t, "https://fresh-motors.app/news/bmw-m5", cfg.AbsoluteURL("news/bmw-m5"))
	assert.Equal(t, "https://fresh-motors.app/feed.xml", cfg.AbsoluteURL("/feed.xml"))
}

func TestLoadSiteConfig_DefaultEnvironment(t *testing.T) {
	cfg, err := LoadSiteConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
}
