package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveAPIBaseURL(t *testing.T) {
	tests := []struct {
		name      string
		buildTime string
		runtime   string
		frontend  string
		want      string
	}{
		{"build time wins", "https://build.example/", "https://runtime.example", "http://localhost:3000", "https://build.example"},
		{"runtime when no build value", "", "https://runtime.example//", "http://localhost:3000", "https://runtime.example"},
		{"blank values ignored", "  ", " ", "http://localhost:3000", "http://localhost:5000"},
		{"loopback ip is local", "", "", "http://127.0.0.1:3000", "http://localhost:5000"},
		{"public host", "", "", "https://warehousehub.app", "https://api.warehousehub.app"},
		{"unparseable frontend", "", "", "::bad", "https://api.warehousehub.app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAPIBaseURL(tt.buildTime, tt.runtime, tt.frontend))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_URL", "FRONTEND_URL", "STORAGE_DRIVER", "DATABASE_URL", "TOAST_TTL_MS", "HTTP_TIMEOUT_SECONDS", "COOKIE_SECURE", "SESSION_IDLE_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Equal(t, "memory", cfg.DSN())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("API_URL", "https://api.test/")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:secret@db:5432/app")
	t.Setenv("TOAST_TTL_MS", "500")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_IDLE_MINUTES", "5")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.test", cfg.APIURL)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, 500*time.Millisecond, cfg.ToastTTL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdle)
	assert.NotContains(t, cfg.DSN(), "secret")
}
