package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "DATABASE_URL", "DATABASE_NAME", "STORE_DRIVER", "CACHE_TTL_SECONDS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, 8000, cfg.Port)
	assert.Empty(t, cfg.DBURL)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "tourneyhub", cfg.OTELServiceName)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/arena")
	t.Setenv("DATABASE_NAME", "arena")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("CACHE_TTL_SECONDS", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "arena", cfg.DBName)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("PORT", "eighty")

	assert.Equal(t, 8000, Load().Port)
}

func TestResolveDriver(t *testing.T) {
	tests := []struct {
		explicit, url, want string
	}{
		{"", "mongodb://localhost:27017", "mongo"},
		{"", "mongodb+srv://cluster.example.net", "mongo"},
		{"", "postgresql://localhost/arena", "postgres"},
		{"MEMORY", "", "memory"},
		{"postgres", "mongodb://localhost", "postgres"},
		{"", "", "mongo"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, resolveDriver(tc.explicit, tc.url), "explicit=%q url=%q", tc.explicit, tc.url)
	}
}
