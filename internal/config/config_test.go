package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15, cfg.Queue.ServiceMinutes)
	assert.Equal(t, "lazy", cfg.Queue.PositionPolicy)
	assert.Equal(t, 10*time.Minute, cfg.Queue.ClinicCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("QUEUE_SERVICE_MINUTES", "20")
	t.Setenv("QUEUE_POSITION_POLICY", "compact")
	t.Setenv("QUEUE_TIMEZONE", "UTC")
	t.Setenv("CLINIC_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 20, cfg.Queue.ServiceMinutes)
	assert.Equal(t, "compact", cfg.Queue.PositionPolicy)
	assert.Equal(t, 30*time.Second, cfg.Queue.ClinicCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)

	loc, err := cfg.Queue.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	assert.Contains(t, cfg.Database.DSN(), "port=6543")
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"bad port":       {"JWT_ACCESS_SECRET": "s", "DB_PORT": "abc"},
		"bad policy":     {"JWT_ACCESS_SECRET": "s", "QUEUE_POSITION_POLICY": "eager"},
		"zero minutes":   {"JWT_ACCESS_SECRET": "s", "QUEUE_SERVICE_MINUTES": "0"},
		"bad timezone":   {"JWT_ACCESS_SECRET": "s", "QUEUE_TIMEZONE": "Mars/Olympus"},
		"bad ttl":        {"JWT_ACCESS_SECRET": "s", "CLINIC_CACHE_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_ACCESS_SECRET", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	t.Setenv("ENV_CHEK", "")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CAREPLUS_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CAREPLUS_DOTENV_PROBE") })

	require.NoError(t, LoadDotenv(path))
	assert.Equal(t, "loaded", os.Getenv("CAREPLUS_DOTENV_PROBE"))
}

func TestLoadDotenv_SkippedWhenPrepared(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	assert.NoError(t, LoadDotenv(filepath.Join(t.TempDir(), "missing.env")))
}
