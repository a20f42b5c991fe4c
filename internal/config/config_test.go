package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_HOST", "HTTP_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "STORE_DRIVER", "REDIS_HOST", "REDIS_DB", "SEED_SAMPLES", "DB_HOST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.True(t, cfg.SeedSamples)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_WRITE_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", DriverPostgres)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "approvals")
	t.Setenv("SSL_MODE", "require")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SEED_SAMPLES", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "host=db user=svc password=secret dbname=approvals port=5432 sslmode=require search_path=public", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.False(t, cfg.SeedSamples)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"REDIS_DB":          "zero",
		"SEED_SAMPLES":      "maybe",
		"HTTP_READ_TIMEOUT": "15",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}
