package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBackendEnv(t *testing.T) {
	t.Helper()
	t.Setenv("URL", "https://backend.example")
	t.Setenv("USR", "operator")
	t.Setenv("PSW", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setBackendEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example", cfg.Backend.URL)
	assert.Equal(t, 120*time.Second, cfg.Backend.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.Timeout)
	assert.Equal(t, 0, cfg.Pipeline.EnrichConcurrency)
	assert.False(t, cfg.Pipeline.EligibilityCheck)
	assert.Equal(t, "present", cfg.Pipeline.NeedASPRule)
	assert.Equal(t, 1, cfg.Pipeline.AuthRetryAttempts)
	assert.Equal(t, 5, cfg.Pipeline.BreakerFailures)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Audit.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	setBackendEnv(t)
	t.Setenv("PIPELINE_TIMEOUT", "5s")
	t.Setenv("ENRICH_CONCURRENCY", "4")
	t.Setenv("ELIGIBILITY_CHECK", "true")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,k1:9092")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.Timeout)
	assert.Equal(t, 4, cfg.Pipeline.EnrichConcurrency)
	assert.True(t, cfg.Pipeline.EligibilityCheck)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
}

func TestLoadDotenvFile(t *testing.T) {
	// godotenv does not override variables that are already set, so clear
	// them for the duration of the test.
	for _, key := range []string{"URL", "USR", "PSW"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("URL=https://from-dotenv\nUSR=dot\nPSW=env\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-dotenv", cfg.Backend.URL)
	assert.Equal(t, "dot", cfg.Backend.Username)

	for _, key := range []string{"URL", "USR", "PSW"} {
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Backend:  Backend{URL: "https://b", Username: "u", Password: "p"},
		Pipeline: Pipeline{Timeout: time.Second, AuthRetryAttempts: 1},
		Cache:    Cache{Backend: CacheMemory, TTL: time.Hour},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing url", func(c *Config) { c.Backend.URL = "" }},
		{"missing credentials", func(c *Config) { c.Backend.Password = "" }},
		{"redis without url", func(c *Config) { c.Cache.Backend = CacheRedis }},
		{"postgres without url", func(c *Config) { c.Cache.Backend = CachePostgres }},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"zero timeout", func(c *Config) { c.Pipeline.Timeout = 0 }},
		{"negative concurrency", func(c *Config) { c.Pipeline.EnrichConcurrency = -1 }},
		{"zero attempts", func(c *Config) { c.Pipeline.AuthRetryAttempts = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	snapshot := valid
	snapshot.Backend = Backend{SnapshotDir: "/tmp/snapshots"}
	assert.NoError(t, snapshot.Validate(), "snapshots need no backend login")
}
