package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "APP_ENV", "JWT_SECRET", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "REDIS_HOST", "REDIS_PORT",
		"CATALOG_CACHE_TTL", "COMPLETION_SWEEP_INTERVAL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.Worker.CompletionSweepInterval)
	assert.Equal(t, "postgres://postgres:@localhost:5432/shutterbook?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:       EnvDevelopment,
			Server:    ServerConfig{Port: 8080},
			Worker:    WorkerConfig{CompletionSweepInterval: time.Minute},
			RateLimit: RateLimitConfig{RPS: 1, Burst: 1},
		}
	}

	assert.NoError(t, valid().Validate())

	badPort := valid()
	badPort.Server.Port = 70000
	assert.Error(t, badPort.Validate())

	badInterval := valid()
	badInterval.Worker.CompletionSweepInterval = 0
	assert.Error(t, badInterval.Validate())

	badBurst := valid()
	badBurst.RateLimit.Burst = 0
	assert.Error(t, badBurst.Validate())
}
