package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, time.Minute, cfg.StatusSweepInterval)
	assert.False(t, cfg.SeedDemo)
}

func TestLoadConfigRequiresSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", BackendRedis)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("STATUS_SWEEP_INTERVAL", "30s")
	t.Setenv("TIMEZONE", "Europe/Prague")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SEED_DEMO", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.StatusSweepInterval)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, "Europe/Prague", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	valid := Config{Environment: "production", JWTSecret: "s3cret", StoreBackend: BackendMemory, StatusSweepInterval: time.Second, Timezone: "UTC"}
	assert.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.JWTSecret = ""
	assert.ErrorContains(t, noSecret.Validate(), "JWT_SECRET")

	devNoSecret := noSecret
	devNoSecret.Environment = "development"
	assert.NoError(t, devNoSecret.Validate())

	badBackend := valid
	badBackend.StoreBackend = "postgres"
	assert.Error(t, badBackend.Validate())

	badInterval := valid
	badInterval.StatusSweepInterval = 0
	assert.Error(t, badInterval.Validate())

	badZone := valid
	badZone.Timezone = "Mars/Olympus"
	assert.Error(t, badZone.Validate())
}
