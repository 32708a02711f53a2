package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "credit_engine", cfg.Database.Name)
	assert.Contains(t, cfg.Database.DSN(), "dbname=credit_engine")
	assert.Equal(t, "0 0 0 * * *", cfg.Scheduler.CronSpec)
	assert.Equal(t, 24*time.Hour, cfg.Catalog.CacheTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	t.Setenv("SCHEDULER_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsZeroCacheTTL(t *testing.T) {
	t.Setenv("STATUS_CACHE_TTL", "0s")

	_, err := Load()
	assert.Error(t, err)
}
