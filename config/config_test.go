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

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "crypto_tracker_db", cfg.Database.Name)
	assert.Equal(t, "USD", cfg.CryptoCompare.QuoteCurrency)
	assert.Equal(t, 1500, cfg.CryptoCompare.PageLimit)
	assert.Equal(t, time.Second, cfg.CryptoCompare.RequestDelay)
	assert.Equal(t, "0 1 * * * *", cfg.Scheduler.CronSchedule)
	assert.Equal(t, "Europe/London", cfg.Timezone)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("API_PAGE_LIMIT", "500")
	t.Setenv("API_REQUEST_DELAY", "250ms")
	t.Setenv("CRON_SCHEDULE", "0 0 9 * * *")
	t.Setenv("LOCAL_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 500, cfg.CryptoCompare.PageLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.CryptoCompare.RequestDelay)
	assert.Equal(t, "0 0 9 * * *", cfg.Scheduler.CronSchedule)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("API_PAGE_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.CryptoCompare.PageLimit)
}

func TestDSN(t *testing.T) {
	dc := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		Name:     "crypto_tracker_db",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=crypto_tracker_db sslmode=disable",
		dc.DSN(),
	)
}

func TestLocationInvalid(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus"}
	_, err := cfg.Location()
	assert.Error(t, err)
}
