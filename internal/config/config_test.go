package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
dbname = "venue"
serialization_retries = 5

[booking]
timezone = "UTC"
slot_step_minutes = 15
autocomplete_interval = "1m"
reprice_on_reschedule = true

[pricing.extras]
food = "750.50"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5, cfg.Database.SerializationRetries)
	assert.Equal(t, "UTC", cfg.Booking.Timezone)
	assert.Equal(t, 15, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, time.Minute, cfg.Booking.AutoCompleteInterval)
	assert.True(t, cfg.Booking.RepriceOnReschedule)

	fees, err := cfg.Pricing.ExtrasFees()
	require.NoError(t, err)
	assert.True(t, fees["food"].Equal(decimal.RequireFromString("750.50")))
	assert.True(t, fees["instructor"].Equal(decimal.NewFromInt(500)))
	assert.True(t, fees["equipment"].IsZero())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("BOOKING_SERVER_HTTP_PORT", "7070")
	t.Setenv("BOOKING_DB_PASSWORD", "secret")
	t.Setenv("BOOKING_PAYMENTS_CALLBACK_TOKEN", "token")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "token", cfg.Payments.CallbackToken)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Booking.SlotStepMinutes)
	assert.False(t, cfg.Booking.RepriceOnReschedule)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "bad timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "zero slot step", mutate: func(c *Config) { c.Booking.SlotStepMinutes = 0 }},
		{name: "negative extra fee", mutate: func(c *Config) { c.Pricing.Extras["food"] = "-1" }},
		{name: "events without url", mutate: func(c *Config) { c.Events.Enabled = true }},
		{name: "port out of range", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
