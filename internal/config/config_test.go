package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mes_labor", cfg.MongoDB.Database)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
mongodb:
  uri: mongodb://db:27017
  database: labor_test
labor:
  shiftCacheTtl: 30s
  holidays:
    - "2026-01-01"
    - "2026-12-25"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "labor_test", cfg.MongoDB.Database)
	assert.Equal(t, 30*time.Second, cfg.Labor.ShiftCacheTTL)

	dates := cfg.HolidayDates()
	require.Len(t, dates, 2)
	assert.Equal(t, time.January, dates[0].Month())
	assert.Equal(t, 25, dates[1].Day())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("MONGODB_URI", "mongodb://env:27017")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "mongodb://env:27017", cfg.MongoDB.URI)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"missing uri", func(c *Config) { c.MongoDB.URI = "" }, "mongodb.uri"},
		{"missing database", func(c *Config) { c.MongoDB.Database = "" }, "mongodb.database"},
		{"no brokers", func(c *Config) { c.Kafka.Brokers = nil }, "kafka.brokers"},
		{"bad holiday", func(c *Config) { c.Labor.Holidays = []string{"25-12-2026"} }, "labor.holidays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
