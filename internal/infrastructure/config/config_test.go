package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "1430", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "127.0.0.1:1430", cfg.Server.Addr())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 50, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
	assert.Equal(t, DialogNative, cfg.Dialog.Backend)
	assert.Empty(t, cfg.Dialog.FiltersFile)
	assert.Zero(t, cfg.Files.MaxReadBytes)

	assert.NoError(t, cfg.Validate())
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	require.NotNil(t, cfg)
	assert.Equal(t, DialogNative, cfg.Dialog.Backend)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                 "9000",
		"HOST":                 "0.0.0.0",
		"LOG_LEVEL":            "debug",
		"LOG_DEV":              "true",
		"RATE_LIMIT_RPS":       "500",
		"RATE_LIMIT_BURST":     "1000",
		"RATE_LIMIT_ENABLED":   "false",
		"CORS_ORIGINS":         "tauri://localhost,http://localhost:5173",
		"DIALOG_BACKEND":       "terminal",
		"DIALOG_FILTERS_FILE":  "/etc/bridge/filters.yaml",
		"FILES_MAX_READ_BYTES": "1048576",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:5173"}, cfg.CORS.Origins)
	assert.Equal(t, DialogTerminal, cfg.Dialog.Backend)
	assert.Equal(t, "/etc/bridge/filters.yaml", cfg.Dialog.FiltersFile)
	assert.Equal(t, int64(1048576), cfg.Files.MaxReadBytes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "unknown dialog backend",
			env:  map[string]string{"DIALOG_BACKEND": "gtk"},
		},
		{
			name: "negative read limit",
			env:  map[string]string{"FILES_MAX_READ_BYTES": "-1"},
		},
		{
			name: "zero rate with limiter enabled",
			env:  map[string]string{"RATE_LIMIT_RPS": "0"},
		},
		{
			name: "non-numeric burst",
			env:  map[string]string{"RATE_LIMIT_BURST": "lots"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}
