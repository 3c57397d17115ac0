package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader away from the developer's real config file and
// clears every LP_ variable for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "LP_") {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return home
}

func TestNewConfig_Defaults(t *testing.T) {
	home := isolate(t)

	cfg := NewConfig()

	assert.Equal(t, filepath.Join(home, ".lifeplanner"), cfg.Storage.Dir)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".lifeplanner", "schedule.json"), cfg.GetStoragePath())
	assert.Equal(t, "15:04", cfg.Time.ClockInput)
	assert.Equal(t, "2006-01-02", cfg.Time.DateInput)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestGetStoragePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Dir = "/data"

	cfg.Storage.Backend = BackendSQLite
	assert.Equal(t, "/data/lifeplanner.db", cfg.GetStoragePath())

	cfg.Storage.Filename = "mine.db"
	assert.Equal(t, "/data/mine.db", cfg.GetStoragePath())
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("LP_STORAGE_DIR", "/tmp/lp")
	t.Setenv("LP_STORAGE_BACKEND", "sqlite")
	t.Setenv("LP_STORAGE_DIR_PERMISSIONS", "700")
	t.Setenv("LP_VALIDATION_NAME_MAX", "20")
	t.Setenv("LP_DISPLAY_SHOW_DESCRIPTIONS", "false")
	t.Setenv("LP_APP_TIMEOUT", "5s")
	t.Setenv("LP_APP_LOG_LEVEL", "debug")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/tmp/lp", cfg.Storage.Dir)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.Equal(t, 20, cfg.Validation.NameMaxLength)
	assert.False(t, cfg.Display.ShowDescriptions)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.Equal(t, "debug", cfg.Application.LogLevel)
}

func TestLoadFromEnvironment_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad permissions", "LP_STORAGE_DIR_PERMISSIONS", "rwx"},
		{"bad name max", "LP_VALIDATION_NAME_MAX", "many"},
		{"bad hours", "LP_VALIDATION_MAX_APPOINTMENT_HOURS", "1.5"},
		{"bad timeout", "LP_APP_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			err := NewConfig().LoadFromEnvironment()

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Field)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"zero permissions", func(c *Config) { c.Storage.DirPermissions = 0 }, "storage.dir_permissions"},
		{"empty clock input", func(c *Config) { c.Time.ClockInput = "" }, "time.date_input"},
		{"zero name length", func(c *Config) { c.Validation.NameMaxLength = 0 }, "validation.name_max_length"},
		{"zero hours", func(c *Config) { c.Validation.MaxAppointmentHours = 0 }, "validation.max_appointment_hours"},
		{"empty marker", func(c *Config) { c.Display.PendingMarker = "" }, "display.completed_marker"},
		{"negative timeout", func(c *Config) { c.Application.Timeout = -time.Second }, "application.timeout"},
		{"bad log level", func(c *Config) { c.Application.LogLevel = "loud" }, "application.log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
