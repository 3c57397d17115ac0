package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_DefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
}

func TestLoader_ReadsDefaultConfigFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".lifeplanner", "config.yaml"), `
storage:
  backend: sqlite
  filename: planner.db
display:
  completed_marker: "(done)"
application:
  timeout: 10s
`)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "planner.db", cfg.Storage.Filename)
	assert.Equal(t, "(done)", cfg.Display.CompletedMarker)
	assert.Equal(t, "[ ]", cfg.Display.PendingMarker, "unset keys keep their defaults")
	assert.Equal(t, 10*time.Second, cfg.Application.Timeout)
}

func TestLoader_EnvironmentBeatsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "lp.yaml")
	writeFile(t, path, "storage:\n  backend: sqlite\n")
	t.Setenv("LP_CONFIG", path)
	t.Setenv("LP_STORAGE_BACKEND", "json")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
}

func TestLoader_ExplicitFileMustExist(t *testing.T) {
	isolate(t)
	t.Setenv("LP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := NewLoader().Load()

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "config", cfgErr.Field)
}

func TestLoader_RejectsUnknownKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "lp.yaml")
	writeFile(t, path, "storage:\n  engine: sqlite\n")

	_, err := NewLoader().WithConfigFile(path).Load()

	assert.Error(t, err)
}

func TestLoader_EmptyFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "lp.yaml")
	writeFile(t, path, "")

	cfg, err := NewLoader().WithConfigFile(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Application.LogLevel)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	isolate(t)
	dir := "/srv/planner"
	backend := BackendSQLite
	verbose := true
	level := "debug"

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		StorageDir: &dir,
		Backend:    &backend,
		Verbose:    &verbose,
		LogLevel:   &level,
	})

	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Storage.Dir)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "debug", cfg.Application.LogLevel)
}

func TestLoader_OverridesAreValidated(t *testing.T) {
	isolate(t)
	backend := "csv"

	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Backend: &backend})

	assert.Error(t, err)
}
