package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvSettingsBackend, "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, ThemeDefault, cfg.Theme.Name)
	assert.Equal(t, 60, cfg.UI.DefaultWidth)
	assert.Equal(t, "json", cfg.Settings.Backend)
}

func TestLoadFromMergesJSONThenTOML(t *testing.T) {
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvSettingsBackend, "")
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "theme": {"name": "high-contrast", "border": "#123456"},
  "ui": {"defaultWidth": 72}
}`), 0o644))

	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[theme]
title = "#abcdef"

[settings]
backend = "badger"
`), 0o644))

	cfg, err := LoadFrom(Paths(dir)...)
	require.NoError(t, err)
	assert.Equal(t, ThemeHighContrast, cfg.Theme.Name)
	assert.Equal(t, "#123456", cfg.Theme.Border)
	assert.Equal(t, "#abcdef", cfg.Theme.Title)
	assert.Equal(t, 72, cfg.UI.DefaultWidth)
	assert.Equal(t, "badger", cfg.Settings.Backend)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvTheme, ThemeHighContrast)
	t.Setenv(EnvSettingsBackend, "badger")

	cfg, err := LoadFrom()
	require.NoError(t, err)
	assert.Equal(t, ThemeHighContrast, cfg.Theme.Name)
	assert.Equal(t, "badger", cfg.Settings.Backend)
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvSettingsBackend, "")
	dir := t.TempDir()

	bad := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"theme": {"name": "neon"}}`), 0o644))
	_, err := LoadFrom(bad)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o644))
	_, err = LoadFrom(bad)
	assert.Error(t, err)
}

func TestDirHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/zentui-test")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/zentui-test", dir)
}

func TestConfigManagerReloadsOnChange(t *testing.T) {
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvSettingsBackend, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ui": {"defaultWidth": 50}}`), 0o644))

	cm, err := NewConfigManager(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cm.GetConfig().UI.DefaultWidth)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, cm.StartWatcher(ctx))
	defer cm.StopWatcher()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"ui": {"defaultWidth": 80}}`), 0o644))

	select {
	case <-cm.ReloadEvents():
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for config reload")
	}
	assert.Equal(t, 80, cm.GetConfig().UI.DefaultWidth)
}

func TestConfigManagerKeepsConfigOnBadReload(t *testing.T) {
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvSettingsBackend, "")
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ui": {"defaultWidth": 50}}`), 0o644))

	cm, err := NewConfigManager(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))
	assert.Error(t, cm.Reload())
	assert.Equal(t, 50, cm.GetConfig().UI.DefaultWidth)
}
