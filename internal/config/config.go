// Package config loads the user configuration: theme, default dialog size and
// the settings backend. Values come from built-in defaults, then the JSON and
// TOML files in the config directory, then environment overrides.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Environment overrides
const (
	EnvConfigDir       = "ZENTUI_CONFIG_DIR"
	EnvTheme           = "ZENTUI_THEME"
	EnvSettingsBackend = "ZENTUI_SETTINGS_BACKEND"
)

// Theme names
const (
	ThemeDefault      = "default"
	ThemeHighContrast = "high-contrast"
)

// Config is the zentui configuration.
type Config struct {
	Theme    ThemeConfig    `json:"theme" toml:"theme"`
	UI       UIConfig       `json:"ui" toml:"ui"`
	Settings SettingsConfig `json:"settings" toml:"settings"`
}

// ThemeConfig picks a base theme and optionally overrides its colours.
type ThemeConfig struct {
	Name          string `json:"name" toml:"name"`
	Border        string `json:"border,omitempty" toml:"border"`
	FocusedBorder string `json:"focusedBorder,omitempty" toml:"focused_border"`
	Title         string `json:"title,omitempty" toml:"title"`
	Text          string `json:"text,omitempty" toml:"text"`
	Button        string `json:"button,omitempty" toml:"button"`
	Error         string `json:"error,omitempty" toml:"error"`
	Success       string `json:"success,omitempty" toml:"success"`
	Warning       string `json:"warning,omitempty" toml:"warning"`
	Highlight     string `json:"highlight,omitempty" toml:"highlight"`
}

// UIConfig holds dialog defaults used when no --width/--height is given.
type UIConfig struct {
	DefaultWidth  int  `json:"defaultWidth" toml:"default_width"`
	DefaultHeight int  `json:"defaultHeight" toml:"default_height"`
	AltScreen     bool `json:"altScreen" toml:"alt_screen"`
}

// SettingsConfig selects the preference store.
type SettingsConfig struct {
	Backend string `json:"backend" toml:"backend"`
	Dir     string `json:"dir,omitempty" toml:"dir"`
}

func defaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{Name: ThemeDefault},
		UI: UIConfig{
			DefaultWidth:  60,
			DefaultHeight: 0,
			AltScreen:     false,
		},
		Settings: SettingsConfig{Backend: "json"},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "zentui"), nil
}

// Paths lists the config files read from dir, in merge order.
func Paths(dir string) []string {
	return []string{
		filepath.Join(dir, "config.json"),
		filepath.Join(dir, "config.toml"),
	}
}

// Load reads the configuration from the default directory.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFrom(Paths(dir)...)
	if err != nil {
		return nil, err
	}
	if cfg.Settings.Dir == "" {
		cfg.Settings.Dir = dir
	}
	return cfg, nil
}

// LoadFrom merges the existing files among paths over the defaults and
// applies environment overrides. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	cfg := defaultConfig()
	for _, path := range paths {
		if err := mergeConfigFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfigFile decodes path over target; keys absent from the file keep
// their current values.
func mergeConfigFile(target *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), target); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv(EnvSettingsBackend); v != "" {
		cfg.Settings.Backend = v
	}
}

// Validate rejects values no dialog can use.
func (c *Config) Validate() error {
	switch c.Theme.Name {
	case "", ThemeDefault, ThemeHighContrast:
	default:
		return fmt.Errorf("unknown theme %q", c.Theme.Name)
	}
	if c.UI.DefaultWidth < 0 || c.UI.DefaultHeight < 0 {
		return fmt.Errorf("default dialog size must not be negative")
	}
	switch c.Settings.Backend {
	case "", "json", "badger":
	default:
		return fmt.Errorf("unknown settings backend %q", c.Settings.Backend)
	}
	return nil
}

// ConfigManager holds the current configuration and reloads it when one of
// its files changes.
type ConfigManager struct {
	config     *Config
	paths      []string
	watcher    *Watcher
	reloadChan chan struct{}
	mu         sync.RWMutex
	logger     *log.Logger
}

// NewConfigManager loads paths and returns a manager for them.
func NewConfigManager(paths ...string) (*ConfigManager, error) {
	cfg, err := LoadFrom(paths...)
	if err != nil {
		return nil, err
	}
	return &ConfigManager{
		config:     cfg,
		paths:      paths,
		reloadChan: make(chan struct{}, 1),
		logger:     log.Default().WithPrefix("config"),
	}, nil
}

// GetConfig returns the current configuration.
func (cm *ConfigManager) GetConfig() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// Reload re-reads the configuration files. On error the previous
// configuration stays in effect.
func (cm *ConfigManager) Reload() error {
	cfg, err := LoadFrom(cm.paths...)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	cm.mu.Lock()
	if cm.config != nil && cfg.Settings.Dir == "" {
		cfg.Settings.Dir = cm.config.Settings.Dir
	}
	cm.config = cfg
	cm.mu.Unlock()
	return nil
}

// StartWatcher watches the config files with a 300ms debounce until ctx ends.
func (cm *ConfigManager) StartWatcher(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.watcher != nil {
		return fmt.Errorf("watcher already started")
	}
	if len(cm.paths) == 0 {
		return fmt.Errorf("no config paths to watch")
	}

	watcher, err := NewWatcher(ctx, cm.paths...)
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Start(300 * time.Millisecond); err != nil {
		return fmt.Errorf("failed to start config watcher: %w", err)
	}
	cm.watcher = watcher

	go cm.handleConfigChanges(ctx, watcher)
	return nil
}

func (cm *ConfigManager) handleConfigChanges(ctx context.Context, w *Watcher) {
	for {
		select {
		case <-ctx.Done():
			return

		case _, ok := <-w.Events():
			if !ok {
				return
			}
			if err := cm.Reload(); err != nil {
				cm.logger.Warn("reload failed", "err", err)
				continue
			}
			cm.logger.Debug("configuration reloaded")

			select {
			case cm.reloadChan <- struct{}{}:
			default:
			}

		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			cm.logger.Warn("watcher error", "err", err)
		}
	}
}

// StopWatcher stops the watcher if it is running.
func (cm *ConfigManager) StopWatcher() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.watcher == nil {
		return nil
	}
	err := cm.watcher.Stop()
	cm.watcher = nil
	return err
}

// ReloadEvents signals after each successful reload.
func (cm *ConfigManager) ReloadEvents() <-chan struct{} {
	return cm.reloadChan
}
