// Package config loads and saves subtrack user configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/subtrack/internal/model"
)

// Config holds all subtrack configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Rates      RatesConfig      `toml:"rates"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds display and computation preferences.
type GeneralConfig struct {
	MainCurrency      string `toml:"main_currency"`
	RoundWholeNumbers bool   `toml:"round_whole_numbers"`
	UpcomingDays      int    `toml:"upcoming_days"`
}

// RatesConfig holds exchange-rate refresh settings.
type RatesConfig struct {
	ProviderURL      string `toml:"provider_url,omitempty"`
	AutoRefreshHours int    `toml:"auto_refresh_hours"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			MainCurrency: "USD",
			UpcomingDays: 30,
		},
		Rates: RatesConfig{
			AutoRefreshHours: 24,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Settings returns the value snapshot the computation core reads. Every
// aggregate call gets its own copy; nothing holds a reference back here.
func (c Config) Settings() model.Settings {
	return model.Settings{
		MainCurrency:      c.General.MainCurrency,
		RoundWholeNumbers: c.General.RoundWholeNumbers,
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "subtrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "subtrack")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDBPath returns the default location of the subscription database.
func DefaultDBPath() string {
	return filepath.Join(ConfigDir(), "subtrack.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
