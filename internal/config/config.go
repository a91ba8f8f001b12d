// Package config loads and saves the lendbook TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvLedgerFile overrides the configured ledger path.
const EnvLedgerFile = "LENDBOOK_FILE"

// Config holds all lendbook configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds ledger preferences.
type GeneralConfig struct {
	LedgerFile  string  `toml:"ledger_file,omitempty"`
	DefaultRate float64 `toml:"default_rate"` // prefilled monthly rate, percent
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultRate: 6,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lendbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lendbook")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultLedgerPath is where loans are kept when nothing else is configured.
func DefaultLedgerPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "lendbook", "loans.csv")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "lendbook", "loans.csv")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.General.DefaultRate < 0 || cfg.General.DefaultRate > 100 {
		cfg.General.DefaultRate = DefaultConfig().General.DefaultRate
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// LedgerPath resolves the ledger file: flag, then env var, then config,
// then the default data location.
func LedgerPath(cfg Config, flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvLedgerFile); p != "" {
		return p
	}
	if cfg.General.LedgerFile != "" {
		return cfg.General.LedgerFile
	}
	return DefaultLedgerPath()
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
