package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverSQLite = "sqlite" // slots table in a SQLite database
	DriverFile   = "file"   // one JSON file per slot
)

// DefaultSlot is the slot key holding the client collection.
const DefaultSlot = "apple_crm_clients"

// HomeEnv overrides the base directory for config and data.
const HomeEnv = "CRM_HOME"

// Config represents the CRM configuration file.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where the client slot lives.
type StorageConfig struct {
	Driver string `yaml:"driver"`         // "sqlite" or "file"
	Path   string `yaml:"path,omitempty"` // database file or slot directory
	Slot   string `yaml:"slot"`           // slot key
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Slot:   DefaultSlot,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// BaseDir returns $CRM_HOME, or ~/.crm when unset.
func BaseDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".crm"), nil
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig reads config.yaml from dir. A missing file yields the defaults;
// fields left out of the file keep their default values.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", Path(dir), err)
	}

	return cfg, nil
}

// SaveConfig writes config.yaml to dir
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the storage driver and slot key.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile:
	default:
		return fmt.Errorf("unknown storage driver %q (want %s or %s)", c.Storage.Driver, DriverSQLite, DriverFile)
	}
	if c.Storage.Slot == "" {
		return fmt.Errorf("storage slot must not be empty")
	}
	return nil
}

// StoragePath resolves the configured storage location against dir.
// Relative paths are taken relative to dir.
func (c *Config) StoragePath(dir string) string {
	path := c.Storage.Path
	if path == "" {
		if c.Storage.Driver == DriverFile {
			return filepath.Join(dir, "slots")
		}
		return filepath.Join(dir, "crm.db")
	}
	if !filepath.IsAbs(path) {
		return filepath.Join(dir, path)
	}
	return path
}
