// ABOUTME: Readiness tool configuration management.
// ABOUTME: Handles data paths, drop directory, and store factory functions.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/readiness/internal/prefs"
	"github.com/harperreed/readiness/internal/storage"
)

// Config stores readiness tool configuration.
type Config struct {
	// DataDir is the root directory for data storage. The SQLite
	// database and the preference store live here. Supports ~ expansion.
	// Defaults to ~/.local/share/readiness.
	DataDir string `json:"data_dir,omitempty"`

	// DropDir is the directory the file source watches for JSON drop
	// files. Empty disables the file source.
	DropDir string `json:"drop_dir,omitempty"`

	// RetentionDays overrides the retention window from privacy
	// settings when positive.
	RetentionDays int `json:"retention_days,omitempty"`

	// LogLevel sets aggregator log verbosity: debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDropDir returns the configured drop directory with ~ expanded.
func (c *Config) GetDropDir() string {
	return ExpandPath(c.DropDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the SQLite store under the configured data directory.
func (c *Config) OpenStore() (*storage.DB, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), "readiness.db"))
}

// LazyStore returns a lazily-opened handle to the configured store.
func (c *Config) LazyStore() *storage.LazyDB {
	return storage.NewLazyDB(filepath.Join(c.GetDataDir(), "readiness.db"))
}

// OpenPrefs opens the preference store under the configured data directory.
func (c *Config) OpenPrefs() (*prefs.Store, error) {
	return prefs.Open(filepath.Join(c.GetDataDir(), "prefs"))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "readiness", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
