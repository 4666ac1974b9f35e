// ABOUTME: Editor settings persisted as TOML with fallback to defaults
// ABOUTME: Handles config path resolution, loading, and saving

// Package config manages streams-editor settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all tunable editor settings
type Config struct {
	// Save behavior
	BackupCount int `toml:"backup_count"` // rotated backups kept per file

	// Record defaults
	DefaultLang string `toml:"default_lang"`

	// Stream health checking
	ProbeTimeoutSecs int `toml:"probe_timeout_secs"`
	ProbeWorkers     int `toml:"probe_workers"`

	// Public station directory
	DirectoryURL   string `toml:"directory_url"`
	DirectoryLimit int    `toml:"directory_limit"`
}

// DefaultConfig returns the default editor settings. The probe timeout
// and worker count match the community tooling this editor replaces.
func DefaultConfig() Config {
	return Config{
		BackupCount:      10,
		DefaultLang:      "EN",
		ProbeTimeoutSecs: 5,
		ProbeWorkers:     10,
		DirectoryURL:     "https://de1.api.radio-browser.info/json/stations/search",
		DirectoryLimit:   50,
	}
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/streams-editor/config.toml
func GetConfigPath() string {
	// First try current directory
	if _, err := os.Stat("./streams-editor.toml"); err == nil {
		return "./streams-editor.toml"
	}

	// Then try ~/.config/streams-editor/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return "./streams-editor.toml"
	}

	return filepath.Join(home, ".config", "streams-editor", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
func LoadConfig(path string) (Config, error) {
	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse TOML
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	// Encode config as TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
