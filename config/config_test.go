// ABOUTME: Tests for configuration load/save functionality
// ABOUTME: Validates TOML parsing and default config fallback behavior

package config

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BackupCount != 10 {
		t.Errorf("Expected BackupCount 10, got %d", cfg.BackupCount)
	}
	if cfg.DefaultLang != "EN" {
		t.Errorf("Expected DefaultLang EN, got %q", cfg.DefaultLang)
	}
	if cfg.ProbeWorkers != 10 {
		t.Errorf("Expected ProbeWorkers 10, got %d", cfg.ProbeWorkers)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	// Create temp file
	tmpfile, err := os.CreateTemp(t.TempDir(), "streams-editor-*.toml")
	if err != nil {
		t.Fatal(err)
	}

	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	// Save a tweaked config
	cfg := DefaultConfig()
	cfg.BackupCount = 3
	cfg.ProbeTimeoutSecs = 2
	if err := SaveConfig(tmpfile.Name(), cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	// Load it back
	loaded, err := LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Verify values match
	if loaded.BackupCount != cfg.BackupCount {
		t.Errorf("BackupCount mismatch: got %d, want %d", loaded.BackupCount, cfg.BackupCount)
	}
	if loaded.ProbeTimeoutSecs != cfg.ProbeTimeoutSecs {
		t.Errorf("ProbeTimeoutSecs mismatch: got %d, want %d", loaded.ProbeTimeoutSecs, cfg.ProbeTimeoutSecs)
	}
	if loaded.DirectoryURL != cfg.DirectoryURL {
		t.Errorf("DirectoryURL mismatch: got %q, want %q", loaded.DirectoryURL, cfg.DirectoryURL)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	// Loading non-existent file should return defaults without error
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	// Should be default values
	defaults := DefaultConfig()
	if cfg.BackupCount != defaults.BackupCount {
		t.Errorf("Expected default BackupCount %d, got %d", defaults.BackupCount, cfg.BackupCount)
	}
}

func TestSharedConfig(t *testing.T) {
	shared := NewSharedConfig(DefaultConfig())

	got := shared.Get()
	if got.ProbeWorkers != 10 {
		t.Errorf("Expected ProbeWorkers 10, got %d", got.ProbeWorkers)
	}

	got.ProbeWorkers = 4
	shared.Update(got)

	if shared.Get().ProbeWorkers != 4 {
		t.Errorf("Update not visible: got %d, want 4", shared.Get().ProbeWorkers)
	}
}
