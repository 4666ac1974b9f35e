// ABOUTME: Thread-safe wrapper around Config for concurrent readers
// ABOUTME: Used by the probe workers and the TUI to share live settings

package config

import "sync"

// SharedConfig wraps Config with a mutex for thread-safe access between
// background workers and the TUI
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

// NewSharedConfig returns a SharedConfig seeded with cfg
func NewSharedConfig(cfg Config) *SharedConfig {
	return &SharedConfig{config: cfg}
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Update updates the config (thread-safe write)
func (sc *SharedConfig) Update(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
}
