// ABOUTME: Document file I/O with UTF-8 reads and rotating timestamped backups
// ABOUTME: Keeps the newest N backups, pruning older ones after each snapshot

package sii

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// backupTimeFormat orders lexicographically, so pruning can sort names
const backupTimeFormat = "20060102-150405"

// LoadDocument reads the whole document file as UTF-8 text
func LoadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	return string(data), nil
}

// SaveDocument writes document text to path. If the file already exists
// a timestamped backup is taken first and older backups are pruned down
// to keepBackups. keepBackups <= 0 disables backups entirely.
func SaveDocument(path, text string, keepBackups int) error {
	if _, err := os.Stat(path); err == nil && keepBackups > 0 {
		if err := rotateBackups(path, keepBackups); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

// rotateBackups snapshots the current file and prunes older backups
func rotateBackups(path string, keep int) error {
	backupPath := fmt.Sprintf("%s.bak.%s", path, time.Now().Format(backupTimeFormat))

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return err
	}

	return pruneBackups(path, keep)
}

// pruneBackups removes the oldest backups beyond the retention count
func pruneBackups(path string, keep int) error {
	matches, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}

	if len(matches) <= keep {
		return nil
	}

	// Timestamped suffixes sort oldest-first
	sort.Strings(matches)

	for _, old := range matches[:len(matches)-keep] {
		if err := os.Remove(old); err != nil {
			return err
		}
	}

	return nil
}

// Backups lists existing backup files for path, newest first
func Backups(path string) ([]string, error) {
	matches, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return nil, err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(matches)))

	return matches, nil
}
