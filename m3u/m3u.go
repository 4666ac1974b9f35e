// ABOUTME: Handles reading and writing M3U playlist files
// ABOUTME: Provides functions to exchange station lists with media players

// Package m3u reads and writes extended M3U playlists. It covers the
// subset media players use for internet radio: one URL per entry with
// an optional #EXTINF title line.
package m3u

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Entry is one playlist entry: a stream URL with an optional title
type Entry struct {
	Name string
	URL  string
}

// Read parses an M3U playlist file into entries.
// #EXTINF lines provide the title for the URL line that follows; other
// comment lines and blank lines are skipped.
func Read(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	var entries []Entry

	pendingName := ""
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF:") {
			pendingName = parseExtinfTitle(line)

			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		entries = append(entries, Entry{Name: pendingName, URL: line})
		pendingName = ""
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading playlist: %w", err)
	}

	return entries, nil
}

// parseExtinfTitle extracts the display title from an #EXTINF line.
// Format: #EXTINF:<duration>[ attrs],<title>
func parseExtinfTitle(line string) string {
	_, title, found := strings.Cut(line, ",")
	if !found {
		return ""
	}

	return strings.TrimSpace(title)
}

// Write writes entries to an M3U playlist file with #EXTINF titles.
// The result is named so the deferred close can surface its error.
func Write(path string, entries []Entry) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close playlist file: %w", closeErr)
		}
	}()

	writer := bufio.NewWriter(file)

	if _, err := writer.WriteString("#EXTM3U\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range entries {
		if entry.Name != "" {
			// Streams have no fixed duration; -1 is the M3U convention
			if _, err := writer.WriteString("#EXTINF:-1," + entry.Name + "\n"); err != nil {
				return fmt.Errorf("failed to write entry title: %w", err)
			}
		}

		if _, err := writer.WriteString(entry.URL + "\n"); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}
