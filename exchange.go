// ABOUTME: Import and export commands exchanging station lists with M3U playlists
// ABOUTME: Import appends playlist entries as records; export writes records as a playlist

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"streams-editor/editor"
	"streams-editor/m3u"
	"streams-editor/sii"
)

var flagImportDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <live_streams.sii> <source>",
	Short: "Append stations from an M3U playlist or another .sii file",
	Long: `Import reads an M3U playlist (or another live_streams.sii file) and
appends its entries as station records. A .sii source is validated first
and refused as a whole if any record is malformed. Entries whose URL
already exists in the target file are skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0], args[1])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <live_streams.sii> <stations.m3u>",
	Short: "Write the station list as an M3U playlist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0], args[1])
	},
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "print what would be imported without writing")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(path, sourcePath string) error {
	session, err := openSession(path)
	if err != nil {
		return err
	}

	cfg := loadSharedConfig().Get()

	entries, err := readImportEntries(sourcePath, cfg.DefaultLang)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("%s contains no entries", sourcePath)
	}

	known := make(map[string]bool, len(session.Records()))
	for _, rec := range session.Records() {
		known[rec.URL] = true
	}

	records := session.Records()
	added := 0
	skipped := 0

	for _, entry := range entries {
		if known[entry.URL] {
			debugf("[IMPORT] Skipping duplicate URL %s", entry.URL)

			continue
		}

		rec := entry
		if rec.Name == "" {
			rec.Name = rec.URL
		}

		// Playlist titles are free text; anything that would corrupt
		// the pipe-delimited payload is refused here, not on save
		if err := editor.CheckRecord(rec); err != nil {
			fmt.Printf("! skipped %s: %v\n", truncate(rec.Name, 60), err)
			skipped++

			continue
		}

		records = editor.InsertAt(records, rec, len(records))
		known[rec.URL] = true
		added++

		fmt.Printf("+ %s\n", rec.Name)
	}

	if skipped > 0 {
		fmt.Printf("%d entries skipped\n", skipped)
	}

	if added == 0 {
		fmt.Println("Nothing to import, all URLs already present")

		return nil
	}

	if flagImportDryRun {
		fmt.Printf("\n--dry-run mode: %d stations not written\n", added)

		return nil
	}

	session.Replace(records)

	if err := session.Save(cfg.BackupCount); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	fmt.Printf("\nImported %d stations into %s (%d total)\n", added, path, len(records))

	return nil
}

// readImportEntries loads station records from an import source, which
// is either an M3U playlist or another .sii document. A .sii source
// must pass validation in full before any of it is accepted.
func readImportEntries(sourcePath, defaultLang string) ([]sii.Record, error) {
	if strings.EqualFold(filepath.Ext(sourcePath), ".sii") {
		document, err := sii.LoadDocument(sourcePath)
		if err != nil {
			return nil, err
		}

		report := sii.Validate(document)
		if !report.OK {
			return nil, fmt.Errorf("refusing to import from %s, it has invalid records:\n%s",
				sourcePath, sii.FormatDiagnostics(report.Invalid, maxGateDiagnostics))
		}

		return sii.Decode(document)
	}

	entries, err := m3u.Read(sourcePath)
	if err != nil {
		return nil, err
	}

	records := make([]sii.Record, len(entries))
	for i, entry := range entries {
		records[i] = sii.NewRecord(entry.URL, entry.Name, "", defaultLang, "", "0")
	}

	return records, nil
}

func runExport(path, playlistPath string) error {
	session, err := openSession(path)
	if err != nil {
		return err
	}

	records := session.Records()
	entries := make([]m3u.Entry, len(records))

	for i, rec := range records {
		entries[i] = m3u.Entry{Name: rec.Name, URL: rec.URL}
	}

	if err := m3u.Write(playlistPath, entries); err != nil {
		return err
	}

	fmt.Printf("Exported %d stations to %s\n", len(entries), playlistPath)

	return nil
}
