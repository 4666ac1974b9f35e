// ABOUTME: Sort command reordering stream_data records by a chosen field
// ABOUTME: Writes the result back with rotated backups unless --dry-run

package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"streams-editor/editor"
	"streams-editor/sii"
)

var (
	flagSortBy     string
	flagSortDir    string
	flagSortDryRun bool
)

var sortCmd = &cobra.Command{
	Use:   "sort <live_streams.sii>",
	Short: "Sort station records by a field",
	Long: `Sort reorders the stream_data records by the given field and renumbers
them from zero. Unmanaged lines of the file are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSort(args[0])
	},
}

func init() {
	sortCmd.Flags().StringVar(&flagSortBy, "by", "name", "sort field: url, name, genre, lang, bitrate, favorite")
	sortCmd.Flags().StringVar(&flagSortDir, "dir", "asc", "sort direction: asc or desc")
	sortCmd.Flags().BoolVar(&flagSortDryRun, "dry-run", false, "print the sorted list without writing")
	rootCmd.AddCommand(sortCmd)
}

func runSort(path string) error {
	field, err := sii.ParseField(flagSortBy)
	if err != nil {
		return err
	}

	dir, err := editor.ParseDirection(flagSortDir)
	if err != nil {
		return err
	}

	session, err := openSession(path)
	if err != nil {
		return err
	}

	sorted := editor.SortBy(session.Records(), field, dir)
	session.Replace(sorted)

	printRecords(sorted)

	if flagSortDryRun {
		fmt.Println("\n--dry-run mode: file not modified")

		return nil
	}

	keep := loadSharedConfig().Get().BackupCount
	if err := session.Save(keep); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	fmt.Printf("\nSorted %d records by %s (%s), written to %s\n", len(sorted), field, dir, path)

	return nil
}

// printRecords prints a station table to stdout
func printRecords(records []sii.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tFav\tName\tGenre\tLang\tBitrate\tURL"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	for _, rec := range records {
		fav := ""
		if rec.IsFavorite() {
			fav = "*"
		}

		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Index,
			fav,
			truncate(rec.Name, 30),
			truncate(rec.Genre, 16),
			rec.Lang,
			rec.Bitrate,
			truncate(rec.URL, 60),
		); err != nil {
			log.Printf("Warning: failed to write record %d: %v", rec.Index, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}
}
