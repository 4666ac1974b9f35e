// ABOUTME: Fetch command searching a public radio directory for stations
// ABOUTME: Prints matches and appends them to the file with --add

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"streams-editor/directory"
	"streams-editor/editor"
)

var (
	flagFetchGenre  string
	flagFetchLang   string
	flagFetchSearch string
	flagFetchLimit  int
	flagFetchAdd    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <live_streams.sii>",
	Short: "Search the radio-browser.info directory for stations",
	Long: `Fetch queries the configured radio directory and lists matching
stations. With --add, matches not already in the file are appended.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(args[0])
	},
}

func init() {
	fetchCmd.Flags().StringVar(&flagFetchGenre, "genre", "", "filter by genre tag")
	fetchCmd.Flags().StringVar(&flagFetchLang, "lang", "", "filter by language")
	fetchCmd.Flags().StringVar(&flagFetchSearch, "search", "", "free-text name search")
	fetchCmd.Flags().IntVar(&flagFetchLimit, "limit", 0, "maximum results (default from config)")
	fetchCmd.Flags().BoolVar(&flagFetchAdd, "add", false, "append matches to the file")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(path string) error {
	session, err := openSession(path)
	if err != nil {
		return err
	}

	cfg := loadSharedConfig().Get()

	limit := cfg.DirectoryLimit
	if flagFetchLimit > 0 {
		limit = flagFetchLimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := directory.NewClient(cfg.DirectoryURL)
	stations, err := client.Search(ctx, directory.Filters{
		Genre:  flagFetchGenre,
		Lang:   flagFetchLang,
		Search: flagFetchSearch,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	if len(stations) == 0 {
		fmt.Println("No stations found")

		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "Name\tTags\tLang\tBitrate\tURL"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	for _, st := range stations {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			truncate(st.Name, 30),
			truncate(st.Tags, 20),
			st.CountryCode,
			st.Bitrate,
			truncate(st.URL, 60),
		); err != nil {
			log.Printf("Warning: failed to write station: %v", err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	fmt.Printf("\n%d stations found\n", len(stations))

	if !flagFetchAdd {
		return nil
	}

	known := make(map[string]bool, len(session.Records()))
	for _, rec := range session.Records() {
		known[rec.URL] = true
	}

	records := session.Records()
	added := 0

	for _, st := range stations {
		if st.URL == "" || known[st.URL] {
			continue
		}

		rec := directory.ToRecord(st, cfg.DefaultLang)

		// Sanitizing covers names and tags, but a payload delimiter in
		// the URL itself cannot be rewritten without changing the URL
		if err := editor.CheckRecord(rec); err != nil {
			fmt.Printf("! skipped %s: %v\n", truncate(st.Name, 30), err)

			continue
		}

		records = editor.InsertAt(records, rec, len(records))
		known[st.URL] = true
		added++
	}

	if added == 0 {
		fmt.Println("Nothing to add, all stations already present")

		return nil
	}

	session.Replace(records)

	if err := session.Save(cfg.BackupCount); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	fmt.Printf("Added %d stations to %s (%d total)\n", added, path, len(records))

	return nil
}
