// ABOUTME: Validate command checking stream_data records without modifying them
// ABOUTME: Prints per-record diagnostics and exits non-zero on findings

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"streams-editor/sii"
)

var flagValidateAll bool

var validateCmd = &cobra.Command{
	Use:   "validate <live_streams.sii>",
	Short: "Check every stream_data record for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

func init() {
	validateCmd.Flags().BoolVar(&flagValidateAll, "all", false, "show all findings instead of the first 20")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	document, err := sii.LoadDocument(path)
	if err != nil {
		return err
	}

	report := sii.Validate(document)

	if len(report.Entries) == 0 {
		fmt.Printf("%s: no stream_data records found\n", path)

		return errors.New("wrong file format")
	}

	if report.OK {
		fmt.Printf("%s: %d records, all valid\n", path, len(report.Entries))

		return nil
	}

	fmt.Printf("%s: %d records, %d invalid\n\n", path, len(report.Entries), len(report.Invalid))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "Line\tIndex\tIssues"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	shown := len(report.Invalid)
	if !flagValidateAll && shown > 20 {
		shown = 20
	}

	for _, d := range report.Invalid[:shown] {
		codes := ""
		for i, c := range d.Issues {
			if i > 0 {
				codes += ", "
			}
			codes += string(c)
		}

		if _, err := fmt.Fprintf(w, "%d\tstream_data[%d]\t%s\n", d.LineNumber, d.RecordIndex, codes); err != nil {
			log.Printf("Warning: failed to write diagnostic: %v", err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	if rest := len(report.Invalid) - shown; rest > 0 {
		fmt.Printf("... and %d more (use --all)\n", rest)
	}

	return fmt.Errorf("%d invalid records", len(report.Invalid))
}
