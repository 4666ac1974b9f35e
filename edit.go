// ABOUTME: Interactive editor command launching the Bubble Tea TUI
// ABOUTME: Gates entry on document validation with a capped diagnostic list

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streams-editor/sii"
	"streams-editor/tui"
)

// maxGateDiagnostics caps the findings shown when refusing a broken file
const maxGateDiagnostics = 5

var editCmd = &cobra.Command{
	Use:   "edit <live_streams.sii>",
	Short: "Open the interactive station editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}

// runEdit validates the document, opens a session, and runs the TUI
func runEdit(path string) error {
	document, err := sii.LoadDocument(path)
	if err != nil {
		return err
	}

	// Refuse malformed records up front; editing a misparsed list and
	// saving it back would destroy data
	report := sii.Validate(document)
	if !report.OK {
		return fmt.Errorf("%s has invalid records, fix them first (or run 'streams-editor validate'):\n%s",
			path, sii.FormatDiagnostics(report.Invalid, maxGateDiagnostics))
	}

	session, err := openSession(path)
	if err != nil {
		return err
	}

	opts := tui.Options{
		ConfigPath: configPath(),
		DebugLog:   flagDebug,
	}

	return tui.Run(opts, session, loadSharedConfig(), debugf)
}
