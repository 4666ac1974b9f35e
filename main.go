// ABOUTME: Entry point for the streams-editor application
// ABOUTME: Defines the cobra root command and shared persistent flags

// Package main provides the entry point for streams-editor, a desktop
// editor for the live_streams.sii radio station list.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"streams-editor/config"
)

var (
	flagDebug      bool
	flagConfigPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streams-editor [live_streams.sii]",
	Short: "Edit the radio station list in a live_streams.sii file",
	Long: `streams-editor reads the stream_data records in a live_streams.sii file
and lets you edit, validate, sort, import, export, and health-check them,
writing changes back without touching any other line of the file.

Run with a file argument to open the interactive editor, or use a
subcommand for non-interactive operation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		return runEdit(args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging to streams-editor-debug.log")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path (default: streams-editor.toml or ~/.config/streams-editor/config.toml)")

	rootCmd.SilenceUsage = true

	cobra.OnInitialize(func() {
		if flagDebug {
			if err := SetupDebugLog("streams-editor-debug.log"); err != nil {
				log.Printf("Failed to setup debug log: %v", err)
			}
		}
	})
}

// configPath returns the effective config file path
func configPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}

	return config.GetConfigPath()
}

// loadSharedConfig loads the config file into a thread-safe wrapper
func loadSharedConfig() *config.SharedConfig {
	cfg, err := config.LoadConfig(configPath())
	if err != nil {
		log.Printf("Warning: %v (using defaults)", err)
	}

	return config.NewSharedConfig(cfg)
}

func main() {
	Execute()
}
