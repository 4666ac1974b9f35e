// ABOUTME: Config command for inspecting and initializing editor settings
// ABOUTME: Writes a default TOML config so settings are easy to discover

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"streams-editor/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n\n", path)
		fmt.Printf("backup_count       = %d\n", cfg.BackupCount)
		fmt.Printf("default_lang       = %q\n", cfg.DefaultLang)
		fmt.Printf("probe_timeout_secs = %d\n", cfg.ProbeTimeoutSecs)
		fmt.Printf("probe_workers      = %d\n", cfg.ProbeWorkers)
		fmt.Printf("directory_url      = %q\n", cfg.DirectoryURL)
		fmt.Printf("directory_limit    = %d\n", cfg.DirectoryLimit)

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, edit it directly", path)
		}

		if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
			return err
		}

		fmt.Printf("Wrote default config to %s\n", path)

		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
