// ABOUTME: Check command probing every stream URL for liveness
// ABOUTME: Optionally prunes dead stations from the file with --prune

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"streams-editor/editor"
	"streams-editor/probe"
	"streams-editor/sii"
)

var (
	flagCheckPrune   bool
	flagCheckTimeout int
	flagCheckWorkers int
)

var checkCmd = &cobra.Command{
	Use:   "check <live_streams.sii>",
	Short: "Probe every station URL and report dead streams",
	Long: `Check sends a HEAD request to every station URL, falling back to a
ranged GET for servers that reject HEAD. Streams answering with a
success or redirect status count as alive. With --prune, dead stations
are removed from the file and the rest renumbered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(args[0])
	},
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckPrune, "prune", false, "remove dead stations and write the file back")
	checkCmd.Flags().IntVar(&flagCheckTimeout, "timeout", 0, "per-request timeout in seconds (default from config)")
	checkCmd.Flags().IntVar(&flagCheckWorkers, "workers", 0, "concurrent probes (default from config)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(path string) error {
	session, err := openSession(path)
	if err != nil {
		return err
	}

	records := session.Records()
	if len(records) == 0 {
		fmt.Println("No stations to check")

		return nil
	}

	sharedCfg := loadSharedConfig()
	cfg := sharedCfg.Get()

	timeout := cfg.ProbeTimeoutSecs
	if flagCheckTimeout > 0 {
		timeout = flagCheckTimeout
	}

	workers := cfg.ProbeWorkers
	if flagCheckWorkers > 0 {
		workers = flagCheckWorkers
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stop
		cancel()
	}()

	fmt.Printf("Checking %d stations (%d workers, %ds timeout, press Ctrl+C to stop)...\n\n",
		len(records), workers, timeout)

	start := time.Now()
	checker := probe.NewChecker(time.Duration(timeout)*time.Second, workers)

	var done atomic.Int64
	isTerminal := isTTY(os.Stdout)

	results := checker.CheckAll(ctx, records, func(_ probe.Result) {
		n := done.Add(1)
		if isTerminal {
			fmt.Printf("\r[%d/%d] checked", n, len(records))
		}
	})

	if isTerminal {
		fmt.Print("\r\033[K")
	}

	alive := make([]sii.Record, 0, len(results))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tStatus\tName\tURL"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	for _, res := range results {
		status := "DEAD"
		if res.OK {
			status = "OK"
			alive = append(alive, res.Record)
		}

		detail := ""
		if res.StatusCode != 0 {
			detail = fmt.Sprintf(" (%d)", res.StatusCode)
		}

		if _, err := fmt.Fprintf(w, "%d\t%s%s\t%s\t%s\n",
			res.Record.Index,
			status,
			detail,
			truncate(res.Record.Name, 30),
			truncate(res.Record.URL, 60),
		); err != nil {
			log.Printf("Warning: failed to write result: %v", err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	dead := len(results) - len(alive)
	fmt.Printf("\n%d alive, %d dead (%v)\n", len(alive), dead, time.Since(start).Round(time.Millisecond))

	if ctx.Err() != nil {
		return fmt.Errorf("interrupted, file not modified")
	}

	if !flagCheckPrune || dead == 0 {
		return nil
	}

	session.Replace(editor.ReindexSequential(alive))

	if err := session.Save(cfg.BackupCount); err != nil {
		return fmt.Errorf("failed to save pruned list: %w", err)
	}

	fmt.Printf("Pruned %d dead stations, %d remain in %s\n", dead, len(alive), path)

	return nil
}
