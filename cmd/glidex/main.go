// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// glidex replays Glide call traces through the batch engine and keeps
// per-frame statistics.
//
// Usage:
//
//	glidex replay <trace.yaml>  - Replay a trace and print totals
//	glidex stats                - List stored replay runs
//
// Global flags:
//
//	--db <path>     - Statistics database (default: ~/.glidex/stats.db)
//	--verbose       - Log per-frame diagnostics
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glidex/glidex"
)

var (
	flagDBPath  string
	flagVerbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glidex",
	Short: "Replay Glide call traces through the glidex batch engine",
	Long: `glidex drives the batch accumulation, merge and motion prediction
engine from recorded Glide call traces and stores per-frame metrics.

Examples:
  glidex replay testdata/town.yaml
  glidex replay town.yaml --device count --db /tmp/stats.db
  glidex stats`,
	Version:       glidex.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		glidex.SetLogger(newLogger(flagVerbose))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.glidex/stats.db", "Path to statistics database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log per-frame diagnostics")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLogger returns a slog logger backed by charmbracelet/log on stderr.
func newLogger(verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "glidex",
		Level:           level,
	})
	return slog.New(handler)
}
