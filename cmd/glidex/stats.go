// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glidex/glidex/stats"
)

var flagLimit int

var statsCmd = &cobra.Command{
	Use:   "stats [run]",
	Short: "List stored replay runs",
	Long: `List the most recent replay runs, or the frames of one run.

Examples:
  glidex stats
  glidex stats --limit 5
  glidex stats 12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := stats.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
		frames, err := store.Frames(id)
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			return fmt.Errorf("%w: %d", stats.ErrNoRun, id)
		}
		fmt.Fprintf(out, "  %-6s  %-8s  %-8s  %-6s  %-7s  %-10s  %s\n",
			"Frame", "Batches", "Vertices", "Draws", "Dropped", "Time", "State")
		for _, f := range frames {
			fmt.Fprintf(out, "  %-6d  %-8d  %-8d  %-6d  %-7d  %-10s  %s\n",
				f.Index, f.Batches, f.Vertices, f.DrawCalls, f.Dropped, f.FrameTime, f.GameState)
		}
		return nil
	}

	runs, err := store.Runs(flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out, "Run 'glidex replay <trace.yaml>' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-14s  %-7s  %-8s  %-10s  %-8s  %s\n",
		"ID", "When", "Device", "Frames", "Vertices", "Draws", "Trace")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-14s  %-7s  %-8s  %-10s  %-8s  %s\n",
			r.ID, humanize.Time(r.CreatedAt), r.Device,
			humanize.Comma(r.Frames), humanize.Comma(r.Vertices), humanize.Comma(r.DrawCalls), r.Trace)
	}
	return nil
}
