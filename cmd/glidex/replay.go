// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/glidex/glidex"
	"github.com/glidex/glidex/config"
	"github.com/glidex/glidex/internal/trace"
	"github.com/glidex/glidex/recording"
	"github.com/glidex/glidex/render"
	"github.com/glidex/glidex/stats"
)

var (
	flagConfig  string
	flagDevice  string
	flagDX      string
	flagNoStore bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>",
	Short: "Replay a trace and print frame totals",
	Long: `Replay every frame of a YAML trace against a device from the
recording registry ("record" or "count"), then print the totals.

Configuration is read from --config, ~/.glidex/glidex.yaml or ./glidex.yaml.
Legacy -dx switches can be given with --dx.

Examples:
  glidex replay town.yaml
  glidex replay town.yaml --dx "-dxnomotionprediction -dxdbg_dump_textures"`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagConfig, "config", "", "Configuration file")
	replayCmd.Flags().StringVar(&flagDevice, "device", "record", "Device to replay into")
	replayCmd.Flags().StringVar(&flagDX, "dx", "", "Legacy command-line switches")
	replayCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not store frame statistics")
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := glidex.Logger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg.ApplyCommandLine(flagDX)

	tr, err := trace.Load(args[0])
	if err != nil {
		return err
	}

	dev, err := openDevice(flagDevice, cfg)
	if err != nil {
		return err
	}

	player := trace.NewPlayer(tr)
	player.SetLogger(logger)
	opts := append([]glidex.Option{glidex.WithOptions(cfg)}, player.Options()...)
	gc, err := glidex.NewContext(dev, opts...)
	if err != nil {
		return err
	}

	frames := make([]stats.Frame, 0, len(tr.Frames))
	bar := progressbar.Default(int64(len(tr.Frames)), "replaying")
	err = player.Play(cmd.Context(), gc, func(i int, s glidex.FrameStats) error {
		frames = append(frames, stats.Frame{
			Index:     int64(s.Frame),
			Batches:   s.Batches,
			Vertices:  s.Vertices,
			DrawCalls: s.DrawCalls,
			Dropped:   s.Dropped,
			FrameTime: s.FrameTime,
			GameState: s.GameState.String(),
		})
		return bar.Add(1)
	})
	bar.Close()
	if err != nil {
		return err
	}

	printTotals(cmd, gc)

	if flagNoStore {
		return nil
	}
	return storeRun(args[0], frames)
}

// openDevice builds the named device with the configured vertex ring.
func openDevice(name string, cfg config.Options) (render.Device, error) {
	dev, err := recording.NewDevice(name, cfg.Capacity.VertexRing)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, recording.Devices())
	}
	return dev, nil
}

func printTotals(cmd *cobra.Command, gc *glidex.Context) {
	t := gc.Totals()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-10s %s\n", "frames", humanize.Comma(int64(t.Frames)))
	fmt.Fprintf(out, "  %-10s %s\n", "batches", humanize.Comma(int64(t.Batches)))
	fmt.Fprintf(out, "  %-10s %s\n", "draws", humanize.Comma(int64(t.DrawCalls)))
	fmt.Fprintf(out, "  %-10s %s\n", "vertices", humanize.Comma(int64(t.Vertices)))
	fmt.Fprintf(out, "  %-10s %s\n", "dropped", humanize.Comma(int64(t.Dropped)))
	if t.Batches > 0 {
		fmt.Fprintf(out, "  %-10s %.1f%%\n", "merged", 100*(1-float64(t.DrawCalls)/float64(t.Batches)))
	}
	if gc.MotionEnabled() {
		ms := gc.MotionStats()
		fmt.Fprintf(out, "  %-10s %d unexpected updates, %d resets\n", "motion", ms.UnexpectedUpdates, ms.Resets)
	}
}

func storeRun(tracePath string, frames []stats.Frame) error {
	store, err := stats.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	name, err := filepath.Abs(tracePath)
	if err != nil {
		name = tracePath
	}
	run, err := store.BeginRun(name, flagDevice)
	if err != nil {
		return err
	}
	if err := store.Record(run, frames); err != nil {
		return err
	}
	glidex.Logger().Info("run stored", "id", run, "db", flagDBPath)
	return nil
}
