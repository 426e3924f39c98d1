// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/glidex/glidex"
	"github.com/glidex/glidex/motion"
	"github.com/glidex/glidex/recording"
)

func loadTown(t *testing.T) *Trace {
	t.Helper()
	tr, err := Load(filepath.Join("testdata", "town.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestPlay(t *testing.T) {
	tr := loadTown(t)
	p := NewPlayer(tr)
	rec := recording.NewRecorder(0)
	gc, err := glidex.NewContext(rec, p.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	if !gc.MotionEnabled() {
		t.Error("trace with units did not enable motion prediction")
	}

	var frames []glidex.FrameStats
	err = p.Play(t.Context(), gc, func(i int, s glidex.FrameStats) error {
		if i != len(frames) {
			t.Errorf("onFrame index %d, want %d", i, len(frames))
		}
		frames = append(frames, s)
		return nil
	})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("played %d frames, want 3", len(frames))
	}

	if frames[0].GameState != glidex.GameStateIntro || frames[0].Batches != 0 {
		t.Errorf("frame 0 = %+v, want empty intro", frames[0])
	}
	// quad, shadow, unit and line.
	if frames[1].Batches != 4 || frames[1].Vertices != 24 {
		t.Errorf("frame 1 = %d batches %d vertices, want 4 and 24", frames[1].Batches, frames[1].Vertices)
	}
	// The strip is off screen.
	if frames[2].Batches != 1 || frames[2].Dropped != 1 || frames[2].Vertices != 9 {
		t.Errorf("frame 2 = %+v, want 1 batch 9 vertices 1 dropped", frames[2])
	}

	st := rec.Stats()
	if st.Frames != 3 {
		t.Errorf("recorded %d presents, want 3", st.Frames)
	}
	if st.TextureUploads != 2 {
		t.Errorf("TextureUploads = %d, want 2", st.TextureUploads)
	}
	// White palette plus the trace palette.
	if st.PaletteUploads != 2 {
		t.Errorf("PaletteUploads = %d, want 2", st.PaletteUploads)
	}
}

func TestPlayUsesTraceTime(t *testing.T) {
	tr := loadTown(t)
	p := NewPlayer(tr)
	gc, err := glidex.NewContext(recording.NewCounter(0), p.Options()...)
	if err != nil {
		t.Fatal(err)
	}

	var got []time.Duration
	err = p.Play(t.Context(), gc, func(_ int, s glidex.FrameStats) error {
		got = append(got, s.FrameTime)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []time.Duration{0, 20 * time.Millisecond, 25 * time.Millisecond}
	if !slices.Equal(got, want) {
		t.Errorf("frame times = %v, want %v", got, want)
	}
	if elapsed := p.Clock().Sub(traceEpoch); elapsed != 65*time.Millisecond {
		t.Errorf("trace clock advanced %v, want 65ms", elapsed)
	}
}

// tickingTrace builds a 60 Hz trace of one unit that moves once per
// simulation tick. Ticks are placed where a frame clock fed the same frame
// times expects them, which is how a game running at the simulation rate
// looks to the predictor.
func tickingTrace(frames int) (tr *Trace, moves int) {
	tr = &Trace{DT: DefaultFrameDuration}
	var (
		clk     motion.Clock
		last    motion.Fixed
		x       float64
		visible bool
	)
	for i := range frames {
		var f Frame
		if clk.UpdateExpected() {
			if visible {
				x += 4
				moves++
			}
			visible = true
		}
		if visible {
			f.Units = []Unit{{Handle: 1, ID: 9, Type: 1, Pos: [2]float64{x, 50}}}
			f.Ops = []Op{{Op: OpUnit, Handle: 1, Pos: [2]int32{int32(x), 50}}}
		}
		tr.Frames = append(tr.Frames, f)

		var measured motion.Fixed
		if i > 0 {
			measured = motion.FromDuration(tr.FrameDuration(i))
		}
		clk.Advance(last, measured, measured)
		last = measured
	}
	return tr, moves
}

func TestPlaySimulationRate(t *testing.T) {
	tr, moves := tickingTrace(120)
	// Two seconds at 25 ticks a second, less the first sighting.
	if moves < 45 {
		t.Fatalf("trace moves %d times, want about 48", moves)
	}

	p := NewPlayer(tr)
	gc, err := glidex.NewContext(recording.NewCounter(0), p.Options()...)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play(t.Context(), gc, nil); err != nil {
		t.Fatal(err)
	}
	st := gc.MotionStats()
	if st.UnexpectedUpdates != 0 || st.Resets != 0 {
		t.Errorf("MotionStats() = %+v, want no unexpected updates or resets", st)
	}
}

func TestPlayUnitProvider(t *testing.T) {
	tr := &Trace{Frames: []Frame{{
		Units: []Unit{{Handle: 5, ID: 11, Type: 2, Pos: [2]float64{3.5, 4}}},
	}}}
	p := NewPlayer(tr)
	gc, err := glidex.NewContext(recording.NewCounter(0), p.Options()...)
	if err != nil {
		t.Fatal(err)
	}

	var seen bool
	err = p.Play(t.Context(), gc, func(int, glidex.FrameStats) error {
		info := p.Units().UnitInfo(5)
		seen = info.ID == 11 && info.Type == 2 && info.Pos.X.Float() == 3.5
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("unit provider did not report the frame's unit")
	}
}

func TestPlayStops(t *testing.T) {
	tr := loadTown(t)

	t.Run("canceled", func(t *testing.T) {
		p := NewPlayer(tr)
		gc, err := glidex.NewContext(recording.NewCounter(0), p.Options()...)
		if err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		if err := p.Play(ctx, gc, nil); !errors.Is(err, context.Canceled) {
			t.Errorf("Play() = %v, want context.Canceled", err)
		}
		if gc.Frame() != 0 {
			t.Errorf("played %d frames after cancel", gc.Frame())
		}
	})

	t.Run("callback error", func(t *testing.T) {
		p := NewPlayer(tr)
		gc, err := glidex.NewContext(recording.NewCounter(0), p.Options()...)
		if err != nil {
			t.Fatal(err)
		}
		stop := errors.New("stop")
		err = p.Play(t.Context(), gc, func(i int, _ glidex.FrameStats) error {
			if i == 1 {
				return stop
			}
			return nil
		})
		if !errors.Is(err, stop) || gc.Frame() != 2 {
			t.Errorf("Play() = %v after %d frames, want stop after 2", err, gc.Frame())
		}
	})
}

func TestPlayContinuesAfterOpError(t *testing.T) {
	tr := &Trace{Frames: []Frame{{Ops: []Op{
		{Op: OpTexSource, Addr: 0x80, Width: 8, Height: 8},
		{Op: OpPoint, Verts: []Vertex{{X: 1, Y: 1}}},
	}}}}
	p := NewPlayer(tr)
	gc, err := glidex.NewContext(recording.NewCounter(0))
	if err != nil {
		t.Fatal(err)
	}
	var batches int
	err = p.Play(t.Context(), gc, func(_ int, s glidex.FrameStats) error {
		batches = s.Batches
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if batches != 1 {
		t.Errorf("Batches = %d, want the point after the failed texsource", batches)
	}
}
