// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package motion

import (
	"testing"
	"time"
)

const quarterTick = FrameLength / 4 // 655

func TestClockAdvanceConstantRate(t *testing.T) {
	var c Clock
	for i := 1; i <= 4; i++ {
		if adv := c.Advance(quarterTick, quarterTick, quarterTick); adv.Update || adv.Reset {
			t.Fatalf("step %d: Advance() = %+v, want no update", i, adv)
		}
		if f := c.Fraction(); f < 0 || f > 1 {
			t.Errorf("step %d: Fraction() = %v outside [0,1]", i, f)
		}
	}
	if got := c.SinceLastUpdate(); got != 4*quarterTick {
		t.Errorf("SinceLastUpdate() = %d, want %d", got, 4*quarterTick)
	}

	adv := c.Advance(quarterTick, quarterTick, quarterTick)
	if !adv.Update || adv.Reset {
		t.Fatalf("step 5: Advance() = %+v, want update", adv)
	}
	if !c.UpdateExpected() {
		t.Error("UpdateExpected() = false on update frame")
	}
	if got := c.SinceLastUpdate(); got != 5*quarterTick-FrameLength {
		t.Errorf("SinceLastUpdate() = %d, want %d", got, 5*quarterTick-FrameLength)
	}
	if got := c.FromPrevFrame(); got != 11 {
		t.Errorf("FromPrevFrame() = %d, want 11", got)
	}
	if got := c.CurrentFrameTime(); got != quarterTick+LookAhead {
		t.Errorf("CurrentFrameTime() = %d, want %d", got, quarterTick+LookAhead)
	}
}

func TestClockUpdateRate(t *testing.T) {
	var c Clock
	updates := 0
	for i := 0; i < 1000; i++ {
		if c.Advance(quarterTick, quarterTick, quarterTick).Update {
			updates++
		}
	}
	// 1000 quarter ticks is just under 250 ticks.
	if updates < 249 || updates > 250 {
		t.Errorf("updates = %d over 1000 quarter-tick frames, want ~250", updates)
	}
}

func TestClockDriftReset(t *testing.T) {
	tests := []struct {
		name                               string
		prevProjected, prevActual, project Fixed
	}{
		{"long stall", 0, 0, 3 * FrameLength},
		{"clock ran backwards", 3 * FrameLength, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Clock
			adv := c.Advance(tt.prevProjected, tt.prevActual, tt.project)
			if !adv.Reset || !adv.Update {
				t.Fatalf("Advance() = %+v, want update and reset", adv)
			}
			if c.SinceLastUpdate() != 0 || c.FromPrevFrame() != 0 || c.CurrentFrameTime() != 0 {
				t.Errorf("clock not zeroed: since=%d carry=%d frame=%d",
					c.SinceLastUpdate(), c.FromPrevFrame(), c.CurrentFrameTime())
			}
		})
	}
}

func TestClockReconcile(t *testing.T) {
	t.Run("first half draws back", func(t *testing.T) {
		var c Clock
		c.Advance(quarterTick, quarterTick, quarterTick) // since 655, frame 665
		adjust, jumped := c.Reconcile()
		if jumped {
			t.Fatal("Reconcile() jumped ahead in the first half")
		}
		if adjust != 163 {
			t.Errorf("draw back = %d, want 163", adjust)
		}
		if got := c.SinceLastUpdate(); got != quarterTick-163 {
			t.Errorf("SinceLastUpdate() = %d, want %d", got, quarterTick-163)
		}
		if !c.UpdateExpected() {
			t.Error("UpdateExpected() = false after Reconcile")
		}
	})

	t.Run("second half jumps ahead", func(t *testing.T) {
		var c Clock
		for i := 0; i < 3; i++ {
			c.Advance(quarterTick, quarterTick, quarterTick)
		}
		adjust, jumped := c.Reconcile()
		if !jumped {
			t.Fatal("Reconcile() drew back in the second half")
		}
		if adjust != FrameLength-3*quarterTick {
			t.Errorf("jump = %d, want %d", adjust, FrameLength-3*quarterTick)
		}
		if c.SinceLastUpdate() != 0 {
			t.Errorf("SinceLastUpdate() = %d, want 0", c.SinceLastUpdate())
		}
		if want := adjust + quarterTick + LookAhead; c.FromPrevFrame() != want {
			t.Errorf("FromPrevFrame() = %d, want %d", c.FromPrevFrame(), want)
		}
	})
}

func TestFromDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want Fixed
	}{
		{40 * time.Millisecond, 2621},
		{10 * time.Millisecond, 655},
		{0, 0},
		{time.Hour * 24 * 365, 1<<31 - 1},
	}
	for _, tt := range tests {
		if got := FromDuration(tt.d); got != tt.want {
			t.Errorf("FromDuration(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}
