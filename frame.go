// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import (
	"context"
	"fmt"
	"time"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/motion"
	"github.com/glidex/glidex/texture"
)

// GameState is the coarse game phase, inferred from what is drawn.
type GameState uint8

const (
	GameStateUnknown GameState = iota
	// GameStateIntro is an intro movie: frames without any batches.
	GameStateIntro
	// GameStateTitleScreen is the title screen.
	GameStateTitleScreen
	// GameStateOther is anything else.
	GameStateOther
)

// String implements fmt.Stringer.
func (s GameState) String() string {
	switch s {
	case GameStateUnknown:
		return "Unknown"
	case GameStateIntro:
		return "Intro"
	case GameStateTitleScreen:
		return "TitleScreen"
	case GameStateOther:
		return "Other"
	default:
		return fmt.Sprintf("GameState(%d)", uint8(s))
	}
}

// titleScreenMinY is the lowest screen row the title screen texture is
// drawn at.
const titleScreenMinY = 550

// FrameStats describes one presented frame.
type FrameStats struct {
	Frame     uint64
	Batches   int
	Vertices  int
	DrawCalls int
	Dropped   int

	// FrameTime is the wall time since the previous present.
	FrameTime time.Duration
	GameState GameState
}

// Totals accumulates FrameStats over the life of a Context.
type Totals struct {
	Frames    uint64
	Batches   uint64
	Vertices  uint64
	DrawCalls uint64
	Dropped   uint64
}

func (t *Totals) add(s FrameStats) {
	t.Frames++
	t.Batches += uint64(s.Batches)
	t.Vertices += uint64(s.Vertices)
	t.DrawCalls += uint64(s.DrawCalls)
	t.Dropped += uint64(s.Dropped)
}

// Totals returns the accumulated frame statistics.
func (c *Context) Totals() Totals { return c.totals }

// Frame returns the number of frames presented so far.
func (c *Context) Frame() uint64 { return c.frame }

// GameState returns the game phase detected at the last buffer swap.
func (c *Context) GameState() GameState { return c.gameState }

// updateGameState infers the game phase from the frame's batches.
func (c *Context) updateGameState() {
	batches := c.acc.Batches()
	if (c.gameState == GameStateUnknown || c.gameState == GameStateIntro) && len(batches) == 0 {
		c.gameState = GameStateIntro
		return
	}
	c.gameState = GameStateOther
	vs := c.verts.Vertices()
	for _, b := range batches {
		if b.TextureHash() != texture.HashTitleScreen || b.StartVertex() >= len(vs) {
			continue
		}
		if vs[b.StartVertex()].Y >= titleScreenMinY {
			c.gameState = GameStateTitleScreen
			return
		}
	}
}

// BufferSwap ends the frame. It moves shadows with their units, uploads
// the frame's vertices, submits the merged batches in draw order and
// presents. Present may block for pacing; ctx cancels it.
//
// The per-frame buffers are reset and the motion clock is advanced with
// the measured frame time even if Present fails.
func (c *Context) BufferSwap(ctx context.Context) (FrameStats, error) {
	c.updateGameState()

	vs := c.verts.Vertices()
	if c.predictor != nil {
		c.predictor.ApplyShadowOffsets(vs)
	}

	base := c.dev.UploadVertices(vs)
	batches := c.acc.Batches()
	stats := FrameStats{
		Frame:     c.frame,
		Batches:   len(batches),
		Vertices:  len(vs),
		DrawCalls: c.merger.Merge(batches, base, c.dev),
		Dropped:   c.acc.Dropped(),
		GameState: c.gameState,
	}

	err := c.dev.Present(ctx)
	if err != nil {
		err = fmt.Errorf("glidex: present: %w", err)
	}

	now := c.now()
	if !c.lastPresent.IsZero() {
		stats.FrameTime = now.Sub(c.lastPresent)
	}
	c.lastPresent = now

	if c.predictor != nil {
		measured := motion.FromDuration(stats.FrameTime)
		c.predictor.PrepareForNextFrame(c.lastFrameTime, measured, measured)
		c.lastFrameTime = measured
	}

	c.diag.Do(func() {
		c.logger.Debug("glidex: frame",
			"frame", stats.Frame,
			"batches", stats.Batches,
			"drawCalls", stats.DrawCalls,
			"dropped", stats.Dropped,
			"vertices", stats.Vertices)
	})

	c.totals.add(stats)
	c.frame++
	c.acc.Reset()
	c.verts.Reset()
	c.nextSurface = batch.SurfaceFirst
	c.read.dirty = true
	c.updateGameArea()

	return stats, err
}
