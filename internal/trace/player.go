// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package trace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glidex/glidex"
	"github.com/glidex/glidex/motion"
	"github.com/glidex/glidex/texture"
)

// FrameFunc is called after every buffer swap with the frame's index
// and statistics. A non-nil error stops playback.
type FrameFunc func(frame int, stats glidex.FrameStats) error

// traceEpoch is where trace time starts. It must not be the zero time.
var traceEpoch = time.Unix(0, 0)

// Player replays a trace. It also serves as the context's unit provider,
// answering with the units of the frame being played, and as its clock,
// answering with trace time.
type Player struct {
	tr     *Trace
	units  map[motion.Handle]motion.UnitInfo
	now    time.Time
	logger *slog.Logger
}

// NewPlayer creates a player for tr.
func NewPlayer(tr *Trace) *Player {
	return &Player{
		tr:     tr,
		units:  make(map[motion.Handle]motion.UnitInfo),
		now:    traceEpoch,
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger for per-op diagnostics. Nil restores silence.
func (p *Player) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	p.logger = l
}

// Units returns the provider to pass to glidex.WithUnitInfo.
func (p *Player) Units() motion.UnitInfoProvider {
	return motion.UnitInfoFunc(p.unitInfo)
}

func (p *Player) unitInfo(h motion.Handle) motion.UnitInfo {
	return p.units[h]
}

// Clock returns the current trace time. Each played frame advances it by
// the frame's duration just before the buffer swap.
func (p *Player) Clock() time.Time { return p.now }

// Options returns the context options the trace asks for. The context is
// always timed by the trace clock, so replay speed does not affect motion
// prediction.
func (p *Player) Options() []glidex.Option {
	opts := []glidex.Option{glidex.WithClock(p.Clock)}
	if p.tr.Game[0] > 0 && p.tr.Game[1] > 0 {
		opts = append(opts, glidex.WithGameSize(p.tr.Game[0], p.tr.Game[1]))
	}
	if p.tr.HasUnits() {
		opts = append(opts, glidex.WithUnitInfo(p.Units()))
	}
	return opts
}

// Play runs every frame against gc, calling onFrame after each swap.
// Op errors are logged and playback continues; a failed swap or
// a canceled ctx stops it.
func (p *Player) Play(ctx context.Context, gc *glidex.Context, onFrame FrameFunc) error {
	for i, f := range p.tr.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}

		clear(p.units)
		for _, u := range f.Units {
			p.units[motion.Handle(u.Handle)] = motion.UnitInfo{
				ID:   u.ID,
				Type: u.Type,
				Pos:  motion.Point{X: motion.FixedFromFloat(u.Pos[0]), Y: motion.FixedFromFloat(u.Pos[1])},
			}
		}

		for j, op := range f.Ops {
			if err := apply(gc, op); err != nil {
				p.logger.Warn("trace: op failed", "frame", i, "op", j, "name", op.Op, "err", err)
			}
		}

		p.now = p.now.Add(p.tr.FrameDuration(i))
		stats, err := gc.BufferSwap(ctx)
		if err != nil {
			return fmt.Errorf("trace: frame %d: %w", i, err)
		}
		if onFrame != nil {
			if err := onFrame(i, stats); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply issues one op. Ops must have been validated.
func apply(gc *glidex.Context, op Op) error {
	switch op.Op {
	case OpTexDownload:
		return gc.TexDownload(op.Addr, op.Texels(), op.Width, op.Height)
	case OpTexSource:
		return gc.TexSource(op.Addr, op.Width, op.Height)
	case OpPalette:
		var pal texture.Palette
		for i := range pal {
			pal[i] = op.Seed*0x010101 + uint32(i)
		}
		return gc.DownloadPalette(&pal)
	case OpBlend:
		gc.SetAlphaBlendFunction(glidex.BlendFactor(op.Args[0]), glidex.BlendFactor(op.Args[1]),
			glidex.BlendFactor(op.Args[2]), glidex.BlendFactor(op.Args[3]))
	case OpCombine:
		fn, factor := glidex.CombineFunction(op.Args[0]), glidex.CombineFactor(op.Args[1])
		local, other := glidex.CombineLocal(op.Args[2]), glidex.CombineOther(op.Args[3])
		if op.Target == "alpha" {
			gc.SetAlphaCombine(fn, factor, local, other)
		} else {
			gc.SetColorCombine(fn, factor, local, other)
		}
	case OpConstant:
		gc.SetConstantColor(op.Color)
	case OpChromaKey:
		mode := glidex.ChromaKeyDisable
		if op.Enable {
			mode = glidex.ChromaKeyEnable
		}
		gc.SetChromaKeyMode(mode)
	case OpFilter:
		mode := glidex.TextureFilterPointSampled
		if op.Enable {
			mode = glidex.TextureFilterBilinear
		}
		gc.SetTextureFilterMode(mode)
	case OpSurface:
		if op.Surface != nil {
			gc.SetSurface(*op.Surface)
		} else {
			gc.NewSurface()
		}
	case OpPoint:
		for _, v := range op.Verts {
			gc.DrawPoint(gameVertex(v, motion.Offset{}))
		}
	case OpLine:
		for i := 0; i+1 < len(op.Verts); i += 2 {
			gc.DrawLine(gameVertex(op.Verts[i], motion.Offset{}), gameVertex(op.Verts[i+1], motion.Offset{}))
		}
	case OpFan:
		gc.DrawVertexArray(glidex.TriangleFan, gameVertices(op.Verts, motion.Offset{}))
	case OpStrip:
		gc.DrawVertexArray(glidex.TriangleStrip, gameVertices(op.Verts, motion.Offset{}))
	case OpQuad:
		gc.DrawVertexArrayContiguous(glidex.TriangleFan, gameVertices(op.Verts, motion.Offset{}))
	case OpUnit:
		off := gc.UnitOffset(motion.Handle(op.Handle), screenPoint(op.Pos), op.Player)
		drawQuad(gc, op.Verts, off)
	case OpText:
		off := gc.TextOffset(op.ID, screenPoint(op.Pos))
		drawQuad(gc, op.Verts, off)
	case OpShadow:
		gc.BeginShadow(screenPoint(op.Pos))
		drawQuad(gc, op.Verts, motion.Offset{})
		gc.EndShadow()
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidOp, op.Op)
	}
	return nil
}

func drawQuad(gc *glidex.Context, verts []Vertex, off motion.Offset) {
	if len(verts) == 4 {
		gc.DrawVertexArrayContiguous(glidex.TriangleFan, gameVertices(verts, off))
	}
}

func screenPoint(p [2]int32) motion.ScreenPoint {
	return motion.ScreenPoint{X: p[0], Y: p[1]}
}

func gameVertex(v Vertex, off motion.Offset) glidex.GameVertex {
	return glidex.GameVertex{X: v.X + off.X, Y: v.Y + off.Y, S: v.S, T: v.T, Color: v.Color}
}

func gameVertices(vs []Vertex, off motion.Offset) []glidex.GameVertex {
	out := make([]glidex.GameVertex, len(vs))
	for i, v := range vs {
		out[i] = gameVertex(v, off)
	}
	return out
}
