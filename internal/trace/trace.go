// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package trace defines a YAML recording of Glide calls and replays it
// against a glidex.Context.
//
// A trace is a list of frames. Each frame lists the units the game reports
// for that frame and the calls made during it; the frame ends with a
// buffer swap.
//
//	game: [640, 480]
//	dt: 16ms
//	frames:
//	  - units:
//	      - {handle: 1, id: 7, type: 1, pos: [100, 100]}
//	    ops:
//	      - {op: texdownload, addr: 0, width: 32, height: 32, fill: 1}
//	      - {op: texsource, addr: 0, width: 32, height: 32}
//	      - {op: unit, handle: 1, pos: [40, 40], verts: [...]}
package trace

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Op names.
const (
	OpTexDownload = "texdownload"
	OpTexSource   = "texsource"
	OpPalette     = "palette"
	OpBlend       = "blend"
	OpCombine     = "combine"
	OpConstant    = "constant"
	OpChromaKey   = "chromakey"
	OpFilter      = "filter"
	OpSurface     = "surface"
	OpPoint       = "point"
	OpLine        = "line"
	OpFan         = "fan"
	OpStrip       = "strip"
	OpQuad        = "quad"
	OpUnit        = "unit"
	OpText        = "text"
	OpShadow      = "shadow"
)

// DefaultFrameDuration is the frame time used when a trace sets none.
const DefaultFrameDuration = time.Second / 60

// ErrInvalidOp is returned for an op with missing or malformed arguments.
var ErrInvalidOp = errors.New("trace: invalid op")

// Trace is a decoded trace file.
type Trace struct {
	// Game is the game resolution. Zero keeps the context default.
	Game [2]int `yaml:"game,omitempty"`
	// DT is the time between two swaps, DefaultFrameDuration if zero.
	DT     time.Duration `yaml:"dt,omitempty"`
	Frames []Frame       `yaml:"frames"`
}

// Frame is the calls made between two buffer swaps.
type Frame struct {
	// DT overrides the trace frame time for this frame.
	DT    time.Duration `yaml:"dt,omitempty"`
	Units []Unit        `yaml:"units,omitempty"`
	Ops   []Op          `yaml:"ops"`
}

// Unit is what the game reports for a unit handle during one frame.
type Unit struct {
	Handle uint64     `yaml:"handle"`
	ID     uint32     `yaml:"id"`
	Type   uint32     `yaml:"type"`
	Pos    [2]float64 `yaml:"pos"`
}

// Vertex is a game vertex.
type Vertex struct {
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
	S     float32 `yaml:"s,omitempty"`
	T     float32 `yaml:"t,omitempty"`
	Color uint32  `yaml:"color,omitempty"`
}

// Op is one recorded call. Which fields are used depends on Op.
type Op struct {
	Op string `yaml:"op"`

	// texdownload, texsource
	Addr   uint32 `yaml:"addr,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	// texdownload texel i is byte(Fill + Step*i).
	Fill int `yaml:"fill,omitempty"`
	Step int `yaml:"step,omitempty"`

	// palette entry i is Seed*0x010101 + i; constant color
	Seed  uint32 `yaml:"seed,omitempty"`
	Color uint32 `yaml:"color,omitempty"`

	// blend: rgbSrc, rgbDst, alphaSrc, alphaDst.
	// combine: function, factor, local, other.
	Args []uint32 `yaml:"args,omitempty"`
	// combine: "color" or "alpha".
	Target string `yaml:"target,omitempty"`

	// chromakey, filter (bilinear)
	Enable bool `yaml:"enable,omitempty"`

	// surface
	Surface *uint16 `yaml:"surface,omitempty"`

	// unit, text, shadow
	Handle uint64   `yaml:"handle,omitempty"`
	ID     uint64   `yaml:"id,omitempty"`
	Pos    [2]int32 `yaml:"pos,omitempty"`
	Player bool     `yaml:"player,omitempty"`

	// point, line, fan, strip, quad, unit, text, shadow
	Verts []Vertex `yaml:"verts,omitempty"`
}

// Load reads and validates the trace at path.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trace: failed to read %s: %w", path, err)
	}
	tr, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("trace: failed to parse %s: %w", path, err)
	}
	return tr, nil
}

// Parse decodes and validates a trace.
func Parse(data []byte) (*Trace, error) {
	var tr Trace
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, err
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return &tr, nil
}

// Marshal encodes tr as YAML.
func Marshal(tr *Trace) ([]byte, error) {
	return yaml.Marshal(tr)
}

// HasUnits reports whether any frame reports units.
func (tr *Trace) HasUnits() bool {
	for _, f := range tr.Frames {
		if len(f.Units) > 0 {
			return true
		}
	}
	return false
}

// FrameDuration returns how long frame i lasts in trace time.
func (tr *Trace) FrameDuration(i int) time.Duration {
	if i >= 0 && i < len(tr.Frames) && tr.Frames[i].DT > 0 {
		return tr.Frames[i].DT
	}
	if tr.DT > 0 {
		return tr.DT
	}
	return DefaultFrameDuration
}

// Validate checks every op for the arguments it needs.
func (tr *Trace) Validate() error {
	if tr.Game[0] < 0 || tr.Game[1] < 0 {
		return fmt.Errorf("%w: game size %dx%d", ErrInvalidOp, tr.Game[0], tr.Game[1])
	}
	if tr.DT < 0 {
		return fmt.Errorf("%w: negative dt %v", ErrInvalidOp, tr.DT)
	}
	for fi, f := range tr.Frames {
		if f.DT < 0 {
			return fmt.Errorf("frame %d: %w: negative dt %v", fi, ErrInvalidOp, f.DT)
		}
		for oi, op := range f.Ops {
			if err := op.validate(); err != nil {
				return fmt.Errorf("frame %d op %d (%s): %w", fi, oi, op.Op, err)
			}
		}
	}
	return nil
}

func (op Op) validate() error {
	switch op.Op {
	case OpTexDownload, OpTexSource:
		if op.Width <= 0 || op.Height <= 0 {
			return fmt.Errorf("%w: missing width or height", ErrInvalidOp)
		}
	case OpBlend:
		if len(op.Args) != 4 {
			return fmt.Errorf("%w: blend takes 4 factors, got %d", ErrInvalidOp, len(op.Args))
		}
	case OpCombine:
		if len(op.Args) != 4 {
			return fmt.Errorf("%w: combine takes 4 args, got %d", ErrInvalidOp, len(op.Args))
		}
		if op.Target != "color" && op.Target != "alpha" {
			return fmt.Errorf("%w: combine target %q", ErrInvalidOp, op.Target)
		}
	case OpPoint:
		return op.needVerts(1)
	case OpLine:
		return op.needVerts(2)
	case OpFan, OpStrip:
		return op.needVerts(3)
	case OpQuad:
		if len(op.Verts) != 4 {
			return fmt.Errorf("%w: quad takes 4 vertices, got %d", ErrInvalidOp, len(op.Verts))
		}
	case OpUnit, OpText, OpShadow:
		if len(op.Verts) != 0 && len(op.Verts) != 4 {
			return fmt.Errorf("%w: %s draws a 4-vertex quad, got %d", ErrInvalidOp, op.Op, len(op.Verts))
		}
	case OpPalette, OpConstant, OpChromaKey, OpFilter, OpSurface:
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidOp, op.Op)
	}
	return nil
}

func (op Op) needVerts(n int) error {
	if len(op.Verts) < n {
		return fmt.Errorf("%w: %s needs %d vertices, got %d", ErrInvalidOp, op.Op, n, len(op.Verts))
	}
	return nil
}

// Texels returns the texture data of a texdownload op.
func (op Op) Texels() []byte {
	texels := make([]byte, op.Width*op.Height)
	for i := range texels {
		texels[i] = byte(op.Fill + op.Step*i)
	}
	return texels
}
