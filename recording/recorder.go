// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"context"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/render"
	"github.com/glidex/glidex/texture"
	"github.com/glidex/glidex/vertex"
)

func init() {
	Register("record", func(ringCapacity int) render.Device { return NewRecorder(ringCapacity) })
}

// Stats counts device traffic.
type Stats struct {
	Frames          int
	DrawCalls       int
	Vertices        int
	TextureUploads  int
	PaletteUploads  int
	VertexRingWraps int
}

// Recorder is a render.Device that records everything it receives.
// Vertex offsets are assigned by a VertexRing exactly as a GPU vertex
// buffer would assign them.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	ring      *render.VertexRing
	commands  []Command
	resources *ResourcePool
	stats     Stats
}

// NewRecorder creates a recorder whose vertex ring holds ringCapacity
// vertices. If ringCapacity <= 0, render.DefaultRingCapacity is used.
func NewRecorder(ringCapacity int) *Recorder {
	return &Recorder{
		ring:      render.NewVertexRing(ringCapacity),
		commands:  make([]Command, 0, 256),
		resources: NewResourcePool(),
	}
}

// RingCap returns the capacity of the vertex ring.
func (r *Recorder) RingCap() int { return r.ring.Cap() }

// UploadVertices implements render.Device.
func (r *Recorder) UploadVertices(vs []vertex.Vertex) uint32 {
	base, n := r.ring.Write(vs)
	r.commands = append(r.commands, UploadVerticesCommand{
		Vertices: r.resources.AddVertices(vs[:n]),
		Base:     base,
	})
	r.stats.Vertices += n
	r.stats.VertexRingWraps = r.ring.Wraps()
	return base
}

// UploadTexture implements render.Device.
func (r *Recorder) UploadTexture(class batch.SizeClass, atlas, index int, texels []byte) {
	r.commands = append(r.commands, UploadTextureCommand{
		Class:  class,
		Atlas:  atlas,
		Index:  index,
		Texels: r.resources.AddTexels(texels),
	})
	r.stats.TextureUploads++
}

// SetPalette implements render.Device.
func (r *Recorder) SetPalette(index int, p *texture.Palette) {
	r.commands = append(r.commands, SetPaletteCommand{
		Index:   index,
		Palette: r.resources.AddPalette(p),
	})
	r.stats.PaletteUploads++
}

// Submit implements render.Device.
func (r *Recorder) Submit(b batch.Batch, baseVertex uint32) {
	r.commands = append(r.commands, DrawCommand{
		Batch:      b,
		BaseVertex: baseVertex,
		Pipeline:   render.PipelineStateFor(b),
	})
	r.stats.DrawCalls++
}

// Present implements render.Device. It fails only if ctx is done.
func (r *Recorder) Present(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.commands = append(r.commands, PresentCommand{Frame: r.stats.Frames})
	r.stats.Frames++
	return nil
}

// Stats returns the traffic counters.
func (r *Recorder) Stats() Stats {
	return r.stats
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. After calling FinishRecording, the Recorder should not be used
// again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		commands:  r.commands,
		resources: r.resources,
		stats:     r.stats,
	}
}

// Recording is an immutable container for recorded device commands.
type Recording struct {
	commands  []Command
	resources *ResourcePool
	stats     Stats
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Stats returns the traffic counters at the time the recording finished.
func (r *Recording) Stats() Stats {
	return r.stats
}

// Draws returns the draw commands of frame, in submission order.
func (r *Recording) Draws(frame int) []DrawCommand {
	var out []DrawCommand
	current := 0
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case DrawCommand:
			if current == frame {
				out = append(out, c)
			}
		case PresentCommand:
			current++
		}
	}
	return out
}

// Playback replays the recording into dev. Vertex offsets are remapped to
// wherever dev places each upload.
func (r *Recording) Playback(ctx context.Context, dev render.Device) error {
	var recordedBase, base uint32
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case UploadVerticesCommand:
			recordedBase = c.Base
			base = dev.UploadVertices(r.resources.Vertices(c.Vertices))
		case UploadTextureCommand:
			dev.UploadTexture(c.Class, c.Atlas, c.Index, r.resources.Texels(c.Texels))
		case SetPaletteCommand:
			dev.SetPalette(c.Index, r.resources.Palette(c.Palette))
		case DrawCommand:
			dev.Submit(c.Batch, c.BaseVertex-recordedBase+base)
		case PresentCommand:
			if err := dev.Present(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
