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
	Register("count", func(ringCapacity int) render.Device { return NewCounter(ringCapacity) })
}

// Counter is a render.Device that keeps statistics and nothing else.
type Counter struct {
	ring  *render.VertexRing
	stats Stats
}

// NewCounter creates a counter with a vertex ring of ringCapacity vertices.
func NewCounter(ringCapacity int) *Counter {
	return &Counter{ring: render.NewVertexRing(ringCapacity)}
}

// RingCap returns the capacity of the vertex ring.
func (c *Counter) RingCap() int { return c.ring.Cap() }

// UploadVertices implements render.Device.
func (c *Counter) UploadVertices(vs []vertex.Vertex) uint32 {
	base, n := c.ring.Write(vs)
	c.stats.Vertices += n
	c.stats.VertexRingWraps = c.ring.Wraps()
	return base
}

// UploadTexture implements render.Device.
func (c *Counter) UploadTexture(batch.SizeClass, int, int, []byte) { c.stats.TextureUploads++ }

// SetPalette implements render.Device.
func (c *Counter) SetPalette(int, *texture.Palette) { c.stats.PaletteUploads++ }

// Submit implements render.Device.
func (c *Counter) Submit(batch.Batch, uint32) { c.stats.DrawCalls++ }

// Present implements render.Device.
func (c *Counter) Present(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.stats.Frames++
	return nil
}

// Stats returns the traffic counters.
func (c *Counter) Stats() Stats { return c.stats }
