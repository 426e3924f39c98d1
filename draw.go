// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import (
	"fmt"
	"math"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/vertex"
)

// reserve returns room for n vertices, reporting overflow to the fatal
// handler.
func (c *Context) reserve(n int) ([]vertex.Vertex, bool) {
	dst, err := c.verts.Reserve(n)
	if err != nil {
		c.fatal(fmt.Errorf("glidex: frame %d: %w", c.frame, err))
		return nil, false
	}
	return dst, true
}

// commit resolves the texture of b, stamps dst with it and appends b and
// its vertices to the frame. Triangles with no texture bound are discarded,
// as is any draw whose bound texture the cache cannot place.
func (c *Context) commit(b batch.Batch, dst []vertex.Vertex) {
	b.SetStartVertex(c.verts.Len())
	b.SetVertexCount(len(dst))

	if b.IsValid() {
		texels, err := c.mem.Texels(b.TextureStartAddress(), b.TextureWidth()*b.TextureHeight())
		if err != nil {
			c.logger.Debug("glidex: texture unreadable, draw discarded", "err", err)
			return
		}
		atlas, index, ok := c.textures.FindOrInsert(b.TextureHash(), b, texels)
		if !ok {
			c.logger.Debug("glidex: texture not placed, draw discarded",
				"hash", b.TextureHash(), "addr", b.TextureStartAddress())
			return
		}
		b.SetTextureAtlas(atlas)
		b.SetTextureIndex(index)
		for i := range dst {
			dst[i].AtlasIndex = uint16(index)
		}
	} else if b.PrimitiveType() == batch.PrimitiveTriangles {
		return
	}

	id := b.SurfaceID()
	for i := range dst {
		dst[i].SurfaceID = id
	}

	if err := c.acc.Append(b); err != nil {
		c.fatal(fmt.Errorf("glidex: frame %d: %w", c.frame, err))
		return
	}
	c.verts.Commit(len(dst))
}

// DrawPoint draws a one-pixel point as a single triangle.
func (c *Context) DrawPoint(p GameVertex) {
	dst, ok := c.reserve(3)
	if !ok {
		return
	}
	c.ensureReadVertexState()

	v := c.readVertex(p)
	dst[0], dst[1], dst[2] = v, v, v
	dst[1].AddOffset(1, 0)
	dst[2].AddOffset(1, 1)

	b := *c.acc.Scratch()
	b.SetPrimitiveType(batch.PrimitivePoints)
	c.commit(b, dst)
}

// DrawLine draws a line from a to b as a one-pixel-wide quad. Lines are
// always drawn with the white palette in the color of b.
func (c *Context) DrawLine(a, b GameVertex) {
	dst, ok := c.reserve(6)
	if !ok {
		return
	}
	c.ensureReadVertexState()

	v := c.read.template
	v.SetTexcoord(int32(b.S)>>c.stShift, int32(b.T)>>c.stShift)
	v.Color = c.read.maskedConstantColor | b.Color&c.read.iteratedColorMask
	v.PaletteIndex = batch.WhitePaletteIndex

	wx, wy := b.Y-a.Y, b.X-a.X
	if l := float32(math.Hypot(float64(wx), float64(wy))); l > 0 {
		wx, wy = wx*0.5/l, wy*0.5/l
	}

	v0, v1, v2, v3 := v, v, v, v
	v0.SetPosition(b.X+wx, b.Y-wy)
	v1.SetPosition(a.X+wx, a.Y-wy)
	v2.SetPosition(b.X-wx, b.Y+wy)
	v3.SetPosition(a.X-wx, a.Y+wy)
	dst[0], dst[1], dst[2] = v0, v1, v2
	dst[3], dst[4], dst[5] = v1, v3, v2

	bt := *c.acc.Scratch()
	bt.SetPaletteIndex(batch.WhitePaletteIndex)
	bt.SetPrimitiveType(batch.PrimitiveLines)
	c.commit(bt, dst)
}

// DrawVertexArray draws a triangle fan or strip, expanded to a triangle
// list. Draws with fewer than three vertices, more than a batch can hold,
// or another mode are ignored.
// A draw with no vertex inside the game area is dropped.
func (c *Context) DrawVertexArray(mode DrawMode, verts []GameVertex) {
	if len(verts) < 3 || (mode != TriangleFan && mode != TriangleStrip) {
		return
	}
	n := 3 * (len(verts) - 2)
	if n > batch.MaxVertexCount {
		c.logger.Warn("glidex: vertex array too long", "vertices", len(verts))
		return
	}
	dst, ok := c.reserve(n)
	if !ok {
		return
	}
	c.ensureReadVertexState()

	onScreen := false
	for i := range 3 {
		dst[i] = c.readVertex(verts[i])
		onScreen = onScreen || c.gameArea.Contains(verts[i].X, verts[i].Y)
	}

	out := 3
	for _, gv := range verts[3:] {
		v := c.readVertex(gv)
		onScreen = onScreen || c.gameArea.Contains(gv.X, gv.Y)
		if mode == TriangleFan {
			dst[out] = dst[0]
		} else {
			dst[out] = dst[out-2]
		}
		dst[out+1] = dst[out-1]
		dst[out+2] = v
		out += 3
	}

	c.commitTriangles(dst, onScreen)
}

// DrawVertexArrayContiguous draws a four-vertex triangle fan. Other modes
// and counts are ignored.
func (c *Context) DrawVertexArrayContiguous(mode DrawMode, verts []GameVertex) {
	if mode != TriangleFan || len(verts) != 4 {
		return
	}
	dst, ok := c.reserve(6)
	if !ok {
		return
	}
	c.ensureReadVertexState()

	onScreen := false
	for i, gv := range verts {
		dst[i] = c.readVertex(gv)
		onScreen = onScreen || c.gameArea.Contains(gv.X, gv.Y)
	}
	dst[4] = dst[0]
	dst[5] = dst[2]

	c.commitTriangles(dst, onScreen)
}

func (c *Context) commitTriangles(dst []vertex.Vertex, onScreen bool) {
	if !onScreen {
		c.acc.Drop()
		return
	}
	b := *c.acc.Scratch()
	b.SetPrimitiveType(batch.PrimitiveTriangles)
	c.commit(b, dst)
}
