// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/glidex/glidex/vertex"

// DefaultRingCapacity is the default vertex ring size.
const DefaultRingCapacity = 1024 * 1024

// VertexRing is a device-side vertex buffer written front to back. A write
// that does not fit the remaining space restarts at the beginning, and the
// part of a write larger than the whole ring is dropped.
type VertexRing struct {
	buf      []vertex.Vertex
	pos      int
	wraps    int
	discards int
}

// NewVertexRing allocates a ring of capacity vertices.
func NewVertexRing(capacity int) *VertexRing {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &VertexRing{buf: make([]vertex.Vertex, capacity)}
}

// Write copies vs into the ring. It returns the index of the first vertex
// and the number of vertices actually written.
func (r *VertexRing) Write(vs []vertex.Vertex) (base uint32, written int) {
	n := len(vs)
	if r.pos+n > len(r.buf) {
		r.pos = 0
		r.wraps++
		if n > len(r.buf) {
			r.discards += n - len(r.buf)
			n = len(r.buf)
		}
	}
	base = uint32(r.pos)
	copy(r.buf[r.pos:], vs[:n])
	r.pos += n
	return base, n
}

// Vertices returns n vertices starting at base.
func (r *VertexRing) Vertices(base uint32, n int) []vertex.Vertex {
	return r.buf[base : int(base)+n]
}

// Cap returns the ring size.
func (r *VertexRing) Cap() int { return len(r.buf) }

// Wraps returns how often the ring restarted at zero.
func (r *VertexRing) Wraps() int { return r.wraps }

// Discarded returns the number of vertices dropped because a single write
// exceeded the ring.
func (r *VertexRing) Discarded() int { return r.discards }
