// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package vertex

import "errors"

// DefaultMaxVertices is the default per-frame vertex capacity.
const DefaultMaxVertices = 1024 * 1024

// ErrStreamFull is returned when a frame needs more vertices than the
// stream was sized for.
var ErrStreamFull = errors.New("vertex: per-frame vertex stream is full")

// Stream is a fixed-capacity, append-only vertex buffer for one frame.
//
// Writers either Append whole primitives, or Reserve a tail region, fill it
// in place and Commit the part they keep. Reserved but uncommitted vertices
// are overwritten by the next writer.
type Stream struct {
	items []Vertex
	n     int
}

// NewStream preallocates a stream of capacity vertices. If capacity <= 0,
// DefaultMaxVertices is used.
func NewStream(capacity int) *Stream {
	if capacity <= 0 {
		capacity = DefaultMaxVertices
	}
	return &Stream{items: make([]Vertex, capacity)}
}

// Len returns the write cursor: the number of committed vertices.
func (s *Stream) Len() int { return s.n }

// Cap returns the stream capacity.
func (s *Stream) Cap() int { return len(s.items) }

// Reserve returns the next n uncommitted vertices for in-place writing.
func (s *Stream) Reserve(n int) ([]Vertex, error) {
	if n < 0 || s.n+n > len(s.items) {
		return nil, ErrStreamFull
	}
	return s.items[s.n : s.n+n : s.n+n], nil
}

// Commit advances the write cursor over n reserved vertices.
func (s *Stream) Commit(n int) {
	if n < 0 || s.n+n > len(s.items) {
		panic("vertex: commit past reserved region")
	}
	s.n += n
}

// Append copies vs to the end of the stream and returns the index of the
// first appended vertex.
func (s *Stream) Append(vs ...Vertex) (int, error) {
	dst, err := s.Reserve(len(vs))
	if err != nil {
		return 0, err
	}
	start := s.n
	copy(dst, vs)
	s.n += len(vs)
	return start, nil
}

// Vertices returns all committed vertices. The slice aliases the stream and
// is only valid until the next Reset.
func (s *Stream) Vertices() []Vertex {
	return s.items[:s.n]
}

// Range returns count committed vertices starting at start.
func (s *Stream) Range(start, count int) []Vertex {
	return s.items[start : start+count]
}

// Reset rewinds the write cursor for the next frame.
func (s *Stream) Reset() {
	s.n = 0
}
