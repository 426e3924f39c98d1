// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

// DefaultMaxBatches is the default per-frame batch capacity.
const DefaultMaxBatches = 16384

// Accumulator collects the batches of one frame in draw order.
//
// State-change calls edit the scratch batch in place. Each draw call clones
// the scratch batch, stamps it with its vertex range and appends it. The
// list is fixed-capacity: overflowing it is an error the caller must treat
// as fatal.
//
// Accumulator is not safe for concurrent use.
type Accumulator struct {
	scratch Batch
	batches []Batch
	dropped int
}

// NewAccumulator creates an accumulator holding at most maxBatches batches
// per frame. If maxBatches <= 0, DefaultMaxBatches is used.
func NewAccumulator(maxBatches int) *Accumulator {
	if maxBatches <= 0 {
		maxBatches = DefaultMaxBatches
	}
	return &Accumulator{
		scratch: New(),
		batches: make([]Batch, 0, maxBatches),
	}
}

// Scratch returns the render state in progress. State-change calls modify it
// directly; it is copied, never aliased, into the frame list.
func (a *Accumulator) Scratch() *Batch {
	return &a.scratch
}

// ResetScratch discards all accumulated render state.
func (a *Accumulator) ResetScratch() {
	a.scratch = New()
}

// Stamp returns a copy of the scratch batch covering count vertices
// starting at start. The frame list is not touched.
func (a *Accumulator) Stamp(start, count int) Batch {
	b := a.scratch
	b.SetStartVertex(start)
	b.SetVertexCount(count)
	return b
}

// Append adds a prepared batch to the frame list.
func (a *Accumulator) Append(b Batch) error {
	if len(a.batches) == cap(a.batches) {
		return ErrBatchListFull
	}
	a.batches = append(a.batches, b)
	return nil
}

// Commit stamps the scratch batch with a vertex range and appends it.
func (a *Accumulator) Commit(start, count int) (Batch, error) {
	b := a.Stamp(start, count)
	if err := a.Append(b); err != nil {
		return Batch{}, err
	}
	return b, nil
}

// Drop records a draw call that was discarded because none of its geometry
// was visible.
func (a *Accumulator) Drop() {
	a.dropped++
}

// Batches returns the batches of the current frame in draw order. The slice
// is only valid until the next Reset.
func (a *Accumulator) Batches() []Batch {
	return a.batches
}

// Len returns the number of batches in the current frame.
func (a *Accumulator) Len() int { return len(a.batches) }

// Cap returns the per-frame batch capacity.
func (a *Accumulator) Cap() int { return cap(a.batches) }

// Dropped returns the number of draws dropped in the current frame.
func (a *Accumulator) Dropped() int { return a.dropped }

// Reset empties the frame list and the dropped counter. The scratch
// state carries over to the next frame.
func (a *Accumulator) Reset() {
	a.batches = a.batches[:0]
	a.dropped = 0
}

// Area is the visible game area used to cull draws.
type Area struct {
	Width, Height float32
}

// Contains reports whether (x, y) lies inside the area.
func (r Area) Contains(x, y float32) bool {
	return 0 <= x && x < r.Width && 0 <= y && y < r.Height
}
