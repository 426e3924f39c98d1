// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "log/slog"

// Sink receives merged draw submissions in draw order.
type Sink interface {
	// Submit draws b with its start vertex relative to baseVertex.
	Submit(b Batch, baseVertex uint32)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(b Batch, baseVertex uint32)

// Submit calls f(b, baseVertex).
func (f SinkFunc) Submit(b Batch, baseVertex uint32) { f(b, baseVertex) }

// CacheKeyFunc resolves the texture cache a batch samples from.
type CacheKeyFunc func(Batch) SizeClass

// Merger folds adjacent compatible batches into as few draw submissions as
// possible without reordering anything.
//
// Two neighbours merge when they resolve to the same texture cache and atlas,
// share blend and filter modes, and the combined vertex count still fits the
// vertex count field. Vertices are contiguous because batches are appended
// in draw order with increasing start vertices.
type Merger struct {
	cacheKey CacheKeyFunc
	logger   *slog.Logger
}

// NewMerger creates a merger. A nil cacheKey resolves caches by texture size.
func NewMerger(cacheKey CacheKeyFunc) *Merger {
	if cacheKey == nil {
		cacheKey = Batch.SizeClass
	}
	return &Merger{
		cacheKey: cacheKey,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for diagnostics. Nil restores silence.
func (m *Merger) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	m.logger = l
}

// Compatible reports whether next can be folded into pending.
func (m *Merger) Compatible(pending, next Batch) bool {
	return m.cacheKey(pending) == m.cacheKey(next) &&
		pending.atlas == next.atlas &&
		pending.alphaBlend == next.alphaBlend &&
		pending.filter == next.filter &&
		int(pending.vertexCount)+int(next.vertexCount) <= MaxVertexCount
}

// Merge walks batches in order and submits the merged result to sink.
// Invalid batches are skipped. It returns the number of submissions.
func (m *Merger) Merge(batches []Batch, baseVertex uint32, sink Sink) int {
	var pending Batch
	draws := 0

	for i, b := range batches {
		if !b.IsValid() {
			m.logger.Debug("skipping invalid batch", "index", i)
			continue
		}
		if !pending.IsValid() {
			pending = b
			continue
		}
		if !m.Compatible(pending, b) {
			sink.Submit(pending, baseVertex)
			draws++
			pending = b
			continue
		}
		pending.vertexCount += b.vertexCount
	}

	if pending.IsValid() {
		sink.Submit(pending, baseVertex)
		draws++
	}
	return draws
}

// MergeAll returns the merged batches instead of submitting them.
func (m *Merger) MergeAll(batches []Batch) []Batch {
	var out []Batch
	m.Merge(batches, 0, SinkFunc(func(b Batch, _ uint32) {
		out = append(out, b)
	}))
	return out
}
