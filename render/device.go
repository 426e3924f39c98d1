// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/texture"
	"github.com/glidex/glidex/vertex"
)

// Device receives one frame of geometry at a time.
//
// Calls arrive in frame order: UploadVertices, then Submit for every merged
// batch, then Present. UploadTexture and SetPalette may arrive at any time
// before the draw that needs them.
type Device interface {
	// Submit draws the batch's vertex range, relative to baseVertex.
	batch.Sink

	// UploadTexture fills an atlas layer of the given size class.
	texture.Uploader

	// UploadVertices copies vs into device memory and returns the index
	// the first vertex landed at. Offsets are not monotonic across frames.
	UploadVertices(vs []vertex.Vertex) uint32

	// SetPalette replaces palette slot index.
	SetPalette(index int, p *texture.Palette)

	// Present shows the frame. It may block on vertical sync.
	Present(ctx context.Context) error
}

// TextureCache resolves texture identities to atlas locations, uploading
// the texels on a miss. ok is false if the batch has no texture bound.
type TextureCache interface {
	FindOrInsert(hash uint64, b batch.Batch, texels []byte) (atlas, index int, ok bool)
}
