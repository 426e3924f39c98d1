// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"github.com/glidex/glidex/batch"
)

// Palette is 256 ARGB entries.
type Palette [256]uint32

// HashPalette returns the content identity of p.
func HashPalette(p *Palette) uint64 {
	var buf [len(p) * 4]byte
	for i, c := range p {
		binary.LittleEndian.PutUint32(buf[i*4:], c)
	}
	return xxh3.Hash(buf[:])
}

// Palettes deduplicates downloaded palettes into the game palette slots.
// Slot batch.WhitePaletteIndex always holds an all-white palette.
type Palettes struct {
	keys  [batch.MaxGamePalettes]uint64
	count int
	data  [batch.MaxPalettes]Palette
}

// NewPalettes returns a registry with no game palettes.
func NewPalettes() *Palettes {
	p := &Palettes{}
	for i := range p.data[batch.WhitePaletteIndex] {
		p.data[batch.WhitePaletteIndex][i] = 0xFFFFFFFF
	}
	return p
}

// Register returns the slot holding a palette equal to src, storing src in
// the next free slot if it is new. Stored palettes are fully opaque.
// added reports whether a new slot was used.
func (p *Palettes) Register(src *Palette) (index int, added bool, err error) {
	key := HashPalette(src)
	for i := 0; i < p.count; i++ {
		if p.keys[i] == key {
			return i, false, nil
		}
	}
	if p.count == batch.MaxGamePalettes {
		return 0, false, ErrTooManyPalettes
	}

	index = p.count
	p.keys[index] = key
	for i, c := range src {
		p.data[index][i] = c | 0xFF000000
	}
	p.count++
	return index, true, nil
}

// Palette returns the palette in slot i.
func (p *Palettes) Palette(i int) *Palette {
	return &p.data[i]
}

// Len returns the number of registered game palettes.
func (p *Palettes) Len() int { return p.count }
