// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"testing"

	"github.com/glidex/glidex/batch"
)

func TestPalettesDeduplicate(t *testing.T) {
	p := NewPalettes()

	var a, b Palette
	a[1] = 0x00112233
	b[1] = 0x00445566

	ia, added, err := p.Register(&a)
	if err != nil || !added || ia != 0 {
		t.Fatalf("Register(a) = %d,%v,%v, want 0,true,nil", ia, added, err)
	}
	ib, _, _ := p.Register(&b)
	if ib != 1 {
		t.Errorf("Register(b) = %d, want 1", ib)
	}
	again, added, _ := p.Register(&a)
	if again != 0 || added {
		t.Errorf("Register(a) again = %d,%v, want 0,false", again, added)
	}

	if got := p.Palette(0)[1]; got != 0xFF112233 {
		t.Errorf("stored color = %#x, want opaque 0xFF112233", got)
	}
	if a[1] != 0x00112233 {
		t.Error("Register() modified its input")
	}
}

func TestPalettesFull(t *testing.T) {
	p := NewPalettes()
	for i := 0; i < batch.MaxGamePalettes; i++ {
		var pal Palette
		pal[0] = uint32(i)
		if _, _, err := p.Register(&pal); err != nil {
			t.Fatalf("Register(%d) error = %v", i, err)
		}
	}

	var extra Palette
	extra[0] = 999
	if _, _, err := p.Register(&extra); !errors.Is(err, ErrTooManyPalettes) {
		t.Errorf("Register() on full registry error = %v, want ErrTooManyPalettes", err)
	}
	if p.Len() != batch.MaxGamePalettes {
		t.Errorf("Len() = %d, want %d", p.Len(), batch.MaxGamePalettes)
	}
}

func TestPalettesWhite(t *testing.T) {
	white := NewPalettes().Palette(batch.WhitePaletteIndex)
	for i, c := range white {
		if c != 0xFFFFFFFF {
			t.Fatalf("white palette[%d] = %#x", i, c)
		}
	}
}
