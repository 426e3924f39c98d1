// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"os"
	"testing"

	"golang.org/x/image/bmp"
)

func TestDump(t *testing.T) {
	dir := t.TempDir()
	pal := &Palette{}
	pal[1] = 0xFFFF0000

	texels := make([]byte, 8*8)
	texels[0] = 1

	written, err := Dump(dir, 0xabc, texels, 8, 8, pal)
	if err != nil || !written {
		t.Fatalf("Dump() = %v, %v", written, err)
	}

	f, err := os.Open(DumpPath(dir, 0xabc))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8", b)
	}
	r, g, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 0xFF || g != 0 {
		t.Errorf("pixel (0,0) = %v, want red", img.At(0, 0))
	}

	again, err := Dump(dir, 0xabc, texels, 8, 8, pal)
	if err != nil || again {
		t.Errorf("second Dump() = %v, %v, want skipped", again, err)
	}
}

func TestDumpShortTexels(t *testing.T) {
	if _, err := Dump(t.TempDir(), 1, make([]byte, 10), 8, 8, &Palette{}); err == nil {
		t.Error("Dump() with short texels succeeded")
	}
}
