// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

// DumpPath returns the file a texture with identity hash is dumped to.
func DumpPath(dir string, hash uint64) string {
	return filepath.Join(dir, fmt.Sprintf("%016x.bmp", hash))
}

// Dump writes a palettized texture to dir as a BMP file named after its
// identity. Existing files are left alone. It reports whether a file was
// written.
func Dump(dir string, hash uint64, texels []byte, width, height int, palette *Palette) (bool, error) {
	path := DumpPath(dir, hash)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if len(texels) < width*height {
		return false, fmt.Errorf("texture: dump %016x: %d texels for %dx%d", hash, len(texels), width, height)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}

	img := image.NewPaletted(image.Rect(0, 0, width, height), toColorPalette(palette))
	copy(img.Pix, texels[:width*height])

	f, err := os.Create(path)
	if err != nil {
		return false, err
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return false, fmt.Errorf("texture: dump %016x: %w", hash, err)
	}
	return true, f.Close()
}

func toColorPalette(p *Palette) color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = color.RGBA{
			R: uint8(c >> 16),
			G: uint8(c >> 8),
			B: uint8(c),
			A: 0xFF,
		}
	}
	return out
}
