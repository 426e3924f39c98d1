// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import (
	"fmt"
	"math/bits"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/texture"
)

func validTextureSize(v int) bool {
	return v >= batch.MinTextureSize && v <= batch.MaxTextureSize && v&(v-1) == 0
}

// TexDownload copies an 8-bit texture of width×height texels to addr in
// texture memory. Every cached texture identity overlapping the written
// range is forgotten.
func (c *Context) TexDownload(addr uint32, texels []byte, width, height int) error {
	n := texture.RequiredSize(width, height)
	if n < 0 || n > len(texels) {
		return fmt.Errorf("%w: %dx%d with %d texels", ErrInvalidTextureSize, width, height, len(texels))
	}
	if err := c.mem.Download(addr, texels[:n]); err != nil {
		return fmt.Errorf("glidex: texture download: %w", err)
	}
	c.hasher.Invalidate(addr, n)
	return nil
}

// TexSource binds the width×height texture at addr for subsequent draws.
// It computes the texture's content identity, applies any registered
// compatibility patch, and dumps the texture if dumping is enabled.
func (c *Context) TexSource(addr uint32, width, height int) error {
	if !validTextureSize(width) || !validTextureSize(height) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	texels, err := c.mem.Texels(addr, texture.RequiredSize(width, height))
	if err != nil {
		return fmt.Errorf("glidex: texture source: %w", err)
	}

	c.read.dirty = true
	c.stShift = 8 - (bits.Len(uint(max(width, height))) - 1)

	hash := c.hasher.Hash(addr, texels)
	if name, ok := c.patches.Apply(hash, texels); ok {
		c.logger.Debug("glidex: patched texture", "patch", name, "hash", hash)
	}

	b := c.acc.Scratch()
	b.SetTextureStartAddress(addr)
	b.SetTextureHash(hash)
	b.SetTextureSize(width, height)

	if c.dumpDir != "" {
		pal := c.palettes.Palette(b.PaletteIndex())
		if _, err := texture.Dump(c.dumpDir, hash, texels, width, height, pal); err != nil {
			c.logger.Warn("glidex: texture dump failed", "hash", hash, "err", err)
		}
	}
	return nil
}

// DownloadPalette makes p the current palette. Identical palettes share a
// slot; new ones are uploaded to the device. Once every game slot is used
// a new palette is rejected with texture.ErrTooManyPalettes and the
// current palette is kept.
func (c *Context) DownloadPalette(p *texture.Palette) error {
	c.read.dirty = true

	index, added, err := c.palettes.Register(p)
	if err != nil {
		c.logger.Warn("glidex: too many palettes", "slots", c.palettes.Len())
		return err
	}
	c.acc.Scratch().SetPaletteIndex(index)
	if added {
		c.dev.SetPalette(index, c.palettes.Palette(index))
		c.logger.Info("glidex: palette registered", "index", index)
	}
	return nil
}

// RegisterPatch adds a texture patch applied whenever a texture with the
// given identity is sourced.
func (c *Context) RegisterPatch(hash uint64, p texture.Patch) {
	c.patches.Register(hash, p)
}
