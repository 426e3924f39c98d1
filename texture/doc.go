// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texture emulates the texture side of the legacy API: texture
// memory, content identities, palettes and a reference texture cache.
//
// Textures are 8-bit palette indices living in a flat texture memory. The
// [Hasher] turns the bytes at an address into a stable 64-bit identity and
// forgets it again when the region is overwritten. The identity is the key
// of the texture cache, so two uploads with equal content share one atlas
// slot no matter where they live in memory.
//
// Basic usage:
//
//	mem := texture.NewMemory(batch.TMUMemorySize)
//	hasher := texture.NewHasher()
//	if err := mem.Download(addr, data); err != nil {
//		return err
//	}
//	hasher.Invalidate(addr, len(data))
//	texels, _ := mem.Texels(addr, w*h)
//	id := hasher.Hash(addr, texels)
package texture
