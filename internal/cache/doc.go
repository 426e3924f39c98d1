// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides the fixed-capacity slot allocator behind texture
// atlases.
//
// # Slots[K]
//
// A Slots pool hands out a bounded set of integer slots to keys and recycles
// the least recently used slot when the pool is full:
//
//	pool := cache.NewSlots[uint64](512)
//	r := pool.Acquire(hash)
//	if !r.Hit {
//		upload(r.Slot, texels)
//	}
//
// # Thread Safety
//
// Slots is safe for concurrent use and must not be copied after creation.
package cache
