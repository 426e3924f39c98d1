// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"github.com/google/btree"
	"github.com/zeebo/xxh3"
)

// identity is a cached content hash of size bytes at addr.
type identity struct {
	addr uint32
	size uint32
	hash uint64
}

func identityLess(a, b identity) bool { return a.addr < b.addr }

// Hasher computes texture content identities and caches them per address.
//
// The cache is ordered by address so that an upload can drop every cached
// identity whose byte range it overlaps. Hasher is not safe for concurrent
// use.
type Hasher struct {
	entries *btree.BTreeG[identity]
	maxSize uint32
	victims []identity

	hits   uint64
	misses uint64
}

// NewHasher creates an empty hasher.
func NewHasher() *Hasher {
	return &Hasher{
		entries: btree.NewG[identity](16, identityLess),
	}
}

// Hash returns the identity of texels, which were read from addr.
// A cached identity is reused when the texture at addr has not been
// invalidated and has the same size.
func (h *Hasher) Hash(addr uint32, texels []byte) uint64 {
	size := uint32(len(texels))
	if e, ok := h.entries.Get(identity{addr: addr}); ok && e.size == size {
		h.hits++
		return e.hash
	}
	h.misses++

	sum := xxh3.Hash(texels)
	h.entries.ReplaceOrInsert(identity{addr: addr, size: size, hash: sum})
	h.maxSize = max(h.maxSize, size)
	return sum
}

// Invalidate forgets every cached identity overlapping [addr, addr+size).
// The identity at addr itself is always dropped, even for size 0.
// It returns the number of identities removed.
func (h *Hasher) Invalidate(addr uint32, size int) int {
	end := uint64(addr) + uint64(max(size, 1))

	// Entries starting before addr can reach into the range only if they
	// are at least as large as the distance.
	lo := uint32(0)
	if addr > h.maxSize {
		lo = addr - h.maxSize
	}

	h.victims = h.victims[:0]
	h.entries.AscendRange(identity{addr: lo}, identity{addr: uint32(min(end, 1<<32-1))}, func(e identity) bool {
		if uint64(e.addr)+uint64(e.size) > uint64(addr) || e.addr == addr {
			h.victims = append(h.victims, e)
		}
		return true
	})
	for _, e := range h.victims {
		h.entries.Delete(e)
	}
	return len(h.victims)
}

// Reset forgets every cached identity.
func (h *Hasher) Reset() {
	h.entries.Clear(false)
	h.maxSize = 0
	h.hits, h.misses = 0, 0
}

// Len returns the number of cached identities.
func (h *Hasher) Len() int { return h.entries.Len() }

// HitRate returns cache hits and misses since the last Reset.
func (h *Hasher) HitRate() (hits, misses uint64) { return h.hits, h.misses }
