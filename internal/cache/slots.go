// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import "sync"

// Slots assigns keys to a fixed range of slot numbers [0, capacity).
type Slots[K comparable] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*lruNode[K]
	order    lruList[K]
	free     []int

	hits      uint64
	misses    uint64
	evictions uint64
}

// Acquisition is the outcome of Slots.Acquire.
type Acquisition[K comparable] struct {
	// Slot is the slot now holding the key.
	Slot int

	// Hit is true if the key was already resident. When false the slot
	// content is stale and must be refreshed by the caller.
	Hit bool

	// Evicted is the key that previously owned Slot, valid when HasEvicted.
	Evicted    K
	HasEvicted bool
}

// NewSlots creates a pool of capacity slots. Capacity must be positive.
func NewSlots[K comparable](capacity int) *Slots[K] {
	if capacity <= 0 {
		panic("cache: slot capacity must be positive")
	}
	s := &Slots[K]{
		capacity: capacity,
		entries:  make(map[K]*lruNode[K], capacity),
	}
	s.resetFree()
	return s
}

func (s *Slots[K]) resetFree() {
	s.free = s.free[:0]
	// Hand out low slots first.
	for i := s.capacity - 1; i >= 0; i-- {
		s.free = append(s.free, i)
	}
}

// Acquire returns the slot for key, assigning one if the key is not
// resident. A full pool recycles its least recently used slot.
func (s *Slots[K]) Acquire(key K) Acquisition[K] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.entries[key]; ok {
		s.hits++
		s.order.MoveToFront(node)
		return Acquisition[K]{Slot: node.slot, Hit: true}
	}
	s.misses++

	var r Acquisition[K]
	var node *lruNode[K]
	if n := len(s.free); n > 0 {
		node = &lruNode[K]{slot: s.free[n-1]}
		s.free = s.free[:n-1]
	} else {
		node = s.order.Back()
		s.order.Remove(node)
		delete(s.entries, node.key)
		s.evictions++
		r.Evicted = node.key
		r.HasEvicted = true
	}

	node.key = key
	s.entries[key] = node
	s.order.PushFront(node)
	r.Slot = node.slot
	return r
}

// Lookup returns the slot of a resident key and marks it recently used.
func (s *Slots[K]) Lookup(key K) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.entries[key]
	if !ok {
		return 0, false
	}
	s.order.MoveToFront(node)
	return node.slot, true
}

// Release frees the slot held by key. Returns false if key was not resident.
func (s *Slots[K]) Release(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.entries[key]
	if !ok {
		return false
	}
	s.order.Remove(node)
	delete(s.entries, key)
	s.free = append(s.free, node.slot)
	return true
}

// Clear releases every slot and resets statistics.
func (s *Slots[K]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.entries)
	s.order.Clear()
	s.resetFree()
	s.hits, s.misses, s.evictions = 0, 0, 0
}

// Len returns the number of resident keys.
func (s *Slots[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Capacity returns the number of slots.
func (s *Slots[K]) Capacity() int {
	return s.capacity
}

// Stats returns pool statistics.
func (s *Slots[K]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Len:       len(s.entries),
		Capacity:  s.capacity,
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
	}
	if total := s.hits + s.misses; total > 0 {
		st.HitRate = float64(s.hits) / float64(total)
	}
	return st
}

// Stats contains slot pool statistics.
type Stats struct {
	// Len is the number of resident keys.
	Len int
	// Capacity is the number of slots.
	Capacity int
	// Hits counts Acquire calls that found the key resident.
	Hits uint64
	// Misses counts Acquire calls that assigned a slot.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before the first Acquire.
	HitRate float64
	// Evictions counts slots recycled from a resident key.
	Evictions uint64
}
