// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/internal/cache"
)

// Default cache geometry.
const (
	DefaultAtlasCount     = batch.MaxTextureAtlas + 1
	DefaultLayersPerAtlas = 512
)

// Uploader receives texel data for cache slots that were (re)filled.
// A render device implements it to mirror the cache into GPU texture arrays.
type Uploader interface {
	UploadTexture(class batch.SizeClass, atlas, index int, texels []byte)
}

// CacheConfig sizes a Cache.
type CacheConfig struct {
	// AtlasCount is the number of atlases per size class (1..8).
	AtlasCount int

	// LayersPerAtlas is the number of textures in one atlas.
	LayersPerAtlas int
}

// DefaultCacheConfig returns the default cache geometry.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		AtlasCount:     DefaultAtlasCount,
		LayersPerAtlas: DefaultLayersPerAtlas,
	}
}

// Validate checks the configuration.
func (c CacheConfig) Validate() error {
	if c.AtlasCount < 1 || c.AtlasCount > batch.MaxTextureAtlas+1 {
		return fmt.Errorf("texture: atlas count %d outside 1..%d", c.AtlasCount, batch.MaxTextureAtlas+1)
	}
	if c.LayersPerAtlas < 1 || c.LayersPerAtlas*c.AtlasCount > batch.MaxTextureIndex+1 {
		return fmt.Errorf("texture: %d layers per atlas exceeds texture index range", c.LayersPerAtlas)
	}
	return nil
}

// Location is a texture's place inside the cache of its size class.
type Location struct {
	Atlas int
	Index int
}

// sizePool holds the textures of one size class.
type sizePool struct {
	slots  *cache.Slots[uint64]
	texels map[int][]byte
}

// Cache is a reference texture cache. It keeps one LRU slot pool per
// texture size and hands out an atlas and layer for every identity.
// Cache is not safe for concurrent use.
type Cache struct {
	cfg      CacheConfig
	pools    map[batch.SizeClass]*sizePool
	uploader Uploader
	logger   *slog.Logger
}

// NewCache creates a cache. A nil uploader keeps the texels in memory only.
func NewCache(cfg CacheConfig, uploader Uploader) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache{
		cfg:      cfg,
		pools:    make(map[batch.SizeClass]*sizePool),
		uploader: uploader,
		logger:   slog.New(slog.DiscardHandler),
	}, nil
}

// SetLogger sets the logger used for eviction diagnostics.
func (c *Cache) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.logger = l
}

func (c *Cache) pool(class batch.SizeClass) *sizePool {
	p, ok := c.pools[class]
	if !ok {
		p = &sizePool{
			slots:  cache.NewSlots[uint64](c.cfg.AtlasCount * c.cfg.LayersPerAtlas),
			texels: make(map[int][]byte),
		}
		c.pools[class] = p
	}
	return p
}

func (c *Cache) location(slot int) Location {
	return Location{Atlas: slot / c.cfg.LayersPerAtlas, Index: slot % c.cfg.LayersPerAtlas}
}

// FindOrInsert returns the atlas and texture index of the texture with the
// given identity, storing texels in a free or recycled slot if it is not
// cached. Invalid batches are never cached.
func (c *Cache) FindOrInsert(hash uint64, b batch.Batch, texels []byte) (atlas, index int, ok bool) {
	if !b.IsValid() {
		return 0, 0, false
	}
	class := b.SizeClass()
	p := c.pool(class)

	r := p.slots.Acquire(hash)
	loc := c.location(r.Slot)
	if !r.Hit {
		if r.HasEvicted {
			c.logger.Debug("texture cache eviction",
				"size", class.String(), "slot", r.Slot, "evicted", r.Evicted)
		}
		buf := slices.Clone(texels)
		p.texels[r.Slot] = buf
		if c.uploader != nil {
			c.uploader.UploadTexture(class, loc.Atlas, loc.Index, buf)
		}
	}
	return loc.Atlas, loc.Index, true
}

// Find returns the location of a cached identity without inserting it.
func (c *Cache) Find(hash uint64, class batch.SizeClass) (Location, bool) {
	p, ok := c.pools[class]
	if !ok {
		return Location{}, false
	}
	slot, ok := p.slots.Lookup(hash)
	if !ok {
		return Location{}, false
	}
	return c.location(slot), true
}

// Texels returns the cached texels at loc.
func (c *Cache) Texels(class batch.SizeClass, loc Location) []byte {
	p, ok := c.pools[class]
	if !ok {
		return nil
	}
	return p.texels[loc.Atlas*c.cfg.LayersPerAtlas+loc.Index]
}

// Stats returns the pool statistics of every size class in use.
func (c *Cache) Stats() map[batch.SizeClass]cache.Stats {
	out := make(map[batch.SizeClass]cache.Stats, len(c.pools))
	for class, p := range c.pools {
		out[class] = p.slots.Stats()
	}
	return out
}

// UsedTextures returns the number of resident textures across all sizes.
func (c *Cache) UsedTextures() int {
	n := 0
	for _, p := range c.pools {
		n += p.slots.Len()
	}
	return n
}
