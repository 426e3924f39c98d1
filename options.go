// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import (
	"time"

	"github.com/glidex/glidex/config"
	"github.com/glidex/glidex/motion"
	"github.com/glidex/glidex/render"
)

// Option configures a Context during creation.
//
// Example:
//
//	gc, err := glidex.NewContext(dev,
//	    glidex.WithGameSize(800, 600),
//	    glidex.WithUnitInfo(units),
//	)
type Option func(*contextOptions)

// FatalHandler is called when a frame exceeds a fixed capacity. The
// default handler logs the error and panics.
type FatalHandler func(err error)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	gameWidth, gameHeight int
	maxBatches            int
	maxVertices           int
	textures              render.TextureCache
	units                 motion.UnitInfoProvider
	screen                motion.Screen
	noMotionPrediction    bool
	fatal                 FatalHandler
	now                   func() time.Time
	dumpDir               string
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		gameWidth:  640,
		gameHeight: 480,
		now:        time.Now,
	}
}

// WithGameSize sets the initial game resolution used to cull off-screen
// draws. A configured Screen overrides it after every buffer swap.
func WithGameSize(width, height int) Option {
	return func(o *contextOptions) {
		o.gameWidth, o.gameHeight = width, height
	}
}

// WithCapacity sets the per-frame batch and vertex capacity. Values <= 0
// keep the defaults.
func WithCapacity(batches, vertices int) Option {
	return func(o *contextOptions) {
		o.maxBatches, o.maxVertices = batches, vertices
	}
}

// WithTextureCache replaces the built-in texture cache.
//
// Example:
//
//	tc, _ := texture.NewCache(texture.CacheConfig{AtlasCount: 2, LayersPerAtlas: 64}, dev)
//	gc, err := glidex.NewContext(dev, glidex.WithTextureCache(tc))
func WithTextureCache(tc render.TextureCache) Option {
	return func(o *contextOptions) {
		o.textures = tc
	}
}

// WithUnitInfo enables motion prediction, reading unit positions from p.
func WithUnitInfo(p motion.UnitInfoProvider) Option {
	return func(o *contextOptions) {
		o.units = p
	}
}

// WithScreen sets the provider of the visible game size and split-screen
// panels.
func WithScreen(s motion.Screen) Option {
	return func(o *contextOptions) {
		o.screen = s
	}
}

// WithFatalHandler sets the handler for capacity overflows. A handler that
// returns lets the Context drop the offending draw and continue.
func WithFatalHandler(h FatalHandler) Option {
	return func(o *contextOptions) {
		o.fatal = h
	}
}

// WithClock sets the time source used to measure frame times.
func WithClock(now func() time.Time) Option {
	return func(o *contextOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithTextureDumpDir writes every sourced texture as a BMP file into dir.
// An empty dir disables dumping.
func WithTextureDumpDir(dir string) Option {
	return func(o *contextOptions) {
		o.dumpDir = dir
	}
}

// WithOptions applies a loaded configuration: capacities, the configured
// game size, texture dumping and the motion prediction opt-out.
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	gc, err := glidex.NewContext(dev, glidex.WithOptions(cfg))
func WithOptions(cfg config.Options) Option {
	return func(o *contextOptions) {
		if cfg.Capacity.Batches > 0 {
			o.maxBatches = cfg.Capacity.Batches
		}
		if cfg.Capacity.Vertices > 0 {
			o.maxVertices = cfg.Capacity.Vertices
		}
		if w, h, ok := cfg.Game.GameSize(); ok {
			o.gameWidth, o.gameHeight = w, h
		}
		if cfg.Debug.DumpTextures {
			o.dumpDir = cfg.Debug.DumpDir
		}
		o.noMotionPrediction = cfg.OptOuts.NoMotionPrediction
	}
}
