// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/motion"
	"github.com/glidex/glidex/render"
	"github.com/glidex/glidex/texture"
	"github.com/glidex/glidex/vertex"
)

// readVertexState is the per-state vertex template. It is rebuilt lazily
// after any state change that affects it.
type readVertexState struct {
	template            vertex.Vertex
	iteratedColorMask   uint32
	maskedConstantColor uint32
	dirty               bool
}

// Context translates one game's Glide calls into device draw submissions.
// Create it with NewContext.
//
// A Context is not safe for concurrent use.
type Context struct {
	dev      render.Device
	textures render.TextureCache
	acc      *batch.Accumulator
	verts    *vertex.Stream
	merger   *batch.Merger

	mem      *texture.Memory
	hasher   *texture.Hasher
	patches  *texture.PatchTable
	palettes *texture.Palettes

	predictor *motion.Predictor
	screen    motion.Screen

	fatal   FatalHandler
	now     func() time.Time
	dumpDir string
	logger  *slog.Logger
	diag    rate.Sometimes

	constantColor uint32
	stShift       int
	read          readVertexState
	gameArea      batch.Area
	nextSurface   uint16

	frame         uint64
	gameState     GameState
	lastPresent   time.Time
	lastFrameTime motion.Fixed
	totals        Totals
}

// NewContext creates a Context that submits to dev.
//
// Example:
//
//	gc, err := glidex.NewContext(dev, glidex.WithGameSize(800, 600))
//	if err != nil {
//	    return err
//	}
func NewContext(dev render.Device, opts ...Option) (*Context, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.gameWidth <= 0 || o.gameHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGameSize, o.gameWidth, o.gameHeight)
	}
	if o.maxVertices > batch.MaxStartVertex+1 {
		return nil, fmt.Errorf("%w: %d vertices", ErrInvalidCapacity, o.maxVertices)
	}

	c := &Context{
		dev:         dev,
		textures:    o.textures,
		acc:         batch.NewAccumulator(o.maxBatches),
		verts:       vertex.NewStream(o.maxVertices),
		merger:      batch.NewMerger(nil),
		mem:         texture.NewMemory(batch.TMUMemorySize),
		hasher:      texture.NewHasher(),
		patches:     texture.DefaultPatches(),
		palettes:    texture.NewPalettes(),
		screen:      o.screen,
		fatal:       o.fatal,
		now:         o.now,
		dumpDir:     o.dumpDir,
		diag:        rate.Sometimes{Every: 256},
		gameArea:    batch.Area{Width: float32(o.gameWidth), Height: float32(o.gameHeight)},
		nextSurface: batch.SurfaceFirst,
		read:        readVertexState{dirty: true},
	}
	if c.textures == nil {
		tc, err := texture.NewCache(texture.DefaultCacheConfig(), dev)
		if err != nil {
			return nil, err
		}
		c.textures = tc
	}
	if o.units != nil && !o.noMotionPrediction {
		c.predictor = motion.NewPredictor(o.units, o.screen)
	}
	if c.fatal == nil {
		c.fatal = c.defaultFatal
	}
	c.updateGameArea()
	c.SetLogger(Logger())

	dev.SetPalette(batch.WhitePaletteIndex, c.palettes.Palette(batch.WhitePaletteIndex))

	c.logger.Info("glidex: context created",
		"game", fmt.Sprintf("%gx%g", c.gameArea.Width, c.gameArea.Height),
		"batches", c.acc.Cap(),
		"vertices", c.verts.Cap(),
		"motion", c.predictor != nil)
	return c, nil
}

// SetLogger sets the logger of this context and of the components it owns.
// Nil restores silence.
func (c *Context) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	c.logger = l
	propagateLogger(l, c.merger, c.textures, c.dev)
	if c.predictor != nil {
		c.predictor.SetLogger(l)
	}
}

func (c *Context) defaultFatal(err error) {
	c.logger.Error("glidex: fatal", "err", err, "frame", c.frame)
	panic(err)
}

// updateGameArea refreshes the culling area from the screen provider.
func (c *Context) updateGameArea() {
	if c.screen == nil {
		return
	}
	if w, h := c.screen.GameSize(); w > 0 && h > 0 {
		c.gameArea = batch.Area{Width: float32(w), Height: float32(h)}
	}
}

// SetGameSize changes the game resolution used to cull off-screen draws.
func (c *Context) SetGameSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGameSize, width, height)
	}
	c.gameArea = batch.Area{Width: float32(width), Height: float32(height)}
	return nil
}

// GameSize returns the current game resolution.
func (c *Context) GameSize() (width, height int) {
	return int(c.gameArea.Width), int(c.gameArea.Height)
}

// Scratch returns a copy of the render state the next draw will use.
func (c *Context) Scratch() batch.Batch {
	return *c.acc.Scratch()
}

// SetAlphaBlendFunction selects the blend mode from a Glide blend function.
// Only the four quadruples the game uses are recognised; anything else
// blends opaque.
func (c *Context) SetAlphaBlendFunction(rgbSrc, rgbDst, alphaSrc, alphaDst BlendFactor) {
	mode := batch.AlphaBlendOpaque
	if alphaSrc == BlendZero && alphaDst == BlendZero {
		switch {
		case rgbSrc == BlendOne && rgbDst == BlendZero:
			mode = batch.AlphaBlendOpaque
		case rgbSrc == BlendSrcAlpha && rgbDst == BlendOneMinusSrcAlpha:
			mode = batch.AlphaBlendSrcAlphaInvSrcAlpha
		case rgbSrc == BlendOne && rgbDst == BlendOne:
			mode = batch.AlphaBlendAdditive
		case rgbSrc == BlendZero && rgbDst == BlendSrcColor:
			mode = batch.AlphaBlendMultiplicative
		default:
			c.logger.Debug("glidex: unhandled alpha blend function",
				"rgbSrc", rgbSrc, "rgbDst", rgbDst)
		}
	}
	c.acc.Scratch().SetAlphaBlend(mode)
	c.read.dirty = true
}

// SetColorCombine selects the RGB source from a Glide color combine.
// Unrecognised combinations modulate the texture by the iterated color.
func (c *Context) SetColorCombine(fn CombineFunction, factor CombineFactor, local CombineLocal, other CombineOther) {
	mode := batch.RGBCombineColorMultipliedByTexture
	switch {
	case fn == CombineFunctionScaleOther && factor == CombineFactorLocal &&
		local == CombineLocalIterated && other == CombineOtherTexture:
	case fn == CombineFunctionLocal && factor == CombineFactorZero &&
		local == CombineLocalConstant && other == CombineOtherConstant:
		mode = batch.RGBCombineConstantColor
	default:
		c.logger.Debug("glidex: unhandled color combine",
			"function", fn, "factor", factor, "local", local, "other", other)
	}
	c.acc.Scratch().SetRGBCombine(mode)
	c.read.dirty = true
}

// SetAlphaCombine selects the alpha source from a Glide alpha combine.
func (c *Context) SetAlphaCombine(fn CombineFunction, factor CombineFactor, local CombineLocal, other CombineOther) {
	mode := batch.AlphaCombineOne
	if fn == CombineFunctionLocal && factor == CombineFactorZero &&
		local == CombineLocalConstant && other == CombineOtherConstant {
		mode = batch.AlphaCombineFromColor
	}
	c.acc.Scratch().SetAlphaCombine(mode)
}

// SetConstantColor sets the Glide constant color, given as RGBA.
func (c *Context) SetConstantColor(rgba uint32) {
	c.constantColor = rgba>>8 | rgba<<24
	c.read.dirty = true
}

// ConstantColor returns the constant color as ARGB.
func (c *Context) ConstantColor() uint32 { return c.constantColor }

// SetChromaKeyMode enables or disables chroma keying.
func (c *Context) SetChromaKeyMode(mode ChromaKeyMode) {
	c.acc.Scratch().SetChromaKeyEnabled(mode == ChromaKeyEnable)
	c.read.dirty = true
}

// SetTextureFilterMode sets the texture filter.
func (c *Context) SetTextureFilterMode(mode TextureFilter) {
	f := batch.FilterPoint
	if mode == TextureFilterBilinear {
		f = batch.FilterBilinear
	}
	c.acc.Scratch().SetFilterMode(f)
}

// SetSurface tags subsequent draws with a surface id for the
// anti-aliasing resolve. Use batch.SurfaceUI and batch.SurfaceCursor for
// the fixed surfaces.
func (c *Context) SetSurface(id uint16) {
	c.acc.Scratch().SetSurfaceID(id)
}

// NewSurface allocates a fresh game surface id and makes it current.
// Ids restart at batch.SurfaceFirst every frame.
func (c *Context) NewSurface() uint16 {
	id := c.nextSurface
	c.nextSurface++
	c.SetSurface(id)
	return id
}

// ensureReadVertexState rebuilds the vertex template from the scratch
// batch if the state changed.
func (c *Context) ensureReadVertexState() {
	if !c.read.dirty {
		return
	}
	b := c.acc.Scratch()
	iterated := b.RGBCombine() == batch.RGBCombineColorMultipliedByTexture

	palette := batch.WhitePaletteIndex
	constantMask := uint32(0xFFFFFFFF)
	c.read.iteratedColorMask = 0
	if iterated {
		palette = b.PaletteIndex()
		constantMask = 0xFF000000
		c.read.iteratedColorMask = 0x00FFFFFF
	}
	constant := c.constantColor
	if b.AlphaBlend() != batch.AlphaBlendSrcAlphaInvSrcAlpha {
		constant |= 0xFF000000
	}

	c.read.template = vertex.Vertex{
		AtlasIndex:   uint16(b.TextureIndex()),
		PaletteIndex: uint8(palette),
		ChromaKey:    b.IsChromaKeyEnabled(),
	}
	c.read.maskedConstantColor = constantMask & constant
	c.read.dirty = false
}

// readVertex converts a game vertex with the current template.
func (c *Context) readVertex(gv GameVertex) vertex.Vertex {
	v := c.read.template
	v.SetPosition(gv.X, gv.Y)
	v.SetTexcoord(int32(gv.S)>>c.stShift, int32(gv.T)>>c.stShift)
	v.Color = c.read.maskedConstantColor | gv.Color&c.read.iteratedColorMask
	return v
}
