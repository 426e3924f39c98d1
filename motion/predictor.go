// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package motion

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/glidex/glidex/vertex"
)

// Teleport thresholds. A move at least this large is rendered without
// prediction.
const (
	UnitTeleportDistance Fixed = 2 << 16
	TextTeleportX              = 45
	TextTeleportY              = 22
)

// TrackState classifies an entity after its latest query.
type TrackState uint8

const (
	// Unseen entities were not tracked last frame.
	Unseen TrackState = iota

	// TrackedStable entities did not move.
	TrackedStable

	// TrackedMoving entities moved and are being predicted.
	TrackedMoving

	// Teleported entities moved too far to be predicted.
	Teleported
)

// String returns the state name.
func (s TrackState) String() string {
	switch s {
	case Unseen:
		return "Unseen"
	case TrackedStable:
		return "TrackedStable"
	case TrackedMoving:
		return "TrackedMoving"
	case Teleported:
		return "Teleported"
	default:
		return "TrackState(?)"
	}
}

type unitKey struct {
	typ uint32
	id  uint32
}

func compareUnitKey(a, b unitKey) int {
	if c := cmp.Compare(a.typ, b.typ); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

type unitTrack struct {
	key          unitKey
	actual       Point
	lastRendered Point
	base         Point
	pred         Point
	screenPos    ScreenPoint
	screenOffset Offset
	state        TrackState
}

type textTrack struct {
	id           uint64
	actual       ScreenPoint
	lastRendered Offset
	base         Offset
	pred         Offset
	state        TrackState
}

type shadow struct {
	screenPos   ScreenPoint
	vertexStart int
	vertexEnd   int
}

// Predictor computes render offsets for units, their shadows and floating
// texts. It keeps two generations of tracked entities: the ones seen last
// frame, sorted for lookup, and the ones queried so far this frame.
//
// Predictor is not safe for concurrent use. All queries for a frame must
// happen between two calls to PrepareForNextFrame.
type Predictor struct {
	units  UnitInfoProvider
	screen Screen
	clock  Clock
	logger *slog.Logger

	prevUnits []unitTrack
	curUnits  []unitTrack
	unitIndex map[unitKey]int

	prevTexts []textTrack
	curTexts  []textTrack
	textIndex map[uint64]int

	shadows []shadow

	unexpected int
	resets     int
}

// NewPredictor creates a predictor reading units from units. A nil screen
// disables split-screen suppression of text prediction.
func NewPredictor(units UnitInfoProvider, screen Screen) *Predictor {
	return &Predictor{
		units:     units,
		screen:    screen,
		logger:    slog.New(slog.DiscardHandler),
		prevUnits: make([]unitTrack, 0, 1024),
		curUnits:  make([]unitTrack, 0, 1024),
		unitIndex: make(map[unitKey]int, 1024),
		prevTexts: make([]textTrack, 0, 128),
		curTexts:  make([]textTrack, 0, 128),
		textIndex: make(map[uint64]int, 128),
		shadows:   make([]shadow, 0, 1024),
	}
}

// SetLogger sets the logger for timing diagnostics. Nil restores silence.
func (p *Predictor) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	p.logger = l
}

// Clock returns the predictor's frame clock.
func (p *Predictor) Clock() *Clock { return &p.clock }

// UnitOffset returns the screen offset to draw the unit h with. screenPos
// is where the game places the unit on screen this frame. The player unit
// is not pulled back when it stops.
func (p *Predictor) UnitOffset(h Handle, screenPos ScreenPoint, isPlayer bool) Offset {
	info := p.units.UnitInfo(h)
	key := unitKey{typ: info.Type, id: info.ID}

	if i, ok := p.unitIndex[key]; ok {
		return p.curUnits[i].screenOffset
	}

	i, found := slices.BinarySearchFunc(p.prevUnits, key, func(u unitTrack, k unitKey) int {
		return compareUnitKey(u.key, k)
	})
	if !found {
		if !p.clock.update {
			p.onUnexpectedUpdate("unit")
		}
		p.pushUnit(unitTrack{
			key:          key,
			actual:       info.Pos,
			lastRendered: info.Pos,
			screenPos:    screenPos,
			state:        Unseen,
		})
		return Offset{}
	}

	prev := p.prevUnits[i]
	prev.screenPos = screenPos
	if !p.clock.update && prev.actual != info.Pos {
		p.onUnexpectedUpdate("unit")
	}

	next := predictUnit(prev, info.Pos, p.clock.Fraction(), p.clock.update, isPlayer)
	if isPlayer && next.state == TrackedMoving && p.logger.Enabled(context.Background(), slog.LevelDebug) {
		p.logger.Debug("motion: player moved",
			"distance", pointLength(next.lastRendered.Sub(prev.lastRendered)),
			"fraction", p.clock.Fraction())
	}
	p.pushUnit(next)
	return next.screenOffset
}

func (p *Predictor) pushUnit(u unitTrack) {
	p.unitIndex[u.key] = len(p.curUnits)
	p.curUnits = append(p.curUnits, u)
}

// predictUnit advances one tracked unit to its position pos at tick
// fraction fract.
func predictUnit(prev unitTrack, pos Point, fract float64, update, isPlayer bool) unitTrack {
	if prev.actual == pos {
		prev.state = TrackedStable
		if update {
			prev.base = prev.lastRendered.Sub(prev.actual)
			if isPlayer {
				prev.pred = Point{}
			} else {
				prev.pred = prev.base.Neg()
			}
		}
	} else {
		delta := pos.Sub(prev.actual)
		prev.actual = pos
		if absFixed(delta.X) >= UnitTeleportDistance || absFixed(delta.Y) >= UnitTeleportDistance {
			prev.state = Teleported
			prev.base = Point{}
			prev.pred = Point{}
		} else {
			prev.state = TrackedMoving
			prev.base = prev.lastRendered.Sub(prev.actual)
			prev.pred = pos.Add(delta.Div(4)).Sub(prev.lastRendered)
		}
	}

	ox := prev.base.X.Float() + prev.pred.X.Float()*fract
	oy := prev.base.Y.Float() + prev.pred.Y.Float()*fract
	prev.lastRendered = prev.actual.Add(Point{FixedFromFloat(ox), FixedFromFloat(oy)})
	prev.screenOffset = gameToScreen(ox, oy)
	return prev
}

// TextOffset returns the screen offset to draw the floating text id with.
// pos is where the game places the text this frame.
func (p *Predictor) TextOffset(id uint64, pos ScreenPoint) Offset {
	if p.screen != nil {
		w, _ := p.screen.GameSize()
		half := int32(w / 2)
		mode := p.screen.OpenPanels()
		if (mode&PanelLeft != 0 && pos.X >= half) || (mode&PanelRight != 0 && pos.X <= half) {
			return Offset{}
		}
	}

	if i, ok := p.textIndex[id]; ok {
		t := p.curTexts[i]
		return t.lastRendered.Sub(offsetOf(t.actual))
	}

	i, found := slices.BinarySearchFunc(p.prevTexts, id, func(t textTrack, id uint64) int {
		return cmp.Compare(t.id, id)
	})
	if !found {
		p.pushText(textTrack{
			id:           id,
			actual:       pos,
			lastRendered: offsetOf(pos),
			state:        Unseen,
		})
		return Offset{}
	}

	prev := p.prevTexts[i]
	if !p.clock.update && prev.actual != pos {
		p.onUnexpectedUpdate("text")
	}

	next := predictText(prev, pos, float32(p.clock.Fraction()), p.clock.update)
	p.pushText(next)
	return next.lastRendered.Sub(offsetOf(next.actual))
}

func (p *Predictor) pushText(t textTrack) {
	p.textIndex[t.id] = len(p.curTexts)
	p.curTexts = append(p.curTexts, t)
}

// predictText is predictUnit for texts, in screen pixels. A stopped text
// keeps its current offset rather than snapping back.
func predictText(prev textTrack, pos ScreenPoint, fract float32, update bool) textTrack {
	if prev.actual == pos {
		prev.state = TrackedStable
		if update {
			prev.base = prev.lastRendered.Sub(offsetOf(prev.actual))
			prev.pred = Offset{}
		}
	} else {
		delta := offsetOf(pos).Sub(offsetOf(prev.actual))
		prev.actual = pos
		if abs32(delta.X) >= TextTeleportX || abs32(delta.Y) >= TextTeleportY {
			prev.state = Teleported
			prev.base = Offset{}
			prev.pred = Offset{}
		} else {
			prev.state = TrackedMoving
			prev.base = prev.lastRendered.Sub(offsetOf(prev.actual))
			prev.pred = offsetOf(pos).Add(delta.Scale(0.25)).Sub(prev.lastRendered)
		}
	}

	offset := prev.base.Add(prev.pred.Scale(fract))
	prev.lastRendered = offsetOf(prev.actual).Add(offset)
	return prev
}

// onUnexpectedUpdate reconciles the clock with an update seen outside the
// expected tick and flattens every prediction made so far this frame.
func (p *Predictor) onUnexpectedUpdate(cause string) {
	p.unexpected++
	adjust, jumped := p.clock.Reconcile()
	if jumped {
		p.logger.Warn("motion: unexpected update, jumping ahead", "cause", cause, "amount", int32(adjust))
	} else {
		p.logger.Warn("motion: unexpected update, drawing back", "cause", cause, "amount", int32(adjust))
	}

	for i := range p.curUnits {
		u := &p.curUnits[i]
		u.base = u.lastRendered.Sub(u.actual)
		u.pred = u.base.Neg()
	}
	for i := range p.curTexts {
		t := &p.curTexts[i]
		t.base = t.lastRendered.Sub(offsetOf(t.actual))
		t.pred = Offset{}
	}
}

// UnitState returns the state of a unit queried this frame.
func (p *Predictor) UnitState(unitType, id uint32) (TrackState, bool) {
	i, ok := p.unitIndex[unitKey{typ: unitType, id: id}]
	if !ok {
		return Unseen, false
	}
	return p.curUnits[i].state, true
}

// TextState returns the state of a text queried this frame.
func (p *Predictor) TextState(id uint64) (TrackState, bool) {
	i, ok := p.textIndex[id]
	if !ok {
		return Unseen, false
	}
	return p.curTexts[i].state, true
}

// StartShadow begins a shadow drawn at screenPos whose vertices start at
// vertexStart in the frame's vertex stream.
func (p *Predictor) StartShadow(screenPos ScreenPoint, vertexStart int) {
	p.shadows = append(p.shadows, shadow{
		screenPos:   screenPos,
		vertexStart: vertexStart,
		vertexEnd:   vertexStart,
	})
}

// EndShadow closes the most recent shadow at vertexEnd.
func (p *Predictor) EndShadow(vertexEnd int) {
	if len(p.shadows) == 0 {
		return
	}
	p.shadows[len(p.shadows)-1].vertexEnd = vertexEnd
}

// shadowRadius is how close, in pixels, a unit must be to a shadow to
// lend it its offset.
const shadowRadius = 10

// ApplyShadowOffsets moves every recorded shadow by the offsets of the
// units drawn near it this frame. vertices is the frame's vertex stream.
// Every unit within shadowRadius contributes, so overlapping units add up.
func (p *Predictor) ApplyShadowOffsets(vertices []vertex.Vertex) {
	for _, s := range p.shadows {
		if s.vertexEnd > len(vertices) || s.vertexStart >= s.vertexEnd {
			continue
		}
		for j := len(p.curUnits) - 1; j >= 0; j-- {
			u := &p.curUnits[j]
			if absInt32(u.screenPos.X-s.screenPos.X) >= shadowRadius || absInt32(u.screenPos.Y-s.screenPos.Y) >= shadowRadius {
				continue
			}
			for k := s.vertexStart; k < s.vertexEnd; k++ {
				vertices[k].AddOffset(u.screenOffset.X, u.screenOffset.Y)
			}
		}
	}
}

// PrepareForNextFrame ends the current frame. The entities queried this
// frame become the previous generation and the clock is advanced with the
// frame times (see Clock.Advance). If the clock drifted too far all
// history is dropped.
func (p *Predictor) PrepareForNextFrame(prevProjected, prevActual, projected Fixed) {
	p.prevUnits, p.curUnits = p.curUnits, p.prevUnits[:0]
	slices.SortStableFunc(p.prevUnits, func(a, b unitTrack) int {
		return compareUnitKey(a.key, b.key)
	})
	p.prevTexts, p.curTexts = p.curTexts, p.prevTexts[:0]
	slices.SortStableFunc(p.prevTexts, func(a, b textTrack) int {
		return cmp.Compare(a.id, b.id)
	})
	clear(p.unitIndex)
	clear(p.textIndex)
	p.shadows = p.shadows[:0]

	adv := p.clock.Advance(prevProjected, prevActual, projected)
	if adv.Reset {
		p.resets++
		p.prevUnits = p.prevUnits[:0]
		p.prevTexts = p.prevTexts[:0]
		p.logger.Warn("motion: frame clock drifted, history reset")
	}

	p.logger.Debug("motion: predicting",
		"since", int32(p.clock.sinceLastUpdate),
		"frame", int32(FrameLength),
		"carry", int32(p.clock.fromPrevFrame),
		"update", adv.Update)
}

// Stats reports how often the clock had to be corrected.
type Stats struct {
	UnexpectedUpdates int
	Resets            int

	// Entities queried so far this frame.
	TrackedUnits int
	TrackedTexts int
}

// Stats returns the correction counters since the predictor was created.
func (p *Predictor) Stats() Stats {
	return Stats{
		UnexpectedUpdates: p.unexpected,
		Resets:            p.resets,
		TrackedUnits:      len(p.curUnits),
		TrackedTexts:      len(p.curTexts),
	}
}

func absFixed(x Fixed) Fixed {
	if x < 0 {
		return -x
	}
	return x
}

func absInt32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func pointLength(p Point) float64 {
	x, y := p.X.Float(), p.Y.Float()
	return math.Sqrt(x*x + y*y)
}
