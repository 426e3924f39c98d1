// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package motion

import (
	"testing"

	"github.com/glidex/glidex/vertex"
)

type fakeUnits map[Handle]UnitInfo

func (f fakeUnits) UnitInfo(h Handle) UnitInfo { return f[h] }

type fakeScreen struct {
	width  int
	panels int
}

func (s fakeScreen) GameSize() (int, int) { return s.width, 600 }
func (s fakeScreen) OpenPanels() int      { return s.panels }

// endFrame finishes a frame that took exactly quarterTick.
func endFrame(p *Predictor) {
	p.PrepareForNextFrame(quarterTick, quarterTick, quarterTick)
}

func fixedPoint(x, y int32) Point {
	return Point{Fixed(x) << 16, Fixed(y) << 16}
}

func TestPredictorStationaryUnitHasNoDrift(t *testing.T) {
	for _, isPlayer := range []bool{false, true} {
		units := fakeUnits{1: {ID: 7, Type: 1, Pos: fixedPoint(1000, 1000)}}
		p := NewPredictor(units, nil)

		for frame := 0; frame < 200; frame++ {
			if off := p.UnitOffset(1, ScreenPoint{400, 300}, isPlayer); !off.IsZero() {
				t.Fatalf("player=%v frame %d: UnitOffset() = %+v, want zero", isPlayer, frame, off)
			}
			endFrame(p)
		}
	}
}

func TestPredictorTeleportSnaps(t *testing.T) {
	units := fakeUnits{1: {ID: 7, Pos: fixedPoint(1000, 1000)}}
	p := NewPredictor(units, nil)
	p.UnitOffset(1, ScreenPoint{}, false)
	endFrame(p)

	units[1] = UnitInfo{ID: 7, Pos: fixedPoint(1004, 1000)}
	if off := p.UnitOffset(1, ScreenPoint{}, false); !off.IsZero() {
		t.Errorf("UnitOffset() after teleport = %+v, want zero", off)
	}
	if st, _ := p.UnitState(0, 7); st != Teleported {
		t.Errorf("UnitState() = %v, want Teleported", st)
	}
}

func TestPredictorIdempotentWithinFrame(t *testing.T) {
	units := fakeUnits{1: {ID: 7, Pos: fixedPoint(1000, 1000)}}
	screen := fakeScreen{width: 800}
	p := NewPredictor(units, screen)

	p.UnitOffset(1, ScreenPoint{}, false)
	p.TextOffset(99, ScreenPoint{100, 100})
	endFrame(p)

	units[1] = UnitInfo{ID: 7, Pos: fixedPoint(1000, 1000).Add(Point{One, 0})}
	first := p.UnitOffset(1, ScreenPoint{}, false)
	second := p.UnitOffset(1, ScreenPoint{}, false)
	if first != second {
		t.Errorf("UnitOffset() twice = %+v then %+v", first, second)
	}
	if first.IsZero() {
		t.Error("moving unit has no offset")
	}

	t1 := p.TextOffset(99, ScreenPoint{104, 100})
	t2 := p.TextOffset(99, ScreenPoint{104, 100})
	if t1 != t2 {
		t.Errorf("TextOffset() twice = %+v then %+v", t1, t2)
	}
	if st := p.Stats(); st.TrackedUnits != 1 || st.TrackedTexts != 1 {
		t.Errorf("tracked %d units %d texts, want 1 and 1", st.TrackedUnits, st.TrackedTexts)
	}
}

func TestPredictUnitInterpolatesTowardQuarterStep(t *testing.T) {
	start := fixedPoint(1000, 1000)
	delta := Point{One, 0}
	prev := unitTrack{actual: start, lastRendered: start}

	lastX := Fixed(-1 << 31)
	for i := 0; i <= 10; i++ {
		f := float64(i) / 10
		next := predictUnit(prev, start.Add(delta), f, true, false)
		if next.state != TrackedMoving {
			t.Fatalf("state = %v, want TrackedMoving", next.state)
		}
		// The look-ahead target is a quarter step past the new position.
		if got := next.base.Add(next.pred); got != delta.Div(4) {
			t.Fatalf("target offset = %+v, want %+v", got, delta.Div(4))
		}
		if next.lastRendered.X < lastX {
			t.Errorf("f=%v: rendered X %d moved backwards from %d", f, next.lastRendered.X, lastX)
		}
		lastX = next.lastRendered.X
		if next.lastRendered.Y != start.Y {
			t.Errorf("f=%v: rendered Y = %d, want %d", f, next.lastRendered.Y, start.Y)
		}

		switch i {
		case 0:
			if next.lastRendered != start {
				t.Errorf("f=0: rendered at %+v, want last rendered %+v", next.lastRendered, start)
			}
		case 10:
			want := start.Add(delta).Add(delta.Div(4))
			if next.lastRendered != want {
				t.Errorf("f=1: rendered at %+v, want %+v", next.lastRendered, want)
			}
			if want := gameToScreen(0.25, 0); next.screenOffset != want {
				t.Errorf("f=1: screen offset %+v, want %+v", next.screenOffset, want)
			}
		}
	}
}

func TestPredictUnitStopped(t *testing.T) {
	pos := fixedPoint(10, 10)
	prev := unitTrack{actual: pos, lastRendered: pos.Add(Point{One / 2, 0})}

	npc := predictUnit(prev, pos, 1, true, false)
	if npc.lastRendered != pos {
		t.Errorf("stopped unit rendered at %+v at end of tick, want %+v", npc.lastRendered, pos)
	}
	player := predictUnit(prev, pos, 1, true, true)
	if player.lastRendered != prev.lastRendered {
		t.Errorf("stopped player rendered at %+v, want unchanged %+v", player.lastRendered, prev.lastRendered)
	}

	// Without an expected update the previous prediction is kept.
	prev.base = Point{One, 0}
	held := predictUnit(prev, pos, 0, false, false)
	if held.base != prev.base || held.state != TrackedStable {
		t.Errorf("no-update stable unit = %+v", held)
	}
}

func TestPredictorUnexpectedUpdates(t *testing.T) {
	units := fakeUnits{1: {ID: 7, Pos: fixedPoint(1000, 1000)}}
	p := NewPredictor(units, nil)

	// A unit appearing outside a tick is an unexpected update.
	p.UnitOffset(1, ScreenPoint{}, false)
	if n := p.Stats().UnexpectedUpdates; n != 1 {
		t.Fatalf("UnexpectedUpdates = %d after new unit, want 1", n)
	}
	endFrame(p)
	if p.Clock().UpdateExpected() {
		t.Fatal("update expected one quarter tick into the tick")
	}

	units[1] = UnitInfo{ID: 7, Pos: fixedPoint(1000, 1000).Add(Point{One / 2, 0})}
	p.UnitOffset(1, ScreenPoint{}, false)
	if n := p.Stats().UnexpectedUpdates; n != 2 {
		t.Errorf("UnexpectedUpdates = %d after early move, want 2", n)
	}
	if st, _ := p.UnitState(0, 7); st != TrackedMoving {
		t.Errorf("UnitState() = %v, want TrackedMoving", st)
	}

	// Moves during an expected tick are not unexpected.
	endFrame(p)
	for !p.Clock().UpdateExpected() {
		p.UnitOffset(1, ScreenPoint{}, false)
		endFrame(p)
	}
	before := p.Stats().UnexpectedUpdates
	units[1] = UnitInfo{ID: 7, Pos: units[1].Pos.Add(Point{One / 2, 0})}
	p.UnitOffset(1, ScreenPoint{}, false)
	if n := p.Stats().UnexpectedUpdates; n != before {
		t.Errorf("UnexpectedUpdates = %d after expected move, want %d", n, before)
	}
}

func TestPredictorUnexpectedUpdateFlattens(t *testing.T) {
	p := NewPredictor(fakeUnits{}, nil)
	p.pushUnit(unitTrack{
		key:          unitKey{id: 1},
		actual:       fixedPoint(5, 5),
		lastRendered: fixedPoint(5, 5).Add(Point{100, 0}),
		base:         Point{7, 7},
		pred:         Point{9, 9},
	})
	p.pushText(textTrack{id: 2, actual: ScreenPoint{10, 10}, lastRendered: Offset{13, 10}, pred: Offset{5, 5}})

	p.onUnexpectedUpdate("test")

	u := p.curUnits[0]
	if u.base != (Point{100, 0}) || u.pred != (Point{-100, 0}) {
		t.Errorf("unit base/pred = %+v/%+v, want flattened to last rendered", u.base, u.pred)
	}
	tx := p.curTexts[0]
	if tx.base != (Offset{3, 0}) || !tx.pred.IsZero() {
		t.Errorf("text base/pred = %+v/%+v, want (3,0)/zero", tx.base, tx.pred)
	}
}

func TestPredictorMatchesByIdentityNotHandle(t *testing.T) {
	units := fakeUnits{
		1: {ID: 30, Type: 1, Pos: fixedPoint(1, 1)},
		2: {ID: 10, Type: 1, Pos: fixedPoint(2, 2)},
		3: {ID: 20, Type: 0, Pos: fixedPoint(3, 3)},
	}
	p := NewPredictor(units, nil)
	for h := Handle(1); h <= 3; h++ {
		p.UnitOffset(h, ScreenPoint{}, false)
	}
	endFrame(p)

	// Handles are shuffled by the game; identities stay.
	units[1], units[3] = units[3], units[1]
	// Handle 2 is recycled for another unit.
	units[2] = UnitInfo{ID: 11, Type: 1, Pos: fixedPoint(2, 2)}

	for h := Handle(1); h <= 3; h++ {
		p.UnitOffset(h, ScreenPoint{}, false)
	}

	for _, tc := range []struct {
		typ, id uint32
		want    TrackState
	}{
		{1, 30, TrackedStable},
		{0, 20, TrackedStable},
		{1, 11, Unseen},
	} {
		if st, ok := p.UnitState(tc.typ, tc.id); !ok || st != tc.want {
			t.Errorf("UnitState(%d, %d) = %v,%v, want %v", tc.typ, tc.id, st, ok, tc.want)
		}
	}
	if _, ok := p.UnitState(1, 10); ok {
		t.Error("recycled unit still reported")
	}
}

func TestPredictorDriftResetClearsHistory(t *testing.T) {
	units := fakeUnits{1: {ID: 7, Pos: fixedPoint(1, 1)}}
	p := NewPredictor(units, nil)
	p.UnitOffset(1, ScreenPoint{}, false)
	p.TextOffset(5, ScreenPoint{1, 1})

	// A loading screen stalls for several ticks.
	p.PrepareForNextFrame(0, 0, 4*FrameLength)
	if p.Stats().Resets != 1 {
		t.Fatalf("Resets = %d, want 1", p.Stats().Resets)
	}
	p.UnitOffset(1, ScreenPoint{}, false)
	if st, _ := p.UnitState(0, 7); st != Unseen {
		t.Errorf("UnitState() after reset = %v, want Unseen", st)
	}
	p.TextOffset(5, ScreenPoint{1, 1})
	if st, _ := p.TextState(5); st != Unseen {
		t.Errorf("TextState() after reset = %v, want Unseen", st)
	}
}

func TestTextOffsetSplitScreen(t *testing.T) {
	tests := []struct {
		name      string
		panels    int
		x         int32
		predicted bool
	}{
		{"no panels", 0, 100, true},
		{"left panel, left text", PanelLeft, 100, true},
		{"left panel, right text", PanelLeft, 600, false},
		{"left panel, center", PanelLeft, 400, false},
		{"right panel, left text", PanelRight, 100, false},
		{"right panel, right text", PanelRight, 600, true},
		{"both panels", PanelLeft | PanelRight, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPredictor(fakeUnits{}, fakeScreen{width: 800, panels: tt.panels})
			p.TextOffset(1, ScreenPoint{tt.x, 100})
			if _, ok := p.TextState(1); ok != tt.predicted {
				t.Errorf("text tracked = %v, want %v", ok, tt.predicted)
			}
		})
	}
}

func TestPredictText(t *testing.T) {
	prev := textTrack{actual: ScreenPoint{100, 100}, lastRendered: Offset{100, 100}}

	moving := predictText(prev, ScreenPoint{104, 100}, 1, true)
	if moving.state != TrackedMoving {
		t.Fatalf("state = %v, want TrackedMoving", moving.state)
	}
	if moving.lastRendered != (Offset{105, 100}) {
		t.Errorf("f=1 rendered at %+v, want (105,100)", moving.lastRendered)
	}

	jump := predictText(prev, ScreenPoint{145, 100}, 0.5, true)
	if jump.state != Teleported || jump.lastRendered != (Offset{145, 100}) {
		t.Errorf("teleported text = %+v", jump)
	}
	if jumpY := predictText(prev, ScreenPoint{100, 78}, 0.5, true); jumpY.state != Teleported {
		t.Errorf("vertical jump state = %v, want Teleported", jumpY.state)
	}

	// Stopped texts hold their offset instead of snapping back.
	stopped := textTrack{actual: ScreenPoint{100, 100}, lastRendered: Offset{102, 100}}
	held := predictText(stopped, ScreenPoint{100, 100}, 1, true)
	if held.lastRendered != (Offset{102, 100}) {
		t.Errorf("stopped text rendered at %+v, want (102,100)", held.lastRendered)
	}
}

func TestApplyShadowOffsets(t *testing.T) {
	p := NewPredictor(fakeUnits{}, nil)
	p.pushUnit(unitTrack{key: unitKey{id: 1}, screenPos: ScreenPoint{100, 100}, screenOffset: Offset{2, 1}})
	p.pushUnit(unitTrack{key: unitKey{id: 2}, screenPos: ScreenPoint{300, 300}, screenOffset: Offset{50, 50}})

	vs := make([]vertex.Vertex, 8)
	p.StartShadow(ScreenPoint{105, 95}, 2)
	p.EndShadow(5)

	p.ApplyShadowOffsets(vs)
	for i, v := range vs {
		want := Offset{}
		if i >= 2 && i < 5 {
			want = Offset{2, 1}
		}
		if v.X != want.X || v.Y != want.Y {
			t.Errorf("vertex %d = (%v,%v), want (%v,%v)", i, v.X, v.Y, want.X, want.Y)
		}
	}

	// Overlapping units both move the shadow.
	p.pushUnit(unitTrack{key: unitKey{id: 3}, screenPos: ScreenPoint{98, 100}, screenOffset: Offset{1, 1}})
	vs = make([]vertex.Vertex, 8)
	p.ApplyShadowOffsets(vs)
	if vs[2].X != 3 || vs[2].Y != 2 {
		t.Errorf("overlapping shadow = (%v,%v), want (3,2)", vs[2].X, vs[2].Y)
	}

	// Shadows are per frame.
	endFrame(p)
	vs = make([]vertex.Vertex, 8)
	p.ApplyShadowOffsets(vs)
	if vs[2].X != 0 {
		t.Error("shadow survived PrepareForNextFrame")
	}
}
