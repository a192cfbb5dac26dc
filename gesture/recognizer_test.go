// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"testing"
	"time"

	"cogentcore.org/wallscope/events"
	"cogentcore.org/wallscope/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness drives a recognizer through a sampler and records intents.
type harness struct {
	t       *testing.T
	r       *Recognizer
	s       *events.Sampler
	now     time.Time
	intents []Intent
}

func newHarness(t *testing.T, ht HitTester) *harness {
	var cfg Config
	cfg.Defaults()
	h := &harness{t: t, s: events.NewSampler(math32.Vec2(1000, 800)), now: time.Unix(1000, 0)}
	h.r = NewRecognizer(cfg, ht)
	for k := Orbit; k <= ContinuousRotation; k++ {
		h.r.On(k, func(in *Intent) { h.intents = append(h.intents, *in) })
	}
	return h
}

// frame advances time by dt and runs one frame.
func (h *harness) frame(dt time.Duration) {
	h.now = h.now.Add(dt)
	f := h.s.Sample(h.now)
	h.r.Update(&f)
}

func (h *harness) touch(typ events.Types, seq events.Sequence, x, y float32) {
	h.s.Touch(typ, seq, math32.Vec2(x, y))
}

func (h *harness) kinds() []Kinds {
	ks := make([]Kinds, len(h.intents))
	for i, in := range h.intents {
		ks[i] = in.Kind
	}
	return ks
}

func (h *harness) reset() {
	h.intents = nil
}

const tick = 16 * time.Millisecond

func TestTap(t *testing.T) {
	h := newHarness(t, nil)
	h.touch(events.TouchStart, 1, 100, 100)
	h.frame(tick)
	assert.Equal(t, Pressing, h.r.State)
	h.touch(events.TouchEnd, 1, 102, 101)
	h.frame(tick)
	assert.Equal(t, Idle, h.r.State)
	require.Equal(t, []Kinds{Tap}, h.kinds())
	assert.Equal(t, math32.Vec2(102, 101), h.intents[0].Pos)
}

func TestDoubleTapSign(t *testing.T) {
	h := newHarness(t, nil)
	tap := func(x float32) {
		h.touch(events.TouchStart, 1, x, 300)
		h.frame(tick)
		h.touch(events.TouchEnd, 1, x, 300)
		h.frame(tick)
	}
	tap(800)
	tap(200)
	require.Equal(t, []Kinds{Tap, DoubleTap}, h.kinds())
	assert.Equal(t, -1, h.intents[1].Sign)

	// tap memory is reset after a double tap
	h.reset()
	tap(800)
	assert.Equal(t, []Kinds{Tap}, h.kinds())
	tap(200)
	tap(800)
	require.Equal(t, []Kinds{Tap, DoubleTap, Tap}, h.kinds())
	assert.Equal(t, -1, h.intents[1].Sign)

	// same half is two taps
	h.reset()
	h.now = h.now.Add(time.Second)
	tap(800)
	tap(900)
	assert.Equal(t, []Kinds{Tap, Tap}, h.kinds())

	// too slow
	h.reset()
	h.now = h.now.Add(time.Second)
	tap(200)
	h.now = h.now.Add(time.Second)
	tap(800)
	assert.Equal(t, []Kinds{Tap, Tap}, h.kinds())
}

func TestOrbitAxisLock(t *testing.T) {
	h := newHarness(t, nil)
	h.touch(events.TouchStart, 1, 100, 100)
	h.frame(tick)
	h.touch(events.TouchMove, 1, 130, 105)
	h.frame(tick)
	assert.Equal(t, Orbiting, h.r.State)
	h.touch(events.TouchMove, 1, 160, 130)
	h.frame(tick)
	for _, in := range h.intents {
		assert.Equal(t, Orbit, in.Kind)
		assert.Zero(t, in.Delta.Y)
		assert.Greater(t, in.Delta.X, float32(0))
	}
	h.touch(events.TouchEnd, 1, 160, 130)
	h.frame(tick)
	assert.Equal(t, Idle, h.r.State)
	assert.NotContains(t, h.kinds(), ContinuousRotation)
	assert.NotContains(t, h.kinds(), Tap)
}

func TestFlick(t *testing.T) {
	h := newHarness(t, nil)
	h.touch(events.TouchStart, 1, 100, 400)
	h.frame(tick)
	for x := float32(150); x <= 500; x += 50 {
		h.touch(events.TouchMove, 1, x, 400)
		h.frame(tick)
	}
	h.touch(events.TouchEnd, 1, 550, 400)
	h.frame(tick)
	ks := h.kinds()
	require.Equal(t, ContinuousRotation, ks[len(ks)-1])
	assert.Equal(t, 1, h.intents[len(ks)-1].Sign)
}

func TestLongPressOnPart(t *testing.T) {
	ht := HitTestFunc(func(p math32.Vector2) (string, bool) { return "RootModel", true })
	h := newHarness(t, ht)
	h.touch(events.TouchStart, 1, 500, 400)
	h.frame(tick)
	h.frame(600 * time.Millisecond)
	assert.Equal(t, LongPressed, h.r.State)
	require.Equal(t, []Kinds{HoldStart}, h.kinds())
	assert.Equal(t, "RootModel", h.intents[0].Part)
	h.touch(events.TouchEnd, 1, 500, 400)
	h.frame(tick)
	require.Equal(t, []Kinds{HoldStart, HoldEnd, DestroyRequest}, h.kinds())
	assert.Equal(t, "RootModel", h.intents[2].Part)

	// moving after the hold cancels it
	h.reset()
	h.touch(events.TouchStart, 1, 500, 400)
	h.frame(tick)
	h.frame(600 * time.Millisecond)
	h.touch(events.TouchMove, 1, 600, 400)
	h.frame(tick)
	assert.Equal(t, Dormant, h.r.State)
	h.touch(events.TouchEnd, 1, 600, 400)
	h.frame(tick)
	assert.Equal(t, []Kinds{HoldStart, HoldEnd}, h.kinds())
}

func TestCutDrag(t *testing.T) {
	h := newHarness(t, nil)
	h.touch(events.TouchStart, 1, 100, 100)
	h.frame(tick)
	h.frame(600 * time.Millisecond)
	require.Equal(t, []Kinds{CutShow}, h.kinds())
	h.touch(events.TouchMove, 1, 200, 100)
	h.frame(tick)
	assert.Equal(t, CutDragging, h.r.State)
	h.touch(events.TouchMove, 1, 300, 120)
	h.frame(tick)
	h.touch(events.TouchEnd, 1, 300, 120)
	h.frame(tick)
	assert.Equal(t, []Kinds{CutShow, CutStart, CutUpdate, CutUpdate, CutHide, CutEnd}, h.kinds())
	end := h.intents[len(h.intents)-1]
	assert.Equal(t, math32.Vec2(100, 100), end.Start)
	assert.Equal(t, math32.Vec2(300, 120), end.End)
}

func TestCutDragTooShort(t *testing.T) {
	h := newHarness(t, nil)
	h.touch(events.TouchStart, 1, 100, 100)
	h.frame(tick)
	h.frame(600 * time.Millisecond)
	h.touch(events.TouchMove, 1, 130, 100)
	h.frame(tick)
	h.touch(events.TouchEnd, 1, 130, 100)
	h.frame(tick)
	assert.Equal(t, []Kinds{CutShow, CutStart, CutUpdate, CutHide}, h.kinds())
}

func TestCutCanceledBySecondFinger(t *testing.T) {
	h := newHarness(t, nil)
	h.touch(events.TouchStart, 1, 100, 100)
	h.frame(tick)
	h.frame(600 * time.Millisecond)
	h.touch(events.TouchStart, 2, 300, 300)
	h.frame(tick)
	assert.Equal(t, TwoTouch, h.r.State)
	assert.Equal(t, []Kinds{CutShow, CutHide}, h.kinds())
}

func TestPinch(t *testing.T) {
	h := newHarness(t, nil)
	h.touch(events.TouchStart, 1, 400, 400)
	h.touch(events.TouchStart, 2, 500, 400)
	h.frame(tick)
	assert.Equal(t, TwoTouch, h.r.State)
	h.touch(events.TouchMove, 2, 505, 400)
	h.frame(tick)
	assert.Equal(t, TwoTouch, h.r.State)
	assert.Empty(t, h.intents)
	h.touch(events.TouchMove, 2, 530, 400)
	h.frame(tick)
	assert.Equal(t, Zooming, h.r.State)
	assert.Empty(t, h.intents)
	h.touch(events.TouchMove, 2, 550, 400)
	h.frame(tick)
	require.Equal(t, []Kinds{Zoom}, h.kinds())
	assert.InDelta(t, 20, h.intents[0].Amount, 1e-4)

	// lifting one finger leaves the other dormant
	h.touch(events.TouchEnd, 2, 550, 400)
	h.frame(tick)
	assert.Equal(t, Dormant, h.r.State)
	h.touch(events.TouchMove, 1, 600, 400)
	h.frame(tick)
	assert.Equal(t, []Kinds{Zoom}, h.kinds())
	h.touch(events.TouchEnd, 1, 600, 400)
	h.frame(tick)
	assert.Equal(t, Idle, h.r.State)
	assert.Equal(t, []Kinds{Zoom}, h.kinds())
}

func TestPanAndRotate(t *testing.T) {
	h := newHarness(t, nil)
	for i := range 3 {
		h.touch(events.TouchStart, events.Sequence(i), 100+float32(i)*50, 100)
	}
	h.frame(tick)
	assert.Equal(t, Panning, h.r.State)
	for i := range 3 {
		h.touch(events.TouchMove, events.Sequence(i), 100+float32(i)*50, 130)
	}
	h.frame(tick)
	require.Equal(t, []Kinds{Pan}, h.kinds())
	assert.InDelta(t, 30, h.intents[0].Delta.Y, 1e-4)

	h.reset()
	pos := []math32.Vector2{{500, 300}, {600, 400}, {500, 500}, {400, 400}, {500, 400}}
	for i := 3; i < 5; i++ {
		h.touch(events.TouchStart, events.Sequence(i), pos[i].X, pos[i].Y)
	}
	for i := range 3 {
		h.touch(events.TouchMove, events.Sequence(i), pos[i].X, pos[i].Y)
	}
	h.frame(tick)
	assert.Equal(t, Rotating, h.r.State)
	assert.Empty(t, h.intents)

	// rotate the first pointer around the centroid
	h.touch(events.TouchMove, 0, 520, 300)
	h.frame(tick)
	require.Equal(t, []Kinds{Roll}, h.kinds())
	assert.NotZero(t, h.intents[0].Amount)
}

func TestScrollZoom(t *testing.T) {
	h := newHarness(t, nil)
	h.s.Send(events.Event{Type: events.Scroll, Delta: 2})
	h.frame(tick)
	require.Equal(t, []Kinds{Zoom}, h.kinds())
	assert.Equal(t, float32(40), h.intents[0].Amount)
}

func TestHandledStopsListeners(t *testing.T) {
	h := newHarness(t, nil)
	called := false
	h.r.On(Tap, func(in *Intent) { in.SetHandled() })
	h.r.On(Zoom, func(in *Intent) { called = true })
	h.touch(events.TouchStart, 1, 10, 10)
	h.frame(tick)
	h.touch(events.TouchEnd, 1, 10, 10)
	h.frame(tick)
	assert.Empty(t, h.intents)
	assert.False(t, called)
}
