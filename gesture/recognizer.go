// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gesture turns per-frame pointer snapshots into discrete
// high-level intents (orbit, pan, zoom, roll, tap, double tap,
// hold, cut and destroy requests) with exactly one active gesture
// at a time.
package gesture

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/wallscope/events"
	"cogentcore.org/wallscope/math32"
)

// States are the mutually exclusive states of the [Recognizer].
type States int32

const (
	// Idle has no pointer down.
	Idle States = iota

	// Dormant has pointers down that may not start a gesture, for
	// example the finger left after a pinch. It lasts until the
	// pointer count changes to one that starts a gesture, or to zero.
	Dormant

	// Pressing is a single pointer that has neither moved past the
	// threshold nor been held for the long-press duration.
	Pressing

	// LongPressed is a single pointer held past the long-press duration.
	LongPressed

	// Orbiting is a single pointer drag.
	Orbiting

	// CutDragging is a single pointer drag after a long press on empty space.
	CutDragging

	// TwoTouch has two pointers whose distance has not yet changed enough.
	TwoTouch

	// Zooming is a two pointer pinch.
	Zooming

	// Panning is a drag with PanPointers or more pointers.
	Panning

	// Rotating is a drag with exactly RotatePointers pointers.
	Rotating
)

var statesNames = []string{"Idle", "Dormant", "Pressing", "LongPressed", "Orbiting", "CutDragging", "TwoTouch", "Zooming", "Panning", "Rotating"}

func (s States) String() string {
	if s < 0 || int(s) >= len(statesNames) {
		return fmt.Sprintf("States(%d)", s)
	}
	return statesNames[s]
}

// IsSingle returns true for the single pointer states.
func (s States) IsSingle() bool {
	return s >= Pressing && s <= CutDragging
}

// HitTester finds the scene part under a screen position.
type HitTester interface {
	HitTest(screen math32.Vector2) (part string, ok bool)
}

// HitTestFunc is a function that implements [HitTester].
type HitTestFunc func(screen math32.Vector2) (string, bool)

func (f HitTestFunc) HitTest(screen math32.Vector2) (string, bool) {
	return f(screen)
}

type axes int32

const (
	axisNone axes = iota
	axisHorizontal
	axisVertical
)

// Recognizer is the gesture state machine. Call [Recognizer.Update]
// once per frame from the update loop, and register for intents with
// [Recognizer.On]. It must be created with [NewRecognizer].
type Recognizer struct {

	// Config has the thresholds.
	Config Config

	// HitTester is queried once at the start of a single pointer press.
	HitTester HitTester

	// Listeners receive the emitted intents.
	Listeners Listeners

	// State is the current state.
	State States

	now  time.Time
	size math32.Vector2

	// single pointer
	start     math32.Vector2
	last      math32.Vector2
	pressPos  math32.Vector2
	startTime time.Time
	lastTime  time.Time
	hit       string
	hasHit    bool
	holding   bool
	showing   bool
	cutStart  math32.Vector2
	cutEnd    math32.Vector2

	// orbit
	axis     axes
	cum      math32.Vector2
	velocity math32.Vector2

	// multi pointer
	startDist    float32
	prevDist     float32
	prevCentroid math32.Vector2
	prevAngle    float32
	ref          events.Sequence
	lastCount    int

	smooth Window

	// tap memory survives Idle
	hasTap  bool
	tapTime time.Time
	tapPos  math32.Vector2
}

// NewRecognizer returns a new recognizer with the given config
// and optional hit tester.
func NewRecognizer(cfg Config, ht HitTester) *Recognizer {
	r := &Recognizer{Config: cfg, HitTester: ht}
	r.smooth.Size = cfg.Smoothing
	return r
}

// On adds a listener for the given intent kind.
func (r *Recognizer) On(kind Kinds, fun func(in *Intent)) {
	r.Listeners.Add(kind, fun)
}

func (r *Recognizer) emit(in Intent) {
	in.Time = r.now
	slog.Debug("gesture", "intent", in.String(), "state", r.State)
	r.Listeners.Call(&in)
}

// Update processes one frame.
func (r *Recognizer) Update(f *events.Frame) {
	r.now = f.Time
	r.size = f.Size
	act := f.Active()
	n := len(act)
	defer func() { r.lastCount = n }()

	if f.Scroll != 0 && (r.State == Idle || r.State == Dormant) {
		r.emit(Intent{Kind: Zoom, Amount: f.Scroll * r.Config.ScrollZoom})
	}

	switch {
	case n == 0:
		if r.State.IsSingle() {
			p, ok := f.Released()
			switch {
			case ok && p.Phase == events.Ended:
				r.release(p.Pos)
			case !ok:
				r.release(r.last)
			}
		}
		r.toIdle()
	case n == 1:
		switch {
		case r.State.IsSingle():
			r.updateSingle(act[0].Pos)
		case r.State == Idle:
			r.beginSingle(act[0].Pos)
		default:
			r.exit(Dormant)
		}
	case n == 2:
		if r.State == TwoTouch || r.State == Zooming {
			r.updateTwo(act, f.AnyBegan())
		} else {
			r.exit(TwoTouch)
			r.beginTwo(act)
		}
	case n == r.Config.RotatePointers:
		if r.State == Rotating {
			r.updateRotate(act, f.AnyBegan())
		} else {
			r.exit(Rotating)
			r.beginRotate(act)
		}
	case n >= r.Config.PanPointers:
		if r.State == Panning {
			r.updatePan(act, f.AnyBegan() || n != r.lastCount)
		} else {
			r.exit(Panning)
			r.beginPan(act)
		}
	default:
		r.exit(Dormant)
	}
}

// exit leaves the current gesture without completing it, emitting
// the cancellation of any feedback it started, and enters the
// given state.
func (r *Recognizer) exit(next States) {
	if r.State != next {
		slog.Debug("gesture: exit", "from", r.State, "to", next)
	}
	r.cancel()
	r.smooth.Reset()
	r.State = next
}

// cancel stops any hold feedback and hides the cut affordance.
func (r *Recognizer) cancel() {
	if r.holding {
		r.holding = false
		r.emit(Intent{Kind: HoldEnd, Part: r.hit})
	}
	if r.showing {
		r.showing = false
		r.emit(Intent{Kind: CutHide})
	}
}

// toIdle enters Idle, clearing all transient state except the tap memory.
func (r *Recognizer) toIdle() {
	r.exit(Idle)
	r.hit, r.hasHit = "", false
	r.axis = axisNone
	r.cum = math32.Vector2{}
	r.velocity = math32.Vector2{}
}

func (r *Recognizer) beginSingle(pos math32.Vector2) {
	r.State = Pressing
	r.start = pos
	r.last = pos
	r.startTime = r.now
	r.lastTime = r.now
	r.hit, r.hasHit = "", false
	if r.HitTester != nil {
		r.hit, r.hasHit = r.HitTester.HitTest(pos)
	}
}

func (r *Recognizer) updateSingle(pos math32.Vector2) {
	switch r.State {
	case Pressing:
		if pos.DistanceToSquared(r.start) > r.Config.MoveThresholdSq {
			r.beginOrbit(pos)
			return
		}
		r.last = pos
		r.lastTime = r.now
		if r.now.Sub(r.startTime) < r.Config.LongPress {
			return
		}
		r.State = LongPressed
		r.pressPos = pos
		if r.hasHit {
			r.holding = true
			r.emit(Intent{Kind: HoldStart, Part: r.hit, Pos: pos})
		} else {
			r.showing = true
			r.emit(Intent{Kind: CutShow, Pos: pos})
		}
	case LongPressed:
		r.last = pos
		if pos.DistanceToSquared(r.pressPos) <= r.Config.MoveThresholdSq {
			return
		}
		if r.hasHit {
			r.exit(Dormant)
			return
		}
		r.State = CutDragging
		r.cutStart = r.pressPos
		r.cutEnd = pos
		r.emit(Intent{Kind: CutStart, Start: r.cutStart})
		r.emit(Intent{Kind: CutUpdate, Start: r.cutStart, End: r.cutEnd})
	case Orbiting:
		r.orbitStep(pos)
	case CutDragging:
		r.last = pos
		if pos == r.cutEnd {
			return
		}
		r.cutEnd = pos
		r.emit(Intent{Kind: CutUpdate, Start: r.cutStart, End: r.cutEnd})
	}
}

func (r *Recognizer) beginOrbit(pos math32.Vector2) {
	r.State = Orbiting
	r.smooth.Reset()
	r.axis = axisNone
	r.cum = math32.Vector2{}
	r.orbitStep(pos)
}

// orbitStep emits the smoothed, axis locked orbit delta for the
// movement from the last position to pos.
func (r *Recognizer) orbitStep(pos math32.Vector2) {
	d := pos.Sub(r.last)
	dt := r.now.Sub(r.lastTime).Seconds()
	r.last = pos
	r.lastTime = r.now
	r.cum.SetAdd(d)
	if r.Config.AxisLock && r.axis == axisNone {
		ax, ay := math32.Abs(r.cum.X), math32.Abs(r.cum.Y)
		switch {
		case ax > ay:
			r.axis = axisHorizontal
		case ay > ax:
			r.axis = axisVertical
		}
	}
	switch r.axis {
	case axisHorizontal:
		d.Y = 0
	case axisVertical:
		d.X = 0
	}
	r.smooth.Add(d)
	sm := r.smooth.Average()
	if dt > 0 {
		r.velocity = sm.DivScalar(float32(dt))
	}
	r.emit(Intent{Kind: Orbit, Delta: sm})
}

// release completes the single pointer gesture at the given position.
func (r *Recognizer) release(pos math32.Vector2) {
	switch r.State {
	case Pressing:
		r.tap(pos)
	case LongPressed:
		if r.hasHit {
			r.holding = false
			r.emit(Intent{Kind: HoldEnd, Part: r.hit})
			r.emit(Intent{Kind: DestroyRequest, Part: r.hit})
		}
	case Orbiting:
		r.orbitStep(pos)
		v := r.velocity.X
		if r.axis == axisVertical || (r.axis == axisNone && math32.Abs(r.velocity.Y) > math32.Abs(r.velocity.X)) {
			v = r.velocity.Y
		}
		if math32.Abs(v) > r.Config.FlickVelocity {
			r.emit(Intent{Kind: ContinuousRotation, Sign: int(math32.Sign(v))})
		}
	case CutDragging:
		r.cutEnd = pos
		r.showing = false
		r.emit(Intent{Kind: CutHide})
		if r.cutStart.DistanceToSquared(r.cutEnd) > r.Config.MinCutDragSq {
			r.emit(Intent{Kind: CutEnd, Start: r.cutStart, End: r.cutEnd})
		}
	}
}

// tap emits a Tap, or a DoubleTap when the previous tap was recent
// and on the other half of the screen.
func (r *Recognizer) tap(pos math32.Vector2) {
	half := r.size.X / 2
	if r.hasTap && half > 0 && r.now.Sub(r.tapTime) <= r.Config.DoubleTapWindow &&
		(r.tapPos.X < half) != (pos.X < half) {
		r.hasTap = false
		sign := 1
		if pos.X < half {
			sign = -1
		}
		r.emit(Intent{Kind: DoubleTap, Pos: pos, Sign: sign})
		return
	}
	r.hasTap = true
	r.tapTime = r.now
	r.tapPos = pos
	r.emit(Intent{Kind: Tap, Pos: pos})
}

func (r *Recognizer) beginTwo(act []events.Pointer) {
	r.startDist = act[0].Pos.DistanceTo(act[1].Pos)
	r.prevDist = r.startDist
}

func (r *Recognizer) updateTwo(act []events.Pointer, began bool) {
	d := act[0].Pos.DistanceTo(act[1].Pos)
	if began {
		r.startDist = d
		r.prevDist = d
		return
	}
	if r.State == TwoTouch {
		if math32.Abs(d-r.startDist) <= r.Config.ZoomThreshold {
			return
		}
		r.State = Zooming
		r.prevDist = d
		return
	}
	r.smooth.AddScalar(d - r.prevDist)
	r.prevDist = d
	r.emit(Intent{Kind: Zoom, Amount: r.smooth.Average().X})
}

func (r *Recognizer) beginPan(act []events.Pointer) {
	r.prevCentroid = events.Centroid(act)
}

func (r *Recognizer) updatePan(act []events.Pointer, reset bool) {
	c := events.Centroid(act)
	if reset {
		r.prevCentroid = c
		return
	}
	r.smooth.Add(c.Sub(r.prevCentroid))
	r.prevCentroid = c
	r.emit(Intent{Kind: Pan, Delta: r.smooth.Average()})
}

// angle returns the angle of the reference pointer around the centroid.
func angle(act []events.Pointer) float32 {
	d := act[0].Pos.Sub(events.Centroid(act))
	return math32.Atan2(d.Y, d.X)
}

func (r *Recognizer) beginRotate(act []events.Pointer) {
	r.ref = act[0].Sequence
	r.prevAngle = angle(act)
}

func (r *Recognizer) updateRotate(act []events.Pointer, began bool) {
	a := angle(act)
	if began || act[0].Sequence != r.ref {
		r.ref = act[0].Sequence
		r.prevAngle = a
		return
	}
	r.smooth.AddScalar(math32.WrapAngle(a - r.prevAngle))
	r.prevAngle = a
	r.emit(Intent{Kind: Roll, Amount: r.smooth.Average().X})
}
