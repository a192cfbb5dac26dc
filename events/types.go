// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events normalizes raw touch and mouse input into
// per-frame pointer snapshots ([Frame]) for gesture recognition.
package events

import (
	"fmt"
	"time"

	"cogentcore.org/wallscope/math32"
)

// Types is the type of a raw input event, as delivered by a platform
// driver. The touch types follow the low-level touch event processing
// of the standard [JavaScript Event](https://developer.mozilla.org/en-US/docs/Web/Events)
// model, and mouse events are mapped onto a single synthetic pointer.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// TouchStart is when a touch starts.
	TouchStart

	// TouchMove is when an active touch moves.
	TouchMove

	// TouchEnd is when a touch is lifted.
	TouchEnd

	// TouchCancel is when the platform aborts a touch
	// (e.g., the window lost focus mid-gesture).
	TouchCancel

	// MouseDown happens when the left mouse button is pressed down.
	MouseDown

	// MouseUp happens when the left mouse button is released.
	MouseUp

	// MouseMove is sent when the mouse moves, whether or not the
	// button is down. Moves without the button down are ignored.
	MouseMove

	// Scroll is for scroll wheel events; Delta holds the wheel amount.
	Scroll
)

var typesNames = []string{"UnknownType", "TouchStart", "TouchMove", "TouchEnd", "TouchCancel", "MouseDown", "MouseUp", "MouseMove", "Scroll"}

func (t Types) String() string {
	if t < 0 || int(t) >= len(typesNames) {
		return fmt.Sprintf("Types(%d)", t)
	}
	return typesNames[t]
}

// SetString sets the type from its name.
func (t *Types) SetString(s string) error {
	for i, n := range typesNames {
		if n == s {
			*t = Types(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type Types", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (t Types) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *Types) UnmarshalText(text []byte) error {
	return t.SetString(string(text))
}

// Sequence identifies one touch for its whole lifetime.
type Sequence int

// MouseSequence is the pointer identity used for the mouse.
const MouseSequence Sequence = -1

// Event is one raw input event.
type Event struct {
	Type Types

	// Sequence is the touch identity; ignored for mouse events.
	Sequence Sequence

	// Where is the screen position in pixels.
	Where math32.Vector2

	// Delta is the scroll wheel amount for [Scroll] events.
	Delta float32
}

func (ev Event) String() string {
	return fmt.Sprintf("%v{Seq: %d, Pos: %v, Delta: %g}", ev.Type, ev.Sequence, ev.Where, ev.Delta)
}

// Phases is the synthetic per-frame phase of a pointer.
type Phases int32

const (
	// Began is the first frame a pointer is down.
	Began Phases = iota

	// Moved is a frame in which the pointer moved.
	Moved

	// Stationary is a frame in which the pointer is down but did not move.
	Stationary

	// Ended is the frame in which the pointer was lifted.
	Ended

	// Canceled is the frame in which the platform aborted the pointer.
	Canceled
)

var phasesNames = []string{"Began", "Moved", "Stationary", "Ended", "Canceled"}

func (p Phases) String() string {
	if p < 0 || int(p) >= len(phasesNames) {
		return fmt.Sprintf("Phases(%d)", p)
	}
	return phasesNames[p]
}

// IsActive returns true if the pointer is still down in this phase.
func (p Phases) IsActive() bool {
	return p <= Stationary
}

// Pointer is the state of one pointer within a [Frame].
type Pointer struct {
	Sequence Sequence
	Pos      math32.Vector2
	Phase    Phases
}

// Frame is the snapshot of all pointers for one update tick.
// Pointers are sorted by Sequence and include those that ended
// or were canceled during this frame.
type Frame struct {
	Time time.Time

	// Size is the screen size in pixels.
	Size math32.Vector2

	Pointers []Pointer

	// Scroll is the accumulated scroll wheel delta for this frame.
	Scroll float32
}

// Active returns the pointers that are still down.
func (f *Frame) Active() []Pointer {
	var act []Pointer
	for _, p := range f.Pointers {
		if p.Phase.IsActive() {
			act = append(act, p)
		}
	}
	return act
}

// ActiveCount returns the number of pointers that are still down.
func (f *Frame) ActiveCount() int {
	n := 0
	for _, p := range f.Pointers {
		if p.Phase.IsActive() {
			n++
		}
	}
	return n
}

// AnyBegan returns true if any pointer began in this frame.
func (f *Frame) AnyBegan() bool {
	for _, p := range f.Pointers {
		if p.Phase == Began {
			return true
		}
	}
	return false
}

// Released returns the first pointer that ended or was canceled in
// this frame, if any.
func (f *Frame) Released() (Pointer, bool) {
	for _, p := range f.Pointers {
		if !p.Phase.IsActive() {
			return p, true
		}
	}
	return Pointer{}, false
}

// Centroid returns the average position of the given pointers.
func Centroid(ps []Pointer) math32.Vector2 {
	var c math32.Vector2
	if len(ps) == 0 {
		return c
	}
	for _, p := range ps {
		c.SetAdd(p.Pos)
	}
	return c.DivScalar(float32(len(ps)))
}
