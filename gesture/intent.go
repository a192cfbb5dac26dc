// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"fmt"
	"time"

	"cogentcore.org/wallscope/math32"
)

// Kinds are the kinds of high-level intents emitted by the [Recognizer].
type Kinds int32

const (
	// Orbit is a smoothed one-pointer drag delta (Delta, pixels).
	Orbit Kinds = iota

	// Pan is a smoothed centroid delta of three or more pointers (Delta, pixels).
	Pan

	// Zoom is a smoothed pinch distance delta (Amount, pixels;
	// positive when the fingers spread). Mouse wheel scrolling also
	// produces Zoom.
	Zoom

	// Roll is a smoothed angle delta of the rotate gesture (Amount, radians).
	Roll

	// Tap is a short single-pointer press and release (Pos).
	Tap

	// DoubleTap is a second tap on the opposite screen half within
	// the double-tap window (Pos, Sign: +1 right half, -1 left half).
	DoubleTap

	// HoldStart is a long press on a scene part (Part, Pos).
	HoldStart

	// HoldEnd ends the hold feedback on Part.
	HoldEnd

	// CutShow shows the cut affordance at Pos after a long
	// press on empty space.
	CutShow

	// CutHide hides the cut affordance and any cut line.
	CutHide

	// CutStart starts a cut drag at Start.
	CutStart

	// CutUpdate reports the current cut line from Start to End.
	CutUpdate

	// CutEnd completes a cut drag from Start to End.
	CutEnd

	// DestroyRequest asks to destroy Part after a hold is released.
	DestroyRequest

	// ContinuousRotation starts continuous rotation in direction Sign
	// after a flick.
	ContinuousRotation
)

var kindsNames = []string{"Orbit", "Pan", "Zoom", "Roll", "Tap", "DoubleTap", "HoldStart", "HoldEnd", "CutShow", "CutHide", "CutStart", "CutUpdate", "CutEnd", "DestroyRequest", "ContinuousRotation"}

func (k Kinds) String() string {
	if k < 0 || int(k) >= len(kindsNames) {
		return fmt.Sprintf("Kinds(%d)", k)
	}
	return kindsNames[k]
}

// Intent is one high-level intent. Only the fields documented
// for its [Kinds] are set.
type Intent struct {
	Kind Kinds

	// Time is the frame time at which the intent was emitted.
	Time time.Time

	Pos   math32.Vector2
	Start math32.Vector2
	End   math32.Vector2
	Delta math32.Vector2

	Amount float32
	Sign   int

	// Part is the name of the scene part the intent applies to.
	Part string

	handled bool
}

func (in *Intent) String() string {
	switch in.Kind {
	case Orbit, Pan:
		return fmt.Sprintf("%v{Delta: %v}", in.Kind, in.Delta)
	case Zoom, Roll:
		return fmt.Sprintf("%v{Amount: %g}", in.Kind, in.Amount)
	case Tap, CutShow:
		return fmt.Sprintf("%v{Pos: %v}", in.Kind, in.Pos)
	case DoubleTap:
		return fmt.Sprintf("%v{Pos: %v, Sign: %d}", in.Kind, in.Pos, in.Sign)
	case HoldStart, HoldEnd, DestroyRequest:
		return fmt.Sprintf("%v{Part: %q}", in.Kind, in.Part)
	case CutStart, CutUpdate, CutEnd:
		return fmt.Sprintf("%v{Start: %v, End: %v}", in.Kind, in.Start, in.End)
	case ContinuousRotation:
		return fmt.Sprintf("%v{Sign: %d}", in.Kind, in.Sign)
	}
	return in.Kind.String()
}

// SetHandled marks the intent as handled, stopping further listeners.
func (in *Intent) SetHandled() {
	in.handled = true
}

// IsHandled returns whether the intent has been handled.
func (in *Intent) IsHandled() bool {
	return in.handled
}
