// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import (
	"time"

	"cogentcore.org/wallscope/base/defaults"
	"cogentcore.org/wallscope/base/errors"
)

// Config has the thresholds used by the [Recognizer].
// Pixel thresholds are in screen pixels of the [events.Frame].
type Config struct {

	// LongPress is how long a single pointer must stay within
	// MoveThresholdSq of its start to count as a long press.
	LongPress time.Duration `default:"500ms" validate:"gt=0"`

	// MoveThresholdSq is the squared pixel distance a single pointer
	// must move to start an orbit or a cut drag.
	MoveThresholdSq float32 `default:"500" validate:"gt=0"`

	// DoubleTapWindow is the maximum time between two taps
	// for them to form a double tap.
	DoubleTapWindow time.Duration `default:"300ms" validate:"gt=0"`

	// Smoothing is the number of samples averaged for
	// orbit, pan, zoom and roll deltas.
	Smoothing int `default:"5" validate:"gte=1"`

	// FlickVelocity is the orbit release speed in pixels per second
	// above which continuous rotation starts.
	FlickVelocity float32 `default:"1500" validate:"gt=0"`

	// MinCutDragSq is the squared pixel length a cut line must
	// exceed to produce a CutEnd.
	MinCutDragSq float32 `default:"2500" validate:"gte=0"`

	// ZoomThreshold is the pixel change in two-finger distance
	// needed to lock into zooming.
	ZoomThreshold float32 `default:"10" validate:"gte=0"`

	// PanPointers is the minimum pointer count for panning.
	PanPointers int `default:"3" validate:"gte=3"`

	// RotatePointers is the exact pointer count for rolling.
	RotatePointers int `default:"5" validate:"gte=3"`

	// AxisLock locks orbiting to the dominant axis of the drag.
	AxisLock bool `default:"true"`

	// ScrollZoom scales mouse wheel deltas into Zoom amounts.
	ScrollZoom float32 `default:"20"`
}

// Defaults sets the default values from the `default:` tags.
func (c *Config) Defaults() {
	errors.Log(defaults.Set(c))
}
