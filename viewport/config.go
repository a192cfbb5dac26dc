// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"time"

	"cogentcore.org/wallscope/base/defaults"
	"cogentcore.org/wallscope/base/errors"
)

// Config has the speeds and limits of the [Rig].
// Angles are in degrees.
type Config struct {

	// OrbitSpeed is the yaw and pitch change per pixel of orbit delta.
	OrbitSpeed float32 `default:"0.25" validate:"gt=0"`

	// PanSpeed is the target movement per pixel of pan delta,
	// per unit of camera distance.
	PanSpeed float32 `default:"0.002" validate:"gt=0"`

	// ZoomSpeed is the relative distance change per pixel of zoom delta.
	ZoomSpeed float32 `default:"0.005" validate:"gt=0"`

	// RollSpeed scales roll deltas.
	RollSpeed float32 `default:"1" validate:"gt=0"`

	// MinPitch is the lowest pitch.
	MinPitch float32 `default:"-89" validate:"gte=-90,ltfield=MaxPitch"`

	// MaxPitch is the highest pitch.
	MaxPitch float32 `default:"89" validate:"lte=90"`

	// Distance is the initial camera distance from the target.
	Distance float32 `default:"5" validate:"gt=0"`

	// MinDistance is the closest the camera may get to the target.
	MinDistance float32 `default:"0.5" validate:"gt=0"`

	// MaxDistance is the farthest the camera may get from the target.
	// It grows to DistanceFactor times the model size for large models.
	MaxDistance float32 `default:"20" validate:"gtfield=MinDistance"`

	// DistanceFactor scales the model size into a maximum distance.
	DistanceFactor float32 `default:"4" validate:"gt=0"`

	// FOV is the vertical field of view.
	FOV float32 `default:"45" validate:"gt=0,lt=180"`

	// PresetStep is the yaw step of a preset rotation.
	PresetStep float32 `default:"90"`

	// PresetDuration is how long a preset rotation takes.
	PresetDuration time.Duration `default:"400ms" validate:"gte=0"`

	// ContinuousSpeed is the yaw speed of continuous rotation
	// in degrees per second.
	ContinuousSpeed float32 `default:"30"`
}

// Defaults sets the default values from the `default:` tags.
func (c *Config) Defaults() {
	errors.Log(defaults.Set(c))
}
