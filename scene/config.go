// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"time"

	"cogentcore.org/wallscope/base/defaults"
	"cogentcore.org/wallscope/base/errors"
)

// Config has the scene animation settings.
type Config struct {

	// Separation is the distance slice hulls are moved apart,
	// half to each side of the cut plane.
	Separation float32 `default:"0.2" validate:"gte=0"`

	// SeparationDuration is how long the hull separation animation takes.
	SeparationDuration time.Duration `default:"500ms" validate:"gte=0"`

	// ShakeAmplitude is the displacement of the hold feedback shake.
	ShakeAmplitude float32 `default:"0.02" validate:"gte=0"`

	// ShakeFrequency is the angular frequency of the shake in radians per second.
	ShakeFrequency float32 `default:"40" validate:"gt=0"`
}

// Defaults sets the default values from the `default:` tags.
func (c *Config) Defaults() {
	errors.Log(defaults.Set(c))
}
