// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

import "cogentcore.org/wallscope/math32"

// Window is a fixed-length sliding window of samples whose
// average suppresses touch jitter. Scalar samples use X.
type Window struct {

	// Size is the maximum number of samples kept.
	Size int

	samples []math32.Vector2
}

// Add adds a sample, dropping the oldest one when full.
func (w *Window) Add(v math32.Vector2) {
	w.samples = append(w.samples, v)
	if n := max(w.Size, 1); len(w.samples) > n {
		w.samples = w.samples[len(w.samples)-n:]
	}
}

// AddScalar adds a scalar sample.
func (w *Window) AddScalar(v float32) {
	w.Add(math32.Vec2(v, 0))
}

// Average returns the average of the samples, or zero if empty.
func (w *Window) Average() math32.Vector2 {
	var s math32.Vector2
	if len(w.samples) == 0 {
		return s
	}
	for _, v := range w.samples {
		s.SetAdd(v)
	}
	return s.DivScalar(float32(len(w.samples)))
}

// Len returns the number of samples.
func (w *Window) Len() int {
	return len(w.samples)
}

// Reset removes all samples.
func (w *Window) Reset() {
	w.samples = w.samples[:0]
}
