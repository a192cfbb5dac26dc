// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/wallscope/math32"
)

// Projector makes the ray from the camera through a screen position.
type Projector interface {
	Ray(screen, size math32.Vector2) math32.Ray
}

// RayHitTester finds the nearest active part whose displayed bounds
// are hit by the camera ray through a screen position.
type RayHitTester struct {
	Scene     *Scene
	Projector Projector

	// Size is the screen size in pixels.
	Size math32.Vector2
}

// HitTest returns the name of the part under the screen position.
func (ht *RayHitTester) HitTest(screen math32.Vector2) (string, bool) {
	ray := ht.Projector.Ray(screen, ht.Size)
	best := math32.Infinity
	name := ""
	for _, p := range ht.Scene.ActiveParts() {
		if t, ok := ray.IntersectBox(p.DisplayBounds()); ok && t < best {
			best = t
			name = p.Name
		}
	}
	return name, name != ""
}
