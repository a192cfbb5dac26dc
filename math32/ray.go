// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
func NewRay(origin, dir Vector3) *Ray {
	return &Ray{Origin: origin, Dir: dir}
}

// At returns the point along the ray at the given distance t.
func (ray *Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// IntersectBox returns the distance along the ray to the nearest intersection
// with the given box, using the slab method. ok is false if the ray misses the
// box or the box lies entirely behind the origin.
func (ray *Ray) IntersectBox(box Box3) (t float32, ok bool) {
	if box.IsEmpty() {
		return 0, false
	}
	tmin := -Infinity
	tmax := Infinity
	slab := func(o, d, lo, hi float32) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		inv := 1 / d
		t0 := (lo - o) * inv
		t1 := (hi - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = Max(tmin, t0)
		tmax = Min(tmax, t1)
		return tmin <= tmax
	}
	if !slab(ray.Origin.X, ray.Dir.X, box.Min.X, box.Max.X) ||
		!slab(ray.Origin.Y, ray.Dir.Y, box.Min.Y, box.Max.Y) ||
		!slab(ray.Origin.Z, ray.Dir.Z, box.Min.Z, box.Max.Z) {
		return 0, false
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}
