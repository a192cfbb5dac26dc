// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Plane is a cutting plane given by a point on the plane
// and its unit normal.
type Plane struct {
	Point  Vector3
	Normal Vector3
}

// NewPlane returns a plane through point with the given normal,
// which is normalized.
func NewPlane(point, normal Vector3) Plane {
	return Plane{Point: point, Normal: normal.Normal()}
}

// IsValid returns true if the plane has finite components and a non-zero normal.
func (p Plane) IsValid() bool {
	return p.Point.IsFinite() && p.Normal.IsFinite() && p.Normal.LengthSquared() > 0
}

// DistanceToPoint returns the signed distance from the plane to the point,
// positive on the side the normal points to.
func (p Plane) DistanceToPoint(point Vector3) float32 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// Translate returns the plane moved by -offset, which expresses the
// plane in the local frame of an object located at offset.
func (p Plane) Translate(offset Vector3) Plane {
	return Plane{Point: p.Point.Sub(offset), Normal: p.Normal}
}
