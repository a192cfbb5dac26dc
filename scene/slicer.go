// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/wallscope/math32"
)

// Slicer cuts the mesh of a part along a world-space plane
// into the hulls on each side of it. ok is false when the plane
// does not cut the part.
type Slicer interface {
	Slice(p *Part, plane math32.Plane) (upper, lower *Mesh, ok bool)
}

// SlicerFunc is a function that implements [Slicer].
type SlicerFunc func(p *Part, plane math32.Plane) (upper, lower *Mesh, ok bool)

func (f SlicerFunc) Slice(p *Part, plane math32.Plane) (*Mesh, *Mesh, bool) {
	return f(p, plane)
}

// ConvexSlicer slices meshes that are convex point sets. Each hull
// has the vertices on its side plus the points where the plane
// crosses the segments between vertices on opposite sides.
// The plane is applied at the resting Offset of the part.
type ConvexSlicer struct {

	// Epsilon is the distance within which a vertex is on the plane.
	Epsilon float32
}

func (cs ConvexSlicer) Slice(p *Part, plane math32.Plane) (*Mesh, *Mesh, bool) {
	if p == nil || p.Mesh == nil || !plane.IsValid() {
		return nil, nil, false
	}
	eps := cs.Epsilon
	if eps <= 0 {
		eps = 1e-6
	}
	local := plane.Translate(p.Offset)
	vs := p.Mesh.Vertices
	ds := make([]float32, len(vs))
	var up, lo bool
	for i, v := range vs {
		d := local.DistanceToPoint(v)
		if math32.Abs(d) <= eps {
			d = 0
		}
		ds[i] = d
		up = up || d > 0
		lo = lo || d < 0
	}
	if !up || !lo {
		return nil, nil, false
	}
	upper, lower := &Mesh{}, &Mesh{}
	for i, v := range vs {
		if ds[i] >= 0 {
			upper.Vertices = append(upper.Vertices, v)
		}
		if ds[i] <= 0 {
			lower.Vertices = append(lower.Vertices, v)
		}
	}
	for i := range vs {
		if ds[i] <= 0 {
			continue
		}
		for j := range vs {
			if ds[j] >= 0 {
				continue
			}
			t := ds[i] / (ds[i] - ds[j])
			x := vs[i].Lerp(vs[j], t)
			upper.Vertices = append(upper.Vertices, x)
			lower.Vertices = append(lower.Vertices, x)
		}
	}
	return upper, lower, true
}
