// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/wallscope/math32"
)

// RootName is the name of the root part of every loaded model.
const RootName = "RootModel"

// Sides are the two sides of a cut plane.
type Sides int32

const (
	// Upper is the side the plane normal points to.
	Upper Sides = iota

	// Lower is the opposite side.
	Lower
)

// Suffix returns the name suffix of hulls on this side.
func (s Sides) Suffix() string {
	if s == Upper {
		return "_U"
	}
	return "_L"
}

func (s Sides) String() string {
	if s == Upper {
		return "Upper"
	}
	return "Lower"
}

// HullName returns the name of the hull on the given side produced
// by slicing the named part. It is the same on every side of the
// connection for the same original name.
func HullName(orig string, side Sides) string {
	return orig + side.Suffix()
}

// Mesh is the geometry of a part: the vertices of a convex
// hull in the local frame of the part.
type Mesh struct {
	Vertices []math32.Vector3
}

// NewBoxMesh returns the mesh of a box of the given size centered on the origin.
func NewBoxMesh(size math32.Vector3) *Mesh {
	h := size.MulScalar(0.5)
	m := &Mesh{}
	for _, x := range []float32{-h.X, h.X} {
		for _, y := range []float32{-h.Y, h.Y} {
			for _, z := range []float32{-h.Z, h.Z} {
				m.Vertices = append(m.Vertices, math32.Vec3(x, y, z))
			}
		}
	}
	return m
}

// Bounds returns the local bounding box of the mesh.
func (m *Mesh) Bounds() math32.Box3 {
	var b math32.Box3
	if m == nil {
		return math32.B3Empty()
	}
	b.SetFromPoints(m.Vertices)
	return b
}

// Transform is the initial placement of the model in the display.
type Transform struct {
	Position math32.Vector3
	Rotation math32.Quat
	Scale    math32.Vector3
}

// Part is a named, independently activatable piece of the model.
type Part struct {

	// Name is unique among the parts of a [Scene].
	Name string

	// Parent is the name of the part this one was sliced from,
	// or empty for the root.
	Parent string

	// Mesh is the geometry, in the local frame.
	Mesh *Mesh

	// Offset is the logical resting position of the part. It is what
	// slicing and bounds use, so it never depends on animation timing.
	Offset math32.Vector3

	// Pos is the displayed position, which animations move toward Offset.
	Pos math32.Vector3

	// Shake is the displacement added by the hold feedback.
	Shake math32.Vector3

	active    bool
	destroyed bool
}

// NewPart returns a new active part at the given offset.
func NewPart(name, parent string, mesh *Mesh, offset math32.Vector3) *Part {
	return &Part{Name: name, Parent: parent, Mesh: mesh, Offset: offset, Pos: offset, active: true}
}

// IsActive returns whether the part is shown and editable.
func (p *Part) IsActive() bool {
	return p.active && !p.destroyed
}

// IsDestroyed returns whether the part has been destroyed. A destroyed
// part is no longer in any scene, and handles to it are stale.
func (p *Part) IsDestroyed() bool {
	return p.destroyed
}

// Bounds returns the world bounds of the part at its resting position.
func (p *Part) Bounds() math32.Box3 {
	return p.Mesh.Bounds().Translate(p.Offset)
}

// DisplayBounds returns the world bounds of the part where it is displayed.
func (p *Part) DisplayBounds() math32.Box3 {
	return p.Mesh.Bounds().Translate(p.Pos.Add(p.Shake))
}

func (p *Part) String() string {
	return p.Name
}
