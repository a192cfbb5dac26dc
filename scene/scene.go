// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene holds the named parts of the displayed model: the
// client's mirror and the server's authoritative copy are both a
// [Scene]. A Scene is only used from the update loop and is not
// safe for concurrent use.
package scene

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/math32"
)

var (
	// ErrNameCollision is returned when adding a part whose name is taken.
	ErrNameCollision = errors.New("scene: part name already exists")

	// ErrUnknownPart is returned for a part name that is not in the scene.
	ErrUnknownPart = errors.New("scene: unknown part")
)

// Scene is an ordered registry of parts by name, plus the root part
// of the loaded model. Parts stay addressable by name, whether active
// or not, until they are destroyed. It must be created with [New].
type Scene struct {

	// Config has the animation settings.
	Config Config

	// Model is the identifier of the loaded model.
	Model string

	// Transform is the initial placement of the model.
	Transform Transform

	// Animator runs the per-frame animations of the parts.
	Animator Animator

	root *Part

	// order has the parts in the order added.
	order []*Part

	// index maps a name to its index in order.
	index map[string]int
}

// New returns a new scene with a root part of the given mesh.
func New(cfg Config, model string, mesh *Mesh) *Scene {
	sc := &Scene{Config: cfg}
	sc.Animator.Config = &sc.Config
	sc.Transform.Rotation.SetIdentity()
	sc.Transform.Scale = math32.Vector3Scalar(1)
	sc.Load(model, mesh)
	return sc
}

// Load replaces all parts with a new root part of the given mesh.
func (sc *Scene) Load(model string, mesh *Mesh) {
	for _, p := range sc.order {
		p.destroyed = true
	}
	sc.Animator.Stop()
	sc.order = nil
	sc.index = make(map[string]int)
	sc.Model = model
	sc.root = NewPart(RootName, "", mesh, math32.Vector3{})
	sc.add(sc.root)
	slog.Debug("scene: load", "model", model)
}

// Root returns the root part.
func (sc *Scene) Root() *Part {
	return sc.root
}

// Len returns the number of registered parts.
func (sc *Scene) Len() int {
	return len(sc.order)
}

// Add registers the given part. It returns [ErrNameCollision]
// if a part of the same name is already registered.
func (sc *Scene) Add(p *Part) error {
	if _, has := sc.index[p.Name]; has {
		return fmt.Errorf("%w: %q", ErrNameCollision, p.Name)
	}
	p.destroyed = false
	sc.add(p)
	return nil
}

func (sc *Scene) add(p *Part) {
	sc.index[p.Name] = len(sc.order)
	sc.order = append(sc.order, p)
}

// Part returns the registered part of the given name.
func (sc *Scene) Part(name string) (*Part, bool) {
	idx, ok := sc.index[name]
	if !ok {
		return nil, false
	}
	return sc.order[idx], true
}

// Has returns whether a part of the given name is registered.
func (sc *Scene) Has(name string) bool {
	_, ok := sc.index[name]
	return ok
}

// Destroy permanently removes the given part from the scene and
// stops its animations. Destroying a part that is not registered
// (for example one that has already been destroyed) does nothing.
func (sc *Scene) Destroy(p *Part) {
	if p == nil || p.destroyed {
		return
	}
	idx, ok := sc.index[p.Name]
	if !ok || sc.order[idx] != p {
		return
	}
	p.destroyed = true
	p.active = false
	sc.Animator.StopPart(p)
	sc.order = append(sc.order[:idx], sc.order[idx+1:]...)
	delete(sc.index, p.Name)
	for i := idx; i < len(sc.order); i++ {
		sc.index[sc.order[i].Name] = i
	}
}

// SetActive sets whether the given part is active. It returns false
// and does nothing if the part has been destroyed.
func (sc *Scene) SetActive(p *Part, active bool) bool {
	if p == nil || p.destroyed {
		return false
	}
	p.active = active
	return true
}

// ActiveParts returns the active parts in the order they were added.
func (sc *Scene) ActiveParts() []*Part {
	var ps []*Part
	for _, p := range sc.order {
		if p.IsActive() {
			ps = append(ps, p)
		}
	}
	return ps
}

// ActiveNames returns the names of the active parts in the order
// they were added.
func (sc *Scene) ActiveNames() []string {
	var ns []string
	for _, p := range sc.order {
		if p.IsActive() {
			ns = append(ns, p.Name)
		}
	}
	return ns
}

// Bounds returns the world bounds of the given parts at their
// resting positions.
func Bounds(parts []*Part) math32.Box3 {
	b := math32.B3Empty()
	for _, p := range parts {
		b.ExpandByBox(p.Bounds())
	}
	return b
}

// ActiveBounds returns the bounds of the active parts.
func (sc *Scene) ActiveBounds() math32.Box3 {
	return Bounds(sc.ActiveParts())
}

// ResetToRoot destroys every part except the root, and returns the
// root to its active, resting state.
func (sc *Scene) ResetToRoot() {
	for i := len(sc.order) - 1; i >= 0; i-- {
		if p := sc.order[i]; p != sc.root {
			sc.Destroy(p)
		}
	}
	sc.Animator.Stop()
	sc.root.active = true
	sc.root.Offset = math32.Vector3{}
	sc.root.Pos = sc.root.Offset
	sc.root.Shake = math32.Vector3{}
}

// Update advances the animations by dt.
func (sc *Scene) Update(dt time.Duration) {
	sc.Animator.Update(dt)
}
