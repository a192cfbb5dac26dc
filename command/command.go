// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command has the reversible scene edits (slice and destroy)
// and the per-side undo / redo [History] that runs them.
package command

import (
	"fmt"
	"log/slog"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/math32"
	"cogentcore.org/wallscope/scene"
	"github.com/google/uuid"
)

// ErrNoEffect is returned by [Command.Execute] when the command
// could not change the scene at all, for example a slice whose
// plane cuts none of its targets. Such a command is not recorded.
var ErrNoEffect = errors.New("command: no effect")

// Kinds are the kinds of commands.
type Kinds int32

const (
	// Slice cuts target parts along a plane into upper and lower hulls.
	Slice Kinds = iota

	// Destroy deactivates one target part.
	Destroy
)

func (k Kinds) String() string {
	switch k {
	case Slice:
		return "Slice"
	case Destroy:
		return "Destroy"
	}
	return fmt.Sprintf("Kinds(%d)", k)
}

// SliceParams are the parameters of a [Slice] command.
type SliceParams struct {

	// Targets are the names of the parts to cut.
	Targets []string

	// Plane is the world-space cut plane.
	Plane math32.Plane

	// Separation is the distance the two hulls of each target are
	// moved apart along the plane normal.
	Separation float32
}

// DestroyParams are the parameters of a [Destroy] command.
type DestroyParams struct {

	// Target is the name of the part to destroy.
	Target string
}

// Env is what commands run against.
type Env struct {
	Scene  *scene.Scene
	Slicer scene.Slicer
}

// Command is one reversible edit of a [scene.Scene]. Only the
// params of its Kind are used. The params never change after
// creation. The parts it produces are kept, deactivated rather than
// destroyed, so that executing again after an undo restores the
// same parts without slicing again. They are only destroyed by
// [Command.Cleanup].
type Command struct {
	Kind Kinds

	// ActionID identifies the edit on both sides of the connection.
	ActionID string

	Slice   SliceParams
	Destroy DestroyParams

	// originals are the parts replaced by this command.
	originals []*scene.Part

	// hulls are the upper and lower parts made from each original.
	hulls [][2]*scene.Part

	executed bool
	applied  bool
	cleaned  bool
}

// NewActionID returns a new unique action identifier.
func NewActionID() string {
	return uuid.NewString()
}

// NewSlice returns a new slice command.
func NewSlice(actionID string, targets []string, plane math32.Plane, separation float32) *Command {
	return &Command{Kind: Slice, ActionID: actionID,
		Slice: SliceParams{Targets: targets, Plane: plane, Separation: separation}}
}

// NewDestroy returns a new destroy command.
func NewDestroy(actionID, target string) *Command {
	return &Command{Kind: Destroy, ActionID: actionID, Destroy: DestroyParams{Target: target}}
}

func (c *Command) String() string {
	switch c.Kind {
	case Slice:
		return fmt.Sprintf("Slice[%s]%v", c.ActionID, c.Slice.Targets)
	case Destroy:
		return fmt.Sprintf("Destroy[%s]%s", c.ActionID, c.Destroy.Target)
	}
	return c.Kind.String()
}

// IsApplied returns whether the command is currently in effect.
func (c *Command) IsApplied() bool {
	return c.applied
}

// IsCleaned returns whether [Command.Cleanup] has run.
func (c *Command) IsCleaned() bool {
	return c.cleaned
}

// HullCount returns the number of hull parts the command has made.
func (c *Command) HullCount() int {
	return 2 * len(c.hulls)
}

// Hulls returns the hull parts the command has made, upper then
// lower for each original.
func (c *Command) Hulls() []*scene.Part {
	var hs []*scene.Part
	for _, h := range c.hulls {
		hs = append(hs, h[0], h[1])
	}
	return hs
}

// Execute applies the command. The first time, it makes its parts.
// Later times (redo), it reuses the parts it made. It returns
// [ErrNoEffect] if nothing could be applied the first time.
func (c *Command) Execute(env Env) error {
	if c.applied {
		return nil
	}
	if c.cleaned {
		return fmt.Errorf("command %v: execute after cleanup", c)
	}
	if !c.executed {
		var err error
		switch c.Kind {
		case Slice:
			err = c.firstSlice(env)
		case Destroy:
			err = c.firstDestroy(env)
		}
		if err != nil {
			return err
		}
		c.executed = true
		c.applied = true
		return nil
	}
	sc := env.Scene
	switch c.Kind {
	case Slice:
		for i, orig := range c.originals {
			shown := false
			for _, h := range c.hulls[i] {
				if sc.SetActive(h, true) {
					shown = true
					sc.Animator.Separate(h, orig.Offset, h.Offset, sc.Config.SeparationDuration)
				}
			}
			// hulls destroyed elsewhere leave the original in place
			if shown {
				sc.SetActive(orig, false)
			}
		}
	case Destroy:
		for _, orig := range c.originals {
			sc.SetActive(orig, false)
		}
	}
	c.applied = true
	return nil
}

func (c *Command) firstSlice(env Env) error {
	sc := env.Scene
	p := &c.Slice
	if !p.Plane.IsValid() {
		return fmt.Errorf("command %v: invalid plane: %w", c, ErrNoEffect)
	}
	n := p.Plane.Normal.Normal()
	for _, name := range p.Targets {
		orig, ok := sc.Part(name)
		if !ok || !orig.IsActive() {
			slog.Warn("command: slice target not found or inactive", "action", c.ActionID, "target", name)
			continue
		}
		un, ln := scene.HullName(name, scene.Upper), scene.HullName(name, scene.Lower)
		if sc.Has(un) || sc.Has(ln) {
			slog.Warn("command: slice hull name collision", "action", c.ActionID, "target", name)
			continue
		}
		um, lm, ok := env.Slicer.Slice(orig, p.Plane)
		if !ok {
			slog.Debug("command: plane does not cut target", "action", c.ActionID, "target", name)
			continue
		}
		d := n.MulScalar(p.Separation / 2)
		upper := scene.NewPart(un, name, um, orig.Offset.Add(d))
		lower := scene.NewPart(ln, name, lm, orig.Offset.Sub(d))
		if errors.Log(sc.Add(upper)) != nil {
			continue
		}
		if errors.Log(sc.Add(lower)) != nil {
			sc.Destroy(upper)
			continue
		}
		sc.SetActive(orig, false)
		sc.Animator.StopShake(orig)
		sc.Animator.Separate(upper, orig.Offset, upper.Offset, sc.Config.SeparationDuration)
		sc.Animator.Separate(lower, orig.Offset, lower.Offset, sc.Config.SeparationDuration)
		c.originals = append(c.originals, orig)
		c.hulls = append(c.hulls, [2]*scene.Part{upper, lower})
	}
	if len(c.originals) == 0 {
		return fmt.Errorf("command %v: %w", c, ErrNoEffect)
	}
	return nil
}

func (c *Command) firstDestroy(env Env) error {
	sc := env.Scene
	orig, ok := sc.Part(c.Destroy.Target)
	if !ok || !orig.IsActive() {
		return fmt.Errorf("command %v: target not found or inactive: %w", c, ErrNoEffect)
	}
	sc.SetActive(orig, false)
	sc.Animator.StopShake(orig)
	c.originals = []*scene.Part{orig}
	return nil
}

// Undo reverses the command: hulls are deactivated and the
// originals reactivated. Parts destroyed by other means are skipped.
func (c *Command) Undo(env Env) {
	if !c.applied {
		return
	}
	sc := env.Scene
	for i, orig := range c.originals {
		if c.Kind == Slice {
			for _, h := range c.hulls[i] {
				sc.Animator.StopPart(h)
				sc.SetActive(h, false)
			}
		}
		sc.SetActive(orig, true)
	}
	c.applied = false
}

// Cleanup permanently destroys the parts the command made. It must
// only be called once the command can no longer be redone or undone.
// Calling it again does nothing.
func (c *Command) Cleanup(env Env) {
	if c.cleaned {
		return
	}
	c.cleaned = true
	if c.Kind != Slice {
		return
	}
	for _, h := range c.hulls {
		env.Scene.Destroy(h[0])
		env.Scene.Destroy(h[1])
	}
	slog.Debug("command: cleanup", "action", c.ActionID, "hulls", c.HullCount())
}
