// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"time"

	"cogentcore.org/wallscope/math32"
)

// AnimationKinds are the kinds of part animations.
type AnimationKinds int32

const (
	// Separate moves a part from From to To over Duration.
	Separate AnimationKinds = iota

	// Shake jitters a part until stopped.
	Shake
)

func (k AnimationKinds) String() string {
	if k == Separate {
		return "Separate"
	}
	return "Shake"
}

// Animation is one running animation of one part.
type Animation struct {
	Kind AnimationKinds

	Part *Part

	From, To math32.Vector3

	// Duration of a Separate animation.
	Duration time.Duration

	Elapsed time.Duration

	done bool
}

// IsDone returns whether the animation has finished or been stopped.
func (a *Animation) IsDone() bool {
	return a.done
}

// step advances the animation by dt. A destroyed part ends it silently.
func (a *Animation) step(dt time.Duration, cfg *Config) {
	if a.done {
		return
	}
	if a.Part == nil || a.Part.destroyed {
		a.done = true
		return
	}
	a.Elapsed += dt
	switch a.Kind {
	case Separate:
		if a.Elapsed >= a.Duration {
			a.Part.Pos = a.To
			a.done = true
			return
		}
		t := float32(a.Elapsed) / float32(a.Duration)
		a.Part.Pos = a.From.Lerp(a.To, t)
	case Shake:
		s := float32(a.Elapsed.Seconds()) * cfg.ShakeFrequency
		amp := cfg.ShakeAmplitude
		a.Part.Shake = math32.Vec3(math32.Sin(s)*amp, math32.Cos(1.3*s)*amp, 0)
	}
}

// finish ends the animation, leaving the part at rest.
func (a *Animation) finish() {
	if a.done {
		return
	}
	a.done = true
	if a.Part == nil || a.Part.destroyed {
		return
	}
	switch a.Kind {
	case Separate:
		a.Part.Pos = a.To
	case Shake:
		a.Part.Shake = math32.Vector3{}
	}
}

// Animator is the list of running animations, advanced once per
// frame by [Animator.Update].
type Animator struct {
	Config *Config

	tasks []*Animation
}

// Separate starts moving the part from one position to another,
// replacing any separation already running on it.
func (an *Animator) Separate(p *Part, from, to math32.Vector3, dur time.Duration) *Animation {
	an.stop(p, Separate)
	p.Pos = from
	a := &Animation{Kind: Separate, Part: p, From: from, To: to, Duration: dur}
	if dur <= 0 {
		a.finish()
		return a
	}
	an.tasks = append(an.tasks, a)
	return a
}

// Shake starts the hold feedback on the part, if not already running.
func (an *Animator) Shake(p *Part) *Animation {
	for _, a := range an.tasks {
		if a.Part == p && a.Kind == Shake && !a.done {
			return a
		}
	}
	a := &Animation{Kind: Shake, Part: p}
	an.tasks = append(an.tasks, a)
	return a
}

// StopShake stops the hold feedback on the part.
func (an *Animator) StopShake(p *Part) {
	an.stop(p, Shake)
}

// StopPart stops all animations of the part.
func (an *Animator) StopPart(p *Part) {
	an.stop(p, Separate)
	an.stop(p, Shake)
}

func (an *Animator) stop(p *Part, kind AnimationKinds) {
	for _, a := range an.tasks {
		if a.Part == p && a.Kind == kind {
			a.finish()
		}
	}
	an.prune()
}

// Stop finishes all animations.
func (an *Animator) Stop() {
	for _, a := range an.tasks {
		a.finish()
	}
	an.tasks = nil
}

// Len returns the number of running animations.
func (an *Animator) Len() int {
	return len(an.tasks)
}

// Update advances all animations by dt, removing the finished ones.
func (an *Animator) Update(dt time.Duration) {
	cfg := an.Config
	if cfg == nil {
		cfg = &Config{}
		cfg.Defaults()
		an.Config = cfg
	}
	for _, a := range an.tasks {
		a.step(dt, cfg)
	}
	an.prune()
}

func (an *Animator) prune() {
	n := 0
	for _, a := range an.tasks {
		if !a.done {
			an.tasks[n] = a
			n++
		}
	}
	clear(an.tasks[n:])
	an.tasks = an.tasks[:n]
}
