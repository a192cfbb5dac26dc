// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewport provides the camera rig that orbit, pan, zoom
// and roll intents are applied to. It has no knowledge of
// networking or the scene contents.
package viewport

import (
	"log/slog"
	"time"

	"cogentcore.org/wallscope/math32"
)

// Rig is an orbiting camera rig. The camera looks at Target from
// Distance away, along the negative Z axis of its orientation,
// which is the yaw around Y, then pitch around X, then roll around
// the view axis. It must be created with [NewRig].
type Rig struct {

	// Config has the speeds and limits.
	Config Config

	// Target is the point the camera looks at, moved by panning.
	Target math32.Vector3

	// Yaw is the rotation around the world Y axis in degrees.
	Yaw float32

	// Pitch is the rotation around the camera X axis in degrees,
	// clamped to [Config.MinPitch, Config.MaxPitch].
	Pitch float32

	// Roll is the rotation around the view axis in degrees.
	Roll float32

	// Distance is the camera distance from Target.
	Distance float32

	// ModelSize is the bounding size of the active model parts,
	// which extends the maximum distance.
	ModelSize math32.Vector3

	// preset rotation
	presetActive  bool
	presetFrom    float32
	presetTo      float32
	presetElapsed time.Duration

	// continuous rotation direction, 0 if stopped
	continuous int
}

// NewRig returns a new rig in its reset pose.
func NewRig(cfg Config) *Rig {
	r := &Rig{Config: cfg}
	r.Reset()
	return r
}

// Reset returns the rig to its initial pose and stops all rotation.
func (r *Rig) Reset() {
	r.Target = math32.Vector3{}
	r.Yaw, r.Pitch, r.Roll = 0, 0, 0
	r.Distance = r.Config.Distance
	r.presetActive = false
	r.continuous = 0
	r.clampDistance()
}

// ProcessOrbit orbits the camera around the target by the given
// pixel delta: X changes the yaw, Y the pitch.
// It stops any continuous rotation.
func (r *Rig) ProcessOrbit(delta math32.Vector2) {
	r.continuous = 0
	r.Yaw -= delta.X * r.Config.OrbitSpeed
	r.Pitch = math32.Clamp(r.Pitch-delta.Y*r.Config.OrbitSpeed, r.Config.MinPitch, r.Config.MaxPitch)
}

// ProcessPan moves the target in the view plane by the given pixel
// delta, scaled by the distance so the model follows the fingers.
func (r *Rig) ProcessPan(delta math32.Vector2) {
	q := r.Orientation()
	s := r.Config.PanSpeed * r.Distance
	right := math32.Vec3(1, 0, 0).MulQuat(q)
	up := math32.Vec3(0, 1, 0).MulQuat(q)
	r.Target = r.Target.Sub(right.MulScalar(delta.X * s)).Add(up.MulScalar(delta.Y * s))
}

// ProcessZoom moves the camera toward the target for positive
// amounts and away for negative ones, within the distance limits.
func (r *Rig) ProcessZoom(amount float32) {
	r.Distance *= 1 - amount*r.Config.ZoomSpeed
	r.clampDistance()
}

// ProcessRoll rolls the camera by the given angle in radians.
func (r *Rig) ProcessRoll(amount float32) {
	r.Roll = math32.RadToDeg(math32.WrapAngle(math32.DegToRad(r.Roll) + amount*r.Config.RollSpeed))
}

// TriggerPresetRotation starts an animated yaw rotation of one
// preset step in the direction of sign. A rotation that is already
// running is continued from its destination.
func (r *Rig) TriggerPresetRotation(sign int) {
	if sign == 0 {
		return
	}
	r.continuous = 0
	from := r.Yaw
	if r.presetActive {
		from = r.presetTo
		r.Yaw = r.presetTo
	}
	r.presetActive = true
	r.presetFrom = from
	r.presetTo = from + float32(sign)*r.Config.PresetStep
	r.presetElapsed = 0
	if r.Config.PresetDuration <= 0 {
		r.finishPreset()
	}
}

// StartContinuousRotation starts rotating the yaw continuously in
// the direction of sign, until [Rig.StopContinuousRotation] or an orbit.
func (r *Rig) StartContinuousRotation(sign int) {
	if r.presetActive {
		r.finishPreset()
	}
	r.continuous = sign
	slog.Debug("viewport: continuous rotation", "sign", sign)
}

// StopContinuousRotation stops continuous rotation.
func (r *Rig) StopContinuousRotation() {
	r.continuous = 0
}

// IsRotating returns true if a preset or continuous rotation is running.
func (r *Rig) IsRotating() bool {
	return r.presetActive || r.continuous != 0
}

// Update advances the preset and continuous rotations by dt.
func (r *Rig) Update(dt time.Duration) {
	if r.presetActive {
		r.presetElapsed += dt
		if r.presetElapsed >= r.Config.PresetDuration {
			r.finishPreset()
		} else {
			t := float32(r.presetElapsed) / float32(r.Config.PresetDuration)
			t = t * t * (3 - 2*t)
			r.Yaw = math32.Lerp(r.presetFrom, r.presetTo, t)
		}
	}
	if r.continuous != 0 {
		r.Yaw += float32(r.continuous) * r.Config.ContinuousSpeed * float32(dt.Seconds())
	}
}

func (r *Rig) finishPreset() {
	r.Yaw = r.presetTo
	r.presetActive = false
}

// SetModelSize sets the size of the model, which extends the maximum
// distance, and clamps the current distance to the new limits.
func (r *Rig) SetModelSize(size math32.Vector3) {
	r.ModelSize = size
	r.clampDistance()
}

// MaxDistance returns the current maximum distance.
func (r *Rig) MaxDistance() float32 {
	return math32.Max(r.Config.MaxDistance, r.ModelSize.Length()*r.Config.DistanceFactor)
}

func (r *Rig) clampDistance() {
	r.Distance = math32.Clamp(r.Distance, r.Config.MinDistance, r.MaxDistance())
}

// Orientation returns the camera orientation.
func (r *Rig) Orientation() math32.Quat {
	yaw := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(r.Yaw))
	pitch := math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.DegToRad(r.Pitch))
	roll := math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), math32.DegToRad(r.Roll))
	return yaw.Mul(pitch).Mul(roll)
}

// Eye returns the camera position.
func (r *Rig) Eye() math32.Vector3 {
	return r.Target.Add(math32.Vec3(0, 0, r.Distance).MulQuat(r.Orientation()))
}

// Ray returns the ray from the camera through the given screen
// position, for a screen of the given size in pixels.
func (r *Rig) Ray(screen, size math32.Vector2) math32.Ray {
	q := r.Orientation()
	eye := r.Eye()
	if size.X <= 0 || size.Y <= 0 {
		return math32.Ray{Origin: eye, Dir: math32.Vec3(0, 0, -1).MulQuat(q)}
	}
	x := 2*screen.X/size.X - 1
	y := 1 - 2*screen.Y/size.Y
	th := math32.Tan(math32.DegToRad(r.Config.FOV / 2))
	dir := math32.Vec3(x*th*size.X/size.Y, y*th, -1).Normal().MulQuat(q)
	return math32.Ray{Origin: eye, Dir: dir}
}
