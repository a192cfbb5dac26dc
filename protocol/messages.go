// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"encoding/json"
	"fmt"

	"cogentcore.org/wallscope/math32"
	"cogentcore.org/wallscope/scene"
)

// Names are the names of the wire messages.
type Names string

const (
	// client to server
	SetInitialModelTransform Names = "SET_INITIAL_MODEL_TRANSFORM"
	LoadModel                Names = "LOAD_MODEL"
	UpdateVisualCropPlane    Names = "UPDATE_VISUAL_CROP_PLANE"
	ExecuteSliceAction       Names = "EXECUTE_SLICE_ACTION"
	ExecuteDestroyAction     Names = "EXECUTE_DESTROY_ACTION"
	UndoAction               Names = "UNDO_ACTION"
	RedoAction               Names = "REDO_ACTION"
	ResetAll                 Names = "RESET_ALL"
	UpdateCutLine            Names = "UPDATE_CUT_LINE"
	HideCutLine              Names = "HIDE_CUT_LINE"

	// server to client
	ModelSizeUpdate Names = "MODEL_SIZE_UPDATE"
)

// newPayload returns a new payload for the message name, nil for
// messages without one, and false for an unknown name.
func newPayload(name Names) (any, bool) {
	switch name {
	case SetInitialModelTransform:
		return &Transform{}, true
	case LoadModel:
		return &Model{}, true
	case UpdateVisualCropPlane:
		return &CropPlane{}, true
	case ExecuteSliceAction:
		return &Slice{}, true
	case ExecuteDestroyAction:
		return &Destroy{}, true
	case UndoAction, RedoAction:
		return &History{}, true
	case UpdateCutLine:
		return &CutLine{}, true
	case ModelSizeUpdate:
		return &ModelSize{}, true
	case ResetAll, HideCutLine:
		return nil, true
	}
	return nil, false
}

// optionalPayload returns whether the payload of the message may be empty.
func optionalPayload(name Names) bool {
	switch name {
	case UndoAction, RedoAction, ResetAll, HideCutLine:
		return true
	}
	return false
}

// Vector3 is a vector on the wire, as [x, y, z].
type Vector3 [3]float32

// V3 returns the wire form of the vector.
func V3(v math32.Vector3) Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// Vector3 returns the vector.
func (v Vector3) Vector3() math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

// UnmarshalJSON requires exactly three numbers.
func (v *Vector3) UnmarshalJSON(b []byte) error {
	var fs []float32
	if err := json.Unmarshal(b, &fs); err != nil {
		return err
	}
	if len(fs) != 3 {
		return fmt.Errorf("vector has %d components, want 3", len(fs))
	}
	copy(v[:], fs)
	return nil
}

// Transform is the payload of [SetInitialModelTransform].
type Transform struct {
	Position Vector3    `json:"position"`
	Rotation [4]float32 `json:"rotation"`
	Scale    Vector3    `json:"scale"`
}

// NewTransform returns the wire form of the transform.
func NewTransform(tr scene.Transform) *Transform {
	q := tr.Rotation
	return &Transform{Position: V3(tr.Position), Rotation: [4]float32{q.X, q.Y, q.Z, q.W}, Scale: V3(tr.Scale)}
}

// Transform returns the scene transform.
func (t *Transform) Transform() scene.Transform {
	r := t.Rotation
	return scene.Transform{Position: t.Position.Vector3(), Rotation: math32.NewQuat(r[0], r[1], r[2], r[3]), Scale: t.Scale.Vector3()}
}

// Model is the payload of [LoadModel].
type Model struct {
	Model string `json:"model" validate:"required"`
}

// CropPlane is the payload of [UpdateVisualCropPlane].
type CropPlane struct {
	Position Vector3 `json:"position"`
	Normal   Vector3 `json:"normal"`
	Scale    float32 `json:"scale" validate:"gte=0"`
}

// Slice is the payload of [ExecuteSliceAction]. Targets are the
// names of the original parts, never of the hulls. The plane and the
// separation must be present.
type Slice struct {
	ActionID    string   `json:"actionId" validate:"required"`
	PlanePoint  *Vector3 `json:"planePoint" validate:"required"`
	PlaneNormal *Vector3 `json:"planeNormal" validate:"required"`
	Separation  *float32 `json:"separation" validate:"required,gte=0"`
	Targets     []string `json:"targets" validate:"required,min=1,dive,required"`
}

// Plane returns the cut plane.
func (s *Slice) Plane() math32.Plane {
	return math32.NewPlane(s.PlanePoint.Vector3(), s.PlaneNormal.Vector3())
}

// NewSlice returns the payload of a slice of the targets.
func NewSlice(actionID string, targets []string, plane math32.Plane, separation float32) *Slice {
	pt, n := V3(plane.Point), V3(plane.Normal)
	return &Slice{ActionID: actionID, PlanePoint: &pt, PlaneNormal: &n, Separation: &separation, Targets: targets}
}

// Validate checks that the plane normal is not zero.
func (s *Slice) Validate() error {
	if s.PlanePoint == nil || s.PlaneNormal == nil || s.Separation == nil {
		return fmt.Errorf("missing plane or separation")
	}
	if s.PlaneNormal.Vector3().LengthSquared() == 0 {
		return fmt.Errorf("zero plane normal")
	}
	return nil
}

// Destroy is the payload of [ExecuteDestroyAction].
type Destroy struct {
	ActionID string `json:"actionId" validate:"required"`
	Target   string `json:"target" validate:"required"`
}

// History is the payload of [UndoAction] and [RedoAction].
// The ActionID is informational.
type History struct {
	ActionID string `json:"actionId,omitempty"`
}

// CutLine is the payload of [UpdateCutLine].
type CutLine struct {
	Start Vector3 `json:"start"`
	End   Vector3 `json:"end"`
}

// ModelSize is the payload of [ModelSizeUpdate].
type ModelSize struct {
	Size Vector3 `json:"size"`
}
