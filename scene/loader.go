// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/wallscope/math32"
)

// ModelLoader provides the root mesh of a model by identifier.
type ModelLoader interface {
	LoadModel(model string) (*Mesh, error)
}

// BoxLoader loads every model as a box. Models named in Sizes get
// that size, and the rest get Default, or an error if Default is zero.
type BoxLoader struct {
	Sizes   map[string]math32.Vector3
	Default math32.Vector3
}

// NewBoxLoader returns a loader of unit boxes.
func NewBoxLoader() *BoxLoader {
	return &BoxLoader{Default: math32.Vector3Scalar(1)}
}

func (bl *BoxLoader) LoadModel(model string) (*Mesh, error) {
	size, ok := bl.Sizes[model]
	if !ok {
		size = bl.Default
	}
	if size.IsNil() {
		return nil, fmt.Errorf("scene: unknown model %q", model)
	}
	return NewBoxMesh(size), nil
}
