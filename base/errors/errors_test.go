// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("boom")
	assert.Equal(t, err, Log(err))
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 4, Log1(4, err))
	assert.Equal(t, "x", Ignore1("x", err))
	assert.Panics(t, func() { Must(err) })
	assert.True(t, Is(Join(err, New("other")), err))
}
