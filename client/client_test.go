// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"cogentcore.org/wallscope/config"
	"cogentcore.org/wallscope/events"
	"cogentcore.org/wallscope/math32"
	"cogentcore.org/wallscope/protocol"
	"cogentcore.org/wallscope/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	texts []string
}

func (r *recorder) WriteText(text string) error {
	r.texts = append(r.texts, text)
	return nil
}

// names returns the names of the recorded messages.
func (r *recorder) names() []protocol.Names {
	ns := make([]protocol.Names, len(r.texts))
	for i, t := range r.texts {
		n, _, _ := strings.Cut(t, ":")
		ns[i] = protocol.Names(n)
	}
	return ns
}

// last returns the last recorded message with the given name.
func (r *recorder) last(t *testing.T, name protocol.Names) *protocol.Message {
	for i := len(r.texts) - 1; i >= 0; i-- {
		if strings.HasPrefix(r.texts[i], string(name)+":") {
			msg, err := protocol.Decode(r.texts[i])
			require.NoError(t, err)
			return msg
		}
	}
	t.Fatalf("no %s message", name)
	return nil
}

type harness struct {
	cl  *Client
	rec *recorder
	now time.Time
}

func newHarness(t *testing.T) *harness {
	cl, err := New(config.Default(), scene.NewBoxLoader())
	require.NoError(t, err)
	h := &harness{cl: cl, rec: &recorder{}, now: time.Unix(100, 0)}
	cl.Conn = h.rec
	return h
}

// run steps frames of 16ms for the given duration.
func (h *harness) run(d time.Duration) {
	for t := time.Duration(0); t < d; t += 16 * time.Millisecond {
		h.now = h.now.Add(16 * time.Millisecond)
		h.cl.Step(h.now)
	}
}

func (h *harness) touch(typ events.Types, x, y float32) {
	h.cl.Sampler.Touch(typ, 1, math32.Vec2(x, y))
	h.run(16 * time.Millisecond)
}

func TestDoubleTapPreset(t *testing.T) {
	h := newHarness(t)
	h.touch(events.TouchStart, 1500, 500)
	h.touch(events.TouchEnd, 1500, 500)
	h.touch(events.TouchStart, 300, 500)
	h.touch(events.TouchEnd, 300, 500)
	h.run(time.Second)
	assert.Equal(t, float32(-90), h.cl.Rig.Yaw)
	assert.Empty(t, h.rec.texts)
}

func TestCutSlicesActiveParts(t *testing.T) {
	h := newHarness(t)
	h.touch(events.TouchStart, 100, 540)
	h.run(600 * time.Millisecond)
	h.touch(events.TouchMove, 400, 540)
	h.touch(events.TouchMove, 1800, 540)
	h.touch(events.TouchEnd, 1800, 540)

	ns := h.rec.names()
	require.NotEmpty(t, ns)
	assert.Equal(t, protocol.UpdateCutLine, ns[0])
	assert.Contains(t, ns, protocol.UpdateVisualCropPlane)
	assert.Equal(t, []protocol.Names{protocol.HideCutLine, protocol.ExecuteSliceAction}, ns[len(ns)-2:])
	assert.Equal(t, []string{"RootModel_U", "RootModel_L"}, h.cl.Scene.ActiveNames())

	sl := h.rec.last(t, protocol.ExecuteSliceAction).Payload.(*protocol.Slice)
	assert.Equal(t, []string{scene.RootName}, sl.Targets)
	assert.InDelta(t, 1, math32.Abs(sl.PlaneNormal[1]), 1e-4)

	h.cl.Undo()
	assert.Equal(t, []string{scene.RootName}, h.cl.Scene.ActiveNames())
	un := h.rec.last(t, protocol.UndoAction).Payload.(*protocol.History)
	assert.Equal(t, sl.ActionID, un.ActionID)
	h.cl.Redo()
	assert.Equal(t, protocol.RedoAction, h.rec.names()[len(h.rec.texts)-1])
	assert.Equal(t, []string{"RootModel_U", "RootModel_L"}, h.cl.Scene.ActiveNames())
}

func TestHoldDestroys(t *testing.T) {
	h := newHarness(t)
	h.touch(events.TouchStart, 960, 540)
	h.run(600 * time.Millisecond)
	assert.False(t, h.cl.Scene.Root().Shake.IsNil())
	h.touch(events.TouchEnd, 960, 540)
	assert.True(t, h.cl.Scene.Root().Shake.IsNil())
	assert.Empty(t, h.cl.Scene.ActiveNames())
	assert.Equal(t, []protocol.Names{protocol.ExecuteDestroyAction}, h.rec.names())
	d := h.rec.last(t, protocol.ExecuteDestroyAction).Payload.(*protocol.Destroy)
	assert.Equal(t, scene.RootName, d.Target)

	h.cl.ResetHistory()
	assert.Equal(t, []string{scene.RootName}, h.cl.Scene.ActiveNames())
	assert.False(t, h.cl.History.CanUndo())
	assert.Equal(t, protocol.ResetAll, h.rec.names()[len(h.rec.texts)-1])
}

func TestModelSizeAndLoad(t *testing.T) {
	h := newHarness(t)
	h.cl.Receive(`MODEL_SIZE_UPDATE:{"size":[10,0,0]}`)
	h.cl.Receive(`GARBAGE`)
	h.run(16 * time.Millisecond)
	assert.Equal(t, math32.Vec3(10, 0, 0), h.cl.ModelSize)
	assert.Equal(t, float32(40), h.cl.Rig.MaxDistance())

	require.NoError(t, h.cl.LoadModel("heart"))
	assert.Equal(t, "heart", h.cl.Scene.Model)
	assert.Equal(t, []protocol.Names{protocol.LoadModel, protocol.SetInitialModelTransform}, h.rec.names())
	assert.Equal(t, "heart", h.rec.last(t, protocol.LoadModel).Payload.(*protocol.Model).Model)
}

const cutTrace = `
tail: 100ms
events:
  - {at: 0s, type: TouchStart, seq: 1, x: 100, y: 540}
  - {at: 700ms, type: TouchMove, seq: 1, x: 400, y: 540}
  - {at: 750ms, type: TouchMove, seq: 1, x: 1800, y: 540}
  - {at: 800ms, type: TouchEnd, seq: 1, x: 1800, y: 540}
  - {at: 900ms, action: undo}
  - {at: 950ms, action: redo}
`

func TestReplay(t *testing.T) {
	h := newHarness(t)
	tr, err := ReadTrace(strings.NewReader(cutTrace))
	require.NoError(t, err)
	require.Len(t, tr.Events, 6)
	assert.Equal(t, events.TouchMove, tr.Events[1].Type)

	end, err := h.cl.Replay(context.Background(), tr, h.now)
	require.NoError(t, err)
	assert.True(t, end.After(h.now.Add(time.Second)))
	assert.Equal(t, []string{"RootModel_U", "RootModel_L"}, h.cl.Scene.ActiveNames())
	ns := h.rec.names()
	assert.Equal(t, []protocol.Names{protocol.ExecuteSliceAction, protocol.UndoAction, protocol.RedoAction}, ns[len(ns)-3:])

	_, err = ReadTrace(strings.NewReader("events:\n  - {at: 1s}\n  - {at: 0s}\n"))
	assert.Error(t, err)
	_, err = ReadTrace(strings.NewReader("events:\n  - {at: 1s, type: Swipe}\n"))
	assert.Error(t, err)
}
