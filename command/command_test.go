// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/math32"
	"cogentcore.org/wallscope/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	kind string
	id   string
}

type recordSender struct {
	msgs []sent
}

func (rs *recordSender) SendExecute(c *Command) error {
	rs.msgs = append(rs.msgs, sent{"execute", c.ActionID})
	return nil
}

func (rs *recordSender) SendUndo(id string) error {
	rs.msgs = append(rs.msgs, sent{"undo", id})
	return nil
}

func (rs *recordSender) SendRedo(id string) error {
	rs.msgs = append(rs.msgs, sent{"redo", id})
	return nil
}

// countSlicer counts the slicer calls.
type countSlicer struct {
	calls int
}

func (cs *countSlicer) Slice(p *scene.Part, plane math32.Plane) (*scene.Mesh, *scene.Mesh, bool) {
	cs.calls++
	return scene.ConvexSlicer{}.Slice(p, plane)
}

func newTestEnv() (Env, *countSlicer) {
	var cfg scene.Config
	cfg.Defaults()
	sl := &countSlicer{}
	return Env{Scene: scene.New(cfg, "cube", scene.NewBoxMesh(math32.Vector3Scalar(2))), Slicer: sl}, sl
}

var (
	bisect = math32.NewPlane(math32.Vector3{}, math32.Vec3(0, 1, 0))
	miss   = math32.NewPlane(math32.Vec3(0, 10, 0), math32.Vec3(0, 1, 0))
)

func TestSliceAndUndo(t *testing.T) {
	env, _ := newTestEnv()
	sc := env.Scene
	c := NewSlice("a1", []string{scene.RootName}, bisect, 0.2)
	require.NoError(t, c.Execute(env))
	assert.Equal(t, []string{"RootModel_U", "RootModel_L"}, sc.ActiveNames())
	assert.False(t, sc.Root().IsActive())
	u, _ := sc.Part("RootModel_U")
	l, _ := sc.Part("RootModel_L")
	assert.Equal(t, scene.RootName, u.Parent)
	assert.InDelta(t, 0.1, u.Offset.Y, 1e-6)
	assert.InDelta(t, -0.1, l.Offset.Y, 1e-6)

	c.Undo(env)
	assert.Equal(t, []string{scene.RootName}, sc.ActiveNames())
	assert.False(t, u.IsDestroyed())
	assert.False(t, l.IsDestroyed())
	assert.Equal(t, 3, sc.Len())
}

func TestInverseLaw(t *testing.T) {
	env, _ := newTestEnv()
	sc := env.Scene
	require.NoError(t, sc.Add(scene.NewPart("P1", scene.RootName, scene.NewBoxMesh(math32.Vector3Scalar(1)), math32.Vec3(4, 0, 0))))
	cmds := []*Command{
		NewSlice("s", []string{scene.RootName, "P1"}, bisect, 0.2),
		NewDestroy("d", "P1"),
	}
	for _, c := range cmds {
		before := sc.ActiveNames()
		require.NoError(t, c.Execute(env))
		assert.NotEqual(t, before, sc.ActiveNames())
		c.Undo(env)
		assert.Equal(t, before, sc.ActiveNames(), c.String())
	}
}

func TestRedoIdempotence(t *testing.T) {
	env, sl := newTestEnv()
	sc := env.Scene
	c := NewSlice("a1", []string{scene.RootName}, bisect, 0.2)
	require.NoError(t, c.Execute(env))
	once := sc.ActiveNames()
	hulls := c.Hulls()
	c.Undo(env)
	require.NoError(t, c.Execute(env))
	assert.Equal(t, once, sc.ActiveNames())
	assert.Equal(t, 2, c.HullCount())
	assert.Equal(t, hulls, c.Hulls())
	assert.Equal(t, 1, sl.calls)
	assert.Equal(t, 3, sc.Len())
}

func TestSlicePartialFailure(t *testing.T) {
	env, _ := newTestEnv()
	sc := env.Scene
	far := scene.NewPart("Far", scene.RootName, scene.NewBoxMesh(math32.Vector3Scalar(1)), math32.Vec3(0, 20, 0))
	require.NoError(t, sc.Add(far))
	c := NewSlice("a1", []string{scene.RootName, "Far", "Missing"}, bisect, 0)
	require.NoError(t, c.Execute(env))
	assert.Equal(t, []string{"Far", "RootModel_U", "RootModel_L"}, sc.ActiveNames())

	c = NewSlice("a2", []string{"Far"}, miss, 0)
	err := c.Execute(env)
	assert.True(t, errors.Is(err, ErrNoEffect))
	assert.Equal(t, 0, c.HullCount())
}

func TestSliceNameCollision(t *testing.T) {
	env, _ := newTestEnv()
	sc := env.Scene
	require.NoError(t, sc.Add(scene.NewPart("RootModel_L", "", nil, math32.Vector3{})))
	c := NewSlice("a1", []string{scene.RootName}, bisect, 0)
	assert.True(t, errors.Is(c.Execute(env), ErrNoEffect))
	assert.True(t, sc.Root().IsActive())
	assert.False(t, sc.Has("RootModel_U"))
}

func TestDestroy(t *testing.T) {
	env, _ := newTestEnv()
	sc := env.Scene
	c := NewDestroy("d1", scene.RootName)
	require.NoError(t, c.Execute(env))
	assert.Empty(t, sc.ActiveNames())
	c.Undo(env)
	assert.Equal(t, []string{scene.RootName}, sc.ActiveNames())
	c.Cleanup(env)
	assert.True(t, c.IsCleaned())
	assert.Equal(t, 1, sc.Len())

	assert.True(t, errors.Is(NewDestroy("d2", "nope").Execute(env), ErrNoEffect))
}

func TestStaleReference(t *testing.T) {
	env, _ := newTestEnv()
	sc := env.Scene
	c := NewSlice("a1", []string{scene.RootName}, bisect, 0)
	require.NoError(t, c.Execute(env))
	u, _ := sc.Part("RootModel_U")
	sc.Destroy(u)
	c.Undo(env)
	assert.Equal(t, []string{scene.RootName}, sc.ActiveNames())
	require.NoError(t, c.Execute(env))
	assert.Equal(t, []string{"RootModel_L"}, sc.ActiveNames())
	c.Cleanup(env)
	c.Cleanup(env)
	assert.Equal(t, 1, sc.Len())
}

func TestRedoWithDestroyedHulls(t *testing.T) {
	env, _ := newTestEnv()
	sc := env.Scene
	c := NewSlice("a1", []string{scene.RootName}, bisect, 0)
	require.NoError(t, c.Execute(env))
	c.Undo(env)
	for _, h := range c.Hulls() {
		sc.Destroy(h)
	}
	require.NoError(t, c.Execute(env))
	assert.Equal(t, []string{scene.RootName}, sc.ActiveNames())
}
