// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"testing"

	"cogentcore.org/wallscope/base/errors"
	"cogentcore.org/wallscope/command"
	"cogentcore.org/wallscope/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textBuffer struct {
	texts []string
}

func (tb *textBuffer) WriteText(text string) error {
	tb.texts = append(tb.texts, text)
	return nil
}

func TestSliceMessage(t *testing.T) {
	plane := math32.NewPlane(math32.Vec3(0, 1, 0), math32.Vec3(0, 2, 0))
	c := command.NewSlice("a1", []string{"RootModel"}, plane, 0.25)
	var tb textBuffer
	s := &Sender{W: &tb}
	require.NoError(t, s.SendExecute(c))
	require.Len(t, tb.texts, 1)
	assert.Equal(t, `EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0,1,0],"planeNormal":[0,1,0],"separation":0.25,"targets":["RootModel"]}`, tb.texts[0])

	msg, err := Decode(tb.texts[0])
	require.NoError(t, err)
	assert.Equal(t, ExecuteSliceAction, msg.Name)
	rc, err := ToCommand(msg)
	require.NoError(t, err)
	assert.Equal(t, command.Slice, rc.Kind)
	assert.Equal(t, "a1", rc.ActionID)
	assert.Equal(t, c.Slice, rc.Slice)
}

func TestHistoryMessages(t *testing.T) {
	var tb textBuffer
	s := &Sender{W: &tb}
	require.NoError(t, s.SendUndo("a1"))
	require.NoError(t, s.SendRedo(""))
	assert.Equal(t, []string{`UNDO_ACTION:{"actionId":"a1"}`, `REDO_ACTION:{}`}, tb.texts)

	for _, text := range []string{"UNDO_ACTION", "UNDO_ACTION:", "UNDO_ACTION:{}"} {
		msg, err := Decode(text)
		require.NoError(t, err, text)
		assert.Equal(t, UndoAction, msg.Name)
		assert.Equal(t, "", msg.Payload.(*History).ActionID)
	}
	msg, err := Decode(" RESET_ALL:\n")
	require.NoError(t, err)
	assert.Equal(t, ResetAll, msg.Name)
	assert.Nil(t, msg.Payload)

	text, err := Encode(HideCutLine, nil)
	require.NoError(t, err)
	assert.Equal(t, "HIDE_CUT_LINE:", text)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		text string
		err  error
	}{
		{"", ErrUnknownMessage},
		{"HELLO:{}", ErrUnknownMessage},
		{"EXECUTE_SLICE_ACTION", ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":["abc",0,0],"planeNormal":[0,1,0],"separation":0.1,"targets":["RootModel"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0,0,0],"planeNormal":[0,0,0],"separation":0.1,"targets":["RootModel"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0,0,0],"planeNormal":[0,1,0],"separation":0.1,"targets":[]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"","planePoint":[0,0,0],"planeNormal":[0,1,0],"separation":0.1,"targets":["a"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planeNormal":[1,0,0],"separation":0.1,"targets":["RootModel"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0,0,0],"separation":0.1,"targets":["RootModel"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0,0,0],"planeNormal":[1,0,0],"targets":["RootModel"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0],"planeNormal":[1],"separation":0.1,"targets":["RootModel"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0,0,0,0],"planeNormal":[1,0,0],"separation":0.1,"targets":["RootModel"]}`, ErrMalformed},
		{`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":null,"planeNormal":[1,0,0],"separation":0.1,"targets":["RootModel"]}`, ErrMalformed},
		{`UPDATE_CUT_LINE:{"start":[0,0],"end":[1,1,0]}`, ErrMalformed},
		{`EXECUTE_DESTROY_ACTION:{"actionId":"a1"}`, ErrMalformed},
		{`EXECUTE_DESTROY_ACTION:{"actionId":"a1","target":"P1","extra":1}`, ErrMalformed},
		{`LOAD_MODEL:not json`, ErrMalformed},
		{`UPDATE_VISUAL_CROP_PLANE:{"position":[0,0,0],"normal":[0,1,0],"scale":-1}`, ErrMalformed},
	}
	for _, tt := range tests {
		msg, err := Decode(tt.text)
		assert.Nil(t, msg, tt.text)
		assert.True(t, errors.Is(err, tt.err), "%q: %v", tt.text, err)
	}
}

func TestDecodeZeroSeparation(t *testing.T) {
	msg, err := Decode(`EXECUTE_SLICE_ACTION:{"actionId":"a1","planePoint":[0,0,0],"planeNormal":[1,0,0],"separation":0,"targets":["RootModel"]}`)
	require.NoError(t, err)
	assert.Equal(t, float32(0), *msg.Payload.(*Slice).Separation)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode("NOPE", nil)
	assert.True(t, errors.Is(err, ErrUnknownMessage))
	_, err = Encode(LoadModel, nil)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestDecodeOther(t *testing.T) {
	msg, err := Decode(`SET_INITIAL_MODEL_TRANSFORM:{"position":[1,2,3],"rotation":[0,0,0,1],"scale":[2,2,2]}`)
	require.NoError(t, err)
	tr := msg.Payload.(*Transform).Transform()
	assert.Equal(t, math32.Vec3(1, 2, 3), tr.Position)
	assert.Equal(t, float32(1), tr.Rotation.W)
	assert.Equal(t, math32.Vec3(2, 2, 2), tr.Scale)

	msg, err = Decode(`MODEL_SIZE_UPDATE:{"size":[1,0.5,2]}`)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(1, 0.5, 2), msg.Payload.(*ModelSize).Size.Vector3())

	msg, err = Decode(`EXECUTE_DESTROY_ACTION:{"actionId":"d1","target":"P1"}`)
	require.NoError(t, err)
	c, err := ToCommand(msg)
	require.NoError(t, err)
	assert.Equal(t, command.Destroy, c.Kind)
	assert.Equal(t, "P1", c.Destroy.Target)

	msg, err = Decode(`LOAD_MODEL:{"model":"heart"}`)
	require.NoError(t, err)
	_, err = ToCommand(msg)
	assert.Error(t, err)
}
