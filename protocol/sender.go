// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"cogentcore.org/wallscope/command"
)

// TextWriter writes one text message.
type TextWriter interface {
	WriteText(text string) error
}

// Send encodes the message and writes it.
func Send(w TextWriter, name Names, payload any) error {
	text, err := Encode(name, payload)
	if err != nil {
		return err
	}
	return w.WriteText(text)
}

// Sender sends history transitions as messages. It is the
// [command.Sender] of the client history.
type Sender struct {
	W TextWriter
}

var _ command.Sender = (*Sender)(nil)

func (s *Sender) SendExecute(c *command.Command) error {
	name, pl := FromCommand(c)
	return Send(s.W, name, pl)
}

func (s *Sender) SendUndo(actionID string) error {
	return Send(s.W, UndoAction, &History{ActionID: actionID})
}

func (s *Sender) SendRedo(actionID string) error {
	return Send(s.W, RedoAction, &History{ActionID: actionID})
}
