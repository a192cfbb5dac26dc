// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"log/slog"

	"cogentcore.org/wallscope/base/errors"
)

// Sender sends history transitions to the other side of the
// connection. The client history has one; the server history does not.
type Sender interface {

	// SendExecute sends the first successful execution of a command.
	SendExecute(c *Command) error

	// SendUndo sends an undo of the given action.
	SendUndo(actionID string) error

	// SendRedo sends a redo of the given action.
	SendRedo(actionID string) error
}

// History is the undo / redo manager of one side. There is no
// branching: executing a new command discards everything that
// could be redone. It must be created with [NewHistory].
type History struct {

	// Env is what the commands run against.
	Env Env

	// Sender, if set, is told of every transition.
	Sender Sender

	undo []*Command
	redo []*Command
}

// NewHistory returns a new empty history.
func NewHistory(env Env, sender Sender) *History {
	return &History{Env: env, Sender: sender}
}

// ExecuteCommand discards the redo stack, cleaning up its commands,
// then executes the command and records it if it had any effect.
// The command is sent only when it is recorded.
func (h *History) ExecuteCommand(c *Command) error {
	h.discardRedo()
	if err := c.Execute(h.Env); err != nil {
		return err
	}
	h.undo = append(h.undo, c)
	slog.Info("history: execute", "command", c.String(), "undo", len(h.undo))
	if h.Sender != nil {
		errors.Log(h.Sender.SendExecute(c))
	}
	return nil
}

// Undo undoes the most recent command and returns it, or returns
// false if there is nothing to undo.
func (h *History) Undo() (*Command, bool) {
	n := len(h.undo)
	if n == 0 {
		return nil, false
	}
	c := h.undo[n-1]
	h.undo = h.undo[:n-1]
	c.Undo(h.Env)
	h.redo = append(h.redo, c)
	slog.Info("history: undo", "command", c.String())
	if h.Sender != nil {
		errors.Log(h.Sender.SendUndo(c.ActionID))
	}
	return c, true
}

// Redo executes again the most recently undone command and returns
// it, or returns false if there is nothing to redo.
func (h *History) Redo() (*Command, bool) {
	n := len(h.redo)
	if n == 0 {
		return nil, false
	}
	c := h.redo[n-1]
	h.redo = h.redo[:n-1]
	errors.Log(c.Execute(h.Env))
	h.undo = append(h.undo, c)
	slog.Info("history: redo", "command", c.String())
	if h.Sender != nil {
		errors.Log(h.Sender.SendRedo(c.ActionID))
	}
	return c, true
}

// UndoAction is [History.Undo] for a received undo of the given
// action. A non-empty actionID that does not match the command
// being undone is logged as a desync, and the undo still happens.
func (h *History) UndoAction(actionID string) (*Command, bool) {
	if top := h.PeekUndo(); top != nil && actionID != "" && top.ActionID != actionID {
		slog.Warn("history: undo action mismatch", "got", actionID, "top", top.ActionID)
	}
	return h.Undo()
}

// RedoAction is [History.Redo] for a received redo of the given
// action, with the same mismatch check as [History.UndoAction].
func (h *History) RedoAction(actionID string) (*Command, bool) {
	if top := h.PeekRedo(); top != nil && actionID != "" && top.ActionID != actionID {
		slog.Warn("history: redo action mismatch", "got", actionID, "top", top.ActionID)
	}
	return h.Redo()
}

func (h *History) discardRedo() {
	if len(h.redo) == 0 {
		return
	}
	slog.Debug("history: discard redo", "n", len(h.redo))
	for _, c := range h.redo {
		c.Cleanup(h.Env)
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

// ClearHistory cleans up every command in both stacks and empties them.
func (h *History) ClearHistory() {
	h.discardRedo()
	for i := len(h.undo) - 1; i >= 0; i-- {
		h.undo[i].Cleanup(h.Env)
	}
	clear(h.undo)
	h.undo = h.undo[:0]
}

// CanUndo returns whether there is a command to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo returns whether there is a command to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLen returns the number of commands that can be undone.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the number of commands that can be redone.
func (h *History) RedoLen() int { return len(h.redo) }

// PeekUndo returns the command [History.Undo] would undo, or nil.
func (h *History) PeekUndo() *Command {
	if len(h.undo) == 0 {
		return nil
	}
	return h.undo[len(h.undo)-1]
}

// PeekRedo returns the command [History.Redo] would redo, or nil.
func (h *History) PeekRedo() *Command {
	if len(h.redo) == 0 {
		return nil
	}
	return h.redo[len(h.redo)-1]
}

// Has returns whether a command with the given action id is in either stack.
func (h *History) Has(actionID string) bool {
	for _, c := range h.undo {
		if c.ActionID == actionID {
			return true
		}
	}
	for _, c := range h.redo {
		if c.ActionID == actionID {
			return true
		}
	}
	return false
}
