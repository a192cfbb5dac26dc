// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cogentcore.org/wallscope/events"
	"cogentcore.org/wallscope/math32"
	"gopkg.in/yaml.v3"
)

// Actions are the UI operations a trace can perform.
type Actions string

const (
	NoAction     Actions = ""
	UndoAct      Actions = "undo"
	RedoAct      Actions = "redo"
	ResetAct     Actions = "reset"
	LoadModelAct Actions = "load"
)

// TraceEvent is one recorded input: a pointer event, or a UI action.
type TraceEvent struct {

	// At is the time of the event from the start of the trace.
	At time.Duration `yaml:"at"`

	// Type is the pointer event type, if not an action.
	Type events.Types `yaml:"type,omitempty"`

	// Seq is the touch identity.
	Seq int `yaml:"seq,omitempty"`

	X float32 `yaml:"x,omitempty"`
	Y float32 `yaml:"y,omitempty"`

	// Delta is the scroll amount.
	Delta float32 `yaml:"delta,omitempty"`

	// Action is a UI operation to perform instead of a pointer event.
	Action Actions `yaml:"action,omitempty"`

	// Model is the model of a load action.
	Model string `yaml:"model,omitempty"`
}

// Trace is a recorded sequence of input, in time order.
type Trace struct {

	// Tail is how long to keep running frames after the last event.
	Tail time.Duration `yaml:"tail"`

	Events []TraceEvent `yaml:"events"`
}

// ReadTrace reads a YAML trace.
func ReadTrace(r io.Reader) (*Trace, error) {
	tr := &Trace{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(tr); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	for i := 1; i < len(tr.Events); i++ {
		if tr.Events[i].At < tr.Events[i-1].At {
			return nil, fmt.Errorf("trace: event %d is before event %d", i, i-1)
		}
	}
	return tr, nil
}

// OpenTrace reads a YAML trace file.
func OpenTrace(filename string) (*Trace, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrace(f)
}

// Replay runs the trace through the client on a virtual clock
// starting at start, one frame per configured frame interval,
// without waiting in real time. It returns the end time.
func (cl *Client) Replay(ctx context.Context, tr *Trace, start time.Time) (time.Time, error) {
	frame := time.Second / time.Duration(cl.Config.Client.FrameRate)
	var end time.Duration
	if n := len(tr.Events); n > 0 {
		end = tr.Events[n-1].At
	}
	end += tr.Tail
	next := 0
	var t time.Duration
	for ; t <= end; t += frame {
		if err := ctx.Err(); err != nil {
			return start.Add(t), err
		}
		for next < len(tr.Events) && tr.Events[next].At <= t {
			if err := cl.play(&tr.Events[next]); err != nil {
				return start.Add(t), fmt.Errorf("trace event %d: %w", next, err)
			}
			next++
		}
		cl.Step(start.Add(t))
	}
	slog.Info("client: replay done", "events", len(tr.Events), "active", cl.Scene.ActiveNames())
	return start.Add(t), nil
}

func (cl *Client) play(ev *TraceEvent) error {
	switch ev.Action {
	case NoAction:
	case UndoAct:
		cl.Undo()
		return nil
	case RedoAct:
		cl.Redo()
		return nil
	case ResetAct:
		cl.ResetHistory()
		return nil
	case LoadModelAct:
		return cl.LoadModel(ev.Model)
	default:
		return fmt.Errorf("unknown action %q", ev.Action)
	}
	cl.Sampler.Send(events.Event{Type: ev.Type, Sequence: events.Sequence(ev.Seq), Where: math32.Vec2(ev.X, ev.Y), Delta: ev.Delta})
	return nil
}
