// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"log/slog"
	"slices"
	"time"

	"cogentcore.org/wallscope/base/queue"
	"cogentcore.org/wallscope/math32"
)

// Sampler collects raw input events from any goroutine and turns
// them into one [Frame] per update tick. It must be created
// with [NewSampler].
type Sampler struct {

	// Size is the screen size in pixels, copied into every frame.
	Size math32.Vector2

	// raw holds events sent by platform drivers until the next Sample.
	raw *queue.Queue[Event]

	// pointers are the currently tracked pointers.
	pointers map[Sequence]*tracked
}

type tracked struct {
	Pointer

	// endNext is set when a pointer is released in the same frame
	// it began, so that the Began frame is still observed.
	endNext Phases
}

// NewSampler returns a new sampler for a screen of the given size.
func NewSampler(size math32.Vector2) *Sampler {
	return &Sampler{Size: size, raw: queue.New[Event](), pointers: map[Sequence]*tracked{}}
}

// Send queues a raw event. It is safe to call from any goroutine.
func (s *Sampler) Send(ev Event) {
	s.raw.Send(ev)
}

// Touch queues a touch event of the given type.
func (s *Sampler) Touch(typ Types, seq Sequence, where math32.Vector2) {
	s.Send(Event{Type: typ, Sequence: seq, Where: where})
}

// Mouse queues a mouse event of the given type.
func (s *Sampler) Mouse(typ Types, where math32.Vector2) {
	s.Send(Event{Type: typ, Sequence: MouseSequence, Where: where})
}

// Sample drains the queued raw events and returns the frame for
// the given time. It must only be called from the update loop.
func (s *Sampler) Sample(now time.Time) Frame {
	for seq, p := range s.pointers {
		switch {
		case !p.Phase.IsActive():
			delete(s.pointers, seq)
		case p.endNext != 0:
			p.Phase = p.endNext
			p.endNext = 0
		default:
			p.Phase = Stationary
		}
	}
	f := Frame{Time: now, Size: s.Size}
	s.raw.Drain(func(ev Event) {
		s.apply(ev, &f)
	})
	f.Pointers = make([]Pointer, 0, len(s.pointers))
	for _, p := range s.pointers {
		f.Pointers = append(f.Pointers, p.Pointer)
	}
	slices.SortFunc(f.Pointers, func(a, b Pointer) int {
		return int(a.Sequence) - int(b.Sequence)
	})
	return f
}

func (s *Sampler) apply(ev Event, f *Frame) {
	switch ev.Type {
	case TouchStart, MouseDown:
		seq := ev.Sequence
		if ev.Type == MouseDown {
			seq = MouseSequence
		}
		if p, has := s.pointers[seq]; has && p.Phase.IsActive() {
			slog.Debug("events.Sampler: duplicate pointer start", "sequence", seq)
			p.Pos = ev.Where
			return
		}
		s.pointers[seq] = &tracked{Pointer: Pointer{Sequence: seq, Pos: ev.Where, Phase: Began}}
	case TouchMove, MouseMove:
		seq := ev.Sequence
		if ev.Type == MouseMove {
			seq = MouseSequence
		}
		p, has := s.pointers[seq]
		if !has || !p.Phase.IsActive() {
			return
		}
		p.Pos = ev.Where
		if p.Phase == Stationary {
			p.Phase = Moved
		}
	case TouchEnd, TouchCancel, MouseUp:
		seq := ev.Sequence
		if ev.Type == MouseUp {
			seq = MouseSequence
		}
		p, has := s.pointers[seq]
		if !has {
			return
		}
		phase := Ended
		if ev.Type == TouchCancel {
			phase = Canceled
		}
		p.Pos = ev.Where
		if p.Phase == Began {
			p.endNext = phase
			return
		}
		p.Phase = phase
	case Scroll:
		f.Scroll += ev.Delta
	}
}
