// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// based on golang.org/x/exp/shiny:
// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package queue provides a lock-free FIFO that hands values produced on
// I/O goroutines (network readers, input drivers) to the single update
// loop that owns the scene.
package queue

import (
	"sync/atomic"
)

// Queue is a lock-free FIFO queue. Any number of goroutines may
// [Queue.Send]; values must be removed by one consumer goroutine.
// It must be initialized using [Queue.Init] before use.
// It is based on https://github.com/fyne-io/fyne/blob/master/internal/async/queue_canvasobject.go
type Queue[T any] struct {
	head atomic.Pointer[item[T]]
	tail atomic.Pointer[item[T]]
	len  atomic.Uint64
}

type item[T any] struct {
	next atomic.Pointer[item[T]]
	v    T
}

// New returns a new initialized queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.Init()
	return q
}

// Init initializes the queue.
func (q *Queue[T]) Init() {
	head := &item[T]{}
	q.head.Store(head)
	q.tail.Store(head)
}

// Next removes and returns the next value in the queue.
// ok is false if the queue is empty.
func (q *Queue[T]) Next() (v T, ok bool) {
	var first, last, firstnext *item[T]
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					return v, false
				}
				q.tail.CompareAndSwap(last, firstnext)
			} else {
				v = firstnext.v
				if q.head.CompareAndSwap(first, firstnext) {
					q.len.Add(^uint64(0))
					return v, true
				}
			}
		}
	}
}

// Send adds a value to the end of the queue.
func (q *Queue[T]) Send(v T) {
	i := &item[T]{v: v}

	var last, lastnext *item[T]
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, i) {
					q.tail.CompareAndSwap(last, i)
					q.len.Add(1)
					return
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
}

// Drain removes every value currently in the queue, in order,
// calling fun for each one. It returns the number of values drained.
func (q *Queue[T]) Drain(fun func(v T)) int {
	n := 0
	for {
		v, ok := q.Next()
		if !ok {
			return n
		}
		fun(v)
		n++
	}
}

// Len returns the length of the queue.
func (q *Queue[T]) Len() uint64 {
	return q.len.Load()
}
