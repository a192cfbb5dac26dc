// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gesture

// Listeners registers lists of intent listener functions
// to receive different intent kinds.
// Listeners are closure methods with all context captured.
type Listeners map[Kinds][]func(in *Intent)

// Init ensures that map is constructed
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[Kinds][]func(*Intent))
}

// Add adds a function for given kind
func (ls *Listeners) Add(kind Kinds, fun func(*Intent)) {
	ls.Init()
	(*ls)[kind] = append((*ls)[kind], fun)
}

// Call calls all functions for given intent.
// It goes in _reverse_ order so the last functions added are the first called
// and it stops when the intent is marked as Handled. This allows for a natural
// and optional override behavior, as compared to requiring more complex
// priority-based mechanisms.
func (ls *Listeners) Call(in *Intent) {
	if in.IsHandled() {
		return
	}
	ets := (*ls)[in.Kind]
	for i := len(ets) - 1; i >= 0; i-- {
		ets[i](in)
		if in.IsHandled() {
			break
		}
	}
}
