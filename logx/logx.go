// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx configures the default [slog] logger used by the
// wallscope client and display server, with colored level labels
// when the output is a terminal.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity level that the user has selected for
// what logging messages should be shown. Messages at levels at or
// above this level will be shown. It is set from command line flags
// or the config file, and may change while running.
var UserLevel = new(slog.LevelVar)

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags correspond to the following values:
//   - debug: [slog.LevelDebug]
//   - verbose: [slog.LevelInfo]
//   - quiet: [slog.LevelError]
//   - (default: [slog.LevelWarn])
//
// The flags are evaluated in that order, so, for example, if both
// debug and quiet are specified, it will use debug.
func LevelFromFlags(debug, verbose, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LevelFromString parses a level name (debug, info, warn, error)
// as used in config files. Unknown names return [slog.LevelInfo].
func LevelFromString(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// SetDefaultLogger sets the default logger to a [Handler] writing to
// stderr at [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// Handler is a [slog.Handler] that writes one line per record,
// with the level label colored according to the terminal profile.
type Handler struct {
	out     io.Writer
	mu      *sync.Mutex
	level   slog.Leveler
	profile termenv.Profile
	attrs   []slog.Attr
	group   string
}

// NewHandler returns a new [Handler] writing to w for records at or
// above the given level.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{
		out:     w,
		mu:      &sync.Mutex{},
		level:   level,
		profile: termenv.NewOutput(w).EnvColorProfile(),
	}
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("15:04:05.000"))
	sb.WriteByte(' ')
	sb.WriteString(h.levelString(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	write := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		fmt.Fprintf(&sb, " %s=%v", key, a.Value.Any())
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	sb.WriteByte('\n')
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	if nh.group != "" {
		name = nh.group + "." + name
	}
	nh.group = name
	return &nh
}

// levelString returns the colored label for the given level.
func (h *Handler) levelString(l slog.Level) string {
	s := termenv.String(l.String())
	switch {
	case l >= slog.LevelError:
		s = s.Foreground(h.profile.Color("1")).Bold()
	case l >= slog.LevelWarn:
		s = s.Foreground(h.profile.Color("3"))
	case l >= slog.LevelInfo:
		s = s.Foreground(h.profile.Color("4"))
	default:
		s = s.Faint()
	}
	return s.String()
}
