// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fun with the reloaded config each time the given
// config file is written, until ctx is done. Invalid configs are
// logged and skipped. The directory is watched so that editors
// that replace the file are seen too.
func Watch(ctx context.Context, filename string, fun func(c *Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			c, err := Open(abs)
			if err != nil {
				slog.Error("config: reload", "file", abs, "err", err)
				continue
			}
			slog.Info("config: reloaded", "file", abs)
			fun(c)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watch", "err", err)
		}
	}
}
