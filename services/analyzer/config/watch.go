// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// WatchLogLevel watches the config file and calls apply with the new log
// level whenever the file changes to a valid configuration. Invalid edits
// are logged and ignored; the running level is untouched.
//
// Runs until ctx is cancelled. Intended to be started as a goroutine after
// the initial Load.
func WatchLogLevel(ctx context.Context, path string, apply func(level string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				slog.Warn("ignoring invalid config change", "path", path, "error", err)
				continue
			}
			slog.Info("config reloaded", "log_level", cfg.LogLevel)
			apply(cfg.LogLevel)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher error", "error", err)
		}
	}
}
