// Copyright (C) 2026 TrustScope Analytics (eng@trustscope.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for TrustScope components.
//
// The package is a thin layer over Go's standard library slog. It adds
// three things the services need:
//
//   - A dynamic minimum level backed by slog.LevelVar, so the running
//     service can change verbosity without a restart (the analyzer wires
//     this to a config-file watcher).
//   - Terminal detection via go-isatty: interactive sessions get the
//     human-readable text handler, everything else gets JSON for log
//     collectors.
//   - A "service" attribute stamped on every record so multi-service
//     deployments can tell log streams apart.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{Service: "analyzer"})
//	slog.SetDefault(logger)
//	slog.Info("analysis complete", "rows", n)
//
// # Log Levels
//
// Four levels are supported, matching slog conventions:
//
//   - Debug: development troubleshooting, verbose output
//   - Info: normal operations (request start/end, state changes)
//   - Warn: recoverable issues (degraded mode, fallback values)
//   - Error: operation failures (but the system continues)
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. slog.LevelVar and
// slog.Logger are thread-safe by contract.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a
// Level. Unknown strings fall back to LevelInfo so a typo in a config file
// never silences the service.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures logger construction.
//
// A zero-value Config creates a logger that writes Info+ messages to
// stderr, choosing text or JSON output based on whether stderr is a
// terminal.
type Config struct {
	// Level sets the minimum log level. Default: LevelInfo.
	Level Level

	// Service is stamped on every record as the "service" attribute.
	// Empty means no attribute is added.
	Service string

	// JSON forces the JSON handler even on a terminal. Collectors that
	// scrape container stderr set this.
	JSON bool

	// Output overrides the destination. Default: os.Stderr.
	// Mainly for tests.
	Output io.Writer
}

// levelVar backs the minimum level of every logger built by New, so
// SetLevel takes effect process-wide.
var levelVar slog.LevelVar

// New builds a logger from cfg. The returned logger honors later
// SetLevel calls.
func New(cfg Config) *slog.Logger {
	levelVar.Set(cfg.Level.toSlogLevel())

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: &levelVar}

	var handler slog.Handler
	if cfg.JSON || !stderrIsTerminal(out) {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// SetLevel changes the minimum level of every logger built by New.
// Safe to call from any goroutine.
func SetLevel(l Level) {
	levelVar.Set(l.toSlogLevel())
}

// stderrIsTerminal reports whether w is an interactive terminal. Only
// *os.File destinations can be terminals; everything else is treated as
// non-interactive.
func stderrIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
