// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the default logger for contexts created afterwards.
// By default, glidex produces no log output. Pass nil to restore silence.
// Use [Context.SetLogger] to change the logger of a live context.
//
// Log levels used by glidex:
//   - [slog.LevelDebug]: per-frame diagnostics (draw calls, predictor timing)
//   - [slog.LevelInfo]: lifecycle events (context created, palette registered)
//   - [slog.LevelWarn]: recovered anomalies (unexpected simulation updates,
//     predictor resets, palette overflow)
//   - [slog.LevelError]: fatal capacity conditions
//
// Example:
//
//	glidex.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by components that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes l to every target that implements loggerSetter.
func propagateLogger(l *slog.Logger, targets ...any) {
	for _, t := range targets {
		if ls, ok := t.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}
