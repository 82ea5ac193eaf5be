// Package mlog is the decoder's ambient logging layer: a thin wrapper
// toggled by an atomic flag so disabled logging costs nothing, backed by
// log/slog with a tint handler for colored, leveled console output.
package mlog

import (
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/lmittmann/tint"
)

// Logger gates a *slog.Logger behind an enable flag. The decoder itself
// never logs on the happy path; this exists for callers that want to
// trace parse decisions (which CI dispatched, which table a VIF resolved
// through) without paying for it when disabled.
type Logger struct {
	backend *slog.Logger
	enabled uint32
}

// Default is the package-level logger. It is disabled until a caller opts
// in with SetEnabled. The decoder packages do not log through it.
var Default = New(nil)

// New wraps backend, defaulting to a tint-backed stdout logger at Info
// level when backend is nil.
func New(backend *slog.Logger) *Logger {
	if backend == nil {
		backend = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level: slog.LevelInfo,
		}))
	}
	return &Logger{backend: backend}
}

// SetEnabled toggles whether Debug/Warn/Error calls reach the backend.
func (l *Logger) SetEnabled(enabled bool) {
	if enabled {
		atomic.StoreUint32(&l.enabled, 1)
	} else {
		atomic.StoreUint32(&l.enabled, 0)
	}
}

func (l *Logger) on() bool {
	return atomic.LoadUint32(&l.enabled) == 1
}

// Debug logs a trace-level parse decision.
func (l *Logger) Debug(msg string, args ...any) {
	if l.on() {
		l.backend.Debug(msg, args...)
	}
}

// Warn logs a tolerated quirk (e.g. month=15 accepted, a reserved security
// mode admitted rather than rejected).
func (l *Logger) Warn(msg string, args ...any) {
	if l.on() {
		l.backend.Warn(msg, args...)
	}
}

// Error logs a parse failure alongside its returned error.
func (l *Logger) Error(msg string, args ...any) {
	if l.on() {
		l.backend.Error(msg, args...)
	}
}

// SetEnabled toggles the package-level Default logger.
func SetEnabled(enabled bool) {
	Default.SetEnabled(enabled)
}
