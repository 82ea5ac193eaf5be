package mlog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// countingHandler counts every record that reaches it, regardless of level.
type countingHandler struct{ n *int }

func (h countingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h countingHandler) Handle(context.Context, slog.Record) error {
	*h.n++
	return nil
}
func (h countingHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h countingHandler) WithGroup(name string) slog.Handler       { return h }

func TestLoggerGatesOnEnabled(t *testing.T) {
	n := 0
	l := New(slog.New(countingHandler{n: &n}))

	l.Debug("should not reach backend")
	l.Warn("should not reach backend")
	l.Error("should not reach backend")
	assert.Equal(t, 0, n)

	l.SetEnabled(true)
	l.Debug("reaches backend")
	l.Warn("reaches backend")
	l.Error("reaches backend")
	assert.Equal(t, 3, n)

	l.SetEnabled(false)
	l.Debug("gated again")
	assert.Equal(t, 3, n)
}

func TestPackageLevelDefaultLogger(t *testing.T) {
	SetEnabled(true)
	assert.True(t, Default.on())
	SetEnabled(false)
	assert.False(t, Default.on())
}
