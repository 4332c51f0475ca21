package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickCounts(t *testing.T) {
	s := New()
	s.Tick(2)
	s.Tick(0)
	s.Tick(3)
	assert.Equal(t, 3, s.Frames())
	assert.Equal(t, 5, s.Steps())
	assert.Greater(t, s.HeapMiB(), 0.0)
	assert.GreaterOrEqual(t, s.StepsPerSecond(), 0.0)
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := New()
	s.Tick(1)
	zap.New(core).Info("runtime stats", s.Fields()...)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, int64(1), ctx["frames"])
		assert.Equal(t, int64(1), ctx["fixed_steps"])
		assert.Contains(t, ctx, "heap_mib")
		assert.Contains(t, ctx, "goroutines")
	}
}
