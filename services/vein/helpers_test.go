package vein

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/orevein/internal/testutil"
)

// funcNoise adapts a function to ChannelNoise.
type funcNoise func(x, y float64, thresholds []float64) float64

func (f funcNoise) Noise(x, y float64, thresholds []float64) float64 {
	return f(x, y, thresholds)
}

func constant(v float64) funcNoise {
	return func(float64, float64, []float64) float64 { return v }
}

// countingNoise records every evaluation.
type countingNoise struct {
	mu         sync.Mutex
	fn         funcNoise
	calls      [][2]float64
	thresholds [][]float64
}

func (c *countingNoise) Noise(x, y float64, thresholds []float64) float64 {
	c.mu.Lock()
	c.calls = append(c.calls, [2]float64{x, y})
	c.thresholds = append(c.thresholds, thresholds)
	c.mu.Unlock()
	return c.fn(x, y, thresholds)
}

func (c *countingNoise) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// recordingAdapter lets a testutil.RecordingLogger stand in for LoggerInterface.
type recordingAdapter struct {
	*testutil.RecordingLogger
}

func (r recordingAdapter) With(keysAndValues ...interface{}) LoggerInterface {
	return recordingAdapter{r.RecordingLogger.Child(keysAndValues...)}
}

func newStubSampler(t testing.TB, a, r, g, b ChannelNoise, ridgedMul, cull float64) *Sampler {
	t.Helper()
	s, err := NewSamplerWithChannels([4]ChannelNoise{a, r, g, b}, ridgedMul, cull)
	require.NoError(t, err)
	return s
}

func newStubGenerator(t testing.TB, a, r, g, b ChannelNoise, ridgedMul, cull float64) *Generator {
	t.Helper()
	return NewGeneratorFromSampler(newStubSampler(t, a, r, g, b, ridgedMul, cull), 1, recordingAdapter{testutil.NewRecordingLogger()})
}

func newTestGenerator(t testing.TB, cfg Config) *Generator {
	t.Helper()
	gen, err := NewGenerator(cfg, recordingAdapter{testutil.NewRecordingLogger()})
	require.NoError(t, err)
	return gen
}
