package noise

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOctaves is returned when an octave table cannot produce finite noise.
var ErrInvalidOctaves = errors.New("invalid octave configuration")

// Octaves is an immutable frequency/amplitude ladder.
type Octaves struct {
	frequencies []float64
	amplitudes  []float64
}

// NewOctaves builds the ladder frequency_i = baseFrequency * 2^i, amplitude_i = persistence^i.
func NewOctaves(count int, baseFrequency, persistence float64) (Octaves, error) {
	if count <= 0 {
		return Octaves{}, fmt.Errorf("%w: octave count must be positive, got %d", ErrInvalidOctaves, count)
	}
	if !isFinite(baseFrequency) || baseFrequency <= 0 {
		return Octaves{}, fmt.Errorf("%w: base frequency must be positive and finite, got %v", ErrInvalidOctaves, baseFrequency)
	}
	if !isFinite(persistence) || persistence <= 0 {
		return Octaves{}, fmt.Errorf("%w: persistence must be positive and finite, got %v", ErrInvalidOctaves, persistence)
	}

	o := Octaves{
		frequencies: make([]float64, count),
		amplitudes:  make([]float64, count),
	}
	for i := 0; i < count; i++ {
		o.frequencies[i] = math.Pow(2, float64(i)) * baseFrequency
		o.amplitudes[i] = math.Pow(persistence, float64(i))
	}

	if !isFinite(o.frequencies[count-1]) || o.amplitudes[count-1] == 0 || !isFinite(o.amplitudes[count-1]) {
		return Octaves{}, fmt.Errorf("%w: %d octaves overflow with base frequency %v and persistence %v",
			ErrInvalidOctaves, count, baseFrequency, persistence)
	}

	return o, nil
}

// Count returns the number of octaves.
func (o Octaves) Count() int {
	return len(o.frequencies)
}

// Frequency returns the frequency of octave i.
func (o Octaves) Frequency(i int) float64 {
	return o.frequencies[i]
}

// Amplitude returns the amplitude of octave i.
func (o Octaves) Amplitude(i int) float64 {
	return o.amplitudes[i]
}

// totalAmplitude is the normalisation divisor for a full octave sum.
func (o Octaves) totalAmplitude() float64 {
	var sum float64
	for _, a := range o.amplitudes {
		sum += a
	}
	return sum
}

// ValidateThresholds checks that a thresholds table can be applied to this ladder.
// A nil table is always valid.
func (o Octaves) ValidateThresholds(thresholds []float64) error {
	if thresholds == nil {
		return nil
	}
	if len(thresholds) != o.Count() {
		return fmt.Errorf("%w: thresholds length %d does not match octave count %d",
			ErrInvalidOctaves, len(thresholds), o.Count())
	}
	for i, t := range thresholds {
		if !isFinite(t) {
			return fmt.Errorf("%w: threshold %d is not finite", ErrInvalidOctaves, i)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
