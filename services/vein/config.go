package vein

import (
	"errors"
	"fmt"
	"math"

	"github.com/VoidMesh/orevein/services/noise"
)

var (
	// ErrInvalidConfig is returned when a generator cannot be built from its configuration.
	ErrInvalidConfig = errors.New("invalid vein configuration")
	// ErrInvalidRequest is returned for grid requests that cannot be served.
	ErrInvalidRequest = errors.New("invalid vein request")
)

// Per-channel seed offsets. Each channel's noise is seeded with Seed + offset.
const (
	SeedOffsetA int64 = 7312654
	SeedOffsetR int64 = 5498987
	SeedOffsetG int64 = 2987992
	SeedOffsetB int64 = 4987462
)

var seedOffsets = [4]int64{
	ChannelA: SeedOffsetA,
	ChannelR: SeedOffsetR,
	ChannelG: SeedOffsetG,
	ChannelB: SeedOffsetB,
}

const (
	DefaultOctaves          = 4
	DefaultPersistence      = 0.5
	DefaultScale            = 32
	DefaultRidgedMultiplier = 1.0
	DefaultCullThreshold    = 0.8
)

// Config holds the tunable parameters of a vein generator.
type Config struct {
	Seed        int64
	Octaves     int
	Persistence float64

	// Feature scales in world units per channel; base frequency is 1/scale.
	ScaleA float64
	ScaleR float64
	ScaleG float64
	ScaleB float64

	RidgedMultiplier float64
	CullThreshold    float64

	// Thresholds is an optional per-octave remapping table handed to the noise primitive.
	Thresholds []float64

	Primitive noise.Kind
}

// DefaultConfig returns the standard tuning for the given seed.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:             seed,
		Octaves:          DefaultOctaves,
		Persistence:      DefaultPersistence,
		ScaleA:           DefaultScale,
		ScaleR:           DefaultScale,
		ScaleG:           DefaultScale,
		ScaleB:           DefaultScale,
		RidgedMultiplier: DefaultRidgedMultiplier,
		CullThreshold:    DefaultCullThreshold,
		Primitive:        noise.KindSimplex,
	}
}

// Scale returns the feature scale for a channel.
func (c Config) Scale(ch Channel) float64 {
	switch ch {
	case ChannelA:
		return c.ScaleA
	case ChannelR:
		return c.ScaleR
	case ChannelG:
		return c.ScaleG
	default:
		return c.ScaleB
	}
}

// Validate checks every parameter that could otherwise produce NaN or infinite noise.
func (c Config) Validate() error {
	if c.Octaves <= 0 {
		return fmt.Errorf("%w: octaves must be positive, got %d", ErrInvalidConfig, c.Octaves)
	}
	if !finite(c.Persistence) || c.Persistence <= 0 {
		return fmt.Errorf("%w: persistence must be positive and finite, got %v", ErrInvalidConfig, c.Persistence)
	}
	for _, ch := range channelOrder {
		if s := c.Scale(ch); !finite(s) || s <= 0 {
			return fmt.Errorf("%w: scale %s must be positive and finite, got %v", ErrInvalidConfig, ch, s)
		}
	}
	if !finite(c.RidgedMultiplier) || c.RidgedMultiplier < 0 {
		return fmt.Errorf("%w: ridged multiplier must be non-negative and finite, got %v", ErrInvalidConfig, c.RidgedMultiplier)
	}
	if !finite(c.CullThreshold) || c.CullThreshold < 0 || c.CullThreshold > 1 {
		return fmt.Errorf("%w: cull threshold must be within [0, 1], got %v", ErrInvalidConfig, c.CullThreshold)
	}
	if err := validateThresholds(c.Thresholds, c.Octaves); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Primitive {
	case "", noise.KindSimplex, noise.KindPerlin:
	default:
		return fmt.Errorf("%w: unknown primitive %q", ErrInvalidConfig, c.Primitive)
	}
	return nil
}

// validateThresholds checks length against octaves; octaves <= 0 skips the length check.
func validateThresholds(thresholds []float64, octaves int) error {
	if thresholds == nil {
		return nil
	}
	if octaves > 0 && len(thresholds) != octaves {
		return fmt.Errorf("thresholds length %d does not match octave count %d", len(thresholds), octaves)
	}
	for i, t := range thresholds {
		if !finite(t) {
			return fmt.Errorf("threshold %d is not finite", i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
