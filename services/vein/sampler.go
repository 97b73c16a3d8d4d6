package vein

import (
	"fmt"
	"math"

	"github.com/VoidMesh/orevein/services/noise"
)

// Sampler produces one packed value per world cell from four independent noise channels.
// It is immutable after construction and safe for concurrent use.
type Sampler struct {
	channels   [4]ChannelNoise
	ridgedMul  float64
	cull       float64
	thresholds []float64
	// octaves is the length a thresholds table must have; 0 when channels were injected.
	octaves int
}

// NewSampler builds the four channel noises from cfg.
func NewSampler(cfg Config) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sampler{
		ridgedMul:  cfg.RidgedMultiplier,
		cull:       cfg.CullThreshold,
		thresholds: cloneThresholds(cfg.Thresholds),
		octaves:    cfg.Octaves,
	}

	for _, ch := range channelOrder {
		n, err := noise.FromOctavesKind(cfg.Primitive, cfg.Octaves, 1/cfg.Scale(ch), cfg.Persistence, cfg.Seed+seedOffsets[ch])
		if err != nil {
			return nil, fmt.Errorf("%w: channel %s: %v", ErrInvalidConfig, ch, err)
		}
		s.channels[ch] = n
	}

	return s, nil
}

// NewSamplerWithChannels builds a sampler over caller-supplied channel noises, in A, R, G, B order.
// Thresholds of any length are forwarded as-is.
func NewSamplerWithChannels(channels [4]ChannelNoise, ridgedMul, cullThreshold float64) (*Sampler, error) {
	for _, ch := range channelOrder {
		if channels[ch] == nil {
			return nil, fmt.Errorf("%w: channel %s has no noise source", ErrInvalidConfig, ch)
		}
	}
	if !finite(ridgedMul) || ridgedMul < 0 {
		return nil, fmt.Errorf("%w: ridged multiplier must be non-negative and finite, got %v", ErrInvalidConfig, ridgedMul)
	}
	if !finite(cullThreshold) || cullThreshold < 0 || cullThreshold > 1 {
		return nil, fmt.Errorf("%w: cull threshold must be within [0, 1], got %v", ErrInvalidConfig, cullThreshold)
	}
	return &Sampler{channels: channels, ridgedMul: ridgedMul, cull: cullThreshold}, nil
}

// Thresholds returns the configured remapping table, or nil.
func (s *Sampler) Thresholds() []float64 {
	return s.thresholds
}

// CullThreshold returns the gating cut-off.
func (s *Sampler) CullThreshold() float64 {
	return s.cull
}

// ValidateThresholds checks a per-request thresholds table.
func (s *Sampler) ValidateThresholds(thresholds []float64) error {
	if err := validateThresholds(thresholds, s.octaves); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Sample evaluates the cell at (worldX, worldZ).
//
// With a gating channel, that channel is evaluated first; at or above the cull threshold the
// whole cell is culled to zero (all 255 once inverted) and the other channels are never read.
// Without gating all four channels are evaluated. Ridge flags apply per channel before use.
func (s *Sampler) Sample(worldX, worldZ int, flags Flags, thresholds []float64) ARGB {
	x, z := float64(worldX), float64(worldZ)
	var values [4]float64

	if gate, ok := flags.Gating(); ok {
		values[gate] = s.channelValue(gate, x, z, flags, thresholds)
		if values[gate] >= s.cull {
			return finish(0, flags)
		}
		for _, ch := range channelOrder {
			if ch != gate {
				values[ch] = s.channelValue(ch, x, z, flags, thresholds)
			}
		}
	} else {
		for _, ch := range channelOrder {
			values[ch] = s.channelValue(ch, x, z, flags, thresholds)
		}
	}

	return finish(packUnits(values), flags)
}

// channelValue is the post-ridge value of one channel.
func (s *Sampler) channelValue(ch Channel, x, z float64, flags Flags, thresholds []float64) float64 {
	n := s.channels[ch].Noise(x, z, thresholds)
	if flags.Ridged(ch) {
		n = ridge(n, s.ridgedMul)
	}
	return n
}

// ridge folds n around 0.5 so the midline becomes a sharp valley.
func ridge(n, mul float64) float64 {
	return math.Abs((n-0.5)*2) * mul
}

func finish(v ARGB, flags Flags) ARGB {
	if flags.Inverted() {
		return v.Inverse()
	}
	return v
}

func cloneThresholds(t []float64) []float64 {
	if t == nil {
		return nil
	}
	return append([]float64(nil), t...)
}
