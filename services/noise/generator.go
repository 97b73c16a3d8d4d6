package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Primitive is a seeded smooth-noise source evaluated over an octave table.
// Thresholds, when non-nil, are applied per octave as a dead zone around zero.
type Primitive interface {
	Evaluate(x, y float64, thresholds []float64) float64
}

// Kind selects the smooth-noise algorithm behind a primitive.
type Kind string

const (
	KindSimplex Kind = "simplex"
	KindPerlin  Kind = "perlin"
)

// source is a single-octave noise function returning roughly [-1, 1].
type source interface {
	Eval2(x, y float64) float64
}

// perlinSource adapts go-perlin to the source interface.
type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval2(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

// Generator sums one seeded noise source per octave and normalises the result into [0, 1].
type Generator struct {
	octaves Octaves
	sources []source
	total   float64
	seed    int64
	kind    Kind
}

// NewGenerator creates an octave generator of the given kind. Octave i is seeded with seed+i.
func NewGenerator(kind Kind, octaves Octaves, seed int64) (*Generator, error) {
	if octaves.Count() == 0 {
		return nil, fmt.Errorf("%w: empty octave table", ErrInvalidOctaves)
	}

	g := &Generator{
		octaves: octaves,
		sources: make([]source, octaves.Count()),
		total:   octaves.totalAmplitude(),
		seed:    seed,
		kind:    kind,
	}

	for i := range g.sources {
		octaveSeed := seed + int64(i)
		switch kind {
		case KindSimplex, "":
			g.sources[i] = opensimplex.New(octaveSeed)
		case KindPerlin:
			// alpha=2, beta=2, n=1: one smooth layer per octave, the ladder does the rest
			g.sources[i] = perlinSource{p: perlin.NewPerlin(2, 2, 1, octaveSeed)}
		default:
			return nil, fmt.Errorf("%w: unknown noise kind %q", ErrInvalidOctaves, kind)
		}
	}
	if g.kind == "" {
		g.kind = KindSimplex
	}

	return g, nil
}

// Evaluate returns the normalised octave sum at (x, y).
func (g *Generator) Evaluate(x, y float64, thresholds []float64) float64 {
	var value float64
	for i, src := range g.sources {
		f := g.octaves.frequencies[i]
		v := src.Eval2(x*f, y*f) * g.octaves.amplitudes[i]
		if i < len(thresholds) {
			v = deadZone(v, thresholds[i])
		}
		value += v
	}
	return clamp01(0.5 + 0.5*value/g.total)
}

// GetSeed returns the seed the generator was built from.
func (g *Generator) GetSeed() int64 {
	return g.seed
}

// Kind returns the noise algorithm in use.
func (g *Generator) Kind() Kind {
	return g.kind
}

// Octaves returns the octave table.
func (g *Generator) Octaves() Octaves {
	return g.octaves
}

func deadZone(v, t float64) float64 {
	if v > 0 {
		return max(0, v-t)
	}
	return min(0, v+t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
