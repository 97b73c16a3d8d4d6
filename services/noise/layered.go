package noise

// Fixed term weights of the layered expansion.
var layerWeights = [4]float64{0.5, 0.25, 0.125, 0.0625}

// Rotation applied to the sampling point between terms, row-major.
var layerRotation = [4]float64{
	1.6, 1.2,
	-1.2, 1.6,
}

// LayeredNoise wraps a Primitive and sums four weighted evaluations of it, rotating the
// sampling point between terms so features do not line up with the axes.
// The expansion is always four terms regardless of the wrapped primitive's octave count.
type LayeredNoise struct {
	base Primitive
}

// NewLayeredNoise decorates base with the rotated four-term expansion.
func NewLayeredNoise(base Primitive) *LayeredNoise {
	return &LayeredNoise{base: base}
}

// FromOctaves builds a simplex-backed LayeredNoise from an exponential octave ladder.
func FromOctaves(octaveCount int, baseFrequency, persistence float64, seed int64) (*LayeredNoise, error) {
	return FromOctavesKind(KindSimplex, octaveCount, baseFrequency, persistence, seed)
}

// FromOctavesKind is FromOctaves with an explicit primitive kind.
func FromOctavesKind(kind Kind, octaveCount int, baseFrequency, persistence float64, seed int64) (*LayeredNoise, error) {
	octaves, err := NewOctaves(octaveCount, baseFrequency, persistence)
	if err != nil {
		return nil, err
	}
	gen, err := NewGenerator(kind, octaves, seed)
	if err != nil {
		return nil, err
	}
	return NewLayeredNoise(gen), nil
}

// Noise evaluates the layered expansion at (x, y). The result is approximately in [0, 1].
func (l *LayeredNoise) Noise(x, y float64, thresholds []float64) float64 {
	var f float64
	for i, w := range layerWeights {
		f += w * l.base.Evaluate(x, y, thresholds)
		if i < len(layerWeights)-1 {
			x, y = layerRotation[0]*x+layerRotation[1]*y, layerRotation[2]*x+layerRotation[3]*y
		}
	}
	return f
}

// Evaluate makes LayeredNoise a Primitive itself.
func (l *LayeredNoise) Evaluate(x, y float64, thresholds []float64) float64 {
	return l.Noise(x, y, thresholds)
}

// Base returns the wrapped primitive.
func (l *LayeredNoise) Base() Primitive {
	return l.base
}
