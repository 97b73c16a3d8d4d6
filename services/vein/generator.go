package vein

import (
	"fmt"
	"time"
)

// MaxGridCells bounds the number of cells a single request may allocate.
const MaxGridCells = 1 << 24

// Generator produces grids of packed vein values. It holds no mutable state, so one instance
// can serve concurrent requests.
type Generator struct {
	sampler *Sampler
	seed    int64
	logger  LoggerInterface
}

// NewGenerator creates a generator from cfg. A nil logger uses the global logger.
func NewGenerator(cfg Config, logger LoggerInterface) (*Generator, error) {
	sampler, err := NewSampler(cfg)
	if err != nil {
		return nil, err
	}
	gen := NewGeneratorFromSampler(sampler, cfg.Seed, logger)
	gen.logger.Debug("Created vein generator",
		"seed", cfg.Seed,
		"octaves", cfg.Octaves,
		"persistence", cfg.Persistence,
		"primitive", cfg.Primitive,
		"cull_threshold", cfg.CullThreshold,
	)
	return gen, nil
}

// NewGeneratorFromSampler wraps an existing sampler. seed salts the diffusion hash.
func NewGeneratorFromSampler(sampler *Sampler, seed int64, logger LoggerInterface) *Generator {
	if logger == nil {
		logger = NewLoggerAdapter(nil)
	}
	return &Generator{
		sampler: sampler,
		seed:    seed,
		logger:  logger.With("component", "vein-generator"),
	}
}

// Sampler returns the underlying channel sampler.
func (g *Generator) Sampler() *Sampler {
	return g.sampler
}

// GetSeed returns the generator seed.
func (g *Generator) GetSeed() int64 {
	return g.seed
}

// Generate samples every cell of a width*height grid at (originX+x, originZ+z).
// The result is row-major, indexed z*width + x. Nil thresholds use the configured table.
func (g *Generator) Generate(originX, originZ, width, height int, flags Flags, thresholds []float64) ([]ARGB, error) {
	if err := validateGrid(width, height); err != nil {
		return nil, err
	}
	if err := flags.Validate(); err != nil {
		return nil, err
	}
	if thresholds == nil {
		thresholds = g.sampler.thresholds
	} else if err := g.sampler.ValidateThresholds(thresholds); err != nil {
		return nil, err
	}

	g.logger.Debug("Generating vein layer", "origin_x", originX, "origin_z", originZ, "width", width, "height", height, "flags", uint32(flags))

	out := make([]ARGB, width*height)
	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			out[z*width+x] = g.sampler.Sample(originX+x, originZ+z, flags, thresholds)
		}
	}
	return out, nil
}

// GenerateLayer is Generate with DefaultLayerFlags and the configured thresholds.
func (g *Generator) GenerateLayer(originX, originZ, width, height int) ([]ARGB, error) {
	return g.Generate(originX, originZ, width, height, DefaultLayerFlags, nil)
}

// coarseIndex is the last coarse cell written by the stepped scan; ok is false before the
// first write.
type coarseIndex struct {
	index int
	ok    bool
}

// GenerateStepped samples a smallW*smallH grid by scanning the targetW*targetH grid it
// stands for. Each target cell maps to coarse cell (x*smallW/targetW, z*smallH/targetH); the
// sampler only runs when that coarse index differs from the previous scanned cell, at the
// target coordinate that started the run. A coarse cell spanning several target rows is
// rewritten at the start of each of them, so its value comes from the first column of its
// last row, not from an average or the cell centre.
func (g *Generator) GenerateStepped(originX, originZ, smallW, smallH, targetW, targetH int, flags Flags) ([]ARGB, error) {
	if err := validateGrid(smallW, smallH); err != nil {
		return nil, err
	}
	if err := validateGrid(targetW, targetH); err != nil {
		return nil, err
	}
	if smallW > targetW || smallH > targetH {
		return nil, fmt.Errorf("%w: coarse grid %dx%d larger than target %dx%d", ErrInvalidRequest, smallW, smallH, targetW, targetH)
	}
	if err := flags.Validate(); err != nil {
		return nil, err
	}

	out := make([]ARGB, smallW*smallH)
	thresholds := g.sampler.thresholds
	samples := 0

	var prev coarseIndex
	for z := 0; z < targetH; z++ {
		lz := z * smallH / targetH
		for x := 0; x < targetW; x++ {
			li := lz*smallW + x*smallW/targetW
			if prev.ok && prev.index == li {
				continue
			}
			prev = coarseIndex{index: li, ok: true}
			out[li] = g.sampler.Sample(originX+x, originZ+z, flags, thresholds)
			samples++
		}
	}

	g.logger.Debug("Generated stepped vein layer", "origin_x", originX, "origin_z", originZ,
		"small", fmt.Sprintf("%dx%d", smallW, smallH), "target", fmt.Sprintf("%dx%d", targetW, targetH), "samples", samples)
	return out, nil
}

// GenerateSized samples a smallSize grid via GenerateStepped and upsamples it to largeSize
// with nearest-neighbour lookup.
func (g *Generator) GenerateSized(originX, originZ, smallSize, largeSize int, flags Flags) ([]ARGB, error) {
	small, err := g.GenerateStepped(originX, originZ, smallSize, smallSize, largeSize, largeSize, flags)
	if err != nil {
		return nil, err
	}

	large := make([]ARGB, largeSize*largeSize)
	for z := 0; z < largeSize; z++ {
		pz := z * smallSize / largeSize
		for x := 0; x < largeSize; x++ {
			large[z*largeSize+x] = small[pz*smallSize+x*smallSize/largeSize]
		}
	}
	return large, nil
}

// DiffuseOptions configures GenerateDiffuse.
type DiffuseOptions struct {
	SmallSize       int
	LargeSize       int
	Flags           Flags
	DiffusionRadius int
	BlurRadius      int
	MaxTries        int
	Padding         int
	// IndependentAxes gives each axis its own diffusion offset.
	IndependentAxes bool
}

// DefaultDiffuseOptions returns options with the default retry count and padding.
func DefaultDiffuseOptions(smallSize, largeSize, diffusionRadius, blurRadius int) DiffuseOptions {
	return DiffuseOptions{
		SmallSize:       smallSize,
		LargeSize:       largeSize,
		DiffusionRadius: diffusionRadius,
		BlurRadius:      blurRadius,
		MaxTries:        DefaultMaxTries,
		Padding:         DefaultPadding,
	}
}

// Validate checks the options before any sampling happens.
func (o DiffuseOptions) Validate() error {
	if o.SmallSize <= 0 || o.LargeSize <= 0 {
		return fmt.Errorf("%w: sizes must be positive, got small=%d large=%d", ErrInvalidRequest, o.SmallSize, o.LargeSize)
	}
	if o.SmallSize > o.LargeSize {
		return fmt.Errorf("%w: small size %d exceeds large size %d", ErrInvalidRequest, o.SmallSize, o.LargeSize)
	}
	if o.DiffusionRadius <= 0 {
		return fmt.Errorf("%w: diffusion radius must be positive, got %d", ErrInvalidRequest, o.DiffusionRadius)
	}
	if o.BlurRadius < 0 {
		return fmt.Errorf("%w: blur radius must not be negative, got %d", ErrInvalidRequest, o.BlurRadius)
	}
	if o.MaxTries <= 0 {
		return fmt.Errorf("%w: max tries must be positive, got %d", ErrInvalidRequest, o.MaxTries)
	}
	if o.Padding < 0 {
		return fmt.Errorf("%w: padding must not be negative, got %d", ErrInvalidRequest, o.Padding)
	}
	return o.Flags.Validate()
}

// step is half the upsampling ratio; the padding border is Padding*step cells wide.
func (o DiffuseOptions) step() int {
	return o.LargeSize / o.SmallSize / 2
}

// PaddedSize is the side length of the working canvas.
func (o DiffuseOptions) PaddedSize() int {
	return o.LargeSize + 2*o.Padding*o.step()
}

// GenerateDiffuse builds a LargeSize*LargeSize grid from a SmallSize coarse sampling,
// breaking up the upsampling blocks with hash-jittered diffusion and an optional box blur.
// The work happens on a canvas padded by Padding*step cells per side so edge cells have
// neighbours to draw from; the padding is cropped away at the end.
func (g *Generator) GenerateDiffuse(originX, originZ int, opts DiffuseOptions) ([]ARGB, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	border := opts.Padding * opts.step()
	paddedSize := opts.PaddedSize()
	if err := validateGrid(paddedSize, paddedSize); err != nil {
		return nil, err
	}

	start := time.Now()

	padded, err := g.GenerateSized(originX-border, originZ-border, opts.SmallSize, paddedSize, opts.Flags)
	if err != nil {
		return nil, err
	}

	diffused := Diffusion{
		Radius:          opts.DiffusionRadius,
		MaxTries:        opts.MaxTries,
		Seed:            g.seed,
		IndependentAxes: opts.IndependentAxes,
	}.Apply(padded, paddedSize)

	if opts.BlurRadius > 0 {
		BoxBlur{Radius: opts.BlurRadius}.Apply(diffused, paddedSize, paddedSize)
	}

	view, err := NewPaddedGrid(diffused, paddedSize, border)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("Generated diffused vein layer", "origin_x", originX, "origin_z", originZ,
		"large_size", opts.LargeSize, "padded_size", paddedSize, "duration", time.Since(start))
	return view.Crop(), nil
}

func validateGrid(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidRequest, width, height)
	}
	if width > MaxGridCells/height {
		return fmt.Errorf("%w: grid %dx%d exceeds %d cells", ErrInvalidRequest, width, height, MaxGridCells)
	}
	return nil
}
