package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VoidMesh/orevein/services/noise"
	"github.com/VoidMesh/orevein/services/vein"
)

// Profile is the on-disk form of a vein generator tuning. Keys missing from the file keep
// their default values.
type Profile struct {
	Seed             int64     `yaml:"seed"`
	Octaves          int       `yaml:"octaves"`
	Persistence      float64   `yaml:"persistence"`
	ScaleA           float64   `yaml:"scale_a"`
	ScaleR           float64   `yaml:"scale_r"`
	ScaleG           float64   `yaml:"scale_g"`
	ScaleB           float64   `yaml:"scale_b"`
	RidgedMultiplier float64   `yaml:"ridged_multiplier"`
	CullThreshold    float64   `yaml:"cull_threshold"`
	Thresholds       []float64 `yaml:"thresholds,omitempty"`
	Primitive        string    `yaml:"primitive"`
}

// DefaultProfile mirrors vein.DefaultConfig(0).
func DefaultProfile() Profile {
	return ProfileFromConfig(vein.DefaultConfig(0))
}

// ProfileFromConfig converts a generator configuration to its file form.
func ProfileFromConfig(cfg vein.Config) Profile {
	return Profile{
		Seed:             cfg.Seed,
		Octaves:          cfg.Octaves,
		Persistence:      cfg.Persistence,
		ScaleA:           cfg.ScaleA,
		ScaleR:           cfg.ScaleR,
		ScaleG:           cfg.ScaleG,
		ScaleB:           cfg.ScaleB,
		RidgedMultiplier: cfg.RidgedMultiplier,
		CullThreshold:    cfg.CullThreshold,
		Thresholds:       cfg.Thresholds,
		Primitive:        string(cfg.Primitive),
	}
}

// ParseProfile decodes YAML over the defaults.
func ParseProfile(raw []byte) (Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("vein profile: %w", err)
	}
	return p, nil
}

// LoadProfile reads and decodes a profile file.
func LoadProfile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(raw)
}

// Config converts the profile and validates the result.
func (p Profile) Config() (vein.Config, error) {
	cfg := vein.Config{
		Seed:             p.Seed,
		Octaves:          p.Octaves,
		Persistence:      p.Persistence,
		ScaleA:           p.ScaleA,
		ScaleR:           p.ScaleR,
		ScaleG:           p.ScaleG,
		ScaleB:           p.ScaleB,
		RidgedMultiplier: p.RidgedMultiplier,
		CullThreshold:    p.CullThreshold,
		Thresholds:       p.Thresholds,
		Primitive:        noise.Kind(p.Primitive),
	}
	if err := cfg.Validate(); err != nil {
		return vein.Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the profile as YAML.
func (p Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// VeinConfig resolves the generator configuration: the profile file when one is set,
// otherwise the defaults, with the seed override applied last.
func (g GeneratorConfig) VeinConfig() (vein.Config, error) {
	profile := DefaultProfile()
	if g.ProfilePath != "" {
		var err error
		if profile, err = LoadProfile(g.ProfilePath); err != nil {
			return vein.Config{}, err
		}
	}
	if g.SeedOverride != nil {
		profile.Seed = *g.SeedOverride
	}
	return profile.Config()
}
