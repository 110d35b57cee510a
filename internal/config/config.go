// Package config loads, validates and materializes simulation
// configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/balloonsim/internal/balloon"
	"github.com/san-kum/balloonsim/internal/sim"
)

type Config struct {
	// Disc generates the layer schedule; an explicit Layers list overrides
	// it.
	Disc   DiscConfig    `yaml:"disc"`
	Layers []LayerConfig `yaml:"layers"`

	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`

	NeighborRadius float64 `yaml:"neighbor_radius"`
	Stiffness      float64 `yaml:"stiffness"`
	Damping        float64 `yaml:"damping"`
	Mass           float64 `yaml:"mass"`

	GravityX     float64       `yaml:"gravity_x"`
	GravityY     float64       `yaml:"gravity_y"`
	GroundHeight float64       `yaml:"ground_height"`
	Restitution  float64       `yaml:"restitution"`
	Bounds       *BoundsConfig `yaml:"bounds"`

	HitPadding    float64 `yaml:"hit_padding"`
	RupturePolicy string  `yaml:"rupture_policy"` // "all" or "radial"
	BlastRadius   float64 `yaml:"blast_radius"`

	ParticleRadius float64 `yaml:"particle_radius"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletRadius   float64 `yaml:"bullet_radius"`
	BulletRange    float64 `yaml:"bullet_range"`

	Dt       float64 `yaml:"dt"`
	MaxDt    float64 `yaml:"max_dt"`
	Duration float64 `yaml:"duration"`

	// RuptureAt schedules a click for headless runs; negative disables.
	RuptureAt float64 `yaml:"rupture_at"`
	RuptureX  float64 `yaml:"rupture_x"`
	RuptureY  float64 `yaml:"rupture_y"`
}

type DiscConfig struct {
	Radius  float64 `yaml:"radius"`
	Spacing float64 `yaml:"spacing"`
}

type LayerConfig struct {
	Radius float64 `yaml:"radius"`
	Count  int     `yaml:"count"`
}

type BoundsConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
}

func Default() *Config {
	p := balloon.DefaultParams()
	return &Config{
		Disc:           DiscConfig{Radius: 0.6, Spacing: 0.08},
		CenterX:        p.Center.X,
		CenterY:        p.Center.Y,
		NeighborRadius: p.NeighborRadius,
		Stiffness:      p.Stiffness,
		Damping:        p.Damping,
		Mass:           p.Mass,
		GravityX:       p.Gravity.X,
		GravityY:       p.Gravity.Y,
		GroundHeight:   p.GroundHeight,
		Restitution:    p.Restitution,
		HitPadding:     p.HitPadding,
		RupturePolicy:  "all",
		BlastRadius:    p.BlastRadius,
		ParticleRadius: p.ParticleRadius,
		BulletSpeed:    p.BulletSpeed,
		BulletRadius:   p.BulletRadius,
		BulletRange:    p.BulletRange,
		Dt:             1.0 / 60.0,
		MaxDt:          p.MaxDt,
		Duration:       10.0,
		RuptureAt:      1.0,
		RuptureX:       p.Center.X,
		RuptureY:       p.Center.Y,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on configuration that could never build a valid
// simulation. Construction re-checks the physical constants; this catches
// the run-level fields too.
func (c *Config) Validate() error {
	if len(c.Layers) == 0 && (c.Disc.Radius <= 0 || c.Disc.Spacing <= 0) {
		return fmt.Errorf("config: disc radius and spacing must be positive when no explicit layers are given")
	}
	for i, l := range c.Layers {
		if l.Radius < 0 || l.Count < 0 {
			return fmt.Errorf("config: layer %d: radius and count must be non-negative", i)
		}
	}
	switch c.RupturePolicy {
	case "all", "radial":
	default:
		return fmt.Errorf("config: unknown rupture policy %q (want \"all\" or \"radial\")", c.RupturePolicy)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.BulletSpeed < 0 || c.BulletRadius < 0 || c.BulletRange < 0 {
		return fmt.Errorf("config: bullet parameters must be non-negative")
	}
	return nil
}

// Params translates the config into balloon construction parameters.
func (c *Config) Params() balloon.Params {
	p := balloon.DefaultParams()
	p.Center = balloon.Vec2{X: c.CenterX, Y: c.CenterY}
	if len(c.Layers) > 0 {
		p.Layers = make([]balloon.Layer, len(c.Layers))
		for i, l := range c.Layers {
			p.Layers[i] = balloon.Layer{Radius: l.Radius, Count: l.Count}
		}
	} else {
		p.Layers = balloon.RingSchedule(c.Disc.Radius, c.Disc.Spacing)
	}
	p.NeighborRadius = c.NeighborRadius
	p.Stiffness = c.Stiffness
	p.Damping = c.Damping
	p.Mass = c.Mass
	p.Gravity = balloon.Vec2{X: c.GravityX, Y: c.GravityY}
	p.GroundHeight = c.GroundHeight
	p.Restitution = c.Restitution
	if c.Bounds != nil {
		p.Bounds = &balloon.Bounds{MinX: c.Bounds.MinX, MaxX: c.Bounds.MaxX}
	}
	p.HitPadding = c.HitPadding
	if c.RupturePolicy == "radial" {
		p.Policy = balloon.BreakRadial
	} else {
		p.Policy = balloon.BreakAll
	}
	p.BlastRadius = c.BlastRadius
	p.ParticleRadius = c.ParticleRadius
	p.BulletSpeed = c.BulletSpeed
	p.BulletRadius = c.BulletRadius
	p.BulletRange = c.BulletRange
	p.MaxDt = c.MaxDt
	return p
}

// Build validates the config and constructs the balloon.
func (c *Config) Build() (*balloon.State, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return balloon.New(c.Params())
}

// RunConfig translates the run-level fields for the sim runner.
func (c *Config) RunConfig() sim.Config {
	return sim.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		FrameEvery:    1,
		RuptureAt:     c.RuptureAt,
		RupturePoint:  balloon.Vec2{X: c.RuptureX, Y: c.RuptureY},
		ValidateState: true,
	}
}
