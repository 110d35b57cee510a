package config

import "sort"

// Presets are named starting points; flags and config files override them.
var Presets = map[string]func() *Config{
	// The stock water balloon: popped by a scheduled click after a second.
	"classic": Default,

	// Stiffer, lightly damped shell that wobbles visibly before the pop.
	"jelly": func() *Config {
		c := Default()
		c.Stiffness = 600
		c.Damping = 0.8
		c.RuptureAt = 2.0
		return c
	},

	// Low gravity, bouncy ground.
	"moon": func() *Config {
		c := Default()
		c.GravityY = -1.62
		c.Restitution = 0.7
		c.Duration = 20
		c.RuptureAt = 3.0
		return c
	},

	// Radial fracture instead of a full pop: only springs near the hit
	// point break.
	"fracture": func() *Config {
		c := Default()
		c.RupturePolicy = "radial"
		c.BlastRadius = 0.25
		return c
	},

	// Dense shell in a box, never ruptured; good for stability checks.
	"sealed": func() *Config {
		c := Default()
		c.Disc = DiscConfig{Radius: 0.5, Spacing: 0.06}
		c.NeighborRadius = 0.13
		c.Bounds = &BoundsConfig{MinX: -1.5, MaxX: 1.5}
		c.RuptureAt = -1
		return c
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	f, ok := Presets[name]
	if !ok {
		return nil
	}
	return f()
}

// ListPresets returns the preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
