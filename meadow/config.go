// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package meadow

import (
	"github.com/SoftbearStudios/meadow/noise"
	"github.com/SoftbearStudios/meadow/world"
	"github.com/chewxy/math32"
)

const (
	// MinSize is the smallest width or height of a meadow in meters.
	MinSize = 10
	// MinBaseRadius is the smallest spacing between flora at neutral density.
	MinBaseRadius = 0.2
	// MaxDensityMultiplier bounds Config.DensityMultiplier.
	MaxDensityMultiplier = 2

	MinCandidateCount = 100
	MaxCandidateCount = 20000
)

// Config describes one meadow. All values are clamped by Clamp before a build.
type Config struct {
	Name string `json:"name" yaml:"name"`

	// World
	Width   float32     `json:"width" yaml:"width"`
	Height  float32     `json:"height" yaml:"height"`
	Seed    int64       `json:"seed" yaml:"seed"`
	Origin  world.Vec3f `json:"origin" yaml:"origin"`
	GroundY float32     `json:"groundY" yaml:"ground_y"`

	// Density and biome noise
	DensityMultiplier float32      `json:"densityMultiplier" yaml:"density_multiplier"`
	DensityNoise      noise.Params `json:"densityNoise" yaml:"density_noise"`
	BiomeNoise        noise.Params `json:"biomeNoise" yaml:"biome_noise"`
	BiomeThreshold    float32      `json:"biomeThreshold" yaml:"biome_threshold"`

	// Poisson sampling
	BaseRadius     float32 `json:"baseRadius" yaml:"base_radius"`
	RadiusVariance float32 `json:"radiusVariance" yaml:"radius_variance"`
	CandidateCount int     `json:"candidateCount" yaml:"candidate_count"`

	// Secondary placements
	LandmarkCount int `json:"landmarkCount" yaml:"landmark_count"`
	WaterCount    int `json:"waterCount" yaml:"water_count"`

	MeadowSpecies []Species `json:"meadowSpecies" yaml:"meadow_species"`
	EdgeSpecies   []Species `json:"edgeSpecies" yaml:"edge_species"`
	Landmarks     []Species `json:"landmarks" yaml:"landmarks"`
	WaterSources  []Species `json:"waterSources" yaml:"water_sources"`
}

// DefaultConfig is a 200m meadow with no species.
func DefaultConfig() Config {
	return Config{
		Width:             200,
		Height:            200,
		Seed:              12345,
		DensityMultiplier: 1,
		DensityNoise:      noise.Params{Scale: 0.01, Offset: world.Vec2f{X: 100, Y: 250}},
		BiomeNoise:        noise.Params{Scale: 0.005, Offset: world.Vec2f{X: 420, Y: 1337}},
		BiomeThreshold:    0.55,
		BaseRadius:        1.2,
		RadiusVariance:    0.5,
		CandidateCount:    2500,
		LandmarkCount:     10,
		WaterCount:        3,
	}
}

// Clamp returns a copy of config with every numeric field forced into its valid range.
// Degenerate values, including NaN and infinities, fall back to the smallest valid value
// rather than being rejected.
func (config Config) Clamp() Config {
	config.Width = atLeast(config.Width, MinSize)
	config.Height = atLeast(config.Height, MinSize)
	config.Origin = world.Vec3f{X: finite(config.Origin.X), Y: finite(config.Origin.Y), Z: finite(config.Origin.Z)}
	config.GroundY = finite(config.GroundY)
	config.DensityMultiplier = within(config.DensityMultiplier, 0, MaxDensityMultiplier)
	config.DensityNoise = clampNoise(config.DensityNoise)
	config.BiomeNoise = clampNoise(config.BiomeNoise)
	config.BiomeThreshold = within(config.BiomeThreshold, 0, 1)
	config.BaseRadius = atLeast(config.BaseRadius, MinBaseRadius)
	config.RadiusVariance = within(config.RadiusVariance, 0, 1)
	config.CandidateCount = world.ClampInt(config.CandidateCount, MinCandidateCount, MaxCandidateCount)
	if config.LandmarkCount < 0 {
		config.LandmarkCount = 0
	}
	if config.WaterCount < 0 {
		config.WaterCount = 0
	}
	return config
}

func clampNoise(params noise.Params) noise.Params {
	params.Scale = atLeast(params.Scale, 0)
	params.Offset = world.Vec2f{X: finite(params.Offset.X), Y: finite(params.Offset.Y)}
	return params
}

// atLeast replaces values below minimum or not finite with minimum.
func atLeast(v, minimum float32) float32 {
	if !(v >= minimum) || math32.IsInf(v, 1) {
		return minimum
	}
	return v
}

func within(v, minimum, maximum float32) float32 {
	if !(v >= minimum) {
		return minimum
	}
	if v > maximum {
		return maximum
	}
	return v
}

func finite(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	return v
}

// Domain is the placement rectangle, centered on the origin in local space.
func (config Config) Domain() world.AABB {
	return world.Centered(config.Width, config.Height)
}
