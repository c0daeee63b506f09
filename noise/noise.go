// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/meadow/world"
	"github.com/aquilax/go-perlin"
)

const (
	// Perlin parameters shared by every field.
	alpha   = 2.0
	beta    = 2.0
	octaves = 3
)

// Field maps a ground position to a value in [0, 1].
// Implementations must be deterministic and accept any position.
type Field interface {
	At(pos world.Vec2f) float32
}

// Params places a field in noise space: pos*Scale + Offset.
type Params struct {
	Scale  float32     `json:"scale" yaml:"scale"`
	Offset world.Vec2f `json:"offset" yaml:"offset"`
}

// Perlin is a Field backed by gradient noise.
type Perlin struct {
	Params
	noise *perlin.Perlin
}

// New creates a Perlin field with a seed.
func New(params Params, seed int64) *Perlin {
	return &Perlin{
		Params: params,
		noise:  perlin.NewPerlin(alpha, beta, octaves, seed),
	}
}

// At implements Field.At.
func (f *Perlin) At(pos world.Vec2f) float32 {
	x := float64(pos.X*f.Scale + f.Offset.X)
	y := float64(pos.Y*f.Scale + f.Offset.Y)
	return clamp01(f.noise.Noise2D(x, y)*0.5 + 0.5)
}

// Constant is a Field with the same value everywhere.
type Constant float32

// At implements Field.At.
func (c Constant) At(world.Vec2f) float32 {
	return clamp01(float64(c))
}

// Evaluator holds the two independent fields that drive a meadow.
type Evaluator struct {
	DensityField Field
	BiomeField   Field
}

// NewEvaluator seeds the density and biome fields independently.
func NewEvaluator(seed int64, density, biome Params) Evaluator {
	return Evaluator{
		DensityField: New(density, seed),
		BiomeField:   New(biome, seed+1),
	}
}

// Density is how crowded flora should be at pos.
func (e Evaluator) Density(pos world.Vec2f) float32 {
	return e.DensityField.At(pos)
}

// Biome selects between meadow (low) and edge (high) species at pos.
func (e Evaluator) Biome(pos world.Vec2f) float32 {
	return e.BiomeField.At(pos)
}
