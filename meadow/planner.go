// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package meadow

import (
	"github.com/SoftbearStudios/meadow/noise"
	"github.com/SoftbearStudios/meadow/poisson"
	"github.com/SoftbearStudios/meadow/world"
	"github.com/chewxy/math32"
	"log"
)

const (
	// minRadius and maxRadiusFactor bound the spacing between flora.
	minRadius       = 0.2
	maxRadiusFactor = 2.5
	// minDensityMultiplier keeps a zero multiplier from dividing by zero.
	minDensityMultiplier = 0.2
)

// Scale jitter bands as [base, base+spread).
var (
	floraScale    = scaleBand{base: 0.85, spread: 0.3, min: 0.7, max: 1.3}
	landmarkScale = scaleBand{base: 0.9, spread: 0.6, min: 0.9, max: 1.5}
	waterScale    = scaleBand{base: 0.8, spread: 0.8, min: 0.8, max: 1.6}
)

type scaleBand struct {
	base, spread float32
	min, max     float32
}

func (band scaleBand) sample(rng poisson.Source) float32 {
	return world.Clamp(band.base+rng.Float32()*band.spread, band.min, band.max)
}

// Planner turns a Config into a Layout. A Planner keeps no state between
// builds, so the same Config and random sequence always produce the same Layout.
type Planner struct {
	Config
	// Fields defaults to Perlin noise seeded from Config.Seed.
	Fields noise.Evaluator
	// Logger receives a summary after each build if not nil.
	Logger *log.Logger
}

// NewPlanner clamps config and seeds its noise fields.
func NewPlanner(config Config) *Planner {
	config = config.Clamp()
	return &Planner{
		Config: config,
		Fields: noise.NewEvaluator(config.Seed, config.DensityNoise, config.BiomeNoise),
	}
}

// Build is shorthand for NewPlanner(config).Build(rng).Placements.
func Build(config Config, rng poisson.Source) []Placement {
	layout := NewPlanner(config).Build(rng)
	return layout.Placements
}

// RadiusAt is the flora spacing at pos. Denser areas get smaller spacing.
func (p *Planner) RadiusAt(pos world.Vec2f) float32 {
	base := p.BaseRadius
	r := world.Lerp(base*(1-p.RadiusVariance), base*(1+p.RadiusVariance), 1-p.Fields.Density(pos))
	r /= world.Max(minDensityMultiplier, p.DensityMultiplier)
	return world.Clamp(r, minRadius, base*maxRadiusFactor)
}

// Build samples flora, then scatters landmarks and water. All randomness is drawn
// from rng in a fixed order.
func (p *Planner) Build(rng poisson.Source) Layout {
	domain := p.Domain()
	layout := Layout{
		Name:   p.Name,
		Seed:   p.Seed,
		Domain: domain,
		Origin: p.Origin,
	}

	points := poisson.New(domain, p.BaseRadius).Sample(p.RadiusAt, p.CandidateCount, rng)
	layout.Placements = make([]Placement, 0, len(points)/2+p.LandmarkCount+p.WaterCount)

	for _, pos := range points {
		biome := Classify(p.Fields.Biome(pos), p.BiomeThreshold)
		list := p.speciesOf(biome)
		if len(list) == 0 {
			continue
		}

		// Sparser areas keep fewer of their samples.
		if !keep(p.Fields.Density(pos), rng) {
			continue
		}

		species := list[rng.Intn(len(list))]
		if species.Name == "" {
			continue
		}

		placement := p.place(CategoryFlora, species, pos, floraScale, rng)
		placement.Biome = biome
		layout.Placements = append(layout.Placements, placement)
	}

	layout.Placements = p.scatter(layout.Placements, CategoryLandmark, p.Landmarks, p.LandmarkCount, landmarkScale, rng)
	layout.Placements = p.scatter(layout.Placements, CategoryWater, p.WaterSources, p.WaterCount, waterScale, rng)

	if p.Logger != nil {
		p.Logger.Printf("[meadow %s] %s", p.Name, layout.Summary())
	}
	return layout
}

func (p *Planner) speciesOf(biome Biome) []Species {
	if biome == BiomeEdge {
		return p.EdgeSpecies
	}
	return p.MeadowSpecies
}

// keep draws once and survives with probability density.
func keep(density float32, rng poisson.Source) bool {
	return rng.Float32() <= density
}

// scatter places count records at uniform positions with no spacing constraint.
func (p *Planner) scatter(placements []Placement, category Category, list []Species, count int, band scaleBand, rng poisson.Source) []Placement {
	if len(list) == 0 || count <= 0 {
		return placements
	}

	domain := p.Domain()
	for i := 0; i < count; i++ {
		pos := world.Vec2f{
			X: rng.Float32()*domain.Width + domain.X,
			Y: rng.Float32()*domain.Height + domain.Y,
		}
		species := list[rng.Intn(len(list))]
		if species.Name == "" {
			continue
		}
		placements = append(placements, p.place(category, species, pos, band, rng))
	}
	return placements
}

func (p *Planner) place(category Category, species Species, pos world.Vec2f, band scaleBand, rng poisson.Source) Placement {
	var yaw world.Angle
	if species.Footprint {
		yaw = world.ToAngle(float32(pos.Sub(p.Domain().Center()).Angle()))
	} else {
		yaw = world.Angle(rng.Float32() * math32.Pi * 2)
	}

	return Placement{
		Category: category,
		Species:  species.Name,
		Position: pos.Embed(p.GroundY).Add(p.Origin),
		Yaw:      yaw,
		Scale:    band.sample(rng),
	}
}
