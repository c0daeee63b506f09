// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package poisson

import (
	"github.com/SoftbearStudios/meadow/world"
	"github.com/chewxy/math32"
)

const (
	// MinRadius is the floor applied to every radius.
	MinRadius = 0.01

	// candidatesPerPoint is how many darts are thrown around an active point before it is retired.
	candidatesPerPoint = 30

	// minReach is the neighborhood searched at base radius, in cells.
	minReach = 2
)

// RadiusFunc returns the minimum spacing required at a position.
type RadiusFunc func(pos world.Vec2f) float32

// Source is a uniform random source. *rand.Rand implements it.
type Source interface {
	// Float32 returns a value in [0, 1).
	Float32() float32
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Sampler generates variable radius Poisson disk samples over a rectangle.
// It is not safe for concurrent use.
type Sampler struct {
	domain     world.AABB
	baseRadius float32
	grid       grid

	points []world.Vec2f
	radii  []float32 // radius at each point when it was accepted
	active []int32   // indices into points, in insertion order
}

// New creates a Sampler whose grid cell size is derived from baseRadius.
// domain must have positive width and height.
func New(domain world.AABB, baseRadius float32) *Sampler {
	baseRadius = world.Max(MinRadius, baseRadius)
	return &Sampler{
		domain:     domain,
		baseRadius: baseRadius,
		grid:       newGrid(domain, baseRadius/math32.Sqrt(2)),
	}
}

// Sample grows a point set from one random seed point until targetCount points are accepted
// or no active point can place another. No two returned points a, b are closer than
// min(radiusAt(a), radiusAt(b)). Points are returned in acceptance order and the slice is
// owned by the caller.
func (s *Sampler) Sample(radiusAt RadiusFunc, targetCount int, rng Source) []world.Vec2f {
	s.reset()
	if targetCount < 1 {
		return nil
	}

	first := world.Vec2f{
		X: rng.Float32()*s.domain.Width + s.domain.X,
		Y: rng.Float32()*s.domain.Height + s.domain.Y,
	}
	s.add(first, radius(radiusAt, first))

	for len(s.active) > 0 && len(s.points) < targetCount {
		i := rng.Intn(len(s.active))
		center := s.points[s.active[i]]
		rCenter := radius(radiusAt, center)

		found := false
		for k := 0; k < candidatesPerPoint; k++ {
			angle := world.Angle(rng.Float32() * math32.Pi * 2)
			distance := rCenter * (1 + rng.Float32()) // [r, 2r)
			candidate := center.AddScaled(angle.Vec2f(), distance)

			if !s.domain.ContainsPoint(candidate) {
				continue
			}

			rCandidate := radius(radiusAt, candidate)
			if s.farEnough(candidate, rCandidate, world.Min(rCenter, rCandidate)) {
				s.add(candidate, rCandidate)
				found = true
				break
			}
		}

		if !found {
			// Exhausted, but stays accepted.
			s.active = append(s.active[:i], s.active[i+1:]...)
		}
	}

	out := make([]world.Vec2f, len(s.points))
	copy(out, s.points)
	return out
}

func radius(radiusAt RadiusFunc, pos world.Vec2f) float32 {
	return world.Max(MinRadius, radiusAt(pos))
}

func (s *Sampler) add(pos world.Vec2f, r float32) {
	index := int32(len(s.points))
	s.points = append(s.points, pos)
	s.radii = append(s.radii, r)
	s.active = append(s.active, index)
	s.grid.insert(pos, index)
}

// farEnough tests candidate against every accepted point that could be too close.
// The required spacing to a neighbor q is the larger of minDist and min(r(q), rCandidate),
// so the pairwise guarantee holds whichever point was the growth center.
func (s *Sampler) farEnough(candidate world.Vec2f, rCandidate, minDist float32) bool {
	// Neither bound exceeds rCandidate, so that is as far as a conflict can be.
	reach := int32(math32.Ceil(rCandidate / s.grid.cellSize))
	if reach < minReach {
		reach = minReach
	}

	points := s.points
	radii := s.radii
	return !s.grid.forNeighbors(candidate, reach, func(index int32) bool {
		required := world.Max(minDist, world.Min(radii[index], rCandidate))
		return candidate.DistanceSquared(points[index]) < required*required
	})
}

func (s *Sampler) reset() {
	s.points = s.points[:0]
	s.radii = s.radii[:0]
	s.active = s.active[:0]
	s.grid.reset()
}
