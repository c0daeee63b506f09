// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package poisson

import (
	"github.com/SoftbearStudios/meadow/world"
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

const tolerance = 1e-4

func constantRadius(r float32) RadiusFunc {
	return func(world.Vec2f) float32 { return r }
}

// gradientRadius shrinks from 3 on the left edge to the 0.2 floor on the right edge.
func gradientRadius(domain world.AABB) RadiusFunc {
	return func(pos world.Vec2f) float32 {
		t := world.Clamp01((pos.X - domain.X) / domain.Width)
		return world.Lerp(3, 0.2, t)
	}
}

func checkSpacing(t *testing.T, points []world.Vec2f, radiusAt RadiusFunc) {
	t.Helper()
	errs := 0
	for i, a := range points {
		for _, b := range points[i+1:] {
			required := world.Min(radius(radiusAt, a), radius(radiusAt, b))
			if d := a.Distance(b); d < required-tolerance {
				t.Errorf("%v and %v are %f apart, need %f", a, b, d, required)
				if errs++; errs > 10 {
					t.FailNow()
				}
			}
		}
	}
}

func checkContained(t *testing.T, points []world.Vec2f, domain world.AABB) {
	t.Helper()
	for _, p := range points {
		if !domain.ContainsPoint(p) {
			t.Fatalf("%v outside %v", p, domain)
		}
	}
}

func BenchmarkSampler_Sample(b *testing.B) {
	domain := world.Centered(200, 200)
	radiusAt := gradientRadius(domain)
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		New(domain, 1.2).Sample(radiusAt, 2500, rand.New(rand.NewSource(int64(i))))
	}
}

func TestSampler_Spacing(t *testing.T) {
	domain := world.Centered(60, 40)
	for _, radiusAt := range []RadiusFunc{constantRadius(1.2), constantRadius(0.5), gradientRadius(domain)} {
		points := New(domain, 1.2).Sample(radiusAt, 5000, rand.New(rand.NewSource(1)))
		if len(points) == 0 {
			t.Fatal("expected points")
		}
		checkSpacing(t, points, radiusAt)
		checkContained(t, points, domain)
	}
}

func TestSampler_Deterministic(t *testing.T) {
	domain := world.Centered(50, 50)
	radiusAt := gradientRadius(domain)

	a := New(domain, 1.2).Sample(radiusAt, 800, rand.New(rand.NewSource(99)))
	b := New(domain, 1.2).Sample(radiusAt, 800, rand.New(rand.NewSource(99)))

	// Reusing an instance must not leak state between calls.
	reused := New(domain, 1.2)
	reused.Sample(radiusAt, 300, rand.New(rand.NewSource(5)))
	c := reused.Sample(radiusAt, 800, rand.New(rand.NewSource(99)))

	if len(a) != len(b) || len(a) != len(c) {
		t.Fatalf("lengths differ: %d, %d, %d", len(a), len(b), len(c))
	}
	for i := range a {
		if a[i] != b[i] || a[i] != c[i] {
			t.Fatalf("point %d differs: %v, %v, %v", i, a[i], b[i], c[i])
		}
	}
}

func TestSampler_TargetCount(t *testing.T) {
	domain := world.Centered(100, 100)
	for _, target := range []int{1, 2, 17, 500} {
		points := New(domain, 1).Sample(constantRadius(1), target, rand.New(rand.NewSource(3)))
		if len(points) != target {
			t.Errorf("expected %d points in an open domain, got %d", target, len(points))
		}
	}
}

func TestSampler_Saturation(t *testing.T) {
	// Room for roughly 50 points at unit spacing.
	domain := world.Centered(7, 7)
	points := New(domain, 1).Sample(constantRadius(1), 1000000, rand.New(rand.NewSource(4)))

	if len(points) < 20 || len(points) > 100 {
		t.Errorf("expected about 50 points in a saturated domain, got %d", len(points))
	}
	checkSpacing(t, points, constantRadius(1))
	checkContained(t, points, domain)
}

func TestSampler_SmallMeadow(t *testing.T) {
	domain := world.Centered(10, 10)
	radiusAt := func(pos world.Vec2f) float32 {
		// Varies between the 0.2 floor and 2.5x base radius.
		return world.Clamp(1.2+pos.X*0.4, 0.2, 3)
	}

	points := New(domain, 1.2).Sample(radiusAt, 50, rand.New(rand.NewSource(12345)))

	if len(points) < 1 || len(points) > 50 {
		t.Fatalf("expected between 1 and 50 points, got %d", len(points))
	}
	checkSpacing(t, points, radiusAt)
	checkContained(t, points, world.AABBFrom(-5, -5, 10, 10))

	for i, a := range points {
		for _, b := range points[i+1:] {
			if a.Distance(b) < 0.2-tolerance {
				t.Errorf("%v and %v closer than floor", a, b)
			}
		}
	}
}

func TestSampler_RadiusFloor(t *testing.T) {
	domain := world.Centered(2, 2)
	// Zero and negative radii are floored rather than producing overlapping points.
	points := New(domain, 0).Sample(constantRadius(-1), 200, rand.New(rand.NewSource(8)))

	if len(points) != 200 {
		t.Errorf("expected 200 points, got %d", len(points))
	}
	checkSpacing(t, points, constantRadius(MinRadius))
}

func TestSampler_DegenerateDomain(t *testing.T) {
	domain := world.AABBFrom(0, 0, 0.001, 0.001)
	points := New(domain, 1).Sample(constantRadius(1), 100, rand.New(rand.NewSource(2)))

	if len(points) != 1 {
		t.Errorf("expected only the seed point, got %d", len(points))
	}
	checkContained(t, points, domain)
}

func TestGrid_cellOf(t *testing.T) {
	g := newGrid(world.Centered(10, 10), 1)

	tests := []struct {
		pos world.Vec2f
		id  cellID
	}{
		{world.Vec2f{X: -5, Y: -5}, cellID{0, 0}},
		{world.Vec2f{X: -4.5, Y: 0.5}, cellID{0, 5}},
		{world.Vec2f{X: 5, Y: 5}, cellID{9, 9}},
		{world.Vec2f{X: 100, Y: -100}, cellID{9, 0}},
	}

	for _, test := range tests {
		if id := g.cellOf(test.pos); id != test.id {
			t.Errorf("expected cellOf(%v) = %v, got %v", test.pos, test.id, id)
		}
	}
}

func TestGrid_forNeighbors(t *testing.T) {
	g := newGrid(world.Centered(10, 10), 1)
	g.insert(world.Vec2f{X: 0.5, Y: 0.5}, 0)
	g.insert(world.Vec2f{X: 0.6, Y: 0.6}, 1) // same cell
	g.insert(world.Vec2f{X: 3.5, Y: 0.5}, 2)

	var found []int32
	g.forNeighbors(world.Vec2f{X: 0.5, Y: 0.5}, 2, func(index int32) bool {
		found = append(found, index)
		return false
	})
	if len(found) != 2 {
		t.Errorf("expected 2 neighbors within 2 cells, got %v", found)
	}

	found = found[:0]
	g.forNeighbors(world.Vec2f{X: 0.5, Y: 0.5}, 3, func(index int32) bool {
		found = append(found, index)
		return false
	})
	if len(found) != 3 {
		t.Errorf("expected 3 neighbors within 3 cells, got %v", found)
	}
}

func TestSampler_LargeDomain(t *testing.T) {
	domain := world.Centered(1000, 1000)
	s := New(domain, 0.2)
	points := s.Sample(constantRadius(0.2), 100, rand.New(rand.NewSource(3)))

	if len(points) != 100 {
		t.Errorf("expected 100 points, got %d", len(points))
	}
	if n := len(s.grid.cells); n > len(points) {
		t.Errorf("expected at most %d occupied cells, got %d", len(points), n)
	}
	checkContained(t, points, domain)
	checkSpacing(t, points, constantRadius(0.2))
}

func TestGrid_reset(t *testing.T) {
	g := newGrid(world.Centered(10, 10), 1)
	g.insert(world.Vec2f{X: 1, Y: 1}, 0)
	g.insert(world.Vec2f{X: -3, Y: 2}, 1)
	g.reset()

	if len(g.cells) != 0 {
		t.Errorf("expected empty grid after reset, got %d cells", len(g.cells))
	}
	if g.forNeighbors(world.Vec2f{X: 1, Y: 1}, 10, func(int32) bool { return true }) {
		t.Error("expected no neighbors after reset")
	}
}

func TestCeilCells(t *testing.T) {
	tests := []struct {
		length, cellSize float32
		cells            int32
	}{
		{10, 1, 10},
		{10.5, 1, 11},
		{0, 1, 1},
		{math32.NaN(), 1, 1},
		{math32.Inf(1), 1, 1 << 30},
		{1e30, 1e-3, 1 << 30},
	}

	for _, test := range tests {
		if cells := ceilCells(test.length, test.cellSize); cells != test.cells {
			t.Errorf("expected ceilCells(%f, %f) = %d, got %d", test.length, test.cellSize, test.cells, cells)
		}
	}
}
