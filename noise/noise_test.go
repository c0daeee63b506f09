// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/meadow/world"
	"math/rand"
	"testing"
)

var testParams = Params{Scale: 0.01, Offset: world.Vec2f{X: 100, Y: 250}}

func BenchmarkPerlin_At(b *testing.B) {
	const count = 1024
	field := New(testParams, 12345)
	points := make([]world.Vec2f, count)
	for i := range points {
		points[i] = world.Vec2f{X: rand.Float32()*200 - 100, Y: rand.Float32()*200 - 100}
	}
	b.ResetTimer()

	var acc float32
	for i := 0; i < b.N; i++ {
		acc += field.At(points[i&(count-1)])
	}
	_ = acc
}

func TestPerlin_Range(t *testing.T) {
	field := New(Params{Scale: 0.37, Offset: world.Vec2f{X: 3, Y: -7}}, 1)
	r := rand.New(rand.NewSource(0))

	for i := 0; i < 10000; i++ {
		// Far outside any domain is still valid input.
		p := world.Vec2f{X: r.Float32()*2e4 - 1e4, Y: r.Float32()*2e4 - 1e4}
		v := field.At(p)
		if v < 0 || v > 1 {
			t.Fatalf("At(%v) = %f out of [0, 1]", p, v)
		}
	}
}

func TestPerlin_Deterministic(t *testing.T) {
	a := New(testParams, 42)
	b := New(testParams, 42)

	for x := float32(-100); x <= 100; x += 7.5 {
		for y := float32(-100); y <= 100; y += 7.5 {
			p := world.Vec2f{X: x, Y: y}
			if va, vb := a.At(p), b.At(p); va != vb {
				t.Errorf("At(%v) differs between identical fields: %f != %f", p, va, vb)
			}
			if va, va2 := a.At(p), a.At(p); va != va2 {
				t.Errorf("At(%v) differs between calls: %f != %f", p, va, va2)
			}
		}
	}
}

func TestPerlin_Varies(t *testing.T) {
	field := New(testParams, 7)
	first := field.At(world.Vec2f{X: 1.5, Y: 2.5})

	for i := 1; i < 100; i++ {
		if field.At(world.Vec2f{X: float32(i)*13.3 + 1.5, Y: 2.5}) != first {
			return
		}
	}
	t.Error("expected field to vary across the domain")
}

func TestConstant(t *testing.T) {
	tests := []struct {
		c   Constant
		out float32
	}{
		{0.25, 0.25},
		{-1, 0},
		{2, 1},
	}

	for _, test := range tests {
		if v := test.c.At(world.Vec2f{X: 5}); v != test.out {
			t.Errorf("expected Constant(%f).At() = %f, got %f", float32(test.c), test.out, v)
		}
	}
}

func TestEvaluator_Independent(t *testing.T) {
	e := NewEvaluator(3, testParams, testParams)

	// Same params, different seeds: the fields must not be identical.
	for i := 0; i < 100; i++ {
		p := world.Vec2f{X: float32(i) * 9.1, Y: float32(i) * -4.3}
		if e.Density(p) != e.Biome(p) {
			return
		}
	}
	t.Error("expected density and biome fields to differ")
}
