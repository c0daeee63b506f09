// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func BenchmarkVec2f_Angle(b *testing.B) {
	const count = 1024
	vectors := make([]Vec2f, count)
	for i := range vectors {
		vectors[i] = Vec2f{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
	}
	b.ResetTimer()

	var acc Angle
	for i := 0; i < b.N; i++ {
		v := vectors[i&(count-1)]
		acc += v.Angle()
	}
	_ = acc
}

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.02
}

func TestVec2f_Angle(t *testing.T) {
	tests := []struct {
		vec Vec2f
		ang Angle
	}{
		{Vec2f{0, 0}, 0},
		{Vec2f{1, 1}, Pi / 4},
		{Vec2f{0, 1}, Pi / 2},
		{Vec2f{0, -1}, Pi / 2 * 3},
	}

	for _, test := range tests {
		if !approx(0, test.ang.Diff(test.vec.Angle()).Float()) {
			t.Errorf("expected %v.Angle(): %s, got %s", test.vec, test.ang, test.vec.Angle())
		}
	}

	for i := float32(-10.0); i < 10; i += 0.25 {
		a := ToAngle(i)
		a2 := a.Vec2f().Angle()
		if !approx(0, a.Diff(a2).Float()) {
			t.Errorf("expected %s got %s", a, a2)
		}
	}
}

func TestVec2f_Embed(t *testing.T) {
	v := Vec2f{X: 3, Y: -4}
	e := v.Embed(2).Add(Vec3f{X: 1, Y: 1, Z: 1})

	if e != (Vec3f{X: 4, Y: 3, Z: -3}) {
		t.Errorf("expected {4 3 -3}, got %v", e)
	}
	if g := e.Ground(); g != (Vec2f{X: 4, Y: -3}) {
		t.Errorf("expected {4 -3}, got %v", g)
	}
}

func TestAABB_ContainsPoint(t *testing.T) {
	a := Centered(10, 10)

	tests := []struct {
		p  Vec2f
		in bool
	}{
		{Vec2f{0, 0}, true},
		{Vec2f{-5, -5}, true},
		{Vec2f{5, 5}, true},
		{Vec2f{5.01, 0}, false},
		{Vec2f{0, -5.01}, false},
	}

	for _, test := range tests {
		if got := a.ContainsPoint(test.p); got != test.in {
			t.Errorf("expected %v.ContainsPoint(%v): %t, got %t", a, test.p, test.in, got)
		}
	}

	if c := a.Center(); c != (Vec2f{}) {
		t.Errorf("expected centered AABB center at origin, got %v", c)
	}
}
