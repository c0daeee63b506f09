// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func BenchmarkAngle_Diff(b *testing.B) {
	const count = 1024
	angles := make([]Angle, count)
	for i := range angles {
		angles[i] = ToAngle(rand.Float32() * math32.Pi * 2)
	}
	b.ResetTimer()

	var acc Angle
	for i := 0; i < b.N; i++ {
		a := angles[i&(count-1)]
		b := angles[(i+count/2)&(count-1)]
		acc += a.Diff(b)
	}
	_ = acc
}

func TestToAngle(t *testing.T) {
	for i := float32(-20); i < 20; i += 0.1 {
		a := ToAngle(i)
		if a < 0 || a >= Pi*2 {
			t.Errorf("ToAngle(%f) = %f out of range", i, a.Float())
		}
	}
}

func TestAngle_Diff(t *testing.T) {
	errs := 0

	for step := float32(0.01); step < math32.Pi; step += 0.01 {
		for i := -math32.Pi * 2; i < math32.Pi*2; i += step {
			diff := ToAngle(i).Diff(ToAngle(i - step)).Float()
			if !approx(diff, step) {
				if errs++; errs > 20 {
					t.FailNow()
				}
				t.Errorf("%f expected %f, found %f", i, step, diff)
			}
		}
	}
}
