// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"github.com/chewxy/math32"
)

const Pi = Angle(math32.Pi)

// Angle is a yaw in radians.
type Angle float32

// ToAngle normalizes f into [0, 2π).
func ToAngle(f float32) Angle {
	const mod = math32.Pi * 2
	f = math32.Mod(f, mod)
	if f < 0 {
		f += mod
	}
	return Angle(f)
}

func (angle Angle) Vec2f() Vec2f {
	sin, cos := math32.Sincos(float32(angle))
	return Vec2f{
		X: cos,
		Y: sin,
	}
}

func (angle Angle) Diff(otherAngle Angle) (difference Angle) {
	difference = angle - otherAngle
	const mod = Angle(math32.Pi * 2)

	// Early check speeds it up from 25ns to 8ns
	if difference >= mod || difference < -mod {
		difference = Angle(math32.Mod(float32(difference), float32(mod)))
	}

	if difference < Angle(-math32.Pi) {
		difference += Angle(math32.Pi * 2)
	} else if difference >= Angle(math32.Pi) {
		difference -= Angle(math32.Pi * 2)
	}
	return
}

func (angle Angle) Float() float32 {
	return float32(angle)
}

func (angle Angle) Degrees() float32 {
	return float32(angle) * 180 / math32.Pi
}

func (angle Angle) String() string {
	return fmt.Sprintf("%.01f degrees", angle.Degrees())
}
