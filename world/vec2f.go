// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math"
)

// Vec2f is a point on the ground plane. Y maps to the world Z axis.
type Vec2f struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

func (vec Vec2f) Mul(factor float32) Vec2f {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2f) Add(otherVec Vec2f) Vec2f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2f) AddScaled(otherVec Vec2f, factor float32) Vec2f {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	return vec
}

func (vec Vec2f) Sub(otherVec Vec2f) Vec2f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2f) Angle() Angle {
	return Angle(math32.Atan2(vec.Y, vec.X))
}

func (vec Vec2f) Distance(otherVec Vec2f) float32 {
	return vec.Sub(otherVec).Length()
}

func (vec Vec2f) DistanceSquared(otherVec Vec2f) float32 {
	x := vec.X - otherVec.X
	y := vec.Y - otherVec.Y
	return x*x + y*y
}

func (vec Vec2f) Length() float32 {
	return math32.Hypot(vec.X, vec.Y)
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func (vec Vec2f) Floor() Vec2f {
	// Use math.Floor instead because it uses assembly
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}

// Embed lifts vec onto the plane at height y.
func (vec Vec2f) Embed(y float32) Vec3f {
	return Vec3f{X: vec.X, Y: y, Z: vec.Y}
}

// Vec3f is a world space position. Y is up.
type Vec3f struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

func (vec Vec3f) Add(otherVec Vec3f) Vec3f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	vec.Z += otherVec.Z
	return vec
}

func (vec Vec3f) Sub(otherVec Vec3f) Vec3f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	vec.Z -= otherVec.Z
	return vec
}

// Ground drops the height component.
func (vec Vec3f) Ground() Vec2f {
	return Vec2f{X: vec.X, Y: vec.Z}
}
