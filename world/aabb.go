// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// AABB is an axis aligned rectangle anchored at its minimum corner.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// Centered returns an AABB of the given size centered on the origin.
func Centered(width, height float32) AABB {
	return AABBFrom(-width*0.5, -height*0.5, width, height)
}

// Center of a.
func (a AABB) Center() Vec2f {
	return Vec2f{X: a.X + a.Width*0.5, Y: a.Y + a.Height*0.5}
}

// ContainsPoint is inclusive of all edges.
func (a AABB) ContainsPoint(p Vec2f) bool {
	return p.X >= a.X && p.Y >= a.Y && p.X <= a.X+a.Width && p.Y <= a.Y+a.Height
}
