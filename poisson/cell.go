// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package poisson

import (
	"github.com/SoftbearStudios/meadow/world"
	"github.com/chewxy/math32"
)

// cellID is the position of a grid cell relative to the domain's minimum corner.
type cellID struct {
	x, y int32
}

// grid buckets accepted point indices by cell. Only occupied cells are stored,
// so memory follows the number of points, not the size of the domain.
type grid struct {
	origin   world.Vec2f
	cellSize float32
	width    int32
	height   int32
	cells    map[cellID][]int32
}

func newGrid(domain world.AABB, cellSize float32) grid {
	return grid{
		origin:   domain.Vec2f,
		cellSize: cellSize,
		width:    ceilCells(domain.Width, cellSize),
		height:   ceilCells(domain.Height, cellSize),
		cells:    make(map[cellID][]int32),
	}
}

func ceilCells(length, cellSize float32) int32 {
	const maxCells = 1 << 30
	cells := math32.Ceil(length / cellSize)
	if !(cells >= 1) {
		return 1
	}
	if cells > maxCells {
		return maxCells
	}
	return int32(cells)
}

// cellOf clamps points on the far edges into the last cell.
func (g *grid) cellOf(pos world.Vec2f) cellID {
	c := pos.Sub(g.origin).Mul(1.0 / g.cellSize).Floor()
	return cellID{
		x: clampCell(c.X, g.width-1),
		y: clampCell(c.Y, g.height-1),
	}
}

func (g *grid) insert(pos world.Vec2f, index int32) {
	id := g.cellOf(pos)
	g.cells[id] = append(g.cells[id], index)
}

func (g *grid) reset() {
	for id := range g.cells {
		delete(g.cells, id)
	}
}

// forNeighbors calls callback with every point index stored within reach cells of pos's cell.
// Returns true if stopped early.
func (g *grid) forNeighbors(pos world.Vec2f, reach int32, callback func(index int32) (stop bool)) bool {
	center := g.cellOf(pos)
	minY := clampInt32(center.y-reach, 0, g.height-1)
	maxY := clampInt32(center.y+reach, 0, g.height-1)
	minX := clampInt32(center.x-reach, 0, g.width-1)
	maxX := clampInt32(center.x+reach, 0, g.width-1)

	// Iterate y in outer for better locality of reference
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for _, index := range g.cells[cellID{x: x, y: y}] {
				if callback(index) {
					return true
				}
			}
		}
	}
	return false
}

func clampCell(f float32, maximum int32) int32 {
	if !(f > 0) {
		return 0
	}
	if f >= float32(maximum) {
		return maximum
	}
	return int32(f)
}

func clampInt32(v, minimum, maximum int32) int32 {
	if v < minimum {
		return minimum
	}
	if v > maximum {
		return maximum
	}
	return v
}
