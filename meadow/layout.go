// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package meadow

import (
	"fmt"
	"github.com/SoftbearStudios/meadow/world"
)

// Placement is a finished record for the instantiation layer.
type Placement struct {
	Category Category    `json:"category"`
	Species  string      `json:"species"`
	Biome    Biome       `json:"biome,omitempty"`
	Position world.Vec3f `json:"position"`
	Yaw      world.Angle `json:"yaw"`
	Scale    float32     `json:"scale"`
}

// Layout is the result of one build. Placements are grouped by category
// in the order flora, landmarks, water.
type Layout struct {
	Name       string      `json:"name,omitempty"`
	Seed       int64       `json:"seed"`
	Domain     world.AABB  `json:"domain"`
	Origin     world.Vec3f `json:"origin"` // added to every placement position
	Placements []Placement `json:"placements"`
}

// Of returns the placements of one category.
func (layout Layout) Of(category Category) []Placement {
	var out []Placement
	for _, p := range layout.Placements {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Summary counts placements per category.
type Summary struct {
	Flora     int `json:"flora"`
	Meadow    int `json:"meadow"`
	Edge      int `json:"edge"`
	Landmarks int `json:"landmarks"`
	Water     int `json:"water"`
}

func (layout Layout) Summary() (summary Summary) {
	for i := range layout.Placements {
		p := &layout.Placements[i]
		switch p.Category {
		case CategoryFlora:
			summary.Flora++
			if p.Biome == BiomeEdge {
				summary.Edge++
			} else {
				summary.Meadow++
			}
		case CategoryLandmark:
			summary.Landmarks++
		case CategoryWater:
			summary.Water++
		}
	}
	return
}

func (summary Summary) String() string {
	return fmt.Sprintf("placed %d flora (%d meadow, %d edge), %d landmarks, %d water",
		summary.Flora, summary.Meadow, summary.Edge, summary.Landmarks, summary.Water)
}
