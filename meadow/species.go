// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package meadow

import "fmt"

// Species is something the instantiation layer knows how to spawn.
type Species struct {
	Name string `json:"name" yaml:"name"`
	// Footprint species face away from the meadow center instead of getting a random yaw.
	Footprint bool `json:"footprint,omitempty" yaml:"footprint"`
}

// Category groups placements for the instantiation layer.
type Category uint8

const (
	CategoryInvalid Category = iota
	CategoryFlora
	CategoryLandmark
	CategoryWater
	categoryCount
)

var categoryNames = [categoryCount]string{"invalid", "flora", "landmark", "water"}

func (c Category) String() string {
	if c >= categoryCount {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// ParseCategory returns CategoryInvalid for unknown names.
func ParseCategory(name string) Category {
	for i, n := range categoryNames {
		if n == name {
			return Category(i)
		}
	}
	return CategoryInvalid
}

// Biome classifies where a flora placement grew.
type Biome uint8

const (
	BiomeNone Biome = iota
	BiomeMeadow
	BiomeEdge
)

func (b Biome) String() string {
	switch b {
	case BiomeMeadow:
		return "meadow"
	case BiomeEdge:
		return "edge"
	default:
		return ""
	}
}

// ParseBiome returns BiomeNone for unknown names.
func ParseBiome(name string) Biome {
	switch name {
	case "meadow":
		return BiomeMeadow
	case "edge":
		return BiomeEdge
	default:
		return BiomeNone
	}
}

// Classify splits biome noise at threshold. Values at the threshold are edge.
func Classify(biome, threshold float32) Biome {
	if biome < threshold {
		return BiomeMeadow
	}
	return BiomeEdge
}
