// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/SoftbearStudios/meadow/meadow"
	"github.com/SoftbearStudios/meadow/noise"
	"github.com/SoftbearStudios/meadow/world"
	"github.com/fogleman/gg"
)

type ColorVec [3]float32

var (
	// Ground from sparse to dense.
	sparse = RGB(194, 178, 128)
	dense  = RGB(90, 180, 30)

	meadowColor   = RGB(240, 230, 90)
	edgeColor     = RGB(170, 80, 200)
	landmarkColor = RGB(105, 110, 115)
	waterColor    = RGB(0, 75, 130)
	boundsColor   = RGB(255, 220, 0)
)

// Options select what is drawn over the ground.
type Options struct {
	// Size is the width of the image in pixels. Height follows the domain's aspect ratio.
	Size int
	// Bounds outlines the domain.
	Bounds bool
	// Samples draws every placement, not just landmarks and water.
	Samples bool
}

// Render draws layout over density, which may be nil for a flat background.
func Render(layout *meadow.Layout, density noise.Field, options Options) image.Image {
	domain := layout.Domain
	if options.Size <= 0 || domain.Width <= 0 || domain.Height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	width := options.Size
	height := int(float32(width) * domain.Height / domain.Width)
	if height < 1 {
		height = 1
	}
	pixel := domain.Width / float32(width)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			c := sparse
			if density != nil {
				pos := world.Vec2f{X: domain.X + (float32(i)+0.5)*pixel, Y: domain.Y + (float32(j)+0.5)*pixel}
				c = sparse.Lerp(dense, density.At(pos))
			}
			img.SetRGBA(i, j, c.Color())
		}
	}

	ctx := gg.NewContextForRGBA(img)
	toPixels := func(p meadow.Placement) (float64, float64) {
		g := p.Position.Sub(layout.Origin).Ground()
		return float64((g.X - domain.X) / pixel), float64((g.Y - domain.Y) / pixel)
	}

	for _, p := range layout.Placements {
		var c ColorVec
		var r float64
		switch p.Category {
		case meadow.CategoryFlora:
			if !options.Samples {
				continue
			}
			c = meadowColor
			if p.Biome == meadow.BiomeEdge {
				c = edgeColor
			}
			r = 1.5
		case meadow.CategoryLandmark:
			c = landmarkColor
			r = 4
		case meadow.CategoryWater:
			c = waterColor
			r = 6
		default:
			continue
		}

		x, y := toPixels(p)
		ctx.DrawCircle(x, y, r*float64(p.Scale))
		ctx.SetColor(c.Color())
		ctx.Fill()
	}

	if options.Bounds {
		ctx.DrawRectangle(0.5, 0.5, float64(width-1), float64(height-1))
		ctx.SetColor(boundsColor.Color())
		ctx.SetLineWidth(1)
		ctx.Stroke()
	}

	return ctx.Image()
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = world.Lerp(vec[i], other[i], factor)
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f * 255)
}
