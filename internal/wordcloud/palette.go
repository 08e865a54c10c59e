// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordcloud

import (
	"image/color"
	"math"
)

// Plasma approximates matplotlib's plasma colormap, dark purple to yellow.
// The lightest stops are left out so words stay readable on white.
var Plasma = []color.Color{
	color.RGBA{0x0d, 0x08, 0x87, 0xff},
	color.RGBA{0x41, 0x04, 0x9d, 0xff},
	color.RGBA{0x6a, 0x00, 0xa8, 0xff},
	color.RGBA{0x8f, 0x0d, 0xa4, 0xff},
	color.RGBA{0xb1, 0x2a, 0x90, 0xff},
	color.RGBA{0xcc, 0x47, 0x78, 0xff},
	color.RGBA{0xe1, 0x64, 0x62, 0xff},
	color.RGBA{0xf2, 0x84, 0x4b, 0xff},
	color.RGBA{0xfc, 0xa6, 0x36, 0xff},
}

// Sample interpolates linearly between palette stops; t is clamped to
// [0,1].
func Sample(palette []color.Color, t float64) color.Color {
	switch len(palette) {
	case 0:
		return color.Black
	case 1:
		return palette[0]
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(palette)-1)
	i := int(pos)
	if i >= len(palette)-1 {
		return palette[len(palette)-1]
	}
	frac := pos - float64(i)

	r0, g0, b0, a0 := palette[i].RGBA()
	r1, g1, b1, a1 := palette[i+1].RGBA()
	lerp := func(a, b uint32) uint8 {
		return uint8((float64(a) + (float64(b)-float64(a))*frac) / 257)
	}
	return color.RGBA{lerp(r0, r1), lerp(g0, g1), lerp(b0, b1), lerp(a0, a1)}
}
