// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordcloud

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// faceCache holds one face per integer point size.
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache(ttf []byte) (*faceCache, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &faceCache{font: f, faces: map[int]font.Face{}}, nil
}

func (c *faceCache) Face(size float64) (font.Face, error) {
	pt := int(math.Round(size))
	if face, ok := c.faces[pt]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(pt),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %dpt: %w", pt, err)
	}
	c.faces[pt] = face
	return face, nil
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		face.Close()
	}
}

// measure returns the advance width and line height of s.
func measure(face font.Face, s string) (float64, float64) {
	m := face.Metrics()
	w := font.MeasureString(face, s)
	return float64(w.Ceil()), float64((m.Ascent + m.Descent).Ceil())
}

func ascent(face font.Face) float64 {
	return float64(face.Metrics().Ascent.Ceil())
}
