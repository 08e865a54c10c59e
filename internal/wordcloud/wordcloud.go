// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wordcloud renders a word frequency table as a PNG word cloud.
// Words are sized by relative frequency and placed on an Archimedean
// spiral, largest first, skipping any position whose bounding box would
// overlap a word already placed. A fixed seed makes layouts reproducible.
package wordcloud

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/pdiddy/ads-parser/internal/catalogue"
	"github.com/pdiddy/ads-parser/internal/textstats"
)

// Defaults for Options fields left zero.
const (
	DefaultWidth           = 1200
	DefaultHeight          = 600
	DefaultMaxWords        = 100
	DefaultRelativeScaling = 0.5
	DefaultMinFontSize     = 8
	DefaultSeed            = 42
)

// ErrNoWords is returned when the table has nothing to draw.
var ErrNoWords = errors.New("wordcloud: no words to render")

// Options controls the layout and look of a cloud.
type Options struct {
	Width, Height int

	// Background defaults to white.
	Background color.Color

	// MaxWords caps how many of the top words are placed.
	MaxWords int

	// RelativeScaling in [0,1] sets how strongly font size follows
	// frequency: 0 ranks only, 1 strictly proportional.
	RelativeScaling float64

	// MaxFontSize defaults to a third of the height; MinFontSize to 8.
	MaxFontSize float64
	MinFontSize float64

	// Palette colors words; defaults to Plasma.
	Palette []color.Color

	Seed uint64

	// FontTTF is a TrueType or OpenType font; defaults to Go Regular.
	FontTTF []byte

	// Margin is the padding in pixels kept around every word.
	Margin float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.RelativeScaling <= 0 || o.RelativeScaling > 1 {
		o.RelativeScaling = DefaultRelativeScaling
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = float64(o.Height) / 3
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if len(o.Palette) == 0 {
		o.Palette = Plasma
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.FontTTF == nil {
		o.FontTTF = goregular.TTF
	}
	if o.Margin <= 0 {
		o.Margin = 2
	}
	return o
}

// shrink scales the font size down after a failed placement.
const shrink = 0.9

// Placement is one positioned word. X and Y are the top-left corner of
// its bounding box. A vertical word reads bottom to top and its box is
// the horizontal box turned on its side.
type Placement struct {
	Word     string
	Count    int
	FontSize float64
	X, Y     float64
	W, H     float64
	Vertical bool
	Color    color.Color
}

func (p Placement) overlaps(q Placement, margin float64) bool {
	return p.X-margin < q.X+q.W && q.X-margin < p.X+p.W &&
		p.Y-margin < q.Y+q.H && q.Y-margin < p.Y+p.H
}

// Layout positions the top words of t. Each size is tried horizontally,
// then vertically, before the font shrinks. Words that cannot be placed
// even at the minimum font size are left out.
func Layout(t *textstats.Table, opts Options) ([]Placement, error) {
	opts = opts.withDefaults()
	words := t.Top(opts.MaxWords)
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	faces, err := newFaceCache(opts.FontTTF)
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	l := &layout{
		opts:  opts,
		faces: faces,
		rng:   rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
	}
	return l.place(words)
}

type layout struct {
	opts   Options
	faces  *faceCache
	rng    *rand.Rand
	placed []Placement
}

func (l *layout) place(words []textstats.WordCount) ([]Placement, error) {
	size := l.opts.MaxFontSize
	prev := float64(words[0].Count)
	rs := l.opts.RelativeScaling

	for _, wc := range words {
		if prev > 0 {
			size *= rs*float64(wc.Count)/prev + (1 - rs)
		}
		prev = float64(wc.Count)
		size = math.Max(size, l.opts.MinFontSize)

		ok, err := l.placeWord(wc, &size)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Skip it; a shorter word may still fit a gap at the minimum.
			size = l.opts.MinFontSize
		}
	}
	return l.placed, nil
}

func (l *layout) placeWord(wc textstats.WordCount, size *float64) (bool, error) {
	for ; *size >= l.opts.MinFontSize; *size *= shrink {
		for _, vertical := range []bool{false, true} {
			p, ok, err := l.fit(wc, *size, vertical)
			if err != nil {
				return false, err
			}
			if ok {
				l.placed = append(l.placed, p)
				return true, nil
			}
		}
	}
	return false, nil
}

// fit walks a spiral from a random start near the center and returns the
// first collision-free position for the word at the given size.
func (l *layout) fit(wc textstats.WordCount, size float64, vertical bool) (Placement, bool, error) {
	face, err := l.faces.Face(size)
	if err != nil {
		return Placement{}, false, err
	}
	w, h := measure(face, wc.Word)
	if vertical {
		w, h = h, w
	}
	width, height := float64(l.opts.Width), float64(l.opts.Height)
	if w > width || h > height {
		return Placement{}, false, nil
	}

	p := Placement{Word: wc.Word, Count: wc.Count, FontSize: math.Round(size), W: w, H: h, Vertical: vertical}
	cx := width/2 + (l.rng.Float64()-0.5)*width/4
	cy := height/2 + (l.rng.Float64()-0.5)*height/4
	aspect := width / height

	// r = 2*theta; by r = height the spiral has left the canvas on every side.
	for theta := 0.0; 2*theta <= height; {
		r := 2 * theta
		p.X = cx + aspect*r*math.Cos(theta) - w/2
		p.Y = cy + r*math.Sin(theta) - h/2
		// Keep consecutive points a few pixels apart so narrow gaps are seen.
		theta += math.Min(0.1, 3/(aspect*r+1))
		if p.X < 0 || p.Y < 0 || p.X+w > width || p.Y+h > height {
			continue
		}
		if l.collides(p) {
			continue
		}
		p.Color = l.color()
		return p, true, nil
	}
	return Placement{}, false, nil
}

func (l *layout) collides(p Placement) bool {
	for _, q := range l.placed {
		if p.overlaps(q, l.opts.Margin) {
			return true
		}
	}
	return false
}

func (l *layout) color() color.Color {
	return Sample(l.opts.Palette, l.rng.Float64())
}

// Render lays out t and draws it.
func Render(t *textstats.Table, opts Options) (image.Image, error) {
	opts = opts.withDefaults()
	placed, err := Layout(t, opts)
	if err != nil {
		return nil, err
	}
	dc, err := draw(placed, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// SavePNG renders t and writes it to path, replacing any existing file
// only once the image is complete.
func SavePNG(path string, t *textstats.Table, opts Options) error {
	opts = opts.withDefaults()
	placed, err := Layout(t, opts)
	if err != nil {
		return err
	}
	dc, err := draw(placed, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encoding word cloud: %w", err)
	}
	return catalogue.WriteFileAtomic(path, buf.Bytes())
}

func draw(placed []Placement, opts Options) (*gg.Context, error) {
	faces, err := newFaceCache(opts.FontTTF)
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()
	for _, p := range placed {
		face, err := faces.Face(p.FontSize)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(p.Color)
		if !p.Vertical {
			dc.DrawString(p.Word, p.X, p.Y+ascent(face))
			continue
		}
		dc.Push()
		dc.Translate(p.X, p.Y+p.H)
		dc.Rotate(-math.Pi / 2)
		dc.DrawString(p.Word, 0, ascent(face))
		dc.Pop()
	}
	return dc, nil
}
