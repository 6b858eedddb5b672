// Package theme generates the overlay's color palette. Every color derives
// from a single base hue plus an accent hue offset 90 degrees around the
// wheel, so shifting one number restyles the whole UI.
package theme

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultBaseHue is the out-of-the-box hue in degrees (amber). 270 gives
// purple, 210 ocean blue, 0 crimson, 160 teal, 340 rose, 60 golden.
const DefaultBaseHue = 30

// Palette holds every color role the overlay paints with.
type Palette struct {
	BaseHue float64

	// Base grid.
	Background    color.RGBA
	CellBgEven    color.RGBA
	CellBgOdd     color.RGBA
	GridLine      color.RGBA
	SubGridLine   color.RGBA
	MainLabelText color.RGBA
	SubLabelText  color.RGBA

	// Fully matched cell while typing.
	MatchCellBg           color.RGBA
	MatchGridLine         color.RGBA
	MatchLabelText        color.RGBA
	MatchSubLabelText     color.RGBA
	MatchSubHighlightBg   color.RGBA
	MatchSubHighlightText color.RGBA

	// Partially matched cell while typing.
	PartialMatchBg   color.RGBA
	PartialMatchText color.RGBA

	// Non-matching cells, dimmed.
	DimBg   color.RGBA
	DimText color.RGBA
}

// Generate builds the palette for a base hue in degrees. The window
// highlight and minimized panel reuse these roles rather than having their
// own.
func Generate(baseHue float64) Palette {
	h := normalizeHue(baseHue)
	a := h + 90 // accent hue

	return Palette{
		BaseHue: h,

		Background:    hsl(h, 0.40, 0.04),
		CellBgEven:    hsl(h, 0.40, 0.12),
		CellBgOdd:     hsl(a, 0.35, 0.12),
		GridLine:      hsl(h, 0.25, 0.32),
		SubGridLine:   hsl(h+45, 0.20, 0.25),
		MainLabelText: hsl(h+10, 0.65, 0.65),
		SubLabelText:  hsl(a-20, 0.30, 0.58),

		MatchCellBg:           hsl(a, 0.45, 0.20),
		MatchGridLine:         hsl(a, 0.45, 0.33),
		MatchLabelText:        hsl(h, 0.20, 0.90),
		MatchSubLabelText:     hsl(a, 0.35, 0.72),
		MatchSubHighlightBg:   hsl(a, 0.55, 0.33),
		MatchSubHighlightText: hsl(h, 0.10, 0.95),

		PartialMatchBg:   hsl(a, 0.35, 0.12),
		PartialMatchText: hsl(a, 0.45, 0.75),

		DimBg:   hsl(h, 0.30, 0.04),
		DimText: hsl(h, 0.20, 0.25),
	}
}

// ResolveHue maps a configured hue to a concrete one: values below zero mean
// "pick a random hue", which the caller should persist so the choice sticks.
func ResolveHue(configured int) (hue float64, picked bool) {
	if configured < 0 {
		return float64(rand.Intn(360)), true
	}
	return normalizeHue(float64(configured)), false
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func hsl(h, s, l float64) color.RGBA {
	c := colorful.Hsl(normalizeHue(h), s, l).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
