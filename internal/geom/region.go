// Package geom provides exact rectangle-region arithmetic on top of the
// standard image.Rectangle type. A Region is a set of pixels stored as
// disjoint rectangles, supporting subtraction that may split a rectangle
// into several pieces. This is what the window visibility ranking needs:
// the unoccluded remainder of a window is generally not a rectangle.
package geom

import "image"

// Region is a set of pixels represented as disjoint, non-empty rectangles.
// The zero value is the empty region.
type Region struct {
	rects []image.Rectangle
}

// NewRegion returns a region covering r. A degenerate rectangle yields the
// empty region.
func NewRegion(r image.Rectangle) Region {
	r = r.Canon()
	if r.Empty() {
		return Region{}
	}
	return Region{rects: []image.Rectangle{r}}
}

// Subtract removes r from the region. Rectangles partially covered by r are
// split into up to four disjoint bands (above, below, left, right of the
// intersection).
func (g *Region) Subtract(r image.Rectangle) {
	r = r.Canon()
	if r.Empty() || len(g.rects) == 0 {
		return
	}
	out := g.rects[:0:0]
	for _, a := range g.rects {
		out = appendDifference(out, a, r)
	}
	g.rects = out
}

// appendDifference appends a minus b to dst as disjoint rectangles.
func appendDifference(dst []image.Rectangle, a, b image.Rectangle) []image.Rectangle {
	inter := a.Intersect(b)
	if inter.Empty() {
		return append(dst, a)
	}
	// Band above the intersection, full width of a.
	if a.Min.Y < inter.Min.Y {
		dst = append(dst, image.Rect(a.Min.X, a.Min.Y, a.Max.X, inter.Min.Y))
	}
	// Band below, full width of a.
	if inter.Max.Y < a.Max.Y {
		dst = append(dst, image.Rect(a.Min.X, inter.Max.Y, a.Max.X, a.Max.Y))
	}
	// Left and right slivers, limited to the intersection's vertical span so
	// the pieces stay disjoint from the bands above.
	if a.Min.X < inter.Min.X {
		dst = append(dst, image.Rect(a.Min.X, inter.Min.Y, inter.Min.X, inter.Max.Y))
	}
	if inter.Max.X < a.Max.X {
		dst = append(dst, image.Rect(inter.Max.X, inter.Min.Y, a.Max.X, inter.Max.Y))
	}
	return dst
}

// Area returns the total pixel area of the region.
func (g Region) Area() int {
	total := 0
	for _, r := range g.rects {
		total += r.Dx() * r.Dy()
	}
	return total
}

// Empty reports whether the region covers no pixels.
func (g Region) Empty() bool {
	return len(g.rects) == 0
}

// Rects returns the disjoint rectangles making up the region. The returned
// slice is owned by the region and must not be modified.
func (g Region) Rects() []image.Rectangle {
	return g.rects
}
