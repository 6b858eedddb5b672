package geom

import (
	"image"
	"testing"
)

func TestSubtractDisjoint(t *testing.T) {
	g := NewRegion(image.Rect(0, 0, 100, 100))
	g.Subtract(image.Rect(200, 200, 300, 300))

	if got := g.Area(); got != 10000 {
		t.Errorf("area after disjoint subtract = %d, want 10000", got)
	}
}

func TestSubtractContained(t *testing.T) {
	g := NewRegion(image.Rect(0, 0, 100, 100))
	g.Subtract(image.Rect(25, 25, 75, 75))

	if got := g.Area(); got != 10000-2500 {
		t.Errorf("area = %d, want %d", got, 10000-2500)
	}
	// Hole in the middle splits the region into four pieces.
	if got := len(g.Rects()); got != 4 {
		t.Errorf("rect count = %d, want 4", got)
	}
}

func TestSubtractCovering(t *testing.T) {
	g := NewRegion(image.Rect(10, 10, 20, 20))
	g.Subtract(image.Rect(0, 0, 100, 100))

	if !g.Empty() {
		t.Errorf("region not empty after full cover, area = %d", g.Area())
	}
}

func TestSubtractCornerOverlap(t *testing.T) {
	// B = (50,50,150,150) occluded by A = (0,0,100,100): the classic
	// two-window stack. B keeps its area minus the 50x50 overlap.
	g := NewRegion(image.Rect(50, 50, 150, 150))
	g.Subtract(image.Rect(0, 0, 100, 100))

	if got := g.Area(); got != 7500 {
		t.Errorf("area = %d, want 7500", got)
	}
}

func TestSubtractResultDisjoint(t *testing.T) {
	g := NewRegion(image.Rect(0, 0, 200, 200))
	g.Subtract(image.Rect(50, 50, 120, 120))
	g.Subtract(image.Rect(100, 0, 160, 80))
	g.Subtract(image.Rect(-20, 150, 30, 260))

	rects := g.Rects()
	for i := 0; i < len(rects); i++ {
		if rects[i].Empty() {
			t.Errorf("rect %d is empty: %v", i, rects[i])
		}
		for j := i + 1; j < len(rects); j++ {
			if !rects[i].Intersect(rects[j]).Empty() {
				t.Errorf("rects %v and %v overlap", rects[i], rects[j])
			}
		}
	}

	// Cross-check the area by brute-force pixel counting.
	want := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			p := image.Pt(x, y)
			if p.In(image.Rect(50, 50, 120, 120)) ||
				p.In(image.Rect(100, 0, 160, 80)) ||
				p.In(image.Rect(-20, 150, 30, 260)) {
				continue
			}
			want++
		}
	}
	if got := g.Area(); got != want {
		t.Errorf("area = %d, want %d (pixel count)", got, want)
	}
}

func TestEmptyInputs(t *testing.T) {
	g := NewRegion(image.Rectangle{})
	if !g.Empty() {
		t.Error("region from empty rect should be empty")
	}

	g = NewRegion(image.Rect(0, 0, 10, 10))
	g.Subtract(image.Rectangle{})
	if got := g.Area(); got != 100 {
		t.Errorf("area after empty subtract = %d, want 100", got)
	}
}
