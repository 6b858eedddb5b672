package grid

import (
	"image"
	"testing"
)

const defaultCellDIP = 86

func singleDisplay(w, h, dpi int) []Display {
	return []Display{{Bounds: image.Rect(0, 0, w, h), DPI: dpi}}
}

func TestLabelsUniquePerMonitor(t *testing.T) {
	displays := []Display{
		{Bounds: image.Rect(0, 0, 1920, 1080), DPI: 96},
		{Bounds: image.Rect(1920, 0, 1920+2560, 1440), DPI: 144},
		{Bounds: image.Rect(-1280, 0, 0, 1024), DPI: 96},
	}
	g := Build(displays, defaultCellDIP)

	seen := make(map[string]bool)
	for _, c := range g.Cells {
		if c.Label == "" {
			continue
		}
		if seen[c.Label] {
			t.Errorf("duplicate label %q", c.Label)
		}
		seen[c.Label] = true

		// Every label must resolve back to a center inside its own cell.
		pt, ok := g.Resolve(c.Label)
		if !ok {
			t.Fatalf("label %q does not resolve", c.Label)
		}
		if !pt.In(c.Bounds) {
			t.Errorf("label %q center %v outside cell bounds %v", c.Label, pt, c.Bounds)
		}
	}
}

func TestMonitorPrefixes(t *testing.T) {
	displays := []Display{
		{Bounds: image.Rect(0, 0, 800, 600), DPI: 96},
		{Bounds: image.Rect(800, 0, 1600, 600), DPI: 96},
	}
	g := Build(displays, defaultCellDIP)

	if len(g.Monitors) != 2 {
		t.Fatalf("monitor count = %d, want 2", len(g.Monitors))
	}
	if g.Monitors[0].Prefix != 'a' || g.Monitors[1].Prefix != 'b' {
		t.Errorf("prefixes = %c,%c, want a,b", g.Monitors[0].Prefix, g.Monitors[1].Prefix)
	}
	for _, c := range g.Cells {
		if c.Label == "" {
			continue
		}
		if c.Label[0] != 'a' && c.Label[0] != 'b' {
			t.Errorf("label %q has unexpected prefix", c.Label)
		}
	}
}

func TestCellCapHolds(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		dpi  int
		dip  int
	}{
		{"full hd", 1920, 1080, 96, defaultCellDIP},
		{"4k", 3840, 2160, 96, defaultCellDIP},
		{"4k tiny cells", 3840, 2160, 96, 10},
		{"huge virtual span", 10000, 10000, 96, 20},
		{"high dpi", 2560, 1440, 192, defaultCellDIP},
		{"degenerate zero", 0, 0, 96, defaultCellDIP},
		{"degenerate sliver", 5, 3000, 96, defaultCellDIP},
		{"wide sliver", 3000, 5, 96, defaultCellDIP},
		{"zero dpi falls back", 1920, 1080, 0, defaultCellDIP},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := Build([]Display{{Bounds: image.Rect(0, 0, tc.w, tc.h), DPI: tc.dpi}}, tc.dip)
			n := len(g.Cells)
			if n > MaxCellsPerDisplay {
				t.Errorf("cell count %d exceeds cap %d", n, MaxCellsPerDisplay)
			}
			if n < 1 {
				t.Errorf("cell count %d, want >= 1", n)
			}
			for _, c := range g.Cells {
				if c.Label == "" {
					t.Errorf("cell %d/%d has no label despite cap", c.Row, c.Col)
				}
			}
		})
	}
}

func TestGridResolveScenario(t *testing.T) {
	// One 1920x1080 display at 96 DPI with the default 86 DIP target:
	// 22 columns x 12 rows, cells 87x90, so cell "aaa" spans (0,0)-(87,90)
	// with its center at (43,45).
	g := Build(singleDisplay(1920, 1080, 96), defaultCellDIP)

	cell, ok := g.Cell("aaa")
	if !ok {
		t.Fatal(`cell "aaa" not found`)
	}
	pt, ok := g.Resolve("aaa")
	if !ok {
		t.Fatal(`label "aaa" does not resolve`)
	}
	if want := image.Pt(43, 45); pt != want {
		t.Errorf(`Resolve("aaa") = %v, want %v`, pt, want)
	}
	if pt != cell.Center {
		t.Errorf("resolved point %v differs from cell center %v", pt, cell.Center)
	}
}

func TestSubPointResolveScenario(t *testing.T) {
	// Sub-letter "e" is east of center: index 5 in the 3x3 layout.
	g := Build(singleDisplay(1920, 1080, 96), defaultCellDIP)

	cell, ok := g.Cell("aaa")
	if !ok {
		t.Fatal(`cell "aaa" not found`)
	}
	pt, ok := g.ResolveSub("aaa", 'e')
	if !ok {
		t.Fatal(`ResolveSub("aaa", 'e') failed`)
	}
	if pt != cell.SubPoints[5] {
		t.Errorf("sub-point = %v, want index 5 = %v", pt, cell.SubPoints[5])
	}
	if pt == cell.Center {
		t.Error("sub-point 'e' must not be the cell center")
	}
	if pt.X <= cell.Center.X || pt.Y != cell.Center.Y {
		t.Errorf("sub-point 'e' = %v not east of center %v", pt, cell.Center)
	}
}

func TestSubIndexMapping(t *testing.T) {
	want := map[byte]int{
		'a': 0, 'b': 1, 'c': 2, 'd': 3,
		'e': 5, 'f': 6, 'g': 7, 'h': 8,
		'i': CenterSubIndex, 'z': CenterSubIndex, '?': CenterSubIndex,
	}
	for sub, idx := range want {
		if got := SubIndex(sub); got != idx {
			t.Errorf("SubIndex(%q) = %d, want %d", sub, got, idx)
		}
	}
}

func TestCenterSubPointEqualsCenter(t *testing.T) {
	g := Build(singleDisplay(1000, 700, 96), defaultCellDIP)
	for _, c := range g.Cells {
		if c.SubPoints[CenterSubIndex] != c.Center {
			t.Fatalf("cell %q sub-point 4 = %v, center = %v",
				c.Label, c.SubPoints[CenterSubIndex], c.Center)
		}
	}
}

func TestResolveUnknownLabel(t *testing.T) {
	g := Build(singleDisplay(1920, 1080, 96), defaultCellDIP)
	if _, ok := g.Resolve("zzz"); ok {
		t.Error(`"zzz" should not resolve on a single small display`)
	}
	if _, ok := g.ResolveSub("zzz", 'a'); ok {
		t.Error(`ResolveSub on unknown label should fail`)
	}
}
