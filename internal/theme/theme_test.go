package theme_test

import (
	"testing"

	"github.com/keyjockey/keyjockey/internal/theme"
)

func TestGenerateKnownHue(t *testing.T) {
	p := theme.Generate(30)

	if p.BaseHue != 30 {
		t.Errorf("base hue = %v, want 30", p.BaseHue)
	}
	// HSL(30, 0.40, 0.04) is a very dark amber.
	if p.Background.R <= p.Background.B {
		t.Errorf("amber background should lean red over blue: %+v", p.Background)
	}
	if p.Background.A != 255 {
		t.Errorf("alpha = %d, want 255", p.Background.A)
	}
	// Labels must be much lighter than the background they sit on.
	if lum(p.MainLabelText) <= lum(p.CellBgEven) {
		t.Error("label text should be lighter than the cell background")
	}
	if lum(p.MatchSubHighlightText) <= lum(p.MatchSubHighlightBg) {
		t.Error("highlighted sub-label should be lighter than its background")
	}
	// Dimmed cells fade toward the background.
	if lum(p.DimText) >= lum(p.MainLabelText) {
		t.Error("dim text should be darker than normal label text")
	}
}

func TestGenerateNormalizesHue(t *testing.T) {
	a := theme.Generate(390)
	b := theme.Generate(30)
	if a != b {
		t.Error("hue 390 should generate the same palette as hue 30")
	}

	c := theme.Generate(-330)
	if c != b {
		t.Error("hue -330 should generate the same palette as hue 30")
	}
}

func TestGenerateAccentDiffersFromBase(t *testing.T) {
	p := theme.Generate(210)
	if p.CellBgEven == p.CellBgOdd {
		t.Error("checkerboard colors should differ (base vs accent hue)")
	}
}

func TestResolveHue(t *testing.T) {
	hue, picked := theme.ResolveHue(210)
	if picked {
		t.Error("explicit hue should not be reported as picked")
	}
	if hue != 210 {
		t.Errorf("hue = %v, want 210", hue)
	}

	for i := 0; i < 50; i++ {
		hue, picked = theme.ResolveHue(-1)
		if !picked {
			t.Fatal("negative config should pick a random hue")
		}
		if hue < 0 || hue >= 360 {
			t.Fatalf("picked hue %v out of range", hue)
		}
	}
}

// lum is a rough brightness for ordering comparisons.
func lum(c interface{ RGBA() (r, g, b, a uint32) }) uint32 {
	r, g, b, _ := c.RGBA()
	return 2*r + 7*g + b
}
