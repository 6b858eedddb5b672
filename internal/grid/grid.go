// Package grid partitions each display's work area into an addressable grid
// of labeled cells. A cell is addressed by a 3-letter label (monitor prefix
// plus a base-26 letter pair) and subdivided into a 3x3 set of sub-points
// addressed by a fourth letter.
package grid

import "image"

const (
	// BaseDPI is the DPI at which one device-independent pixel equals one
	// physical pixel.
	BaseDPI = 96

	// MaxCellsPerDisplay is the number of distinct two-letter cell codes
	// (aa through zz) available per display.
	MaxCellsPerDisplay = 26 * 26

	// SubLabels are the fourth-letter addresses of the eight outer
	// sub-points, row-major, skipping the center.
	SubLabels = "abcdefgh"

	// CenterSubIndex is the sub-point at the exact cell center. It has no
	// letter of its own: the bare 3-letter label addresses it.
	CenterSubIndex = 4
)

// Display describes one monitor as reported by the OS: its bounds in
// virtual-desktop coordinates and its effective DPI.
type Display struct {
	Bounds image.Rectangle
	DPI    int
}

// Monitor is a display annotated with the single-letter label prefix it was
// assigned during a build. Prefixes are stable only for the lifetime of one
// grid build.
type Monitor struct {
	Display
	Prefix byte
}

// Cell is one addressable region of a display.
type Cell struct {
	// Label is the full 3-letter address (prefix + letter pair). Empty when
	// the cell index exceeded the two-letter code space; such cells exist
	// but cannot be addressed.
	Label     string
	Bounds    image.Rectangle
	Center    image.Point
	SubPoints [9]image.Point
	Row, Col  int
}

// Grid is one build of the addressable cell set across all displays.
type Grid struct {
	Monitors []Monitor
	Cells    []Cell

	centers map[string]image.Point
	cells   map[string]int
}

// Build partitions every display into labeled cells. cellSizeDIP is the
// target cell edge in device-independent pixels; it is scaled by each
// display's DPI. Degenerate displays degrade to a single cell.
func Build(displays []Display, cellSizeDIP int) *Grid {
	g := &Grid{
		centers: make(map[string]image.Point),
		cells:   make(map[string]int),
	}

	for i, d := range displays {
		mon := Monitor{Display: d, Prefix: byte('a' + i)}
		g.Monitors = append(g.Monitors, mon)
		g.buildMonitor(mon, cellSizeDIP)
	}
	return g
}

func (g *Grid) buildMonitor(mon Monitor, cellSizeDIP int) {
	width := mon.Bounds.Dx()
	height := mon.Bounds.Dy()

	dpi := mon.DPI
	if dpi <= 0 {
		dpi = BaseDPI
	}
	target := max(1, cellSizeDIP*dpi/BaseDPI)

	cols := max(1, width/target)
	rows := max(1, height/target)
	// Two-letter codes cap the cell count; shrink the larger dimension
	// first, preferring columns on ties.
	for cols*rows > MaxCellsPerDisplay {
		if cols > rows {
			cols--
		} else {
			rows--
		}
	}

	cellW := width / cols
	cellH := height / rows
	subW := cellW / 3
	subH := cellH / 3

	index := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			left := mon.Bounds.Min.X + col*cellW
			top := mon.Bounds.Min.Y + row*cellH

			cell := Cell{
				Label:  label(mon.Prefix, index),
				Bounds: image.Rect(left, top, left+cellW, top+cellH),
				Center: image.Pt(left+cellW/2, top+cellH/2),
				Row:    row,
				Col:    col,
			}
			for sy := 0; sy < 3; sy++ {
				for sx := 0; sx < 3; sx++ {
					cell.SubPoints[sy*3+sx] = image.Pt(
						left+sx*subW+subW/2,
						top+sy*subH+subH/2,
					)
				}
			}
			cell.SubPoints[CenterSubIndex] = cell.Center

			g.Cells = append(g.Cells, cell)
			if cell.Label != "" {
				g.centers[cell.Label] = cell.Center
				g.cells[cell.Label] = len(g.Cells) - 1
			}
			index++
		}
	}
}

// label returns the 3-letter address of the cell at index on a monitor, or
// "" when the index exceeds the two-letter code space.
func label(prefix byte, index int) string {
	first := index / 26
	second := index % 26
	if first >= 26 {
		return ""
	}
	return string([]byte{prefix, byte('a' + first), byte('a' + second)})
}

// Resolve maps a 3-letter label to the cell's center point.
func (g *Grid) Resolve(label string) (image.Point, bool) {
	pt, ok := g.centers[label]
	return pt, ok
}

// ResolveSub maps a 3-letter label plus a sub-letter to one of the cell's
// nine sub-points. Letters outside a-h fall back to the cell center.
func (g *Grid) ResolveSub(label string, sub byte) (image.Point, bool) {
	i, ok := g.cells[label]
	if !ok {
		return image.Point{}, false
	}
	return g.Cells[i].SubPoints[SubIndex(sub)], true
}

// Cell returns the cell addressed by a 3-letter label.
func (g *Grid) Cell(label string) (Cell, bool) {
	i, ok := g.cells[label]
	if !ok {
		return Cell{}, false
	}
	return g.Cells[i], true
}

// SubIndex maps a sub-letter to its index in Cell.SubPoints. The layout is
//
//	a b c
//	d . e
//	f g h
//
// with the untaken middle slot (index 4) used as the fallback for letters
// outside a-h.
func SubIndex(sub byte) int {
	switch {
	case sub >= 'a' && sub <= 'd':
		return int(sub - 'a')
	case sub >= 'e' && sub <= 'h':
		return int(sub-'a') + 1
	default:
		return CenterSubIndex
	}
}
