// Package desktop models the top-level application windows that the
// window-cycling feature iterates over. It ranks windows by their
// unoccluded pixel area using exact region subtraction over the
// front-to-back Z-order, and filters them by title substring.
package desktop

import (
	"image"
	"slices"

	"github.com/keyjockey/keyjockey/internal/geom"
)

// Handle identifies an OS window. It is opaque to this package.
type Handle uintptr

// Window is one top-level application window.
type Window struct {
	Handle    Handle
	Bounds    image.Rectangle
	Title     string
	Minimized bool

	// VisibleArea is the window's unoccluded pixel count given the windows
	// stacked above it. Minimized windows always have zero.
	VisibleArea int
}

// Snapshot is one enumeration of the desktop's windows.
//
// Cyclable and Minimized are the lists the plain cycling view uses; All and
// AllMinimized retain every candidate (including fully occluded ones) as the
// search universe.
type Snapshot struct {
	Cyclable     []Window
	Minimized    []Window
	All          []Window
	AllMinimized []Window
}

// Empty reports whether the snapshot holds no windows at all.
func (s Snapshot) Empty() bool {
	return len(s.All) == 0 && len(s.AllMinimized) == 0
}

// BuildSnapshot ranks an enumeration of candidate windows. The input must be
// in front-to-back Z-order, already restricted to candidates (shown, titled,
// not a tool window, not the overlay's own). Minimized candidates are split
// off without any area computation; the rest must have positive width and
// height to participate.
func BuildSnapshot(candidates []Window) Snapshot {
	var snap Snapshot
	var stack []Window

	for _, w := range candidates {
		if w.Minimized {
			w.VisibleArea = 0
			snap.AllMinimized = append(snap.AllMinimized, w)
			continue
		}
		if w.Bounds.Dx() <= 0 || w.Bounds.Dy() <= 0 {
			continue
		}
		stack = append(stack, w)
	}

	// Visible area: each window's rectangle minus every window above it in
	// the stack. The remainder is a multi-rectangle region, so this needs
	// exact region arithmetic rather than bounding boxes.
	for i := range stack {
		region := geom.NewRegion(stack[i].Bounds)
		for j := 0; j < i; j++ {
			region.Subtract(stack[j].Bounds)
		}
		stack[i].VisibleArea = region.Area()
	}

	// Most-visible first; the stable sort preserves Z-order among ties.
	slices.SortStableFunc(stack, func(a, b Window) int {
		return b.VisibleArea - a.VisibleArea
	})

	snap.All = stack
	for _, w := range stack {
		if w.VisibleArea > 0 {
			snap.Cyclable = append(snap.Cyclable, w)
		}
	}
	snap.Minimized = snap.AllMinimized
	return snap
}
