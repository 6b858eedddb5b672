// Package sim is a terminal simulator adapter: a bubbletea model that stands
// in for the OS so the interaction core can be exercised end to end without
// a desktop. The grid, window highlights and minimized panel render with
// lipgloss; synthesized input mutates a fake desktop instead of the real one.
package sim

import (
	"fmt"
	"image"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/keyjockey/keyjockey/internal/desktop"
	"github.com/keyjockey/keyjockey/internal/grid"
	"github.com/keyjockey/keyjockey/internal/overlay"
)

// refreshMsg tells the bubbletea program to repaint after the controller
// changed world state.
type refreshMsg struct{}

// World is the fake desktop. It implements overlay.Surface, overlay.Pointer,
// overlay.Desktop and cursor.Chrome, and records the overlay's actions so
// the view can display them.
type World struct {
	mu sync.Mutex

	displays []grid.Display
	windows  []desktop.Window

	pointer      image.Point
	visible      bool
	alpha        int
	clickThrough bool
	state        overlay.State

	cursorHidden bool
	cursorSize   int

	lastAction string

	send func(tea.Msg)
}

// NewWorld builds a fake single-monitor desktop with a handful of windows.
func NewWorld() *World {
	return &World{
		displays: []grid.Display{
			{Bounds: image.Rect(0, 0, 1920, 1080), DPI: 96},
		},
		windows: []desktop.Window{
			{Handle: 1, Title: "Browser", Bounds: image.Rect(40, 40, 1240, 860)},
			{Handle: 2, Title: "Editor", Bounds: image.Rect(600, 120, 1880, 1040)},
			{Handle: 3, Title: "Terminal", Bounds: image.Rect(200, 500, 900, 1000)},
			{Handle: 4, Title: "Music Player", Minimized: true},
		},
		pointer:    image.Pt(960, 540),
		alpha:      0,
		cursorSize: 32,
	}
}

// attach wires the bubbletea program's send function for repaints.
func (w *World) attach(send func(tea.Msg)) {
	w.mu.Lock()
	w.send = send
	w.mu.Unlock()
}

func (w *World) refresh() {
	if w.send != nil {
		go w.send(refreshMsg{})
	}
}

func (w *World) act(format string, args ...any) {
	w.lastAction = fmt.Sprintf(format, args...)
	w.refresh()
}

// --- overlay.Desktop ---

func (w *World) Displays() []grid.Display {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.displays
}

func (w *World) Windows() []desktop.Window {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]desktop.Window, len(w.windows))
	copy(out, w.windows)
	return out
}

func (w *World) Activate(h desktop.Handle, restore bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, win := range w.windows {
		if win.Handle != h {
			continue
		}
		if restore {
			win.Minimized = false
			win.Bounds = image.Rect(300, 200, 1100, 800)
		}
		// Move to the front of the Z-order.
		w.windows = append([]desktop.Window{win}, append(w.windows[:i:i], w.windows[i+1:]...)...)
		w.act("activated %q", win.Title)
		return
	}
}

// --- overlay.Pointer ---

func (w *World) Position() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pointer
}

func (w *World) MoveTo(p image.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pointer = p
	w.act("pointer -> (%d,%d)", p.X, p.Y)
}

func (w *World) MoveBy(dx, dy int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pointer = w.pointer.Add(image.Pt(dx, dy))
	w.act("pointer -> (%d,%d)", w.pointer.X, w.pointer.Y)
}

func (w *World) Click(right bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	button := "left"
	if right {
		button = "right"
	}
	w.act("%s click at (%d,%d)", button, w.pointer.X, w.pointer.Y)
}

func (w *World) Scroll(up bool, notches int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	dir := "down"
	if up {
		dir = "up"
	}
	w.act("scroll %s %d notches", dir, notches)
}

// --- overlay.Surface ---

func (w *World) Show(alpha int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = true
	w.alpha = alpha
	w.refresh()
}

func (w *World) Hide() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = false
	w.refresh()
}

func (w *World) SetAlpha(alpha int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alpha = alpha
	w.refresh()
}

func (w *World) SetClickThrough(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clickThrough = enabled
	w.refresh()
}

func (w *World) Render(s overlay.State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = s
	w.refresh()
}

// --- cursor.Chrome ---

func (w *World) Blank() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cursorHidden = true
	w.refresh()
	return nil
}

func (w *World) SetSize(px int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cursorHidden = false
	w.cursorSize = px
	w.refresh()
	return nil
}

func (w *World) Restore() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cursorHidden = false
	w.cursorSize = 32
	w.refresh()
	return nil
}

// snapshot copies the fields the view needs under one lock.
func (w *World) snapshot() worldView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return worldView{
		state:        w.state,
		pointer:      w.pointer,
		visible:      w.visible,
		alpha:        w.alpha,
		clickThrough: w.clickThrough,
		cursorHidden: w.cursorHidden,
		cursorSize:   w.cursorSize,
		lastAction:   w.lastAction,
	}
}

type worldView struct {
	state        overlay.State
	pointer      image.Point
	visible      bool
	alpha        int
	clickThrough bool
	cursorHidden bool
	cursorSize   int
	lastAction   string
}
