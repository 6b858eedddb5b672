package overlay

import (
	"image"

	"github.com/keyjockey/keyjockey/internal/desktop"
	"github.com/keyjockey/keyjockey/internal/grid"
)

// Surface is the overlay window: a full-virtual-desktop layered surface the
// adapters composite the grid and window highlights onto.
type Surface interface {
	// Show makes the surface visible at the given alpha and takes focus.
	Show(alpha int)
	Hide()
	SetAlpha(alpha int)
	SetClickThrough(enabled bool)

	// Render repaints from a snapshot of the machine's state.
	Render(s State)
}

// Pointer synthesizes mouse input.
type Pointer interface {
	MoveTo(p image.Point)
	MoveBy(dx, dy int)
	Click(right bool)
	Scroll(up bool, notches int)
}

// Desktop answers the OS queries the grid builder and window enumerator
// need, and performs window activation.
type Desktop interface {
	// Displays lists the monitors in enumeration order.
	Displays() []grid.Display

	// Windows lists candidate top-level windows front-to-back, already
	// restricted per the enumerator's inclusion rule.
	Windows() []desktop.Window

	// Activate brings a window to the foreground, un-minimizing it first
	// when restore is set.
	Activate(h desktop.Handle, restore bool)
}

// CursorControl is the slice of the cursor controller the machine's commands
// need.
type CursorControl interface {
	// Hide blanks the system cursor. Idempotent.
	Hide()

	// Reveal restores the cursor, animated or instant. Cancels any reveal
	// already in flight.
	Reveal(animated bool)
}
