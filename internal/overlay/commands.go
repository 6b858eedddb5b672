package overlay

import (
	"image"
	"time"

	"github.com/keyjockey/keyjockey/internal/desktop"
)

// Command is one side effect requested by a transition. The machine itself
// never touches the OS; the controller executes commands in order against
// the platform adapters.
type Command interface{ isCommand() }

// ShowOverlay makes the overlay surface visible at the given alpha and takes
// keyboard focus.
type ShowOverlay struct{ Alpha int }

// HideOverlay removes the overlay surface.
type HideOverlay struct{}

// SetOverlayAlpha changes the overlay's opacity in place.
type SetOverlayAlpha struct{ Alpha int }

// SetClickThrough toggles whether input passes through the overlay to
// whatever is underneath.
type SetClickThrough struct{ Enabled bool }

// Render repaints the overlay from the machine's current state.
type Render struct{}

// MoveCursor warps the pointer to an absolute virtual-desktop point.
type MoveCursor struct{ To image.Point }

// NudgeCursor moves the pointer by a relative offset.
type NudgeCursor struct{ Dx, Dy int }

// Click synthesizes a mouse click at the current pointer position.
type Click struct{ Right bool }

// Scroll synthesizes wheel rotation toward the window under the pointer.
type Scroll struct {
	Up      bool
	Notches int
}

// ActivateWindow brings a window to the foreground, restoring it first when
// it is minimized.
type ActivateWindow struct {
	Handle  desktop.Handle
	Restore bool
}

// HideCursor blanks the system cursor.
type HideCursor struct{}

// RestoreCursor brings the system cursor back, optionally with the shrink
// animation. Non-animated restore is used when the grid is about to show.
type RestoreCursor struct{ Animated bool }

// ArmTimer starts (or restarts) a single-shot timer. The expiry will carry
// Gen back so stale fires can be dropped.
type ArmTimer struct {
	Kind TimerKind
	Gen  uint64
	D    time.Duration
}

// StopTimer cancels a timer if it is pending.
type StopTimer struct{ Kind TimerKind }

// Wait blocks the command sequence briefly. Used only for the short delay
// between hiding the overlay and synthesizing a click or activation, so the
// input lands after the overlay has visually gone.
type Wait struct{ D time.Duration }

func (ShowOverlay) isCommand()     {}
func (HideOverlay) isCommand()     {}
func (SetOverlayAlpha) isCommand() {}
func (SetClickThrough) isCommand() {}
func (Render) isCommand()          {}
func (MoveCursor) isCommand()      {}
func (NudgeCursor) isCommand()     {}
func (Click) isCommand()           {}
func (Scroll) isCommand()          {}
func (ActivateWindow) isCommand()  {}
func (HideCursor) isCommand()      {}
func (RestoreCursor) isCommand()   {}
func (ArmTimer) isCommand()        {}
func (StopTimer) isCommand()       {}
func (Wait) isCommand()            {}
