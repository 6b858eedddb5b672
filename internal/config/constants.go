package config

import "time"

// Grid geometry.
const (
	// DefaultCellSizeDIP is the target edge of a grid cell in
	// device-independent pixels before DPI scaling.
	DefaultCellSizeDIP = 86
)

// Overlay opacity levels (0-255 alpha applied to the whole overlay window).
const (
	// GridAlpha is the overlay opacity while the grid is up.
	GridAlpha = 160

	// MoveAlpha makes the overlay fully invisible during arrow-key moves.
	MoveAlpha = 0

	// PeekAlpha is the near-transparent level while Shift is held to peek
	// at the desktop beneath the grid.
	PeekAlpha = 51
)

// Timeouts and delays.
const (
	// TypedPrefixResetTimeout clears a partially typed cell label when the
	// user stops typing.
	TypedPrefixResetTimeout = 3 * time.Second

	// PeekPromotionTimeout promotes the all-windows peek into the cycling
	// view when the peek key is held long enough.
	PeekPromotionTimeout = 4 * time.Second

	// ActivationDelay is the pause between hiding the overlay and sending
	// a synthetic click or focusing a window, so the click lands on the
	// target rather than on the fading overlay.
	ActivationDelay = 50 * time.Millisecond
)

// Cursor nudging in ArrowMove mode, in physical pixels per keypress.
const (
	NudgeStep       = 10
	NudgeFineStep   = 1
	NudgeCoarseStep = 50
)

// Scroll passthrough.
const (
	// ScrollNotches is how many wheel notches one scroll keypress sends.
	ScrollNotches = 3
)

// Cursor reveal animation: when the overlay hands control back to the
// mouse, the pointer starts oversized and shrinks back to its normal size
// so the eye can find it.
const (
	CursorRevealStartSize = 128
	CursorRevealEndSize   = 32
	CursorRevealSteps     = 15
	CursorRevealStepDelay = 33 * time.Millisecond
)
