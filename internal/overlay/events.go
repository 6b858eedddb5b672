package overlay

import "github.com/keyjockey/keyjockey/internal/config"

// Event is one discrete input delivered to the mode machine. OS callbacks
// never run business logic themselves; adapters translate them into events
// and queue them onto the controller's single channel.
type Event interface{ isEvent() }

// KeyCode classifies the non-text keys the machine cares about. Everything
// else arrives as KeyRune with the decoded rune.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
)

// KeyEvent is a key press inside the focused overlay.
type KeyEvent struct {
	Code  KeyCode
	Rune  rune // valid when Code == KeyRune
	Shift bool
	Ctrl  bool
}

// ToggleEvent is the global show/hide hotkey firing.
type ToggleEvent struct{}

// FocusLostEvent means the overlay window lost input focus.
type FocusLostEvent struct{}

// ShiftDownEvent and ShiftUpEvent track the bare Shift key for the
// peek-through transparency; Shift as a chord modifier still arrives on
// KeyEvent.Shift.
type (
	ShiftDownEvent struct{}
	ShiftUpEvent   struct{}
)

// TimerKind names the machine's two single-shot timers.
type TimerKind int

const (
	// TimerPrefixReset clears the typed grid label, or the search string in
	// the text-filter modes, after inactivity.
	TimerPrefixReset TimerKind = iota

	// TimerPeekPromote expands plain cycling into the all-windows peek when
	// no key arrives for a while.
	TimerPeekPromote
)

// TimerExpiredEvent is a timer firing. Gen is the generation the timer was
// armed with; the machine drops expiries whose generation is stale, which is
// how cancel-and-rearm races are resolved.
type TimerExpiredEvent struct {
	Kind TimerKind
	Gen  uint64
}

// ConfigChangedEvent delivers a hot-reloaded configuration onto the owner
// thread, which is the only place the machine's settings may change.
type ConfigChangedEvent struct{ Cfg *config.Config }

// PointerMovedEvent is physical mouse movement observed by the global hook.
// Only scroll passthrough reacts to it; the cursor-reveal behavior is handled
// by the cursor controller before the event reaches the machine.
type PointerMovedEvent struct{}

func (KeyEvent) isEvent()           {}
func (ToggleEvent) isEvent()        {}
func (FocusLostEvent) isEvent()     {}
func (ShiftDownEvent) isEvent()     {}
func (ShiftUpEvent) isEvent()       {}
func (TimerExpiredEvent) isEvent()  {}
func (ConfigChangedEvent) isEvent() {}
func (PointerMovedEvent) isEvent()  {}
