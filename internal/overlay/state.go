package overlay

import (
	"github.com/keyjockey/keyjockey/internal/desktop"
	"github.com/keyjockey/keyjockey/internal/grid"
)

// Mode is the overlay's current interaction mode. Exactly one is active; it
// alone decides what a keystroke means.
type Mode int

const (
	// ModeHidden: overlay not shown, no grid key capture.
	ModeHidden Mode = iota

	// ModeGridTyping: grid visible, letters accumulate a cell label.
	ModeGridTyping

	// ModeArrowMove: overlay invisible, arrows nudge the pointer.
	ModeArrowMove

	// ModeCycling: Tab iterates over ranked windows.
	ModeCycling

	// ModeTextSearch: a substring is narrowing the window list.
	ModeTextSearch

	// ModeAllWindowsPeek: cycling expanded to the full unfiltered snapshot,
	// occluded windows included.
	ModeAllWindowsPeek

	// ModeScrollPassthrough: overlay input-transparent, keys scroll the
	// window under the pointer.
	ModeScrollPassthrough
)

var modeNames = [...]string{
	"hidden",
	"grid-typing",
	"arrow-move",
	"cycling",
	"text-search",
	"all-windows-peek",
	"scroll-passthrough",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// State is the machine's entire mutable state. There is no other mutable
// state anywhere in the core; adapters render from a copy of this struct.
type State struct {
	Mode Mode

	// Typed is the in-progress grid label, 0 to 3 letters. The 4th letter
	// resolves a sub-point and clears it.
	Typed string

	// Search is the active title filter in the text-filter modes.
	Search string

	// Grid is rebuilt every time the overlay is about to show.
	Grid *grid.Grid

	// Snapshot is the window set taken when cycling was entered; discarded
	// when the overlay hides.
	Snapshot     desktop.Snapshot
	HaveSnapshot bool

	// Filtered is Snapshot narrowed by Search.
	Filtered desktop.FilterResult

	// Highlight indexes the current cycle list (normal entries first, then
	// minimized). -1 when the list is empty.
	Highlight int

	// Peeking is true while bare Shift holds the overlay at peek alpha.
	Peeking bool

	// Timer generations. An expiry event carrying an older generation is
	// stale and ignored.
	ResetGen uint64
	PeekGen  uint64
}

// cycleCount is the length of the list Highlight indexes in the current mode.
func (s *State) cycleCount() int {
	switch s.Mode {
	case ModeCycling:
		return len(s.Snapshot.Cyclable) + len(s.Snapshot.Minimized)
	case ModeTextSearch:
		return s.Filtered.Count()
	case ModeAllWindowsPeek:
		if s.Search != "" {
			return s.Filtered.Count()
		}
		return len(s.Snapshot.All) + len(s.Snapshot.AllMinimized)
	default:
		return 0
	}
}

// cycleItem resolves Highlight to a window plus whether activating it needs
// a restore first.
func (s *State) cycleItem(i int) (desktop.Window, bool) {
	if i < 0 {
		return desktop.Window{}, false
	}
	switch s.Mode {
	case ModeCycling:
		if i < len(s.Snapshot.Cyclable) {
			return s.Snapshot.Cyclable[i], true
		}
		i -= len(s.Snapshot.Cyclable)
		if i < len(s.Snapshot.Minimized) {
			return s.Snapshot.Minimized[i], true
		}
	case ModeTextSearch:
		return s.Filtered.At(i)
	case ModeAllWindowsPeek:
		if s.Search != "" {
			return s.Filtered.At(i)
		}
		if i < len(s.Snapshot.All) {
			return s.Snapshot.All[i], true
		}
		i -= len(s.Snapshot.All)
		if i < len(s.Snapshot.AllMinimized) {
			return s.Snapshot.AllMinimized[i], true
		}
	}
	return desktop.Window{}, false
}
