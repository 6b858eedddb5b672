// Package overlay implements the mode state machine at the center of the
// program: it owns the current interaction mode, interprets each input event
// against it, and emits side-effecting commands for the platform adapters to
// execute. The machine itself never touches the OS, which is what makes the
// whole mode graph unit-testable.
package overlay

import (
	"unicode"

	"github.com/keyjockey/keyjockey/internal/config"
	"github.com/keyjockey/keyjockey/internal/desktop"
	"github.com/keyjockey/keyjockey/internal/grid"
)

// Machine interprets events against the current mode. It is not safe for
// concurrent use: exactly one goroutine (the controller loop) may call
// Handle.
type Machine struct {
	cfg *config.Config

	// buildGrid and enumerate are injected so tests can drive the machine
	// with synthetic monitors and windows.
	buildGrid func() *grid.Grid
	enumerate func() desktop.Snapshot

	s State
}

// NewMachine returns a machine in the hidden state.
func NewMachine(cfg *config.Config, buildGrid func() *grid.Grid, enumerate func() desktop.Snapshot) *Machine {
	return &Machine{
		cfg:       cfg,
		buildGrid: buildGrid,
		enumerate: enumerate,
		s:         State{Mode: ModeHidden, Highlight: -1},
	}
}

// State returns a copy of the current state for rendering.
func (m *Machine) State() State { return m.s }

// Handle applies one event. Every (mode, event) pair has a defined outcome;
// combinations not named below are deliberate no-ops, so there is no error
// path anywhere in the machine.
func (m *Machine) Handle(ev Event) []Command {
	switch ev := ev.(type) {
	case ToggleEvent:
		return m.onToggle()
	case FocusLostEvent:
		if m.s.Mode == ModeHidden {
			return nil
		}
		return m.hide()
	case TimerExpiredEvent:
		return m.onTimer(ev)
	case PointerMovedEvent:
		if m.s.Mode == ModeScrollPassthrough {
			return m.hide()
		}
		return nil
	case ShiftDownEvent:
		if m.s.Mode == ModeGridTyping && !m.s.Peeking {
			m.s.Peeking = true
			return []Command{SetOverlayAlpha{m.cfg.Appearance.PeekAlpha}}
		}
		return nil
	case ShiftUpEvent:
		if !m.s.Peeking {
			return nil
		}
		m.s.Peeking = false
		if m.s.Mode == ModeGridTyping {
			return []Command{SetOverlayAlpha{m.cfg.Appearance.GridAlpha}}
		}
		return nil
	case ConfigChangedEvent:
		m.cfg = ev.Cfg
		if m.s.Mode == ModeHidden {
			return nil
		}
		return []Command{Render{}}
	case KeyEvent:
		return m.onKey(ev)
	}
	return nil
}

func (m *Machine) onToggle() []Command {
	if m.s.Mode != ModeHidden {
		return m.hide()
	}
	m.s = State{
		Mode:      ModeGridTyping,
		Grid:      m.buildGrid(),
		Highlight: -1,
		ResetGen:  m.s.ResetGen,
		PeekGen:   m.s.PeekGen,
	}
	// Showing the grid overrides any hide state instantly; an animated
	// reveal here would fight the grid's own cursor use.
	return []Command{
		RestoreCursor{Animated: false},
		ShowOverlay{m.cfg.Appearance.GridAlpha},
		SetClickThrough{false},
		Render{},
	}
}

// hide is the common teardown into ModeHidden: all transient buffers and the
// window snapshot are cleared and both timers stopped.
func (m *Machine) hide() []Command {
	m.s = State{Mode: ModeHidden, Highlight: -1, ResetGen: m.s.ResetGen, PeekGen: m.s.PeekGen}
	return []Command{
		StopTimer{TimerPrefixReset},
		StopTimer{TimerPeekPromote},
		HideOverlay{},
	}
}

func (m *Machine) onTimer(ev TimerExpiredEvent) []Command {
	switch ev.Kind {
	case TimerPrefixReset:
		if ev.Gen != m.s.ResetGen {
			return nil
		}
		switch m.s.Mode {
		case ModeGridTyping, ModeArrowMove:
			if m.s.Typed == "" {
				return nil
			}
			m.s.Typed = ""
			return []Command{Render{}}
		case ModeTextSearch:
			// Inactivity clears the filter; the unfiltered cyclable view
			// is plain cycling.
			return m.collapseToCycling()
		case ModeAllWindowsPeek:
			if m.s.Search == "" {
				return nil
			}
			m.s.Search = ""
			m.s.Filtered = desktop.FilterResult{}
			m.s.Highlight = clampIndex(0, m.s.cycleCount())
			return []Command{Render{}}
		}
		return nil

	case TimerPeekPromote:
		if ev.Gen != m.s.PeekGen || m.s.Mode != ModeCycling {
			return nil
		}
		m.s.Mode = ModeAllWindowsPeek
		m.s.Highlight = clampIndex(0, m.s.cycleCount())
		return []Command{Render{}}
	}
	return nil
}

func (m *Machine) onKey(ev KeyEvent) []Command {
	switch m.s.Mode {
	case ModeGridTyping, ModeArrowMove:
		return m.onGridKey(ev)
	case ModeCycling:
		return m.onCyclingKey(ev)
	case ModeTextSearch, ModeAllWindowsPeek:
		return m.onFilterKey(ev)
	case ModeScrollPassthrough:
		return m.onScrollKey(ev)
	}
	return nil
}

// --- GridTyping / ArrowMove ---

func (m *Machine) onGridKey(ev KeyEvent) []Command {
	switch ev.Code {
	case KeyEscape:
		return m.hide()

	case KeyEnter:
		var cmds []Command
		// A complete label that was never resolved (or re-typed) still
		// counts: move there before clicking.
		if len(m.s.Typed) >= 3 && m.s.Grid != nil {
			if pt, ok := m.s.Grid.Resolve(m.s.Typed[:3]); ok {
				cmds = append(cmds, MoveCursor{pt})
			}
		}
		cmds = append(cmds, m.hide()...)
		return append(cmds,
			Wait{m.cfg.Timing.Activation()},
			Click{Right: ev.Ctrl},
		)

	case KeySpace:
		cmds := m.hide()
		return append(cmds, HideCursor{})

	case KeyTab:
		return m.enterCycling(ev.Shift)

	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return m.nudge(ev)

	case KeyPageUp, KeyPageDown:
		return m.enterScroll(ev.Code == KeyPageUp)

	case KeyBackspace:
		if m.s.Mode != ModeGridTyping || m.s.Typed == "" {
			return nil
		}
		m.s.Typed = m.s.Typed[:len(m.s.Typed)-1]
		return []Command{m.armReset(), Render{}}

	case KeyRune:
		r := unicode.ToLower(ev.Rune)
		if r < 'a' || r > 'z' {
			return nil
		}
		return m.gridLetter(r)
	}
	return nil
}

func (m *Machine) gridLetter(r rune) []Command {
	var cmds []Command
	// Typing always wins over move mode.
	if m.s.Mode == ModeArrowMove {
		m.s.Mode = ModeGridTyping
		cmds = append(cmds, SetOverlayAlpha{m.cfg.Appearance.GridAlpha})
	}

	if len(m.s.Typed) < 3 {
		m.s.Typed += string(r)
		if len(m.s.Typed) == 3 && m.s.Grid != nil {
			// Unknown labels are a silent no-op; the buffer stays so a
			// 4th letter still clears it.
			if pt, ok := m.s.Grid.Resolve(m.s.Typed); ok {
				cmds = append(cmds, MoveCursor{pt})
			}
		}
	} else {
		// 4th letter selects a sub-point and finishes the selection.
		if m.s.Grid != nil {
			if pt, ok := m.s.Grid.ResolveSub(m.s.Typed, byte(r)); ok {
				cmds = append(cmds, MoveCursor{pt})
			}
		}
		m.s.Typed = ""
	}
	return append(cmds, m.armReset(), Render{})
}

func (m *Machine) nudge(ev KeyEvent) []Command {
	var cmds []Command
	if m.s.Mode == ModeGridTyping {
		m.s.Mode = ModeArrowMove
		m.s.Typed = ""
		m.s.Peeking = false
		cmds = append(cmds, SetOverlayAlpha{m.cfg.Appearance.MoveAlpha})
	}

	step := m.cfg.Movement.Step
	switch {
	case ev.Shift:
		step = m.cfg.Movement.FineStep
	case ev.Ctrl:
		step = m.cfg.Movement.CoarseStep
	}

	var dx, dy int
	switch ev.Code {
	case KeyUp:
		dy = -step
	case KeyDown:
		dy = step
	case KeyLeft:
		dx = -step
	case KeyRight:
		dx = step
	}
	return append(cmds, NudgeCursor{Dx: dx, Dy: dy})
}

func (m *Machine) enterScroll(up bool) []Command {
	m.s.Mode = ModeScrollPassthrough
	m.s.Typed = ""
	m.s.Peeking = false
	return []Command{
		StopTimer{TimerPrefixReset},
		SetClickThrough{true},
		SetOverlayAlpha{m.cfg.Appearance.MoveAlpha},
		Scroll{Up: up, Notches: m.cfg.Movement.ScrollNotches},
	}
}

// --- Cycling ---

func (m *Machine) enterCycling(backward bool) []Command {
	snap := m.enumerate()
	if snap.Empty() {
		// Nothing to cycle over; stay where we are.
		return nil
	}
	m.s.Snapshot = snap
	m.s.HaveSnapshot = true
	m.s.Mode = ModeCycling
	m.s.Typed = ""
	m.s.Search = ""
	m.s.Filtered = desktop.FilterResult{}
	m.s.Peeking = false

	count := m.s.cycleCount()
	if backward {
		m.s.Highlight = count - 1
	} else {
		m.s.Highlight = 0
	}
	return []Command{
		StopTimer{TimerPrefixReset},
		SetOverlayAlpha{m.cfg.Appearance.GridAlpha},
		m.armPeek(),
		Render{},
	}
}

func (m *Machine) onCyclingKey(ev KeyEvent) []Command {
	switch ev.Code {
	case KeyEscape:
		return m.hide()

	case KeyEnter:
		return m.activateHighlight()

	case KeyTab:
		m.s.Highlight = stepIndex(m.s.Highlight, m.s.cycleCount(), ev.Shift)
		return []Command{m.armPeek(), Render{}}

	case KeyRune:
		if ev.Rune == '*' {
			m.s.Mode = ModeAllWindowsPeek
			m.s.Highlight = clampIndex(0, m.s.cycleCount())
			return []Command{StopTimer{TimerPeekPromote}, Render{}}
		}
		r := unicode.ToLower(ev.Rune)
		if r < 'a' || r > 'z' {
			return nil
		}
		m.s.Mode = ModeTextSearch
		m.s.Search = string(r)
		m.s.Filtered = m.s.Snapshot.Filter(m.s.Search)
		m.s.Highlight = m.s.Filtered.HighlightIndex
		return []Command{StopTimer{TimerPeekPromote}, m.armReset(), Render{}}
	}
	return nil
}

// --- TextSearch / AllWindowsPeek ---

func (m *Machine) onFilterKey(ev KeyEvent) []Command {
	switch ev.Code {
	case KeyEscape:
		return m.hide()

	case KeyEnter:
		return m.activateHighlight()

	case KeyTab:
		if m.s.Search != "" {
			return m.collapseToCycling()
		}
		// Unfiltered peek: Tab keeps cycling, now over the full snapshot.
		m.s.Highlight = stepIndex(m.s.Highlight, m.s.cycleCount(), ev.Shift)
		return []Command{Render{}}

	case KeyBackspace:
		if m.s.Search == "" {
			return nil
		}
		m.s.Search = m.s.Search[:len(m.s.Search)-1]
		if m.s.Search == "" {
			if m.s.Mode == ModeTextSearch {
				return m.collapseToCycling()
			}
			m.s.Filtered = desktop.FilterResult{}
			m.s.Highlight = clampIndex(0, m.s.cycleCount())
			return []Command{StopTimer{TimerPrefixReset}, Render{}}
		}
		m.s.Filtered = m.s.Snapshot.Filter(m.s.Search)
		m.s.Highlight = m.s.Filtered.HighlightIndex
		return []Command{m.armReset(), Render{}}

	case KeyRune:
		r := unicode.ToLower(ev.Rune)
		if r < 'a' || r > 'z' {
			return nil
		}
		m.s.Search += string(r)
		m.s.Filtered = m.s.Snapshot.Filter(m.s.Search)
		m.s.Highlight = m.s.Filtered.HighlightIndex
		return []Command{m.armReset(), Render{}}
	}
	return nil
}

// collapseToCycling drops the filter and returns to the plain cyclable view
// with the first entry highlighted.
func (m *Machine) collapseToCycling() []Command {
	m.s.Mode = ModeCycling
	m.s.Search = ""
	m.s.Filtered = desktop.FilterResult{}
	m.s.Highlight = clampIndex(0, m.s.cycleCount())
	return []Command{StopTimer{TimerPrefixReset}, m.armPeek(), Render{}}
}

func (m *Machine) activateHighlight() []Command {
	w, ok := m.s.cycleItem(m.s.Highlight)
	if !ok {
		return m.hide()
	}
	cmds := m.hide()
	return append(cmds,
		Wait{m.cfg.Timing.Activation()},
		ActivateWindow{Handle: w.Handle, Restore: w.Minimized},
	)
}

// --- ScrollPassthrough ---

func (m *Machine) onScrollKey(ev KeyEvent) []Command {
	switch ev.Code {
	case KeyPageUp, KeyPageDown:
		return []Command{Scroll{
			Up:      ev.Code == KeyPageUp,
			Notches: m.cfg.Movement.ScrollNotches,
		}}
	}
	// Any other key ends passthrough for good; the grid does not come back.
	return m.hide()
}

// --- timers and index helpers ---

func (m *Machine) armReset() Command {
	m.s.ResetGen++
	return ArmTimer{Kind: TimerPrefixReset, Gen: m.s.ResetGen, D: m.cfg.Timing.PrefixReset()}
}

func (m *Machine) armPeek() Command {
	m.s.PeekGen++
	return ArmTimer{Kind: TimerPeekPromote, Gen: m.s.PeekGen, D: m.cfg.Timing.PeekPromotion()}
}

func stepIndex(i, count int, backward bool) int {
	if count <= 0 {
		return -1
	}
	if backward {
		return (i - 1 + count) % count
	}
	return (i + 1) % count
}

func clampIndex(i, count int) int {
	if count <= 0 {
		return -1
	}
	if i >= count {
		return count - 1
	}
	return i
}
