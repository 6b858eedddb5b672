package sim

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/keyjockey/keyjockey/internal/config"
	"github.com/keyjockey/keyjockey/internal/cursor"
	"github.com/keyjockey/keyjockey/internal/overlay"
	"github.com/keyjockey/keyjockey/internal/theme"
)

// Model is the bubbletea program driving the simulator. Keys become events
// for the controller; the view renders whatever the controller last told the
// World to show.
type Model struct {
	world   *World
	ctrl    *overlay.Controller
	palette theme.Palette

	width  int
	height int

	// peeking tracks the ctrl+p toggle that stands in for holding Shift,
	// which a terminal cannot observe as a bare modifier.
	peeking bool
}

// Run assembles a controller over a fake desktop and runs the TUI until the
// user quits.
func Run(cfg *config.Config) error {
	world := NewWorld()
	cur := cursor.NewController(world)
	ctrl := overlay.NewController(cfg, world, world, world, cur)

	hue, picked := theme.ResolveHue(cfg.Appearance.BaseHue)
	if picked {
		// A negative configured hue means "surprise me"; keep the pick.
		cfg.Appearance.BaseHue = int(hue)
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("persist picked hue: %w", err)
		}
	}
	m := &Model{
		world:   world,
		ctrl:    ctrl,
		palette: theme.Generate(hue),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	p := tea.NewProgram(m)
	world.attach(p.Send)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case refreshMsg:
		// World changed; fall through to repaint.
	case tea.KeyPressMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "ctrl+q":
		return m, tea.Quit
	case "ctrl+t":
		m.ctrl.Post(overlay.ToggleEvent{})
		return m, nil
	case "ctrl+p":
		// Simulated Shift hold: first press is the press, second the release.
		if m.peeking {
			m.ctrl.Post(overlay.ShiftUpEvent{})
		} else {
			m.ctrl.Post(overlay.ShiftDownEvent{})
		}
		m.peeking = !m.peeking
		return m, nil
	case "ctrl+l":
		m.ctrl.Post(overlay.FocusLostEvent{})
		return m, nil
	}

	if m.world.snapshot().state.Mode == overlay.ModeHidden {
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if ev, ok := translateKey(key); ok {
		m.ctrl.Post(ev)
	}
	return m, nil
}

// translateKey maps a bubbletea key string to a machine event.
func translateKey(key string) (overlay.Event, bool) {
	switch key {
	case "esc":
		return overlay.KeyEvent{Code: overlay.KeyEscape}, true
	case "enter":
		return overlay.KeyEvent{Code: overlay.KeyEnter}, true
	case "ctrl+enter":
		return overlay.KeyEvent{Code: overlay.KeyEnter, Ctrl: true}, true
	case "backspace":
		return overlay.KeyEvent{Code: overlay.KeyBackspace}, true
	case "tab":
		return overlay.KeyEvent{Code: overlay.KeyTab}, true
	case "shift+tab":
		return overlay.KeyEvent{Code: overlay.KeyTab, Shift: true}, true
	case "space", " ":
		return overlay.KeyEvent{Code: overlay.KeySpace}, true
	case "up", "down", "left", "right":
		return arrowEvent(key, false, false), true
	case "shift+up", "shift+down", "shift+left", "shift+right":
		return arrowEvent(strings.TrimPrefix(key, "shift+"), true, false), true
	case "ctrl+up", "ctrl+down", "ctrl+left", "ctrl+right":
		return arrowEvent(strings.TrimPrefix(key, "ctrl+"), false, true), true
	case "pgup":
		return overlay.KeyEvent{Code: overlay.KeyPageUp}, true
	case "pgdown":
		return overlay.KeyEvent{Code: overlay.KeyPageDown}, true
	case "*":
		return overlay.KeyEvent{Code: overlay.KeyRune, Rune: '*'}, true
	}

	if len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		return overlay.KeyEvent{Code: overlay.KeyRune, Rune: rune(key[0])}, true
	}
	return nil, false
}

func arrowEvent(dir string, shift, ctrl bool) overlay.KeyEvent {
	ev := overlay.KeyEvent{Shift: shift, Ctrl: ctrl}
	switch dir {
	case "up":
		ev.Code = overlay.KeyUp
	case "down":
		ev.Code = overlay.KeyDown
	case "left":
		ev.Code = overlay.KeyLeft
	case "right":
		ev.Code = overlay.KeyRight
	}
	return ev
}

func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	w := m.world.snapshot()

	var b strings.Builder
	b.WriteString(m.renderStatus(w))
	b.WriteString("\n\n")

	switch w.state.Mode {
	case overlay.ModeGridTyping, overlay.ModeArrowMove:
		b.WriteString(m.renderGrid(w))
	case overlay.ModeCycling, overlay.ModeTextSearch, overlay.ModeAllWindowsPeek:
		b.WriteString(m.renderWindowList(w))
	case overlay.ModeScrollPassthrough:
		b.WriteString(m.renderScroll(w))
	default:
		b.WriteString(m.renderHidden())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp(w))

	view.SetContent(b.String())
	return view
}

func (m *Model) renderStatus(w worldView) string {
	label := lipgloss.NewStyle().Foreground(m.palette.MainLabelText).Bold(true)
	dim := lipgloss.NewStyle().Foreground(m.palette.DimText)

	cursorState := "visible"
	if w.cursorHidden {
		cursorState = "hidden"
	} else if w.cursorSize != 32 {
		cursorState = fmt.Sprintf("%dpx", w.cursorSize)
	}

	parts := []string{
		label.Render(fmt.Sprintf("mode: %s", w.state.Mode)),
		dim.Render(fmt.Sprintf("alpha %d", w.alpha)),
		dim.Render(fmt.Sprintf("pointer (%d,%d)", w.pointer.X, w.pointer.Y)),
		dim.Render("cursor " + cursorState),
	}
	if w.clickThrough {
		parts = append(parts, dim.Render("click-through"))
	}
	if w.lastAction != "" {
		parts = append(parts, dim.Render("last: "+w.lastAction))
	}
	return strings.Join(parts, "  ")
}

// renderGrid paints the cell labels of the first monitor, highlighting the
// typed prefix the way the real overlay does.
func (m *Model) renderGrid(w worldView) string {
	if w.state.Grid == nil || len(w.state.Grid.Cells) == 0 {
		return "(no grid)"
	}
	if w.state.Mode == overlay.ModeArrowMove {
		return lipgloss.NewStyle().Foreground(m.palette.DimText).
			Render("overlay invisible, arrows nudge the pointer")
	}

	even := lipgloss.NewStyle().Background(m.palette.CellBgEven).Foreground(m.palette.MainLabelText)
	odd := lipgloss.NewStyle().Background(m.palette.CellBgOdd).Foreground(m.palette.MainLabelText)
	partial := lipgloss.NewStyle().Background(m.palette.PartialMatchBg).Foreground(m.palette.PartialMatchText).Bold(true)
	match := lipgloss.NewStyle().Background(m.palette.MatchCellBg).Foreground(m.palette.MatchLabelText).Bold(true)
	dimmed := lipgloss.NewStyle().Background(m.palette.DimBg).Foreground(m.palette.DimText)

	typed := w.state.Typed

	var rows []string
	var row strings.Builder
	lastRow := 0
	for _, cell := range w.state.Grid.Cells {
		if cell.Row != lastRow {
			rows = append(rows, row.String())
			row.Reset()
			lastRow = cell.Row
		}

		style := even
		if (cell.Row+cell.Col)%2 == 1 {
			style = odd
		}
		switch {
		case typed != "" && cell.Label == typed:
			style = match
		case typed != "" && strings.HasPrefix(cell.Label, typed):
			style = partial
		case typed != "":
			style = dimmed
		}
		row.WriteString(style.Render(" " + cell.Label + " "))
	}
	rows = append(rows, row.String())

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if typed == "" {
		return grid
	}
	hint := lipgloss.NewStyle().Foreground(m.palette.MatchSubLabelText).
		Render("typed: " + typed)
	return lipgloss.JoinVertical(lipgloss.Left, hint, grid)
}

// renderWindowList paints the cycle list with the highlight bar, minimized
// entries in a panel beneath.
func (m *Model) renderWindowList(w worldView) string {
	s := w.state

	normal := lipgloss.NewStyle().Foreground(m.palette.MainLabelText)
	highlighted := lipgloss.NewStyle().
		Background(m.palette.MatchSubHighlightBg).
		Foreground(m.palette.MatchSubHighlightText).Bold(true)
	panel := lipgloss.NewStyle().Foreground(m.palette.SubLabelText)

	type entry struct {
		title     string
		minimized bool
	}
	var entries []entry

	switch s.Mode {
	case overlay.ModeCycling:
		for _, win := range s.Snapshot.Cyclable {
			entries = append(entries, entry{title: win.Title})
		}
		for _, win := range s.Snapshot.Minimized {
			entries = append(entries, entry{title: win.Title, minimized: true})
		}
	case overlay.ModeTextSearch:
		for _, win := range s.Filtered.Matches {
			entries = append(entries, entry{title: win.Title})
		}
		for _, win := range s.Filtered.MinimizedMatches {
			entries = append(entries, entry{title: win.Title, minimized: true})
		}
	case overlay.ModeAllWindowsPeek:
		if s.Search != "" {
			for _, win := range s.Filtered.Matches {
				entries = append(entries, entry{title: win.Title})
			}
			for _, win := range s.Filtered.MinimizedMatches {
				entries = append(entries, entry{title: win.Title, minimized: true})
			}
		} else {
			for _, win := range s.Snapshot.All {
				entries = append(entries, entry{title: win.Title})
			}
			for _, win := range s.Snapshot.AllMinimized {
				entries = append(entries, entry{title: win.Title, minimized: true})
			}
		}
	}

	var b strings.Builder
	if s.Search != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(m.palette.MatchLabelText).
			Render("filter: " + s.Search))
		b.WriteString("\n")
	}
	if s.Mode == overlay.ModeAllWindowsPeek {
		b.WriteString(panel.Render("all windows, occluded included"))
		b.WriteString("\n")
	}
	if len(entries) == 0 {
		b.WriteString(panel.Render("(no matches)"))
		return b.String()
	}

	for i, e := range entries {
		style := normal
		if e.minimized {
			style = panel
		}
		line := "  " + e.title
		if e.minimized {
			line += " (minimized)"
		}
		if i == s.Highlight {
			line = "> " + strings.TrimPrefix(line, "  ")
			style = highlighted
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderScroll(w worldView) string {
	return lipgloss.NewStyle().Foreground(m.palette.MainLabelText).
		Render("scrolling under pointer, pgup/pgdown to repeat, any other key exits")
}

func (m *Model) renderHidden() string {
	return lipgloss.NewStyle().Foreground(m.palette.DimText).
		Render("overlay hidden, ctrl+t to summon")
}

func (m *Model) renderHelp(w worldView) string {
	dim := lipgloss.NewStyle().Foreground(m.palette.DimText)
	switch w.state.Mode {
	case overlay.ModeHidden:
		return dim.Render("ctrl+t toggle | q quit")
	case overlay.ModeGridTyping:
		return dim.Render("letters type a label | enter click | space hide+blank | tab cycle | arrows nudge | ctrl+p peek | esc dismiss")
	case overlay.ModeArrowMove:
		return dim.Render("arrows nudge (shift fine, ctrl coarse) | enter click | letters back to grid | esc dismiss")
	case overlay.ModeScrollPassthrough:
		return dim.Render("pgup/pgdown scroll | anything else exits")
	default:
		return dim.Render("tab/shift+tab cycle | letters filter | * peek | enter activate | esc dismiss")
	}
}
