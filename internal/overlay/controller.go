package overlay

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keyjockey/keyjockey/internal/config"
	"github.com/keyjockey/keyjockey/internal/desktop"
	"github.com/keyjockey/keyjockey/internal/grid"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "overlay",
})

// eventQueueSize bounds the inbound channel. Hook callbacks must never
// block, so posts into a full queue are dropped instead.
const eventQueueSize = 256

// Controller owns the single event loop. All state mutation happens here,
// sequentially; adapters only post events.
type Controller struct {
	machine *Machine
	surface Surface
	pointer Pointer
	desk    Desktop
	cursor  CursorControl

	events chan Event
	timers map[TimerKind]*time.Timer
}

// NewController wires a machine to its platform adapters.
func NewController(cfg *config.Config, surface Surface, pointer Pointer, desk Desktop, cursor CursorControl) *Controller {
	c := &Controller{
		surface: surface,
		pointer: pointer,
		desk:    desk,
		cursor:  cursor,
		events:  make(chan Event, eventQueueSize),
		timers:  make(map[TimerKind]*time.Timer),
	}
	// The grid closure reads the machine's config, not the constructor
	// argument, so a hot-reloaded cell size takes effect on the next build.
	c.machine = NewMachine(cfg,
		func() *grid.Grid {
			return grid.Build(desk.Displays(), c.machine.cfg.Appearance.CellSizeDIP)
		},
		func() desktop.Snapshot {
			return desktop.BuildSnapshot(desk.Windows())
		},
	)
	return c
}

// Post queues an event for the owner loop. Safe to call from any goroutine,
// including OS hook callbacks; it never blocks. Returns false if the queue
// was full and the event was dropped.
func (c *Controller) Post(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	default:
		logger.Warn("event queue full, dropping", "event", ev)
		return false
	}
}

// State returns the machine's current state. Only meaningful from within the
// owner loop (i.e. from Render callbacks).
func (c *Controller) State() State { return c.machine.State() }

// Run processes events until ctx is cancelled. It is the owner thread: no
// other goroutine may touch the machine.
func (c *Controller) Run(ctx context.Context) error {
	defer c.stopAllTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			before := c.machine.State().Mode
			cmds := c.machine.Handle(ev)
			if after := c.machine.State().Mode; after != before {
				logger.Debug("mode transition", "from", before, "to", after)
			}
			c.execute(cmds)
		}
	}
}

func (c *Controller) execute(cmds []Command) {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case ShowOverlay:
			c.surface.Show(cmd.Alpha)
		case HideOverlay:
			c.surface.Hide()
		case SetOverlayAlpha:
			c.surface.SetAlpha(cmd.Alpha)
		case SetClickThrough:
			c.surface.SetClickThrough(cmd.Enabled)
		case Render:
			c.surface.Render(c.machine.State())
		case MoveCursor:
			c.pointer.MoveTo(cmd.To)
		case NudgeCursor:
			c.pointer.MoveBy(cmd.Dx, cmd.Dy)
		case Click:
			c.pointer.Click(cmd.Right)
		case Scroll:
			c.pointer.Scroll(cmd.Up, cmd.Notches)
		case ActivateWindow:
			c.desk.Activate(cmd.Handle, cmd.Restore)
		case HideCursor:
			c.cursor.Hide()
		case RestoreCursor:
			c.cursor.Reveal(cmd.Animated)
		case ArmTimer:
			c.armTimer(cmd)
		case StopTimer:
			c.stopTimer(cmd.Kind)
		case Wait:
			time.Sleep(cmd.D)
		}
	}
}

// armTimer restarts a single-shot timer. The expiry posts back into the
// event queue carrying its generation; the machine drops stale ones, so a
// fire that races a rearm is harmless.
func (c *Controller) armTimer(cmd ArmTimer) {
	c.stopTimer(cmd.Kind)
	kind, gen := cmd.Kind, cmd.Gen
	c.timers[kind] = time.AfterFunc(cmd.D, func() {
		c.Post(TimerExpiredEvent{Kind: kind, Gen: gen})
	})
}

func (c *Controller) stopTimer(kind TimerKind) {
	if t := c.timers[kind]; t != nil {
		t.Stop()
		delete(c.timers, kind)
	}
}

func (c *Controller) stopAllTimers() {
	for kind := range c.timers {
		c.stopTimer(kind)
	}
}
