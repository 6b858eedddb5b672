// Package cursor tracks the hidden/visible state of the system cursor and
// runs the animated reveal. Hides are triggered by global typing, reveals by
// physical mouse movement or by the overlay needing the cursor back.
package cursor

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keyjockey/keyjockey/internal/config"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "cursor",
})

// Chrome is the OS-level cursor surface: blanking, size changes for the
// reveal animation, and full restoration.
type Chrome interface {
	// Blank replaces the system cursors with an invisible one.
	Blank() error

	// SetSize redraws the arrow cursor at the given pixel size. Used only
	// mid-animation.
	SetSize(px int) error

	// Restore puts the stock system cursors back.
	Restore() error
}

// Controller serializes hide/reveal requests. Hide and Reveal are safe to
// call from any goroutine; the reveal animation runs on its own goroutine
// and is cancelled by bumping a generation counter it checks around every
// sleep.
type Controller struct {
	chrome Chrome

	mu     sync.Mutex
	hidden bool

	// gen invalidates in-flight animations. Incremented on every hide and
	// every new reveal.
	gen atomic.Uint64
}

// NewController returns a controller with the cursor assumed visible.
func NewController(chrome Chrome) *Controller {
	return &Controller{chrome: chrome}
}

// Hidden reports whether the cursor is currently blanked.
func (c *Controller) Hidden() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hidden
}

// Hide blanks the cursor. Idempotent; also cancels any reveal animation in
// flight, so a hide request mid-reveal wins.
func (c *Controller) Hide() {
	c.gen.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hidden {
		return
	}
	if err := c.chrome.Blank(); err != nil {
		logger.Warn("could not blank cursor", "err", err)
		return
	}
	c.hidden = true
}

// Reveal restores the cursor. When animated, the cursor reappears oversized
// and shrinks back to normal over a fixed short duration on a background
// goroutine; a newer hide or reveal cancels the shrink mid-flight. A
// non-animated reveal is instant and synchronous.
func (c *Controller) Reveal(animated bool) {
	gen := c.gen.Add(1)

	c.mu.Lock()
	wasHidden := c.hidden
	c.hidden = false
	c.mu.Unlock()

	if !animated || !wasHidden {
		c.restore()
		return
	}

	go c.animateReveal(gen)
}

// ForceRestore is the last-resort exit path: put the system cursors back no
// matter what state tracking says. Called from defers and signal handlers.
func (c *Controller) ForceRestore() {
	c.gen.Add(1)
	c.mu.Lock()
	c.hidden = false
	c.mu.Unlock()
	c.restore()
}

func (c *Controller) restore() {
	if err := c.chrome.Restore(); err != nil {
		logger.Warn("could not restore cursor", "err", err)
	}
}

// animateReveal shrinks the cursor from oversized back to normal. The
// generation is checked before and after every sleep so cancellation never
// waits on a sleeping step.
func (c *Controller) animateReveal(gen uint64) {
	start := config.CursorRevealStartSize
	end := config.CursorRevealEndSize
	steps := config.CursorRevealSteps

	for i := 0; i <= steps; i++ {
		if c.gen.Load() != gen {
			return
		}
		size := start + int(float64(end-start)*easeOutQuad(float64(i)/float64(steps)))
		if err := c.chrome.SetSize(size); err != nil {
			break
		}
		if i < steps {
			time.Sleep(config.CursorRevealStepDelay)
			if c.gen.Load() != gen {
				return
			}
		}
	}
	if c.gen.Load() != gen {
		return
	}
	c.restore()
}

// easeOutQuad maps t in [0,1] to an eased [0,1]: fast at first, settling
// gently at normal size.
func easeOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
