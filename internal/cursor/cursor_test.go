package cursor

import (
	"sync"
	"testing"
	"time"
)

// fakeChrome records calls; safe for use from the animation goroutine.
type fakeChrome struct {
	mu       sync.Mutex
	blanks   int
	restores int
	sizes    []int
}

func (f *fakeChrome) Blank() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blanks++
	return nil
}

func (f *fakeChrome) SetSize(px int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, px)
	return nil
}

func (f *fakeChrome) Restore() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restores++
	return nil
}

func (f *fakeChrome) counts() (blanks, restores, sizeCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blanks, f.restores, len(f.sizes)
}

func TestHideIsIdempotent(t *testing.T) {
	chrome := &fakeChrome{}
	c := NewController(chrome)

	c.Hide()
	c.Hide()
	c.Hide()

	if blanks, _, _ := chrome.counts(); blanks != 1 {
		t.Errorf("blank calls = %d, want 1", blanks)
	}
	if !c.Hidden() {
		t.Error("controller should report hidden")
	}
}

func TestInstantRevealRestoresImmediately(t *testing.T) {
	chrome := &fakeChrome{}
	c := NewController(chrome)

	c.Hide()
	c.Reveal(false)

	if _, restores, sizeCalls := chrome.counts(); restores != 1 || sizeCalls != 0 {
		t.Errorf("restores = %d sizeCalls = %d, want 1 and 0", restores, sizeCalls)
	}
	if c.Hidden() {
		t.Error("controller should report visible")
	}
}

func TestRevealWhenAlreadyVisibleStillRestores(t *testing.T) {
	// The grid-show path restores unconditionally to override any stale
	// OS-side state.
	chrome := &fakeChrome{}
	c := NewController(chrome)

	c.Reveal(false)
	if _, restores, _ := chrome.counts(); restores != 1 {
		t.Errorf("restores = %d, want 1", restores)
	}
}

func TestAnimatedRevealShrinksToNormal(t *testing.T) {
	chrome := &fakeChrome{}
	c := NewController(chrome)

	c.Hide()
	c.Reveal(true)

	// The animation sleeps ~33ms per step for 15 steps; wait generously.
	deadline := time.After(3 * time.Second)
	for {
		if _, restores, _ := chrome.counts(); restores == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("animation never finished")
		case <-time.After(10 * time.Millisecond):
		}
	}

	chrome.mu.Lock()
	sizes := append([]int(nil), chrome.sizes...)
	chrome.mu.Unlock()

	if len(sizes) == 0 {
		t.Fatal("no size steps recorded")
	}
	if first := sizes[0]; first <= sizes[len(sizes)-1] {
		t.Errorf("sizes should shrink: first %d, last %d", first, sizes[len(sizes)-1])
	}
	for i := 1; i < len(sizes); i++ {
		if sizes[i] > sizes[i-1] {
			t.Fatalf("size grew at step %d: %v", i, sizes)
		}
	}
}

func TestHideCancelsInFlightReveal(t *testing.T) {
	chrome := &fakeChrome{}
	c := NewController(chrome)

	c.Hide()
	c.Reveal(true)
	time.Sleep(5 * time.Millisecond)
	c.Hide()

	// Give a cancelled animation ample time to have finished if it were
	// going to.
	time.Sleep(800 * time.Millisecond)
	if _, restores, _ := chrome.counts(); restores != 0 {
		t.Errorf("restores = %d, want 0 after cancellation", restores)
	}
	if !c.Hidden() {
		t.Error("the later hide should win")
	}
}

func TestForceRestoreAlwaysRestores(t *testing.T) {
	chrome := &fakeChrome{}
	c := NewController(chrome)

	c.ForceRestore()
	c.Hide()
	c.ForceRestore()

	if _, restores, _ := chrome.counts(); restores != 2 {
		t.Errorf("restores = %d, want 2", restores)
	}
	if c.Hidden() {
		t.Error("force restore should clear hidden state")
	}
}

func TestEaseOutQuadEndpoints(t *testing.T) {
	if easeOutQuad(0) != 0 {
		t.Error("ease(0) != 0")
	}
	if easeOutQuad(1) != 1 {
		t.Error("ease(1) != 1")
	}
	if mid := easeOutQuad(0.5); mid <= 0.5 {
		t.Errorf("ease-out midpoint = %v, want > 0.5", mid)
	}
}
