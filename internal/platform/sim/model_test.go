package sim

import (
	"testing"

	"github.com/keyjockey/keyjockey/internal/desktop"
	"github.com/keyjockey/keyjockey/internal/overlay"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		key  string
		want overlay.KeyEvent
	}{
		{"esc", overlay.KeyEvent{Code: overlay.KeyEscape}},
		{"enter", overlay.KeyEvent{Code: overlay.KeyEnter}},
		{"ctrl+enter", overlay.KeyEvent{Code: overlay.KeyEnter, Ctrl: true}},
		{"tab", overlay.KeyEvent{Code: overlay.KeyTab}},
		{"shift+tab", overlay.KeyEvent{Code: overlay.KeyTab, Shift: true}},
		{"backspace", overlay.KeyEvent{Code: overlay.KeyBackspace}},
		{"space", overlay.KeyEvent{Code: overlay.KeySpace}},
		{"up", overlay.KeyEvent{Code: overlay.KeyUp}},
		{"shift+left", overlay.KeyEvent{Code: overlay.KeyLeft, Shift: true}},
		{"ctrl+down", overlay.KeyEvent{Code: overlay.KeyDown, Ctrl: true}},
		{"pgup", overlay.KeyEvent{Code: overlay.KeyPageUp}},
		{"pgdown", overlay.KeyEvent{Code: overlay.KeyPageDown}},
		{"*", overlay.KeyEvent{Code: overlay.KeyRune, Rune: '*'}},
		{"a", overlay.KeyEvent{Code: overlay.KeyRune, Rune: 'a'}},
		{"z", overlay.KeyEvent{Code: overlay.KeyRune, Rune: 'z'}},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			ev, ok := translateKey(tc.key)
			if !ok {
				t.Fatalf("translateKey(%q) not handled", tc.key)
			}
			got, ok := ev.(overlay.KeyEvent)
			if !ok {
				t.Fatalf("translateKey(%q) = %T, want KeyEvent", tc.key, ev)
			}
			if got != tc.want {
				t.Errorf("translateKey(%q) = %+v, want %+v", tc.key, got, tc.want)
			}
		})
	}
}

func TestTranslateKeyIgnoresUnmapped(t *testing.T) {
	for _, key := range []string{"f1", "home", "ctrl+a", "A", "1"} {
		if _, ok := translateKey(key); ok {
			t.Errorf("translateKey(%q) should not be handled", key)
		}
	}
}

func TestWorldActivateRestoresMinimized(t *testing.T) {
	w := NewWorld()

	var h desktop.Handle
	for _, win := range w.windows {
		if win.Minimized {
			h = win.Handle
			break
		}
	}
	if h == 0 {
		t.Fatal("fixture has no minimized window")
	}

	w.Activate(h, true)

	front := w.Windows()[0]
	if front.Handle != h {
		t.Errorf("activated window not at front of Z-order, got %q", front.Title)
	}
	if front.Minimized {
		t.Error("activated window still minimized")
	}
	if front.Bounds.Empty() {
		t.Error("restored window has empty bounds")
	}
}
