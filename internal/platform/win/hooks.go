//go:build windows

package win

import (
	"fmt"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/keyjockey/keyjockey/internal/overlay"
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmKeyDown    = 0x0100
	wmSysKeyDown = 0x0104
	wmMouseMove  = 0x0200
	wmHotkey     = 0x0312

	modAlt     = 0x0001
	modControl = 0x0002
	modShift   = 0x0004
	modWin     = 0x0008

	hotkeyToggleID = 1
)

type kbdLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// CursorSignals is the slice of the cursor controller the global hooks
// drive.
type CursorSignals interface {
	Hidden() bool
	Hide()
	Reveal(animated bool)
}

// Hooks installs the low-level keyboard and mouse hooks plus the global
// toggle hotkey. Hook callbacks do no business logic beyond classification:
// they poke the cursor controller and post events to the overlay controller.
type Hooks struct {
	post   func(overlay.Event) bool
	cursor CursorSignals

	// overlayActive reports whether the overlay currently owns the cursor
	// (grid shown or arrow-move); typing must not hide the cursor then.
	overlayActive func() bool

	kbHook    uintptr
	mouseHook uintptr

	lastPointerPost time.Time
}

func NewHooks(post func(overlay.Event) bool, cursor CursorSignals, overlayActive func() bool) *Hooks {
	return &Hooks{post: post, cursor: cursor, overlayActive: overlayActive}
}

// Run installs the hooks and hotkey on a locked OS thread and pumps its
// message queue until the process exits. Installation failures are reported
// once and the program continues without the affected feature.
func (h *Hooks) Run(toggle string) {
	// Low-level hooks and RegisterHotKey both deliver through the message
	// queue of the installing thread.
	runtime.LockOSThread()

	kbProc := windows.NewCallback(h.keyboardProc)
	mouseProc := windows.NewCallback(h.mouseProc)
	hmod, _, _ := getModuleHandleW.Call(0)

	h.kbHook, _, _ = setWindowsHookExW.Call(whKeyboardLL, kbProc, hmod, 0)
	if h.kbHook == 0 {
		logger.Warn("keyboard hook install failed; typing will not hide the cursor")
	}
	h.mouseHook, _, _ = setWindowsHookExW.Call(whMouseLL, mouseProc, hmod, 0)
	if h.mouseHook == 0 {
		logger.Warn("mouse hook install failed; cursor reveal on movement disabled")
	}

	if err := registerToggleHotkey(toggle); err != nil {
		logger.Warn("hotkey registration failed", "hotkey", toggle, "err", err)
	}

	var m msg
	for {
		r, _, _ := getMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(r) <= 0 {
			break
		}
		if m.Message == wmHotkey && m.WParam == hotkeyToggleID {
			h.post(overlay.ToggleEvent{})
		}
	}

	h.uninstall()
}

func (h *Hooks) uninstall() {
	if h.kbHook != 0 {
		unhookWindowsHookEx.Call(h.kbHook)
	}
	if h.mouseHook != 0 {
		unhookWindowsHookEx.Call(h.mouseHook)
	}
	unregisterHotKey.Call(0, hotkeyToggleID)
}

func (h *Hooks) keyboardProc(code int32, wparam, lparam uintptr) uintptr {
	if code >= 0 && (wparam == wmKeyDown || wparam == wmSysKeyDown) {
		kb := (*kbdLLHookStruct)(unsafe.Pointer(lparam))
		if isTypingKey(kb.VkCode) && !h.overlayActive() {
			h.cursor.Hide()
		}
	}
	r, _, _ := callNextHookEx.Call(0, uintptr(code), wparam, lparam)
	return r
}

func (h *Hooks) mouseProc(code int32, wparam, lparam uintptr) uintptr {
	if code >= 0 && wparam == wmMouseMove {
		if h.cursor.Hidden() {
			h.cursor.Reveal(true)
		}
		// The machine only cares about movement in scroll passthrough;
		// throttle so the queue is not flooded by every pixel.
		if now := time.Now(); now.Sub(h.lastPointerPost) > 30*time.Millisecond {
			h.lastPointerPost = now
			h.post(overlay.PointerMovedEvent{})
		}
	}
	r, _, _ := callNextHookEx.Call(0, uintptr(code), wparam, lparam)
	return r
}

// isTypingKey classifies a virtual key as "the user is typing text".
// Modifiers, lock keys, function keys and mouse-adjacent keys like
// PrintScreen and ScrollLock do not count.
func isTypingKey(vk uint32) bool {
	switch {
	case vk >= 'A' && vk <= 'Z':
		return true
	case vk >= '0' && vk <= '9':
		return true
	case vk >= 0x60 && vk <= 0x6F: // numpad digits and operators
		return true
	case vk >= 0xBA && vk <= 0xC0: // OEM punctuation
		return true
	case vk >= 0xDB && vk <= 0xDF: // OEM brackets, quote
		return true
	}
	switch vk {
	case 0x08, 0x09, 0x0D, 0x20, 0x2E: // backspace, tab, enter, space, delete
		return true
	}
	return false
}

func registerToggleHotkey(chord string) error {
	mods, vk, err := parseChord(chord)
	if err != nil {
		return err
	}
	r, _, callErr := registerHotKey.Call(0, hotkeyToggleID, uintptr(mods), uintptr(vk))
	if r == 0 {
		return fmt.Errorf("RegisterHotKey: %w", callErr)
	}
	return nil
}

// parseChord turns "ctrl+alt+j" into RegisterHotKey arguments.
func parseChord(chord string) (mods uint32, vk uint32, err error) {
	parts := strings.Split(strings.ToLower(chord), "+")
	if len(parts) == 0 {
		return 0, 0, fmt.Errorf("empty hotkey")
	}
	for _, p := range parts[:len(parts)-1] {
		switch strings.TrimSpace(p) {
		case "ctrl", "control":
			mods |= modControl
		case "alt":
			mods |= modAlt
		case "shift":
			mods |= modShift
		case "win", "super", "meta":
			mods |= modWin
		default:
			return 0, 0, fmt.Errorf("unknown modifier %q", p)
		}
	}

	key := strings.TrimSpace(parts[len(parts)-1])
	switch key {
	case "space":
		return mods, 0x20, nil
	case "enter", "return":
		return mods, 0x0D, nil
	case "tab":
		return mods, 0x09, nil
	}
	if len(key) == 1 {
		c := key[0]
		if c >= 'a' && c <= 'z' {
			return mods, uint32(c - 32), nil
		}
		if c >= '0' && c <= '9' {
			return mods, uint32(c), nil
		}
	}
	return 0, 0, fmt.Errorf("unknown key %q", key)
}
