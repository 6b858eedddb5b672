//go:build windows

package win

import (
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/keyjockey/keyjockey/internal/overlay"
)

var (
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
	getKeyState      = user32.NewProc("GetKeyState")
	translateMessage = user32.NewProc("TranslateMessage")
	dispatchMessageW = user32.NewProc("DispatchMessageW")
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79

	wsPopup          = 0x80000000
	wsExLayered      = 0x00080000
	wsExTransparent  = 0x00000020
	wsExTopmost      = 0x00000008
	wsExToolWindowEx = 0x00000080
	wsExNoActivate   = 0x08000000

	lwaAlpha = 0x00000002

	swHide    = 0
	swShow    = 5
	swpNoMove = 0x0002
	swpNoSize = 0x0001

	wmKeyUp     = 0x0101
	wmSysKeyUp  = 0x0105
	wmKillFocus = 0x0008
	wmChar      = 0x0102
	wmDestroy   = 0x0002

	vkShift   = 0x10
	vkControl = 0x11
)

type wndClassExW struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   uintptr
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

// Surface is the layered overlay window spanning the whole virtual desktop.
// It implements overlay.Surface; its window procedure translates keyboard
// and focus messages into events for the controller.
type Surface struct {
	post func(overlay.Event) bool

	mu      sync.Mutex
	hwnd    uintptr
	state   overlay.State
	visible bool
	ready   chan struct{}
}

func NewSurface(post func(overlay.Event) bool) *Surface {
	return &Surface{post: post, ready: make(chan struct{})}
}

// HWnd returns the overlay's window handle once Run has created it.
func (s *Surface) HWnd() uintptr {
	<-s.ready
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hwnd
}

// Run creates the window on a locked OS thread and pumps its messages until
// the window is destroyed.
func (s *Surface) Run() {
	runtime.LockOSThread()

	className, _ := windows.UTF16PtrFromString("KeyJockeyOverlay")
	hmod, _, _ := getModuleHandleW.Call(0)

	wc := wndClassExW{
		WndProc:   windows.NewCallback(s.wndProc),
		Instance:  hmod,
		ClassName: className,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if r, _, err := registerClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
		logger.Error("overlay window class registration failed", "err", err)
		close(s.ready)
		return
	}

	x, _, _ := getSystemMetrics.Call(smXVirtualScreen)
	y, _, _ := getSystemMetrics.Call(smYVirtualScreen)
	w, _, _ := getSystemMetrics.Call(smCXVirtualScreen)
	hgt, _, _ := getSystemMetrics.Call(smCYVirtualScreen)

	hwnd, _, err := createWindowExW.Call(
		wsExLayered|wsExTopmost|wsExToolWindowEx,
		uintptr(unsafe.Pointer(className)),
		0,
		wsPopup,
		x, y, w, hgt,
		0, 0, hmod, 0,
	)
	if hwnd == 0 {
		logger.Error("overlay window creation failed", "err", err)
		close(s.ready)
		return
	}

	s.mu.Lock()
	s.hwnd = hwnd
	s.mu.Unlock()
	close(s.ready)

	var m msg
	for {
		r, _, _ := getMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(r) <= 0 {
			return
		}
		translateMessage.Call(uintptr(unsafe.Pointer(&m)))
		dispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// Close destroys the overlay window, ending Run's message loop.
func (s *Surface) Close() {
	if hwnd := s.HWnd(); hwnd != 0 {
		destroyWindow.Call(hwnd)
	}
}

// Visible reports whether the overlay is currently shown. Safe from any
// goroutine; the global hooks consult it.
func (s *Surface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Show makes the overlay visible at the given alpha and takes focus.
func (s *Surface) Show(alpha int) {
	hwnd := s.HWnd()
	if hwnd == 0 {
		return
	}
	s.mu.Lock()
	s.visible = true
	s.mu.Unlock()
	setLayeredWindowAttributes.Call(hwnd, 0, uintptr(uint8(alpha)), lwaAlpha)
	showWindow.Call(hwnd, swShow)
	setForegroundWindow.Call(hwnd)
}

func (s *Surface) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
	if hwnd := s.HWnd(); hwnd != 0 {
		showWindow.Call(hwnd, swHide)
	}
}

func (s *Surface) SetAlpha(alpha int) {
	if hwnd := s.HWnd(); hwnd != 0 {
		setLayeredWindowAttributes.Call(hwnd, 0, uintptr(uint8(alpha)), lwaAlpha)
	}
}

// SetClickThrough toggles WS_EX_TRANSPARENT so input falls through to the
// windows beneath.
func (s *Surface) SetClickThrough(enabled bool) {
	hwnd := s.HWnd()
	if hwnd == 0 {
		return
	}
	ex := uintptr(wsExLayered | wsExTopmost | wsExToolWindowEx)
	if enabled {
		ex |= wsExTransparent | wsExNoActivate
	}
	setWindowLongPtrW.Call(hwnd, uintptr(int(gwlExStyle)), ex)
}

// Render stores the latest state and schedules a repaint.
func (s *Surface) Render(st overlay.State) {
	s.mu.Lock()
	s.state = st
	hwnd := s.hwnd
	s.mu.Unlock()
	if hwnd != 0 {
		invalidateRect.Call(hwnd, 0, 1)
	}
}

func (s *Surface) wndProc(hwnd uintptr, message uint32, wparam, lparam uintptr) uintptr {
	switch message {
	case wmKeyDown, wmSysKeyDown:
		if ev, ok := s.translateKey(uint32(wparam)); ok {
			s.post(ev)
			return 0
		}
	case wmKeyUp, wmSysKeyUp:
		if uint32(wparam) == vkShift {
			s.post(overlay.ShiftUpEvent{})
			return 0
		}
	case wmKillFocus:
		s.post(overlay.FocusLostEvent{})
		return 0
	}
	r, _, _ := defWindowProcW.Call(hwnd, uintptr(message), wparam, lparam)
	return r
}

// translateKey maps a virtual key plus live modifier state to a machine
// event. Unmapped keys fall through to DefWindowProc.
func (s *Surface) translateKey(vk uint32) (overlay.Event, bool) {
	shift := keyHeld(vkShift)
	ctrl := keyHeld(vkControl)

	switch vk {
	case vkShift:
		return overlay.ShiftDownEvent{}, true
	case 0x1B:
		return overlay.KeyEvent{Code: overlay.KeyEscape}, true
	case 0x0D:
		return overlay.KeyEvent{Code: overlay.KeyEnter, Shift: shift, Ctrl: ctrl}, true
	case 0x08:
		return overlay.KeyEvent{Code: overlay.KeyBackspace}, true
	case 0x09:
		return overlay.KeyEvent{Code: overlay.KeyTab, Shift: shift}, true
	case 0x20:
		return overlay.KeyEvent{Code: overlay.KeySpace}, true
	case 0x26:
		return overlay.KeyEvent{Code: overlay.KeyUp, Shift: shift, Ctrl: ctrl}, true
	case 0x28:
		return overlay.KeyEvent{Code: overlay.KeyDown, Shift: shift, Ctrl: ctrl}, true
	case 0x25:
		return overlay.KeyEvent{Code: overlay.KeyLeft, Shift: shift, Ctrl: ctrl}, true
	case 0x27:
		return overlay.KeyEvent{Code: overlay.KeyRight, Shift: shift, Ctrl: ctrl}, true
	case 0x21:
		return overlay.KeyEvent{Code: overlay.KeyPageUp}, true
	case 0x22:
		return overlay.KeyEvent{Code: overlay.KeyPageDown}, true
	}

	if vk >= 'A' && vk <= 'Z' {
		r := rune(vk - 'A' + 'a')
		return overlay.KeyEvent{Code: overlay.KeyRune, Rune: r, Shift: shift, Ctrl: ctrl}, true
	}
	// '*' arrives as shifted '8' on common layouts.
	if vk == '8' && shift {
		return overlay.KeyEvent{Code: overlay.KeyRune, Rune: '*', Shift: true}, true
	}
	return nil, false
}

func keyHeld(vk uint32) bool {
	r, _, _ := getKeyState.Call(uintptr(vk))
	return uint16(r)&0x8000 != 0
}
