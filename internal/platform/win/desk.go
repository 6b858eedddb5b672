//go:build windows

package win

import (
	"image"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/keyjockey/keyjockey/internal/desktop"
	"github.com/keyjockey/keyjockey/internal/grid"
)

const (
	mdtEffectiveDPI = 0

	gwOwner              = 4
	gwlExStyle     int32 = -20
	wsExToolWindow       = 0x00000080
	wsExAppWindow        = 0x00040000

	swRestore = 9
)

// Desk answers the OS queries the grid builder and the window enumerator
// need, and activates windows. It implements overlay.Desktop.
type Desk struct {
	// overlayHWnd is excluded from enumeration so the overlay never cycles
	// to itself.
	overlayHWnd uintptr
}

func NewDesk() *Desk { return &Desk{} }

// SetOverlayWindow registers the overlay's own window handle for exclusion.
func (d *Desk) SetOverlayWindow(hwnd uintptr) { d.overlayHWnd = hwnd }

// Displays enumerates monitors in OS order with their effective DPI.
func (d *Desk) Displays() []grid.Display {
	var displays []grid.Display

	cb := windows.NewCallback(func(hMonitor, hdc, lprc, lparam uintptr) uintptr {
		var mi monitorInfo
		mi.Size = uint32(unsafe.Sizeof(mi))
		if r, _, _ := getMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi))); r == 0 {
			return 1
		}

		dpi := uint32(96)
		var dpiY uint32
		// Per-monitor DPI needs Win 8.1+; fall back to 96 when unavailable.
		if getDpiForMonitor.Find() == nil {
			getDpiForMonitor.Call(hMonitor, mdtEffectiveDPI,
				uintptr(unsafe.Pointer(&dpi)), uintptr(unsafe.Pointer(&dpiY)))
		}

		displays = append(displays, grid.Display{
			Bounds: image.Rect(
				int(mi.Work.Left), int(mi.Work.Top),
				int(mi.Work.Right), int(mi.Work.Bottom),
			),
			DPI: int(dpi),
		})
		return 1
	})

	if r, _, err := enumDisplayMonitors.Call(0, 0, cb, 0); r == 0 {
		logger.Warn("monitor enumeration failed", "err", err)
	}
	return displays
}

// Windows enumerates candidate top-level windows front-to-back: shown,
// titled, not a tool window, not the overlay itself. Minimized state is
// carried through for the enumerator's split.
func (d *Desk) Windows() []desktop.Window {
	var out []desktop.Window

	cb := windows.NewCallback(func(hwnd, lparam uintptr) uintptr {
		if !d.isCandidate(hwnd) {
			return 1
		}
		var rc rect
		if r, _, _ := getWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rc))); r == 0 {
			return 1
		}
		minimized, _, _ := isIconic.Call(hwnd)
		out = append(out, desktop.Window{
			Handle:    desktop.Handle(hwnd),
			Bounds:    image.Rect(int(rc.Left), int(rc.Top), int(rc.Right), int(rc.Bottom)),
			Title:     windowText(hwnd),
			Minimized: minimized != 0,
		})
		return 1
	})

	if r, _, err := enumWindows.Call(cb, 0); r == 0 {
		logger.Warn("window enumeration failed", "err", err)
	}
	return out
}

// Activate brings a window to the foreground, restoring it first when it is
// minimized.
func (d *Desk) Activate(h desktop.Handle, restore bool) {
	hwnd := uintptr(h)
	if restore {
		showWindow.Call(hwnd, swRestore)
	}
	if r, _, err := setForegroundWindow.Call(hwnd); r == 0 {
		logger.Warn("could not bring window to foreground", "hwnd", hwnd, "err", err)
	}
}

func (d *Desk) isCandidate(hwnd uintptr) bool {
	if hwnd == d.overlayHWnd {
		return false
	}
	if v, _, _ := isWindowVisible.Call(hwnd); v == 0 {
		return false
	}
	if strings.TrimSpace(windowText(hwnd)) == "" {
		return false
	}
	if owner, _, _ := getWindow.Call(hwnd, gwOwner); owner != 0 {
		return false
	}
	ex, _, _ := getWindowLongPtrW.Call(hwnd, uintptr(int(gwlExStyle)))
	exStyle := uint32(ex)
	if exStyle&wsExToolWindow != 0 && exStyle&wsExAppWindow == 0 {
		return false
	}
	return true
}

func windowText(hwnd uintptr) string {
	l, _, _ := getWindowTextLengthW.Call(hwnd)
	if l == 0 {
		return ""
	}
	buf := make([]uint16, l+1)
	getWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), l+1)
	return windows.UTF16ToString(buf)
}
