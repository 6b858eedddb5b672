//go:build windows

// Package win is the Windows adapter: monitor and window enumeration, input
// synthesis, the layered overlay window, global hooks and the system-cursor
// chrome. It translates OS callbacks into events for the overlay controller
// and executes the controller's commands; no interaction logic lives here.
package win

import (
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "win",
})

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	shcore   = windows.NewLazySystemDLL("shcore.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	// Monitors.
	enumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	getMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	getDpiForMonitor    = shcore.NewProc("GetDpiForMonitor")

	// Windows.
	enumWindows          = user32.NewProc("EnumWindows")
	isWindowVisible      = user32.NewProc("IsWindowVisible")
	isIconic             = user32.NewProc("IsIconic")
	getWindowTextW       = user32.NewProc("GetWindowTextW")
	getWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	getWindowLongPtrW    = user32.NewProc("GetWindowLongPtrW")
	getWindowRect        = user32.NewProc("GetWindowRect")
	getWindow            = user32.NewProc("GetWindow")
	showWindow           = user32.NewProc("ShowWindow")
	setForegroundWindow  = user32.NewProc("SetForegroundWindow")

	// Pointer.
	getCursorPos = user32.NewProc("GetCursorPos")
	setCursorPos = user32.NewProc("SetCursorPos")
	sendInput    = user32.NewProc("SendInput")

	// Hooks and hotkey.
	setWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	registerHotKey      = user32.NewProc("RegisterHotKey")
	unregisterHotKey    = user32.NewProc("UnregisterHotKey")
	getMessageW         = user32.NewProc("GetMessageW")
	getModuleHandleW    = kernel32.NewProc("GetModuleHandleW")

	// Overlay window.
	createWindowExW            = user32.NewProc("CreateWindowExW")
	destroyWindow              = user32.NewProc("DestroyWindow")
	registerClassExW           = user32.NewProc("RegisterClassExW")
	defWindowProcW             = user32.NewProc("DefWindowProcW")
	setLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	setWindowLongPtrW          = user32.NewProc("SetWindowLongPtrW")
	invalidateRect             = user32.NewProc("InvalidateRect")

	// Cursor chrome.
	setSystemCursor      = user32.NewProc("SetSystemCursor")
	copyImage            = user32.NewProc("CopyImage")
	loadCursorW          = user32.NewProc("LoadCursorW")
	createCursor         = user32.NewProc("CreateCursor")
	destroyCursor        = user32.NewProc("DestroyCursor")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfo struct {
	Size    uint32
	Monitor rect
	Work    rect
	Flags   uint32
}

type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}
