//go:build windows

package win

import (
	"image"
	"unsafe"
)

const (
	inputMouse = 0

	mouseEventfMove      = 0x0001
	mouseEventfLeftDown  = 0x0002
	mouseEventfLeftUp    = 0x0004
	mouseEventfRightDown = 0x0008
	mouseEventfRightUp   = 0x0010
	mouseEventfWheel     = 0x0800

	wheelDelta = 120
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// winInput mirrors the Win32 INPUT struct with its union flattened into a
// fixed blob, which keeps the layout correct on amd64.
type winInput struct {
	Type uint32
	_    uint32
	Data [32]byte
}

// Pointer synthesizes mouse input with SendInput/SetCursorPos. It implements
// overlay.Pointer.
type Pointer struct{}

func NewPointer() *Pointer { return &Pointer{} }

// Position reports the pointer's current virtual-desktop location.
func (p *Pointer) Position() image.Point {
	var pt point
	getCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	return image.Pt(int(pt.X), int(pt.Y))
}

// MoveTo warps the pointer to an absolute point.
func (p *Pointer) MoveTo(to image.Point) {
	setCursorPos.Call(uintptr(int32(to.X)), uintptr(int32(to.Y)))
}

// MoveBy nudges the pointer relative to where it is now. Absolute
// repositioning avoids the OS's mouse acceleration on relative moves.
func (p *Pointer) MoveBy(dx, dy int) {
	cur := p.Position()
	p.MoveTo(image.Pt(cur.X+dx, cur.Y+dy))
}

// Click presses and releases a mouse button at the current position.
func (p *Pointer) Click(right bool) {
	down, up := uint32(mouseEventfLeftDown), uint32(mouseEventfLeftUp)
	if right {
		down, up = mouseEventfRightDown, mouseEventfRightUp
	}
	send(
		mouse(down, 0),
		mouse(up, 0),
	)
}

// Scroll rotates the wheel toward the window under the pointer.
func (p *Pointer) Scroll(up bool, notches int) {
	delta := int32(notches * wheelDelta)
	if !up {
		delta = -delta
	}
	send(mouse(mouseEventfWheel, uint32(delta)))
}

func mouse(flags, data uint32) winInput {
	var in winInput
	in.Type = inputMouse
	mi := (*mouseInput)(unsafe.Pointer(&in.Data[0]))
	mi.DwFlags = flags
	mi.MouseData = data
	return in
}

func send(inputs ...winInput) {
	if len(inputs) == 0 {
		return
	}
	r, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if r == 0 {
		logger.Warn("SendInput failed", "err", err)
	}
}
