//go:build windows

package win

import (
	"fmt"
	"unsafe"
)

const (
	ocrNormal   = 32512
	ocrIBeam    = 32513
	ocrCross    = 32515
	ocrSizeNWSE = 32642
	ocrSizeNESW = 32643
	ocrSizeWE   = 32644
	ocrSizeNS   = 32645
	ocrSizeAll  = 32646
	ocrHand     = 32649

	idcArrow = 32512

	imageCursor        = 2
	lrCopyFromResource = 0x4000

	spiSetCursors = 0x0057
)

// cursorIDs are the system cursor shapes that get blanked while typing.
var cursorIDs = []uint32{
	ocrNormal, ocrIBeam, ocrHand, ocrCross,
	ocrSizeAll, ocrSizeNWSE, ocrSizeNESW, ocrSizeWE, ocrSizeNS,
}

// Chrome swaps the system cursor set in and out. It implements
// cursor.Chrome. Whatever happens, a final Restore puts the stock cursors
// back; the blanked state never survives the process.
type Chrome struct{}

func NewChrome() *Chrome { return &Chrome{} }

// Blank replaces every common cursor shape with a fully transparent one.
func (c *Chrome) Blank() error {
	for _, id := range cursorIDs {
		h, err := transparentCursor()
		if err != nil {
			return err
		}
		// SetSystemCursor consumes the handle; each shape needs its own.
		if r, _, callErr := setSystemCursor.Call(h, uintptr(id)); r == 0 {
			destroyCursor.Call(h)
			return fmt.Errorf("SetSystemCursor(%d): %w", id, callErr)
		}
	}
	return nil
}

// SetSize replaces the arrow cursor with a copy scaled to px. Only the
// arrow is animated; the other shapes come back on the final Restore.
func (c *Chrome) SetSize(px int) error {
	arrow, _, _ := loadCursorW.Call(0, idcArrow)
	if arrow == 0 {
		return fmt.Errorf("LoadCursor(IDC_ARROW) failed")
	}
	scaled, _, err := copyImage.Call(arrow, imageCursor,
		uintptr(int32(px)), uintptr(int32(px)), lrCopyFromResource)
	if scaled == 0 {
		return fmt.Errorf("CopyImage to %dpx: %w", px, err)
	}
	if r, _, callErr := setSystemCursor.Call(scaled, ocrNormal); r == 0 {
		destroyCursor.Call(scaled)
		return fmt.Errorf("SetSystemCursor: %w", callErr)
	}
	return nil
}

// Restore reloads the user's configured cursor set from the registry,
// discarding every replacement in one call.
func (c *Chrome) Restore() error {
	if r, _, err := systemParametersInfo.Call(spiSetCursors, 0, 0, 0); r == 0 {
		return fmt.Errorf("SystemParametersInfo(SPI_SETCURSORS): %w", err)
	}
	return nil
}

// transparentCursor builds a 32x32 all-transparent monochrome cursor.
func transparentCursor() (uintptr, error) {
	// AND mask all ones, XOR mask all zeros: every pixel transparent.
	var andMask [128]byte
	var xorMask [128]byte
	for i := range andMask {
		andMask[i] = 0xFF
	}
	h, _, err := createCursor.Call(0, 0, 0, 32, 32,
		uintptr(unsafe.Pointer(&andMask[0])),
		uintptr(unsafe.Pointer(&xorMask[0])))
	if h == 0 {
		return 0, fmt.Errorf("CreateCursor: %w", err)
	}
	return h, nil
}
