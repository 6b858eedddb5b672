//go:build !windows

package main

import "fmt"

// runOverlay is the desktop entry point. The layered overlay, global hooks
// and cursor chrome exist only on Windows; elsewhere the simulator is the
// way to drive the interaction core.
func runOverlay() error {
	return fmt.Errorf("the desktop overlay requires Windows; try 'keyjockey sim'")
}
