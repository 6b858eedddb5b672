//go:build windows

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/keyjockey/keyjockey/internal/config"
	"github.com/keyjockey/keyjockey/internal/cursor"
	"github.com/keyjockey/keyjockey/internal/overlay"
	"github.com/keyjockey/keyjockey/internal/platform/win"
	"github.com/keyjockey/keyjockey/internal/theme"
)

// runOverlay wires the machine to the real desktop: the layered overlay
// window, the low-level hooks, input synthesis and the system-cursor chrome.
func runOverlay() error {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	if path, err := config.GetConfigPath(); err == nil {
		log.Info("configuration", "path", path)
	}

	if hue, picked := theme.ResolveHue(cfg.Appearance.BaseHue); picked {
		cfg.Appearance.BaseHue = int(hue)
		if err := cfg.Save(); err != nil {
			log.Warn("could not persist picked hue", "err", err)
		}
	}

	cur := cursor.NewController(win.NewChrome())
	// Whatever path the process exits by, the system cursors come back.
	defer cur.ForceRestore()

	// The surface and the controller reference each other; the post closure
	// breaks the cycle.
	var ctrl *overlay.Controller
	post := func(ev overlay.Event) bool { return ctrl.Post(ev) }

	surface := win.NewSurface(post)
	go surface.Run()
	defer surface.Close()

	desk := win.NewDesk()
	desk.SetOverlayWindow(surface.HWnd())

	ctrl = overlay.NewController(cfg, surface, win.NewPointer(), desk, cur)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := config.Watch(ctx, func(c *config.Config) {
			ctrl.Post(overlay.ConfigChangedEvent{Cfg: c})
		}); err != nil {
			log.Warn("config watcher stopped", "err", err)
		}
	}()

	hooks := win.NewHooks(post, cur, surface.Visible)
	go hooks.Run(cfg.Hotkey.Toggle)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		cancel()
	}()

	log.Info("ready", "hotkey", cfg.Hotkey.Toggle)
	if err := ctrl.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("controller error: %w", err)
	}
	return nil
}
