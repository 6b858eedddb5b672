package config_test

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/keyjockey/keyjockey/internal/config"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Appearance.CellSizeDIP != config.DefaultCellSizeDIP {
		t.Errorf("cell size = %d, want %d", cfg.Appearance.CellSizeDIP, config.DefaultCellSizeDIP)
	}
	if cfg.Appearance.GridAlpha != config.GridAlpha {
		t.Errorf("grid alpha = %d, want %d", cfg.Appearance.GridAlpha, config.GridAlpha)
	}
	if cfg.Appearance.BaseHue != -1 {
		t.Errorf("base hue = %d, want -1 (random)", cfg.Appearance.BaseHue)
	}
	if cfg.Hotkey.Toggle == "" {
		t.Error("expected a default toggle hotkey")
	}
}

func TestDefaultTimings(t *testing.T) {
	cfg := config.DefaultConfig()

	if got := cfg.Timing.PrefixReset(); got != 3*time.Second {
		t.Errorf("prefix reset = %v, want 3s", got)
	}
	if got := cfg.Timing.PeekPromotion(); got != 4*time.Second {
		t.Errorf("peek promotion = %v, want 4s", got)
	}
	if got := cfg.Timing.Activation(); got != 50*time.Millisecond {
		t.Errorf("activation delay = %v, want 50ms", got)
	}
}

func TestDefaultMovement(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.Movement.FineStep >= cfg.Movement.Step {
		t.Error("fine step should be smaller than the normal step")
	}
	if cfg.Movement.CoarseStep <= cfg.Movement.Step {
		t.Error("coarse step should be larger than the normal step")
	}
	if cfg.Movement.ScrollNotches < 1 {
		t.Errorf("scroll notches = %d, want >= 1", cfg.Movement.ScrollNotches)
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestValidateClampsBadValues(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.GridAlpha = 999
	cfg.Appearance.CellSizeDIP = 3
	cfg.Timing.PrefixResetMS = -5
	cfg.Movement.Step = 0
	cfg.Hotkey.Toggle = ""

	cfg.Validate()

	def := config.DefaultConfig()
	if cfg.Appearance.GridAlpha != def.Appearance.GridAlpha {
		t.Errorf("grid alpha = %d, want default %d", cfg.Appearance.GridAlpha, def.Appearance.GridAlpha)
	}
	if cfg.Appearance.CellSizeDIP != def.Appearance.CellSizeDIP {
		t.Errorf("cell size = %d, want default %d", cfg.Appearance.CellSizeDIP, def.Appearance.CellSizeDIP)
	}
	if cfg.Timing.PrefixResetMS != def.Timing.PrefixResetMS {
		t.Errorf("prefix reset = %d, want default %d", cfg.Timing.PrefixResetMS, def.Timing.PrefixResetMS)
	}
	if cfg.Movement.Step != def.Movement.Step {
		t.Errorf("step = %d, want default %d", cfg.Movement.Step, def.Movement.Step)
	}
	if cfg.Hotkey.Toggle != def.Hotkey.Toggle {
		t.Errorf("toggle = %q, want default %q", cfg.Hotkey.Toggle, def.Hotkey.Toggle)
	}
}

func TestValidateWrapsHue(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.BaseHue = 725
	cfg.Validate()
	if cfg.Appearance.BaseHue != 5 {
		t.Errorf("hue = %d, want 5", cfg.Appearance.BaseHue)
	}
}

// =============================================================================
// Round-trip Tests
// =============================================================================

func TestConfigTOMLRoundTrip(t *testing.T) {
	in := config.DefaultConfig()
	in.Appearance.BaseHue = 210
	in.Movement.Step = 25
	in.Hotkey.Toggle = "ctrl+shift+space"

	data, err := toml.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := config.DefaultConfig()
	if err := toml.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Appearance.BaseHue != 210 {
		t.Errorf("base hue = %d, want 210", out.Appearance.BaseHue)
	}
	if out.Movement.Step != 25 {
		t.Errorf("step = %d, want 25", out.Movement.Step)
	}
	if out.Hotkey.Toggle != "ctrl+shift+space" {
		t.Errorf("toggle = %q, want ctrl+shift+space", out.Hotkey.Toggle)
	}
}

func TestPartialTOMLKeepsDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	err := toml.Unmarshal([]byte("[movement]\nstep = 4\n"), cfg)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cfg.Validate()

	if cfg.Movement.Step != 4 {
		t.Errorf("step = %d, want 4", cfg.Movement.Step)
	}
	if cfg.Timing.PrefixResetMS != config.DefaultConfig().Timing.PrefixResetMS {
		t.Error("unset timing section should keep defaults")
	}
}
