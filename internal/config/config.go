// Package config holds the user-tunable settings and the fixed product
// constants. Settings live in a TOML file under the XDG config directory and
// are hot-reloaded when the file changes on disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk user configuration.
type Config struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Timing     TimingConfig     `toml:"timing"`
	Movement   MovementConfig   `toml:"movement"`
	Hotkey     HotkeyConfig     `toml:"hotkey"`
}

// AppearanceConfig controls the overlay's look.
type AppearanceConfig struct {
	// BaseHue seeds the generated palette, in degrees. Negative means
	// "pick a random hue once and persist it".
	BaseHue int `toml:"base_hue"`

	// Alpha levels for the overlay window in its three states.
	GridAlpha int `toml:"grid_alpha"`
	PeekAlpha int `toml:"peek_alpha"`
	MoveAlpha int `toml:"move_alpha"`

	// CellSizeDIP is the target grid cell edge in device-independent
	// pixels.
	CellSizeDIP int `toml:"cell_size_dip"`
}

// TimingConfig holds the user-tunable delays, in milliseconds.
type TimingConfig struct {
	PrefixResetMS   int `toml:"prefix_reset_ms"`
	PeekPromotionMS int `toml:"peek_promotion_ms"`
	ActivationMS    int `toml:"activation_ms"`
}

// PrefixReset is the typed-label reset timeout as a duration.
func (t TimingConfig) PrefixReset() time.Duration {
	return time.Duration(t.PrefixResetMS) * time.Millisecond
}

// PeekPromotion is the peek-hold promotion timeout as a duration.
func (t TimingConfig) PeekPromotion() time.Duration {
	return time.Duration(t.PeekPromotionMS) * time.Millisecond
}

// Activation is the hide-before-click delay as a duration.
func (t TimingConfig) Activation() time.Duration {
	return time.Duration(t.ActivationMS) * time.Millisecond
}

// MovementConfig controls cursor nudging and scrolling.
type MovementConfig struct {
	Step          int `toml:"step"`
	FineStep      int `toml:"fine_step"`
	CoarseStep    int `toml:"coarse_step"`
	ScrollNotches int `toml:"scroll_notches"`
}

// HotkeyConfig names the global activation hotkey.
type HotkeyConfig struct {
	// Toggle is the system-wide show/hide chord, e.g. "ctrl+alt+j".
	Toggle string `toml:"toggle"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			BaseHue:     -1,
			GridAlpha:   GridAlpha,
			PeekAlpha:   PeekAlpha,
			MoveAlpha:   MoveAlpha,
			CellSizeDIP: DefaultCellSizeDIP,
		},
		Timing: TimingConfig{
			PrefixResetMS:   int(TypedPrefixResetTimeout / time.Millisecond),
			PeekPromotionMS: int(PeekPromotionTimeout / time.Millisecond),
			ActivationMS:    int(ActivationDelay / time.Millisecond),
		},
		Movement: MovementConfig{
			Step:          NudgeStep,
			FineStep:      NudgeFineStep,
			CoarseStep:    NudgeCoarseStep,
			ScrollNotches: ScrollNotches,
		},
		Hotkey: HotkeyConfig{
			Toggle: "ctrl+alt+j",
		},
	}
}

// Validate clamps out-of-range values back to their defaults rather than
// failing, so a hand-edited file degrades gracefully.
func (c *Config) Validate() {
	def := DefaultConfig()

	if c.Appearance.GridAlpha < 0 || c.Appearance.GridAlpha > 255 {
		c.Appearance.GridAlpha = def.Appearance.GridAlpha
	}
	if c.Appearance.PeekAlpha < 0 || c.Appearance.PeekAlpha > 255 {
		c.Appearance.PeekAlpha = def.Appearance.PeekAlpha
	}
	if c.Appearance.MoveAlpha < 0 || c.Appearance.MoveAlpha > 255 {
		c.Appearance.MoveAlpha = def.Appearance.MoveAlpha
	}
	if c.Appearance.BaseHue >= 360 {
		c.Appearance.BaseHue %= 360
	}
	if c.Appearance.CellSizeDIP < 20 {
		c.Appearance.CellSizeDIP = def.Appearance.CellSizeDIP
	}
	if c.Timing.PrefixResetMS <= 0 {
		c.Timing.PrefixResetMS = def.Timing.PrefixResetMS
	}
	if c.Timing.PeekPromotionMS <= 0 {
		c.Timing.PeekPromotionMS = def.Timing.PeekPromotionMS
	}
	if c.Timing.ActivationMS < 0 {
		c.Timing.ActivationMS = def.Timing.ActivationMS
	}
	if c.Movement.Step <= 0 {
		c.Movement.Step = def.Movement.Step
	}
	if c.Movement.FineStep <= 0 {
		c.Movement.FineStep = def.Movement.FineStep
	}
	if c.Movement.CoarseStep <= 0 {
		c.Movement.CoarseStep = def.Movement.CoarseStep
	}
	if c.Movement.ScrollNotches <= 0 {
		c.Movement.ScrollNotches = def.Movement.ScrollNotches
	}
	if c.Hotkey.Toggle == "" {
		c.Hotkey.Toggle = def.Hotkey.Toggle
	}
}

// GetConfigPath returns the path of the configuration file.
func GetConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("keyjockey", "keyjockey.toml"))
}

// LoadUserConfig reads the configuration file, creating it with defaults on
// first run. A malformed file falls back to defaults with an error so the
// caller can warn without dying.
func LoadUserConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), fmt.Errorf("could not determine config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		if saveErr := cfg.Save(); saveErr != nil {
			return cfg, fmt.Errorf("could not write default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("could not read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("could not parse %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to its canonical path.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
