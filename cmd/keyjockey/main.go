// Package main implements KeyJockey, a keyboard-driven mouse: a global
// hotkey summons a labeled grid overlay, three typed letters jump the pointer
// to any cell on any monitor, Tab cycles windows by visible area, and typing
// filters them by title. The system cursor hides while typing and reveals
// with a shrink animation on movement.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/keyjockey/keyjockey/internal/config"
	"github.com/keyjockey/keyjockey/internal/platform/sim"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var debugMode bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "keyjockey",
		Short: "Keyboard-driven mouse positioning and window cycling",
		Long: `KeyJockey - a keyboard-driven mouse

A global hotkey summons a translucent labeled grid over every monitor.
Type a cell's three letters and the pointer jumps there; a fourth letter
refines to a sub-point. Tab cycles windows ranked by visible area, typing
filters them by title, and the system cursor hides while you type.`,
		Example: `  # Run KeyJockey
  keyjockey

  # Run with debug logging
  keyjockey --debug

  # Drive the interaction core in a terminal simulator
  keyjockey sim

  # Edit configuration
  keyjockey config edit`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugMode {
				log.SetLevel(log.DebugLevel)
			}
			return runOverlay()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the overlay in a terminal simulator",
		Long: `Run the interaction core against a fake desktop in the terminal

No hooks, hotkeys or OS windows are involved; keys map to the same events
the real overlay would produce. Useful for trying the interaction model
and for debugging mode transitions on any platform.`,
		Example: `  # Start the simulator, then press ctrl+t to summon the grid
  keyjockey sim`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugMode {
				log.SetLevel(log.DebugLevel)
			}
			cfg, err := config.LoadUserConfig()
			if err != nil {
				log.Warn("failed to load config, using defaults", "err", err)
				cfg = config.DefaultConfig()
			}
			return sim.Run(cfg)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage KeyJockey configuration",
		Long:  `Manage KeyJockey configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the KeyJockey configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the KeyJockey configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	rootCmd.AddCommand(simCmd, configCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resetConfigToDefaults() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	var sb strings.Builder
	sb.WriteString("# KeyJockey Configuration File\n")
	sb.WriteString("# Appearance, timing and movement settings for the grid overlay\n")
	sb.WriteString("# A base_hue below 0 picks a random hue and persists it\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n\n")

	data, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", configPath)
	fmt.Println("\nYou can customize it with: keyjockey config edit")
	return nil
}
