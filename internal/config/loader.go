package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pixelhost/internal/platform"
)

// Load loads the host configuration.
// Search order: customPath -> ~/.pixelhost/configs/host.yaml -> ./configs/host.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("host.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/host.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.validate()
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHostYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.validate()
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pixelhost", "configs", filename)
}

func (c Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Timing.TargetFPS <= 0 {
		return fmt.Errorf("config: invalid target fps %d", c.Timing.TargetFPS)
	}
	if c.Audio.SafetyFactor < 1.0 {
		return fmt.Errorf("config: audio safety factor %v below 1.0 will starve the stream", c.Audio.SafetyFactor)
	}
	return nil
}

// LoopOptions converts the configuration to the loop's option set.
func (c Config) LoopOptions() platform.Options {
	return platform.Options{
		Width:                c.Window.Width,
		Height:               c.Window.Height,
		TargetFPS:            c.Timing.TargetFPS,
		MaxDeltaSeconds:      c.Timing.MaxDeltaSeconds,
		SpinWindow:           time.Duration(c.Timing.SpinWindowMs * float64(time.Millisecond)),
		AudioSafetyFactor:    c.Audio.SafetyFactor,
		AudioCapacitySeconds: c.Audio.CapacitySeconds,
		AudioMarginSeconds:   c.Audio.MarginSeconds,
	}
}
