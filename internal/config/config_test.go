package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("default window = %dx%d, expected 640x480", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Timing.TargetFPS != 60 {
		t.Errorf("default target_fps = %d, expected 60", cfg.Timing.TargetFPS)
	}
	if cfg.Audio.SafetyFactor != 1.5 {
		t.Errorf("default safety_factor = %v, expected 1.5", cfg.Audio.SafetyFactor)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.yaml")
	body := `
window:
  width: 320
  height: 240
timing:
  target_fps: 30
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}
	if cfg.Window.Width != 320 || cfg.Window.Height != 240 {
		t.Errorf("window = %dx%d, expected 320x240", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Timing.TargetFPS != 30 {
		t.Errorf("target_fps = %d, expected 30", cfg.Timing.TargetFPS)
	}
	// Unset sections keep their defaults
	if cfg.Audio.CapacitySeconds != 0.5 {
		t.Errorf("capacity_seconds = %v, expected default 0.5", cfg.Audio.CapacitySeconds)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path succeeded, expected an error")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.yaml")
	body := `
window:
  width: -1
  height: 240
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with a negative width succeeded, expected an error")
	}
}

func TestApplyLatencyPreset(t *testing.T) {
	cases := []struct {
		preset     LatencyPreset
		wantFactor float64
	}{
		{LatencyLow, 1.1},
		{LatencyBalanced, 1.5},
		{LatencySafe, 2.0},
	}

	for _, tc := range cases {
		cfg := Default()
		ApplyLatencyPreset(&cfg, tc.preset)
		if cfg.Audio.SafetyFactor != tc.wantFactor {
			t.Errorf("preset %q safety_factor = %v, expected %v", tc.preset, cfg.Audio.SafetyFactor, tc.wantFactor)
		}
		if cfg.Audio.MarginSeconds <= 0 {
			t.Errorf("preset %q margin_seconds = %v, expected positive", tc.preset, cfg.Audio.MarginSeconds)
		}
	}
}

func TestLoopOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.LoopOptions()

	if opts.Width != cfg.Window.Width || opts.Height != cfg.Window.Height {
		t.Errorf("LoopOptions size = %dx%d, expected %dx%d",
			opts.Width, opts.Height, cfg.Window.Width, cfg.Window.Height)
	}
	if opts.TargetFPS != 60 {
		t.Errorf("LoopOptions TargetFPS = %d, expected 60", opts.TargetFPS)
	}
	if opts.SpinWindow <= 0 {
		t.Errorf("LoopOptions SpinWindow = %v, expected positive", opts.SpinWindow)
	}
}
