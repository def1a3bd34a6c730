package config

import (
	_ "embed"
)

//go:embed defaults/host.yaml
var defaultHostYAML []byte

// Default returns the default host configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "pixelhost",
		},
		Timing: TimingConfig{
			TargetFPS:       60,
			MaxDeltaSeconds: 0.25,
			SpinWindowMs:    2.0,
		},
		Audio: AudioConfig{
			SafetyFactor:    1.5,
			CapacitySeconds: 0.5,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
			DBPath:  "~/.pixelhost/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
