// Package config provides YAML-based host configuration loading and
// audio latency presets for the platform.
package config

// Config contains all host configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Timing    TimingConfig    `yaml:"timing"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// WindowConfig sizes the back-buffer and titles the OS window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TimingConfig defines the frame cadence.
type TimingConfig struct {
	TargetFPS       int     `yaml:"target_fps"`
	MaxDeltaSeconds float64 `yaml:"max_delta_seconds"` // stall clamp
	SpinWindowMs    float64 `yaml:"spin_window_ms"`    // busy-wait tail of the frame sleep
}

// AudioConfig defines the ring buffer provisioning.
type AudioConfig struct {
	SafetyFactor    float64 `yaml:"safety_factor"`    // per-frame provisioning multiplier
	CapacitySeconds float64 `yaml:"capacity_seconds"` // ring buffer size
	MarginSeconds   float64 `yaml:"margin_seconds"`   // minimum queued audio; 0 = 1.5 frames
}

// TelemetryConfig controls run-stats persistence.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// LatencyPreset is a named audio provisioning profile.
type LatencyPreset string

const (
	LatencyLow      LatencyPreset = "low"
	LatencyBalanced LatencyPreset = "balanced"
	LatencySafe     LatencyPreset = "safe"
)

// ApplyLatencyPreset overwrites the audio section with a named profile.
// Low keeps barely more than a frame queued and will glitch on jitter;
// safe keeps two frames ahead at the cost of audible lag.
func ApplyLatencyPreset(cfg *Config, preset LatencyPreset) {
	switch preset {
	case LatencyLow:
		cfg.Audio.SafetyFactor = 1.1
		cfg.Audio.MarginSeconds = 0.5 / float64(cfg.Timing.TargetFPS)
	case LatencySafe:
		cfg.Audio.SafetyFactor = 2.0
		cfg.Audio.MarginSeconds = 2.0 / float64(cfg.Timing.TargetFPS)
	default:
		cfg.Audio.SafetyFactor = 1.5
		cfg.Audio.MarginSeconds = 1.5 / float64(cfg.Timing.TargetFPS)
	}
}
