// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Components receive configuration values at construction time and never
//   re-read ambient state afterwards.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the Prometheus metrics listen address.
	MetricsAddr string `koanf:"metrics_addr"`

	// TargetFPS sets the frame rate the capture producer paces itself to.
	TargetFPS int `koanf:"target_fps"`

	// FrameWidth and FrameHeight describe the expected capture resolution.
	FrameWidth  int `koanf:"frame_width"`
	FrameHeight int `koanf:"frame_height"`

	// ObservationHistorySize bounds the session analyzer's rolling
	// observation history.
	ObservationHistorySize int `koanf:"observation_history_size"`

	// EventHistorySize bounds the session analyzer's event history.
	EventHistorySize int `koanf:"event_history_size"`

	// SnapshotHistorySize bounds the retained performance snapshots.
	SnapshotHistorySize int `koanf:"snapshot_history_size"`

	// BehaviorHistorySize bounds the behavior detector's longer window.
	BehaviorHistorySize int `koanf:"behavior_history_size"`

	// FrameHistorySize bounds the extractor's recent-frame ring used for
	// motion comparison.
	FrameHistorySize int `koanf:"frame_history_size"`

	// EnemyEventCooldownSec suppresses repeat enemy_detected events.
	EnemyEventCooldownSec float64 `koanf:"enemy_event_cooldown_sec"`

	// TipCooldownSec is the global minimum interval between emitted tips.
	TipCooldownSec float64 `koanf:"tip_cooldown_sec"`

	// TipHistorySize and SessionTipSize bound the coach's tip buffers.
	TipHistorySize int `koanf:"tip_history_size"`
	SessionTipSize int `koanf:"session_tip_size"`

	// PlacementHighThreshold and PlacementLowThreshold trigger the
	// good/poor crosshair placement events.
	PlacementHighThreshold float64 `koanf:"placement_high_threshold"`
	PlacementLowThreshold  float64 `koanf:"placement_low_threshold"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:               "info",
		MetricsAddr:            ":9100",
		TargetFPS:              30,
		FrameWidth:             1920,
		FrameHeight:            1080,
		ObservationHistorySize: 1800,
		EventHistorySize:       1000,
		SnapshotHistorySize:    100,
		BehaviorHistorySize:    1000,
		FrameHistorySize:       30,
		EnemyEventCooldownSec:  2.0,
		TipCooldownSec:         5.0,
		TipHistorySize:         100,
		SessionTipSize:         50,
		PlacementHighThreshold: 0.8,
		PlacementLowThreshold:  0.3,
	}
	return c
}
