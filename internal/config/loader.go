package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if AIMSIGHT_CONFIG is set
//  3. env (prefix AIMSIGHT_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("AIMSIGHT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: AIMSIGHT_TARGET_FPS, AIMSIGHT_TIP_COOLDOWN_SEC, ...
	// Map env keys like AIMSIGHT_TARGET_FPS -> target_fps (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("AIMSIGHT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "aimsight_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the pipeline cannot run with.
func (c *Config) validate() error {
	switch {
	case c.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps must be positive", ErrInvalidConfig)
	case c.FrameWidth <= 0 || c.FrameHeight <= 0:
		return fmt.Errorf("%w: frame dimensions must be positive", ErrInvalidConfig)
	case c.ObservationHistorySize <= 0 || c.EventHistorySize <= 0 || c.SnapshotHistorySize <= 0:
		return fmt.Errorf("%w: history sizes must be positive", ErrInvalidConfig)
	case c.BehaviorHistorySize <= 0 || c.FrameHistorySize <= 0:
		return fmt.Errorf("%w: history sizes must be positive", ErrInvalidConfig)
	case c.EnemyEventCooldownSec < 0 || c.TipCooldownSec < 0:
		return fmt.Errorf("%w: cooldowns must not be negative", ErrInvalidConfig)
	case c.PlacementLowThreshold >= c.PlacementHighThreshold:
		return fmt.Errorf("%w: placement_low_threshold must be below placement_high_threshold", ErrInvalidConfig)
	}
	return nil
}
