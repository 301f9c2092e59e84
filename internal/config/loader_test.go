package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/aimsight/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.TargetFPS, convey.ShouldEqual, 30)
				convey.So(cfg.FrameWidth, convey.ShouldEqual, 1920)
				convey.So(cfg.FrameHeight, convey.ShouldEqual, 1080)
				convey.So(cfg.ObservationHistorySize, convey.ShouldEqual, 1800)
				convey.So(cfg.EventHistorySize, convey.ShouldEqual, 1000)
				convey.So(cfg.SnapshotHistorySize, convey.ShouldEqual, 100)
				convey.So(cfg.EnemyEventCooldownSec, convey.ShouldEqual, 2.0)
				convey.So(cfg.TipCooldownSec, convey.ShouldEqual, 5.0)
				convey.So(cfg.PlacementHighThreshold, convey.ShouldEqual, 0.8)
				convey.So(cfg.PlacementLowThreshold, convey.ShouldEqual, 0.3)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("AIMSIGHT_TARGET_FPS", "60")
			_ = os.Setenv("AIMSIGHT_FRAME_WIDTH", "2560")
			_ = os.Setenv("AIMSIGHT_TIP_COOLDOWN_SEC", "10")
			_ = os.Setenv("AIMSIGHT_LOG_LEVEL", "debug")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.TargetFPS, convey.ShouldEqual, 60)
				convey.So(cfg.FrameWidth, convey.ShouldEqual, 2560)
				convey.So(cfg.TipCooldownSec, convey.ShouldEqual, 10.0)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				// Untouched keys keep their defaults.
				convey.So(cfg.FrameHeight, convey.ShouldEqual, 1080)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "aimsight.yaml")
			yaml := "target_fps: 24\nobservation_history_size: 600\nmetrics_addr: \":9200\"\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("AIMSIGHT_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TargetFPS, convey.ShouldEqual, 24)
				convey.So(cfg.ObservationHistorySize, convey.ShouldEqual, 600)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9200")
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			_ = os.Setenv("AIMSIGHT_TARGET_FPS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"AIMSIGHT_CONFIG",
		"AIMSIGHT_LOG_LEVEL",
		"AIMSIGHT_METRICS_ADDR",
		"AIMSIGHT_TARGET_FPS",
		"AIMSIGHT_FRAME_WIDTH",
		"AIMSIGHT_FRAME_HEIGHT",
		"AIMSIGHT_OBSERVATION_HISTORY_SIZE",
		"AIMSIGHT_TIP_COOLDOWN_SEC",
	} {
		_ = os.Unsetenv(key)
	}
}
