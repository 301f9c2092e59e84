package service_test

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	service "github.com/okian/aimsight/internal/app"
	"github.com/okian/aimsight/internal/capture"
	"github.com/okian/aimsight/internal/config"
	"github.com/okian/aimsight/internal/domain/model"
	"github.com/okian/aimsight/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// collectingSink records every delivered tip batch.
type collectingSink struct {
	mu   sync.Mutex
	tips []model.CoachingTip
}

func (s *collectingSink) Deliver(_ context.Context, tips []model.CoachingTip) {
	s.mu.Lock()
	s.tips = append(s.tips, tips...)
	s.mu.Unlock()
}

func (s *collectingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tips)
}

func testConfig() config.Config {
	cfg := *config.New()
	cfg.TargetFPS = 60
	cfg.FrameWidth = 320
	cfg.FrameHeight = 180
	cfg.TipCooldownSec = 0.05
	return cfg
}

func TestServiceRunsSyntheticSession(t *testing.T) {
	Convey("Given a service over a synthetic source with opponents", t, func() {
		src := capture.NewSyntheticSource(
			capture.WithSize(320, 180),
			capture.WithReticle(),
			capture.WithOpponents(image.Rect(40, 40, 70, 100)),
		)
		sink := &collectingSink{}
		svc := service.New(
			service.WithConfig(testConfig()),
			service.WithSource(src),
			service.WithTipSink(sink),
		)

		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When the pipeline runs for a while", func() {
			deadline := time.Now().Add(3 * time.Second)
			for time.Now().Before(deadline) {
				if svc.SessionSummary().FramesProcessed >= 15 {
					break
				}
				time.Sleep(50 * time.Millisecond)
			}

			Convey("Then frames flow through the whole pipeline", func() {
				summary := svc.SessionSummary()
				So(summary.FramesProcessed, ShouldBeGreaterThanOrEqualTo, 15)
				So(summary.Latest.IsZero(), ShouldBeFalse)
			})

			Convey("Then a skill report can be produced on demand", func() {
				report := svc.SkillReport()
				So(report.Assessments, ShouldHaveLength, 6)
				So(report.Tier, ShouldBeIn, "beginner", "intermediate", "advanced")
			})

			Convey("Then a behavior report is available", func() {
				report := svc.BehaviorReport()
				So(report.Tendencies.PositioningStyle, ShouldNotBeEmpty)
			})

			Convey("Then tips reach the sink", func() {
				So(sink.count(), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestServiceStartStop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithConfig(testConfig()))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("Then Start is idempotent", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()
		})

		Convey("Then Stop is idempotent", func() {
			svc.Stop()
			svc.Stop()
		})
	})
}

func TestServiceProfileSurface(t *testing.T) {
	Convey("Given a running service", t, func() {
		svc := service.New(service.WithConfig(testConfig()))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When the profile is partially updated", func() {
			level := model.TierIntermediate
			svc.UpdateProfile(model.ProfileUpdate{SkillLevel: &level})

			Convey("Then the update is visible and the rest unchanged", func() {
				p := svc.Profile()
				So(p.SkillLevel, ShouldEqual, model.TierIntermediate)
				So(p.PrimaryRole, ShouldEqual, "duelist")
			})
		})

		Convey("Then a training plan can be synthesized", func() {
			plan := svc.TrainingPlan(nil)
			So(plan.FocusAreas, ShouldNotBeEmpty)
			So(plan.Duration, ShouldEqual, "30 minutes")
		})
	})
}
