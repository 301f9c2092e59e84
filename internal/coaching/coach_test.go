package coaching_test

import (
	"testing"
	"time"

	"github.com/okian/aimsight/internal/analysis/session"
	"github.com/okian/aimsight/internal/coaching"
	"github.com/okian/aimsight/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// weakAnalysis triggers tips from all three candidate sources.
func weakAnalysis() session.Result {
	return session.Result{
		Events: []model.Event{
			{Kind: model.EventPoorCrosshairPlacement, Timestamp: time.Now(), Confidence: 0.9},
			{Kind: model.EventInefficientMovement, Timestamp: time.Now(), Confidence: 0.7},
		},
		Snapshot: model.PerformanceSnapshot{
			Accuracy:           0.4,
			ReactionTime:       0.3,
			CrosshairPlacement: 0.3,
			MovementEfficiency: 0.3,
			GameSense:          0.4,
			Overall:            0.35,
			Timestamp:          time.Now(),
		},
		Insights: []string{
			"Your accuracy needs improvement. Focus on crosshair placement and recoil control.",
			"You're moving inefficiently. Use counter-strafing and proper positioning.",
		},
	}
}

func TestProcessTips(t *testing.T) {
	Convey("Given analysis with poor scores on every metric", t, func() {
		coach := coaching.NewCoach()

		tips := coach.Process(weakAnalysis())

		Convey("Then at most three tips are emitted", func() {
			So(len(tips), ShouldBeBetweenOrEqual, 1, 3)
		})

		Convey("Then no two tips share a category", func() {
			seen := map[string]bool{}
			for _, tip := range tips {
				So(seen[tip.Category], ShouldBeFalse)
				seen[tip.Category] = true
			}
		})

		Convey("Then tips are ordered by priority descending", func() {
			for i := 1; i < len(tips); i++ {
				So(tips[i].Priority, ShouldBeLessThanOrEqualTo, tips[i-1].Priority)
			}
		})

		Convey("Then each tip carries an identifier and timestamp", func() {
			for _, tip := range tips {
				So(tip.ID, ShouldNotBeEmpty)
				So(tip.Timestamp.IsZero(), ShouldBeFalse)
			}
		})
	})
}

func TestProcessCooldown(t *testing.T) {
	Convey("Given a coach that just emitted tips", t, func() {
		coach := coaching.NewCoach(coaching.WithTipCooldown(time.Hour))

		first := coach.Process(weakAnalysis())
		So(first, ShouldNotBeEmpty)

		Convey("When processed again within the cooldown window", func() {
			second := coach.Process(weakAnalysis())

			Convey("Then zero tips are emitted", func() {
				So(second, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a coach with an elapsed cooldown", t, func() {
		coach := coaching.NewCoach(coaching.WithTipCooldown(10 * time.Millisecond))

		first := coach.Process(weakAnalysis())
		So(first, ShouldNotBeEmpty)
		time.Sleep(20 * time.Millisecond)

		Convey("Then the next pass emits tips again", func() {
			So(coach.Process(weakAnalysis()), ShouldNotBeEmpty)
		})
	})
}

func TestProcessEmptyAnalysis(t *testing.T) {
	Convey("Given an empty analysis result", t, func() {
		coach := coaching.NewCoach()

		tips := coach.Process(session.Result{})

		Convey("Then no tips are emitted and the cooldown is not started", func() {
			So(tips, ShouldBeEmpty)
			So(coach.Stats().TotalTips, ShouldEqual, 0)
		})
	})
}

func TestGenerateTrainingPlan(t *testing.T) {
	Convey("Given explicit focus areas", t, func() {
		coach := coaching.NewCoach()

		plan := coach.GenerateTrainingPlan([]string{"movement"})

		Convey("Then the plan covers exactly those areas", func() {
			So(plan.FocusAreas, ShouldResemble, []string{"movement"})
			So(plan.Exercises["movement"], ShouldContain, "Practice counter-strafing in the Range")
			So(plan.Goals, ShouldResemble, []string{"Master counter-strafing and efficient movement"})
			So(plan.Duration, ShouldEqual, "30 minutes")
			So(plan.Frequency, ShouldEqual, "daily")
		})
	})

	Convey("Given no focus areas and a profile with mapped weaknesses", t, func() {
		coach := coaching.NewCoach(coaching.WithProfile(model.PlayerProfile{
			SkillLevel: model.TierBeginner,
			Weaknesses: []string{"aim", "movement"},
		}))

		plan := coach.GenerateTrainingPlan(nil)

		Convey("Then areas derive from the weakness mapping", func() {
			So(plan.FocusAreas, ShouldResemble, []string{"mechanics", "movement"})
		})
	})

	Convey("Given a profile with no mappable weaknesses", t, func() {
		coach := coaching.NewCoach(coaching.WithProfile(model.PlayerProfile{
			Weaknesses: []string{"patience"},
		}))

		plan := coach.GenerateTrainingPlan(nil)

		Convey("Then the default fundamentals are chosen", func() {
			So(plan.FocusAreas, ShouldResemble, []string{"crosshair_placement", "movement"})
		})
	})
}

func TestUpdateProfile(t *testing.T) {
	Convey("Given a coach with a full profile", t, func() {
		coach := coaching.NewCoach(coaching.WithProfile(model.PlayerProfile{
			SkillLevel:    model.TierIntermediate,
			PrimaryRole:   "sentinel",
			Strengths:     []string{"patience"},
			Weaknesses:    []string{"aim"},
			Goals:         []string{"reach higher rank"},
			PlaytimeHours: 120,
		}))

		Convey("When only weaknesses are updated", func() {
			coach.UpdateProfile(model.ProfileUpdate{
				Weaknesses: []string{"movement", "game sense"},
			})

			Convey("Then every other field is unchanged", func() {
				p := coach.Profile()
				So(p.Weaknesses, ShouldResemble, []string{"movement", "game sense"})
				So(p.SkillLevel, ShouldEqual, model.TierIntermediate)
				So(p.PrimaryRole, ShouldEqual, "sentinel")
				So(p.Strengths, ShouldResemble, []string{"patience"})
				So(p.Goals, ShouldResemble, []string{"reach higher rank"})
				So(p.PlaytimeHours, ShouldEqual, 120)
			})
		})

		Convey("When scalar fields are updated via pointers", func() {
			level := model.TierAdvanced
			hours := 200
			coach.UpdateProfile(model.ProfileUpdate{
				SkillLevel:    &level,
				PlaytimeHours: &hours,
			})

			Convey("Then they are overwritten", func() {
				p := coach.Profile()
				So(p.SkillLevel, ShouldEqual, model.TierAdvanced)
				So(p.PlaytimeHours, ShouldEqual, 200)
			})
		})
	})
}

func TestAdvice(t *testing.T) {
	Convey("Given a beginner duelist profile", t, func() {
		coach := coaching.NewCoach()

		Convey("Then crosshair advice includes the beginner extras", func() {
			advice := coach.Advice("crosshair_placement")
			So(advice, ShouldContain, "Start with a simple crosshair and practice in the Range")
		})

		Convey("Then movement advice includes the duelist extras", func() {
			advice := coach.Advice("movement")
			So(advice, ShouldContain, "As a duelist, focus on aggressive movement and entry fragging")
		})

		Convey("Then an unknown area falls back to fundamentals", func() {
			advice := coach.Advice("clutching")
			So(advice, ShouldHaveLength, 1)
		})
	})
}

func TestStats(t *testing.T) {
	Convey("Given a coach that emitted one pass of tips", t, func() {
		coach := coaching.NewCoach()
		emitted := coach.Process(weakAnalysis())

		Convey("Then the counters reflect every recorded tip", func() {
			stats := coach.Stats()
			So(stats.TotalTips, ShouldBeGreaterThanOrEqualTo, len(emitted))
			So(stats.SessionTips, ShouldEqual, stats.TotalTips)
		})
	})
}
