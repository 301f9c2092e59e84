package session_test

import (
	"testing"
	"time"

	"github.com/okian/aimsight/internal/analysis/session"
	"github.com/okian/aimsight/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// obsAt builds a minimal observation with a visible reticle at (x, y).
func obsAt(ts time.Time, x, y int) model.Observation {
	return model.Observation{
		Reticle:   model.Reticle{Position: model.Point{X: x, Y: y}, Visible: true},
		Timestamp: ts,
	}
}

// withOpponent attaches one opponent box to the observation.
func withOpponent(obs model.Observation, box model.Rect) model.Observation {
	obs.Opponents = []model.Opponent{{Box: box, Center: box.Center(), Confidence: 1}}
	return obs
}

func TestIngestZeroObservation(t *testing.T) {
	Convey("Given a fresh analyzer", t, func() {
		a := session.NewAnalyzer()

		Convey("When a zero observation is ingested", func() {
			res := a.Ingest(model.Observation{})

			Convey("Then the result is empty and no state was mutated", func() {
				So(res.Events, ShouldBeEmpty)
				So(res.Snapshot.IsZero(), ShouldBeTrue)
				So(res.Insights, ShouldBeEmpty)
				So(a.Summary().FramesProcessed, ShouldEqual, uint64(0))
			})
		})
	})
}

func TestEnemyEventCooldown(t *testing.T) {
	Convey("Given an analyzer with a 2s enemy event cooldown", t, func() {
		a := session.NewAnalyzer(session.WithEnemyEventCooldown(2 * time.Second))
		start := time.Now()
		box := model.Rect{X: 900, Y: 400, Width: 100, Height: 200}

		Convey("When opponent-bearing observations arrive every 100ms for 3 seconds", func() {
			var enemyEvents int
			for i := 0; i < 30; i++ {
				ts := start.Add(time.Duration(i) * 100 * time.Millisecond)
				res := a.Ingest(withOpponent(obsAt(ts, 960, 540), box))
				for _, ev := range res.Events {
					if ev.Kind == model.EventEnemyDetected {
						enemyEvents++
					}
				}
			}

			Convey("Then at most one enemy event fires per cooldown window", func() {
				So(enemyEvents, ShouldEqual, 2)
			})
		})
	})
}

func TestPlacementEvents(t *testing.T) {
	Convey("Given an opponent whose head point coincides with the reticle", t, func() {
		a := session.NewAnalyzer()
		// Head point is one third down from the box top: 400 + 300/3 = 500.
		box := model.Rect{X: 910, Y: 400, Width: 100, Height: 300}
		obs := withOpponent(obsAt(time.Now(), 960, 500), box)

		res := a.Ingest(obs)

		Convey("Then a good placement event fires with confidence 1.0", func() {
			var good *model.Event
			for i := range res.Events {
				if res.Events[i].Kind == model.EventGoodCrosshairPlacement {
					good = &res.Events[i]
				}
			}
			So(good, ShouldNotBeNil)
			So(good.Confidence, ShouldEqual, 1.0)
		})
	})

	Convey("Given a reticle far from the opponent's head", t, func() {
		a := session.NewAnalyzer()
		// Head at y=500, box height 300; reticle 140px off is well past
		// the half-height falloff times the low threshold.
		box := model.Rect{X: 910, Y: 400, Width: 100, Height: 300}
		obs := withOpponent(obsAt(time.Now(), 960, 640), box)

		res := a.Ingest(obs)

		Convey("Then a poor placement event fires", func() {
			kinds := eventKinds(res.Events)
			So(kinds, ShouldContain, model.EventPoorCrosshairPlacement)
			So(kinds, ShouldNotContain, model.EventGoodCrosshairPlacement)
		})
	})

	Convey("Given a visible reticle and no opponents", t, func() {
		a := session.NewAnalyzer()

		res := a.Ingest(obsAt(time.Now(), 960, 540))

		Convey("Then the neutral placement score fires no placement event", func() {
			kinds := eventKinds(res.Events)
			So(kinds, ShouldNotContain, model.EventGoodCrosshairPlacement)
			So(kinds, ShouldNotContain, model.EventPoorCrosshairPlacement)
		})
	})
}

func TestInefficientMovementEvent(t *testing.T) {
	Convey("Given an observation with excessive motion", t, func() {
		a := session.NewAnalyzer()
		obs := obsAt(time.Now(), 960, 540)
		obs.Motion = model.Motion{Magnitude: 15, Moving: true, Direction: model.DirectionLeft}

		res := a.Ingest(obs)

		Convey("Then an inefficient movement event fires", func() {
			So(eventKinds(res.Events), ShouldContain, model.EventInefficientMovement)
		})
	})

	Convey("Given purposeful movement", t, func() {
		a := session.NewAnalyzer()
		obs := obsAt(time.Now(), 960, 540)
		obs.Motion = model.Motion{Magnitude: 4, Moving: true, Direction: model.DirectionRight}

		res := a.Ingest(obs)

		Convey("Then no movement event fires", func() {
			So(eventKinds(res.Events), ShouldNotContain, model.EventInefficientMovement)
		})
	})
}

func TestSnapshotQuietSession(t *testing.T) {
	Convey("Given 10 stationary observations with no opponents", t, func() {
		a := session.NewAnalyzer()
		start := time.Now()

		var res session.Result
		for i := 0; i < 10; i++ {
			res = a.Ingest(obsAt(start.Add(time.Duration(i)*33*time.Millisecond), 960, 540))
		}

		Convey("Then the snapshot reflects a quiet, stable session", func() {
			So(res.Snapshot.IsZero(), ShouldBeFalse)
			// Perfectly still reticle has zero variance: full stability
			// for windows with enough visible samples.
			So(res.Snapshot.CrosshairPlacement, ShouldBeGreaterThan, 0.5)
			So(res.Snapshot.MovementEfficiency, ShouldEqual, 0.5)
			So(res.Snapshot.GameSense, ShouldEqual, 0.5)
			So(res.Snapshot.ReactionTime, ShouldEqual, 0.3)
		})

		Convey("Then no events were detected", func() {
			So(a.EventCount(), ShouldEqual, 0)
		})

		Convey("Then all bounded scores stay within [0,1]", func() {
			for _, v := range []float64{
				res.Snapshot.Accuracy,
				res.Snapshot.CrosshairPlacement,
				res.Snapshot.MovementEfficiency,
				res.Snapshot.GameSense,
				res.Snapshot.Overall,
			} {
				So(v, ShouldBeBetweenOrEqual, 0, 1)
			}
		})
	})

	Convey("Given fewer than 10 observations", t, func() {
		a := session.NewAnalyzer()

		var res session.Result
		for i := 0; i < 9; i++ {
			res = a.Ingest(obsAt(time.Now(), 960, 540))
		}

		Convey("Then no snapshot is produced or recorded", func() {
			So(res.Snapshot.IsZero(), ShouldBeTrue)
			So(a.Snapshots(), ShouldBeEmpty)
		})
	})
}

func TestEventHistoryEviction(t *testing.T) {
	Convey("Given an analyzer with a tiny event history", t, func() {
		a := session.NewAnalyzer(
			session.WithEventHistorySize(5),
			session.WithEnemyEventCooldown(time.Millisecond),
		)
		start := time.Now()
		box := model.Rect{X: 900, Y: 400, Width: 100, Height: 200}

		Convey("When more events fire than the history holds", func() {
			// Reticle held mid-way between the placement thresholds so
			// only the enemy event fires, one per frame.
			for i := 0; i < 20; i++ {
				ts := start.Add(time.Duration(i) * 10 * time.Millisecond)
				a.Ingest(withOpponent(obsAt(ts, 960, 516), box))
			}

			Convey("Then the history is capped with oldest entries evicted", func() {
				events := a.Events()
				So(events, ShouldHaveLength, 5)
				for i := 1; i < len(events); i++ {
					So(events[i].Timestamp.After(events[i-1].Timestamp), ShouldBeTrue)
				}
			})
		})
	})
}

func TestInsights(t *testing.T) {
	Convey("Given a session with consistently poor placement", t, func() {
		a := session.NewAnalyzer()
		start := time.Now()
		box := model.Rect{X: 910, Y: 400, Width: 100, Height: 300}

		var res session.Result
		for i := 0; i < 15; i++ {
			ts := start.Add(time.Duration(i) * 33 * time.Millisecond)
			res = a.Ingest(withOpponent(obsAt(ts, 960, 640), box))
		}

		Convey("Then insights are produced and capped at three", func() {
			So(len(res.Insights), ShouldBeBetweenOrEqual, 1, 3)
		})
	})

	Convey("Given two opponents with one at screen center", t, func() {
		a := session.NewAnalyzer()

		// Two opponents score 0.4, a dead-center closest adds the full
		// 0.5 proximity bonus: threat 0.9.
		obs := withOpponent(obsAt(time.Now(), 960, 540), model.Rect{X: 910, Y: 440, Width: 100, Height: 200})
		obs.Opponents = append(obs.Opponents, model.Opponent{
			Box:        model.Rect{X: 300, Y: 200, Width: 80, Height: 160},
			Center:     model.Point{X: 340, Y: 280},
			Confidence: 1,
		})

		res := a.Ingest(obs)

		Convey("Then a high-threat insight is raised", func() {
			So(res.Insights, ShouldContain, "High threat situation detected. Focus on positioning and team coordination.")
		})
	})

	Convey("Given a single opponent far from screen center", t, func() {
		a := session.NewAnalyzer()

		// One distant opponent: threat 0.2 plus a negligible proximity
		// bonus stays well under the 0.7 insight level.
		obs := withOpponent(obsAt(time.Now(), 960, 540), model.Rect{X: 60, Y: 60, Width: 80, Height: 80})

		res := a.Ingest(obs)

		Convey("Then no high-threat insight is raised", func() {
			So(res.Insights, ShouldNotContain, "High threat situation detected. Focus on positioning and team coordination.")
		})
	})
}

func TestSummary(t *testing.T) {
	Convey("Given a session with some frames processed", t, func() {
		a := session.NewAnalyzer()
		for i := 0; i < 12; i++ {
			a.Ingest(obsAt(time.Now(), 960, 540))
		}

		sum := a.Summary()

		Convey("Then the summary carries counters and the latest snapshot", func() {
			So(sum.FramesProcessed, ShouldEqual, uint64(12))
			So(sum.Latest.IsZero(), ShouldBeFalse)
			So(sum.Duration, ShouldBeGreaterThanOrEqualTo, time.Duration(0))
		})
	})
}

func eventKinds(events []model.Event) []model.EventKind {
	kinds := make([]model.EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}
