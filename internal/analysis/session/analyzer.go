// Package session turns the per-frame observation stream into discrete
// gameplay events, rolling performance snapshots, and short-lived
// textual insights. The analyzer owns its histories exclusively and is
// driven by a single caller; it needs no locking.
package session

import (
	"math"
	"time"

	"github.com/okian/aimsight/internal/domain/history"
	"github.com/okian/aimsight/internal/domain/model"
	"github.com/okian/aimsight/pkg/metrics"
)

// Default analyzer configuration constants.
const (
	defaultObservationHistorySize = 1800
	defaultEventHistorySize       = 1000
	defaultSnapshotHistorySize    = 100
	defaultEnemyEventCooldown     = 2 * time.Second
	defaultPlacementHigh          = 0.8
	defaultPlacementLow           = 0.3
	defaultFrameWidth             = 1920
	defaultFrameHeight            = 1080
)

// Fixed scoring constants, preserved as-is for behavioral parity rather
// than inferred from data.
const (
	inefficiencyThreshold   = 0.4
	stabilityWindow         = 5
	stabilityMinVisible     = 3
	stabilityVarianceScale  = 100.0
	snapshotWindow          = 30
	snapshotMinObservations = 10
	gameSenseMinEvents      = 5
	excessiveMagnitude      = 10.0
	purposefulMagnitude     = 1.0
	reactionTimePlaceholder = 0.3
	maxInsights             = 3

	threatPerEnemy        = 0.2
	threatProximityWeight = 0.5
	threatProximityRange  = 1000.0
	threatInsightLevel    = 0.7

	enemyEventConfidence    = 0.8
	movementEventConfidence = 0.7
)

// Result is one frame's analysis output: events detected on this frame,
// the recomputed snapshot (zero when history is too short), and up to
// three insights.
type Result struct {
	Events   []model.Event
	Snapshot model.PerformanceSnapshot
	Insights []string
}

// Summary describes the session so far for the stats surface.
type Summary struct {
	Duration        time.Duration
	FramesProcessed uint64
	EventsDetected  uint64
	Latest          model.PerformanceSnapshot
}

// Analyzer maintains the rolling observation, event, and snapshot
// histories and derives per-frame analysis from them.
type Analyzer struct {
	observations *history.Ring[model.Observation]
	events       *history.Ring[model.Event]
	snapshots    *history.Ring[model.PerformanceSnapshot]

	start          time.Time
	frames         uint64
	eventsDetected uint64

	observationHistorySize int
	eventHistorySize       int
	snapshotHistorySize    int
	enemyEventCooldown     time.Duration
	placementHigh          float64
	placementLow           float64
	frameWidth             int
	frameHeight            int
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithObservationHistorySize bounds the observation ring.
func WithObservationHistorySize(size int) Option {
	return func(a *Analyzer) {
		if size > 0 {
			a.observationHistorySize = size
		}
	}
}

// WithEventHistorySize bounds the event ring.
func WithEventHistorySize(size int) Option {
	return func(a *Analyzer) {
		if size > 0 {
			a.eventHistorySize = size
		}
	}
}

// WithSnapshotHistorySize bounds the retained performance snapshots.
func WithSnapshotHistorySize(size int) Option {
	return func(a *Analyzer) {
		if size > 0 {
			a.snapshotHistorySize = size
		}
	}
}

// WithEnemyEventCooldown suppresses repeat enemy_detected events within d.
func WithEnemyEventCooldown(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.enemyEventCooldown = d
		}
	}
}

// WithPlacementThresholds sets the good/poor crosshair placement bounds.
func WithPlacementThresholds(high, low float64) Option {
	return func(a *Analyzer) {
		if high > low && low >= 0 && high <= 1 {
			a.placementHigh = high
			a.placementLow = low
		}
	}
}

// WithFrameSize sets the capture resolution used for center-of-screen
// distance calculations.
func WithFrameSize(width, height int) Option {
	return func(a *Analyzer) {
		if width > 0 && height > 0 {
			a.frameWidth = width
			a.frameHeight = height
		}
	}
}

// NewAnalyzer creates a session analyzer with configuration options.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		observationHistorySize: defaultObservationHistorySize,
		eventHistorySize:       defaultEventHistorySize,
		snapshotHistorySize:    defaultSnapshotHistorySize,
		enemyEventCooldown:     defaultEnemyEventCooldown,
		placementHigh:          defaultPlacementHigh,
		placementLow:           defaultPlacementLow,
		frameWidth:             defaultFrameWidth,
		frameHeight:            defaultFrameHeight,
		start:                  time.Now(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.observations = history.New[model.Observation](a.observationHistorySize)
	a.events = history.New[model.Event](a.eventHistorySize)
	a.snapshots = history.New[model.PerformanceSnapshot](a.snapshotHistorySize)

	return a
}

// Ingest appends one observation, detects events, recomputes the
// performance snapshot, and derives insights. A zero observation is a
// no-op returning an empty result without mutating state.
func (a *Analyzer) Ingest(obs model.Observation) Result {
	if obs.IsZero() {
		return Result{}
	}

	a.observations.Push(obs)
	a.frames++

	events := a.detectEvents(obs)
	for _, ev := range events {
		a.events.Push(ev)
		a.eventsDetected++
		metrics.RecordEventDetected(string(ev.Kind))
	}

	snapshot := a.computeSnapshot(obs.Timestamp)
	if !snapshot.IsZero() {
		a.snapshots.Push(snapshot)
		metrics.UpdatePerformanceScore("accuracy", snapshot.Accuracy)
		metrics.UpdatePerformanceScore("crosshair_placement", snapshot.CrosshairPlacement)
		metrics.UpdatePerformanceScore("movement_efficiency", snapshot.MovementEfficiency)
		metrics.UpdatePerformanceScore("game_sense", snapshot.GameSense)
		metrics.UpdatePerformanceScore("overall", snapshot.Overall)
	}

	metrics.UpdateHistoryLength("observations", a.observations.Len())
	metrics.UpdateHistoryLength("events", a.events.Len())
	metrics.UpdateHistoryLength("snapshots", a.snapshots.Len())

	return Result{
		Events:   events,
		Snapshot: snapshot,
		Insights: a.insights(obs, snapshot, events),
	}
}

// Summary reports session counters and the latest snapshot.
func (a *Analyzer) Summary() Summary {
	latest, _ := a.snapshots.Last()
	return Summary{
		Duration:        time.Since(a.start),
		FramesProcessed: a.frames,
		EventsDetected:  a.eventsDetected,
		Latest:          latest,
	}
}

// Snapshots returns the retained performance history, oldest first.
func (a *Analyzer) Snapshots() []model.PerformanceSnapshot {
	return a.snapshots.All()
}

// EventCount returns the number of events currently retained.
func (a *Analyzer) EventCount() int {
	return a.events.Len()
}

// Events returns the retained event history, oldest first.
func (a *Analyzer) Events() []model.Event {
	return a.events.All()
}

func (a *Analyzer) detectEvents(obs model.Observation) []model.Event {
	var events []model.Event

	if len(obs.Opponents) > 0 && !a.hasRecentEnemyEvent(obs.Timestamp) {
		pos := obs.Opponents[0].Center
		events = append(events, model.Event{
			Kind:       model.EventEnemyDetected,
			Timestamp:  obs.Timestamp,
			Confidence: enemyEventConfidence,
			Position:   &pos,
			Payload:    map[string]any{"opponent_count": len(obs.Opponents)},
		})
	}

	if obs.Reticle.Visible {
		quality := a.placementQuality(obs)
		switch {
		case quality > a.placementHigh:
			pos := obs.Reticle.Position
			events = append(events, model.Event{
				Kind:       model.EventGoodCrosshairPlacement,
				Timestamp:  obs.Timestamp,
				Confidence: quality,
				Position:   &pos,
				Payload:    map[string]any{"placement_quality": quality},
			})
		case quality < a.placementLow:
			pos := obs.Reticle.Position
			events = append(events, model.Event{
				Kind:       model.EventPoorCrosshairPlacement,
				Timestamp:  obs.Timestamp,
				Confidence: 1 - quality,
				Position:   &pos,
				Payload:    map[string]any{"placement_quality": quality},
			})
		}
	}

	if obs.Motion.Moving {
		if efficiency := movementEfficiency(obs.Motion); efficiency < inefficiencyThreshold {
			events = append(events, model.Event{
				Kind:       model.EventInefficientMovement,
				Timestamp:  obs.Timestamp,
				Confidence: movementEventConfidence,
				Payload:    map[string]any{"efficiency": efficiency},
			})
		}
	}

	return events
}

// hasRecentEnemyEvent scans backward for the most recent enemy_detected
// event; only the newest one matters for the cooldown.
func (a *Analyzer) hasRecentEnemyEvent(now time.Time) bool {
	recent := false
	a.events.ReverseEach(func(ev model.Event) bool {
		if ev.Kind != model.EventEnemyDetected {
			return true
		}
		recent = now.Sub(ev.Timestamp) < a.enemyEventCooldown
		return false
	})
	return recent
}

// placementQuality scores how close the reticle sits to the estimated
// head of the opponent nearest screen center. No opponents scores a
// neutral 0.5. The head point is one third down from the box top.
func (a *Analyzer) placementQuality(obs model.Observation) float64 {
	closest, ok := a.closestOpponent(obs.Opponents)
	if !ok || closest.Box.Height == 0 {
		return 0.5
	}

	headY := closest.Box.Y + closest.Box.Height/3
	distance := math.Abs(float64(obs.Reticle.Position.Y - headY))
	maxDistance := float64(closest.Box.Height) / 2

	return clamp01(1 - distance/maxDistance)
}

func (a *Analyzer) closestOpponent(opponents []model.Opponent) (model.Opponent, bool) {
	if len(opponents) == 0 {
		return model.Opponent{}, false
	}

	centerX, centerY := a.frameWidth/2, a.frameHeight/2
	best := opponents[0]
	bestDist := math.Inf(1)
	for _, o := range opponents {
		d := math.Hypot(float64(o.Center.X-centerX), float64(o.Center.Y-centerY))
		if d < bestDist {
			bestDist = d
			best = o
		}
	}
	return best, true
}

// threatLevel scores the danger posed by the visible opponents: a fixed
// share per opponent plus a proximity bonus for the one nearest screen
// center, capped at 1.
func (a *Analyzer) threatLevel(opponents []model.Opponent) float64 {
	if len(opponents) == 0 {
		return 0
	}

	score := float64(len(opponents)) * threatPerEnemy

	if closest, ok := a.closestOpponent(opponents); ok {
		centerX, centerY := a.frameWidth/2, a.frameHeight/2
		distance := math.Hypot(float64(closest.Center.X-centerX), float64(closest.Center.Y-centerY))
		score += math.Max(0, 1-distance/threatProximityRange) * threatProximityWeight
	}

	return math.Min(1, score)
}

// crosshairStability maps positional variance of the last few visible
// reticle positions to [0,1]; fewer than three visible positions scores
// the neutral 0.5.
func (a *Analyzer) crosshairStability(upTo int) float64 {
	from := upTo - stabilityWindow
	if from < 0 {
		from = 0
	}

	var xs, ys []float64
	for i := from; i < upTo; i++ {
		o := a.observations.At(i)
		if o.Reticle.Visible {
			xs = append(xs, float64(o.Reticle.Position.X))
			ys = append(ys, float64(o.Reticle.Position.Y))
		}
	}
	if len(xs) < stabilityMinVisible {
		return 0.5
	}

	v := (variance(xs) + variance(ys)) / 2
	return clamp01(1 - v/stabilityVarianceScale)
}

// movementEfficiency scores one frame's motion: stationary is neutral,
// excessive magnitude is penalized, purposeful movement is rewarded.
func movementEfficiency(m model.Motion) float64 {
	if !m.Moving {
		return 0.5
	}
	if m.Magnitude > excessiveMagnitude {
		return 0.3
	}
	if m.Direction != model.DirectionStationary && m.Magnitude > purposefulMagnitude {
		return 0.7
	}
	return 0.5
}

// computeSnapshot aggregates the recent window into a performance
// snapshot. Below the minimum history size it returns the zero snapshot,
// which is not recorded.
func (a *Analyzer) computeSnapshot(now time.Time) model.PerformanceSnapshot {
	n := a.observations.Len()
	if n < snapshotMinObservations {
		return model.PerformanceSnapshot{}
	}

	from := n - snapshotWindow
	if from < 0 {
		from = 0
	}

	var (
		placement  []float64
		stability  []float64
		efficiency []float64
	)
	for i := from; i < n; i++ {
		o := a.observations.At(i)
		if len(o.Opponents) > 0 {
			placement = append(placement, a.placementQuality(o))
		}
		stability = append(stability, a.crosshairStability(i+1))
		efficiency = append(efficiency, movementEfficiency(o.Motion))
	}

	accuracy := meanOr(placement, 0.5)
	crosshair := meanOr(stability, 0.5)
	movement := meanOr(efficiency, 0.5)
	gameSense := a.gameSense()
	overall := (accuracy + crosshair + movement + gameSense) / 4

	return model.PerformanceSnapshot{
		Accuracy:           accuracy,
		ReactionTime:       reactionTimePlaceholder,
		CrosshairPlacement: crosshair,
		MovementEfficiency: movement,
		GameSense:          gameSense,
		Overall:            overall,
		Timestamp:          now,
	}
}

// gameSense is the ratio of positive to polar events across the session
// event history, neutral under five events.
func (a *Analyzer) gameSense() float64 {
	if a.events.Len() < gameSenseMinEvents {
		return 0.5
	}

	var positive, negative int
	for _, ev := range a.events.All() {
		switch {
		case ev.Kind.Positive():
			positive++
		case ev.Kind.Negative():
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0.5
	}
	return float64(positive) / float64(total)
}

// insights derives up to three short coaching observations from the
// snapshot thresholds, this frame's events, the opponent threat level,
// and the current motion.
func (a *Analyzer) insights(obs model.Observation, snapshot model.PerformanceSnapshot, events []model.Event) []string {
	var insights []string

	if !snapshot.IsZero() {
		if snapshot.Accuracy < 0.6 {
			insights = append(insights, "Your accuracy needs improvement. Focus on crosshair placement and recoil control.")
		}
		if snapshot.CrosshairPlacement < 0.5 {
			insights = append(insights, "Work on keeping your crosshair at head level and pre-aiming common angles.")
		}
		if snapshot.MovementEfficiency < 0.4 {
			insights = append(insights, "Your movement could be more efficient. Practice counter-strafing and positioning.")
		}
		if snapshot.GameSense < 0.5 {
			insights = append(insights, "Improve your game sense by learning common angles, timings, and team coordination.")
		}
	}

	for _, ev := range events {
		switch ev.Kind {
		case model.EventPoorCrosshairPlacement:
			insights = append(insights, "Your crosshair is not positioned optimally. Aim at head level.")
		case model.EventInefficientMovement:
			insights = append(insights, "You're moving inefficiently. Use counter-strafing and proper positioning.")
		case model.EventEnemyDetected:
			insights = append(insights, "Enemy detected! Consider your positioning and team coordination.")
		}
	}

	if a.threatLevel(obs.Opponents) > threatInsightLevel {
		insights = append(insights, "High threat situation detected. Focus on positioning and team coordination.")
	}

	if obs.Motion.Magnitude > 5.0 {
		insights = append(insights, "You're moving too much. Consider holding angles and being more patient.")
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func meanOr(vals []float64, fallback float64) float64 {
	if len(vals) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// variance is the population variance of vals.
func variance(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))

	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(vals))
}
