// Package behavior classifies longer-horizon player tendencies from the
// same observation stream the session analyzer consumes. The detector
// owns its own history; patterns are produced fresh on each analysis
// call and never persisted.
package behavior

import (
	"math"

	"github.com/okian/aimsight/internal/domain/history"
	"github.com/okian/aimsight/internal/domain/model"
)

// Default detector configuration constants.
const (
	defaultHistorySize = 1000
)

// Classification thresholds, preserved as-is for behavioral parity.
const (
	minFramesForAnalysis = 10
	patternWindow        = 20
	patternMinSamples    = 10
	tendencyWindow       = 30
	tendencyMinSamples   = 5
	maxInsights          = 3

	steadyAimMean        = 5.0
	jitteryAimMean       = 20.0
	inconsistentAimVar   = 100.0
	excessiveMoveRatio   = 0.8
	stationaryMoveRatio  = 0.2
	erraticMoveMagnitude = 10.0
	aggressiveRatio      = 0.5
	passiveRatio         = 0.1
)

// Report is one analysis pass over the detector's history.
type Report struct {
	Patterns   []model.BehaviorPattern
	Tendencies model.Tendencies
	Insights   []string
}

// Detector accumulates observations and classifies recurring patterns
// and style tendencies over them.
type Detector struct {
	observations *history.Ring[model.Observation]
	historySize  int
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithHistorySize bounds the detector's observation window.
func WithHistorySize(size int) Option {
	return func(d *Detector) {
		if size > 0 {
			d.historySize = size
		}
	}
}

// NewDetector creates a behavior detector with configuration options.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{historySize: defaultHistorySize}

	for _, opt := range opts {
		opt(d)
	}

	d.observations = history.New[model.Observation](d.historySize)

	return d
}

// Observe appends one observation. Zero observations are ignored.
func (d *Detector) Observe(obs model.Observation) {
	if obs.IsZero() {
		return
	}
	d.observations.Push(obs)
}

// HistoryLen returns the number of stored observations.
func (d *Detector) HistoryLen() int {
	return d.observations.Len()
}

// Analyze classifies patterns and tendencies over the stored history.
// Fewer than ten stored frames degrades to an empty report with all
// tendencies unknown.
func (d *Detector) Analyze() Report {
	if d.observations.Len() < minFramesForAnalysis {
		return Report{Tendencies: unknownTendencies()}
	}

	var patterns []model.BehaviorPattern
	for _, p := range []*model.BehaviorPattern{
		d.aimPattern(),
		d.movementPattern(),
		d.engagementPattern(),
	} {
		if p != nil {
			patterns = append(patterns, *p)
		}
	}

	tendencies := d.tendencies()

	return Report{
		Patterns:   patterns,
		Tendencies: tendencies,
		Insights:   behaviorInsights(patterns, tendencies),
	}
}

// aimPattern classifies crosshair movement over the last visible reticle
// positions: steady under low mean displacement, jittery above high,
// inconsistent on high variance.
func (d *Detector) aimPattern() *model.BehaviorPattern {
	var positions []model.Point
	for _, o := range d.observations.Tail(patternWindow) {
		if o.Reticle.Visible {
			positions = append(positions, o.Reticle.Position)
		}
	}
	if len(positions) < patternMinSamples {
		return nil
	}

	displacements := make([]float64, 0, len(positions)-1)
	for i := 1; i < len(positions); i++ {
		dx := float64(positions[i].X - positions[i-1].X)
		dy := float64(positions[i].Y - positions[i-1].Y)
		displacements = append(displacements, math.Hypot(dx, dy))
	}

	mean := mean(displacements)
	switch {
	case mean < steadyAimMean:
		return &model.BehaviorPattern{
			Kind:        model.PatternSteadyAim,
			Confidence:  0.8,
			Frequency:   0.7,
			Description: "Player maintains steady crosshair position",
			Impact:      model.ImpactPositive,
		}
	case mean > jitteryAimMean:
		return &model.BehaviorPattern{
			Kind:        model.PatternJitteryAim,
			Confidence:  0.7,
			Frequency:   0.6,
			Description: "Player has jittery crosshair movement",
			Impact:      model.ImpactNegative,
		}
	case variance(displacements) > inconsistentAimVar:
		return &model.BehaviorPattern{
			Kind:        model.PatternInconsistentAim,
			Confidence:  0.6,
			Frequency:   0.5,
			Description: "Player has inconsistent crosshair movement",
			Impact:      model.ImpactNegative,
		}
	}

	return nil
}

// movementPattern classifies the moving-frame ratio and magnitude over
// the recent window.
func (d *Detector) movementPattern() *model.BehaviorPattern {
	window := d.observations.Tail(patternWindow)
	if len(window) < patternMinSamples {
		return nil
	}

	var moving int
	var magnitudes []float64
	for _, o := range window {
		if o.Motion.Moving {
			moving++
		}
		magnitudes = append(magnitudes, o.Motion.Magnitude)
	}
	ratio := float64(moving) / float64(len(window))

	switch {
	case ratio > excessiveMoveRatio:
		return &model.BehaviorPattern{
			Kind:        model.PatternExcessiveMovement,
			Confidence:  0.7,
			Frequency:   ratio,
			Description: "Player moves too frequently",
			Impact:      model.ImpactNegative,
		}
	case ratio < stationaryMoveRatio:
		return &model.BehaviorPattern{
			Kind:        model.PatternStationaryPlay,
			Confidence:  0.6,
			Frequency:   1 - ratio,
			Description: "Player stays stationary too often",
			Impact:      model.ImpactNeutral,
		}
	case mean(magnitudes) > erraticMoveMagnitude:
		return &model.BehaviorPattern{
			Kind:        model.PatternErraticMovement,
			Confidence:  0.6,
			Frequency:   0.5,
			Description: "Player has erratic movement patterns",
			Impact:      model.ImpactNegative,
		}
	}

	return nil
}

// engagementPattern classifies how often opponents share the screen with
// the player across the recent window.
func (d *Detector) engagementPattern() *model.BehaviorPattern {
	window := d.observations.Tail(patternWindow)
	if len(window) == 0 {
		return nil
	}

	var contact int
	for _, o := range window {
		if len(o.Opponents) > 0 {
			contact++
		}
	}
	ratio := float64(contact) / float64(len(window))

	switch {
	case ratio > aggressiveRatio:
		return &model.BehaviorPattern{
			Kind:        model.PatternAggressivePlay,
			Confidence:  0.7,
			Frequency:   ratio,
			Description: "Player engages enemies frequently",
			Impact:      model.ImpactPositive,
		}
	case ratio < passiveRatio:
		return &model.BehaviorPattern{
			Kind:        model.PatternPassivePlay,
			Confidence:  0.6,
			Frequency:   1 - ratio,
			Description: "Player avoids engagements",
			Impact:      model.ImpactNeutral,
		}
	}

	return nil
}

func (d *Detector) tendencies() model.Tendencies {
	window := d.observations.Tail(tendencyWindow)
	return model.Tendencies{
		AimStyle:         aimStyle(window),
		MovementStyle:    movementStyle(window),
		EngagementStyle:  engagementStyle(window),
		PositioningStyle: "standard",
	}
}

func aimStyle(window []model.Observation) string {
	var xs, ys []float64
	for _, o := range window {
		if o.Reticle.Visible {
			xs = append(xs, float64(o.Reticle.Position.X))
			ys = append(ys, float64(o.Reticle.Position.Y))
		}
	}
	if len(xs) < tendencyMinSamples {
		return "unknown"
	}

	v := (variance(xs) + variance(ys)) / 2
	switch {
	case v < 50:
		return "steady"
	case v < 200:
		return "controlled"
	default:
		return "erratic"
	}
}

func movementStyle(window []model.Observation) string {
	if len(window) < tendencyMinSamples {
		return "unknown"
	}

	var moving int
	var magnitudes []float64
	for _, o := range window {
		if o.Motion.Moving {
			moving++
		}
		magnitudes = append(magnitudes, o.Motion.Magnitude)
	}
	ratio := float64(moving) / float64(len(window))

	switch {
	case ratio < 0.2:
		return "stationary"
	case ratio > 0.8:
		return "hyperactive"
	case mean(magnitudes) > 8:
		return "erratic"
	default:
		return "controlled"
	}
}

func engagementStyle(window []model.Observation) string {
	if len(window) < tendencyMinSamples {
		return "unknown"
	}

	var sum, peak int
	for _, o := range window {
		n := len(o.Opponents)
		sum += n
		if n > peak {
			peak = n
		}
	}
	avg := float64(sum) / float64(len(window))

	switch {
	case avg > 1.5:
		return "aggressive"
	case peak > 2:
		return "opportunistic"
	case avg < 0.5:
		return "passive"
	default:
		return "balanced"
	}
}

// behaviorInsights derives up to three observations from negative
// patterns and specific tendency values.
func behaviorInsights(patterns []model.BehaviorPattern, tendencies model.Tendencies) []string {
	var insights []string

	for _, p := range patterns {
		if p.Impact != model.ImpactNegative {
			continue
		}
		switch p.Kind {
		case model.PatternJitteryAim:
			insights = append(insights, "Your aim is jittery. Try to stay calm and control your mouse movements.")
		case model.PatternExcessiveMovement:
			insights = append(insights, "You're moving too much. Try to stay still when aiming and shooting.")
		case model.PatternErraticMovement:
			insights = append(insights, "Your movement is erratic. Practice smooth, controlled movement.")
		}
	}

	if tendencies.AimStyle == "erratic" {
		insights = append(insights, "Your aim style is erratic. Focus on smooth, controlled movements.")
	}
	if tendencies.MovementStyle == "hyperactive" {
		insights = append(insights, "You move too frequently. Learn to stay still when necessary.")
	}
	switch tendencies.EngagementStyle {
	case "passive":
		insights = append(insights, "You're too passive. Look for opportunities to engage enemies.")
	case "aggressive":
		insights = append(insights, "You're very aggressive. Make sure to coordinate with your team.")
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func unknownTendencies() model.Tendencies {
	return model.Tendencies{
		AimStyle:         "unknown",
		MovementStyle:    "unknown",
		EngagementStyle:  "unknown",
		PositioningStyle: "unknown",
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func variance(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := mean(vals)
	var sq float64
	for _, v := range vals {
		d := v - m
		sq += d * d
	}
	return sq / float64(len(vals))
}
