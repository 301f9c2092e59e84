package model

// Impact tags a behavior pattern's effect on play quality.
type Impact string

// Impact polarities.
const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// PatternKind names a recurring behavior tendency.
type PatternKind string

// Behavior pattern kinds classified by the detector.
const (
	PatternSteadyAim         PatternKind = "steady_aim"
	PatternJitteryAim        PatternKind = "jittery_aim"
	PatternInconsistentAim   PatternKind = "inconsistent_aim"
	PatternExcessiveMovement PatternKind = "excessive_movement"
	PatternStationaryPlay    PatternKind = "stationary_play"
	PatternErraticMovement   PatternKind = "erratic_movement"
	PatternAggressivePlay    PatternKind = "aggressive_play"
	PatternPassivePlay       PatternKind = "passive_play"
)

// BehaviorPattern is a classified recurring tendency with confidence and
// impact polarity. Produced fresh on each analysis call.
type BehaviorPattern struct {
	Kind        PatternKind
	Confidence  float64
	Frequency   float64
	Description string
	Impact      Impact
}

// Tendencies holds the four categorical style classifiers. Each value is
// "unknown" when too few samples exist to classify.
type Tendencies struct {
	AimStyle         string
	MovementStyle    string
	EngagementStyle  string
	PositioningStyle string
}
