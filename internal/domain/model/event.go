package model

import "time"

// EventKind discriminates gameplay events derived from observations.
type EventKind string

// Event kinds detected by the session analyzer.
const (
	EventEnemyDetected          EventKind = "enemy_detected"
	EventGoodCrosshairPlacement EventKind = "good_crosshair_placement"
	EventPoorCrosshairPlacement EventKind = "poor_crosshair_placement"
	EventInefficientMovement    EventKind = "inefficient_movement"
)

// Positive reports whether the kind reflects well on the player.
func (k EventKind) Positive() bool {
	return k == EventGoodCrosshairPlacement
}

// Negative reports whether the kind reflects poorly on the player.
func (k EventKind) Negative() bool {
	return k == EventPoorCrosshairPlacement || k == EventInefficientMovement
}

// Event is a timestamped, discrete, named occurrence derived from one or
// more observations. Append-only; histories evict oldest first.
type Event struct {
	Kind       EventKind
	Timestamp  time.Time
	Confidence float64
	Position   *Point // optional screen position
	Payload    map[string]any
}
