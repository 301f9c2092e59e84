package model

import "time"

// PerformanceSnapshot is a rolling aggregate of gameplay-quality scores.
// All scores except ReactionTime are bounded to [0,1]; ReactionTime is in
// seconds. Overall is the arithmetic mean of the four bounded scores.
type PerformanceSnapshot struct {
	Accuracy           float64
	ReactionTime       float64 // seconds, placeholder signal
	CrosshairPlacement float64
	MovementEfficiency float64
	GameSense          float64
	Overall            float64
	Timestamp          time.Time
}

// IsZero reports whether the snapshot was produced without enough history
// to compute meaningful scores.
func (s PerformanceSnapshot) IsZero() bool {
	return s.Timestamp.IsZero()
}
