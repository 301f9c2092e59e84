// Package model contains domain models passed between pipeline stages.
package model

import "time"

// Point is a pixel position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned bounding box in screen coordinates.
type Rect struct {
	X      int // left edge
	Y      int // top edge
	Width  int
	Height int
}

// Center returns the geometric center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns the rectangle's area in pixels.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Reticle is the player's aim-point marker as seen on screen.
// When no marker is found the position degrades to the screen center
// with Visible=false; detection never fails hard.
type Reticle struct {
	Position Point
	Visible  bool
}

// Opponent is a candidate opponent silhouette.
type Opponent struct {
	Box        Rect
	Center     Point
	Confidence float64 // monotonically increasing with area, capped at 1
}

// UIRegion is a fixed screen sub-region checked for UI presence.
type UIRegion struct {
	Name    string // e.g. "health_ui", "ammo_ui"
	Box     Rect
	Present bool
}

// Direction is a coarse cardinal movement direction.
type Direction string

// Movement directions derived from quadrant displacement aggregates.
const (
	DirectionUp         Direction = "up"
	DirectionDown       Direction = "down"
	DirectionLeft       Direction = "left"
	DirectionRight      Direction = "right"
	DirectionStationary Direction = "stationary"
	DirectionUnknown    Direction = "unknown"
)

// Motion summarizes the displacement field between consecutive frames.
type Motion struct {
	Magnitude float64 // mean displacement magnitude in pixels
	Moving    bool
	Direction Direction
}

// Observation is one frame's worth of extracted visual features.
// Immutable once produced; the session analyzer owns its rolling history.
type Observation struct {
	Reticle   Reticle
	Opponents []Opponent
	UIRegions []UIRegion
	Motion    Motion
	Timestamp time.Time
}

// IsZero reports whether the observation carries no frame at all, which
// callers treat as a no-op input.
func (o Observation) IsZero() bool {
	return o.Timestamp.IsZero()
}
