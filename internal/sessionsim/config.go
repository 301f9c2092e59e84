// Package sessionsim drives the full coaching pipeline over a scripted
// synthetic gameplay session and reports what the coach made of it. It
// exists to exercise the pipeline end to end without a live capture
// collaborator.
package sessionsim

import "time"

// Config controls a simulated session run.
type Config struct {
	Frames     int
	Width      int
	Height     int
	Seed       int64
	OutputFile string
	LogFile    string
	Verbose    bool
}

// Stats accumulates counters for the final report.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	FramesProcessed int
	EventsDetected  int
	TipsEmitted     int
}
