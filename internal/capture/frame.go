// Package capture supplies timestamped image buffers to the pipeline.
//
// One continuous background producer grabs frames from a Source at a fixed
// target rate and publishes them into a latest-wins single-slot handoff.
// If the pipeline cannot keep up, the oldest unconsumed frame is dropped;
// freshness is more valuable than completeness.
package capture

import (
	"image"
	"time"
)

// Frame is one captured image buffer with its capture timestamp.
//
// Pix MUST NOT be modified after the frame is published; frames are
// shared by reference down the pipeline.
type Frame struct {
	// Img holds the pixel grid in RGBA encoding.
	Img *image.RGBA

	// Timestamp is the source capture time, not processing time.
	Timestamp time.Time

	// Seq is a monotonically increasing sequence number assigned by the
	// producer. Used for drop detection in tests and stats.
	Seq uint64
}

// Bounds returns the frame's pixel bounds.
func (f *Frame) Bounds() image.Rectangle {
	return f.Img.Bounds()
}
