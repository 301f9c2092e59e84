// Package vision extracts low-level visual observations from captured
// frames: reticle position, opponent silhouettes, UI-region presence, and
// inter-frame motion. Detection is intentionally approximate and
// threshold-based; a sub-detector that finds nothing degrades to a safe
// default rather than failing the observation.
package vision

import (
	"image"
	"image/color"

	"github.com/okian/aimsight/internal/capture"
	"github.com/okian/aimsight/internal/domain/history"
	"github.com/okian/aimsight/internal/domain/model"
	"github.com/okian/aimsight/pkg/metrics"
)

// Default extraction configuration constants.
const (
	defaultFrameHistorySize = 30
	reticleSearchRadius     = 50
	reticleMinArea          = 10
	reticleMaxArea          = 500
	opponentMinArea         = 100
	opponentFullConfArea    = 1000
	uiCornerWidth           = 200
	uiCornerHeight          = 100
	uiBrightnessThreshold   = 50.0
	movingThreshold         = 1.0
	directionMinAggregate   = 0.5
)

// colorRange is an inclusive RGB range used for marker matching.
type colorRange struct {
	minR, minG, minB uint8
	maxR, maxG, maxB uint8
}

func (c colorRange) contains(px color.RGBA) bool {
	return px.R >= c.minR && px.R <= c.maxR &&
		px.G >= c.minG && px.G <= c.maxG &&
		px.B >= c.minB && px.B <= c.maxB
}

// markerColors are the known reticle marker colors (red, green, blue).
var markerColors = []colorRange{
	{minR: 200, maxR: 255, minG: 0, maxG: 50, minB: 0, maxB: 50},
	{minR: 0, maxR: 50, minG: 200, maxG: 255, minB: 0, maxB: 50},
	{minR: 0, maxR: 50, minG: 0, maxG: 50, minB: 200, maxB: 255},
}

// opponentColor matches red-dominant silhouette pixels.
var opponentColor = colorRange{minR: 150, maxR: 255, minG: 0, maxG: 80, minB: 0, maxB: 80}

// Extractor turns frames into observations. It keeps a small ring of
// recent frames for motion comparison; no other mutable state.
type Extractor struct {
	frames           *history.Ring[*capture.Frame]
	frameHistorySize int
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithFrameHistorySize bounds the recent-frame ring used for motion.
func WithFrameHistorySize(size int) Option {
	return func(e *Extractor) {
		if size > 0 {
			e.frameHistorySize = size
		}
	}
}

// NewExtractor creates an extractor with configuration options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		frameHistorySize: defaultFrameHistorySize,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.frames = history.New[*capture.Frame](e.frameHistorySize)

	return e
}

// Extract produces one Observation from a frame. A nil or empty frame
// yields a zero Observation; sub-detector misses yield their defaults.
func (e *Extractor) Extract(frame *capture.Frame) model.Observation {
	if frame == nil || frame.Img == nil {
		return model.Observation{}
	}

	var prev *capture.Frame
	if last, ok := e.frames.Last(); ok {
		prev = last
	}
	e.frames.Push(frame)

	obs := model.Observation{
		Reticle:   detectReticle(frame.Img),
		Opponents: detectOpponents(frame.Img),
		UIRegions: detectUIRegions(frame.Img),
		Motion:    analyzeMotion(prev, frame),
		Timestamp: frame.Timestamp,
	}

	metrics.RecordObservationExtracted()
	return obs
}

// FrameCount returns the number of frames currently buffered.
func (e *Extractor) FrameCount() int {
	return e.frames.Len()
}

// rgbaAt reads a pixel without the color.Color interface allocation.
func rgbaAt(img *image.RGBA, x, y int) color.RGBA {
	i := img.PixOffset(x, y)
	return color.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}
