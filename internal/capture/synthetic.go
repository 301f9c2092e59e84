package capture

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"
)

// SyntheticSource renders parameterizable gameplay-like frames: a reticle
// marker at screen center, opponent-colored rectangles, bright UI corners,
// and an optional per-frame scene shift that produces motion. Used by the
// session simulator and tests; it stands in for a real screen-grab
// collaborator.
type SyntheticSource struct {
	width  int
	height int

	drawReticle   bool
	reticleColor  color.RGBA
	opponents     []image.Rectangle
	brightCorners bool
	shiftPerFrame int

	frame int
}

// SyntheticOption applies a configuration option to the SyntheticSource.
type SyntheticOption func(*SyntheticSource)

// WithSize sets the rendered frame dimensions.
func WithSize(width, height int) SyntheticOption {
	return func(s *SyntheticSource) {
		if width > 0 && height > 0 {
			s.width = width
			s.height = height
		}
	}
}

// WithReticle enables the center reticle marker.
func WithReticle() SyntheticOption {
	return func(s *SyntheticSource) {
		s.drawReticle = true
	}
}

// WithOpponents draws opponent-colored rectangles at the given bounds.
func WithOpponents(boxes ...image.Rectangle) SyntheticOption {
	return func(s *SyntheticSource) {
		s.opponents = boxes
	}
}

// WithBrightCorners lights the bottom screen corners above the UI
// brightness threshold.
func WithBrightCorners() SyntheticOption {
	return func(s *SyntheticSource) {
		s.brightCorners = true
	}
}

// WithSceneShift shifts the rendered scene horizontally by px each frame,
// producing a rightward displacement field between consecutive frames.
func WithSceneShift(px int) SyntheticOption {
	return func(s *SyntheticSource) {
		s.shiftPerFrame = px
	}
}

// NewSyntheticSource creates a synthetic frame source.
func NewSyntheticSource(opts ...SyntheticOption) *SyntheticSource {
	s := &SyntheticSource{
		width:        640,
		height:       360,
		reticleColor: color.RGBA{R: 220, G: 20, B: 20, A: 255},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grab renders the next frame.
func (s *SyntheticSource) Grab(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	// Dim gray background with smooth non-repeating texture so block
	// matching has unambiguous structure to lock onto when the scene
	// shifts. Horizontal bands translate with the shift; the vertical
	// band stays put.
	shift := s.frame * s.shiftPerFrame
	horiz := make([]float64, s.width)
	for x := range horiz {
		fx := float64(x - shift)
		horiz[x] = 10*math.Sin(0.11*fx) + 8*math.Sin(0.043*fx)
	}
	for y := 0; y < s.height; y++ {
		vert := 6 * math.Sin(0.07*float64(y))
		for x := 0; x < s.width; x++ {
			v := uint8(38 + horiz[x] + vert)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	for _, box := range s.opponents {
		fill(img, box, color.RGBA{R: 200, G: 30, B: 30, A: 255})
	}

	if s.brightCorners {
		fill(img, image.Rect(0, s.height-100, 200, s.height), color.RGBA{R: 120, G: 120, B: 120, A: 255})
		fill(img, image.Rect(s.width-200, s.height-100, s.width, s.height), color.RGBA{R: 120, G: 120, B: 120, A: 255})
	}

	if s.drawReticle {
		cx, cy := s.width/2, s.height/2
		fill(img, image.Rect(cx-4, cy-1, cx+4, cy+1), s.reticleColor)
		fill(img, image.Rect(cx-1, cy-4, cx+1, cy+4), s.reticleColor)
	}

	s.frame++
	return &Frame{Img: img, Timestamp: time.Now()}, nil
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}
