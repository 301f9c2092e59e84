package vision

import (
	"image"

	"github.com/okian/aimsight/internal/domain/model"
)

// detectUIRegions probes the bottom corners of the frame, where HUD
// elements conventionally sit, and marks a region present when its mean
// brightness clears a threshold. Region boxes are reported even when
// absent so downstream code sees a stable shape.
func detectUIRegions(img *image.RGBA) []model.UIRegion {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	w := min(uiCornerWidth, width)
	h := min(uiCornerHeight, height)

	left := model.Rect{X: bounds.Min.X, Y: bounds.Max.Y - h, Width: w, Height: h}
	right := model.Rect{X: bounds.Max.X - w, Y: bounds.Max.Y - h, Width: w, Height: h}

	return []model.UIRegion{
		{Name: "health_ui", Box: left, Present: meanBrightness(img, left) > uiBrightnessThreshold},
		{Name: "ammo_ui", Box: right, Present: meanBrightness(img, right) > uiBrightnessThreshold},
	}
}

// meanBrightness averages (R+G+B)/3 over the rectangle.
func meanBrightness(img *image.RGBA, r model.Rect) float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}

	var sum uint64
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			px := rgbaAt(img, x, y)
			sum += uint64(px.R) + uint64(px.G) + uint64(px.B)
		}
	}

	return float64(sum) / 3 / float64(r.Area())
}
