package vision

import (
	"image"

	"github.com/okian/aimsight/internal/domain/model"
)

// detectOpponents thresholds the image into an opponent-colored mask,
// extracts connected components, and reports plausibly sized ones as
// bounding boxes with confidence growing with area, capped at 1.
func detectOpponents(img *image.RGBA) []model.Opponent {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	mask := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if opponentColor.contains(rgbaAt(img, bounds.Min.X+x, bounds.Min.Y+y)) {
				mask[y*width+x] = true
			}
		}
	}

	var opponents []model.Opponent
	for _, c := range findComponents(mask, width, height, opponentMinArea, 0) {
		box := c.box.Add(image.Point{X: bounds.Min.X, Y: bounds.Min.Y})
		confidence := float64(c.area) / opponentFullConfArea
		if confidence > 1 {
			confidence = 1
		}
		r := model.Rect{
			X:      box.Min.X,
			Y:      box.Min.Y,
			Width:  box.Dx(),
			Height: box.Dy(),
		}
		opponents = append(opponents, model.Opponent{
			Box:        r,
			Center:     r.Center(),
			Confidence: confidence,
		})
	}

	return opponents
}
