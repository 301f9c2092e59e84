package vision

import (
	"image"
	"math"

	"github.com/okian/aimsight/internal/domain/model"
)

// detectReticle searches a fixed-radius window around the image center for
// a small connected region matching one of the known marker colors. When
// nothing matches, the geometric center is returned with Visible=false:
// absence of a positive match degrades gracefully to a default.
func detectReticle(img *image.RGBA) model.Reticle {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	centerX, centerY := bounds.Min.X+width/2, bounds.Min.Y+height/2

	x1 := max(bounds.Min.X, centerX-reticleSearchRadius)
	y1 := max(bounds.Min.Y, centerY-reticleSearchRadius)
	x2 := min(bounds.Max.X, centerX+reticleSearchRadius)
	y2 := min(bounds.Max.Y, centerY+reticleSearchRadius)

	winW, winH := x2-x1, y2-y1
	if winW <= 0 || winH <= 0 {
		return model.Reticle{Position: model.Point{X: centerX, Y: centerY}}
	}

	mask := make([]bool, winW*winH)
	for _, marker := range markerColors {
		for i := range mask {
			mask[i] = false
		}
		for y := 0; y < winH; y++ {
			for x := 0; x < winW; x++ {
				if marker.contains(rgbaAt(img, x1+x, y1+y)) {
					mask[y*winW+x] = true
				}
			}
		}

		for _, c := range findComponents(mask, winW, winH, reticleMinArea, reticleMaxArea) {
			cx, cy := c.cx+x1, c.cy+y1
			dist := math.Hypot(float64(cx-centerX), float64(cy-centerY))
			if dist < reticleSearchRadius {
				return model.Reticle{
					Position: model.Point{X: cx, Y: cy},
					Visible:  true,
				}
			}
		}
	}

	return model.Reticle{Position: model.Point{X: centerX, Y: centerY}}
}
