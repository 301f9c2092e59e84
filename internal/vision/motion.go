package vision

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/okian/aimsight/internal/capture"
	"github.com/okian/aimsight/internal/domain/model"
)

// Block-matching parameters, all in downscaled coordinates.
const (
	motionScaleWidth  = 160
	motionBlockSize   = 8
	motionSearchRange = 4
)

// analyzeMotion estimates camera/scene motion between consecutive frames
// by block matching on downscaled grayscale copies. The first frame of a
// session has no predecessor and reports a stationary zero motion.
func analyzeMotion(prev, curr *capture.Frame) model.Motion {
	if prev == nil || prev.Img == nil || curr == nil || curr.Img == nil {
		return model.Motion{Direction: model.DirectionStationary}
	}

	a := downscaleGray(prev.Img)
	b := downscaleGray(curr.Img)
	if a == nil || b == nil || a.Bounds() != b.Bounds() {
		return model.Motion{Direction: model.DirectionStationary}
	}

	scale := float64(curr.Img.Bounds().Dx()) / float64(a.Bounds().Dx())

	// Quadrant buckets: 0 top-left, 1 top-right, 2 bottom-left,
	// 3 bottom-right. Flat blocks count toward the quadrant size with a
	// zero vector, matching a dense field that is quiet over flat areas.
	var (
		count  int
		sumMag float64
		qx, qy [4]float64
		qn     [4]int
	)
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	midX, midY := w/2, h/2
	for by := 0; by+motionBlockSize <= h; by += motionBlockSize {
		for bx := 0; bx+motionBlockSize <= w; bx += motionBlockSize {
			q := 0
			if bx+motionBlockSize/2 >= midX {
				q = 1
			}
			if by+motionBlockSize/2 >= midY {
				q += 2
			}
			qn[q]++

			dx, dy, ok := matchBlock(a, b, bx, by)
			if !ok {
				continue
			}
			count++
			qx[q] += float64(dx)
			qy[q] += float64(dy)
			sumMag += math.Hypot(float64(dx), float64(dy))
		}
	}

	if count == 0 {
		return model.Motion{Direction: model.DirectionStationary}
	}

	// Per-quadrant mean displacement in source-resolution pixels.
	for q := 0; q < 4; q++ {
		if qn[q] == 0 {
			continue
		}
		qx[q] = qx[q] / float64(qn[q]) * scale
		qy[q] = qy[q] / float64(qn[q]) * scale
	}

	magnitude := sumMag / float64(count) * scale

	return model.Motion{
		Magnitude: magnitude,
		Moving:    magnitude > movingThreshold,
		Direction: dominantDirection(
			qy[0]+qy[1], // up: vertical displacement across the top half
			qy[2]+qy[3], // down: vertical displacement across the bottom half
			qx[0]+qx[2], // left: horizontal displacement down the left half
			qx[1]+qx[3], // right: horizontal displacement down the right half
		),
	}
}

// matchBlock finds the displacement within the search range that best
// matches the block at (bx, by) in a against b, by sum of absolute
// differences. Blocks with near-zero texture are skipped: a flat block
// matches everywhere and contributes only noise.
func matchBlock(a, b *image.Gray, bx, by int) (dx, dy int, ok bool) {
	if blockVariance(a, bx, by) < 1 {
		return 0, 0, false
	}

	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	best := math.MaxInt
	for sy := -motionSearchRange; sy <= motionSearchRange; sy++ {
		for sx := -motionSearchRange; sx <= motionSearchRange; sx++ {
			tx, ty := bx+sx, by+sy
			if tx < 0 || ty < 0 || tx+motionBlockSize > w || ty+motionBlockSize > h {
				continue
			}
			sad := 0
			for y := 0; y < motionBlockSize; y++ {
				ai := a.PixOffset(bx, by+y)
				bi := b.PixOffset(tx, ty+y)
				for x := 0; x < motionBlockSize; x++ {
					d := int(a.Pix[ai+x]) - int(b.Pix[bi+x])
					if d < 0 {
						d = -d
					}
					sad += d
				}
			}
			// Prefer the smallest displacement on ties so a static
			// scene reads as zero motion.
			if sad < best || (sad == best && sx == 0 && sy == 0) {
				best = sad
				dx, dy = sx, sy
			}
		}
	}

	return dx, dy, true
}

// blockVariance is a cheap texture measure over one block.
func blockVariance(g *image.Gray, bx, by int) float64 {
	var sum, sumSq float64
	n := float64(motionBlockSize * motionBlockSize)
	for y := 0; y < motionBlockSize; y++ {
		i := g.PixOffset(bx, by+y)
		for x := 0; x < motionBlockSize; x++ {
			v := float64(g.Pix[i+x])
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / n
	return sumSq/n - mean*mean
}

// dominantDirection picks the strongest of the four quadrant-aggregate
// displacements. The first cardinal listed wins a tie, and an aggregate
// below the floor reads as stationary.
func dominantDirection(up, down, left, right float64) model.Direction {
	best, bestVal := model.DirectionUp, up
	if down > bestVal {
		best, bestVal = model.DirectionDown, down
	}
	if left > bestVal {
		best, bestVal = model.DirectionLeft, left
	}
	if right > bestVal {
		best, bestVal = model.DirectionRight, right
	}

	if math.Abs(bestVal) <= directionMinAggregate {
		return model.DirectionStationary
	}
	return best
}

// downscaleGray converts a frame to grayscale at a fixed reduced width,
// preserving aspect ratio.
func downscaleGray(src *image.RGBA) *image.Gray {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return nil
	}

	w := motionScaleWidth
	if sb.Dx() < w {
		w = sb.Dx()
	}
	h := sb.Dy() * w / sb.Dx()
	if h == 0 {
		h = 1
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	return dst
}
