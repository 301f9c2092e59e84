package vision

import "image"

// component is a 4-connected region of set mask pixels.
type component struct {
	area int
	box  image.Rectangle
	cx   int // centroid x
	cy   int // centroid y
}

// findComponents labels 4-connected components in mask (row-major, width
// w) and returns those whose area falls within [minArea, maxArea].
// maxArea <= 0 means unbounded above.
func findComponents(mask []bool, w, h, minArea, maxArea int) []component {
	visited := make([]bool, len(mask))
	var out []component

	queue := make([]int, 0, 256)
	for start := range mask {
		if !mask[start] || visited[start] {
			continue
		}

		// BFS flood fill from start.
		queue = queue[:0]
		queue = append(queue, start)
		visited[start] = true

		area := 0
		sumX, sumY := 0, 0
		minX, minY := w, h
		maxX, maxY := 0, 0

		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]

			x, y := idx%w, idx/w
			area++
			sumX += x
			sumY += y
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}

			for _, n := range [4]int{idx - 1, idx + 1, idx - w, idx + w} {
				if n < 0 || n >= len(mask) {
					continue
				}
				// Do not wrap across row edges.
				if (n == idx-1 && x == 0) || (n == idx+1 && x == w-1) {
					continue
				}
				if mask[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}

		if area < minArea || (maxArea > 0 && area > maxArea) {
			continue
		}
		out = append(out, component{
			area: area,
			box:  image.Rect(minX, minY, maxX+1, maxY+1),
			cx:   sumX / area,
			cy:   sumY / area,
		})
	}

	return out
}
