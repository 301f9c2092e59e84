package sessionsim

import (
	"image"
	"math/rand"

	"github.com/okian/aimsight/internal/capture"
)

// phase is one segment of the scripted session with its own rendering
// behavior.
type phase struct {
	name   string
	share  float64 // fraction of the total frame budget
	source *capture.SyntheticSource
}

// buildPhases scripts a session that walks through distinct play styles
// so every detector has something to classify: holding an angle, taking
// a fight, repositioning, and panicking.
func buildPhases(cfg *Config) []phase {
	rng := rand.New(rand.NewSource(cfg.Seed))

	return []phase{
		{
			name:  "holding",
			share: 0.3,
			source: capture.NewSyntheticSource(
				capture.WithSize(cfg.Width, cfg.Height),
				capture.WithReticle(),
				capture.WithBrightCorners(),
			),
		},
		{
			name:  "contact",
			share: 0.3,
			source: capture.NewSyntheticSource(
				capture.WithSize(cfg.Width, cfg.Height),
				capture.WithReticle(),
				capture.WithBrightCorners(),
				capture.WithOpponents(randomOpponents(rng, cfg.Width, cfg.Height)...),
			),
		},
		{
			name:  "rotating",
			share: 0.2,
			source: capture.NewSyntheticSource(
				capture.WithSize(cfg.Width, cfg.Height),
				capture.WithReticle(),
				capture.WithBrightCorners(),
				capture.WithSceneShift(8),
			),
		},
		{
			name:  "panicking",
			share: 0.2,
			source: capture.NewSyntheticSource(
				capture.WithSize(cfg.Width, cfg.Height),
				capture.WithReticle(),
				capture.WithBrightCorners(),
				capture.WithOpponents(randomOpponents(rng, cfg.Width, cfg.Height)...),
				capture.WithSceneShift(48),
			),
		},
	}
}

// randomOpponents places one to three plausible opponent boxes away from
// the screen edges.
func randomOpponents(rng *rand.Rand, width, height int) []image.Rectangle {
	n := 1 + rng.Intn(3)
	boxes := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		w := 30 + rng.Intn(40)
		h := 2 * w
		x := width/8 + rng.Intn(width*3/4)
		y := height/8 + rng.Intn(height/2)
		boxes = append(boxes, image.Rect(x, y, x+w, y+h))
	}
	return boxes
}

// frameBudget splits the total frame count across phases by share.
func frameBudget(total int, phases []phase) []int {
	budget := make([]int, len(phases))
	used := 0
	for i, p := range phases {
		budget[i] = int(float64(total) * p.share)
		used += budget[i]
	}
	// Rounding leftovers go to the last phase.
	if len(budget) > 0 {
		budget[len(budget)-1] += total - used
	}
	return budget
}
