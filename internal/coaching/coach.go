// Package coaching converts session analysis into rate-limited,
// prioritized, category-deduplicated advice, and synthesizes training
// plans from the player's profile and skill assessments.
package coaching

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/aimsight/internal/analysis/session"
	"github.com/okian/aimsight/internal/domain/history"
	"github.com/okian/aimsight/internal/domain/model"
	"github.com/okian/aimsight/pkg/metrics"
)

// Default coach configuration constants.
const (
	defaultTipCooldown     = 5 * time.Second
	defaultTipHistorySize  = 100
	defaultSessionTipsSize = 50
)

const maxTipsPerPass = 3

// Coach owns the player profile and tip state for one session.
type Coach struct {
	profile model.PlayerProfile

	tipHistory  *history.Ring[model.CoachingTip]
	sessionTips *history.Ring[model.CoachingTip]
	lastTipTime time.Time

	tipCooldown     time.Duration
	tipHistorySize  int
	sessionTipsSize int

	now func() time.Time
}

// Stats are the coach's running counters.
type Stats struct {
	TotalTips   int
	SessionTips int
}

// Option applies a configuration option to the Coach.
type Option func(*Coach)

// WithProfile seeds the coach with a player profile.
func WithProfile(profile model.PlayerProfile) Option {
	return func(c *Coach) {
		c.profile = profile
	}
}

// WithTipCooldown sets the global minimum interval between emitted tips.
func WithTipCooldown(d time.Duration) Option {
	return func(c *Coach) {
		if d > 0 {
			c.tipCooldown = d
		}
	}
}

// WithTipHistorySize bounds the all-time tip history.
func WithTipHistorySize(size int) Option {
	return func(c *Coach) {
		if size > 0 {
			c.tipHistorySize = size
		}
	}
}

// WithSessionTipsSize bounds the per-session tip list.
func WithSessionTipsSize(size int) Option {
	return func(c *Coach) {
		if size > 0 {
			c.sessionTipsSize = size
		}
	}
}

// NewCoach creates a coach with configuration options. Without an
// explicit profile a default beginner profile is used.
func NewCoach(opts ...Option) *Coach {
	c := &Coach{
		profile:         defaultProfile(),
		tipCooldown:     defaultTipCooldown,
		tipHistorySize:  defaultTipHistorySize,
		sessionTipsSize: defaultSessionTipsSize,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.tipHistory = history.New[model.CoachingTip](c.tipHistorySize)
	c.sessionTips = history.New[model.CoachingTip](c.sessionTipsSize)

	return c
}

// Process turns one frame's analysis into at most three tips. A global
// cooldown gates the whole pass: within it, nothing is emitted.
func (c *Coach) Process(analysis session.Result) []model.CoachingTip {
	now := c.now()
	if !c.lastTipTime.IsZero() && now.Sub(c.lastTipTime) < c.tipCooldown {
		metrics.RecordTipSuppressed()
		return nil
	}

	var candidates []model.CoachingTip
	if !analysis.Snapshot.IsZero() {
		candidates = append(candidates, performanceTips(analysis.Snapshot, now)...)
	}
	candidates = append(candidates, eventTips(analysis.Events, now)...)
	candidates = append(candidates, insightTips(analysis.Insights, now)...)

	tips := dedupeByCategory(candidates)
	if len(tips) == 0 {
		return nil
	}

	for _, tip := range tips {
		c.tipHistory.Push(tip)
		c.sessionTips.Push(tip)
		metrics.RecordTipEmitted(tip.Category)
	}
	c.lastTipTime = now

	if len(tips) > maxTipsPerPass {
		tips = tips[:maxTipsPerPass]
	}
	return tips
}

// GenerateTrainingPlan builds a practice schedule for the given focus
// areas, deriving them from the profile's weaknesses when none are given.
func (c *Coach) GenerateTrainingPlan(focusAreas []string) model.TrainingPlan {
	if len(focusAreas) == 0 {
		focusAreas = c.weakestAreas()
	}

	plan := model.TrainingPlan{
		FocusAreas: focusAreas,
		Exercises:  make(map[string][]string, len(focusAreas)),
		Duration:   "30 minutes",
		Frequency:  "daily",
	}
	for _, area := range focusAreas {
		plan.Exercises[area] = exercisesForArea(area)
		plan.Goals = append(plan.Goals, goalForArea(area))
	}
	return plan
}

// UpdateProfile merges a partial update into the profile. Nil fields are
// absent and leave the corresponding profile field untouched.
func (c *Coach) UpdateProfile(update model.ProfileUpdate) {
	if update.SkillLevel != nil {
		c.profile.SkillLevel = *update.SkillLevel
	}
	if update.PrimaryRole != nil {
		c.profile.PrimaryRole = *update.PrimaryRole
	}
	if update.Strengths != nil {
		c.profile.Strengths = update.Strengths
	}
	if update.Weaknesses != nil {
		c.profile.Weaknesses = update.Weaknesses
	}
	if update.Goals != nil {
		c.profile.Goals = update.Goals
	}
	if update.PlaytimeHours != nil {
		c.profile.PlaytimeHours = *update.PlaytimeHours
	}
}

// Profile returns a copy of the current player profile.
func (c *Coach) Profile() model.PlayerProfile {
	return c.profile
}

// Stats reports the coach's running tip counters.
func (c *Coach) Stats() Stats {
	return Stats{
		TotalTips:   c.tipHistory.Len(),
		SessionTips: c.sessionTips.Len(),
	}
}

// weakestAreas maps profile weaknesses onto training areas, falling back
// to the two most common fundamentals when nothing maps.
func (c *Coach) weakestAreas() []string {
	mapping := map[string]string{
		"aim":                 "mechanics",
		"positioning":         "positioning",
		"game sense":          "game_sense",
		"movement":            "movement",
		"crosshair placement": "crosshair_placement",
	}

	var areas []string
	for _, weakness := range c.profile.Weaknesses {
		if area, ok := mapping[strings.ToLower(weakness)]; ok {
			areas = append(areas, area)
		}
	}
	if len(areas) == 0 {
		return []string{"crosshair_placement", "movement"}
	}
	if len(areas) > maxTipsPerPass {
		areas = areas[:maxTipsPerPass]
	}
	return areas
}

func performanceTips(snapshot model.PerformanceSnapshot, now time.Time) []model.CoachingTip {
	var tips []model.CoachingTip

	if snapshot.Accuracy < 0.6 {
		tips = append(tips, newTip("mechanics", 5,
			"Your accuracy needs improvement. Practice in the Range with different weapons and focus on recoil control.",
			now, map[string]any{"accuracy": snapshot.Accuracy}))
	}
	if snapshot.CrosshairPlacement < 0.5 {
		tips = append(tips, newTip("crosshair_placement", 5,
			"Keep your crosshair at head level and pre-aim common angles. This will improve your reaction time and accuracy.",
			now, map[string]any{"crosshair_placement": snapshot.CrosshairPlacement}))
	}
	if snapshot.MovementEfficiency < 0.4 {
		tips = append(tips, newTip("movement", 4,
			"Practice counter-strafing and efficient movement. Don't move while shooting unless necessary.",
			now, map[string]any{"movement_efficiency": snapshot.MovementEfficiency}))
	}
	if snapshot.GameSense < 0.5 {
		tips = append(tips, newTip("game_sense", 3,
			"Improve your game sense by learning common angles, timings, and team coordination patterns.",
			now, map[string]any{"game_sense": snapshot.GameSense}))
	}

	return tips
}

func eventTips(events []model.Event, now time.Time) []model.CoachingTip {
	if len(events) > maxTipsPerPass {
		events = events[len(events)-maxTipsPerPass:]
	}

	var tips []model.CoachingTip
	for _, ev := range events {
		ctx := map[string]any{"event_kind": string(ev.Kind)}
		switch ev.Kind {
		case model.EventPoorCrosshairPlacement:
			tips = append(tips, newTip("crosshair_placement", 4,
				"Your crosshair placement was poor. Aim at head level and pre-aim angles.", now, ctx))
		case model.EventInefficientMovement:
			tips = append(tips, newTip("movement", 3,
				"Your movement was inefficient. Use counter-strafing and proper positioning.", now, ctx))
		case model.EventEnemyDetected:
			tips = append(tips, newTip("game_sense", 3,
				"Enemy detected! Consider your positioning and communicate with your team.", now, ctx))
		}
	}
	return tips
}

// insightTips wraps the top insights as tips, inferring category and
// priority by keyword match on the insight text.
func insightTips(insights []string, now time.Time) []model.CoachingTip {
	const topInsights = 2
	if len(insights) > topInsights {
		insights = insights[:topInsights]
	}

	var tips []model.CoachingTip
	for i, insight := range insights {
		category, priority := "general", 3
		lower := strings.ToLower(insight)
		switch {
		case strings.Contains(lower, "crosshair"):
			category, priority = "crosshair_placement", 4
		case strings.Contains(lower, "movement"):
			category, priority = "movement", 4
		case strings.Contains(lower, "positioning"):
			category, priority = "positioning", 4
		case strings.Contains(lower, "accuracy"):
			category, priority = "mechanics", 5
		}
		tips = append(tips, newTip(category, priority, insight, now, map[string]any{"insight_index": i}))
	}
	return tips
}

// dedupeByCategory sorts by priority descending and keeps only the first
// tip per category.
func dedupeByCategory(tips []model.CoachingTip) []model.CoachingTip {
	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].Priority > tips[j].Priority
	})

	seen := make(map[string]struct{}, len(tips))
	out := tips[:0]
	for _, tip := range tips {
		if _, ok := seen[tip.Category]; ok {
			continue
		}
		seen[tip.Category] = struct{}{}
		out = append(out, tip)
	}
	return out
}

func newTip(category string, priority int, message string, now time.Time, ctx map[string]any) model.CoachingTip {
	return model.CoachingTip{
		ID:         uuid.NewString(),
		Category:   category,
		Priority:   priority,
		Message:    message,
		Timestamp:  now,
		Context:    ctx,
		Actionable: true,
	}
}

func defaultProfile() model.PlayerProfile {
	return model.PlayerProfile{
		SkillLevel:    model.TierBeginner,
		PrimaryRole:   "duelist",
		Strengths:     []string{"enthusiasm", "willingness to learn"},
		Weaknesses:    []string{"aim", "positioning", "game sense"},
		Goals:         []string{"improve overall gameplay", "reach higher rank"},
		PlaytimeHours: 0,
	}
}
