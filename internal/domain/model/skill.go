package model

// Skill tier names in ascending order of ability.
const (
	TierBeginner     = "beginner"
	TierIntermediate = "intermediate"
	TierAdvanced     = "advanced"
)

// Tracked skill names.
const (
	SkillAim                = "aim"
	SkillCrosshairPlacement = "crosshair_placement"
	SkillMovement           = "movement"
	SkillPositioning        = "positioning"
	SkillGameSense          = "game_sense"
	SkillReactionTime       = "reaction_time"
)

// SkillAssessment is a per-skill score, confidence, and recommendation set.
type SkillAssessment struct {
	Skill             string
	Score             float64 // bounded [0,1]
	Confidence        float64 // fixed per skill, reflecting how directly it is measured
	ImprovementNeeded bool
	Recommendations   []string
}

// ImprovementPlan lists the skills most in need of work, with their
// exercises and graduated goals.
type ImprovementPlan struct {
	PrioritySkills []string
	Exercises      map[string][]string
	Goals          []string
}
