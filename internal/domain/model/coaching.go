package model

import "time"

// CoachingTip is a prioritized, categorized, rate-limited advice message.
// At most one tip per category survives deduplication in a single pass.
type CoachingTip struct {
	ID         string
	Category   string
	Priority   int // 1-5, 5 being highest
	Message    string
	Timestamp  time.Time
	Context    map[string]any
	Actionable bool
}

// PlayerProfile describes the player the coach is advising. Mutable;
// owned by the coach for the session lifetime.
type PlayerProfile struct {
	SkillLevel    string // beginner, intermediate, advanced
	PrimaryRole   string // duelist, sentinel, initiator, controller
	Strengths     []string
	Weaknesses    []string
	Goals         []string
	PlaytimeHours int
}

// ProfileUpdate is a partial-field profile merge. Nil fields are absent
// and leave the corresponding profile field untouched.
type ProfileUpdate struct {
	SkillLevel    *string
	PrimaryRole   *string
	Strengths     []string
	Weaknesses    []string
	Goals         []string
	PlaytimeHours *int
}

// TrainingPlan is a synthesized practice schedule for chosen focus areas.
type TrainingPlan struct {
	FocusAreas []string
	Exercises  map[string][]string
	Goals      []string
	Duration   string
	Frequency  string
}
