// Package skill turns an aggregated performance snapshot into per-skill
// assessments, an overall tier, and an improvement plan. The assessor is
// stateless; it is called on demand rather than streamed.
package skill

import (
	"fmt"
	"sort"

	"github.com/okian/aimsight/internal/domain/model"
)

// Tier boundaries on the weighted overall score.
const (
	advancedThreshold     = 0.8
	intermediateThreshold = 0.6
)

const maxPrioritySkills = 3

// Inputs are the five scalar signals a skill assessment is derived from.
// ReactionTime is in seconds; the rest are bounded [0,1].
type Inputs struct {
	Accuracy           float64
	CrosshairPlacement float64
	MovementEfficiency float64
	GameSense          float64
	ReactionTime       float64
}

// InputsFromSnapshot adapts a performance snapshot into assessor inputs.
func InputsFromSnapshot(s model.PerformanceSnapshot) Inputs {
	return Inputs{
		Accuracy:           s.Accuracy,
		CrosshairPlacement: s.CrosshairPlacement,
		MovementEfficiency: s.MovementEfficiency,
		GameSense:          s.GameSense,
		ReactionTime:       s.ReactionTime,
	}
}

// skillSpec fixes how one skill is derived: its transform, measurement
// confidence, improvement threshold, and banded recommendations.
type skillSpec struct {
	weight         float64
	confidence     float64
	needsWorkBelow float64
	transform      func(Inputs) float64
	lowRecs        []string // score < 0.4
	mediumRecs     []string // score < 0.7
}

var skillSpecs = map[string]skillSpec{
	model.SkillAim: {
		weight:         0.25,
		confidence:     0.8,
		needsWorkBelow: 0.6,
		transform:      func(in Inputs) float64 { return min(1, in.Accuracy*1.5) },
		lowRecs: []string{
			"Practice in the Range with different weapons",
			"Focus on recoil control",
			"Use aim training maps",
		},
		mediumRecs: []string{
			"Work on flicking accuracy",
			"Practice tracking moving targets",
			"Improve spray control",
		},
	},
	model.SkillCrosshairPlacement: {
		weight:         0.20,
		confidence:     0.9,
		needsWorkBelow: 0.6,
		transform:      func(in Inputs) float64 { return in.CrosshairPlacement },
		lowRecs: []string{
			"Keep crosshair at head level",
			"Pre-aim common angles",
			"Practice crosshair placement in the Range",
		},
		mediumRecs: []string{
			"Improve crosshair stability",
			"Work on pre-aiming multiple angles",
			"Practice crosshair placement while moving",
		},
	},
	model.SkillMovement: {
		weight:         0.15,
		confidence:     0.7,
		needsWorkBelow: 0.5,
		transform:      func(in Inputs) float64 { return in.MovementEfficiency },
		lowRecs: []string{
			"Learn counter-strafing",
			"Practice efficient movement patterns",
			"Don't move while shooting",
		},
		mediumRecs: []string{
			"Improve strafe shooting",
			"Work on movement timing",
			"Practice movement with abilities",
		},
	},
	model.SkillPositioning: {
		weight:         0.15,
		confidence:     0.6,
		needsWorkBelow: 0.5,
		transform:      func(in Inputs) float64 { return in.GameSense * 0.8 },
		lowRecs: []string{
			"Learn common positions on each map",
			"Always have cover nearby",
			"Don't expose yourself to multiple angles",
		},
		mediumRecs: []string{
			"Work on off-angle positioning",
			"Improve rotation timing",
			"Learn team positioning",
		},
	},
	model.SkillGameSense: {
		weight:         0.15,
		confidence:     0.7,
		needsWorkBelow: 0.5,
		transform:      func(in Inputs) float64 { return in.GameSense },
		lowRecs: []string{
			"Watch professional matches",
			"Learn common timings and rotations",
			"Improve communication with team",
		},
		mediumRecs: []string{
			"Study opponent patterns",
			"Improve decision making",
			"Learn economy management",
		},
	},
	model.SkillReactionTime: {
		weight:         0.10,
		confidence:     0.5,
		needsWorkBelow: 0.6,
		transform: func(in Inputs) float64 {
			return max(0, 1-(in.ReactionTime-0.2)/0.3)
		},
		lowRecs: []string{
			"Practice reaction time exercises",
			"Improve focus and concentration",
			"Work on anticipation",
		},
		mediumRecs: []string{
			"Practice flicking to targets",
			"Work on quick decision making",
			"Improve visual processing",
		},
	},
}

// Assessor derives skill assessments from performance inputs.
type Assessor struct{}

// NewAssessor creates a skill assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess produces one assessment per tracked skill.
func (a *Assessor) Assess(in Inputs) map[string]model.SkillAssessment {
	out := make(map[string]model.SkillAssessment, len(skillSpecs))
	for name, spec := range skillSpecs {
		score := spec.transform(in)
		if score > 1 {
			score = 1
		}

		var recs []string
		switch {
		case score < 0.4:
			recs = spec.lowRecs
		case score < 0.7:
			recs = spec.mediumRecs
		}

		out[name] = model.SkillAssessment{
			Skill:             name,
			Score:             score,
			Confidence:        spec.confidence,
			ImprovementNeeded: score < spec.needsWorkBelow,
			Recommendations:   recs,
		}
	}
	return out
}

// Tier collapses assessments into an overall tier via the fixed per-skill
// weights. An empty map is a beginner.
func (a *Assessor) Tier(assessments map[string]model.SkillAssessment) string {
	var total, weight float64
	for name, assessment := range assessments {
		w := 0.1
		if spec, ok := skillSpecs[name]; ok {
			w = spec.weight
		}
		total += assessment.Score * w
		weight += w
	}
	if weight == 0 {
		return model.TierBeginner
	}

	overall := total / weight
	switch {
	case overall >= advancedThreshold:
		return model.TierAdvanced
	case overall >= intermediateThreshold:
		return model.TierIntermediate
	default:
		return model.TierBeginner
	}
}

// ImprovementPlan lists up to three skills most in need of work, lowest
// score first, with their recommendations and a +20% target goal each.
func (a *Assessor) ImprovementPlan(assessments map[string]model.SkillAssessment) model.ImprovementPlan {
	var needy []model.SkillAssessment
	for _, assessment := range assessments {
		if assessment.ImprovementNeeded {
			needy = append(needy, assessment)
		}
	}
	sort.Slice(needy, func(i, j int) bool {
		if needy[i].Score != needy[j].Score {
			return needy[i].Score < needy[j].Score
		}
		return needy[i].Skill < needy[j].Skill
	})
	if len(needy) > maxPrioritySkills {
		needy = needy[:maxPrioritySkills]
	}

	plan := model.ImprovementPlan{
		Exercises: make(map[string][]string, len(needy)),
	}
	for _, assessment := range needy {
		target := min(1, assessment.Score+0.2)
		plan.PrioritySkills = append(plan.PrioritySkills, assessment.Skill)
		plan.Exercises[assessment.Skill] = assessment.Recommendations
		plan.Goals = append(plan.Goals, fmt.Sprintf(
			"Improve %s from %.0f%% to %.0f%%", assessment.Skill, assessment.Score*100, target*100))
	}
	return plan
}
