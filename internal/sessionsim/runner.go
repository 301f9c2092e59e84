package sessionsim

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okian/aimsight/internal/analysis/behavior"
	"github.com/okian/aimsight/internal/analysis/session"
	"github.com/okian/aimsight/internal/analysis/skill"
	"github.com/okian/aimsight/internal/coaching"
	"github.com/okian/aimsight/internal/domain/model"
	"github.com/okian/aimsight/internal/vision"
	"github.com/okian/aimsight/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0600
)

// Run executes a complete simulated coaching session: scripted frames
// through the full pipeline, then a behavior, skill, and training
// report. The pipeline runs synchronously, one frame at a time.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting simulated session",
		logger.Int("frames", cfg.Frames),
		logger.Int("width", cfg.Width),
		logger.Int("height", cfg.Height),
		logger.Int64("seed", cfg.Seed),
	)

	extractor := vision.NewExtractor()
	analyzer := session.NewAnalyzer(session.WithFrameSize(cfg.Width, cfg.Height))
	detector := behavior.NewDetector()
	assessor := skill.NewAssessor()
	coach := coaching.NewCoach()

	phases := buildPhases(cfg)
	budget := frameBudget(cfg.Frames, phases)

	var allTips []model.CoachingTip
	for i, p := range phases {
		log.Info(ctx, "entering phase", logger.String("phase", p.name), logger.Int("frames", budget[i]))

		for f := 0; f < budget[i]; f++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			frame, err := p.source.Grab(ctx)
			if err != nil {
				return fmt.Errorf("grab frame: %w", err)
			}

			obs := extractor.Extract(frame)
			result := analyzer.Ingest(obs)
			detector.Observe(obs)
			tips := coach.Process(result)

			stats.FramesProcessed++
			stats.EventsDetected += len(result.Events)
			stats.TipsEmitted += len(tips)
			allTips = append(allTips, tips...)

			if cfg.Verbose {
				for _, tip := range tips {
					log.Info(ctx, "tip",
						logger.String("phase", p.name),
						logger.String("category", tip.Category),
						logger.Int("priority", tip.Priority),
						logger.String("message", tip.Message),
					)
				}
			}
		}
	}

	report := detector.Analyze()
	summary := analyzer.Summary()
	assessments := assessor.Assess(skill.InputsFromSnapshot(summary.Latest))
	tier := assessor.Tier(assessments)
	plan := coach.GenerateTrainingPlan(nil)

	if err := saveTips(ctx, cfg, allTips); err != nil {
		log.Warn(ctx, "failed to save tip log", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayReport(ctx, stats, summary, report, tier, plan)

	return nil
}

// saveTips writes the emitted tips to a JSON file for later inspection.
func saveTips(ctx context.Context, cfg *Config, tips []model.CoachingTip) error {
	path := cfg.OutputFile
	if path == "" {
		path = "session_tips_" + time.Now().Format("20060102_150405") + ".json"
	}

	data, err := json.MarshalIndent(tips, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tips: %w", err)
	}
	if err := os.WriteFile(path, data, outputFilePermission); err != nil {
		return fmt.Errorf("write tip log: %w", err)
	}

	logger.Get().Info(ctx, "tip log saved", logger.String("path", path), logger.Int("tips", len(tips)))
	return nil
}

func displayReport(
	ctx context.Context,
	stats *Stats,
	summary session.Summary,
	report behavior.Report,
	tier string,
	plan model.TrainingPlan,
) {
	log := logger.Get()

	log.Info(ctx, "session complete",
		logger.Int("framesProcessed", stats.FramesProcessed),
		logger.Int("eventsDetected", stats.EventsDetected),
		logger.Int("tipsEmitted", stats.TipsEmitted),
		logger.Duration("duration", stats.Duration),
	)
	log.Info(ctx, "final performance",
		logger.Float64("accuracy", summary.Latest.Accuracy),
		logger.Float64("crosshairPlacement", summary.Latest.CrosshairPlacement),
		logger.Float64("movementEfficiency", summary.Latest.MovementEfficiency),
		logger.Float64("gameSense", summary.Latest.GameSense),
		logger.Float64("overall", summary.Latest.Overall),
	)
	for _, p := range report.Patterns {
		log.Info(ctx, "behavior pattern",
			logger.String("kind", string(p.Kind)),
			logger.String("impact", string(p.Impact)),
			logger.Float64("confidence", p.Confidence),
			logger.String("description", p.Description),
		)
	}
	log.Info(ctx, "tendencies",
		logger.String("aim", report.Tendencies.AimStyle),
		logger.String("movement", report.Tendencies.MovementStyle),
		logger.String("engagement", report.Tendencies.EngagementStyle),
		logger.String("positioning", report.Tendencies.PositioningStyle),
	)
	log.Info(ctx, "skill tier", logger.String("tier", tier))
	log.Info(ctx, "training plan",
		logger.Any("focusAreas", plan.FocusAreas),
		logger.String("duration", plan.Duration),
		logger.String("frequency", plan.Frequency),
	)
}
