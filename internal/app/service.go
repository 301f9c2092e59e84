// Package service wires the capture producer to the analysis pipeline:
// frames flow from the source through the extractor, session analyzer,
// behavior detector, and coach, with tips delivered to a sink. One frame
// is in flight at a time; freshness wins over completeness.
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/aimsight/internal/analysis/behavior"
	"github.com/okian/aimsight/internal/analysis/session"
	"github.com/okian/aimsight/internal/analysis/skill"
	"github.com/okian/aimsight/internal/capture"
	"github.com/okian/aimsight/internal/coaching"
	"github.com/okian/aimsight/internal/config"
	"github.com/okian/aimsight/internal/domain/model"
	"github.com/okian/aimsight/internal/vision"
	"github.com/okian/aimsight/pkg/logger"
	"github.com/okian/aimsight/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// TipSink receives the coach's output. Implementations render or discard
// tips; they never mutate them.
type TipSink interface {
	Deliver(ctx context.Context, tips []model.CoachingTip)
}

// TipSinkFunc adapts a function to the TipSink interface.
type TipSinkFunc func(ctx context.Context, tips []model.CoachingTip)

// Deliver calls f.
func (f TipSinkFunc) Deliver(ctx context.Context, tips []model.CoachingTip) {
	f(ctx, tips)
}

// SkillReport is the on-demand skill surface: per-skill assessments, the
// derived tier, and an improvement plan.
type SkillReport struct {
	Assessments map[string]model.SkillAssessment
	Tier        string
	Plan        model.ImprovementPlan
}

// Service owns the coaching pipeline for one session.
type Service struct {
	mu sync.Mutex

	// Collaborators
	source capture.Source
	sink   TipSink

	// Pipeline components, built on Start
	slot      *capture.Slot
	producer  *capture.Producer
	extractor *vision.Extractor
	analyzer  *session.Analyzer
	detector  *behavior.Detector
	assessor  *skill.Assessor
	coach     *coaching.Coach

	// pipeMu guards the stateful pipeline components, which are driven
	// by the consumer goroutine but also read by the report surfaces.
	pipeMu sync.Mutex

	cfg config.Config

	started bool
	cancel  context.CancelFunc
	group   *errgroup.Group

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the capture collaborator. Defaults to a synthetic
// source when unset.
func WithSource(src capture.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithTipSink sets where emitted tips are delivered.
func WithTipSink(sink TipSink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithConfig sets the service configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: *config.New(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the pipeline components from configuration and spawns the
// producer and consumer goroutines. Idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.source == nil {
		s.source = capture.NewSyntheticSource(
			capture.WithSize(s.cfg.FrameWidth, s.cfg.FrameHeight),
			capture.WithReticle(),
		)
		s.logger.Info(ctx, "no capture source configured, using synthetic frames")
	}

	s.logger.Info(ctx, "starting coaching pipeline",
		logger.Int("targetFPS", s.cfg.TargetFPS),
		logger.Int("frameWidth", s.cfg.FrameWidth),
		logger.Int("frameHeight", s.cfg.FrameHeight),
	)

	s.slot = capture.NewSlot()
	s.producer = capture.NewProducer(s.source, s.slot,
		capture.WithTargetFPS(s.cfg.TargetFPS),
	)
	s.extractor = vision.NewExtractor(
		vision.WithFrameHistorySize(s.cfg.FrameHistorySize),
	)
	s.analyzer = session.NewAnalyzer(
		session.WithObservationHistorySize(s.cfg.ObservationHistorySize),
		session.WithEventHistorySize(s.cfg.EventHistorySize),
		session.WithSnapshotHistorySize(s.cfg.SnapshotHistorySize),
		session.WithEnemyEventCooldown(secondsToDuration(s.cfg.EnemyEventCooldownSec)),
		session.WithPlacementThresholds(s.cfg.PlacementHighThreshold, s.cfg.PlacementLowThreshold),
		session.WithFrameSize(s.cfg.FrameWidth, s.cfg.FrameHeight),
	)
	s.detector = behavior.NewDetector(
		behavior.WithHistorySize(s.cfg.BehaviorHistorySize),
	)
	s.assessor = skill.NewAssessor()
	s.coach = coaching.NewCoach(
		coaching.WithTipCooldown(secondsToDuration(s.cfg.TipCooldownSec)),
		coaching.WithTipHistorySize(s.cfg.TipHistorySize),
		coaching.WithSessionTipsSize(s.cfg.SessionTipSize),
	)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.group, runCtx = errgroup.WithContext(runCtx)

	s.group.Go(func() error {
		s.producer.Run(runCtx)
		return nil
	})
	s.group.Go(func() error {
		s.consume(runCtx)
		return nil
	})
	s.group.Go(func() error {
		s.drainCaptureErrors(runCtx)
		return nil
	})

	s.started = true
	s.logger.Info(ctx, "coaching pipeline started")

	return nil
}

// Stop shuts the pipeline down cooperatively: cancel, then wait with a
// timeout, logging rather than failing if goroutines do not exit
// promptly.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping coaching pipeline...")

	s.cancel()
	_ = s.producer.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		_ = s.group.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopTimeout):
		s.logger.Warn(ctx, "pipeline did not stop promptly")
	}

	s.started = false
	s.logger.Info(ctx, "coaching pipeline stopped",
		logger.Int64("framesDropped", int64(s.slot.Drops())),
	)
}

// consume drains the frame slot and runs the full pipeline on each
// frame, one frame in flight at a time.
func (s *Service) consume(ctx context.Context) {
	for {
		frame, err := s.slot.Next(ctx)
		if err != nil {
			return
		}
		s.processFrame(ctx, frame)
	}
}

func (s *Service) processFrame(ctx context.Context, frame *capture.Frame) {
	started := time.Now()

	s.pipeMu.Lock()
	obs := s.extractor.Extract(frame)
	result := s.analyzer.Ingest(obs)
	s.detector.Observe(obs)
	tips := s.coach.Process(result)
	s.pipeMu.Unlock()

	if len(tips) > 0 && s.sink != nil {
		s.sink.Deliver(ctx, tips)
	}

	metrics.RecordFrameLatency(float64(time.Since(started).Milliseconds()))
}

// drainCaptureErrors surfaces producer faults to the operator without
// letting them corrupt pipeline state.
func (s *Service) drainCaptureErrors(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-s.producer.Errors():
			s.logger.Warn(ctx, "capture fault", logger.Error(err))
		}
	}
}

// SessionSummary reports the session counters and latest snapshot.
func (s *Service) SessionSummary() session.Summary {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	return s.analyzer.Summary()
}

// BehaviorReport runs a behavior analysis pass over the detector's
// current history.
func (s *Service) BehaviorReport() behavior.Report {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	return s.detector.Analyze()
}

// SkillReport assesses the latest performance snapshot on demand.
func (s *Service) SkillReport() SkillReport {
	s.pipeMu.Lock()
	summary := s.analyzer.Summary()
	s.pipeMu.Unlock()

	in := skill.InputsFromSnapshot(summary.Latest)
	if summary.Latest.IsZero() {
		// No snapshot yet: assess from neutral signals.
		in = skill.Inputs{
			Accuracy:           0.5,
			CrosshairPlacement: 0.5,
			MovementEfficiency: 0.5,
			GameSense:          0.5,
			ReactionTime:       0.3,
		}
	}

	assessments := s.assessor.Assess(in)
	return SkillReport{
		Assessments: assessments,
		Tier:        s.assessor.Tier(assessments),
		Plan:        s.assessor.ImprovementPlan(assessments),
	}
}

// TrainingPlan synthesizes a practice schedule for the given focus areas.
func (s *Service) TrainingPlan(focusAreas []string) model.TrainingPlan {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	return s.coach.GenerateTrainingPlan(focusAreas)
}

// UpdateProfile merges a partial profile update into the coach's profile.
func (s *Service) UpdateProfile(update model.ProfileUpdate) {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	s.coach.UpdateProfile(update)
}

// Profile returns the coach's current player profile.
func (s *Service) Profile() model.PlayerProfile {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	return s.coach.Profile()
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
