package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	service "github.com/okian/aimsight/internal/app"
	"github.com/okian/aimsight/internal/config"
	"github.com/okian/aimsight/internal/domain/model"
	"github.com/okian/aimsight/pkg/logger"
	"github.com/okian/aimsight/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server and updater timing constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	sessionLogInterval        = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the coaching pipeline. Without a real capture
	// collaborator the service falls back to its synthetic source.
	svc := service.New(
		service.WithLogger(loggerInstance),
		service.WithConfig(*cfg),
		service.WithTipSink(service.TipSinkFunc(logTips(loggerInstance))),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startSessionLogger(ctx, loggerInstance, svc)

	// Metrics endpoint.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting metrics server", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("metrics server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "metrics server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "stopped")
}

// logTips renders emitted tips to the log, the default display
// collaborator when no UI is attached.
func logTips(log logger.Logger) func(ctx context.Context, tips []model.CoachingTip) {
	return func(ctx context.Context, tips []model.CoachingTip) {
		for _, tip := range tips {
			log.Info(ctx, "coaching tip",
				logger.String("category", tip.Category),
				logger.Int("priority", tip.Priority),
				logger.String("message", tip.Message),
			)
		}
	}
}

// startSystemMetricsUpdater updates process-level metrics periodically.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startSessionLogger periodically logs session progress and the current
// skill tier.
func startSessionLogger(ctx context.Context, log logger.Logger, svc *service.Service) {
	ticker := time.NewTicker(sessionLogInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			summary := svc.SessionSummary()
			report := svc.SkillReport()
			log.Info(ctx, "session progress",
				logger.Int64("frames", int64(summary.FramesProcessed)),
				logger.Int64("events", int64(summary.EventsDetected)),
				logger.Float64("overall", summary.Latest.Overall),
				logger.String("tier", report.Tier),
			)
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
