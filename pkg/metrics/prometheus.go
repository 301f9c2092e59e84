// Package metrics provides Prometheus metrics for the aimsight coaching pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the coaching pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Capture metrics - frame supply health
	framesCaptured prometheus.Counter
	framesDropped  prometheus.Counter
	captureErrors  prometheus.Counter

	// Pipeline metrics - per-frame processing
	observationsExtracted prometheus.Counter
	frameLatency          prometheus.Histogram
	eventsDetected        *prometheus.CounterVec

	// Coaching metrics - advice output quality
	tipsEmitted    *prometheus.CounterVec
	tipsSuppressed prometheus.Counter

	// Performance gauges - latest snapshot scores
	performanceScore *prometheus.GaugeVec

	// History gauges - rolling buffer occupancy
	historyLength *prometheus.GaugeVec

	// System metrics - process health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "aimsight",
		subsystem:        "coach",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.framesCaptured = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_captured_total",
		Help:      "Total number of frames delivered by the capture producer",
	})

	m.framesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_dropped_total",
		Help:      "Total number of frames overwritten before the pipeline consumed them",
	})

	m.captureErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "capture_errors_total",
		Help:      "Total number of frame grab failures reported by the capture source",
	})

	m.observationsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observations_extracted_total",
		Help:      "Total number of observations produced by the feature extractor",
	})

	m.frameLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frame_latency_milliseconds",
		Help:      "End-to-end per-frame pipeline latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.eventsDetected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_detected_total",
			Help:      "Total number of gameplay events detected, by event kind",
		},
		[]string{"kind"},
	)

	m.tipsEmitted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tips_emitted_total",
			Help:      "Total number of coaching tips emitted, by category",
		},
		[]string{"category"},
	)

	m.tipsSuppressed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tips_suppressed_total",
		Help:      "Total number of tip candidates dropped by cooldown or category dedup",
	})

	m.performanceScore = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "performance_score",
			Help:      "Latest performance snapshot score, by metric name",
		},
		[]string{"metric"},
	)

	m.historyLength = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "history_length",
			Help:      "Current length of each rolling history buffer",
		},
		[]string{"buffer"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_time_milliseconds",
		Help:      "Average garbage collection pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordFrameCaptured increments the captured frames counter.
func RecordFrameCaptured() {
	globalManager.framesCaptured.Inc()
}

// RecordFrameDropped increments the dropped frames counter.
func RecordFrameDropped() {
	globalManager.framesDropped.Inc()
}

// RecordCaptureError increments the capture error counter.
func RecordCaptureError() {
	globalManager.captureErrors.Inc()
}

// RecordObservationExtracted increments the extracted observations counter.
func RecordObservationExtracted() {
	globalManager.observationsExtracted.Inc()
}

// RecordFrameLatency records end-to-end frame latency in milliseconds.
func RecordFrameLatency(latencyMs float64) {
	globalManager.frameLatency.Observe(latencyMs)
}

// RecordEventDetected increments the event counter for the given kind.
func RecordEventDetected(kind string) {
	globalManager.eventsDetected.WithLabelValues(kind).Inc()
}

// RecordTipEmitted increments the tips emitted counter for the given category.
func RecordTipEmitted(category string) {
	globalManager.tipsEmitted.WithLabelValues(category).Inc()
}

// RecordTipSuppressed increments the suppressed tips counter.
func RecordTipSuppressed() {
	globalManager.tipsSuppressed.Inc()
}

// UpdatePerformanceScore sets the latest value for a snapshot metric.
func UpdatePerformanceScore(metric string, value float64) {
	globalManager.performanceScore.WithLabelValues(metric).Set(value)
}

// UpdateHistoryLength sets the current length of a rolling buffer.
func UpdateHistoryLength(buffer string, length int) {
	globalManager.historyLength.WithLabelValues(buffer).Set(float64(length))
}

// UpdateSystemMemoryUsage sets the current allocated heap memory.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
