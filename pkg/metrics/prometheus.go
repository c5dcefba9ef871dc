// Package metrics provides Prometheus metrics for the HACOR calculator.
package metrics

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Subsystem is the middle segment of every metric name.
const Subsystem = "calculator"

// Manager owns the calculator's Prometheus collectors.
type Manager struct {
	namespace    string
	enabled      bool
	customLabels map[string]string
	registry     prometheus.Registerer

	// Core calculation metrics
	assessments        *prometheus.CounterVec
	assessmentFailures *prometheus.CounterVec
	scores             prometheus.Histogram
	subScores          prometheus.Histogram
	assessmentLatency  prometheus.Histogram

	// Batch metrics
	batchCases    *prometheus.CounterVec
	batchDuration prometheus.Histogram
	batchWorkers  prometheus.Gauge

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
}

var (
	globalMu       sync.RWMutex         //nolint:gochecknoglobals // guards the two globals below
	globalManager  *Manager             //nolint:gochecknoglobals // intentional global for singleton metrics manager
	customRegistry *prometheus.Registry //nolint:gochecknoglobals // custom registry to avoid default Go metrics
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry. Values recorded before the call are dropped.
func Configure(opts ...Option) {
	reg := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(reg))...)

	globalMu.Lock()
	globalManager, customRegistry = m, reg
	globalMu.Unlock()
}

func global() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:    DefaultNamespace,
		enabled:      true,
		customLabels: make(map[string]string),
		registry:     prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

var nameRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Variable label names; a constant label may not reuse them.
var reservedLabels = map[string]bool{ //nolint:gochecknoglobals // lookup table
	"tier": true, "reason": true, "outcome": true, "component": true, "error_type": true,
}

// ValidNamespace reports whether ns can prefix a metric name.
func ValidNamespace(ns string) bool { return nameRE.MatchString(ns) }

// ValidLabelName reports whether name can be used as a constant label.
func ValidLabelName(name string) bool {
	return nameRE.MatchString(name) && !reservedLabels[name] && (len(name) < 2 || name[:2] != "__")
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.assessments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "assessments_total",
		Help:        "Total number of completed assessments by risk tier",
		ConstLabels: labels,
	}, []string{"tier"})

	m.assessmentFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "assessment_failures_total",
		Help:        "Total number of rejected assessments by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	// Bucket edges include the tier boundaries 7, 10.5 and 14.
	m.scores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "score",
		Help:        "Distribution of Updated HACOR scores",
		Buckets:     []float64{0, 3.5, 7, 10.5, 14, 17.5, 21, 28, 35, 43},
		ConstLabels: labels,
	})

	m.subScores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "sofa_subscore",
		Help:        "Distribution of SOFA sub-scores computed from components",
		Buckets:     prometheus.LinearBuckets(0, 2, 13),
		ConstLabels: labels,
	})

	m.assessmentLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "assessment_latency_milliseconds",
		Help:        "Time spent computing one assessment in milliseconds",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: labels,
	})

	m.batchCases = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "batch_cases_total",
		Help:        "Total number of batch cases by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "batch_duration_milliseconds",
		Help:        "Wall time of a batch run in milliseconds",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: labels,
	})

	m.batchWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "batch_workers",
		Help:        "Concurrency limit of the most recent batch run",
		ConstLabels: labels,
	})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   Subsystem,
		Name:        "errors_by_component_total",
		Help:        "Total number of errors by component",
		ConstLabels: labels,
	}, []string{"component", "error_type"})
}

// RecordAssessment counts a completed assessment and observes its score.
func (m *Manager) RecordAssessment(tier string, score float64) {
	if !m.enabled {
		return
	}
	m.assessments.WithLabelValues(tier).Inc()
	m.scores.Observe(score)
}

// RecordAssessmentFailure counts a rejected assessment.
func (m *Manager) RecordAssessmentFailure(reason string) {
	if !m.enabled {
		return
	}
	m.assessmentFailures.WithLabelValues(reason).Inc()
}

// RecordSubScore observes a SOFA sub-score computed from components.
func (m *Manager) RecordSubScore(score int) {
	if !m.enabled {
		return
	}
	m.subScores.Observe(float64(score))
}

// RecordAssessmentLatency observes the time spent on one assessment.
func (m *Manager) RecordAssessmentLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.assessmentLatency.Observe(latencyMs)
}

// RecordBatchCase counts one batch case by outcome ("scored" or "failed").
func (m *Manager) RecordBatchCase(outcome string) {
	if !m.enabled {
		return
	}
	m.batchCases.WithLabelValues(outcome).Inc()
}

// RecordBatchDuration observes the wall time of a batch run.
func (m *Manager) RecordBatchDuration(durationMs float64) {
	if !m.enabled {
		return
	}
	m.batchDuration.Observe(durationMs)
}

// UpdateBatchWorkers sets the concurrency limit gauge.
func (m *Manager) UpdateBatchWorkers(count int) {
	if !m.enabled {
		return
	}
	m.batchWorkers.Set(float64(count))
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// Package-level recorders on the global manager.

// RecordAssessment counts a completed assessment and observes its score.
func RecordAssessment(tier string, score float64) { global().RecordAssessment(tier, score) }

// RecordAssessmentFailure counts a rejected assessment.
func RecordAssessmentFailure(reason string) { global().RecordAssessmentFailure(reason) }

// RecordSubScore observes a SOFA sub-score computed from components.
func RecordSubScore(score int) { global().RecordSubScore(score) }

// RecordAssessmentLatency observes the time spent on one assessment.
func RecordAssessmentLatency(latencyMs float64) { global().RecordAssessmentLatency(latencyMs) }

// RecordBatchCase counts one batch case by outcome.
func RecordBatchCase(outcome string) { global().RecordBatchCase(outcome) }

// RecordBatchDuration observes the wall time of a batch run.
func RecordBatchDuration(durationMs float64) { global().RecordBatchDuration(durationMs) }

// UpdateBatchWorkers sets the concurrency limit gauge.
func UpdateBatchWorkers(count int) { global().UpdateBatchWorkers(count) }

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	global().RecordErrorByComponent(component, errorType)
}

// GetRegistry returns the registry behind the global manager.
func GetRegistry() *prometheus.Registry {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return customRegistry
}

// WriteTextfile writes every metric of g to path in the text exposition
// format, for pickup by a node-exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = GetRegistry()
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
