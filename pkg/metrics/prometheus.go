// Package metrics provides Prometheus metrics for the waterradar engine.
package metrics

import (
	"fmt"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Import metrics
	recordsImported *prometheus.CounterVec
	recordsRejected *prometheus.CounterVec
	importFailures  *prometheus.CounterVec

	// Scoring metrics
	scoresComputed *prometheus.CounterVec
	scoreValue     *prometheus.HistogramVec
	reportDuration prometheus.Histogram

	// Dataset metrics
	datasetSize      prometheus.Gauge
	datasetSnapshots prometheus.Counter

	// Selection metrics
	selectionSize       prometheus.Gauge
	selectionRejections prometheus.Counter

	errorsByComponent *prometheus.CounterVec
}

var (
	globalMu       sync.RWMutex         //nolint:gochecknoglobals // guards the singleton below
	globalManager  *Manager             //nolint:gochecknoglobals // intentional global for singleton metrics manager
	customRegistry *prometheus.Registry //nolint:gochecknoglobals // intentional global for metrics registry
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Reset()
}

// Reset replaces the global manager with a fresh one on a fresh registry.
// Options are applied on top of the custom registry.
func Reset(opts ...Option) {
	reg := prometheus.NewRegistry()
	m := NewManager(append([]Option{WithPrometheusRegistry(reg)}, opts...)...)

	globalMu.Lock()
	defer globalMu.Unlock()
	customRegistry = reg
	globalManager = m
}

func global() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "waterradar",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 50, 100},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.recordsImported = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_imported_total",
		Help:        "Total number of water records accepted from imports",
		ConstLabels: labels,
	}, []string{"format"})

	m.recordsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_rejected_total",
		Help:        "Total number of import rows dropped for missing identity or bad syntax",
		ConstLabels: labels,
	}, []string{"format"})

	m.importFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "import_failures_total",
		Help:        "Total number of documents that could not be parsed at all",
		ConstLabels: labels,
	}, []string{"format"})

	m.scoresComputed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scores_computed_total",
		Help:        "Total number of water scores computed by profile",
		ConstLabels: labels,
	}, []string{"profile"})

	m.scoreValue = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "score_value",
		Help:        "Distribution of computed scores (0..100, higher is better)",
		Buckets:     prometheus.LinearBuckets(0, 10, 11),
		ConstLabels: labels,
	}, []string{"profile"})

	m.reportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_duration_milliseconds",
		Help:        "Time to score, classify and rank a report in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.datasetSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_size",
		Help:        "Number of water records in the current dataset snapshot",
		ConstLabels: labels,
	})

	m.datasetSnapshots = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_snapshots_total",
		Help:        "Total number of dataset snapshots published",
		ConstLabels: labels,
	})

	m.selectionSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_size",
		Help:        "Number of waters currently selected for comparison",
		ConstLabels: labels,
	})

	m.selectionRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "selection_rejections_total",
		Help:        "Total number of selections refused because the selection was full",
		ConstLabels: labels,
	})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Total number of errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})
}

// RecordImport adds accepted and rejected record counts for one document.
func RecordImport(format string, imported, rejected int) {
	m := global()
	if !m.enabled {
		return
	}
	m.recordsImported.WithLabelValues(format).Add(float64(imported))
	m.recordsRejected.WithLabelValues(format).Add(float64(rejected))
}

// RecordImportFailure increments the failed documents counter.
func RecordImportFailure(format string) {
	m := global()
	if !m.enabled {
		return
	}
	m.importFailures.WithLabelValues(format).Inc()
}

// RecordScore counts one computed score and observes its value.
func RecordScore(profile string, score float64) {
	m := global()
	if !m.enabled {
		return
	}
	m.scoresComputed.WithLabelValues(profile).Inc()
	m.scoreValue.WithLabelValues(profile).Observe(score)
}

// RecordReportDuration records report build time in milliseconds.
func RecordReportDuration(latencyMs float64) {
	m := global()
	if !m.enabled {
		return
	}
	m.reportDuration.Observe(latencyMs)
}

// UpdateDatasetSize sets the current dataset size.
func UpdateDatasetSize(count int) {
	m := global()
	if !m.enabled {
		return
	}
	m.datasetSize.Set(float64(count))
}

// IncrementDatasetSnapshotCount increments the published snapshots counter.
func IncrementDatasetSnapshotCount() {
	m := global()
	if !m.enabled {
		return
	}
	m.datasetSnapshots.Inc()
}

// UpdateSelectionSize sets the current selection size.
func UpdateSelectionSize(count int) {
	m := global()
	if !m.enabled {
		return
	}
	m.selectionSize.Set(float64(count))
}

// RecordSelectionRejected increments the refused selections counter.
func RecordSelectionRejected() {
	m := global()
	if !m.enabled {
		return
	}
	m.selectionRejections.Inc()
}

// RecordErrorByComponent increments the error counter for a component.
func RecordErrorByComponent(component, errorType string) {
	m := global()
	if !m.enabled {
		return
	}
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return customRegistry
}

// WriteText writes every gathered metric family to w in the Prometheus text
// exposition format.
func WriteText(w io.Writer) error {
	families, err := GetRegistry().Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("%w: %w", ErrGatherFailed, err)
		}
	}
	return nil
}
