// Package metrics provides Prometheus metrics for the gradebook client.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager owns the Prometheus collectors used by the client and use cases.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Outgoing requests to the grade service
	clientRequests        *prometheus.CounterVec
	clientRequestDuration *prometheus.HistogramVec
	clientErrors          *prometheus.CounterVec

	// Use-case level
	useCaseCalls *prometheus.CounterVec
	teamSize     prometheus.Histogram
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
		namespace:        "gradebook",
		subsystem:        "client",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.clientRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "requests_total",
			Help:        "Total number of requests sent to the grade service by operation and outcome",
			ConstLabels: m.customLabels,
		},
		[]string{"operation", "outcome"},
	)

	m.clientRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "request_duration_milliseconds",
			Help:        "Round-trip latency of grade service requests in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"operation"},
	)

	m.clientErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Grade service request failures by operation and error type",
			ConstLabels: m.customLabels,
		},
		[]string{"operation", "error_type"},
	)

	m.useCaseCalls = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   "usecase",
			Name:        "invocations_total",
			Help:        "Use case invocations by name and outcome",
			ConstLabels: m.customLabels,
		},
		[]string{"use_case", "outcome"},
	)

	m.teamSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "usecase",
		Name:        "team_size",
		Help:        "Number of team members reduced over by aggregate use cases",
		Buckets:     []float64{0, 1, 2, 3, 4, 5, 8, 13},
		ConstLabels: m.customLabels,
	})
}

// RecordClientRequest records one completed request to the grade service.
func (m *Manager) RecordClientRequest(operation, outcome string, durationMs float64) {
	m.clientRequests.WithLabelValues(operation, outcome).Inc()
	m.clientRequestDuration.WithLabelValues(operation).Observe(durationMs)
}

// RecordClientError records a failed request by error type.
func (m *Manager) RecordClientError(operation, errorType string) {
	m.clientErrors.WithLabelValues(operation, errorType).Inc()
}

// RecordUseCase records one use case invocation.
func (m *Manager) RecordUseCase(name, outcome string) {
	m.useCaseCalls.WithLabelValues(name, outcome).Inc()
}

// ObserveTeamSize records the member count of a team that was aggregated over.
func (m *Manager) ObserveTeamSize(members int) {
	m.teamSize.Observe(float64(members))
}

// RecordClientRequest records one completed request on the global manager.
func RecordClientRequest(operation, outcome string, durationMs float64) {
	globalManager.RecordClientRequest(operation, outcome, durationMs)
}

// RecordClientError records a failed request on the global manager.
func RecordClientError(operation, errorType string) {
	globalManager.RecordClientError(operation, errorType)
}

// RecordUseCase records a use case invocation on the global manager.
func RecordUseCase(name, outcome string) {
	globalManager.RecordUseCase(name, outcome)
}

// ObserveTeamSize records a team size on the global manager.
func ObserveTeamSize(members int) {
	globalManager.ObserveTeamSize(members)
}

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteText writes every metric family gathered from g in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}
	return nil
}
