package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters on a private registry
type Metrics struct {
	namespace          string
	registry           *prometheus.Registry
	valueWrites        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	searches           *prometheus.CounterVec
	searchMatches      *prometheus.HistogramVec
}

// New creates and registers the service metrics under namespace
func New(namespace string) *Metrics {
	m := &Metrics{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
		valueWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "custom_attribute_value_writes_total",
			Help:      "Custom attribute value writes by object type and action.",
		}, []string{"object_type", "action"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "custom_attribute_validation_failures_total",
			Help:      "Rejected custom attribute values by reason.",
		}, []string{"reason"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "custom_attribute_searches_total",
			Help:      "Searches by custom attribute by object type and operator.",
		}, []string{"object_type", "op"}),
		searchMatches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "custom_attribute_search_matches",
			Help:      "Number of objects matched per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
		}, []string{"object_type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.valueWrites,
		m.validationFailures,
		m.searches,
		m.searchMatches,
	)
	return m
}

// Namespace is the metric name prefix
func (m *Metrics) Namespace() string { return m.namespace }

// Registerer lets other collectors (HTTP middleware) share the registry
func (m *Metrics) Registerer() prometheus.Registerer { return m.registry }

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ValueWritten(objectType, action string) {
	m.valueWrites.WithLabelValues(objectType, action).Inc()
}

func (m *Metrics) ValidationFailed(reason string) {
	m.validationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) SearchExecuted(objectType, op string, matches int) {
	m.searches.WithLabelValues(objectType, op).Inc()
	m.searchMatches.WithLabelValues(objectType).Observe(float64(matches))
}
