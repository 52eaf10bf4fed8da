// Package observability provides Prometheus metrics for the refresh pipeline
// and the chart surfaces.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultNamespace = "shop_analytics"

// Metrics holds all Prometheus metrics for the application. It satisfies the
// dashboard's pipeline observer and the chart board's draw observer.
type Metrics struct {
	registry *prometheus.Registry

	// Fetch metrics
	FetchesTotal *prometheus.CounterVec

	// Data quality metrics
	MalformedRecords *prometheus.CounterVec
	SkippedRecords   *prometheus.CounterVec

	// Pipeline metrics
	RefreshesTotal  *prometheus.CounterVec
	RefreshDuration prometheus.Histogram

	// Chart metrics
	ChartDraws *prometheus.CounterVec
}

// NewMetrics registers every metric on a fresh registry, which also carries
// the Go runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetches_total",
			Help:      "Collection fetches by collection and outcome",
		}, []string{"collection", "outcome"}),

		MalformedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "records_malformed_total",
			Help:      "Records tolerated despite non-object items or wrong-typed fields",
		}, []string{"collection"}),
		SkippedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "records_skipped_total",
			Help:      "Records left out of a bucketed series for lack of a usable date",
		}, []string{"series"}),

		RefreshesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "refreshes_total",
			Help:      "Refresh cycles by outcome",
		}, []string{"outcome"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "refresh_duration_seconds",
			Help:      "Refresh cycle duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),

		ChartDraws: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "charts",
			Name:      "draws_total",
			Help:      "Chart draws by surface and whether they were applied or dropped as stale",
		}, []string{"surface", "result"}),
	}
}

// Handler returns an HTTP handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) FetchDone(collection string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FetchesTotal.WithLabelValues(collection, outcome).Inc()
}

func (m *Metrics) RecordsMalformed(collection string, n int) {
	if n > 0 {
		m.MalformedRecords.WithLabelValues(collection).Add(float64(n))
	}
}

func (m *Metrics) RecordsSkipped(series string, n int) {
	if n > 0 {
		m.SkippedRecords.WithLabelValues(series).Add(float64(n))
	}
}

func (m *Metrics) RefreshDone(outcome string, seconds float64) {
	m.RefreshesTotal.WithLabelValues(outcome).Inc()
	m.RefreshDuration.Observe(seconds)
}

func (m *Metrics) ChartDrawn(surface string, applied bool) {
	result := "applied"
	if !applied {
		result = "stale"
	}
	m.ChartDraws.WithLabelValues(surface, result).Inc()
}
