package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/scopezero/scopezero/internal/ingest"
)

const metricsNamespace = "scopezero"

// Metrics records ingestion activity. It implements ingest.Observer.
type Metrics struct {
	registry *prometheus.Registry

	commits        *prometheus.CounterVec
	accepted       *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	totalEmissions prometheus.Gauge
	commitDuration prometheus.Histogram
}

// NewMetrics registers the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commits_total",
			Help:      "Batches committed to the store.",
		}, []string{"origin"}),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "records_accepted_total",
			Help:      "Activity records accepted into the store.",
		}, []string{"origin"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_rejected_total",
			Help:      "Input rows dropped during normalization.",
		}, []string{"origin"}),
		totalEmissions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "total_emissions_kg",
			Help:      "Total kg CO2e of the current snapshot.",
		}),
		commitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "commit_duration_seconds",
			Help:      "Time to normalize and commit a batch.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.commits, m.accepted, m.rejected, m.totalEmissions, m.commitDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry served on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCommit implements ingest.Observer.
func (m *Metrics) ObserveCommit(origin ingest.Origin, accepted, rejected int, total float64, elapsed time.Duration) {
	label := string(origin)
	m.commits.WithLabelValues(label).Inc()
	m.accepted.WithLabelValues(label).Add(float64(accepted))
	m.rejected.WithLabelValues(label).Add(float64(rejected))
	m.totalEmissions.Set(total)
	m.commitDuration.Observe(elapsed.Seconds())
}

// SetTotal sets the total emissions gauge, e.g. after a reset.
func (m *Metrics) SetTotal(total float64) {
	m.totalEmissions.Set(total)
}
