package infrastructure

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"bluebook/pkg/contracts/domain"
)

const metricsNamespace = "bluebook"

// RunMetrics collects the counters of one batch run. They are exported once,
// after the run, in the Prometheus textfile format picked up by
// node_exporter's textfile collector.
type RunMetrics struct {
	registry *prometheus.Registry

	RowsRead      prometheus.Counter
	RowsModified  prometheus.Counter
	ParseWarnings prometheus.Counter
	Directions    *prometheus.CounterVec
	Quotes        prometheus.Gauge
	Technicians   prometheus.Gauge
	Duration      prometheus.Gauge
	LastSuccess   prometheus.Gauge
}

// NewRunMetrics registers the run metrics on a private registry.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_read_total",
			Help:      "Worksheet data rows read.",
		}),
		RowsModified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_modified_total",
			Help:      "Rows whose labor cell carries an annotation.",
		}),
		ParseWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "parse_warnings_total",
			Help:      "Annotations with no recognisable amounts.",
		}),
		Directions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "modifications_total",
			Help:      "Modified rows by inferred direction.",
		}, []string{"direction"}),
		Quotes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "quotes",
			Help:      "Sum of distinct quotes per technician in the last run.",
		}),
		Technicians: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "technicians",
			Help:      "Technicians with at least one quote in the last run.",
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	m.registry.MustRegister(
		m.RowsRead, m.RowsModified, m.ParseWarnings, m.Directions,
		m.Quotes, m.Technicians, m.Duration, m.LastSuccess,
	)
	// runtime figures (heap, goroutines, GC) at the moment the textfile is written
	m.registry.MustRegister(collectors.NewGoCollector())
	for _, d := range domain.Directions {
		m.Directions.WithLabelValues(string(d))
	}
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveResults records the aggregate figures of a finished run.
func (m *RunMetrics) ObserveResults(quotes domain.QuoteCounts, mods domain.Modifications) {
	m.Quotes.Set(float64(quotes.Total()))
	m.Technicians.Set(float64(len(quotes.Technicians)))
	for _, row := range mods.Rows {
		m.RowsModified.Inc()
		m.Directions.WithLabelValues(string(row.Inference.Direction)).Inc()
		if row.Inference.Reason == domain.ReasonNoAmounts {
			m.ParseWarnings.Inc()
		}
	}
}

// Finish stamps the run duration and, on success, the success timestamp.
func (m *RunMetrics) Finish(started time.Time, success bool) {
	now := time.Now()
	m.Duration.Set(now.Sub(started).Seconds())
	if success {
		m.LastSuccess.Set(float64(now.Unix()))
	}
}

// WriteTextfile writes the metrics atomically to path.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
