// Package metrics exposes Prometheus counters and gauges for the trip store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "europlan"

// Metrics holds all prometheus metrics.
// It satisfies service.Recorder.
type Metrics struct {
	MutationsTotal *prometheus.CounterVec
	ImportsTotal   *prometheus.CounterVec
	Segments       prometheus.Gauge
	Items          prometheus.Gauge
}

// NewMetrics creates the metrics and registers them on reg.
// Pass prometheus.DefaultRegisterer to expose them through promhttp.Handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MutationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mutations_total",
			Help:      "The total number of persisted changes to the trip",
		}, []string{"operation"}),
		ImportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "imports_total",
			Help:      "The total number of backup imports by outcome",
		}, []string{"result"}),
		Segments: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "segments",
			Help:      "Number of destinations in the trip",
		}),
		Items: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "items",
			Help:      "Number of items across all destinations",
		}),
	}
}

func (m *Metrics) Mutation(operation string) {
	m.MutationsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) Import(result string) {
	m.ImportsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Collection(segments, items int) {
	m.Segments.Set(float64(segments))
	m.Items.Set(float64(items))
}
