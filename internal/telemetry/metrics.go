package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles three collectors that NewMetrics registers against
// whatever prometheus.Registerer the caller wires up, keeping the core
// search packages themselves free of any metrics-server dependency.
type Metrics struct {
	SolveDuration       prometheus.Histogram
	PositiveCyclesFound prometheus.Counter
	DDQueueSize         prometheus.Gauge
}

// NewMetrics constructs and registers a Metrics bundle against reg. Reg
// may be prometheus.NewRegistry() for tests, or prometheus.
// DefaultRegisterer for a binary exposing /metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock duration of a schedule.Solve call.",
			Buckets:   prometheus.DefBuckets,
		}),
		PositiveCyclesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "positive_cycles_total",
			Help:      "Number of times a solve attempt surfaced a positive cycle.",
		}),
		DDQueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scheduler",
			Name:      "dd_queue_size",
			Help:      "Live decision-diagram search queue length, sampled at each expansion.",
		}),
	}
	reg.MustRegister(m.SolveDuration, m.PositiveCyclesFound, m.DDQueueSize)
	return m
}
