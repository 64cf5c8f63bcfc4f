package bridge

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-command counts and latency.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers bridge collectors with reg. A nil reg leaves the
// collectors unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "chromaview",
				Name:      "bridge_commands_total",
				Help:      "Total number of bridge commands by outcome",
			},
			[]string{"command", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "chromaview",
				Name:      "bridge_command_duration_seconds",
				Help:      "Bridge command duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"command"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(cmd Command, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.requests.WithLabelValues(string(cmd), status).Inc()
	m.duration.WithLabelValues(string(cmd)).Observe(elapsed.Seconds())
}
