package deploy

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for pipeline runs.
type Metrics struct {
	steps        *prometheus.CounterVec   // By step and final status
	stepDuration *prometheus.HistogramVec // By step
	runs         *prometheus.CounterVec   // By outcome: completed, failed, cancelled
}

// NewMetrics creates and registers pipeline metrics. A nil registerer disables metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil // Metrics disabled
	}

	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zurto",
			Subsystem: "deploy",
			Name:      "steps_total",
			Help:      "Total number of pipeline steps by final status",
		}, []string{"step", "status"}),

		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zurto",
			Subsystem: "deploy",
			Name:      "step_duration_seconds",
			Help:      "Pipeline step duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"step"}),

		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zurto",
			Subsystem: "deploy",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by outcome",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{m.steps, m.stepDuration, m.runs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordStep(step StepID, status Status, d time.Duration) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(string(step), string(status)).Inc()
	m.stepDuration.WithLabelValues(string(step)).Observe(d.Seconds())
}

func (m *Metrics) recordRun(outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
}
