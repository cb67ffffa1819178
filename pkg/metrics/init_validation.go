package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initValidationMetrics() {
	r.ValidationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: r.namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of the integrity pass",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	r.ViolationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: r.namespace,
			Name:      "validation_violations_total",
			Help:      "Constraint violations found by the integrity pass",
		},
		[]string{"constraint", "severity"},
	)
}
