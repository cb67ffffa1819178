package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBuildMetrics() {
	r.BuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: r.namespace,
			Name:      "model_builds_total",
			Help:      "Total number of model builds",
		},
		[]string{"result"}, // success, invalid, error
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: r.namespace,
			Name:      "model_build_duration_seconds",
			Help:      "Duration of model builds including validation",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	r.ModelEntities = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: r.namespace,
			Name:      "model_entities",
			Help:      "Number of entities in the last built model",
		},
		[]string{"system", "kind"},
	)

	r.ConditionCompilesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: r.namespace,
			Name:      "condition_compiles_total",
			Help:      "Enabling conditions compiled, by outcome",
		},
		[]string{"result"}, // ok, syntax_error, undefined_reference, error
	)
}
