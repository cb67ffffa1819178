package builder

import (
	"os"

	"github.com/dd0wney/faultflow/pkg/config"
	"github.com/dd0wney/faultflow/pkg/constraints"
	"github.com/dd0wney/faultflow/pkg/logging"
	"github.com/dd0wney/faultflow/pkg/metrics"
	"github.com/dd0wney/faultflow/pkg/model"
)

type options struct {
	logger      logging.Logger
	metrics     *metrics.Registry
	policy      model.TopologyPolicy
	strict      bool
	negation    bool
	constraints []constraints.Constraint
}

// Option configures a Builder.
type Option func(*options)

// WithLogger sets the logger for the builder and the system it builds.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records build metrics into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) { o.metrics = r }
}

// WithTopologyPolicy selects where propagation ports may deliver faults.
func WithTopologyPolicy(p model.TopologyPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithStrictConditionInputs makes input/condition divergence fatal.
func WithStrictConditionInputs(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithNegation accepts '!' in every enabling condition.
func WithNegation(allow bool) Option {
	return func(o *options) { o.negation = allow }
}

// WithConstraints adds checks to the default integrity pass.
func WithConstraints(cs ...constraints.Constraint) Option {
	return func(o *options) { o.constraints = append(o.constraints, cs...) }
}

// FromConfig translates a loaded configuration into builder options.
func FromConfig(cfg *config.Config) []Option {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := []Option{
		WithLogger(logging.NewJSONLogger(os.Stderr, cfg.Level())),
		WithTopologyPolicy(cfg.Policy()),
		WithStrictConditionInputs(cfg.StrictConditionInputs),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, WithMetrics(metrics.ForNamespace(cfg.Metrics.Namespace)))
	}
	return opts
}
