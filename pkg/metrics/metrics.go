package metrics

import (
	"time"
)

// Build outcomes.
const (
	BuildSuccess = "success"
	BuildInvalid = "invalid"
	BuildError   = "error"
)

// Condition compilation outcomes.
const (
	ConditionOK        = "ok"
	ConditionSyntax    = "syntax_error"
	ConditionUndefined = "undefined_reference"
	ConditionError     = "error"
)

// ModelSize counts the entities of a model.
type ModelSize struct {
	Components       int
	CompositionPorts int
	FaultModes       int
	ErrorModes       int
	FailureModes     int
	PropagationPorts int
}

// RecordBuild records a build outcome with its duration
func (r *Registry) RecordBuild(result string, duration time.Duration) {
	r.BuildsTotal.WithLabelValues(result).Inc()
	r.BuildDuration.Observe(duration.Seconds())
}

// SetModelSize publishes the entity counts of system.
func (r *Registry) SetModelSize(system string, size ModelSize) {
	r.ModelEntities.WithLabelValues(system, "components").Set(float64(size.Components))
	r.ModelEntities.WithLabelValues(system, "composition_ports").Set(float64(size.CompositionPorts))
	r.ModelEntities.WithLabelValues(system, "fault_modes").Set(float64(size.FaultModes))
	r.ModelEntities.WithLabelValues(system, "error_modes").Set(float64(size.ErrorModes))
	r.ModelEntities.WithLabelValues(system, "failure_modes").Set(float64(size.FailureModes))
	r.ModelEntities.WithLabelValues(system, "propagation_ports").Set(float64(size.PropagationPorts))
}

// RecordValidation records the duration of an integrity pass
func (r *Registry) RecordValidation(duration time.Duration) {
	r.ValidationDuration.Observe(duration.Seconds())
}

// RecordViolation counts one finding
func (r *Registry) RecordViolation(constraint, severity string) {
	r.ViolationsTotal.WithLabelValues(constraint, severity).Inc()
}

// RecordConditionCompile counts one condition compilation
func (r *Registry) RecordConditionCompile(result string) {
	r.ConditionCompilesTotal.WithLabelValues(result).Inc()
}
