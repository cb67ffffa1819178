// Package builder assembles a model.System from names, runs the integrity
// pass and hands back a sealed, read-only system.
//
// Calls chain. The first failure is captured and every later call becomes a
// no-op, so a model can be written as one fluent block and checked once:
//
//	sys, result, err := builder.New("plant").
//		Compose("P", "A", "B").
//		TopLevel("P").
//		InternalFault("FA", "exp(0.001)").
//		ErrorMode("A", model.ErrorModeSpec{...}).
//		Build()
package builder

import (
	"errors"
	"time"

	"github.com/dd0wney/faultflow/pkg/condition"
	"github.com/dd0wney/faultflow/pkg/constraints"
	"github.com/dd0wney/faultflow/pkg/logging"
	"github.com/dd0wney/faultflow/pkg/metrics"
	"github.com/dd0wney/faultflow/pkg/model"
)

// Builder provides a fluent interface for building dependability models.
type Builder struct {
	sys    *model.System
	opts   options
	logger logging.Logger
	err    error // captures first error for deferred checking

	built  bool
	result *constraints.ValidationResult
}

// New creates a builder for a system called name.
func New(name string, opts ...Option) *Builder {
	o := options{policy: model.PolicyAncestor}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.OrNop(o.logger)
	sys := model.NewSystem(name, model.WithLogger(logger), model.WithTopologyPolicy(o.policy))
	return &Builder{
		sys:    sys,
		opts:   o,
		logger: logger.With(logging.System(name), logging.SystemID(sys.ID().String())),
	}
}

// Err returns the first error captured so far.
func (b *Builder) Err() error { return b.err }

// System returns the system under construction.
func (b *Builder) System() *model.System { return b.sys }

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) component(name string) *model.Component {
	if c, err := b.sys.Component(name); err == nil {
		return c
	}
	return model.NewComponent(name)
}

// Component adds a stand-alone component.
func (b *Builder) Component(name string) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.sys.AddComponent(b.component(name)); err != nil {
		return b.fail(err)
	}
	return b
}

// Compose makes children sub-components of parent, creating any component
// not seen before.
func (b *Builder) Compose(parent string, children ...string) *Builder {
	if b.err != nil {
		return b
	}
	cs := make([]*model.Component, len(children))
	for i, name := range children {
		cs[i] = b.component(name)
	}
	if err := b.sys.AddComponent(b.component(parent), cs...); err != nil {
		return b.fail(err)
	}
	return b
}

// TopLevel designates the root of the hierarchy.
func (b *Builder) TopLevel(name string) *Builder {
	if b.err != nil {
		return b
	}
	c, err := b.sys.Component(name)
	if err != nil {
		return b.fail(err)
	}
	if err := b.sys.SetTopLevelComponent(c); err != nil {
		return b.fail(err)
	}
	return b
}

// InternalFault registers an internal fault with its time-to-fault law.
func (b *Builder) InternalFault(name, dist string) *Builder {
	if b.err != nil {
		return b
	}
	f, err := model.NewInternalFault(name, dist)
	if err != nil {
		return b.fail(err)
	}
	if err := b.sys.RegisterFault(f); err != nil {
		return b.fail(err)
	}
	return b
}

// ExternalFault registers external faults.
func (b *Builder) ExternalFault(names ...string) *Builder {
	for _, name := range names {
		if b.err != nil {
			return b
		}
		f, err := model.NewExternalFault(name)
		if err != nil {
			return b.fail(err)
		}
		if err := b.sys.RegisterFault(f); err != nil {
			return b.fail(err)
		}
	}
	return b
}

// ErrorMode creates an error mode from spec and attaches it to component.
// Identifiers resolve against the faults registered so far.
func (b *Builder) ErrorMode(component string, spec model.ErrorModeSpec) *Builder {
	if b.err != nil {
		return b
	}
	c, err := b.sys.Component(component)
	if err != nil {
		return b.fail(err)
	}
	if b.opts.negation {
		spec.AllowNegation = true
	}
	em, err := model.NewErrorMode(b.sys.Registry(), spec)
	b.recordCompile(err)
	if err != nil {
		return b.fail(err)
	}
	if err := b.sys.AddErrorMode(c, em); err != nil {
		return b.fail(err)
	}
	return b
}

func (b *Builder) recordCompile(err error) {
	if b.opts.metrics == nil {
		return
	}
	result := metrics.ConditionOK
	switch {
	case err == nil:
	case errors.Is(err, condition.ErrSyntax):
		result = metrics.ConditionSyntax
	case errors.Is(err, condition.ErrUndefinedReference):
		result = metrics.ConditionUndefined
	default:
		result = metrics.ConditionError
	}
	b.opts.metrics.RecordConditionCompile(result)
}

// Propagate adds a port on owner re-exposing failure as the external fault
// target of targetComponent.
func (b *Builder) Propagate(owner, failure, target, targetComponent string) *Builder {
	if b.err != nil {
		return b
	}
	reg := b.sys.Registry()
	ownerC, err := b.sys.Component(owner)
	if err != nil {
		return b.fail(err)
	}
	tc, err := b.sys.Component(targetComponent)
	if err != nil {
		return b.fail(err)
	}
	fm, err := reg.Failure(failure)
	if err != nil {
		return b.fail(err)
	}
	f, err := reg.Fault(target)
	if err != nil {
		return b.fail(err)
	}
	if _, err := b.sys.AddPropagationPort(ownerC, fm, f, tc); err != nil {
		return b.fail(err)
	}
	return b
}

// Validate runs the integrity pass without sealing.
func (b *Builder) Validate() (*constraints.ValidationResult, error) {
	v := constraints.NewValidator()
	v.AddConstraints(constraints.Default(constraints.Options{StrictConditionInputs: b.opts.strict}))
	v.AddConstraints(b.opts.constraints)

	start := time.Now()
	result, err := v.Validate(b.sys)
	if err != nil {
		return nil, err
	}
	if m := b.opts.metrics; m != nil {
		m.RecordValidation(time.Since(start))
		for _, violation := range result.Violations {
			m.RecordViolation(violation.Constraint, violation.Severity.String())
		}
	}
	return result, nil
}

// Build validates the model and seals it. Warnings are logged and returned
// in the result; any error-severity finding yields a *ModelValidationError.
// Building again returns the same system.
func (b *Builder) Build() (*model.System, *constraints.ValidationResult, error) {
	if b.built {
		return b.sys, b.result, nil
	}

	b.logger.Info("model build started")
	timer := logging.StartTimer(b.logger, "model build")
	if b.err != nil {
		b.finish(metrics.BuildError, timer)
		timer.EndError(b.err)
		return nil, nil, b.err
	}

	result, err := b.Validate()
	if err != nil {
		b.finish(metrics.BuildError, timer)
		timer.EndError(err)
		return nil, nil, err
	}

	for _, w := range result.Warnings() {
		b.logger.Warn(w.Message, logging.Constraint(w.Constraint), logging.Severity(w.Severity.String()))
	}
	if !result.Valid {
		verr := &ModelValidationError{System: b.sys.Name(), Violations: result.Errors()}
		for _, v := range verr.Violations {
			b.logger.Error(v.Message, logging.Constraint(v.Constraint), logging.Severity(v.Severity.String()))
		}
		b.finish(metrics.BuildInvalid, timer)
		timer.EndError(verr, logging.Count(len(verr.Violations)))
		return nil, result, verr
	}

	b.sys.Seal()
	b.built = true
	b.result = result
	if m := b.opts.metrics; m != nil {
		m.SetModelSize(b.sys.Name(), SizeOf(b.sys))
	}
	b.finish(metrics.BuildSuccess, timer)
	timer.End(logging.Count(len(b.sys.Components())), logging.Int("warnings", len(result.Warnings())))
	return b.sys, result, nil
}

func (b *Builder) finish(outcome string, timer *logging.TimedOperation) {
	if b.opts.metrics != nil {
		b.opts.metrics.RecordBuild(outcome, timer.Elapsed())
	}
}

// SizeOf counts the entities of sys.
func SizeOf(sys *model.System) metrics.ModelSize {
	reg := sys.Registry()
	return metrics.ModelSize{
		Components:       len(sys.Components()),
		CompositionPorts: len(sys.CompositionPorts()),
		FaultModes:       len(reg.FaultModes()),
		ErrorModes:       len(reg.ErrorModes()),
		FailureModes:     len(reg.FailureModes()),
		PropagationPorts: len(sys.PropagationPorts()),
	}
}
