package model

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/condition"
	"github.com/dd0wney/faultflow/pkg/distribution"
	"github.com/dd0wney/faultflow/pkg/validation"
)

// ErrorModeSpec describes an error mode to create.
type ErrorModeSpec struct {
	Name      string   `validate:"required,identifier"`
	Inputs    []string `validate:"required,min=1,dive,identifier"`
	Condition string   `validate:"required"`
	Latency   string   `validate:"required"`
	Failure   string   `validate:"required,identifier"`

	// AllowNegation accepts '!' in the condition.
	AllowNegation bool
}

// ErrorMode turns a combination of active faults into a failure after a
// latency. It is attached to exactly one component.
type ErrorMode struct {
	name      string
	inputs    []*FaultMode
	cond      *condition.Bound[*FaultMode]
	latency   distribution.Spec
	failure   *FailureMode
	component *Component
}

// NewErrorMode creates an error mode. Inputs and condition identifiers are
// resolved through r, normally the Registry of the system the mode will be
// attached to. A fresh failure mode named spec.Failure is created.
func NewErrorMode(r condition.Resolver[*FaultMode], spec ErrorModeSpec) (*ErrorMode, error) {
	op := NewError("NewErrorMode").ErrorMode(spec.Name)
	if err := validation.Struct(&spec); err != nil {
		return nil, op.Cause(fmt.Errorf("%w: %w", ErrInvalidErrorMode, err)).Err()
	}

	seen := make(map[string]bool, len(spec.Inputs))
	for _, name := range spec.Inputs {
		if seen[name] {
			return nil, op.Context("input %s listed twice", name).Cause(ErrInvalidErrorMode).Err()
		}
		seen[name] = true
	}

	cond, err := condition.CompileWith(spec.Condition, condition.ParseOptions{AllowNot: spec.AllowNegation}, r)
	if err != nil {
		return nil, op.Context("condition").Cause(err).Err()
	}

	// Inputs absent from the condition still have to resolve; report them
	// the same way Bind reports unknown identifiers.
	inputs := make([]*FaultMode, 0, len(spec.Inputs))
	var undefined *condition.UndefinedReferenceError
	for _, name := range spec.Inputs {
		f, err := r.Resolve(name)
		if err != nil {
			if undefined == nil {
				undefined = &condition.UndefinedReferenceError{Condition: spec.Condition, Cause: err}
			}
			undefined.Names = append(undefined.Names, name)
			continue
		}
		inputs = append(inputs, f)
	}
	if undefined != nil {
		return nil, op.Context("inputs").Cause(undefined).Err()
	}

	latency, err := distribution.Parse(spec.Latency)
	if err != nil {
		return nil, op.Context("latency").Cause(err).Err()
	}

	failure, err := NewFailureMode(spec.Failure)
	if err != nil {
		return nil, op.Cause(err).Err()
	}

	return &ErrorMode{
		name:    spec.Name,
		inputs:  inputs,
		cond:    cond,
		latency: latency,
		failure: failure,
	}, nil
}

func (e *ErrorMode) Name() string                            { return e.name }
func (e *ErrorMode) Latency() distribution.Spec              { return e.latency }
func (e *ErrorMode) Failure() *FailureMode                   { return e.failure }
func (e *ErrorMode) Component() *Component                   { return e.component }
func (e *ErrorMode) String() string                          { return e.name }
func (e *ErrorMode) Condition() *condition.Bound[*FaultMode] { return e.cond }

// Inputs returns the declared input fault modes in declaration order.
func (e *ErrorMode) Inputs() []*FaultMode {
	out := make([]*FaultMode, len(e.inputs))
	copy(out, e.inputs)
	return out
}

// Enabled reports whether the enabling condition holds for active.
func (e *ErrorMode) Enabled(active ActiveSet) bool {
	return e.cond.Evaluate(active.Has)
}

// InputDivergence compares the declared inputs with the condition's
// identifiers. undeclared lists identifiers missing from the inputs, unused
// lists inputs the condition never reads. Both are in source order.
func (e *ErrorMode) InputDivergence() (undeclared, unused []string) {
	declared := make(map[*FaultMode]bool, len(e.inputs))
	for _, f := range e.inputs {
		declared[f] = true
	}
	referenced := make(map[*FaultMode]bool)
	for _, f := range e.cond.Refs() {
		referenced[f] = true
		if !declared[f] {
			undeclared = append(undeclared, f.name)
		}
	}
	for _, f := range e.inputs {
		if !referenced[f] {
			unused = append(unused, f.name)
		}
	}
	return undeclared, unused
}

// ErrorModeState is the lifecycle of an error mode as driven by an analysis
// engine: dormant until the condition holds, triggered while the latency
// runs, fired once the failure has been emitted.
type ErrorModeState int

const (
	Dormant ErrorModeState = iota
	Triggered
	Fired
)

func (s ErrorModeState) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Triggered:
		return "triggered"
	case Fired:
		return "fired"
	default:
		return fmt.Sprintf("ErrorModeState(%d)", int(s))
	}
}

// CanTransition reports whether moving from s to next is allowed.
// Triggered may fall back to Dormant when the condition is withdrawn before
// the latency elapses. Fired is terminal.
func (s ErrorModeState) CanTransition(next ErrorModeState) bool {
	switch s {
	case Dormant:
		return next == Triggered
	case Triggered:
		return next == Fired || next == Dormant
	default:
		return false
	}
}

// Next returns the state after observing whether the condition is enabled
// and whether the latency has elapsed since triggering.
func (s ErrorModeState) Next(enabled, elapsed bool) ErrorModeState {
	switch s {
	case Dormant:
		if enabled {
			return Triggered
		}
	case Triggered:
		if !enabled {
			return Dormant
		}
		if elapsed {
			return Fired
		}
	}
	return s
}
