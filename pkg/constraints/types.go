// Package constraints runs the integrity pass over a model before it is
// handed to an analysis engine. Each Constraint inspects the model through
// ModelReader and reports Violations; the Validator runs every constraint
// and never stops at the first finding.
package constraints

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/algorithms"
	"github.com/dd0wney/faultflow/pkg/model"
)

// ModelReader defines the read-only operations needed for constraint validation.
// *model.System implements it; tests may wrap a System to inject defects the
// construction API refuses to create.
type ModelReader interface {
	Name() string
	TopLevelComponent() *model.Component
	Components() []*model.Component
	Registry() *model.Registry
	PropagationPorts() []*model.PropagationPort
	ContainmentGraph() algorithms.Graph[*model.Component]
	PropagationGraph() *algorithms.Adjacency[model.PropagationNode]
	TopologyAllows(owner, target *model.Component) bool
}

var _ ModelReader = (*model.System)(nil)

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	UnresolvedReference ViolationType = iota
	InvalidPropagation
	MissingTopLevel
	UnreachableComponent
	OrphanMode
	ConditionInputMismatch
	CompositionCycle
	PropagationCycle
)

func (vt ViolationType) String() string {
	switch vt {
	case UnresolvedReference:
		return "UnresolvedReference"
	case InvalidPropagation:
		return "InvalidPropagation"
	case MissingTopLevel:
		return "MissingTopLevel"
	case UnreachableComponent:
		return "UnreachableComponent"
	case OrphanMode:
		return "OrphanMode"
	case ConditionInputMismatch:
		return "ConditionInputMismatch"
	case CompositionCycle:
		return "CompositionCycle"
	case PropagationCycle:
		return "PropagationCycle"
	default:
		return "Unknown"
	}
}

// Violation represents a constraint violation
type Violation struct {
	Type       ViolationType
	Severity   Severity
	Subject    string // offending entity, e.g. "error mode IT_prop"
	Constraint string
	Message    string
	Details    map[string]any
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Severity, v.Constraint, v.Message)
}

// Constraint is the interface that all constraint types must implement.
type Constraint interface {
	// Validate checks the constraint against the model.
	// Returns a list of violations (empty if valid)
	Validate(m ModelReader) ([]Violation, error)

	// Name returns a human-readable name for the constraint
	Name() string
}

// Options tunes the default constraint set.
type Options struct {
	// StrictConditionInputs turns input/condition divergence into an error.
	StrictConditionInputs bool
}

// Default returns the standard integrity checks.
func Default(opts Options) []Constraint {
	return []Constraint{
		&ReferenceConstraint{},
		&PropagationConstraint{},
		&TopLevelConstraint{},
		&OrphanConstraint{},
		&ConditionInputsConstraint{Strict: opts.StrictConditionInputs},
		&CompositionConstraint{},
		&PropagationCycleConstraint{},
	}
}
