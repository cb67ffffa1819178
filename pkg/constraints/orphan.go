package constraints

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/model"
)

// OrphanConstraint warns about modes that take no part in the model: faults
// nobody reads, external faults nobody feeds, failures and error modes not
// attached to any component.
type OrphanConstraint struct{}

func (oc *OrphanConstraint) Name() string { return "OrphanConstraint" }

func (oc *OrphanConstraint) Validate(m ModelReader) ([]Violation, error) {
	reg := m.Registry()

	read := make(map[*model.FaultMode]bool)
	for _, em := range attachedErrorModes(m) {
		for _, f := range em.Inputs() {
			read[f] = true
		}
		for _, f := range em.Condition().Refs() {
			read[f] = true
		}
	}
	fed := make(map[*model.FaultMode]bool)
	for _, p := range m.PropagationPorts() {
		fed[p.Target()] = true
	}

	violations := make([]Violation, 0)
	report := func(kind, name, msg string) {
		violations = append(violations, Violation{
			Type:       OrphanMode,
			Severity:   Warning,
			Subject:    kind + " " + name,
			Constraint: oc.Name(),
			Message:    fmt.Sprintf("%s %s %s", kind, name, msg),
			Details:    map[string]any{"kind": kind, "name": name},
		})
	}

	for _, f := range reg.FaultModes() {
		if !read[f] && !fed[f] {
			report("fault mode", f.Name(), "is not referenced by any error mode or propagation port")
			continue
		}
		if f.IsExternal() && !fed[f] {
			report("fault mode", f.Name(), "is external but no propagation port feeds it")
		}
	}
	for _, fm := range reg.FailureModes() {
		if prod := fm.Producer(); prod == nil || prod.Component() == nil {
			report("failure mode", fm.Name(), "is not produced by an attached error mode")
		}
	}
	for _, em := range reg.ErrorModes() {
		if em.Component() == nil {
			report("error mode", em.Name(), "is not attached to a component")
		}
	}
	return violations, nil
}
