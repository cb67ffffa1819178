package constraints

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/model"
)

// attachedErrorModes lists every error mode hosted by a component of m.
func attachedErrorModes(m ModelReader) []*model.ErrorMode {
	var out []*model.ErrorMode
	for _, c := range m.Components() {
		out = append(out, c.ErrorModes()...)
	}
	return out
}

// ReferenceConstraint checks that every mode an error mode refers to is the
// object registered under that name in the model's registry. It catches
// error modes compiled against a different registry.
type ReferenceConstraint struct{}

func (rc *ReferenceConstraint) Name() string { return "ReferenceConstraint" }

func (rc *ReferenceConstraint) Validate(m ModelReader) ([]Violation, error) {
	reg := m.Registry()
	violations := make([]Violation, 0)

	report := func(em *model.ErrorMode, role, name string) {
		violations = append(violations, Violation{
			Type:       UnresolvedReference,
			Severity:   Error,
			Subject:    "error mode " + em.Name(),
			Constraint: rc.Name(),
			Message:    fmt.Sprintf("error mode %s: %s %s does not resolve in the system registry", em.Name(), role, name),
			Details: map[string]any{
				"error_mode": em.Name(),
				"role":       role,
				"name":       name,
			},
		})
	}

	for _, em := range attachedErrorModes(m) {
		for _, f := range em.Inputs() {
			if got, err := reg.Fault(f.Name()); err != nil || got != f {
				report(em, "input", f.Name())
			}
		}
		for _, f := range em.Condition().Refs() {
			if got, err := reg.Fault(f.Name()); err != nil || got != f {
				report(em, "condition identifier", f.Name())
			}
		}
		if got, err := reg.Failure(em.Failure().Name()); err != nil || got != em.Failure() {
			report(em, "failure", em.Failure().Name())
		}
	}
	return violations, nil
}
