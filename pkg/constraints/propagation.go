package constraints

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/model"
)

// PropagationConstraint re-checks every propagation port: the target is a
// registered external fault, the source failure is produced on the owner,
// and the topology policy admits the target component.
type PropagationConstraint struct{}

func (pc *PropagationConstraint) Name() string { return "PropagationConstraint" }

func (pc *PropagationConstraint) Validate(m ModelReader) ([]Violation, error) {
	reg := m.Registry()
	violations := make([]Violation, 0)

	for _, p := range m.PropagationPorts() {
		report := func(format string, args ...any) {
			violations = append(violations, Violation{
				Type:       InvalidPropagation,
				Severity:   Error,
				Subject:    "propagation port " + p.String(),
				Constraint: pc.Name(),
				Message:    fmt.Sprintf("port %s: ", p) + fmt.Sprintf(format, args...),
				Details: map[string]any{
					"owner":            p.Owner().Name(),
					"source":           p.Source().Name(),
					"target":           p.Target().Name(),
					"target_component": p.TargetComponent().Name(),
				},
			})
		}

		if p.Target().Kind() != model.External {
			report("target %s is %s", p.Target().Name(), p.Target().Kind())
		}
		if got, err := reg.Fault(p.Target().Name()); err != nil || got != p.Target() {
			report("target %s is not registered", p.Target().Name())
		}
		if prod := p.Source().Producer(); prod == nil || prod.Component() != p.Owner() {
			report("failure %s is not produced on %s", p.Source().Name(), p.Owner().Name())
		}
		if !m.TopologyAllows(p.Owner(), p.TargetComponent()) {
			report("%s may not deliver faults to %s", p.Owner().Name(), p.TargetComponent().Name())
		}
	}
	return violations, nil
}
