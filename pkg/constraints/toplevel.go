package constraints

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/algorithms"
	"github.com/dd0wney/faultflow/pkg/model"
)

// TopLevelConstraint requires a top-level component from which every other
// component is reachable through composition ports.
type TopLevelConstraint struct{}

func (tc *TopLevelConstraint) Name() string { return "TopLevelConstraint" }

func (tc *TopLevelConstraint) Validate(m ModelReader) ([]Violation, error) {
	top := m.TopLevelComponent()
	if top == nil {
		return []Violation{{
			Type:       MissingTopLevel,
			Severity:   Error,
			Subject:    "system " + m.Name(),
			Constraint: tc.Name(),
			Message:    "top-level component is not set",
		}}, nil
	}

	reachable := make(map[*model.Component]bool)
	for _, c := range algorithms.Reachable[*model.Component](m.ContainmentGraph(), top) {
		reachable[c] = true
	}

	violations := make([]Violation, 0)
	for _, c := range m.Components() {
		if reachable[c] {
			continue
		}
		violations = append(violations, Violation{
			Type:       UnreachableComponent,
			Severity:   Error,
			Subject:    "component " + c.Name(),
			Constraint: tc.Name(),
			Message:    fmt.Sprintf("component %s is not contained in top-level component %s", c.Name(), top.Name()),
			Details:    map[string]any{"component": c.Name(), "top_level": top.Name()},
		})
	}
	return violations, nil
}
