package constraints

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dd0wney/faultflow/pkg/algorithms"
	"github.com/dd0wney/faultflow/pkg/model"
)

// CompositionConstraint requires an acyclic containment graph.
type CompositionConstraint struct{}

func (cc *CompositionConstraint) Name() string { return "CompositionConstraint" }

func (cc *CompositionConstraint) Validate(m ModelReader) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, cycle := range algorithms.DetectCycles[*model.Component](m.ContainmentGraph()) {
		path := make([]string, len(cycle))
		for i, c := range cycle {
			path[i] = c.Name()
		}
		violations = append(violations, Violation{
			Type:       CompositionCycle,
			Severity:   Error,
			Subject:    "component " + path[0],
			Constraint: cc.Name(),
			Message:    "containment cycle " + closePath(path),
			Details:    map[string]any{"cycle": path},
		})
	}
	return violations, nil
}

// PropagationCycleConstraint warns about feedback loops in the
// fault -> error -> failure -> fault graph. Loops are legal but make the
// analysis engine's fixpoint depend on latencies.
type PropagationCycleConstraint struct{}

func (pc *PropagationCycleConstraint) Name() string { return "PropagationCycleConstraint" }

func (pc *PropagationCycleConstraint) Validate(m ModelReader) ([]Violation, error) {
	g := m.PropagationGraph()
	loopOf := make(map[model.PropagationNode][]string)
	for _, loop := range algorithms.Loops[model.PropagationNode](g) {
		members := make([]string, len(loop))
		for i, n := range loop {
			members[i] = n.String()
		}
		sort.Strings(members)
		for _, n := range loop {
			loopOf[n] = members
		}
	}

	violations := make([]Violation, 0)
	for _, cycle := range algorithms.DetectCycles[model.PropagationNode](g) {
		path := make([]string, len(cycle))
		for i, n := range cycle {
			path[i] = n.String()
		}
		violations = append(violations, Violation{
			Type:       PropagationCycle,
			Severity:   Warning,
			Subject:    path[0],
			Constraint: pc.Name(),
			Message:    fmt.Sprintf("propagation loop %s", closePath(path)),
			Details:    map[string]any{"cycle": path, "members": loopOf[cycle[0]]},
		})
	}
	return violations, nil
}

func closePath(path []string) string {
	return strings.Join(append(append([]string(nil), path...), path[0]), " -> ")
}
