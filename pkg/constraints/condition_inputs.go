package constraints

import (
	"fmt"
	"strings"
)

// ConditionInputsConstraint compares each error mode's declared inputs with
// the fault modes its condition reads. Divergence is a warning unless Strict.
type ConditionInputsConstraint struct {
	Strict bool
}

func (cc *ConditionInputsConstraint) Name() string { return "ConditionInputsConstraint" }

func (cc *ConditionInputsConstraint) Validate(m ModelReader) ([]Violation, error) {
	severity := Warning
	if cc.Strict {
		severity = Error
	}

	violations := make([]Violation, 0)
	for _, em := range attachedErrorModes(m) {
		undeclared, unused := em.InputDivergence()
		if len(undeclared) == 0 && len(unused) == 0 {
			continue
		}

		var parts []string
		if len(undeclared) > 0 {
			parts = append(parts, "condition reads undeclared "+strings.Join(undeclared, ", "))
		}
		if len(unused) > 0 {
			parts = append(parts, "condition ignores input "+strings.Join(unused, ", "))
		}
		violations = append(violations, Violation{
			Type:       ConditionInputMismatch,
			Severity:   severity,
			Subject:    "error mode " + em.Name(),
			Constraint: cc.Name(),
			Message:    fmt.Sprintf("error mode %s: %s", em.Name(), strings.Join(parts, "; ")),
			Details: map[string]any{
				"error_mode": em.Name(),
				"undeclared": undeclared,
				"unused":     unused,
			},
		})
	}
	return violations, nil
}
