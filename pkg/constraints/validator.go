package constraints

import (
	"fmt"
	"time"
)

// ValidationResult contains the results of validating a model against constraints
type ValidationResult struct {
	Valid      bool        // True if no Error-severity violations were found
	Violations []Violation // List of all violations
	CheckedAt  time.Time   // When validation was performed
}

// BySeverity returns violations filtered by severity level
func (vr *ValidationResult) BySeverity(severity Severity) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// ByType returns violations filtered by type
func (vr *ValidationResult) ByType(violationType ViolationType) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Errors returns the violations that block a build.
func (vr *ValidationResult) Errors() []Violation { return vr.BySeverity(Error) }

// Warnings returns the non-blocking findings.
func (vr *ValidationResult) Warnings() []Violation { return vr.BySeverity(Warning) }

// Summary renders "N error(s), M warning(s)".
func (vr *ValidationResult) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", len(vr.Errors()), len(vr.Warnings()))
}

// Validator manages a set of constraints and validates models against them
type Validator struct {
	constraints []Constraint
}

// NewValidator creates a new empty validator
func NewValidator() *Validator {
	return &Validator{
		constraints: make([]Constraint, 0),
	}
}

// AddConstraint adds a constraint to the validator
func (v *Validator) AddConstraint(constraint Constraint) {
	v.constraints = append(v.constraints, constraint)
}

// AddConstraints adds multiple constraints to the validator
func (v *Validator) AddConstraints(constraints []Constraint) {
	v.constraints = append(v.constraints, constraints...)
}

// Validate runs all constraints against the model and returns the results.
// An error is returned only when a constraint cannot run at all.
func (v *Validator) Validate(m ModelReader) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}

	for _, constraint := range v.constraints {
		violations, err := constraint.Validate(m)
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", constraint.Name(), err)
		}
		for _, violation := range violations {
			if violation.Severity == Error {
				result.Valid = false
			}
		}
		result.Violations = append(result.Violations, violations...)
	}

	return result, nil
}

// Constraints returns all constraints in the validator
func (v *Validator) Constraints() []Constraint {
	return v.constraints
}
