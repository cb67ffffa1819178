package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/faultflow/pkg/constraints"
)

// ErrInvalidModel is matched by every *ModelValidationError.
var ErrInvalidModel = errors.New("model failed validation")

// ModelValidationError aggregates every fatal finding of the integrity pass.
type ModelValidationError struct {
	System     string
	Violations []constraints.Violation
}

func (e *ModelValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return fmt.Sprintf("system %s: %d validation error(s): %s", e.System, len(e.Violations), strings.Join(msgs, "; "))
}

func (e *ModelValidationError) Is(target error) bool { return target == ErrInvalidModel }

// ByType returns the fatal findings of type t.
func (e *ModelValidationError) ByType(t constraints.ViolationType) []constraints.Violation {
	var out []constraints.Violation
	for _, v := range e.Violations {
		if v.Type == t {
			out = append(out, v)
		}
	}
	return out
}
