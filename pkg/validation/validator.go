// Package validation holds the struct-tag validator used by the model
// specs, plus a fluent validator for hand-written configuration checks.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/faultflow/pkg/condition"
	"github.com/dd0wney/faultflow/pkg/distribution"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// ErrInvalid is matched by every error returned from Struct.
	ErrInvalid = errors.New("validation failed")
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return isIdentifier(fl.Field().String())
	})
	_ = validate.RegisterValidation("distribution", func(fl validator.FieldLevel) bool {
		_, err := distribution.Parse(fl.Field().String())
		return err == nil
	})
}

func isIdentifier(s string) bool {
	return condition.IsIdentifier(s)
}

// FieldError is one failed struct-tag rule.
type FieldError struct {
	Field string
	Tag   string
	Param string
	Value any
}

func (e FieldError) String() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s: field is required", e.Field)
	case "min":
		return fmt.Sprintf("%s: must have at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s: must not exceed %s", e.Field, e.Param)
	case "identifier":
		return fmt.Sprintf("%s: %q is not a valid identifier", e.Field, e.Value)
	case "distribution":
		return fmt.Sprintf("%s: %q is not a valid distribution", e.Field, e.Value)
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", e.Field, e.Tag)
	}
}

// StructError lists every failed rule of one struct.
type StructError struct {
	Fields []FieldError
}

func (e *StructError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

func (e *StructError) Is(target error) bool { return target == ErrInvalid }

// Struct validates v against its `validate` tags. Besides the stock rules it
// understands "identifier" (a name usable in conditions) and "distribution"
// (a parseable distribution specification).
func Struct(v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrInvalid)
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a *StructError.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	out := &StructError{Fields: make([]FieldError, 0, len(validationErrs))}
	for _, e := range validationErrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(e.Namespace()),
			Tag:   e.Tag(),
			Param: e.Param(),
			Value: e.Value(),
		})
	}
	return out
}

// fieldPath drops the struct name from "Spec.Inputs[0]".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
