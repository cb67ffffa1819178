package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package matches one of these
// through errors.Is.
var (
	ErrDuplicateName     = errors.New("duplicate name")
	ErrUnknownMode       = errors.New("unknown mode")
	ErrUnknownComponent  = errors.New("unknown component")
	ErrInvalidName       = errors.New("invalid name")
	ErrCycle             = errors.New("composition cycle")
	ErrDuplicateChild    = errors.New("duplicate composition port")
	ErrInvalidTargetMode = errors.New("propagation target must be an external fault mode")
	ErrInvalidTopology   = errors.New("invalid propagation topology")
	ErrDuplicatePort     = errors.New("duplicate propagation port")
	ErrInvalidErrorMode  = errors.New("invalid error mode")
	ErrInvalidFaultMode  = errors.New("invalid fault mode")
	ErrAlreadyAttached   = errors.New("already attached")
	ErrSealed            = errors.New("system is sealed")
)

// ModelError provides structured error information for model operations.
type ModelError struct {
	Op      string // Operation that failed (e.g., "AddComponent", "RegisterFault")
	Entity  string // Entity kind (e.g., "component", "fault mode", "port")
	Name    string // Entity name, if any
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	subject := e.Entity
	if e.Name != "" {
		subject = fmt.Sprintf("%s %q", e.Entity, e.Name)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, subject, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, subject, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building ModelErrors.
type ErrorBuilder struct {
	err ModelError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: ModelError{Op: op}}
}

func (b *ErrorBuilder) entity(kind, name string) *ErrorBuilder {
	b.err.Entity = kind
	b.err.Name = name
	return b
}

// Component sets the entity to a component.
func (b *ErrorBuilder) Component(name string) *ErrorBuilder { return b.entity("component", name) }

// Fault sets the entity to a fault mode.
func (b *ErrorBuilder) Fault(name string) *ErrorBuilder { return b.entity("fault mode", name) }

// ErrorMode sets the entity to an error mode.
func (b *ErrorBuilder) ErrorMode(name string) *ErrorBuilder { return b.entity("error mode", name) }

// Failure sets the entity to a failure mode.
func (b *ErrorBuilder) Failure(name string) *ErrorBuilder { return b.entity("failure mode", name) }

// Port sets the entity to a propagation port.
func (b *ErrorBuilder) Port(desc string) *ErrorBuilder { return b.entity("propagation port", desc) }

// System sets the entity to the system.
func (b *ErrorBuilder) System(name string) *ErrorBuilder { return b.entity("system", name) }

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed ModelError.
func (b *ErrorBuilder) Build() *ModelError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsDuplicate reports whether err is a duplicate-name failure.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsNotFound reports whether err reports an unknown mode or component.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownMode) || errors.Is(err, ErrUnknownComponent)
}
