package model

import "github.com/dd0wney/faultflow/pkg/condition"

// namespace is an append-only, insertion-ordered name index.
type namespace[T comparable] struct {
	order  []T
	byName map[string]T
}

func newNamespace[T comparable]() namespace[T] {
	return namespace[T]{byName: make(map[string]T)}
}

// add reports whether v was added and whether a different value already
// holds the name.
func (n *namespace[T]) add(name string, v T) (added bool, clash bool) {
	if cur, ok := n.byName[name]; ok {
		return false, cur != v
	}
	n.byName[name] = v
	n.order = append(n.order, v)
	return true, false
}

func (n *namespace[T]) get(name string) (T, bool) {
	v, ok := n.byName[name]
	return v, ok
}

func (n *namespace[T]) list() []T {
	out := make([]T, len(n.order))
	copy(out, n.order)
	return out
}

// Registry is the single source of truth mapping names to modes. Fault,
// error and failure modes live in separate namespaces, so a fault mode and
// an error mode may share a name. Entries are never removed.
type Registry struct {
	faults   namespace[*FaultMode]
	errors   namespace[*ErrorMode]
	failures namespace[*FailureMode]
	sealed   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		faults:   newNamespace[*FaultMode](),
		errors:   newNamespace[*ErrorMode](),
		failures: newNamespace[*FailureMode](),
	}
}

// RegisterFault adds f to the fault namespace. Registering the same object
// twice is a no-op; a different object under a taken name is ErrDuplicateName.
func (r *Registry) RegisterFault(f *FaultMode) error {
	if f == nil {
		return NewError("RegisterFault").Fault("").Cause(ErrInvalidName).Err()
	}
	if r.sealed {
		return NewError("RegisterFault").Fault(f.name).Cause(ErrSealed).Err()
	}
	if _, clash := r.faults.add(f.name, f); clash {
		return NewError("RegisterFault").Fault(f.name).Cause(ErrDuplicateName).Err()
	}
	return nil
}

// RegisterError adds e to the error namespace.
func (r *Registry) RegisterError(e *ErrorMode) error {
	if e == nil {
		return NewError("RegisterError").ErrorMode("").Cause(ErrInvalidName).Err()
	}
	if r.sealed {
		return NewError("RegisterError").ErrorMode(e.name).Cause(ErrSealed).Err()
	}
	if _, clash := r.errors.add(e.name, e); clash {
		return NewError("RegisterError").ErrorMode(e.name).Cause(ErrDuplicateName).Err()
	}
	return nil
}

// RegisterFailure adds f to the failure namespace.
func (r *Registry) RegisterFailure(f *FailureMode) error {
	if f == nil {
		return NewError("RegisterFailure").Failure("").Cause(ErrInvalidName).Err()
	}
	if r.sealed {
		return NewError("RegisterFailure").Failure(f.name).Cause(ErrSealed).Err()
	}
	if _, clash := r.failures.add(f.name, f); clash {
		return NewError("RegisterFailure").Failure(f.name).Cause(ErrDuplicateName).Err()
	}
	return nil
}

// Fault looks up a fault mode by name.
func (r *Registry) Fault(name string) (*FaultMode, error) {
	if f, ok := r.faults.get(name); ok {
		return f, nil
	}
	return nil, NewError("Fault").Fault(name).Cause(ErrUnknownMode).Err()
}

// Error looks up an error mode by name.
func (r *Registry) Error(name string) (*ErrorMode, error) {
	if e, ok := r.errors.get(name); ok {
		return e, nil
	}
	return nil, NewError("Error").ErrorMode(name).Cause(ErrUnknownMode).Err()
}

// Failure looks up a failure mode by name.
func (r *Registry) Failure(name string) (*FailureMode, error) {
	if f, ok := r.failures.get(name); ok {
		return f, nil
	}
	return nil, NewError("Failure").Failure(name).Cause(ErrUnknownMode).Err()
}

// Resolve binds condition identifiers to fault modes.
func (r *Registry) Resolve(name string) (*FaultMode, error) {
	return r.Fault(name)
}

// FaultModes returns the fault modes in registration order.
func (r *Registry) FaultModes() []*FaultMode { return r.faults.list() }

// ErrorModes returns the error modes in registration order.
func (r *Registry) ErrorModes() []*ErrorMode { return r.errors.list() }

// FailureModes returns the failure modes in registration order.
func (r *Registry) FailureModes() []*FailureMode { return r.failures.list() }

var _ condition.Resolver[*FaultMode] = (*Registry)(nil)

func validIdentifier(name string) bool {
	return condition.IsIdentifier(name)
}
