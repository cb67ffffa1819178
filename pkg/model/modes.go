package model

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/distribution"
	"github.com/dd0wney/faultflow/pkg/validation"
)

// FaultKind tells where a fault mode originates.
type FaultKind int

const (
	// Internal faults arise inside a component after a random delay.
	Internal FaultKind = iota
	// External faults are received from another component's failure.
	External
)

func (k FaultKind) String() string {
	switch k {
	case Internal:
		return "internal"
	case External:
		return "external"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// FaultMode is a named fault. Internal modes carry their time-to-fault
// distribution; external modes are timed by the failure that feeds them.
type FaultMode struct {
	name string
	kind FaultKind
	dist distribution.Spec
}

// FaultModeSpec describes a fault mode to create.
type FaultModeSpec struct {
	Name string `validate:"required,identifier"`
	Kind FaultKind
	// Distribution is required for internal faults and must be empty for
	// external ones.
	Distribution string
}

// NewFaultMode creates a fault mode from spec.
func NewFaultMode(spec FaultModeSpec) (*FaultMode, error) {
	if err := validation.Struct(&spec); err != nil {
		return nil, NewError("NewFaultMode").Fault(spec.Name).Cause(fmt.Errorf("%w: %w", ErrInvalidFaultMode, err)).Err()
	}

	switch spec.Kind {
	case Internal:
		dist, err := distribution.Parse(spec.Distribution)
		if err != nil {
			return nil, NewError("NewFaultMode").Fault(spec.Name).Cause(err).Err()
		}
		return &FaultMode{name: spec.Name, kind: Internal, dist: dist}, nil
	case External:
		if spec.Distribution != "" {
			return nil, NewError("NewFaultMode").Fault(spec.Name).
				Context("external faults take their timing from the feeding failure").
				Cause(ErrInvalidFaultMode).Err()
		}
		return &FaultMode{name: spec.Name, kind: External}, nil
	default:
		return nil, NewError("NewFaultMode").Fault(spec.Name).
			Context("kind %v", spec.Kind).Cause(ErrInvalidFaultMode).Err()
	}
}

// NewInternalFault creates an internal fault mode, e.g.
// NewInternalFault("F1", "exp(0.000464826)").
func NewInternalFault(name, dist string) (*FaultMode, error) {
	return NewFaultMode(FaultModeSpec{Name: name, Kind: Internal, Distribution: dist})
}

// NewExternalFault creates an external fault mode.
func NewExternalFault(name string) (*FaultMode, error) {
	return NewFaultMode(FaultModeSpec{Name: name, Kind: External})
}

func (f *FaultMode) Name() string     { return f.name }
func (f *FaultMode) Kind() FaultKind  { return f.kind }
func (f *FaultMode) IsExternal() bool { return f.kind == External }
func (f *FaultMode) String() string   { return f.name }

// Distribution returns the time-to-fault law of an internal fault. The zero
// Spec is returned for external faults.
func (f *FaultMode) Distribution() distribution.Spec { return f.dist }

// FailureMode is the observable consequence of an error mode firing.
type FailureMode struct {
	name     string
	producer *ErrorMode
}

// NewFailureMode creates a failure mode.
func NewFailureMode(name string) (*FailureMode, error) {
	if !validIdentifier(name) {
		return nil, NewError("NewFailureMode").Failure(name).Cause(ErrInvalidName).Err()
	}
	return &FailureMode{name: name}, nil
}

func (f *FailureMode) Name() string   { return f.name }
func (f *FailureMode) String() string { return f.name }

// Producer returns the error mode that produces f, or nil before the error
// mode is attached.
func (f *FailureMode) Producer() *ErrorMode { return f.producer }
