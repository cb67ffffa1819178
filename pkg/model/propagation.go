package model

import (
	"fmt"
	"strings"

	"github.com/dd0wney/faultflow/pkg/algorithms"
	"github.com/dd0wney/faultflow/pkg/logging"
)

// TopologyPolicy decides which components a propagation port may deliver
// an external fault to.
type TopologyPolicy int

const (
	// PolicyAncestor allows the owner itself or any of its ancestors.
	PolicyAncestor TopologyPolicy = iota
	// PolicyConnected allows any component in the owner's weakly connected
	// containment component.
	PolicyConnected
)

func (p TopologyPolicy) String() string {
	switch p {
	case PolicyAncestor:
		return "ancestor"
	case PolicyConnected:
		return "connected"
	default:
		return fmt.Sprintf("TopologyPolicy(%d)", int(p))
	}
}

// ParseTopologyPolicy maps "ancestor" or "connected" to a policy.
func ParseTopologyPolicy(s string) (TopologyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ancestor":
		return PolicyAncestor, nil
	case "connected":
		return PolicyConnected, nil
	default:
		return 0, fmt.Errorf("unknown topology policy %q", s)
	}
}

// PropagationPort re-exposes a failure of its owner as an external fault of
// the target component.
type PropagationPort struct {
	owner           *Component
	source          *FailureMode
	target          *FaultMode
	targetComponent *Component
}

func (p *PropagationPort) Owner() *Component           { return p.owner }
func (p *PropagationPort) Source() *FailureMode        { return p.source }
func (p *PropagationPort) Target() *FaultMode          { return p.target }
func (p *PropagationPort) TargetComponent() *Component { return p.targetComponent }

func (p *PropagationPort) String() string {
	return fmt.Sprintf("%s->%s@%s", p.source.name, p.target.name, p.targetComponent.name)
}

// TopologyAllows reports whether the system's policy lets owner deliver
// faults to target.
func (s *System) TopologyAllows(owner, target *Component) bool {
	if owner == target {
		return true
	}
	switch s.policy {
	case PolicyConnected:
		return algorithms.WeaklyConnected[*Component](s.ContainmentGraph(), owner, target)
	default:
		return s.IsAncestor(target, owner)
	}
}

// AddPropagationPort connects source, a failure produced by an error mode
// of owner, to the external fault mode target of targetComponent.
func (s *System) AddPropagationPort(owner *Component, source *FailureMode, target *FaultMode, targetComponent *Component) (*PropagationPort, error) {
	desc := portDesc(source, target, targetComponent)
	op := func() *ErrorBuilder { return NewError("AddPropagationPort").Port(desc) }

	if s.sealed {
		return nil, op().Cause(ErrSealed).Err()
	}
	if !s.contains(owner) {
		return nil, op().Context("owner").Cause(ErrUnknownComponent).Err()
	}
	if !s.contains(targetComponent) {
		return nil, op().Context("target component").Cause(ErrUnknownComponent).Err()
	}
	if source == nil || target == nil {
		return nil, op().Cause(ErrUnknownMode).Err()
	}
	if target.kind != External {
		return nil, op().Context("fault mode %s is %s", target.name, target.kind).Cause(ErrInvalidTargetMode).Err()
	}
	if cur, ok := s.registry.faults.get(target.name); !ok || cur != target {
		return nil, op().Context("fault mode %s is not registered", target.name).Cause(ErrUnknownMode).Err()
	}
	if p := source.producer; p == nil || p.component != owner {
		return nil, op().Context("failure %s is not produced on %s", source.name, owner.name).Cause(ErrInvalidTopology).Err()
	}
	if !s.TopologyAllows(owner, targetComponent) {
		return nil, op().Context("%s policy forbids %s -> %s", s.policy, owner.name, targetComponent.name).Cause(ErrInvalidTopology).Err()
	}
	for _, p := range s.ports {
		if p.source == source && p.target == target {
			return nil, op().Cause(ErrDuplicatePort).Err()
		}
	}

	port := &PropagationPort{
		owner:           owner,
		source:          source,
		target:          target,
		targetComponent: targetComponent,
	}
	owner.ports = append(owner.ports, port)
	s.ports = append(s.ports, port)
	s.logger.Debug("propagation port added",
		logging.Component(owner.name),
		logging.Port(source.name, target.name, targetComponent.name),
	)
	return port, nil
}

func portDesc(source *FailureMode, target *FaultMode, tc *Component) string {
	name := func(s fmt.Stringer, ok bool) string {
		if !ok {
			return "?"
		}
		return s.String()
	}
	return name(source, source != nil) + "->" + name(target, target != nil) + "@" + name(tc, tc != nil)
}
