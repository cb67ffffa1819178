// Package model holds the dependability model: components arranged in a
// containment hierarchy, the fault, error and failure modes they host, and
// the propagation ports that turn one component's failure into another's
// external fault.
//
// A System is built incrementally. Every mutating call checks its own
// contract and leaves the System unchanged on failure. Once sealed the
// System is read-only and safe for concurrent readers.
package model

import (
	"github.com/google/uuid"

	"github.com/dd0wney/faultflow/pkg/algorithms"
	"github.com/dd0wney/faultflow/pkg/logging"
)

// System is the root of a model: a named component hierarchy with one
// top-level component, the mode registry and the global port index.
type System struct {
	id           uuid.UUID
	name         string
	top          *Component
	components   []*Component
	byName       map[string]*Component
	parents      map[*Component][]*Component
	compositions []CompositionPort
	registry     *Registry
	ports        []*PropagationPort
	policy       TopologyPolicy
	logger       logging.Logger
	sealed       bool
}

// Option configures a System.
type Option func(*System)

// WithTopologyPolicy selects where propagation ports may deliver faults.
func WithTopologyPolicy(p TopologyPolicy) Option {
	return func(s *System) { s.policy = p }
}

// WithLogger sets the logger for mutation events.
func WithLogger(l logging.Logger) Option {
	return func(s *System) { s.logger = l }
}

// WithID overrides the generated system ID.
func WithID(id uuid.UUID) Option {
	return func(s *System) { s.id = id }
}

// NewSystem creates an empty system.
func NewSystem(name string, opts ...Option) *System {
	s := &System{
		id:       uuid.New(),
		name:     name,
		byName:   make(map[string]*Component),
		parents:  make(map[*Component][]*Component),
		registry: NewRegistry(),
		policy:   PolicyAncestor,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger).With(logging.System(name), logging.SystemID(s.id.String()))
	return s
}

func (s *System) ID() uuid.UUID          { return s.id }
func (s *System) Name() string           { return s.name }
func (s *System) Registry() *Registry    { return s.registry }
func (s *System) Policy() TopologyPolicy { return s.policy }
func (s *System) Sealed() bool           { return s.sealed }

// TopLevelComponent returns the root of the hierarchy, or nil if unset.
func (s *System) TopLevelComponent() *Component { return s.top }

// Seal makes the system read-only. Later mutations fail with ErrSealed.
func (s *System) Seal() {
	s.sealed = true
	s.registry.sealed = true
}

func (s *System) contains(c *Component) bool {
	return c != nil && c.system == s
}

// AddComponent registers parent and children and adds one composition port
// per child. The call is checked as a whole before anything changes:
// ErrDuplicateName for a different component under a taken name, ErrCycle if
// a child is the parent or one of its ancestors, ErrDuplicateChild if a
// (parent, child) port already exists.
func (s *System) AddComponent(parent *Component, children ...*Component) error {
	if s.sealed {
		return NewError("AddComponent").System(s.name).Cause(ErrSealed).Err()
	}
	if parent == nil {
		return NewError("AddComponent").Component("").Context("nil parent").Cause(ErrInvalidName).Err()
	}

	pending := make(map[string]*Component, len(children)+1)
	for _, c := range append([]*Component{parent}, children...) {
		if err := s.checkJoin(c, pending); err != nil {
			return err
		}
		pending[c.name] = c
	}

	newChild := make(map[*Component]bool, len(children))
	for _, child := range children {
		if child == parent || (s.contains(child) && s.contains(parent) && s.IsAncestor(child, parent)) {
			return NewError("AddComponent").Component(child.name).
				Context("parent %s", parent.name).Cause(ErrCycle).Err()
		}
		if parent.HasChild(child) || newChild[child] {
			return NewError("AddComponent").Component(child.name).
				Context("parent %s", parent.name).Cause(ErrDuplicateChild).Err()
		}
		newChild[child] = true
	}

	s.join(parent)
	for _, child := range children {
		s.join(child)
		parent.children = append(parent.children, child)
		s.parents[child] = append(s.parents[child], parent)
		s.compositions = append(s.compositions, CompositionPort{Parent: parent, Child: child})
		s.logger.Debug("composition port added", logging.Component(parent.name), logging.String("child", child.name))
	}
	return nil
}

func (s *System) checkJoin(c *Component, pending map[string]*Component) error {
	if c == nil {
		return NewError("AddComponent").Component("").Context("nil child").Cause(ErrInvalidName).Err()
	}
	if c.name == "" {
		return NewError("AddComponent").Component("").Cause(ErrInvalidName).Err()
	}
	if c.system != nil && c.system != s {
		return NewError("AddComponent").Component(c.name).Context("belongs to system %s", c.system.name).Cause(ErrAlreadyAttached).Err()
	}
	if cur, ok := s.byName[c.name]; ok && cur != c {
		return NewError("AddComponent").Component(c.name).Cause(ErrDuplicateName).Err()
	}
	if cur, ok := pending[c.name]; ok && cur != c {
		return NewError("AddComponent").Component(c.name).Cause(ErrDuplicateName).Err()
	}
	return nil
}

func (s *System) join(c *Component) {
	if c.system == s {
		return
	}
	c.system = s
	s.byName[c.name] = c
	s.components = append(s.components, c)
	s.logger.Debug("component added", logging.Component(c.name))
}

// SetTopLevelComponent designates the root of the hierarchy.
func (s *System) SetTopLevelComponent(c *Component) error {
	if s.sealed {
		return NewError("SetTopLevelComponent").System(s.name).Cause(ErrSealed).Err()
	}
	if !s.contains(c) {
		name := ""
		if c != nil {
			name = c.name
		}
		return NewError("SetTopLevelComponent").Component(name).Cause(ErrUnknownComponent).Err()
	}
	s.top = c
	s.logger.Debug("top-level component set", logging.Component(c.name))
	return nil
}

// Component looks up a component by name.
func (s *System) Component(name string) (*Component, error) {
	if c, ok := s.byName[name]; ok {
		return c, nil
	}
	return nil, NewError("Component").Component(name).Cause(ErrUnknownComponent).Err()
}

// Components returns every component in insertion order.
func (s *System) Components() []*Component {
	out := make([]*Component, len(s.components))
	copy(out, s.components)
	return out
}

// CompositionPorts returns every containment edge in creation order.
func (s *System) CompositionPorts() []CompositionPort {
	out := make([]CompositionPort, len(s.compositions))
	copy(out, s.compositions)
	return out
}

// Parents returns the direct containers of c.
func (s *System) Parents(c *Component) []*Component {
	ps := s.parents[c]
	out := make([]*Component, len(ps))
	copy(out, ps)
	return out
}

// Ancestors returns every transitive container of c, nearest first.
func (s *System) Ancestors(c *Component) []*Component {
	if c == nil {
		return nil
	}
	up := algorithms.Reverse[*Component](s.ContainmentGraph())
	reach := algorithms.Reachable[*Component](up, c)
	return reach[1:]
}

// IsAncestor reports whether a strictly contains c.
func (s *System) IsAncestor(a, c *Component) bool {
	if a == nil || c == nil || a == c {
		return false
	}
	return algorithms.PathExists[*Component](s.ContainmentGraph(), a, c)
}

// Descendants returns every component contained in c, depth-first pre-order.
func (s *System) Descendants(c *Component) []*Component {
	if c == nil {
		return nil
	}
	return algorithms.Reachable[*Component](s.ContainmentGraph(), c)[1:]
}

// Walk visits the hierarchy depth-first in pre-order starting at the
// top-level component. Shared sub-components are visited once. Returning
// false from fn stops the walk.
func (s *System) Walk(fn func(c *Component, depth int) bool) {
	if s.top == nil {
		return
	}
	seen := make(map[*Component]bool)
	var visit func(c *Component, depth int) bool
	visit = func(c *Component, depth int) bool {
		if seen[c] {
			return true
		}
		seen[c] = true
		if !fn(c, depth) {
			return false
		}
		for _, child := range c.children {
			if !visit(child, depth+1) {
				return false
			}
		}
		return true
	}
	visit(s.top, 0)
}

// RegisterFault adds a fault mode to the system's registry.
func (s *System) RegisterFault(f *FaultMode) error {
	if err := s.registry.RegisterFault(f); err != nil {
		return err
	}
	s.logger.Debug("fault mode registered", logging.Mode(f.name), logging.ModeKind(f.kind.String()))
	return nil
}

// AddErrorMode attaches em to c and registers em and its failure mode.
func (s *System) AddErrorMode(c *Component, em *ErrorMode) error {
	if s.sealed {
		return NewError("AddErrorMode").System(s.name).Cause(ErrSealed).Err()
	}
	if em == nil {
		return NewError("AddErrorMode").ErrorMode("").Cause(ErrInvalidErrorMode).Err()
	}
	if !s.contains(c) {
		name := ""
		if c != nil {
			name = c.name
		}
		return NewError("AddErrorMode").Component(name).Cause(ErrUnknownComponent).Err()
	}
	if em.component != nil {
		return NewError("AddErrorMode").ErrorMode(em.name).
			Context("hosted by %s", em.component.name).Cause(ErrAlreadyAttached).Err()
	}
	if p := em.failure.producer; p != nil && p != em {
		return NewError("AddErrorMode").Failure(em.failure.name).
			Context("produced by %s", p.name).Cause(ErrAlreadyAttached).Err()
	}
	if cur, ok := s.registry.errors.get(em.name); ok && cur != em {
		return NewError("AddErrorMode").ErrorMode(em.name).Cause(ErrDuplicateName).Err()
	}
	if cur, ok := s.registry.failures.get(em.failure.name); ok && cur != em.failure {
		return NewError("AddErrorMode").Failure(em.failure.name).Cause(ErrDuplicateName).Err()
	}

	s.registry.errors.add(em.name, em)
	s.registry.failures.add(em.failure.name, em.failure)
	em.component = c
	em.failure.producer = em
	c.errorModes = append(c.errorModes, em)
	s.logger.Debug("error mode attached",
		logging.Component(c.name),
		logging.Mode(em.name),
		logging.Condition(em.cond.Source()),
	)
	return nil
}

// PropagationPorts returns every port of the system in creation order.
func (s *System) PropagationPorts() []*PropagationPort {
	out := make([]*PropagationPort, len(s.ports))
	copy(out, s.ports)
	return out
}

// ContainmentGraph exposes the composition edges as a graph.
func (s *System) ContainmentGraph() algorithms.Graph[*Component] {
	return containmentGraph{s}
}

type containmentGraph struct{ s *System }

func (g containmentGraph) Nodes() []*Component { return g.s.components }

func (g containmentGraph) Successors(c *Component) []*Component { return c.children }
