package model

// Component is a node of the containment hierarchy. It hosts error modes
// and the propagation ports that export their failures. Components are
// mutated only through the System they belong to.
type Component struct {
	name       string
	system     *System
	children   []*Component
	errorModes []*ErrorMode
	ports      []*PropagationPort
}

// NewComponent creates a detached component.
func NewComponent(name string) *Component {
	return &Component{name: name}
}

func (c *Component) Name() string    { return c.name }
func (c *Component) String() string  { return c.name }
func (c *Component) System() *System { return c.system }

// Children returns the direct sub-components in composition order.
func (c *Component) Children() []*Component {
	out := make([]*Component, len(c.children))
	copy(out, c.children)
	return out
}

// ErrorModes returns the hosted error modes in attachment order.
func (c *Component) ErrorModes() []*ErrorMode {
	out := make([]*ErrorMode, len(c.errorModes))
	copy(out, c.errorModes)
	return out
}

// ErrorMode returns the hosted error mode called name.
func (c *Component) ErrorMode(name string) (*ErrorMode, bool) {
	for _, em := range c.errorModes {
		if em.name == name {
			return em, true
		}
	}
	return nil, false
}

// PropagationPorts returns the ports owned by c in creation order.
func (c *Component) PropagationPorts() []*PropagationPort {
	out := make([]*PropagationPort, len(c.ports))
	copy(out, c.ports)
	return out
}

// HasChild reports whether child is a direct sub-component of c.
func (c *Component) HasChild(child *Component) bool {
	for _, ch := range c.children {
		if ch == child {
			return true
		}
	}
	return false
}

// CompositionPort is a containment edge.
type CompositionPort struct {
	Parent *Component
	Child  *Component
}

func (p CompositionPort) String() string {
	return p.Parent.name + "/" + p.Child.name
}
