package export

// Component returns the named component.
func (s *Snapshot) Component(name string) (Component, bool) {
	for _, c := range s.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// ErrorMode returns the named error mode.
func (s *Snapshot) ErrorMode(name string) (ErrorMode, bool) {
	for _, em := range s.ErrorModes {
		if em.Name == name {
			return em, true
		}
	}
	return ErrorMode{}, false
}

// ErrorModesOf returns the error modes hosted by component. An empty name
// matches every error mode.
func (s *Snapshot) ErrorModesOf(component string) []ErrorMode {
	out := make([]ErrorMode, 0)
	for _, em := range s.ErrorModes {
		if component == "" || em.Component == component {
			out = append(out, em)
		}
	}
	return out
}

// FaultModesOfKind filters fault modes by kind ("internal" or "external").
// An empty kind matches every fault mode.
func (s *Snapshot) FaultModesOfKind(kind string) []FaultMode {
	out := make([]FaultMode, 0)
	for _, f := range s.FaultModes {
		if kind == "" || f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// PortsOf returns the propagation ports owned by component.
func (s *Snapshot) PortsOf(component string) []PropagationPort {
	out := make([]PropagationPort, 0)
	for _, p := range s.PropagationPorts {
		if p.Owner == component {
			out = append(out, p)
		}
	}
	return out
}
