package model

// EnabledClosure assumes every enabled error mode fires at once and follows
// propagation ports until nothing changes. It returns the resulting active
// set (seed included) and the enabled error modes in registration order.
// Latencies are ignored.
func (s *System) EnabledClosure(seed ActiveSet) (ActiveSet, []*ErrorMode) {
	active := seed.Clone()
	byFailure := make(map[*FailureMode][]*PropagationPort)
	for _, p := range s.ports {
		byFailure[p.source] = append(byFailure[p.source], p)
	}

	fired := make(map[*ErrorMode]bool)
	for changed := true; changed; {
		changed = false
		for _, em := range s.registry.ErrorModes() {
			if fired[em] || em.component == nil || !em.Enabled(active) {
				continue
			}
			fired[em] = true
			changed = true
			for _, p := range byFailure[em.failure] {
				active.Activate(p.target)
			}
		}
	}

	enabled := make([]*ErrorMode, 0, len(fired))
	for _, em := range s.registry.ErrorModes() {
		if fired[em] {
			enabled = append(enabled, em)
		}
	}
	return active, enabled
}
