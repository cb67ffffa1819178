package model

import "sort"

// ActiveSet is a snapshot of the fault modes currently active. A nil set is
// empty and read-only.
type ActiveSet map[*FaultMode]struct{}

// NewActiveSet returns a set holding modes.
func NewActiveSet(modes ...*FaultMode) ActiveSet {
	s := make(ActiveSet, len(modes))
	s.Activate(modes...)
	return s
}

// Activate adds modes to the set.
func (s ActiveSet) Activate(modes ...*FaultMode) {
	for _, m := range modes {
		if m != nil {
			s[m] = struct{}{}
		}
	}
}

// Deactivate removes modes from the set.
func (s ActiveSet) Deactivate(modes ...*FaultMode) {
	for _, m := range modes {
		delete(s, m)
	}
}

// Has reports whether m is active.
func (s ActiveSet) Has(m *FaultMode) bool {
	_, ok := s[m]
	return ok
}

// Len returns the number of active modes.
func (s ActiveSet) Len() int { return len(s) }

// Clone returns an independent copy.
func (s ActiveSet) Clone() ActiveSet {
	out := make(ActiveSet, len(s))
	for m := range s {
		out[m] = struct{}{}
	}
	return out
}

// Names returns the names of the active modes, sorted.
func (s ActiveSet) Names() []string {
	names := make([]string, 0, len(s))
	for m := range s {
		names = append(names, m.name)
	}
	sort.Strings(names)
	return names
}
