// Package export flattens a model.System into plain, name-keyed structs that
// analysis engines and the query surface can read without touching the model.
package export

import (
	"github.com/dd0wney/faultflow/pkg/model"
)

// Snapshot is a read-only copy of a system.
type Snapshot struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	TopLevel         string            `json:"topLevel,omitempty"`
	Policy           string            `json:"policy"`
	Components       []Component       `json:"components"`
	CompositionPorts []CompositionPort `json:"compositionPorts"`
	FaultModes       []FaultMode       `json:"faultModes"`
	ErrorModes       []ErrorMode       `json:"errorModes"`
	FailureModes     []FailureMode     `json:"failureModes"`
	PropagationPorts []PropagationPort `json:"propagationPorts"`
}

// Component lists a component's neighbours and hosted modes by name.
type Component struct {
	Name             string   `json:"name"`
	Parents          []string `json:"parents"`
	Children         []string `json:"children"`
	ErrorModes       []string `json:"errorModes"`
	PropagationPorts []string `json:"propagationPorts"`
}

type CompositionPort struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

// FaultMode carries the canonical distribution text; it is empty for
// external faults.
type FaultMode struct {
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Distribution string `json:"distribution,omitempty"`
}

type ErrorMode struct {
	Name      string   `json:"name"`
	Component string   `json:"component"`
	Inputs    []string `json:"inputs"`
	Condition string   `json:"condition"`
	Latency   string   `json:"latency"`
	Failure   string   `json:"failure"`
}

type FailureMode struct {
	Name     string `json:"name"`
	Producer string `json:"producer,omitempty"`
}

type PropagationPort struct {
	Name            string `json:"name"`
	Owner           string `json:"owner"`
	Source          string `json:"source"`
	Target          string `json:"target"`
	TargetComponent string `json:"targetComponent"`
}

// FromSystem copies sys. Slices follow the system's creation order.
func FromSystem(sys *model.System) *Snapshot {
	snap := &Snapshot{
		ID:     sys.ID().String(),
		Name:   sys.Name(),
		Policy: sys.Policy().String(),
	}
	if top := sys.TopLevelComponent(); top != nil {
		snap.TopLevel = top.Name()
	}

	for _, c := range sys.Components() {
		snap.Components = append(snap.Components, Component{
			Name:             c.Name(),
			Parents:          names(sys.Parents(c)),
			Children:         names(c.Children()),
			ErrorModes:       names(c.ErrorModes()),
			PropagationPorts: names(c.PropagationPorts()),
		})
	}
	for _, p := range sys.CompositionPorts() {
		snap.CompositionPorts = append(snap.CompositionPorts, CompositionPort{Parent: p.Parent.Name(), Child: p.Child.Name()})
	}

	reg := sys.Registry()
	for _, f := range reg.FaultModes() {
		fm := FaultMode{Name: f.Name(), Kind: f.Kind().String()}
		if !f.IsExternal() {
			fm.Distribution = f.Distribution().String()
		}
		snap.FaultModes = append(snap.FaultModes, fm)
	}
	for _, em := range reg.ErrorModes() {
		out := ErrorMode{
			Name:      em.Name(),
			Inputs:    names(em.Inputs()),
			Condition: em.Condition().Source(),
			Latency:   em.Latency().String(),
			Failure:   em.Failure().Name(),
		}
		if c := em.Component(); c != nil {
			out.Component = c.Name()
		}
		snap.ErrorModes = append(snap.ErrorModes, out)
	}
	for _, f := range reg.FailureModes() {
		out := FailureMode{Name: f.Name()}
		if p := f.Producer(); p != nil {
			out.Producer = p.Name()
		}
		snap.FailureModes = append(snap.FailureModes, out)
	}
	for _, p := range sys.PropagationPorts() {
		snap.PropagationPorts = append(snap.PropagationPorts, PropagationPort{
			Name:            p.String(),
			Owner:           p.Owner().Name(),
			Source:          p.Source().Name(),
			Target:          p.Target().Name(),
			TargetComponent: p.TargetComponent().Name(),
		})
	}
	return snap
}

func names[T interface{ String() string }](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}
