package export

import (
	"reflect"
	"testing"

	"github.com/dd0wney/faultflow/pkg/builder"
	"github.com/dd0wney/faultflow/pkg/model"
)

func buildPlant(t *testing.T) *model.System {
	t.Helper()
	sys, _, err := builder.New("plant").
		Compose("P", "A", "B").
		TopLevel("P").
		InternalFault("AInt", "exp(0.5)").
		ExternalFault("PExt").
		ErrorMode("A", model.ErrorModeSpec{
			Name: "AErr", Inputs: []string{"AInt"}, Condition: "AInt", Latency: "dirac(2)", Failure: "AFail",
		}).
		ErrorMode("P", model.ErrorModeSpec{
			Name: "PErr", Inputs: []string{"PExt"}, Condition: "PExt", Latency: "dirac(0)", Failure: "PFail",
		}).
		Propagate("A", "AFail", "PExt", "P").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return sys
}

func TestFromSystem(t *testing.T) {
	sys := buildPlant(t)
	snap := FromSystem(sys)

	if snap.ID != sys.ID().String() {
		t.Errorf("ID = %q, want %q", snap.ID, sys.ID())
	}
	if snap.Name != "plant" || snap.TopLevel != "P" || snap.Policy != "ancestor" {
		t.Errorf("header = %q/%q/%q", snap.Name, snap.TopLevel, snap.Policy)
	}

	wantComponents := []Component{
		{Name: "P", Parents: []string{}, Children: []string{"A", "B"}, ErrorModes: []string{"PErr"}, PropagationPorts: []string{}},
		{Name: "A", Parents: []string{"P"}, Children: []string{}, ErrorModes: []string{"AErr"}, PropagationPorts: []string{"AFail->PExt@P"}},
		{Name: "B", Parents: []string{"P"}, Children: []string{}, ErrorModes: []string{}, PropagationPorts: []string{}},
	}
	if !reflect.DeepEqual(snap.Components, wantComponents) {
		t.Errorf("Components = %+v, want %+v", snap.Components, wantComponents)
	}

	wantComposition := []CompositionPort{{Parent: "P", Child: "A"}, {Parent: "P", Child: "B"}}
	if !reflect.DeepEqual(snap.CompositionPorts, wantComposition) {
		t.Errorf("CompositionPorts = %+v, want %+v", snap.CompositionPorts, wantComposition)
	}

	wantFaults := []FaultMode{
		{Name: "AInt", Kind: "internal", Distribution: "exp(0.5)"},
		{Name: "PExt", Kind: "external"},
	}
	if !reflect.DeepEqual(snap.FaultModes, wantFaults) {
		t.Errorf("FaultModes = %+v, want %+v", snap.FaultModes, wantFaults)
	}

	wantErrors := []ErrorMode{
		{Name: "AErr", Component: "A", Inputs: []string{"AInt"}, Condition: "AInt", Latency: "dirac(2)", Failure: "AFail"},
		{Name: "PErr", Component: "P", Inputs: []string{"PExt"}, Condition: "PExt", Latency: "dirac(0)", Failure: "PFail"},
	}
	if !reflect.DeepEqual(snap.ErrorModes, wantErrors) {
		t.Errorf("ErrorModes = %+v, want %+v", snap.ErrorModes, wantErrors)
	}

	wantFailures := []FailureMode{{Name: "AFail", Producer: "AErr"}, {Name: "PFail", Producer: "PErr"}}
	if !reflect.DeepEqual(snap.FailureModes, wantFailures) {
		t.Errorf("FailureModes = %+v, want %+v", snap.FailureModes, wantFailures)
	}

	wantPorts := []PropagationPort{{Name: "AFail->PExt@P", Owner: "A", Source: "AFail", Target: "PExt", TargetComponent: "P"}}
	if !reflect.DeepEqual(snap.PropagationPorts, wantPorts) {
		t.Errorf("PropagationPorts = %+v, want %+v", snap.PropagationPorts, wantPorts)
	}
}

func TestFromSystemWithoutTopLevel(t *testing.T) {
	sys := model.NewSystem("loose")
	if err := sys.AddComponent(model.NewComponent("A")); err != nil {
		t.Fatal(err)
	}
	snap := FromSystem(sys)
	if snap.TopLevel != "" {
		t.Errorf("TopLevel = %q, want empty", snap.TopLevel)
	}
	if len(snap.Components) != 1 || len(snap.FaultModes) != 0 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestLookups(t *testing.T) {
	snap := FromSystem(buildPlant(t))

	if c, ok := snap.Component("A"); !ok || c.Name != "A" {
		t.Errorf("Component(A) = %+v, %v", c, ok)
	}
	if _, ok := snap.Component("Z"); ok {
		t.Error("Component(Z) found")
	}
	if em, ok := snap.ErrorMode("PErr"); !ok || em.Component != "P" {
		t.Errorf("ErrorMode(PErr) = %+v, %v", em, ok)
	}

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"error modes of A", len(snap.ErrorModesOf("A")), 1},
		{"error modes of B", len(snap.ErrorModesOf("B")), 0},
		{"all error modes", len(snap.ErrorModesOf("")), 2},
		{"internal faults", len(snap.FaultModesOfKind("internal")), 1},
		{"external faults", len(snap.FaultModesOfKind("external")), 1},
		{"all faults", len(snap.FaultModesOfKind("")), 2},
		{"ports of A", len(snap.PortsOf("A")), 1},
		{"ports of P", len(snap.PortsOf("P")), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}
