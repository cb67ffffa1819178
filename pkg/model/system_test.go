package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dd0wney/faultflow/pkg/logging"
)

func names(cs []*Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name()
	}
	return out
}

func equalNames(got []*Component, want ...string) bool {
	g := names(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

// tree builds P{A, B}, A{A1, A2}.
func tree(t *testing.T) (*System, map[string]*Component) {
	t.Helper()
	cs := map[string]*Component{}
	for _, n := range []string{"P", "A", "B", "A1", "A2"} {
		cs[n] = NewComponent(n)
	}
	sys := NewSystem("test")
	if err := sys.AddComponent(cs["P"], cs["A"], cs["B"]); err != nil {
		t.Fatal(err)
	}
	if err := sys.AddComponent(cs["A"], cs["A1"], cs["A2"]); err != nil {
		t.Fatal(err)
	}
	if err := sys.SetTopLevelComponent(cs["P"]); err != nil {
		t.Fatal(err)
	}
	return sys, cs
}

func TestSystem_AddComponent(t *testing.T) {
	sys, cs := tree(t)

	if !equalNames(sys.Components(), "P", "A", "B", "A1", "A2") {
		t.Errorf("Components() = %v", names(sys.Components()))
	}
	if !equalNames(cs["P"].Children(), "A", "B") {
		t.Errorf("P children = %v", names(cs["P"].Children()))
	}
	if len(sys.CompositionPorts()) != 4 {
		t.Errorf("CompositionPorts() = %v", sys.CompositionPorts())
	}
	if got, err := sys.Component("A2"); err != nil || got != cs["A2"] {
		t.Errorf("Component(A2) = %v, %v", got, err)
	}
	if _, err := sys.Component("Z"); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("Component(Z) = %v", err)
	}
	if sys.TopLevelComponent() != cs["P"] {
		t.Error("top-level not set")
	}
}

func TestSystem_AddComponentErrors(t *testing.T) {
	tests := []struct {
		name    string
		run     func(sys *System, cs map[string]*Component) error
		wantErr error
	}{
		{"self containment", func(sys *System, cs map[string]*Component) error {
			return sys.AddComponent(cs["B"], cs["B"])
		}, ErrCycle},
		{"back edge", func(sys *System, cs map[string]*Component) error {
			return sys.AddComponent(cs["A1"], cs["P"])
		}, ErrCycle},
		{"duplicate child", func(sys *System, cs map[string]*Component) error {
			return sys.AddComponent(cs["P"], cs["A"])
		}, ErrDuplicateChild},
		{"child repeated in one call", func(sys *System, cs map[string]*Component) error {
			c := NewComponent("C")
			return sys.AddComponent(cs["B"], c, c)
		}, ErrDuplicateChild},
		{"duplicate name", func(sys *System, cs map[string]*Component) error {
			return sys.AddComponent(cs["B"], NewComponent("A1"))
		}, ErrDuplicateName},
		{"duplicate name in one call", func(sys *System, cs map[string]*Component) error {
			return sys.AddComponent(cs["B"], NewComponent("X"), NewComponent("X"))
		}, ErrDuplicateName},
		{"empty name", func(sys *System, cs map[string]*Component) error {
			return sys.AddComponent(cs["B"], NewComponent(""))
		}, ErrInvalidName},
		{"nil parent", func(sys *System, cs map[string]*Component) error {
			return sys.AddComponent(nil)
		}, ErrInvalidName},
		{"other system", func(sys *System, cs map[string]*Component) error {
			other := NewSystem("other")
			c := NewComponent("Foreign")
			if err := other.AddComponent(c); err != nil {
				return err
			}
			return sys.AddComponent(cs["B"], c)
		}, ErrAlreadyAttached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, cs := tree(t)
			before := len(sys.Components())
			beforePorts := len(sys.CompositionPorts())

			err := tt.run(sys, cs)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if len(sys.Components()) != before || len(sys.CompositionPorts()) != beforePorts {
				t.Error("failed call must leave the system unchanged")
			}
		})
	}
}

func TestSystem_FailedCallIsAtomic(t *testing.T) {
	sys, cs := tree(t)
	fresh := NewComponent("Fresh")

	// Fresh is valid, P would close a cycle; neither may be applied.
	err := sys.AddComponent(cs["A2"], fresh, cs["P"])
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("error = %v, want ErrCycle", err)
	}
	if _, err := sys.Component("Fresh"); err == nil {
		t.Error("Fresh must not be registered after a failed call")
	}
	if len(cs["A2"].Children()) != 0 {
		t.Error("A2 must not gain children")
	}
}

func TestSystem_SetTopLevelUnknown(t *testing.T) {
	sys := NewSystem("s")
	if err := sys.SetTopLevelComponent(NewComponent("X")); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("error = %v, want ErrUnknownComponent", err)
	}
	if err := sys.SetTopLevelComponent(nil); !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("error = %v, want ErrUnknownComponent", err)
	}
}

func TestSystem_Hierarchy(t *testing.T) {
	sys, cs := tree(t)

	if !equalNames(sys.Ancestors(cs["A1"]), "A", "P") {
		t.Errorf("Ancestors(A1) = %v", names(sys.Ancestors(cs["A1"])))
	}
	if !equalNames(sys.Parents(cs["A"]), "P") {
		t.Errorf("Parents(A) = %v", names(sys.Parents(cs["A"])))
	}
	if !equalNames(sys.Descendants(cs["P"]), "A", "A1", "A2", "B") {
		t.Errorf("Descendants(P) = %v", names(sys.Descendants(cs["P"])))
	}
	if !sys.IsAncestor(cs["P"], cs["A2"]) || sys.IsAncestor(cs["B"], cs["A2"]) || sys.IsAncestor(cs["A"], cs["A"]) {
		t.Error("IsAncestor() wrong")
	}

	var visited []string
	var depths []int
	sys.Walk(func(c *Component, depth int) bool {
		visited = append(visited, c.Name())
		depths = append(depths, depth)
		return true
	})
	want := []string{"P", "A", "A1", "A2", "B"}
	wantDepth := []int{0, 1, 2, 2, 1}
	for i := range want {
		if i >= len(visited) || visited[i] != want[i] || depths[i] != wantDepth[i] {
			t.Fatalf("Walk() = %v %v, want %v %v", visited, depths, want, wantDepth)
		}
	}

	var stopped []string
	sys.Walk(func(c *Component, _ int) bool {
		stopped = append(stopped, c.Name())
		return c.Name() != "A1"
	})
	if len(stopped) != 3 {
		t.Errorf("Walk() did not stop: %v", stopped)
	}
}

func TestSystem_HierarchyNilComponent(t *testing.T) {
	sys, cs := tree(t)

	if got := sys.Descendants(nil); got != nil {
		t.Errorf("Descendants(nil) = %v, want nil", names(got))
	}
	if got := sys.Ancestors(nil); got != nil {
		t.Errorf("Ancestors(nil) = %v, want nil", names(got))
	}
	if sys.IsAncestor(nil, cs["A"]) || sys.IsAncestor(cs["P"], nil) || sys.IsAncestor(nil, nil) {
		t.Error("IsAncestor() with nil = true, want false")
	}
}

func TestSystem_SharedChild(t *testing.T) {
	sys, cs := tree(t)
	bus := NewComponent("Bus")
	if err := sys.AddComponent(cs["A"], bus); err != nil {
		t.Fatal(err)
	}
	if err := sys.AddComponent(cs["B"], bus); err != nil {
		t.Fatalf("a component may have several parents: %v", err)
	}
	if !equalNames(sys.Parents(bus), "A", "B") {
		t.Errorf("Parents(Bus) = %v", names(sys.Parents(bus)))
	}

	count := 0
	sys.Walk(func(c *Component, _ int) bool {
		if c == bus {
			count++
		}
		return true
	})
	if count != 1 {
		t.Errorf("Bus visited %d times", count)
	}
}

func TestSystem_Options(t *testing.T) {
	id := uuid.New()
	rec := logging.NewRecorder(logging.DebugLevel)
	sys := NewSystem("opts", WithID(id), WithLogger(rec), WithTopologyPolicy(PolicyConnected))

	if sys.ID() != id || sys.Policy() != PolicyConnected || sys.Name() != "opts" {
		t.Errorf("options not applied: %s %s", sys.ID(), sys.Policy())
	}

	if err := sys.AddComponent(NewComponent("Root"), NewComponent("Leaf")); err != nil {
		t.Fatal(err)
	}
	records := rec.AtLevel(logging.DebugLevel)
	if len(records) != 3 {
		t.Fatalf("got %d debug records, want 3: %+v", len(records), records)
	}
	if records[0].Message != "component added" {
		t.Errorf("first record = %q", records[0].Message)
	}

	if NewSystem("a").ID() == NewSystem("b").ID() {
		t.Error("system IDs should be unique")
	}
}

func TestSystem_Sealed(t *testing.T) {
	sys, cs := tree(t)
	f := mustExternal(t, "E1")
	sys.Seal()

	checks := map[string]error{
		"AddComponent":  sys.AddComponent(cs["B"], NewComponent("N")),
		"SetTopLevel":   sys.SetTopLevelComponent(cs["A"]),
		"RegisterFault": sys.RegisterFault(f),
		"AddErrorMode":  sys.AddErrorMode(cs["A"], &ErrorMode{name: "x"}),
	}
	_, err := sys.AddPropagationPort(cs["A"], nil, f, cs["P"])
	checks["AddPropagationPort"] = err

	for name, err := range checks {
		if !errors.Is(err, ErrSealed) {
			t.Errorf("%s after Seal() = %v, want ErrSealed", name, err)
		}
	}
	if !sys.Sealed() {
		t.Error("Sealed() = false")
	}
}
