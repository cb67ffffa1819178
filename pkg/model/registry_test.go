package model

import (
	"errors"
	"testing"

	"github.com/dd0wney/faultflow/pkg/distribution"
)

func mustInternal(t *testing.T, name, dist string) *FaultMode {
	t.Helper()
	f, err := NewInternalFault(name, dist)
	if err != nil {
		t.Fatalf("NewInternalFault(%s) error = %v", name, err)
	}
	return f
}

func mustExternal(t *testing.T, name string) *FaultMode {
	t.Helper()
	f, err := NewExternalFault(name)
	if err != nil {
		t.Fatalf("NewExternalFault(%s) error = %v", name, err)
	}
	return f
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	f1 := mustInternal(t, "F1", "exp(0.5)")

	if err := r.RegisterFault(f1); err != nil {
		t.Fatalf("RegisterFault() error = %v", err)
	}
	if err := r.RegisterFault(f1); err != nil {
		t.Errorf("re-registering the same object should be a no-op, got %v", err)
	}

	other := mustInternal(t, "F1", "exp(1)")
	err := r.RegisterFault(other)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("RegisterFault(other F1) = %v, want ErrDuplicateName", err)
	}
	if !IsDuplicate(err) {
		t.Error("IsDuplicate() = false")
	}

	got, err := r.Fault("F1")
	if err != nil || got != f1 {
		t.Errorf("Fault(F1) = %v, %v; want the first registration", got, err)
	}
	if n := len(r.FaultModes()); n != 1 {
		t.Errorf("FaultModes() has %d entries, want 1", n)
	}
}

func TestRegistry_UnknownNames(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Fault("nope"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Fault() = %v, want ErrUnknownMode", err)
	}
	if _, err := r.Error("nope"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Error() = %v, want ErrUnknownMode", err)
	}
	if _, err := r.Failure("nope"); !IsNotFound(err) {
		t.Errorf("Failure() = %v, want not found", err)
	}

	var me *ModelError
	_, err := r.Resolve("ghost")
	if !errors.As(err, &me) || me.Name != "ghost" || me.Entity != "fault mode" {
		t.Errorf("Resolve() error = %#v", err)
	}
}

func TestRegistry_NamespacesAreSeparate(t *testing.T) {
	sys := NewSystem("az")
	az := NewComponent("AZ")
	if err := sys.AddComponent(az); err != nil {
		t.Fatal(err)
	}

	// The reference model names both an external fault and an error mode AZOR2.
	azor2 := mustExternal(t, "AZOR2")
	cf := mustExternal(t, "CAF1")
	for _, f := range []*FaultMode{azor2, cf} {
		if err := sys.RegisterFault(f); err != nil {
			t.Fatal(err)
		}
	}

	em, err := NewErrorMode(sys.Registry(), ErrorModeSpec{
		Name:      "AZOR2",
		Inputs:    []string{"CAF1", "AZOR2"},
		Condition: "CAF1 || AZOR2",
		Latency:   "dirac(0)",
		Failure:   "AZFailure2",
	})
	if err != nil {
		t.Fatalf("NewErrorMode() error = %v", err)
	}
	if err := sys.AddErrorMode(az, em); err != nil {
		t.Fatalf("AddErrorMode() error = %v", err)
	}

	f, _ := sys.Registry().Fault("AZOR2")
	e, _ := sys.Registry().Error("AZOR2")
	if f != azor2 || e != em {
		t.Error("fault and error namespaces must not collide")
	}
}

func TestRegistry_OrderedEnumeration(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"C", "A", "B"} {
		if err := r.RegisterFault(mustExternal(t, name)); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for _, f := range r.FaultModes() {
		got = append(got, f.Name())
	}
	if len(got) != 3 || got[0] != "C" || got[1] != "A" || got[2] != "B" {
		t.Errorf("FaultModes() = %v, want registration order", got)
	}
}

func TestNewFaultMode(t *testing.T) {
	tests := []struct {
		name    string
		spec    FaultModeSpec
		wantErr error
	}{
		{"internal", FaultModeSpec{Name: "F1", Kind: Internal, Distribution: "exp(0.000464826)"}, nil},
		{"external", FaultModeSpec{Name: "ITF1", Kind: External}, nil},
		{"missing name", FaultModeSpec{Kind: External}, ErrInvalidFaultMode},
		{"bad name", FaultModeSpec{Name: "F 1", Kind: External}, ErrInvalidFaultMode},
		{"external with distribution", FaultModeSpec{Name: "X", Kind: External, Distribution: "exp(1)"}, ErrInvalidFaultMode},
		{"internal without distribution", FaultModeSpec{Name: "X", Kind: Internal}, distribution.ErrFormat},
		{"internal zero rate", FaultModeSpec{Name: "X", Kind: Internal, Distribution: "exp(0)"}, distribution.ErrFormat},
		{"unknown kind", FaultModeSpec{Name: "X", Kind: FaultKind(9)}, ErrInvalidFaultMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFaultMode(tt.spec)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewFaultMode() error = %v", err)
				}
				if f.Name() != tt.spec.Name || f.Kind() != tt.spec.Kind {
					t.Errorf("got %s/%v", f.Name(), f.Kind())
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFaultMode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFaultMode_Distribution(t *testing.T) {
	f := mustInternal(t, "F4", "exp(0.00115)")
	if rate, ok := f.Distribution().Rate(); !ok || rate != 0.00115 {
		t.Errorf("Rate() = %v, %v", rate, ok)
	}
	if !mustExternal(t, "E").Distribution().IsZero() {
		t.Error("external fault should have no distribution")
	}
}
