// Package tcu defines the reference model of a train control unit zone: an
// AZ equipment zone made of five subsystems whose failures feed an OR chain
// of zone-level error modes.
package tcu

import (
	"fmt"

	"github.com/dd0wney/faultflow/pkg/builder"
	"github.com/dd0wney/faultflow/pkg/distribution"
	"github.com/dd0wney/faultflow/pkg/model"
)

// SystemName names the reference system.
const SystemName = "TCUSystem_SYS"

// Zone is the top-level component.
const Zone = "AZ"

// subsystem is one child of the zone: two internal faults that must both be
// active to fail it, and the external fault the failure becomes on AZ.
type subsystem struct {
	component string
	faults    [2]string
	rates     [2]string
	failure   string
	zoneFault string
}

var subsystems = []subsystem{
	{"IT", [2]string{"F1", "F2"}, [2]string{"exp(0.000464826)", "exp(0.001050015)"}, "ITFailure", "ITF1"},
	{"CA", [2]string{"F3", "F4"}, [2]string{"exp(0.000788023)", "exp(0.00115)"}, "CAFailure", "CAF1"},
	{"CF", [2]string{"F5", "F6"}, [2]string{"exp(0.00015296)", "exp(0.00029008)"}, "CFFailure", "CFF1"},
	{"TCU", [2]string{"F7", "F8"}, [2]string{"exp(0.00027872)", "exp(0.0000606299)"}, "TCUFailure", "TCUF1"},
	{"GS", [2]string{"F9", "F10"}, [2]string{"exp(0.00012828)", "exp(0.00024449)"}, "GSFailure", "GSF1"},
}

// zoneMode is one link of the AZ OR chain. A non-empty chainFault means the
// failure is fed back into AZ as that external fault.
type zoneMode struct {
	name       string
	inputs     [2]string
	failure    string
	chainFault string
}

var zoneModes = []zoneMode{
	{"AZOR1", [2]string{"ITF1", "AZOR2"}, "AZFailure", ""},
	{"AZOR2", [2]string{"CAF1", "AZOR3"}, "AZFailure2", "AZOR2"},
	{"AZOR3", [2]string{"CFF1", "AZOR4"}, "AZFailure3", "AZOR3"},
	{"AZOR4", [2]string{"TCUF1", "GSF1"}, "AZFailure4", "AZOR4"},
}

// SystemFailure is the failure of the whole zone.
const SystemFailure = "AZFailure"

// NewBuilder returns a builder loaded with the reference model, ready to
// Build.
func NewBuilder(opts ...builder.Option) *builder.Builder {
	return newBuilder(nil, opts...)
}

// NewBuilderFromSamples is NewBuilder with the law of every internal fault
// named in samples replaced by the exponential law estimated from its
// observed times to fault. Faults without samples keep their reference rate.
func NewBuilderFromSamples(samples map[string][]float64, opts ...builder.Option) (*builder.Builder, error) {
	rates := make(map[string]string, len(samples))
	for name, ts := range samples {
		if !isInternalFault(name) {
			return nil, model.NewError("NewBuilderFromSamples").Fault(name).Cause(model.ErrUnknownMode).Err()
		}
		spec, err := distribution.EstimateExponential(ts)
		if err != nil {
			return nil, model.NewError("NewBuilderFromSamples").Fault(name).Cause(err).Err()
		}
		rates[name] = spec.String()
	}
	return newBuilder(rates, opts...), nil
}

func isInternalFault(name string) bool {
	for _, s := range subsystems {
		if s.faults[0] == name || s.faults[1] == name {
			return true
		}
	}
	return false
}

func newBuilder(rates map[string]string, opts ...builder.Option) *builder.Builder {
	children := make([]string, len(subsystems))
	for i, s := range subsystems {
		children[i] = s.component
	}
	b := builder.New(SystemName, opts...).
		Compose(Zone, children...).
		TopLevel(Zone)

	for _, s := range subsystems {
		for i, f := range s.faults {
			rate := s.rates[i]
			if r, ok := rates[f]; ok {
				rate = r
			}
			b.InternalFault(f, rate)
		}
	}
	for _, s := range subsystems {
		b.ExternalFault(s.zoneFault)
	}
	for _, z := range zoneModes {
		if z.chainFault != "" {
			b.ExternalFault(z.chainFault)
		}
	}

	for _, s := range subsystems {
		b.ErrorMode(s.component, model.ErrorModeSpec{
			Name:      s.component + "_prop",
			Inputs:    s.faults[:],
			Condition: fmt.Sprintf("%s && %s", s.faults[0], s.faults[1]),
			Latency:   "dirac(0)",
			Failure:   s.failure,
		})
	}
	for _, z := range zoneModes {
		b.ErrorMode(Zone, model.ErrorModeSpec{
			Name:      z.name,
			Inputs:    z.inputs[:],
			Condition: fmt.Sprintf("%s || %s", z.inputs[0], z.inputs[1]),
			Latency:   "dirac(0)",
			Failure:   z.failure,
		})
	}

	for _, s := range subsystems {
		b.Propagate(s.component, s.failure, s.zoneFault, Zone)
	}
	for i := len(zoneModes) - 1; i >= 0; i-- {
		if z := zoneModes[i]; z.chainFault != "" {
			b.Propagate(Zone, z.failure, z.chainFault, Zone)
		}
	}
	return b
}

// Build builds and validates the reference model.
func Build(opts ...builder.Option) (*model.System, error) {
	sys, _, err := NewBuilder(opts...).Build()
	return sys, err
}

var shared = builder.NewCache(func() (*model.System, error) { return Build() })

// Shared returns the process-wide reference model, built on first use.
func Shared() (*model.System, error) {
	return shared.Get()
}
