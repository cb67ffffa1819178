package distribution

import (
	"errors"
	"math"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input  string
		kind   Kind
		params []float64
		canon  string
	}{
		{"exp(0.000464826)", Exponential, []float64{0.000464826}, "exp(0.000464826)"},
		{"  EXP( 2 ) ", Exponential, []float64{2}, "exp(2)"},
		{"exp(1e-3)", Exponential, []float64{0.001}, "exp(0.001)"},
		{"dirac(0)", Dirac, []float64{0}, "dirac(0)"},
		{"dirac(12.5)", Dirac, []float64{12.5}, "dirac(12.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if spec.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", spec.Kind, tt.kind)
			}
			if len(spec.Params) != len(tt.params) {
				t.Fatalf("params = %v, want %v", spec.Params, tt.params)
			}
			for i := range tt.params {
				if spec.Params[i] != tt.params[i] {
					t.Errorf("param %d = %v, want %v", i, spec.Params[i], tt.params[i])
				}
			}
			if got := spec.String(); got != tt.canon {
				t.Errorf("String() = %q, want %q", got, tt.canon)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"exp",
		"exp()",
		"exp(0)",
		"exp(-1)",
		"exp(abc)",
		"exp(1, 2)",
		"dirac(-0.5)",
		"weibull(1, 2)",
		"(3)",
		"exp(1",
		"exp((1))",
		"exp(NaN)",
		"exp(Inf)",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", in)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FormatError", err)
			}
			if fe.Input != in {
				t.Errorf("FormatError.Input = %q, want %q", fe.Input, in)
			}
			if !errors.Is(err, ErrFormat) {
				t.Error("errors.Is(err, ErrFormat) = false")
			}
		})
	}
}

func TestParser_Register(t *testing.T) {
	p := NewParser()
	p.Register("uniform", 2, func(params []float64) error {
		if params[0] >= params[1] {
			return errors.New("lower bound must be below upper bound")
		}
		return nil
	})

	spec, err := p.Parse("uniform(1, 3)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if spec.String() != "uniform(1, 3)" {
		t.Errorf("String() = %q", spec.String())
	}
	if _, err := p.Parse("uniform(3, 1)"); err == nil {
		t.Error("expected bound check to fail")
	}
	if _, err := Parse("uniform(1, 3)"); err == nil {
		t.Error("package-level parser must not see kinds registered elsewhere")
	}
	if len(p.Kinds()) != 3 {
		t.Errorf("Kinds() = %v, want 3 kinds", p.Kinds())
	}
}

func TestSpec_RateAndMean(t *testing.T) {
	e := Exp(0.5)
	if r, ok := e.Rate(); !ok || r != 0.5 {
		t.Errorf("Rate() = %v, %v", r, ok)
	}
	if m, ok := e.Mean(); !ok || m != 2 {
		t.Errorf("Mean() = %v, %v", m, ok)
	}
	d := Deterministic(3)
	if _, ok := d.Rate(); ok {
		t.Error("dirac has no rate")
	}
	if m, ok := d.Mean(); !ok || m != 3 {
		t.Errorf("dirac Mean() = %v, %v", m, ok)
	}
	if !(Spec{}).IsZero() || e.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on bad input")
		}
	}()
	MustParse("gamma(1)")
}

func TestEstimateExponential(t *testing.T) {
	spec, err := EstimateExponential([]float64{100, 300, math.NaN(), -1, 200})
	if err != nil {
		t.Fatalf("EstimateExponential: %v", err)
	}
	rate, _ := spec.Rate()
	if want := 3.0 / 600.0; math.Abs(rate-want) > 1e-12 {
		t.Errorf("rate = %v, want %v", rate, want)
	}

	if _, err := EstimateExponential([]float64{math.NaN()}); !errors.Is(err, ErrNoObservations) {
		t.Errorf("expected ErrNoObservations, got %v", err)
	}
	if _, err := EstimateExponential([]float64{0, 0}); !errors.Is(err, ErrNoObservations) {
		t.Errorf("expected ErrNoObservations for zero total, got %v", err)
	}
}
