// Package distribution parses and validates the textual probability-law
// specifications attached to fault and error modes, such as "exp(0.0012)"
// or "dirac(0)". Sampling is left to the analysis engine; this package only
// checks the format and hands back a typed (kind, params) pair.
package distribution

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Kind names a distribution family as written in a specification.
type Kind string

const (
	Exponential Kind = "exp"
	Dirac       Kind = "dirac"
)

// ErrFormat is matched by every *FormatError.
var ErrFormat = errors.New("malformed distribution specification")

// FormatError reports a specification that cannot be accepted.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("distribution %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Spec is a parsed distribution specification.
type Spec struct {
	Kind   Kind
	Params []float64
}

// String renders the canonical form, e.g. "exp(0.000464826)".
func (s Spec) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return string(s.Kind) + "(" + strings.Join(parts, ", ") + ")"
}

// IsZero reports whether s is the zero Spec.
func (s Spec) IsZero() bool { return s.Kind == "" && len(s.Params) == 0 }

// Rate returns the rate of an exponential spec.
func (s Spec) Rate() (float64, bool) {
	if s.Kind != Exponential || len(s.Params) != 1 {
		return 0, false
	}
	return s.Params[0], true
}

// Mean returns the expected value for the built-in kinds.
func (s Spec) Mean() (float64, bool) {
	switch s.Kind {
	case Exponential:
		if r, ok := s.Rate(); ok && r > 0 {
			return 1 / r, true
		}
	case Dirac:
		if len(s.Params) == 1 {
			return s.Params[0], true
		}
	}
	return 0, false
}

// CheckFunc validates the numeric parameters of one kind.
type CheckFunc func(params []float64) error

type kindRule struct {
	arity int
	check CheckFunc
}

// Parser recognises a set of kinds. The zero value knows no kinds; use
// NewParser for one preloaded with exp and dirac.
type Parser struct {
	mu    sync.RWMutex
	kinds map[Kind]kindRule
}

// NewParser returns a parser that accepts exp(rate>0) and dirac(t>=0).
func NewParser() *Parser {
	p := &Parser{}
	p.Register(Exponential, 1, func(params []float64) error {
		if params[0] <= 0 {
			return errors.New("rate must be > 0")
		}
		return nil
	})
	p.Register(Dirac, 1, func(params []float64) error {
		if params[0] < 0 {
			return errors.New("time must be >= 0")
		}
		return nil
	})
	return p
}

// Register adds or replaces a kind. arity < 0 accepts any parameter count.
// A nil check accepts any finite values.
func (p *Parser) Register(kind Kind, arity int, check CheckFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kinds == nil {
		p.kinds = make(map[Kind]kindRule)
	}
	p.kinds[kind] = kindRule{arity: arity, check: check}
}

// Kinds lists the registered kinds.
func (p *Parser) Kinds() []Kind {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Kind, 0, len(p.kinds))
	for k := range p.kinds {
		out = append(out, k)
	}
	return out
}

// Parse reads "kind(p1, p2, ...)". Whitespace around tokens is ignored and
// the kind is matched case-insensitively.
func (p *Parser) Parse(input string) (Spec, error) {
	fail := func(format string, args ...any) (Spec, error) {
		return Spec{}, &FormatError{Input: input, Reason: fmt.Sprintf(format, args...)}
	}

	s := strings.TrimSpace(input)
	if s == "" {
		return fail("empty specification")
	}
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return fail("expected kind(params)")
	}
	kind := Kind(strings.ToLower(strings.TrimSpace(s[:open])))
	body := strings.TrimSpace(s[open+1 : len(s)-1])
	if strings.ContainsAny(body, "()") {
		return fail("nested parentheses are not allowed")
	}

	p.mu.RLock()
	rule, ok := p.kinds[kind]
	p.mu.RUnlock()
	if !ok {
		return fail("unknown kind %q", string(kind))
	}

	var params []float64
	if body != "" {
		for _, raw := range strings.Split(body, ",") {
			raw = strings.TrimSpace(raw)
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fail("invalid number %q", raw)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fail("parameter %q is not finite", raw)
			}
			params = append(params, v)
		}
	}
	if rule.arity >= 0 && len(params) != rule.arity {
		return fail("%s takes %d parameter(s), got %d", kind, rule.arity, len(params))
	}
	if rule.check != nil {
		if err := rule.check(params); err != nil {
			return fail("%v", err)
		}
	}
	return Spec{Kind: kind, Params: params}, nil
}

var defaultParser = NewParser()

// Parse parses input with the built-in kinds.
func Parse(input string) (Spec, error) { return defaultParser.Parse(input) }

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(input string) Spec {
	s, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return s
}

// Exp builds an exponential spec with the given rate.
func Exp(rate float64) Spec { return Spec{Kind: Exponential, Params: []float64{rate}} }

// Deterministic builds a dirac spec at t.
func Deterministic(t float64) Spec { return Spec{Kind: Dirac, Params: []float64{t}} }
