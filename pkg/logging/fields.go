package logging

import "time"

func String(key, value string) Field         { return Field{Key: key, Value: value} }
func Int(key string, value int) Field        { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field      { return Field{Key: key, Value: value} }
func Any(key string, value any) Field        { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error records err under "error"; a nil error is logged as null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Model-domain helpers.

func System(name string) Field     { return String("system", name) }
func SystemID(id string) Field     { return String("system_id", id) }
func Component(name string) Field  { return String("component", name) }
func Mode(name string) Field       { return String("mode", name) }
func ModeKind(kind string) Field   { return String("mode_kind", kind) }
func Condition(expr string) Field  { return String("condition", expr) }
func Severity(s string) Field      { return String("severity", s) }
func Constraint(name string) Field { return String("constraint", name) }
func Count(n int) Field            { return Int("count", n) }
func Latency(d time.Duration) Field { return Duration("latency", d) }

// Port describes a propagation edge as "source->target@component".
func Port(source, target, component string) Field {
	return String("port", source+"->"+target+"@"+component)
}
