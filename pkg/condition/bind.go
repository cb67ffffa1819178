package condition

// Resolver maps an identifier to the object it names. The model registry
// implements Resolver for fault modes.
type Resolver[T comparable] interface {
	Resolve(name string) (T, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc[T comparable] func(name string) (T, error)

func (f ResolverFunc[T]) Resolve(name string) (T, error) { return f(name) }

// Bound is a parsed condition whose identifiers are bound to objects.
// It holds no mutable state; Evaluate is a pure function of its argument.
type Bound[T comparable] struct {
	source string
	expr   Expr
	names  []string
	refs   map[string]T
}

// Bind resolves every identifier of expr. All unresolved names are reported
// together in one *UndefinedReferenceError.
func Bind[T comparable](source string, expr Expr, r Resolver[T]) (*Bound[T], error) {
	names := Identifiers(expr)
	refs := make(map[string]T, len(names))
	var missing []string
	var cause error
	for _, name := range names {
		v, err := r.Resolve(name)
		if err != nil {
			missing = append(missing, name)
			if cause == nil {
				cause = err
			}
			continue
		}
		refs[name] = v
	}
	if len(missing) > 0 {
		return nil, &UndefinedReferenceError{Condition: source, Names: missing, Cause: cause}
	}
	return &Bound[T]{source: source, expr: expr, names: names, refs: refs}, nil
}

// Compile parses source with the default grammar and binds it.
func Compile[T comparable](source string, r Resolver[T]) (*Bound[T], error) {
	return CompileWith(source, ParseOptions{}, r)
}

// CompileWith parses source with opts and binds it.
func CompileWith[T comparable](source string, opts ParseOptions, r Resolver[T]) (*Bound[T], error) {
	expr, err := ParseWith(source, opts)
	if err != nil {
		return nil, err
	}
	return Bind(source, expr, r)
}

// Evaluate reports whether the condition holds when exactly the objects for
// which active returns true are active. Evaluation short-circuits.
func (b *Bound[T]) Evaluate(active func(T) bool) bool {
	return b.expr.eval(func(name string) bool {
		return active(b.refs[name])
	})
}

// Source returns the condition text as written.
func (b *Bound[T]) Source() string { return b.source }

// Expr returns the parsed tree.
func (b *Bound[T]) Expr() Expr { return b.expr }

// String returns the canonical, fully parenthesised form.
func (b *Bound[T]) String() string { return b.expr.String() }

// Identifiers returns the referenced names in source order.
func (b *Bound[T]) Identifiers() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Ref returns the object bound to name.
func (b *Bound[T]) Ref(name string) (T, bool) {
	v, ok := b.refs[name]
	return v, ok
}

// Refs returns the bound objects in the order of Identifiers.
func (b *Bound[T]) Refs() []T {
	out := make([]T, len(b.names))
	for i, n := range b.names {
		out[i] = b.refs[n]
	}
	return out
}
