package condition

// Expr is a node of a parsed condition.
type Expr interface {
	// String renders the node fully parenthesised, so the grouping the
	// parser chose is visible.
	String() string
	eval(lookup func(name string) bool) bool
	walk(fn func(*Ident))
}

// Ident references a fault mode by name.
type Ident struct {
	Name string
	Pos  int
}

// And is the conjunction of two sub-expressions.
type And struct {
	Left, Right Expr
}

// Or is the disjunction of two sub-expressions.
type Or struct {
	Left, Right Expr
}

// Not negates a sub-expression. Only produced when ParseOptions.AllowNot is set.
type Not struct {
	Operand Expr
}

func (i *Ident) String() string { return i.Name }
func (a *And) String() string   { return "(" + a.Left.String() + " && " + a.Right.String() + ")" }
func (o *Or) String() string    { return "(" + o.Left.String() + " || " + o.Right.String() + ")" }
func (n *Not) String() string   { return "!" + n.Operand.String() }

func (i *Ident) eval(lookup func(string) bool) bool { return lookup(i.Name) }
func (a *And) eval(lookup func(string) bool) bool {
	return a.Left.eval(lookup) && a.Right.eval(lookup)
}
func (o *Or) eval(lookup func(string) bool) bool {
	return o.Left.eval(lookup) || o.Right.eval(lookup)
}
func (n *Not) eval(lookup func(string) bool) bool { return !n.Operand.eval(lookup) }

func (i *Ident) walk(fn func(*Ident)) { fn(i) }
func (a *And) walk(fn func(*Ident))   { a.Left.walk(fn); a.Right.walk(fn) }
func (o *Or) walk(fn func(*Ident))    { o.Left.walk(fn); o.Right.walk(fn) }
func (n *Not) walk(fn func(*Ident))   { n.Operand.walk(fn) }

// Identifiers returns the distinct names referenced by e in source order.
func Identifiers(e Expr) []string {
	seen := make(map[string]bool)
	var names []string
	e.walk(func(id *Ident) {
		if !seen[id.Name] {
			seen[id.Name] = true
			names = append(names, id.Name)
		}
	})
	return names
}

// EvaluateNames evaluates e with an identifier true iff active reports it.
// It needs no binding and is mostly useful for tests and tooling.
func EvaluateNames(e Expr, active func(name string) bool) bool {
	return e.eval(active)
}
