// Package algorithms holds the graph algorithms used on containment and
// propagation graphs. Every function works on any type satisfying Graph, so
// the same code checks component containment and fault propagation.
package algorithms

// Graph is a finite directed graph with comparable node handles.
// Nodes must return every node exactly once in a stable order; results of
// the algorithms follow that order.
type Graph[N comparable] interface {
	Nodes() []N
	Successors(n N) []N
}

// Adjacency is a simple Graph backed by an insertion-ordered adjacency list.
type Adjacency[N comparable] struct {
	order []N
	succ  map[N][]N
}

// NewAdjacency creates an empty adjacency graph.
func NewAdjacency[N comparable]() *Adjacency[N] {
	return &Adjacency[N]{succ: make(map[N][]N)}
}

// AddNode adds n if it is not already present.
func (a *Adjacency[N]) AddNode(n N) {
	if _, ok := a.succ[n]; ok {
		return
	}
	a.succ[n] = nil
	a.order = append(a.order, n)
}

// AddEdge adds from->to, creating both nodes as needed. Parallel edges are
// kept; the algorithms tolerate them.
func (a *Adjacency[N]) AddEdge(from, to N) {
	a.AddNode(from)
	a.AddNode(to)
	a.succ[from] = append(a.succ[from], to)
}

func (a *Adjacency[N]) Nodes() []N { return a.order }

func (a *Adjacency[N]) Successors(n N) []N { return a.succ[n] }

// Reverse returns a new graph with every edge flipped.
func Reverse[N comparable](g Graph[N]) *Adjacency[N] {
	r := NewAdjacency[N]()
	for _, n := range g.Nodes() {
		r.AddNode(n)
	}
	for _, n := range g.Nodes() {
		for _, m := range g.Successors(n) {
			r.AddEdge(m, n)
		}
	}
	return r
}
