package model

import "github.com/dd0wney/faultflow/pkg/algorithms"

// NodeKind tags a node of the propagation graph.
type NodeKind string

const (
	FaultNode   NodeKind = "fault"
	ErrorNode   NodeKind = "error"
	FailureNode NodeKind = "failure"
)

// PropagationNode identifies a mode in the propagation graph. The kind keeps
// the three namespaces apart.
type PropagationNode struct {
	Kind NodeKind
	Name string
}

func (n PropagationNode) String() string { return string(n.Kind) + ":" + n.Name }

// PropagationGraph builds the directed graph fault -> error mode (for every
// condition reference) -> failure -> fault (for every propagation port) over
// the attached error modes.
func (s *System) PropagationGraph() *algorithms.Adjacency[PropagationNode] {
	g := algorithms.NewAdjacency[PropagationNode]()
	for _, f := range s.registry.FaultModes() {
		g.AddNode(PropagationNode{FaultNode, f.name})
	}
	for _, c := range s.components {
		for _, em := range c.errorModes {
			emNode := PropagationNode{ErrorNode, em.name}
			for _, f := range em.cond.Refs() {
				g.AddEdge(PropagationNode{FaultNode, f.name}, emNode)
			}
			g.AddEdge(emNode, PropagationNode{FailureNode, em.failure.name})
		}
	}
	for _, p := range s.ports {
		g.AddEdge(PropagationNode{FailureNode, p.source.name}, PropagationNode{FaultNode, p.target.name})
	}
	return g
}

// PropagationPath returns a shortest chain of modes leading from the fault
// called fault to the failure called failure, or nil when the fault cannot
// cause it.
func (s *System) PropagationPath(fault, failure string) []PropagationNode {
	return algorithms.ShortestPath[PropagationNode](s.PropagationGraph(),
		PropagationNode{FaultNode, fault}, PropagationNode{FailureNode, failure})
}
