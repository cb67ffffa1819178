package algorithms

import "errors"

// ErrNotDAG is returned by TopologicalSort when the graph has a cycle.
var ErrNotDAG = errors.New("graph contains a cycle")

// TopologicalSort orders nodes with Kahn's algorithm so that every edge u->v
// has u before v. Ties keep the order of Nodes().
func TopologicalSort[N comparable](g Graph[N]) ([]N, error) {
	nodes := g.Nodes()
	inDegree := make(map[N]int, len(nodes))
	for _, n := range nodes {
		for _, m := range g.Successors(n) {
			inDegree[m]++
		}
	}

	queue := make([]N, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	sorted := make([]N, 0, len(nodes))
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sorted = append(sorted, cur)
		for _, m := range g.Successors(cur) {
			inDegree[m]--
			if inDegree[m] == 0 {
				queue = append(queue, m)
			}
		}
	}

	if len(sorted) != len(nodes) {
		return nil, ErrNotDAG
	}
	return sorted, nil
}

// Reachable returns every node reachable from start, start first, in
// depth-first order. On trees the order is pre-order.
func Reachable[N comparable](g Graph[N], start N) []N {
	seen := map[N]bool{start: true}
	order := []N{start}
	stack := []N{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		succ := g.Successors(n)
		// push in reverse so the first successor is visited first
		for i := len(succ) - 1; i >= 0; i-- {
			m := succ[i]
			if !seen[m] {
				seen[m] = true
				stack = append(stack, m)
			}
		}
		if n != start {
			order = append(order, n)
		}
	}
	return order
}

// PathExists reports whether to is reachable from from.
func PathExists[N comparable](g Graph[N], from, to N) bool {
	if from == to {
		return true
	}
	seen := map[N]bool{from: true}
	queue := []N{from}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, m := range g.Successors(n) {
			if m == to {
				return true
			}
			if !seen[m] {
				seen[m] = true
				queue = append(queue, m)
			}
		}
	}
	return false
}

// WeaklyConnected reports whether a and b lie in the same weakly connected
// component of g.
func WeaklyConnected[N comparable](g Graph[N], a, b N) bool {
	if a == b {
		return true
	}
	undirected := NewAdjacency[N]()
	for _, n := range g.Nodes() {
		undirected.AddNode(n)
		for _, m := range g.Successors(n) {
			undirected.AddEdge(n, m)
			undirected.AddEdge(m, n)
		}
	}
	return PathExists[N](undirected, a, b)
}
