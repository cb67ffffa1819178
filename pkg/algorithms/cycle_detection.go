package algorithms

// Cycle is a detected cycle listed in traversal order; a self-loop is a
// one-element cycle.
type Cycle[N comparable] []N

const (
	white = iota // unvisited
	gray         // on the current DFS stack
	black        // finished
)

// DetectCycles finds cycles with a three-colour depth-first search. Every
// back edge yields one cycle, so the result is a witness per strongly
// connected tangle rather than an enumeration of all elementary cycles.
func DetectCycles[N comparable](g Graph[N]) []Cycle[N] {
	color := make(map[N]int)
	parent := make(map[N]N)
	var cycles []Cycle[N]

	var visit func(n N)
	visit = func(n N) {
		color[n] = gray
		for _, m := range g.Successors(n) {
			switch {
			case m == n:
				cycles = append(cycles, Cycle[N]{n})
			case color[m] == white:
				parent[m] = n
				visit(m)
			case color[m] == gray:
				cycles = append(cycles, extractCycle(m, n, parent))
			}
		}
		color[n] = black
	}

	for _, n := range g.Nodes() {
		if color[n] == white {
			visit(n)
		}
	}
	return cycles
}

// extractCycle walks parent pointers back from end to start for the back
// edge end->start.
func extractCycle[N comparable](start, end N, parent map[N]N) Cycle[N] {
	path := []N{end}
	for cur := end; cur != start; {
		p, ok := parent[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	// path is end..start; report it start..end
	cycle := make(Cycle[N], len(path))
	for i := range path {
		cycle[i] = path[len(path)-1-i]
	}
	return cycle
}

// HasCycle reports whether g contains any cycle, stopping at the first one.
func HasCycle[N comparable](g Graph[N]) bool {
	color := make(map[N]int)

	var visit func(n N) bool
	visit = func(n N) bool {
		color[n] = gray
		for _, m := range g.Successors(n) {
			if color[m] == gray {
				return true
			}
			if color[m] == white && visit(m) {
				return true
			}
		}
		color[n] = black
		return false
	}

	for _, n := range g.Nodes() {
		if color[n] == white && visit(n) {
			return true
		}
	}
	return false
}
