package algorithms

// tarjanState holds per-node state during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// StronglyConnectedComponents finds all SCCs using Tarjan's algorithm in O(V+E) time.
// Components come out in reverse topological order of the condensation; the
// members of each follow the order in which the DFS closed them.
func StronglyConnectedComponents[N comparable](g Graph[N]) [][]N {
	state := make(map[N]*tarjanState)
	var stack []N
	indexCounter := 0
	var components [][]N

	var strongconnect func(u N)
	strongconnect = func(u N) {
		state[u] = &tarjanState{index: indexCounter, lowlink: indexCounter, onStack: true}
		indexCounter++
		stack = append(stack, u)

		for _, v := range g.Successors(u) {
			if _, seen := state[v]; !seen {
				strongconnect(v)
				state[u].lowlink = min(state[u].lowlink, state[v].lowlink)
			} else if state[v].onStack {
				state[u].lowlink = min(state[u].lowlink, state[v].index)
			}
		}

		// u is a root: pop its component
		if state[u].lowlink == state[u].index {
			var members []N
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				if w == u {
					break
				}
			}
			components = append(components, members)
		}
	}

	for _, n := range g.Nodes() {
		if _, seen := state[n]; !seen {
			strongconnect(n)
		}
	}
	return components
}

// Loops returns the strongly connected components that contain a cycle:
// those with more than one node, and single nodes with a self-loop.
func Loops[N comparable](g Graph[N]) [][]N {
	var loops [][]N
	for _, scc := range StronglyConnectedComponents(g) {
		if len(scc) > 1 || hasSelfLoop(g, scc[0]) {
			loops = append(loops, scc)
		}
	}
	return loops
}

func hasSelfLoop[N comparable](g Graph[N], n N) bool {
	for _, m := range g.Successors(n) {
		if m == n {
			return true
		}
	}
	return false
}
