package algorithms

import "container/list"

// ShortestPath returns a path with the fewest edges from start to end,
// both included, or nil when end is unreachable.
func ShortestPath[N comparable](g Graph[N], start, end N) []N {
	if start == end {
		return []N{start}
	}

	queue := list.New()
	parent := map[N]N{start: start}
	queue.PushBack(start)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(N)
		for _, next := range g.Successors(current) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if next == end {
				return reconstructPath(parent, start, end)
			}
			queue.PushBack(next)
		}
	}
	return nil
}

// reconstructPath follows parent links back from end.
func reconstructPath[N comparable](parent map[N]N, start, end N) []N {
	var reversed []N
	for cur := end; cur != start; cur = parent[cur] {
		reversed = append(reversed, cur)
	}
	reversed = append(reversed, start)

	path := make([]N, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}

// Distances returns the edge count of the shortest path from source to every
// reachable node.
func Distances[N comparable](g Graph[N], source N) map[N]int {
	dist := map[N]int{source: 0}
	queue := list.New()
	queue.PushBack(source)
	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(N)
		for _, next := range g.Successors(current) {
			if _, seen := dist[next]; !seen {
				dist[next] = dist[current] + 1
				queue.PushBack(next)
			}
		}
	}
	return dist
}
