package dag

import (
	"slices"
)

// CycleGroups returns the strongly connected components with more than
// one vertex, each sorted, the groups ordered by their smallest vertex.
// Self edges never reach the graph, so single-vertex components cannot
// be cycles.
func CycleGroups(g Graph) [][]UnitID {
	n := len(g.Edges)
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var (
		stack  []UnitID
		groups [][]UnitID
		next   int
	)

	// Iterative Tarjan; frames carry the edge cursor so large graphs do
	// not blow the goroutine stack.
	type frame struct {
		v    UnitID
		edge int
	}

	for start := range n {
		if index[start] != -1 {
			continue
		}
		frames := []frame{{v: UnitID(start)}}
		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := int(f.v)
			if f.edge == 0 {
				index[v] = next
				low[v] = next
				next++
				stack = append(stack, f.v)
				onStack[v] = true
			}

			advanced := false
			for f.edge < len(g.Edges[v]) {
				to := int(g.Edges[v][f.edge])
				f.edge++
				if index[to] == -1 {
					frames = append(frames, frame{v: UnitID(to)})
					advanced = true
					break
				}
				if onStack[to] && index[to] < low[v] {
					low[v] = index[to]
				}
			}
			if advanced {
				continue
			}

			if low[v] == index[v] {
				var group []UnitID
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[int(top)] = false
					group = append(group, top)
					if int(top) == v {
						break
					}
				}
				if len(group) > 1 {
					slices.Sort(group)
					groups = append(groups, group)
				}
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := int(frames[len(frames)-1].v)
				if low[v] < low[parent] {
					low[parent] = low[v]
				}
			}
		}
	}

	slices.SortFunc(groups, func(a, b []UnitID) int {
		return int(a[0]) - int(b[0])
	})
	return groups
}
