package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Topo is the result of a Kahn sort over the unit graph.
type Topo struct {
	Order   []UnitID   // linear order of acyclic vertices
	Batches [][]UnitID // waves of mutually independent units
	Cyclic  bool
	// Residual lists the vertices left with positive in-degree, i.e.
	// everything stuck in or behind a cycle. CycleGroups narrows this to
	// the actual cycles.
	Residual []UnitID
}

// ToposortKahn peels zero-indegree vertices in sorted waves. Determinism
// matters more than speed here: ids come from sorted paths and each wave
// is sorted again, so the order is a pure function of the graph.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]UnitID, 0, n),
		Batches: make([][]UnitID, 0),
	}

	current := make([]UnitID, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			id, err := safecast.Conv[UnitID](i)
			if err != nil {
				panic(fmt.Errorf("unit id overflow: %w", err))
			}
			current = append(current, id)
		}
	}
	slices.Sort(current)

	visited := 0
	for len(current) > 0 {
		batch := make([]UnitID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]UnitID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != n {
		topo.Cyclic = true
		for i := range n {
			if indeg[i] > 0 {
				id, err := safecast.Conv[UnitID](i)
				if err != nil {
					panic(fmt.Errorf("unit id overflow: %w", err))
				}
				topo.Residual = append(topo.Residual, id)
			}
		}
		slices.Sort(topo.Residual)
	}

	return topo
}
