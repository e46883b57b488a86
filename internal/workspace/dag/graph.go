package dag

import (
	"slices"

	"bracketlint/internal/source"
)

// Edge is one declared import of a unit, carrying the span of the import
// for diagnostics.
type Edge struct {
	Path string
	Span source.Span
}

// Decl is a unit's contribution to the graph: its own path and its
// imports as written.
type Decl struct {
	Path    string
	Imports []Edge
}

// Unresolved is an import whose canonical target matches no unit.
type Unresolved struct {
	From UnitID
	Path string
	Span source.Span
}

// Graph is the forward adjacency of the workspace. Edges[from] is sorted
// and deduplicated; self edges are dropped here (a per-unit rule reports
// them with the import span in hand).
type Graph struct {
	Edges [][]UnitID
	Indeg []int
}

// Build resolves every declared import against the index. Resolution is
// by canonical target path, so "pkg/a" and "pkg/a.bl" land on the same
// vertex.
func Build(idx Index, decls []Decl) (Graph, []Unresolved) {
	n := len(idx.IDToPath)
	g := Graph{
		Edges: make([][]UnitID, n),
		Indeg: make([]int, n),
	}
	var unresolved []Unresolved

	for _, decl := range decls {
		from, ok := idx.PathToID[decl.Path]
		if !ok {
			continue
		}
		seen := make(map[UnitID]struct{}, len(decl.Imports))
		for _, imp := range decl.Imports {
			if imp.Path == "" {
				continue
			}
			to, ok := idx.PathToID[source.ImportTarget(imp.Path)]
			if !ok {
				unresolved = append(unresolved, Unresolved{
					From: from,
					Path: imp.Path,
					Span: imp.Span,
				})
				continue
			}
			if to == from {
				continue
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			g.Edges[from] = append(g.Edges[from], to)
			g.Indeg[to]++
		}
		if len(g.Edges[from]) > 1 {
			slices.Sort(g.Edges[from])
		}
	}

	return g, unresolved
}
