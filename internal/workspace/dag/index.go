package dag

import (
	"sort"
)

// UnitID is a dense vertex id assigned by path order, so the same
// workspace always yields the same numbering.
type UnitID uint32

// Index maps normalized unit paths to dense vertex ids. Only units that
// exist in the workspace get an id; import paths that match nothing stay
// out of the graph and surface as Unresolved edges instead.
type Index struct {
	PathToID map[string]UnitID
	IDToPath []string
}

// BuildIndex assigns ids to the unique paths in sorted order.
func BuildIndex(paths []string) Index {
	uniq := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p != "" {
			uniq[p] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(uniq))
	for p := range uniq {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	pathToID := make(map[string]UnitID, len(sorted))
	for i, p := range sorted {
		pathToID[p] = UnitID(i)
	}

	return Index{
		PathToID: pathToID,
		IDToPath: sorted,
	}
}
