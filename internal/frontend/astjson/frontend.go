package astjson

import (
	"fmt"
	"os"

	"bracketlint/internal/ast"
	"bracketlint/internal/source"
)

// SidecarPath returns the sidecar location for a unit: the unit path with
// ".ast" appended, next to the source.
func SidecarPath(unitPath string) string {
	return unitPath + ".ast"
}

// FrontEnd supplies trees from sidecar files the upstream parser emitted.
// It is stateless; one value serves the whole workspace.
type FrontEnd struct{}

// Parse loads and decodes the sidecar for file. A missing sidecar is an
// error the caller turns into an unanalyzable-unit diagnostic; it does not
// abort the run.
func (FrontEnd) Parse(file *source.File, interner *source.Interner) (*ast.Tree, error) {
	data, err := os.ReadFile(SidecarPath(file.Path))
	if err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	return Decode(data, file.ID, interner)
}
