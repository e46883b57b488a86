package lint

import (
	"fmt"

	"bracketlint/internal/diag"
	"bracketlint/internal/source"
)

// ImportEdge is one declared dependency of a unit.
type ImportEdge struct {
	Path string
	Span source.Span
}

// ExportedDecl is one exported declaration of a unit.
type ExportedDecl struct {
	Name string
	Span source.Span
}

// UnitSummary is the read-only view of one analyzed unit a program rule
// gets. Index is the unit's position in ProgramContext.Units and the
// vertex id in Adjacency. Summaries carry names, not trees: a unit
// restored from the diagnostics cache has no tree to hand out, so the
// cross-file surface is captured at analysis time and survives with the
// cache entry.
type UnitSummary struct {
	Index   int
	Path    string
	File    *source.File
	Imports []ImportEdge
	// Exports lists the unit's exported declarations in source order.
	Exports []ExportedDecl
	// Uses lists the names the unit references, deduplicated.
	Uses []string
	// Broken marks units whose AST the front end failed to supply; they
	// participate in the graph (their path is known) but their exports
	// and uses are unknown.
	Broken bool
}

// UnresolvedImport is an import whose path matches no unit in the
// workspace.
type UnresolvedImport struct {
	Unit int
	Path string
	Span source.Span
}

// ProgramContext is the merged, workspace-wide view handed to program
// rules once every per-unit pass has completed. Units are ordered by
// path; Adjacency[i] lists the indices unit i imports, sorted and
// deduplicated. Cycles holds the strongly-cyclic vertices found by the
// workspace's toposort, one slice per cycle group.
type ProgramContext struct {
	Units      []UnitSummary
	Adjacency  [][]int
	Unresolved []UnresolvedImport
	Cycles     [][]int
	Interner   *source.Interner

	reporter diag.Reporter
	current  Meta
}

// NewProgramContext wires a context to the cross-file reporter. The
// workspace is the only caller.
func NewProgramContext(units []UnitSummary, adjacency [][]int, unresolved []UnresolvedImport, cycles [][]int, interner *source.Interner, reporter diag.Reporter) *ProgramContext {
	return &ProgramContext{
		Units:      units,
		Adjacency:  adjacency,
		Unresolved: unresolved,
		Cycles:     cycles,
		Interner:   interner,
		reporter:   reporter,
	}
}

// Report emits a cross-file diagnostic with the current rule's identity.
func (c *ProgramContext) Report(primary source.Span, msg string, notes ...diag.Note) {
	c.reporter.Report(c.current.ID, c.current.DefaultSeverity, primary, msg, notes)
}

// UnitByPath finds a unit summary by normalized path.
func (c *ProgramContext) UnitByPath(path string) (*UnitSummary, bool) {
	for i := range c.Units {
		if c.Units[i].Path == path {
			return &c.Units[i], true
		}
	}
	return nil, false
}

// Importers returns the indices of units that import target, in unit
// order. The adjacency mapping is forward-only; reverse lookups walk it.
func (c *ProgramContext) Importers(target int) []int {
	var out []int
	for from, tos := range c.Adjacency {
		for _, to := range tos {
			if to == target {
				out = append(out, from)
				break
			}
		}
	}
	return out
}

// RunProgram executes the enabled cross-file rules against the merged
// graph, with the same failure containment as the per-unit engine: a
// panicking rule is reported and skipped, the rest still run.
func RunProgram(reg *Registry, sel Selection, ctx *ProgramContext) {
	for _, rule := range reg.activeProgramRules(sel) {
		checkProgramGuarded(ctx, rule)
	}
}

func checkProgramGuarded(ctx *ProgramContext, rule ProgramRule) {
	meta := rule.Meta()
	defer func() {
		if r := recover(); r != nil {
			ctx.reporter.Report(
				diag.CodeRuleFailure,
				diag.SevError,
				source.Span{},
				fmt.Sprintf("rule %q failed: %v (cross-file pass skipped for this rule)", meta.ID, r),
				nil,
			)
		}
	}()
	ctx.current = meta
	rule.CheckProgram(ctx)
}
