package rules

import (
	"fmt"
	"strings"

	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// noCircularImports reports each import cycle once, anchored at an import
// edge that participates in the cycle. Off by default: some workspaces
// treat mutual imports as legal.
type noCircularImports struct{}

func (r *noCircularImports) Meta() lint.Meta {
	return lint.Meta{
		ID:               "no-circular-imports",
		Description:      "units form an import cycle",
		DefaultSeverity:  diag.SevError,
		EnabledByDefault: false,
	}
}

func (r *noCircularImports) CheckProgram(ctx *lint.ProgramContext) {
	for _, cycle := range ctx.Cycles {
		r.reportCycle(ctx, cycle)
	}
}

func (r *noCircularImports) reportCycle(ctx *lint.ProgramContext, cycle []int) {
	members := make(map[string]bool, len(cycle))
	paths := make([]string, 0, len(cycle))
	for _, idx := range cycle {
		members[ctx.Units[idx].Path] = true
		paths = append(paths, ctx.Units[idx].Path)
	}

	// Anchor at the first in-cycle import edge of the lowest-indexed
	// member so the report lands on the same span every run.
	var primary source.Span
found:
	for _, idx := range cycle {
		for _, edge := range ctx.Units[idx].Imports {
			if members[source.ImportTarget(edge.Path)] {
				primary = edge.Span
				break found
			}
		}
	}

	ctx.Report(primary, fmt.Sprintf("import cycle: %s", strings.Join(paths, " -> ")))
}
