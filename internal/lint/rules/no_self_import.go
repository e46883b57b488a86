package rules

import (
	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// noSelfImport flags a unit importing itself. The workspace tolerates the
// resulting self-edge, but it is always an authoring mistake.
type noSelfImport struct{}

func (r *noSelfImport) Meta() lint.Meta {
	return lint.Meta{
		ID:               "no-self-import",
		Description:      "unit imports itself",
		DefaultSeverity:  diag.SevError,
		Kinds:            []ast.NodeKind{ast.KindImport},
		EnabledByDefault: true,
	}
}

func (r *noSelfImport) Visit(ctx *lint.Context, id ast.NodeID) {
	path := ctx.Name(id)
	if path == "" {
		return
	}
	if source.ImportTarget(path) == ctx.File.Path {
		ctx.Report(ctx.Span(id), "unit imports itself")
	}
}
