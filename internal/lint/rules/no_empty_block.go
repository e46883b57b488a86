package rules

import (
	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
)

// noEmptyBlock flags blocks with no statements. An empty function body or
// branch is usually a stub the author forgot to fill in.
type noEmptyBlock struct{}

func (r *noEmptyBlock) Meta() lint.Meta {
	return lint.Meta{
		ID:               "no-empty-block",
		Description:      "block contains no statements",
		DefaultSeverity:  diag.SevWarning,
		Kinds:            []ast.NodeKind{ast.KindBlock},
		EnabledByDefault: true,
	}
}

func (r *noEmptyBlock) Visit(ctx *lint.Context, id ast.NodeID) {
	if len(ctx.Children(id)) == 0 {
		ctx.Report(ctx.Span(id), "empty block")
	}
}
