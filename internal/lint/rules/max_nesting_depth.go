package rules

import (
	"fmt"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// DefaultMaxNestingDepth is the depth at which statement nesting starts
// being reported.
const DefaultMaxNestingDepth = 8

// maxNestingDepth flags blocks nested deeper than the limit. The walk is
// pre-order with no exit hook, so the rule keeps a stack of enclosing
// block spans and pops entries the current node is no longer inside of.
type maxNestingDepth struct {
	limit int
	stack []source.Span
}

func newMaxNestingDepth() *maxNestingDepth {
	return &maxNestingDepth{limit: DefaultMaxNestingDepth}
}

func (r *maxNestingDepth) Meta() lint.Meta {
	return lint.Meta{
		ID:               "max-nesting-depth",
		Description:      fmt.Sprintf("statement nesting exceeds %d levels", DefaultMaxNestingDepth),
		DefaultSeverity:  diag.SevWarning,
		Kinds:            []ast.NodeKind{ast.KindBlock},
		EnabledByDefault: true,
	}
}

func (r *maxNestingDepth) Visit(ctx *lint.Context, id ast.NodeID) {
	span := ctx.Span(id)
	for len(r.stack) > 0 && !r.stack[len(r.stack)-1].Encloses(span) {
		r.stack = r.stack[:len(r.stack)-1]
	}
	r.stack = append(r.stack, span)

	// Report once, at the first node crossing the limit; deeper nodes in
	// the same chain stay quiet to avoid a cascade.
	if len(r.stack) == r.limit+1 {
		ctx.Report(span, fmt.Sprintf("nesting depth %d exceeds limit %d", len(r.stack), r.limit))
	}
}
