package rules

import (
	"fmt"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// duplicateDeclaration flags a name declared twice in the same scope.
// Scopes are the file, each function and each block; a declaration in an
// inner scope may shadow an outer one without complaint.
type duplicateDeclaration struct {
	scopes []declScope
}

type declScope struct {
	span source.Span
	seen map[source.StringID]source.Span
}

func newDuplicateDeclaration() *duplicateDeclaration {
	return &duplicateDeclaration{}
}

func (r *duplicateDeclaration) Meta() lint.Meta {
	return lint.Meta{
		ID:              "duplicate-declaration",
		Description:     "name declared more than once in the same scope",
		DefaultSeverity: diag.SevError,
		Kinds: []ast.NodeKind{
			ast.KindFile,
			ast.KindFuncDecl,
			ast.KindBlock,
			ast.KindVarDecl,
			ast.KindTypeDecl,
			ast.KindParam,
		},
		EnabledByDefault: true,
	}
}

func (r *duplicateDeclaration) Visit(ctx *lint.Context, id ast.NodeID) {
	span := ctx.Span(id)
	for len(r.scopes) > 0 && !r.scopes[len(r.scopes)-1].span.Encloses(span) {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}

	kind := ctx.Kind(id)
	if kind.IsDecl() {
		r.declare(ctx, id, span)
	}

	// Functions open a scope of their own so params and locals do not
	// collide with siblings; the func name itself was declared above.
	switch kind {
	case ast.KindFile, ast.KindFuncDecl, ast.KindBlock:
		r.scopes = append(r.scopes, declScope{
			span: span,
			seen: make(map[source.StringID]source.Span),
		})
	}
}

func (r *duplicateDeclaration) declare(ctx *lint.Context, id ast.NodeID, span source.Span) {
	nameID := ctx.NameID(id)
	if nameID == source.NoStringID || len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if first, dup := scope.seen[nameID]; dup {
		name := ctx.Interner.MustLookup(nameID)
		ctx.Report(span,
			fmt.Sprintf("%q is already declared in this scope", name),
			diag.Note{Span: first, Msg: "first declared here"},
		)
		return
	}
	scope.seen[nameID] = span
}
