package rules

import (
	"fmt"
	"strings"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// unusedDeclaration flags file-private declarations whose name is never
// referenced in the unit. Exported declarations are out of scope here;
// unused-export covers them with the whole program in view. Names with a
// leading underscore are exempt.
type unusedDeclaration struct {
	decls []ast.NodeID
	used  map[source.StringID]struct{}
}

func newUnusedDeclaration() *unusedDeclaration {
	return &unusedDeclaration{used: make(map[source.StringID]struct{})}
}

func (r *unusedDeclaration) Meta() lint.Meta {
	return lint.Meta{
		ID:              "unused-declaration",
		Description:     "declaration is never referenced in its unit",
		DefaultSeverity: diag.SevWarning,
		Kinds: []ast.NodeKind{
			ast.KindFuncDecl,
			ast.KindVarDecl,
			ast.KindTypeDecl,
			ast.KindIdent,
			ast.KindTypeRef,
		},
		EnabledByDefault: true,
	}
}

func (r *unusedDeclaration) Visit(ctx *lint.Context, id ast.NodeID) {
	switch ctx.Kind(id) {
	case ast.KindIdent, ast.KindTypeRef:
		if nameID := ctx.NameID(id); nameID != source.NoStringID {
			r.used[nameID] = struct{}{}
		}
	default:
		if !ctx.Exported(id) {
			r.decls = append(r.decls, id)
		}
	}
}

func (r *unusedDeclaration) Finish(ctx *lint.Context) {
	for _, id := range r.decls {
		nameID := ctx.NameID(id)
		if nameID == source.NoStringID {
			continue
		}
		if _, ok := r.used[nameID]; ok {
			continue
		}
		name := ctx.Interner.MustLookup(nameID)
		if strings.HasPrefix(name, "_") {
			continue
		}
		ctx.Report(ctx.Span(id), fmt.Sprintf("%q is declared but never used", name))
	}
}
