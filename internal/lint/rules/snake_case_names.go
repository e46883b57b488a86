package rules

import (
	"fmt"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
)

// snakeCaseNames flags declared names that are not lower_snake_case.
// A leading underscore is allowed (conventional for intentionally unused
// names), as are digits anywhere past the first rune.
type snakeCaseNames struct{}

func (r *snakeCaseNames) Meta() lint.Meta {
	return lint.Meta{
		ID:              "snake-case-names",
		Description:     "declared name is not lower_snake_case",
		DefaultSeverity: diag.SevWarning,
		Kinds: []ast.NodeKind{
			ast.KindFuncDecl,
			ast.KindVarDecl,
			ast.KindTypeDecl,
			ast.KindParam,
		},
		EnabledByDefault: true,
	}
}

func (r *snakeCaseNames) Visit(ctx *lint.Context, id ast.NodeID) {
	name := ctx.Name(id)
	if name == "" || isSnakeCase(name) {
		return
	}
	ctx.Report(ctx.Span(id), fmt.Sprintf("name %q is not lower_snake_case", name))
}

func isSnakeCase(name string) bool {
	for i, c := range name {
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
