package rules

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
)

// nonNFCIdentifier flags identifiers and declared names that are not in
// Unicode NFC. Two visually identical names with different normalization
// forms intern to different ids, which makes duplicate and unused checks
// silently miss them.
type nonNFCIdentifier struct{}

func (r *nonNFCIdentifier) Meta() lint.Meta {
	return lint.Meta{
		ID:              "non-nfc-identifier",
		Description:     "identifier is not Unicode NFC normalized",
		DefaultSeverity: diag.SevWarning,
		Kinds: []ast.NodeKind{
			ast.KindIdent,
			ast.KindFuncDecl,
			ast.KindVarDecl,
			ast.KindTypeDecl,
			ast.KindParam,
		},
		EnabledByDefault: true,
	}
}

func (r *nonNFCIdentifier) Visit(ctx *lint.Context, id ast.NodeID) {
	name := ctx.Name(id)
	if name == "" || norm.NFC.IsNormalString(name) {
		return
	}
	ctx.Report(ctx.Span(id), fmt.Sprintf("identifier %q is not NFC normalized", name))
}
