package rules

import (
	"fmt"

	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
)

// unresolvedImport reports imports whose path matches no unit in the
// workspace. The workspace collects these while building the dependency
// graph; the rule only gives them a stable id and severity so they follow
// the same configuration channels as every other finding.
type unresolvedImport struct{}

func (r *unresolvedImport) Meta() lint.Meta {
	return lint.Meta{
		ID:               "unresolved-import",
		Description:      "import path matches no unit in the workspace",
		DefaultSeverity:  diag.SevError,
		EnabledByDefault: true,
	}
}

func (r *unresolvedImport) CheckProgram(ctx *lint.ProgramContext) {
	for _, u := range ctx.Unresolved {
		ctx.Report(u.Span, fmt.Sprintf("cannot resolve import %q", u.Path))
	}
}
