package rules

import (
	"fmt"

	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
)

// unusedExport flags exported declarations no other unit references. It
// works on names, not resolved symbols: a reference anywhere outside the
// declaring unit counts, which errs on the quiet side. If any unit is
// broken the uses are incomplete and the rule stays silent rather than
// accuse exports it cannot see into.
type unusedExport struct{}

func (r *unusedExport) Meta() lint.Meta {
	return lint.Meta{
		ID:               "unused-export",
		Description:      "exported declaration is never used by another unit",
		DefaultSeverity:  diag.SevWarning,
		EnabledByDefault: true,
	}
}

func (r *unusedExport) CheckProgram(ctx *lint.ProgramContext) {
	for _, u := range ctx.Units {
		if u.Broken {
			return
		}
	}

	// usedBy[name] = set of unit indices referencing the name.
	usedBy := make(map[string]map[int]bool)
	for i := range ctx.Units {
		for _, name := range ctx.Units[i].Uses {
			set := usedBy[name]
			if set == nil {
				set = make(map[int]bool)
				usedBy[name] = set
			}
			set[i] = true
		}
	}

	for i := range ctx.Units {
		for _, exp := range ctx.Units[i].Exports {
			if usedElsewhere(usedBy[exp.Name], i) {
				continue
			}
			ctx.Report(exp.Span, fmt.Sprintf("%q is exported but never used by another unit", exp.Name))
		}
	}
}

func usedElsewhere(set map[int]bool, self int) bool {
	for idx := range set {
		if idx != self {
			return true
		}
	}
	return false
}
