package rules

import (
	"bracketlint/internal/lint"
)

// DefaultRegistry builds the sealed catalog of built-in rules. Order
// matters only for listings; diagnostics are sorted before output.
func DefaultRegistry() *lint.Registry {
	reg := lint.NewRegistry()

	reg.MustRegister(func() lint.Rule { return &noEmptyBlock{} })
	reg.MustRegister(func() lint.Rule { return newMaxNestingDepth() })
	reg.MustRegister(func() lint.Rule { return newDuplicateDeclaration() })
	reg.MustRegister(func() lint.Rule { return &snakeCaseNames{} })
	reg.MustRegister(func() lint.Rule { return &nonNFCIdentifier{} })
	reg.MustRegister(func() lint.Rule { return newUnusedDeclaration() })
	reg.MustRegister(func() lint.Rule { return &noSelfImport{} })

	reg.MustRegisterProgram(func() lint.ProgramRule { return &noCircularImports{} })
	reg.MustRegisterProgram(func() lint.ProgramRule { return &unusedExport{} })
	reg.MustRegisterProgram(func() lint.ProgramRule { return &unresolvedImport{} })

	reg.Seal()
	return reg
}
