package lint

import (
	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
)

// Meta describes a rule to the registry.
type Meta struct {
	// ID is the stable rule identifier carried by every diagnostic the
	// rule emits.
	ID diag.Code
	// Description is a one-line summary for listings.
	Description string
	// DefaultSeverity applies unless the workspace configuration
	// overrides it at finalize time.
	DefaultSeverity diag.Severity
	// Kinds is the interest set: the engine dispatches the rule only for
	// these variant tags. Ignored for program rules.
	Kinds []ast.NodeKind
	// EnabledByDefault controls whether the rule runs without explicit
	// configuration.
	EnabledByDefault bool
}

// Rule visits nodes of a single compilation unit. A rule instance lives
// for exactly one traversal: the registry constructs a fresh value per
// unit, so any state a rule keeps is scoped to that traversal and nothing
// leaks across units.
type Rule interface {
	Meta() Meta
	// Visit is called once for every visited node whose kind is in the
	// rule's interest set, in pre-order, siblings left to right.
	Visit(ctx *Context, id ast.NodeID)
}

// Finisher is an optional extension for rules that need a hook after the
// walk completes (e.g. reporting declarations that were never used).
type Finisher interface {
	Finish(ctx *Context)
}

// ProgramRule analyzes the whole workspace at once. Program rules run
// strictly after every per-unit pass has finished and receive the merged
// dependency graph instead of a single tree.
type ProgramRule interface {
	Meta() Meta
	CheckProgram(ctx *ProgramContext)
}
