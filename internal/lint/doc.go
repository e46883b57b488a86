// Package lint drives rule execution over compilation units.
//
// The registry is built once at startup and sealed before any traversal
// begins. Per-unit passes walk the AST depth-first in pre-order, children
// in source order, dispatching each node to the enabled rules that
// declared interest in its kind. Rules are independent: they cannot see
// each other's diagnostics within a pass, which keeps execution order an
// implementation detail and makes running units in parallel safe.
//
// Cross-file rules implement ProgramRule and run after all unit passes,
// against the merged dependency graph the workspace assembles.
//
// A rule that panics is contained: the engine converts the panic into a
// bl/rule-failure diagnostic and mutes the rule for the remainder of that
// unit, so one broken rule never blocks the rest of the analysis.
package lint
