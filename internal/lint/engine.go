package lint

import (
	"fmt"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/source"
)

// activeRule pairs a rule instance with its mute state for one traversal.
type activeRule struct {
	meta  Meta
	rule  Rule
	muted bool
}

// UnitInput bundles what a per-unit pass needs.
type UnitInput struct {
	Tree     *ast.Tree
	File     *source.File
	Interner *source.Interner
}

// RunUnit executes every enabled, interested rule over one unit's tree and
// reports into bag. Traversal is depth-first pre-order with children in
// source order, so sibling findings arrive in source order before the
// final sort applies. Each rule instance is fresh; nothing carries over to
// the next unit.
//
// A panicking rule does not abort the pass: the failure becomes a
// bl/rule-failure diagnostic naming the rule, and the rule is muted for
// the remainder of this unit only.
func RunUnit(reg *Registry, sel Selection, in UnitInput, bag *diag.Bag) {
	rules := reg.activeUnitRules(sel)
	if len(rules) == 0 {
		return
	}

	// Per-kind dispatch index: a rule uninterested in a tag costs nothing
	// at its nodes.
	byKind := make(map[ast.NodeKind][]*activeRule, len(rules))
	for _, ar := range rules {
		for _, k := range ar.meta.Kinds {
			byKind[k] = append(byKind[k], ar)
		}
	}

	// Duplicates are suppressed at emit so they never eat into the bag
	// cap; Finalize still dedups what crosses units of work.
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	ctx := &Context{
		Tree:     in.Tree,
		File:     in.File,
		Interner: in.Interner,
		reporter: reporter,
	}

	walkErr := in.Tree.Walk(in.Tree.Root(), func(id ast.NodeID) bool {
		kind, err := in.Tree.Kind(id)
		if err != nil {
			return false
		}
		for _, ar := range byKind[kind] {
			if ar.muted {
				continue
			}
			visitGuarded(ctx, ar, id, reporter)
		}
		return true
	})
	if walkErr != nil {
		// The root came from this tree; a failure here means the tree
		// violated its own invariants.
		panic(walkErr)
	}

	for _, ar := range rules {
		if ar.muted {
			continue
		}
		fin, ok := ar.rule.(Finisher)
		if !ok {
			continue
		}
		finishGuarded(ctx, ar, fin, reporter)
	}
}

func visitGuarded(ctx *Context, ar *activeRule, id ast.NodeID, reporter diag.Reporter) {
	defer func() {
		if r := recover(); r != nil {
			reportRuleFailure(reporter, ar, ctx.Span(id), r)
		}
	}()
	ctx.current = ar.meta
	ar.rule.Visit(ctx, id)
}

func finishGuarded(ctx *Context, ar *activeRule, fin Finisher, reporter diag.Reporter) {
	defer func() {
		if r := recover(); r != nil {
			span, _ := ctx.Tree.Span(ctx.Tree.Root())
			reportRuleFailure(reporter, ar, span, r)
		}
	}()
	ctx.current = ar.meta
	fin.Finish(ctx)
}

func reportRuleFailure(reporter diag.Reporter, ar *activeRule, span source.Span, cause any) {
	ar.muted = true
	reporter.Report(
		diag.CodeRuleFailure,
		diag.SevError,
		span,
		fmt.Sprintf("rule %q failed: %v (rule disabled for the rest of this file)", ar.meta.ID, cause),
		nil,
	)
}
