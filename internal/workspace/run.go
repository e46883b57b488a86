package workspace

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
	"bracketlint/internal/workspace/dag"
)

// Run analyzes every stale unit, then the whole program, and assembles
// the report. Units run in parallel; cancellation is honored between
// units, never inside one, so a canceled run leaves no half-analyzed
// state behind.
func (w *Workspace) Run(ctx context.Context) (*Report, error) {
	paths := w.paths()

	stale := make([]*unitState, 0, len(paths))
	for _, p := range paths {
		if st := w.units[p]; !st.analyzed {
			stale = append(stale, st)
		}
	}
	w.emit(func(s EventSink) { s.RunStarted(len(paths), len(stale)) })

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.jobs())
	for _, st := range stale {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w.analyzeUnit(st)
			w.emit(func(s EventSink) { s.UnitFinished(st.path, len(st.finalized)) })
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Hand back what finished before the cancellation. The program
		// phase needs every unit, so a partial report carries none.
		report := &Report{}
		for _, p := range paths {
			if st := w.units[p]; st.analyzed {
				report.Units = append(report.Units, UnitReport{
					Path:        st.path,
					Diagnostics: st.finalized,
				})
			}
		}
		return report, fmt.Errorf("workspace: run canceled: %w", err)
	}

	program := w.runProgramPhase(paths)

	report := &Report{Program: program}
	for _, p := range paths {
		report.Units = append(report.Units, UnitReport{
			Path:        p,
			Diagnostics: w.units[p].finalized,
		})
	}
	w.emit(func(s EventSink) { s.RunFinished(report.Passed()) })
	return report, nil
}

func (w *Workspace) jobs() int {
	if w.opts.Jobs > 0 {
		return w.opts.Jobs
	}
	return runtime.NumCPU()
}

func (w *Workspace) emit(fn func(EventSink)) {
	if w.opts.Events != nil {
		fn(w.opts.Events)
	}
}

// analyzeUnit runs the full per-unit pipeline: cache probe, parse, rule
// walk, finalize, cache store. It touches only st, which makes concurrent
// calls for distinct units safe without locks.
func (w *Workspace) analyzeUnit(st *unitState) {
	digest := w.configDigest()
	if w.opts.Cache != nil {
		if cached, ok := w.opts.Cache.Lookup(st.file, digest); ok {
			st.finalized = cached.Diagnostics
			st.imports = cached.Imports
			st.exports = cached.Exports
			st.uses = cached.Uses
			st.broken = cached.Broken
			st.analyzed = true
			return
		}
	}

	bag := diag.NewBag(w.opts.MaxDiagnostics)

	tree, err := w.frontend.Parse(st.file, w.interner)
	if err != nil {
		st.broken = true
		bag.Add(diag.NewError(
			diag.CodeUnanalyzable,
			source.Span{File: st.file.ID},
			fmt.Sprintf("unit cannot be analyzed: %v", err),
		))
	} else {
		st.imports = collectImports(tree, w.interner)
		st.exports, st.uses = collectSummary(tree, w.interner)
		lint.RunUnit(w.registry, w.opts.Selection, lint.UnitInput{
			Tree:     tree,
			File:     st.file,
			Interner: w.interner,
		}, bag)
	}

	st.finalized = diag.Finalize(bag, w.opts.Overrides)
	st.analyzed = true

	if w.opts.Cache != nil {
		w.opts.Cache.Store(st.file, digest, CachedUnit{
			Diagnostics: st.finalized,
			Imports:     st.imports,
			Exports:     st.exports,
			Uses:        st.uses,
			Broken:      st.broken,
		})
	}
}

// runProgramPhase joins all units behind a barrier (g.Wait above), builds
// the merged import graph and runs the cross-file rules.
func (w *Workspace) runProgramPhase(paths []string) []diag.Diagnostic {
	decls := make([]dag.Decl, 0, len(paths))
	for _, p := range paths {
		st := w.units[p]
		d := dag.Decl{Path: p}
		for _, e := range st.imports {
			d.Imports = append(d.Imports, dag.Edge{Path: e.Path, Span: e.Span})
		}
		decls = append(decls, d)
	}

	idx := dag.BuildIndex(paths)
	graph, unresolvedEdges := dag.Build(idx, decls)

	// Kahn is the cheap cyclicity check; Tarjan runs only when it finds
	// a residue, to split it into per-cycle groups.
	var groups [][]dag.UnitID
	if topo := dag.ToposortKahn(graph); topo.Cyclic {
		groups = dag.CycleGroups(graph)
	}

	units := make([]lint.UnitSummary, len(paths))
	adjacency := make([][]int, len(paths))
	for i, p := range paths {
		st := w.units[p]
		units[i] = lint.UnitSummary{
			Index:   i,
			Path:    p,
			File:    st.file,
			Imports: st.imports,
			Exports: st.exports,
			Uses:    st.uses,
			Broken:  st.broken,
		}
		for _, to := range graph.Edges[i] {
			adjacency[i] = append(adjacency[i], int(to))
		}
	}

	unresolved := make([]lint.UnresolvedImport, 0, len(unresolvedEdges))
	for _, u := range unresolvedEdges {
		unresolved = append(unresolved, lint.UnresolvedImport{
			Unit: int(u.From),
			Path: u.Path,
			Span: u.Span,
		})
	}

	cycles := make([][]int, 0, len(groups))
	for _, g := range groups {
		cycle := make([]int, len(g))
		for i, id := range g {
			cycle[i] = int(id)
		}
		cycles = append(cycles, cycle)
	}

	bag := diag.NewBag(w.opts.MaxDiagnostics)
	pctx := lint.NewProgramContext(units, adjacency, unresolved, cycles, w.interner, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
	lint.RunProgram(w.registry, w.opts.Selection, pctx)

	return diag.Finalize(bag, w.opts.Overrides)
}
