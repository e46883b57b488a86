package workspace

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// FrontEnd supplies a tree for one source file. The linter never parses;
// the upstream front end emits trees and this boundary keeps it swappable
// in tests.
type FrontEnd interface {
	Parse(file *source.File, interner *source.Interner) (*ast.Tree, error)
}

// Options tunes one workspace session.
type Options struct {
	// Jobs caps concurrent unit passes; zero means one per CPU.
	Jobs int
	// MaxDiagnostics caps each unit's bag.
	MaxDiagnostics int
	Selection      lint.Selection
	Overrides      diag.Overrides
	// Cache, when set, lets unchanged units skip analysis across sessions.
	Cache *DiskCache
	// Events receives progress callbacks; nil means silent.
	Events EventSink
}

// unitState is the workspace's private record of one unit. Finalized
// diagnostics survive reloads untouched unless the unit's content hash
// changes, so repeated runs hand out the same slice object.
type unitState struct {
	path      string
	file      *source.File
	imports   []lint.ImportEdge
	exports   []lint.ExportedDecl
	uses      []string
	broken    bool
	analyzed  bool
	finalized []diag.Diagnostic
}

// Workspace owns the file set, the shared interner and the per-unit
// analysis state of one lint session.
type Workspace struct {
	fset     *source.FileSet
	interner *source.Interner
	registry *lint.Registry
	frontend FrontEnd
	opts     Options

	units map[string]*unitState
}

// New creates an empty workspace over a sealed registry.
func New(registry *lint.Registry, frontend FrontEnd, opts Options) *Workspace {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 256
	}
	return &Workspace{
		fset:     source.NewFileSet(),
		interner: source.NewInterner(),
		registry: registry,
		frontend: frontend,
		opts:     opts,
		units:    make(map[string]*unitState),
	}
}

// FileSet exposes the file set for rendering (line/column resolution).
func (w *Workspace) FileSet() *source.FileSet { return w.fset }

// SetFiles declares the complete unit list for the next run. New paths are
// loaded, changed files are reloaded and marked stale, vanished paths are
// dropped. Unchanged units keep their state, including the finalized
// diagnostics object from the previous run.
func (w *Workspace) SetFiles(paths []string) error {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[source.NormalizePath(p)] = true
		if err := w.Reload(p); err != nil {
			return err
		}
	}

	for path := range w.units {
		if !want[path] {
			delete(w.units, path)
		}
	}
	return nil
}

// Reload refreshes one unit after an external edit. Only that unit is
// replaced; when the content hash is unchanged the unit keeps its state,
// finalized diagnostics included.
func (w *Workspace) Reload(path string) error {
	normalized := source.NormalizePath(path)

	id, err := w.fset.Load(path)
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	file := w.fset.Get(id)

	if st, known := w.units[normalized]; known && st.file.Hash == file.Hash {
		return nil
	}
	w.units[normalized] = &unitState{path: normalized, file: file}
	return nil
}

// paths returns the unit paths in sorted order; every per-run structure
// derives its order from this.
func (w *Workspace) paths() []string {
	out := make([]string, 0, len(w.units))
	for p := range w.units {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// configDigest folds everything that can change a unit's finalized
// diagnostics without its content changing: enablement, overrides and the
// bag cap. It keys the disk cache alongside the content hash.
func (w *Workspace) configDigest() [sha256.Size]byte {
	h := sha256.New()
	fmt.Fprintf(h, "max=%d\n", w.opts.MaxDiagnostics)

	ids := make([]string, 0, len(w.opts.Selection))
	for id := range w.opts.Selection {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(h, "sel %s=%t\n", id, w.opts.Selection[diag.Code(id)])
	}

	ids = ids[:0]
	for id := range w.opts.Overrides {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(h, "sev %s=%d\n", id, w.opts.Overrides[diag.Code(id)])
	}

	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}

// collectImports pulls the import edges off a freshly parsed tree. Only
// file-level imports count; the grammar does not nest them.
func collectImports(tree *ast.Tree, interner *source.Interner) []lint.ImportEdge {
	var edges []lint.ImportEdge
	root := tree.Root()
	children, err := tree.Children(root)
	if err != nil {
		return nil
	}
	for _, child := range children {
		kind, err := tree.Kind(child)
		if err != nil || kind != ast.KindImport {
			continue
		}
		nameID, err := tree.Name(child)
		if err != nil || nameID == source.NoStringID {
			continue
		}
		span, _ := tree.Span(child)
		edges = append(edges, lint.ImportEdge{
			Path: interner.MustLookup(nameID),
			Span: span,
		})
	}
	return edges
}

// collectSummary walks a fresh tree for the unit's cross-file surface:
// exported declarations and the names the unit references. The tree is
// not retained past analysis, so this is everything the program phase
// gets to see, whether the unit was analyzed this run or restored from
// the cache.
func collectSummary(tree *ast.Tree, interner *source.Interner) (exports []lint.ExportedDecl, uses []string) {
	seen := make(map[source.StringID]bool)
	_ = tree.Walk(tree.Root(), func(id ast.NodeID) bool {
		kind, err := tree.Kind(id)
		if err != nil {
			return false
		}
		switch {
		case kind.IsDecl():
			exported, _ := tree.Exported(id)
			nameID, _ := tree.Name(id)
			if exported && nameID != source.NoStringID {
				span, _ := tree.Span(id)
				exports = append(exports, lint.ExportedDecl{
					Name: interner.MustLookup(nameID),
					Span: span,
				})
			}
		case kind == ast.KindIdent || kind == ast.KindTypeRef || kind == ast.KindMemberExpr:
			if nameID, _ := tree.Name(id); nameID != source.NoStringID && !seen[nameID] {
				seen[nameID] = true
				uses = append(uses, interner.MustLookup(nameID))
			}
		}
		return true
	})
	return exports, uses
}
