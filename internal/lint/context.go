package lint

import (
	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/source"
)

// Context is the per-traversal view a rule works through. A fresh context
// is created for every unit pass and discarded afterwards; rules must not
// retain it beyond a traversal.
type Context struct {
	Tree     *ast.Tree
	File     *source.File
	Interner *source.Interner

	reporter diag.Reporter
	current  Meta
}

// Report emits a diagnostic with the current rule's id and default
// severity. The severity a user ultimately sees may differ: overrides are
// applied at finalize time, invisible to rule code.
func (c *Context) Report(primary source.Span, msg string, notes ...diag.Note) {
	c.reporter.Report(c.current.ID, c.current.DefaultSeverity, primary, msg, notes)
}

// Kind is Tree.Kind for ids handed out by the engine, which are always
// valid for the current tree.
func (c *Context) Kind(id ast.NodeID) ast.NodeKind {
	k, err := c.Tree.Kind(id)
	if err != nil {
		panic(err)
	}
	return k
}

// Span is Tree.Span with the same contract as Kind.
func (c *Context) Span(id ast.NodeID) source.Span {
	s, err := c.Tree.Span(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Children is Tree.Children with the same contract as Kind.
func (c *Context) Children(id ast.NodeID) []ast.NodeID {
	ch, err := c.Tree.Children(id)
	if err != nil {
		panic(err)
	}
	return ch
}

// Name resolves a node's interned name to its text. Empty for nodes
// without a name.
func (c *Context) Name(id ast.NodeID) string {
	nameID, err := c.Tree.Name(id)
	if err != nil {
		panic(err)
	}
	if nameID == source.NoStringID {
		return ""
	}
	return c.Interner.MustLookup(nameID)
}

// NameID returns the interned name id without resolving it.
func (c *Context) NameID(id ast.NodeID) source.StringID {
	nameID, err := c.Tree.Name(id)
	if err != nil {
		panic(err)
	}
	return nameID
}

// Exported reports declaration visibility.
func (c *Context) Exported(id ast.NodeID) bool {
	e, err := c.Tree.Exported(id)
	if err != nil {
		panic(err)
	}
	return e
}
