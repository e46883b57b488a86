package ast

import (
	"errors"
	"fmt"
	"sync/atomic"

	"bracketlint/internal/source"
)

var (
	// ErrNodeNotFound reports a query with an id the tree never allocated.
	ErrNodeNotFound = errors.New("ast: node not found")
	// ErrStaleReference reports a Ref minted by a different tree generation.
	ErrStaleReference = errors.New("ast: stale node reference")
)

var generationCounter atomic.Uint64

type node struct {
	kind     NodeKind
	span     source.Span
	name     source.StringID
	exported bool
	children []NodeID
}

// Tree is an immutable AST for one compilation unit. All accessors are safe
// for concurrent readers; there are no mutation operations after Build.
type Tree struct {
	gen   Generation
	file  source.FileID
	nodes *Arena[node]
	root  NodeID
	decls map[source.StringID][]NodeID
}

func (t *Tree) Generation() Generation { return t.gen }

func (t *Tree) File() source.FileID { return t.file }

// Root returns the root node id (a KindFile node).
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return int(t.nodes.Len()) }

func (t *Tree) get(id NodeID) (*node, error) {
	n := t.nodes.Get(uint32(id))
	if n == nil {
		return nil, fmt.Errorf("%w: id %d (tree has %d nodes)", ErrNodeNotFound, id, t.nodes.Len())
	}
	return n, nil
}

// Kind returns the variant tag of id.
func (t *Tree) Kind(id NodeID) (NodeKind, error) {
	n, err := t.get(id)
	if err != nil {
		return KindInvalid, err
	}
	return n.kind, nil
}

// Span returns the source span of id.
func (t *Tree) Span(id NodeID) (source.Span, error) {
	n, err := t.get(id)
	if err != nil {
		return source.Span{}, err
	}
	return n.span, nil
}

// Children returns id's children in source (left-to-right) order. The slice
// is owned by the tree and must not be modified.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	return n.children, nil
}

// Name returns the interned name attached to id (identifier text, declared
// name or import path). NoStringID when the kind carries no name.
func (t *Tree) Name(id NodeID) (source.StringID, error) {
	n, err := t.get(id)
	if err != nil {
		return source.NoStringID, err
	}
	return n.name, nil
}

// Exported reports whether a declaration is visible to other units.
func (t *Tree) Exported(id NodeID) (bool, error) {
	n, err := t.get(id)
	if err != nil {
		return false, err
	}
	return n.exported, nil
}

// Resolve checks a cross-generation reference against this tree. It fails
// with ErrStaleReference when the ref was minted by another tree and with
// ErrNodeNotFound when the id itself is unknown.
func (t *Tree) Resolve(ref Ref) (NodeID, error) {
	if ref.Gen != t.gen {
		return NoNodeID, fmt.Errorf("%w: ref generation %d, tree generation %d", ErrStaleReference, ref.Gen, t.gen)
	}
	if _, err := t.get(ref.ID); err != nil {
		return NoNodeID, err
	}
	return ref.ID, nil
}

// RefTo mints a Ref bound to this tree's generation.
func (t *Tree) RefTo(id NodeID) Ref {
	return Ref{Gen: t.gen, ID: id}
}

// DeclsByName is the declaration side table: ids of declaration nodes
// carrying the given name, in source order. Cross-references between nodes
// are expressed through this lookup, never as back-references, so the node
// storage stays a tree.
func (t *Tree) DeclsByName(name source.StringID) []NodeID {
	return t.decls[name]
}

// Walk visits the subtree rooted at id in pre-order, children left to
// right. The walk descends into a node only while fn returns true.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if !fn(id) {
		return nil
	}
	for _, child := range n.children {
		if err := t.Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}
