package ast

import (
	"errors"
	"fmt"

	"bracketlint/internal/source"
)

var (
	// ErrChildReused reports a child attached to more than one parent.
	ErrChildReused = errors.New("ast: child already attached")
	// ErrForwardChild reports a child id allocated after its parent.
	ErrForwardChild = errors.New("ast: child allocated after parent")
	// ErrNoRoot reports Build without a valid root node.
	ErrNoRoot = errors.New("ast: missing root node")
)

// Hints carries pre-allocation sizes for the builder.
type Hints struct {
	Nodes uint
}

// Builder assembles a Tree bottom-up: children are allocated first and
// passed to their parent's Add call. The front end and tests are the only
// producers; rules never construct nodes in place (a transformation must
// build a new detached tree).
type Builder struct {
	file     source.FileID
	nodes    *Arena[node]
	attached []bool
	interner *source.Interner
}

func NewBuilder(hints Hints, file source.FileID, interner *source.Interner) *Builder {
	capHint := hints.Nodes
	if capHint == 0 {
		capHint = 64
	}
	return &Builder{
		file:     file,
		nodes:    NewArena[node](capHint),
		attached: make([]bool, 0, capHint),
		interner: interner,
	}
}

// Interner returns the interner names are allocated from.
func (b *Builder) Interner() *source.Interner { return b.interner }

// Add allocates a node with the given ordered children and returns its id.
// Children must already exist and may be attached to at most one parent.
func (b *Builder) Add(kind NodeKind, span source.Span, children ...NodeID) (NodeID, error) {
	return b.AddNamed(kind, span, source.NoStringID, false, children...)
}

// AddNamed is Add for nodes that carry a name (identifiers, declarations,
// imports, type references). exported marks declarations visible to other
// units.
func (b *Builder) AddNamed(kind NodeKind, span source.Span, name source.StringID, exported bool, children ...NodeID) (NodeID, error) {
	parentIdx := b.nodes.Len() + 1
	for _, child := range children {
		if uint32(child) >= parentIdx || child == NoNodeID {
			return NoNodeID, fmt.Errorf("%w: child %d, parent %d", ErrForwardChild, child, parentIdx)
		}
		if b.attached[int(child)-1] {
			return NoNodeID, fmt.Errorf("%w: child %d", ErrChildReused, child)
		}
		b.attached[int(child)-1] = true
	}

	span.File = b.file
	id := NodeID(b.nodes.Allocate(node{
		kind:     kind,
		span:     span,
		name:     name,
		exported: exported,
		children: children,
	}))
	b.attached = append(b.attached, false)
	return id, nil
}

// MustAdd is Add for tests and generated trees where arguments are known
// to be valid.
func (b *Builder) MustAdd(kind NodeKind, span source.Span, children ...NodeID) NodeID {
	id, err := b.Add(kind, span, children...)
	if err != nil {
		panic(err)
	}
	return id
}

// MustAddNamed is AddNamed with the same contract as MustAdd.
func (b *Builder) MustAddNamed(kind NodeKind, span source.Span, name source.StringID, exported bool, children ...NodeID) NodeID {
	id, err := b.AddNamed(kind, span, name, exported, children...)
	if err != nil {
		panic(err)
	}
	return id
}

// Build freezes the builder into an immutable Tree rooted at root and
// indexes declarations by name. The builder must not be used afterwards.
func (b *Builder) Build(root NodeID) (*Tree, error) {
	if b.nodes.Get(uint32(root)) == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNoRoot, root)
	}

	t := &Tree{
		gen:   Generation(generationCounter.Add(1)),
		file:  b.file,
		nodes: b.nodes,
		root:  root,
		decls: make(map[source.StringID][]NodeID),
	}
	b.nodes = nil
	b.attached = nil

	// Source-order decl index; Walk is pre-order, left to right.
	err := t.Walk(root, func(id NodeID) bool {
		n, _ := t.get(id)
		if n.kind.IsDecl() && n.name != source.NoStringID {
			t.decls[n.name] = append(t.decls[n.name], id)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
