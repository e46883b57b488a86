package ast

// NodeID identifies a node within one Tree. IDs are allocated densely,
// starting at 1; 0 is the null id. An id is never reused within a tree.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// Generation tags a Tree instance. Every built tree gets a process-unique
// generation, so an id captured before a reload can be rejected instead of
// silently resolving against the wrong tree.
type Generation uint64

// Ref is a node identity safe to hold across tree rebuilds: resolving it
// against a tree of another generation fails with ErrStaleReference.
type Ref struct {
	Gen Generation
	ID  NodeID
}
