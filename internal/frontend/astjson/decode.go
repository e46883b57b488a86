package astjson

import (
	"encoding/json"
	"errors"
	"fmt"

	"bracketlint/internal/ast"
	"bracketlint/internal/source"
)

// FormatVersion is the sidecar schema this decoder understands. The front
// end bumps it on incompatible changes and we refuse rather than guess.
const FormatVersion = 1

var (
	ErrFormatVersion = errors.New("astjson: unsupported format version")
	ErrBadNodeRef    = errors.New("astjson: node reference out of range")
	ErrNodeCycle     = errors.New("astjson: node graph is not a tree")
	ErrUnknownKind   = errors.New("astjson: unknown node kind")
)

// wireNode is one entry of the sidecar's flat node table. Children refer
// to table indices; the table order carries no meaning beyond that.
type wireNode struct {
	Kind     string `json:"kind"`
	Start    uint32 `json:"start"`
	End      uint32 `json:"end"`
	Name     string `json:"name,omitempty"`
	Exported bool   `json:"exported,omitempty"`
	Children []int  `json:"children,omitempty"`
}

type wireTree struct {
	Format int        `json:"format"`
	Nodes  []wireNode `json:"nodes"`
	Root   int        `json:"root"`
}

// Decode turns sidecar bytes into an immutable tree for file. Names are
// interned into the workspace interner so cross-unit rules can compare
// them by id.
func Decode(data []byte, file source.FileID, interner *source.Interner) (*ast.Tree, error) {
	var wire wireTree
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("astjson: %w", err)
	}
	if wire.Format != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFormatVersion, wire.Format, FormatVersion)
	}
	if wire.Root < 0 || wire.Root >= len(wire.Nodes) {
		return nil, fmt.Errorf("%w: root %d of %d nodes", ErrBadNodeRef, wire.Root, len(wire.Nodes))
	}

	b := ast.NewBuilder(ast.Hints{Nodes: uint(len(wire.Nodes))}, file, interner)

	// Children-first allocation, driven from the root so unreachable
	// table entries are dropped instead of dangling in the arena.
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make([]uint8, len(wire.Nodes))
	ids := make([]ast.NodeID, len(wire.Nodes))

	var build func(idx int) (ast.NodeID, error)
	build = func(idx int) (ast.NodeID, error) {
		if idx < 0 || idx >= len(wire.Nodes) {
			return ast.NoNodeID, fmt.Errorf("%w: index %d", ErrBadNodeRef, idx)
		}
		switch state[idx] {
		case done:
			return ids[idx], nil
		case inProgress:
			return ast.NoNodeID, fmt.Errorf("%w: index %d", ErrNodeCycle, idx)
		}
		state[idx] = inProgress

		wn := wire.Nodes[idx]
		kind := ast.KindFromString(wn.Kind)
		if kind == ast.KindInvalid {
			return ast.NoNodeID, fmt.Errorf("%w: %q", ErrUnknownKind, wn.Kind)
		}

		children := make([]ast.NodeID, 0, len(wn.Children))
		for _, c := range wn.Children {
			childID, err := build(c)
			if err != nil {
				return ast.NoNodeID, err
			}
			children = append(children, childID)
		}

		name := source.NoStringID
		if wn.Name != "" {
			name = interner.Intern(wn.Name)
		}
		id, err := b.AddNamed(kind, source.Span{Start: wn.Start, End: wn.End}, name, wn.Exported, children...)
		if err != nil {
			return ast.NoNodeID, err
		}
		state[idx] = done
		ids[idx] = id
		return id, nil
	}

	root, err := build(wire.Root)
	if err != nil {
		return nil, err
	}
	return b.Build(root)
}
