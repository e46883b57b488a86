package ast

import (
	"errors"
	"testing"

	"bracketlint/internal/source"
)

func buildSmallTree(t *testing.T) (*Tree, *source.Interner) {
	t.Helper()
	in := source.NewInterner()
	b := NewBuilder(Hints{}, 1, in)

	ident := b.MustAddNamed(KindIdent, source.Span{Start: 4, End: 5}, in.Intern("x"), false)
	decl := b.MustAddNamed(KindVarDecl, source.Span{Start: 0, End: 5}, in.Intern("x"), false, ident)
	block := b.MustAdd(KindBlock, source.Span{Start: 0, End: 7}, decl)
	fnName := in.Intern("main")
	fn := b.MustAddNamed(KindFuncDecl, source.Span{Start: 0, End: 7}, fnName, true, block)
	root := b.MustAdd(KindFile, source.Span{Start: 0, End: 7}, fn)

	tree, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tree, in
}

func TestTreeAccessors(t *testing.T) {
	tree, in := buildSmallTree(t)

	root := tree.Root()
	kind, err := tree.Kind(root)
	if err != nil || kind != KindFile {
		t.Fatalf("root kind = %v (%v)", kind, err)
	}

	children, err := tree.Children(root)
	if err != nil || len(children) != 1 {
		t.Fatalf("root children = %v (%v)", children, err)
	}

	name, err := tree.Name(children[0])
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if got := in.MustLookup(name); got != "main" {
		t.Fatalf("fn name = %q", got)
	}

	exported, err := tree.Exported(children[0])
	if err != nil || !exported {
		t.Fatalf("Exported = %v (%v)", exported, err)
	}
}

func TestTreeNodeNotFound(t *testing.T) {
	tree, _ := buildSmallTree(t)

	if _, err := tree.Kind(NoNodeID); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("Kind(0) err = %v, want ErrNodeNotFound", err)
	}
	if _, err := tree.Span(NodeID(uint32(tree.Len()) + 1)); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("Span(out of range) err = %v, want ErrNodeNotFound", err)
	}
}

func TestTreeStaleReference(t *testing.T) {
	first, _ := buildSmallTree(t)
	second, _ := buildSmallTree(t)

	ref := first.RefTo(first.Root())
	if _, err := first.Resolve(ref); err != nil {
		t.Fatalf("same-generation resolve failed: %v", err)
	}
	if _, err := second.Resolve(ref); !errors.Is(err, ErrStaleReference) {
		t.Fatalf("cross-generation resolve err = %v, want ErrStaleReference", err)
	}
}

func TestWalkPreOrderLeftToRight(t *testing.T) {
	in := source.NewInterner()
	b := NewBuilder(Hints{}, 1, in)

	left := b.MustAdd(KindLiteral, source.Span{Start: 0, End: 1})
	right := b.MustAdd(KindLiteral, source.Span{Start: 4, End: 5})
	bin := b.MustAdd(KindBinaryExpr, source.Span{Start: 0, End: 5}, left, right)
	stmt := b.MustAdd(KindExprStmt, source.Span{Start: 0, End: 6}, bin)
	root := b.MustAdd(KindFile, source.Span{Start: 0, End: 6}, stmt)

	tree, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var order []NodeID
	if err := tree.Walk(tree.Root(), func(id NodeID) bool {
		order = append(order, id)
		return true
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []NodeID{root, stmt, bin, left, right}
	if len(order) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestBuilderRejectsReusedChild(t *testing.T) {
	in := source.NewInterner()
	b := NewBuilder(Hints{}, 1, in)

	lit := b.MustAdd(KindLiteral, source.Span{Start: 0, End: 1})
	if _, err := b.Add(KindBinaryExpr, source.Span{Start: 0, End: 3}, lit, lit); !errors.Is(err, ErrChildReused) {
		t.Fatalf("err = %v, want ErrChildReused", err)
	}
}

func TestDeclIndex(t *testing.T) {
	tree, in := buildSmallTree(t)

	name := in.Intern("x")
	decls := tree.DeclsByName(name)
	if len(decls) != 1 {
		t.Fatalf("decls for x = %v", decls)
	}
	kind, _ := tree.Kind(decls[0])
	if kind != KindVarDecl {
		t.Fatalf("decl kind = %v", kind)
	}
	if got := tree.DeclsByName(in.Intern("missing")); got != nil {
		t.Fatalf("unexpected decls %v", got)
	}
}

func TestKindCategories(t *testing.T) {
	tests := []struct {
		kind NodeKind
		cat  Category
	}{
		{KindFuncDecl, CatDecl},
		{KindVarDecl, CatDecl},
		{KindBlock, CatStmt},
		{KindCallExpr, CatExpr},
		{KindTypeRef, CatType},
		{KindFile, CatOther},
		{KindImport, CatOther},
	}
	for _, tt := range tests {
		if got := tt.kind.Category(); got != tt.cat {
			t.Fatalf("%v category = %v, want %v", tt.kind, got, tt.cat)
		}
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		if got := KindFromString(k.String()); got != k {
			t.Fatalf("round trip %v -> %q -> %v", k, k.String(), got)
		}
	}
	if got := KindFromString("nonsense"); got != KindInvalid {
		t.Fatalf("KindFromString(nonsense) = %v", got)
	}
}
