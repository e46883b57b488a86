package rules

import (
	"strings"
	"testing"

	"bracketlint/internal/ast"
	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// runRule executes a single built-in rule over one constructed tree and
// returns its diagnostics.
func runRule(t *testing.T, ruleID diag.Code, path string, build func(b *ast.Builder, in *source.Interner) ast.NodeID) []diag.Diagnostic {
	t.Helper()

	reg := DefaultRegistry()
	sel := lint.Selection{}
	for _, id := range reg.IDs() {
		sel[id] = id == ruleID
	}

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(path, []byte(strings.Repeat(" ", 256)))
	in := source.NewInterner()
	b := ast.NewBuilder(ast.Hints{}, fileID, in)
	root := build(b, in)

	tree, err := b.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bag := diag.NewBag(64)
	lint.RunUnit(reg, sel, lint.UnitInput{Tree: tree, File: fs.Get(fileID), Interner: in}, bag)

	for _, d := range bag.Items() {
		if d.Code != ruleID {
			t.Fatalf("unexpected code %q (want only %q): %q", d.Code, ruleID, d.Message)
		}
	}
	return bag.Items()
}

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestNoEmptyBlock(t *testing.T) {
	got := runRule(t, "no-empty-block", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		stmt := b.MustAdd(ast.KindExprStmt, sp(12, 16), b.MustAdd(ast.KindLiteral, sp(12, 15)))
		full := b.MustAdd(ast.KindBlock, sp(10, 20), stmt)
		empty := b.MustAdd(ast.KindBlock, sp(30, 32))
		return b.MustAdd(ast.KindFile, sp(0, 40), full, empty)
	})
	if len(got) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(got))
	}
	if got[0].Primary.Start != 30 {
		t.Fatalf("reported span %v, want the empty block", got[0].Primary)
	}
}

func TestMaxNestingDepth(t *testing.T) {
	nest := func(b *ast.Builder, depth int) ast.NodeID {
		// Innermost first: spans shrink toward the center.
		inner := b.MustAdd(ast.KindBlock, sp(uint32(depth), uint32(200-depth)))
		for d := depth - 1; d >= 1; d-- {
			inner = b.MustAdd(ast.KindBlock, sp(uint32(d), uint32(200-d)), inner)
		}
		return inner
	}

	got := runRule(t, "max-nesting-depth", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		return b.MustAdd(ast.KindFile, sp(0, 200), nest(b, DefaultMaxNestingDepth))
	})
	if len(got) != 0 {
		t.Fatalf("at the limit: diagnostics = %d, want 0", len(got))
	}

	got = runRule(t, "max-nesting-depth", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		return b.MustAdd(ast.KindFile, sp(0, 200), nest(b, DefaultMaxNestingDepth+2))
	})
	if len(got) != 1 {
		t.Fatalf("over the limit: diagnostics = %d, want exactly 1", len(got))
	}
}

func TestMaxNestingDepthSiblingsDoNotAccumulate(t *testing.T) {
	got := runRule(t, "max-nesting-depth", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		// Many shallow sibling blocks; the stack must unwind between them.
		var blocks []ast.NodeID
		for i := uint32(0); i < 20; i++ {
			blocks = append(blocks, b.MustAdd(ast.KindBlock, sp(i*10, i*10+5)))
		}
		return b.MustAdd(ast.KindFile, sp(0, 220), blocks...)
	})
	if len(got) != 0 {
		t.Fatalf("siblings reported as nesting: %d diagnostics", len(got))
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	got := runRule(t, "duplicate-declaration", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		x := in.Intern("x")
		first := b.MustAddNamed(ast.KindVarDecl, sp(0, 5), x, false)
		second := b.MustAddNamed(ast.KindVarDecl, sp(10, 15), x, false)
		return b.MustAdd(ast.KindFile, sp(0, 20), first, second)
	})
	if len(got) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(got))
	}
	if got[0].Primary.Start != 10 {
		t.Fatalf("reported span %v, want the second declaration", got[0].Primary)
	}
	if len(got[0].Notes) != 1 || got[0].Notes[0].Span.Start != 0 {
		t.Fatalf("note should point at the first declaration, got %v", got[0].Notes)
	}
}

func TestDuplicateDeclarationShadowingAllowed(t *testing.T) {
	got := runRule(t, "duplicate-declaration", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		x := in.Intern("x")
		outer := b.MustAddNamed(ast.KindVarDecl, sp(0, 5), x, false)
		inner := b.MustAddNamed(ast.KindVarDecl, sp(22, 27), x, false)
		block := b.MustAdd(ast.KindBlock, sp(20, 30), inner)
		fn := b.MustAddNamed(ast.KindFuncDecl, sp(10, 35), in.Intern("f"), false, block)
		return b.MustAdd(ast.KindFile, sp(0, 40), outer, fn)
	})
	if len(got) != 0 {
		t.Fatalf("shadowing reported as duplicate: %d diagnostics", len(got))
	}
}

func TestDuplicateDeclarationParamsPerFunction(t *testing.T) {
	got := runRule(t, "duplicate-declaration", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		n := in.Intern("n")
		p1 := b.MustAddNamed(ast.KindParam, sp(2, 3), n, false)
		f1 := b.MustAddNamed(ast.KindFuncDecl, sp(0, 10), in.Intern("f"), false, p1)
		p2 := b.MustAddNamed(ast.KindParam, sp(22, 23), n, false)
		f2 := b.MustAddNamed(ast.KindFuncDecl, sp(20, 30), in.Intern("g"), false, p2)
		return b.MustAdd(ast.KindFile, sp(0, 40), f1, f2)
	})
	if len(got) != 0 {
		t.Fatalf("params of sibling functions reported as duplicates: %d", len(got))
	}
}

func TestSnakeCaseNames(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"foo_bar", true},
		{"_tmp", true},
		{"x9", true},
		{"fooBar", false},
		{"Foo", false},
		{"9lives", false},
	}
	for _, tc := range cases {
		got := runRule(t, "snake-case-names", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
			decl := b.MustAddNamed(ast.KindVarDecl, sp(0, 5), in.Intern(tc.name), false)
			return b.MustAdd(ast.KindFile, sp(0, 10), decl)
		})
		if tc.ok && len(got) != 0 {
			t.Errorf("%q: reported but should pass", tc.name)
		}
		if !tc.ok && len(got) != 1 {
			t.Errorf("%q: %d diagnostics, want 1", tc.name, len(got))
		}
	}
}

func TestNonNFCIdentifier(t *testing.T) {
	decomposed := "café" // e + combining acute
	composed := "café"

	got := runRule(t, "non-nfc-identifier", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		bad := b.MustAddNamed(ast.KindIdent, sp(0, 6), in.Intern(decomposed), false)
		good := b.MustAddNamed(ast.KindIdent, sp(10, 15), in.Intern(composed), false)
		stmt := b.MustAdd(ast.KindExprStmt, sp(0, 16), bad, good)
		return b.MustAdd(ast.KindFile, sp(0, 20), stmt)
	})
	if len(got) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(got))
	}
	if got[0].Primary.Start != 0 {
		t.Fatalf("reported span %v, want the decomposed identifier", got[0].Primary)
	}
}

func TestUnusedDeclaration(t *testing.T) {
	got := runRule(t, "unused-declaration", "a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		used := b.MustAddNamed(ast.KindVarDecl, sp(0, 5), in.Intern("used"), false)
		unused := b.MustAddNamed(ast.KindVarDecl, sp(10, 15), in.Intern("dead"), false)
		blank := b.MustAddNamed(ast.KindVarDecl, sp(20, 25), in.Intern("_scratch"), false)
		exported := b.MustAddNamed(ast.KindFuncDecl, sp(30, 40), in.Intern("api"), true)
		ref := b.MustAdd(ast.KindExprStmt, sp(50, 55),
			b.MustAddNamed(ast.KindIdent, sp(50, 54), in.Intern("used"), false))
		return b.MustAdd(ast.KindFile, sp(0, 60), used, unused, blank, exported, ref)
	})
	if len(got) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(got))
	}
	if !strings.Contains(got[0].Message, `"dead"`) {
		t.Fatalf("wrong declaration reported: %q", got[0].Message)
	}
}

func TestNoSelfImport(t *testing.T) {
	got := runRule(t, "no-self-import", "pkg/a.bl", func(b *ast.Builder, in *source.Interner) ast.NodeID {
		self := b.MustAddNamed(ast.KindImport, sp(0, 10), in.Intern("pkg/a"), false)
		other := b.MustAddNamed(ast.KindImport, sp(12, 22), in.Intern("pkg/b"), false)
		return b.MustAdd(ast.KindFile, sp(0, 30), self, other)
	})
	if len(got) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(got))
	}
	if got[0].Primary.Start != 0 {
		t.Fatalf("reported span %v, want the self import", got[0].Primary)
	}
}
