package source

import (
	"testing"
)

func TestFileSetAddAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.bl", []byte("let x\nlet y\n"))

	f := fs.Get(id)
	if f.Path != "a.bl" {
		t.Fatalf("unexpected path %q", f.Path)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected virtual flag")
	}

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 11})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("start = %+v, want 2:1", start)
	}
	if end != (LineCol{Line: 2, Col: 6}) {
		t.Fatalf("end = %+v, want 2:6", end)
	}
}

func TestFileSetLatestTracksReload(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a.bl", []byte("one"))
	second := fs.AddVirtual("a.bl", []byte("two"))

	if first == second {
		t.Fatalf("expected distinct ids for re-added file")
	}
	latest, ok := fs.Latest("a.bl")
	if !ok || latest != second {
		t.Fatalf("Latest = %v/%v, want %v", latest, ok, second)
	}
	// The old id must still resolve for diagnostics produced before reload.
	if got := string(fs.Get(first).Content); got != "one" {
		t.Fatalf("stale content = %q", got)
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.bl", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.Line(tt.line); got != tt.want {
			t.Fatalf("Line(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestToLineColBoundaries(t *testing.T) {
	content := []byte("ab\ncd\n")
	idx := buildLineIndex(content)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline ends line 1
		{3, LineCol{Line: 2, Col: 1}},
		{5, LineCol{Line: 2, Col: 3}},
		{6, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Fatalf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestNormalizeContent(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(got) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q (%v)", got, changed)
	}

	got, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(got) != "x" {
		t.Fatalf("removeBOM = %q (%v)", got, had)
	}
}
