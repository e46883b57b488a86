package diag

import (
	"testing"

	"bracketlint/internal/source"
)

func TestReportBuilderEmit(t *testing.T) {
	bag := NewBag(5)
	span := source.Span{File: 1, Start: 2, End: 6}

	ReportWarning(BagReporter{Bag: bag}, "some-rule").
		At(span).
		Msgf("found %d problems", 3).
		WithNote(source.Span{File: 1, Start: 0, End: 1}, "context").
		Emit()

	if bag.Len() != 1 {
		t.Fatalf("bag len = %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Message != "found 3 problems" || d.Primary != span || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(5)
	b := ReportError(BagReporter{Bag: bag}, "r").At(source.Span{File: 1}).Msgf("m")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("double emit stored %d diagnostics", bag.Len())
	}
}

func TestReportBuilderIncompletePanics(t *testing.T) {
	tests := []struct {
		name  string
		build func() *ReportBuilder
	}{
		{
			name: "missing message",
			build: func() *ReportBuilder {
				return ReportError(NopReporter{}, "r").At(source.Span{File: 1})
			},
		},
		{
			name: "missing primary span",
			build: func() *ReportBuilder {
				return ReportError(NopReporter{}, "r").Msgf("m")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for incomplete diagnostic")
				}
			}()
			tt.build().Emit()
		})
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{File: 1, Start: 0, End: 5}

	r.Report("r", SevWarning, span, "msg", nil)
	r.Report("r", SevWarning, span, "msg", nil)
	r.Report("r", SevWarning, span, "other", nil)

	if bag.Len() != 2 {
		t.Fatalf("dedup reporter stored %d, want 2", bag.Len())
	}
}
