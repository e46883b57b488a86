package diag

import (
	"testing"

	"bracketlint/internal/source"
)

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	spanLate := source.Span{File: 1, Start: 20, End: 30}
	spanEarly := source.Span{File: 1, Start: 0, End: 10}

	bag.Add(New(SevWarning, "rule-b", spanLate, "late"))
	bag.Add(New(SevWarning, "rule-a", spanEarly, "early"))
	bag.Add(New(SevError, "rule-c", spanLate, "late error"))

	bag.Sort()
	items := bag.Items()

	if items[0].Message != "early" {
		t.Fatalf("items[0] = %q, want span-start order first", items[0].Message)
	}
	// Same span: higher severity wins the tiebreak.
	if items[1].Message != "late error" || items[2].Message != "late" {
		t.Fatalf("severity tiebreak broken: %q, %q", items[1].Message, items[2].Message)
	}
}

func TestBagSortSeverityBeforeSpanEnd(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, "aaa-rule", source.Span{File: 1, Start: 0, End: 5}, "short warning"))
	bag.Add(New(SevError, "zzz-rule", source.Span{File: 1, Start: 0, End: 10}, "long error"))

	bag.Sort()
	// Same start: severity decides before span length or code.
	if bag.Items()[0].Severity != SevError {
		t.Fatalf("items[0] = %q, want the error first", bag.Items()[0].Message)
	}
}

func TestBagSortCodeTiebreak(t *testing.T) {
	bag := NewBag(10)
	span := source.Span{File: 1, Start: 5, End: 9}
	bag.Add(New(SevWarning, "zzz", span, "second"))
	bag.Add(New(SevWarning, "aaa", span, "first"))

	bag.Sort()
	if bag.Items()[0].Code != "aaa" {
		t.Fatalf("code tiebreak broken: %q first", bag.Items()[0].Code)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(10)
	span := source.Span{File: 1, Start: 0, End: 4}
	bag.Add(New(SevWarning, "dup", span, "same"))
	bag.Add(New(SevWarning, "dup", span, "same"))
	bag.Add(New(SevWarning, "dup", span, "different message"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("len after dedup = %d, want 2", bag.Len())
	}
}

func TestBagCap(t *testing.T) {
	bag := NewBag(2)
	span := source.Span{File: 1}
	if !bag.Add(New(SevWarning, "a", span, "1")) || !bag.Add(New(SevWarning, "a", span, "2")) {
		t.Fatalf("adds under cap rejected")
	}
	if bag.Add(New(SevWarning, "a", span, "3")) {
		t.Fatalf("add over cap accepted")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	b := NewBag(2)
	span := source.Span{File: 1}
	a.Add(New(SevWarning, "x", span, "1"))
	b.Add(New(SevError, "y", span, "2"))
	b.Add(New(SevError, "y", span, "3"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merged len = %d, want 3", a.Len())
	}
	if !a.HasErrors() || !a.HasWarnings() {
		t.Fatalf("severity queries broken after merge")
	}
}
