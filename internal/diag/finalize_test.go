package diag

import (
	"reflect"
	"testing"

	"bracketlint/internal/source"
)

func TestFinalizeSiblingOrdering(t *testing.T) {
	// Two sibling violations of the same rule at [0,10) and [20,30):
	// span-start order must hold regardless of emission order.
	bag := NewBag(10)
	bag.Add(New(SevWarning, "same-rule", source.Span{File: 1, Start: 20, End: 30}, "second"))
	bag.Add(New(SevWarning, "same-rule", source.Span{File: 1, Start: 0, End: 10}, "first"))

	out := Finalize(bag, nil)
	if len(out) != 2 || out[0].Message != "first" || out[1].Message != "second" {
		t.Fatalf("ordering broken: %+v", out)
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	bag := NewBag(10)
	span := source.Span{File: 1, Start: 0, End: 4}
	bag.Add(New(SevWarning, "r", span, "m"))
	bag.Add(New(SevWarning, "r", span, "m"))

	first := Finalize(bag, nil)
	second := Finalize(bag, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-finalize differs:\n%+v\n%+v", first, second)
	}
	if len(first) != 1 {
		t.Fatalf("duplicates survived finalize: %+v", first)
	}
}

func TestFinalizeOverridesArePure(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, "promote-me", source.Span{File: 1, Start: 0, End: 3}, "a"))
	bag.Add(New(SevWarning, "leave-me", source.Span{File: 1, Start: 5, End: 8}, "b"))

	plain := Finalize(bag, nil)
	promoted := Finalize(bag, Overrides{"promote-me": SevError})

	if len(plain) != len(promoted) {
		t.Fatalf("override changed cardinality")
	}
	for i := range plain {
		if plain[i].Message != promoted[i].Message ||
			plain[i].Primary != promoted[i].Primary ||
			plain[i].Code != promoted[i].Code {
			t.Fatalf("override changed more than severity at %d", i)
		}
	}
	if promoted[0].Severity != SevError {
		t.Fatalf("promotion missing: %+v", promoted[0])
	}
	if plain[0].Severity != SevWarning {
		t.Fatalf("finalize mutated the bag: %+v", plain[0])
	}

	if HasErrors(plain) {
		t.Fatalf("plain run should not fail")
	}
	if !HasErrors(promoted) {
		t.Fatalf("promoted run should fail")
	}
}

func TestFinalizeEmptyBag(t *testing.T) {
	if out := Finalize(NewBag(5), nil); out != nil {
		t.Fatalf("empty bag finalized to %+v", out)
	}
	if out := Finalize(nil, nil); out != nil {
		t.Fatalf("nil bag finalized to %+v", out)
	}
}
