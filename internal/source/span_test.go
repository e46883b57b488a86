package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans widen to both ends",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span changes nothing",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 20, End: 30},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "other extends to the left",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 0, End: 5},
			expected: Span{File: 1, Start: 0, End: 20},
		},
		{
			name:     "different file is ignored",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Cover(tt.other); got != tt.expected {
				t.Fatalf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpanBefore(t *testing.T) {
	a := Span{File: 1, Start: 0, End: 10}
	b := Span{File: 1, Start: 0, End: 20}
	c := Span{File: 1, Start: 20, End: 30}

	if !a.Before(b) {
		t.Fatalf("expected %v before %v (end tiebreak)", a, b)
	}
	if !b.Before(c) {
		t.Fatalf("expected %v before %v", b, c)
	}
	if c.Before(a) {
		t.Fatalf("did not expect %v before %v", c, a)
	}
}

func TestSpanEmptyAndLen(t *testing.T) {
	empty := Span{File: 1, Start: 5, End: 5}
	if !empty.Empty() || empty.Len() != 0 {
		t.Fatalf("expected empty zero-length span, got len %d", empty.Len())
	}
	s := Span{File: 1, Start: 5, End: 9}
	if s.Empty() || s.Len() != 4 {
		t.Fatalf("expected non-empty span of length 4, got %d", s.Len())
	}
}

func TestSpanShift(t *testing.T) {
	s := Span{File: 2, Start: 10, End: 20}
	if got := s.ShiftRight(5); got != (Span{File: 2, Start: 15, End: 25}) {
		t.Fatalf("ShiftRight = %v", got)
	}
	if got := s.ShiftLeft(5); got != (Span{File: 2, Start: 5, End: 15}) {
		t.Fatalf("ShiftLeft = %v", got)
	}
	// Shifting past zero keeps the span unchanged.
	if got := s.ShiftLeft(15); got != s {
		t.Fatalf("ShiftLeft overflow = %v, want original", got)
	}
}
