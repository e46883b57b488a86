package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside a single file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether the byte offset falls inside the span.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off < s.End
}

// Encloses reports whether other lies entirely within the span. A span
// encloses itself.
func (s Span) Encloses(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Cover widens the span to include other. Spans from different files are
// incomparable; the receiver is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Before orders spans within one file by start offset, then end offset.
func (s Span) Before(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{File: s.File, Start: s.Start + n, End: s.End + n}
}

func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{File: s.File, Start: s.Start - n, End: s.End - n}
}
