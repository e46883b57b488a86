package diag

import (
	"sort"
)

// Bag accumulates the diagnostics of one compilation unit. A bag is owned
// by the goroutine running that unit's pass until Finalize, then handed off
// immutably to the aggregator.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag that holds at most max diagnostics.
func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends d. Returns false when the cap was reached and d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// Items returns a read-only view of the accumulated diagnostics. Callers
// must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasErrors reports whether any diagnostic has severity Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic has severity Warning or above.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Merge appends all diagnostics from other, growing the cap if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by (file, span start, severity descending,
// code ascending, span end) for deterministic output across runs.
func (b *Bag) Sort() {
	sortDiagnostics(b.items)
}

// Dedup removes exact duplicates (same code, primary span and message),
// keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		k := d.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}

func sortDiagnostics(items []Diagnostic) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i], items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Primary.End < dj.Primary.End
	})
}
