package diag

import (
	"slices"
)

// Overrides remaps severities per code at finalize time. Emitting code
// never observes this: a rule always reports its default severity and the
// promotion (or demotion) happens here.
type Overrides map[Code]Severity

// Finalize turns a bag into the unit's ordered diagnostic sequence:
// severity overrides applied, exact duplicates removed, then the
// deterministic sort. The bag itself is not modified, so finalizing twice
// yields the same sequence.
func Finalize(b *Bag, overrides Overrides) []Diagnostic {
	if b == nil || b.Len() == 0 {
		return nil
	}

	items := slices.Clone(b.Items())
	for i := range items {
		if sev, ok := overrides[items[i].Code]; ok {
			items[i].Severity = sev
		}
	}

	seen := make(map[dedupKey]struct{}, len(items))
	kept := items[:0]
	for _, d := range items {
		k := d.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, d)
	}

	sortDiagnostics(kept)
	return kept
}

// HasErrors reports whether a finalized sequence contains an Error; this is
// the workspace's pass/fail signal after overrides are applied.
func HasErrors(items []Diagnostic) bool {
	for i := range items {
		if items[i].Severity >= SevError {
			return true
		}
	}
	return false
}
