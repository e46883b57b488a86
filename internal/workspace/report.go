package workspace

import (
	"bracketlint/internal/diag"
)

// UnitReport pairs a unit path with its finalized diagnostics. The slice
// is the same object across runs while the unit stays unchanged.
type UnitReport struct {
	Path        string
	Diagnostics []diag.Diagnostic
}

// Report is the outcome of one Run: per-unit findings in path order plus
// the cross-file findings of the program phase.
type Report struct {
	Units   []UnitReport
	Program []diag.Diagnostic
}

// Passed reports whether the run is free of errors after overrides.
func (r *Report) Passed() bool {
	if diag.HasErrors(r.Program) {
		return false
	}
	for _, u := range r.Units {
		if diag.HasErrors(u.Diagnostics) {
			return false
		}
	}
	return true
}

// Counts tallies diagnostics by severity across the whole report.
func (r *Report) Counts() (errors, warnings, notes int) {
	count := func(items []diag.Diagnostic) {
		for _, d := range items {
			switch d.Severity {
			case diag.SevError:
				errors++
			case diag.SevWarning:
				warnings++
			default:
				notes++
			}
		}
	}
	count(r.Program)
	for _, u := range r.Units {
		count(u.Diagnostics)
	}
	return errors, warnings, notes
}

// Total is the number of diagnostics in the report.
func (r *Report) Total() int {
	n := len(r.Program)
	for _, u := range r.Units {
		n += len(u.Diagnostics)
	}
	return n
}
