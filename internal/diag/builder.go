package diag

import (
	"fmt"

	"bracketlint/internal/source"
)

// ReportBuilder accumulates diagnostic details before emitting to a
// Reporter. A diagnostic is complete only once it has a message and a
// primary span; emitting an incomplete one is a programming error in the
// producer and panics rather than degrading output silently.
type ReportBuilder struct {
	reporter   Reporter
	diag       Diagnostic
	hasPrimary bool
	emitted    bool
}

// NewReportBuilder constructs a builder bound to r with the code and
// severity fixed up front.
func NewReportBuilder(r Reporter, sev Severity, code Code) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     Diagnostic{Severity: sev, Code: code},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code) *ReportBuilder {
	return NewReportBuilder(r, SevError, code)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code)
}

// At sets the primary span.
func (b *ReportBuilder) At(sp source.Span) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Primary = sp
	b.hasPrimary = true
	return b
}

// Msgf sets the message.
func (b *ReportBuilder) Msgf(format string, args ...any) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Message = fmt.Sprintf(format, args...)
	return b
}

// WithNote appends a secondary span.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Notes = append(b.diag.Notes, Note{Span: sp, Msg: msg})
	return b
}

// Emit sends the diagnostic to the underlying reporter exactly once.
// Panics if the diagnostic is incomplete.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.diag.Message == "" || !b.hasPrimary {
		panic(fmt.Sprintf("diag: incomplete diagnostic %q (message set: %v, primary set: %v)",
			b.diag.Code, b.diag.Message != "", b.hasPrimary))
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns the accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}
