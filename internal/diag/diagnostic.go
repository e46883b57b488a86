package diag

import (
	"bracketlint/internal/source"
)

// Note is a secondary span with context, e.g. "first declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a structured, span-anchored analysis message. It is plain
// data: rendering lives in diagfmt, policy (severity overrides) is applied
// at finalize time, so producers never observe configuration.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New builds a complete diagnostic in one call.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError is New with SevError.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy with an extra secondary span.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}

// dedupKey identifies exact duplicates: same code, primary span and message.
type dedupKey struct {
	code  Code
	file  source.FileID
	start uint32
	end   uint32
	msg   string
}

func (d Diagnostic) key() dedupKey {
	return dedupKey{
		code:  d.Code,
		file:  d.Primary.File,
		start: d.Primary.Start,
		end:   d.Primary.End,
		msg:   d.Message,
	}
}
