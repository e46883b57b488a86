package diagfmt

import (
	"encoding/json"
	"io"

	"bracketlint/internal/diag"
	"bracketlint/internal/source"
)

// LocationJSON is a span in JSON form. Byte offsets are always present;
// line/column pairs only when requested.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is one section of machine-readable output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		File:      displayPath(f, fs, opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// BuildDiagnosticsOutput converts finalized diagnostics to their JSON
// form without serializing.
func BuildDiagnosticsOutput(items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, limit),
		Count:       len(items),
	}
	for i := range limit {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     string(d.Code),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  n.Msg,
					Location: makeLocation(n.Span, fs, opts),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON serializes one diagnostics section with stable field order and a
// trailing newline.
func JSON(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(items, fs, opts))
}
