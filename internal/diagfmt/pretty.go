package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bracketlint/internal/diag"
	"bracketlint/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty renders diagnostics for humans, one per stanza:
//
//	<path>:<line>:<col>: <SEV> <code>: <message>
//	    <source line>
//	    ^~~~
//	  note: <message>
//
// Items are expected finalized (sorted, deduplicated).
func Pretty(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	for i := range items {
		prettyOne(w, &items[i], fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		location(d.Primary, fs, opts.PathMode),
		severity(d.Severity, opts.Color),
		string(d.Code),
		d.Message,
	)

	if opts.ShowSource {
		writeSourceLine(w, d.Primary, fs, opts.Color)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s (%s)\n", n.Msg, location(n.Span, fs, opts.PathMode))
		}
	}
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", displayPath(f, fs, mode), start.Line, start.Col)
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.DisplayPath("absolute", "")
	case PathModeRelative:
		return f.DisplayPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.DisplayPath("basename", "")
	default:
		return f.DisplayPath("auto", "")
	}
}

func severity(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(sev.String())
	case diag.SevWarning:
		return warningColor.Sprint(sev.String())
	default:
		return noteColor.Sprint(sev.String())
	}
}

// writeSourceLine prints the first line of the span with a caret
// underline. The underline is width-aware: a caret under a wide rune
// still lands in the right column.
func writeSourceLine(w io.Writer, span source.Span, fs *source.FileSet, colored bool) {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	line := f.Line(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "    %s\n", line)

	col := int(start.Col)
	if col < 1 || col > len(line)+1 {
		return
	}
	pad := runewidth.StringWidth(line[:col-1])

	// Underline what the span covers on this line only.
	end := col - 1 + int(span.Len())
	if end > len(line) {
		end = len(line)
	}
	width := runewidth.StringWidth(line[col-1 : end])
	if width < 1 {
		width = 1
	}

	underline := "^" + strings.Repeat("~", width-1)
	if colored {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), underline)
}
