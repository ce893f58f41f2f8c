// Package diagfmt renders a diag.Bag for a terminal or for machine
// consumption: a pretty mode with a source preview and caret underline
// under the primary span, and a JSON mode for tooling.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"rc/internal/diag"
	"rc/internal/source"
)

// Options controls how Pretty renders a batch of diagnostics.
type Options struct {
	// Color enables ANSI styling of severity labels and carets. Callers
	// typically set this from golang.org/x/term.IsTerminal, the same way
	// cmd/rc's --color flag resolves "auto".
	Color bool
	// Context is not read by Pretty: it always prints only the primary
	// line itself as the source preview.
	Context int
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan, color.Bold)
	caretStyle   = color.New(color.FgRed, color.Bold)
	pathStyle    = color.New(color.FgHiBlack)
)

// Pretty writes one human-readable block per diagnostic in diags to w,
// each with its message, file:line:column location, a one-line source
// preview, and a caret underline spanning the primary span's width —
// caret placement accounts for double-width runes via
// golang.org/x/text/width the same way a terminal would render them, so
// the underline still lines up under wide (e.g. CJK) source text.
func Pretty(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts Options) {
	noColor := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = noColor }()

	for i, d := range diags {
		writeDiagnostic(w, d, fs, opts)
		if i < len(diags)-1 {
			fmt.Fprintln(w)
		}
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts Options) {
	label := severityStyle(d.Severity).Sprint(d.Severity.String())
	fmt.Fprintf(w, "%s[%s]: %s\n", label, d.Code.ID(), d.Message)

	if fs == nil {
		return
	}
	loc, line, ok := resolve(fs, d.Primary)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %s %s\n", pathStyle.Sprint("-->"), pathStyle.Sprintf("%s:%d:%d", loc.path, loc.line, loc.col))
	if line != "" {
		fmt.Fprintf(w, "   %4d | %s\n", loc.line, line)
		fmt.Fprintf(w, "        | %s\n", caretStyle.Sprint(caretLine(line, loc.col, caretWidth(d.Primary))))
	}
	for _, n := range d.Notes {
		nloc, nline, nok := resolve(fs, n.Span)
		if !nok {
			continue
		}
		fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n", n.Msg, nloc.path, nloc.line, nloc.col)
		_ = nline
	}
}

func severityStyle(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorLabel
	case diag.SevWarning:
		return warningLabel
	default:
		return infoLabel
	}
}

type location struct {
	path string
	line uint32
	col  uint32
}

// resolve mirrors internal/diag/golden.go's resolveSpan: FileSet.Get
// panics on an out-of-range FileID rather than returning an error, so an
// invalid span (e.g. a zero-value source.Span on a synthesized
// diagnostic) is recovered here instead of crashing the CLI.
func resolve(fs *source.FileSet, span source.Span) (loc location, line string, ok bool) {
	defer func() {
		if recover() != nil {
			loc, line, ok = location{}, "", false
		}
	}()
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	loc = location{path: f.FormatPath("relative", fs.BaseDir()), line: start.Line, col: start.Col}
	return loc, f.GetLine(start.Line), true
}

func caretWidth(span source.Span) int {
	n := int(span.Len())
	if n < 1 {
		n = 1
	}
	return n
}

// caretLine renders a run of spaces up to column col-1 followed by n
// caret characters, measuring display width with golang.org/x/text/width
// so a caret under a line containing full-width runes still lands under
// the right source column instead of drifting left.
func caretLine(line string, col uint32, n int) string {
	var b strings.Builder
	runes := []rune(line)
	target := int(col) - 1
	for i := 0; i < target && i < len(runes); i++ {
		if width.LookupRune(runes[i]).Kind() == width.EastAsianWide {
			b.WriteString("  ")
		} else {
			b.WriteByte(' ')
		}
	}
	for i := 0; i < n; i++ {
		b.WriteByte('^')
	}
	return b.String()
}
