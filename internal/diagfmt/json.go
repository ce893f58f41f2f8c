package diagfmt

import (
	"encoding/json"
	"io"

	"rc/internal/diag"
	"rc/internal/source"
)

// jsonDiagnostic is the wire shape `rc check --format=json` emits: plain
// strings and 1-based line/column positions instead of byte spans, so a
// consumer never needs this repository's FileSet to interpret it.
type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Path     string     `json:"path,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Column   uint32     `json:"column,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

type jsonNote struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Column  uint32 `json:"column,omitempty"`
}

// JSON writes diags to w as a JSON array, one object per diagnostic, in
// the order given (diag.Bag already keeps insertion order).
func JSON(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet) error {
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = toJSONDiagnostic(d, fs)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONDiagnostic(d *diag.Diagnostic, fs *source.FileSet) jsonDiagnostic {
	jd := jsonDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
	}
	if fs != nil {
		if loc, _, ok := resolve(fs, d.Primary); ok {
			jd.Path, jd.Line, jd.Column = loc.path, loc.line, loc.col
		}
	}
	for _, n := range d.Notes {
		jn := jsonNote{Message: n.Msg}
		if fs != nil {
			if loc, _, ok := resolve(fs, n.Span); ok {
				jn.Path, jn.Line, jn.Column = loc.path, loc.line, loc.col
			}
		}
		jd.Notes = append(jd.Notes, jn)
	}
	return jd
}
