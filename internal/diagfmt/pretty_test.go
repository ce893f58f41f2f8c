package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rc/internal/diag"
	"rc/internal/source"
)

func sampleDiag(fs *source.FileSet) (*diag.Diagnostic, source.FileID) {
	id := fs.AddVirtual("sample.rc", []byte("let x = 1\nlet y = x + z\n"))
	span := source.Span{File: id, Start: 22, End: 23} // the "z" on line 2
	return &diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.NameUndefined,
		Message:  "undefined name 'z'",
		Primary:  span,
	}, id
}

func TestPrettyIncludesLocationAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	d, _ := sampleDiag(fs)

	var buf bytes.Buffer
	Pretty(&buf, []*diag.Diagnostic{d}, fs, Options{Color: false})

	out := buf.String()
	if !strings.Contains(out, "undefined name 'z'") {
		t.Fatalf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "sample.rc:2:") {
		t.Fatalf("missing location in output: %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret underline in output: %q", out)
	}
}

func TestJSONRoundTripsFields(t *testing.T) {
	fs := source.NewFileSet()
	d, _ := sampleDiag(fs)

	var buf bytes.Buffer
	if err := JSON(&buf, []*diag.Diagnostic{d}, fs); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded []jsonDiagnostic
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(decoded))
	}
	if decoded[0].Severity != "ERROR" || decoded[0].Message != "undefined name 'z'" {
		t.Fatalf("unexpected decoded diagnostic: %+v", decoded[0])
	}
}
