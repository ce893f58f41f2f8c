package main

import (
	"bytes"
	"testing"
)

func TestCheckCommandMissingFile(t *testing.T) {
	checkFormat = "pretty"
	checkColor = "off"
	var buf bytes.Buffer
	checkCmd.SetOut(&buf)
	if err := runCheck(checkCmd, []string{"/nonexistent/program.json"}); err == nil {
		t.Fatalf("expected an error loading a missing file")
	}
}
