package cache

import (
	"testing"

	"rc/internal/diag"
	"rc/internal/project"
	"rc/internal/runtime"
)

func TestPutGetRoundTrips(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dc, err := Open("rc-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := project.Combine(project.Digest{1, 2, 3})
	want := &Payload{
		Diagnostics: []diag.Diagnostic{
			{Severity: diag.SevError, Code: diag.NameUndefined, Message: "boom"},
		},
		Graph: runtime.Graph{
			Instances: []runtime.InstanceSummary{{Path: "main"}},
		},
	}
	if err := dc.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got Payload
	ok, err := dc.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Message != "boom" {
		t.Fatalf("diagnostics did not round-trip: %+v", got.Diagnostics)
	}
	if len(got.Graph.Instances) != 1 || got.Graph.Instances[0].Path != "main" {
		t.Fatalf("graph did not round-trip: %+v", got.Graph)
	}
}

func TestGetMissReportsNoError(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dc, err := Open("rc-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var out Payload
	ok, err := dc.Get(project.Combine(project.Digest{9}), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a cache miss")
	}
}
