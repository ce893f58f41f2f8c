package composition

import "testing"

func TestInstancePathTopLevel(t *testing.T) {
	all := []*Instance{nil, {ID: 1, Parent: NoInstanceID, Name: "counter"}}
	if got := all[1].Path(all); got != "counter" {
		t.Fatalf("expected a top-level instance's path to be its own name, got %q", got)
	}
}

func TestInstancePathNested(t *testing.T) {
	all := []*Instance{
		nil,
		{ID: 1, Parent: NoInstanceID, Name: "app"},
		{ID: 2, Parent: 1, Name: "counter"},
		{ID: 3, Parent: 2, Name: "guard"},
	}
	if got := all[3].Path(all); got != "app.counter.guard" {
		t.Fatalf("expected a three-level dotted path, got %q", got)
	}
}
