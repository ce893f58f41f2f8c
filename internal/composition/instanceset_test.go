package composition

import (
	"testing"

	"rc/internal/value"
)

func TestInstanceSetInsertJoinsOnSharedKey(t *testing.T) {
	var s InstanceSet
	s.Insert(3, value.AccessRead)
	s.Insert(3, value.AccessWrite)

	if len(s.entries) != 1 {
		t.Fatalf("expected a single entry, got %d", len(s.entries))
	}
	if s.entries[0].access != value.AccessWrite {
		t.Fatalf("expected Insert to join to the stronger access, got %v", s.entries[0].access)
	}
}

func TestInstanceSetInsertKeepsSortedOrder(t *testing.T) {
	var s InstanceSet
	s.Insert(5, value.AccessRead)
	s.Insert(1, value.AccessRead)
	s.Insert(3, value.AccessRead)

	want := []InstanceID{1, 3, 5}
	for i, id := range want {
		if s.entries[i].id != id {
			t.Fatalf("entries not sorted: got %v, want ids %v", s.entries, want)
		}
	}
}

func TestInstanceSetIsCompatibleRequiresBothSidesWrite(t *testing.T) {
	var a, b InstanceSet
	a.Insert(1, value.AccessWrite)
	b.Insert(1, value.AccessRead)
	if !a.IsCompatible(&b) {
		t.Fatalf("a write and a read on the same instance must be compatible")
	}

	var c, d InstanceSet
	c.Insert(1, value.AccessWrite)
	d.Insert(1, value.AccessWrite)
	if c.IsCompatible(&d) {
		t.Fatalf("two writes to the same instance must be incompatible")
	}
}

func TestInstanceSetIsCompatibleIgnoresDisjointKeys(t *testing.T) {
	var a, b InstanceSet
	a.Insert(1, value.AccessWrite)
	b.Insert(2, value.AccessWrite)
	if !a.IsCompatible(&b) {
		t.Fatalf("writes to disjoint instances must be compatible")
	}
}

func TestInstanceSetAddUnionMergesAndJoins(t *testing.T) {
	var a, b InstanceSet
	a.Insert(1, value.AccessRead)
	b.Insert(1, value.AccessWrite)
	b.Insert(2, value.AccessRead)

	a.AddUnion(&b)

	if len(a.entries) != 2 {
		t.Fatalf("expected 2 entries after union, got %d", len(a.entries))
	}
	if a.entries[0].access != value.AccessWrite {
		t.Fatalf("expected instance 1 to join up to write, got %v", a.entries[0].access)
	}
}

func TestInstanceSetCloneIsIndependent(t *testing.T) {
	var a InstanceSet
	a.Insert(1, value.AccessRead)

	c := a.Clone()
	c.Insert(2, value.AccessWrite)

	if !a.Empty() && len(a.entries) != 1 {
		t.Fatalf("original set must be unaffected by mutating the clone")
	}
	if len(c.entries) != 2 {
		t.Fatalf("clone should have received the extra insert")
	}
}

func TestInstanceSetEmpty(t *testing.T) {
	var a InstanceSet
	if !a.Empty() {
		t.Fatalf("zero-value InstanceSet must be empty")
	}
	a.Insert(1, value.AccessRead)
	if a.Empty() {
		t.Fatalf("set with an entry must not be empty")
	}
}
