package types

import "testing"

func TestInternHashConsing(t *testing.T) {
	in := NewInterner()
	a := in.Intern(MakePointer(in.Builtins().Int))
	b := in.Intern(MakePointer(in.Builtins().Int))
	if a != b {
		t.Fatalf("expected identical TypeIDs for structurally equal types, got %d and %d", a, b)
	}

	c := in.Intern(MakePointer(in.Builtins().Uint))
	if a == c {
		t.Fatalf("expected distinct TypeIDs for *int and *uint")
	}
}

func TestInternArrayVsSlice(t *testing.T) {
	in := NewInterner()
	arr := in.Intern(MakeArray(in.Builtins().Int, 4))
	slice := in.Intern(MakeSlice(in.Builtins().Int))
	if arr == slice {
		t.Fatalf("fixed array and slice of the same element must differ")
	}
	tt := in.MustLookup(arr)
	if tt.Count != 4 {
		t.Fatalf("expected array length 4, got %d", tt.Count)
	}
}

func TestStripUnwrapsPointerAndHeap(t *testing.T) {
	in := NewInterner()
	structID := in.RegisterStruct(1, 0)
	in.SetStructFields(structID, nil)

	ptr := in.Intern(MakePointer(structID))
	heap := in.Intern(MakeHeap(ptr))

	if got := in.Strip(heap); got != structID {
		t.Fatalf("Strip(heap *Struct) = %d, want %d", got, structID)
	}
}

func TestSelectFindsStructField(t *testing.T) {
	in := NewInterner()
	structID := in.RegisterStruct(1, 0)
	in.SetStructFields(structID, []Field{{Name: 2, Type: in.Builtins().Int}})

	m, ok := in.Select(structID, 2)
	if !ok || m.Kind != MemberField || m.Type != in.Builtins().Int {
		t.Fatalf("Select did not resolve field: %+v, ok=%v", m, ok)
	}

	if _, ok := in.Select(structID, 3); ok {
		t.Fatalf("Select resolved a nonexistent field")
	}
}
