package types

import "rc/internal/source"

// DeclID is an opaque back-reference to the AST declaration a named type
// or signature originated from, so diagnostics can point at the original
// source span without this package importing the ast package.
type DeclID uint32

// Field describes one struct field.
type Field struct {
	Name source.StringID
	Type TypeID
}

// StructInfo is the side-table payload for KindStruct types.
type StructInfo struct {
	Name   source.StringID
	Decl   DeclID
	Fields []Field
}

// Port describes a push or pull port on a component.
type PortKind uint8

const (
	PortPush PortKind = iota
	PortPull
)

type Port struct {
	Name source.StringID
	Kind PortKind
	// Signature is the TypeID of the push/pull port's function signature
	// (KindFunction), carrying argument and return types.
	Signature TypeID
}

// ComponentInfo is the side-table payload for KindComponent types: its
// field layout (instance state) plus the behavioral members a composition
// analyzer needs to enumerate (actions, reactions, getters, initializers,
// bind blocks, and ports).
type ComponentInfo struct {
	Name         source.StringID
	Decl         DeclID
	Fields       []Field
	Ports        []Port
	Actions      []DeclID
	Reactions    []DeclID
	Getters      []DeclID
	Initializers []DeclID
	Binds        []DeclID
	Instances    []Field // nested component instances declared as fields
}

// FuncInfo is the side-table payload for KindFunction types.
type FuncInfo struct {
	Params   []TypeID
	Variadic bool
	Result   TypeID
}

// MethodInfo is the side-table payload for KindMethod types: a function
// signature bound to a receiver type.
type MethodInfo struct {
	Receiver TypeID
	Func     TypeID
}

// RegisterStruct allocates a new named struct type and returns its TypeID.
// The fields are attached afterwards via SetStructFields once the
// declaration pass has resolved them (struct bodies may refer to types
// declared later in the same file).
func (in *Interner) RegisterStruct(name source.StringID, decl DeclID) TypeID {
	idx := uint32(len(in.structs))
	in.structs = append(in.structs, StructInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindStruct, Payload: idx})
}

// SetStructFields finishes a struct registered with RegisterStruct.
func (in *Interner) SetStructFields(id TypeID, fields []Field) {
	tt := in.MustLookup(id)
	if tt.Kind != KindStruct {
		panic("types: SetStructFields on non-struct")
	}
	in.structs[tt.Payload].Fields = fields
}

// StructInfoOf returns the side-table payload for a struct TypeID.
func (in *Interner) StructInfoOf(id TypeID) (*StructInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct {
		return nil, false
	}
	return &in.structs[tt.Payload], true
}

// RegisterComponent allocates a new named component type.
func (in *Interner) RegisterComponent(name source.StringID, decl DeclID) TypeID {
	idx := uint32(len(in.components))
	in.components = append(in.components, ComponentInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindComponent, Payload: idx})
}

// ComponentInfoOf returns the side-table payload for a component TypeID,
// mutable so the declaration pass can append ports/actions/etc. as it
// processes the component body.
func (in *Interner) ComponentInfoOf(id TypeID) (*ComponentInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindComponent {
		return nil, false
	}
	return &in.components[tt.Payload], true
}

// InternFunc hash-conses a function signature.
func (in *Interner) InternFunc(params []TypeID, variadic bool, result TypeID) TypeID {
	for i := 1; i < len(in.funcs); i++ {
		f := in.funcs[i]
		if f.Variadic != variadic || f.Result != result || len(f.Params) != len(params) {
			continue
		}
		same := true
		for j := range params {
			if f.Params[j] != params[j] {
				same = false
				break
			}
		}
		if same {
			return in.index[typeKey(Type{Kind: KindFunction, Payload: uint32(i)})]
		}
	}
	idx := uint32(len(in.funcs))
	fn := FuncInfo{Params: append([]TypeID(nil), params...), Variadic: variadic, Result: result}
	in.funcs = append(in.funcs, fn)
	return in.internRaw(Type{Kind: KindFunction, Payload: idx})
}

// FuncInfoOf returns the side-table payload for a function TypeID.
func (in *Interner) FuncInfoOf(id TypeID) (*FuncInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunction {
		return nil, false
	}
	return &in.funcs[tt.Payload], true
}

// InternMethod hash-conses a receiver-bound method signature.
func (in *Interner) InternMethod(receiver, fn TypeID) TypeID {
	for i := 1; i < len(in.methods); i++ {
		if in.methods[i] == (MethodInfo{Receiver: receiver, Func: fn}) {
			return in.index[typeKey(Type{Kind: KindMethod, Payload: uint32(i)})]
		}
	}
	idx := uint32(len(in.methods))
	in.methods = append(in.methods, MethodInfo{Receiver: receiver, Func: fn})
	return in.internRaw(Type{Kind: KindMethod, Payload: idx})
}

// MethodInfoOf returns the side-table payload for a method TypeID.
func (in *Interner) MethodInfoOf(id TypeID) (*MethodInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindMethod {
		return nil, false
	}
	return &in.methods[tt.Payload], true
}
