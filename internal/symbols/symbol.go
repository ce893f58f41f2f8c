// Package symbols implements RC's symbol table: a tree of lexical scopes
// addressed by small integer handles, mirroring the arena style used
// throughout this codebase for types and AST nodes.
package symbols

import (
	"rc/internal/source"
	"rc/internal/types"
)

// SymbolID is a stable handle into a Table's symbol arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol.
const NoSymbolID SymbolID = 0

// Kind enumerates every category of name RC binds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindType
	KindConstant
	KindVariable
	KindParameter
	KindFunction
	KindMethod
	KindInitializer
	KindGetter
	KindAction
	KindReaction
	KindBind
	KindInstance
	KindTemplate
	KindHidden // a name shadowed/consumed by an earlier error, kept to avoid cascades
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindType:
		return "type"
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindInitializer:
		return "initializer"
	case KindGetter:
		return "getter"
	case KindAction:
		return "action"
	case KindReaction:
		return "reaction"
	case KindBind:
		return "bind"
	case KindInstance:
		return "instance"
	case KindTemplate:
		return "template"
	case KindHidden:
		return "hidden"
	default:
		return "invalid"
	}
}

// Flags records boolean attributes of a symbol beyond its Kind.
type Flags uint8

const (
	FlagNone Flags = 0
	// FlagMutable marks a variable/parameter declared mutable (`var` vs
	// a plain binding), independent of the type's own mutability axis.
	FlagMutable Flags = 1 << iota
	// FlagBuiltin marks a predeclared symbol (primitives, true/false/nil,
	// built-in templates) that has no user-written declaration.
	FlagBuiltin
)

// Symbol is one bound name: what it is, where it lives, and what it
// resolves to.
type Symbol struct {
	Name  source.StringID
	Kind  Kind
	Type  types.TypeID
	Scope ScopeID
	Decl  types.DeclID
	Span  source.Span
	Flags Flags
}

// IsMutable reports whether the symbol was declared mutable.
func (s Symbol) IsMutable() bool { return s.Flags&FlagMutable != 0 }
