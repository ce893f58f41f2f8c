package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Name resolution (1xxx)
	NameInfo               Code = 1000
	NameUndefined          Code = 1001 // Undefined=4 in the original error_reporter numbering
	NameDuplicateSymbol    Code = 1002
	NameAmbiguous          Code = 1004
	NameNotAType           Code = 1005
	NameRequiresValueOrVar Code = 1006 // Requires_Value_Or_Variable=6
	NameRequiresType       Code = 1007 // Requires_Type=7

	// Kind mismatch (2xxx)
	KindInfo                      Code = 2000
	KindNotCallable               Code = 2001 // Cannot_Be_Applied=3
	KindWrongArgCount             Code = 2002 // Func_Expects_Count=1
	KindWrongArgType              Code = 2003 // Func_Expects_Arg=2
	KindNotAddressable            Code = 2004
	KindNotIndexable              Code = 2005
	KindNoSuchMember              Code = 2006
	KindCallContextBanned         Code = 2007 // calling a push/pull port, getter, etc. outside its legal context
	KindNoInitializer             Code = 2008 // component declares no initializer but the instance supplies arguments
	KindWrongNumberOfInitializers Code = 2009 // E51: zero or more than one initializer accepts this argument count

	// Type mismatch (3xxx)
	TypeInfo              Code = 3000
	TypeMismatch          Code = 3001
	TypeNotRepresentable  Code = 3002
	TypeAmbiguousConstant Code = 3003
	TypeBadOperandsForOp  Code = 3004
	TypeReturnMismatch    Code = 3005
	TypeRecursive         Code = 3006
	TypeBoundOutOfRange   Code = 3007 // port index / array bound, E100/E75 lineage
	TypeBoundNotConstant  Code = 3008 // a bound required to be a compile-time constant (e.g. for-range's N) is not one

	// Mutability and escape (4xxx)
	MutInfo            Code = 4000
	MutAssignToConst   Code = 4001
	MutLeaksPointers   Code = 4002 // Leaks_Pointers=8 (E8/E123 in spec scenarios)
	MutForeignEscape   Code = 4003
	MutWriteDuringRead Code = 4004

	// Control flow (5xxx)
	CtrlInfo                Code = 5000
	CtrlMissingReturn       Code = 5001
	CtrlUnreachable         Code = 5002
	CtrlChangeOutsideAction Code = 5003
	CtrlActivateBadContext  Code = 5004
	CtrlActivateNested      Code = 5005

	// Declaration & composition (6xxx)
	CompInfo                       Code = 6000
	CompRecursiveComposition       Code = 6001 // E72
	CompUnboundPullPort            Code = 6002 // E118
	CompMultiplyBoundPullPort      Code = 6003 // E119
	CompMultiplyBoundReaction      Code = 6004 // E71
	CompNonDeterministicActivation Code = 6005 // E137
	CompNonDeterministicPushPort   Code = 6006 // E138
	CompNonDeterministicPullPort   Code = 6007 // E120
	CompBindElaborationFailed      Code = 6008

	// Built-in templates (7xxx)
	TemplInfo          Code = 7000
	TemplBadMoveTarget Code = 7001
	TemplBadMergeArgs  Code = 7002
	TemplBadCopyArgs   Code = 7003

	// Project / DAG (8xxx, ambient)
	ProjInfo             Code = 8000
	ProjDuplicateModule  Code = 8001
	ProjMissingModule    Code = 8002
	ProjSelfImport       Code = 8003
	ProjImportCycle      Code = 8004
	ProjInvalidManifest  Code = 8005
	ProjDependencyFailed Code = 8006
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	NameInfo:               "name resolution",
	NameUndefined:          "undefined name",
	NameDuplicateSymbol:    "duplicate declaration in this scope",
	NameAmbiguous:          "ambiguous name",
	NameNotAType:           "expected a type name",
	NameRequiresValueOrVar: "expected a value or variable",
	NameRequiresType:       "expected a type",

	KindInfo:                      "kind mismatch",
	KindNotCallable:               "value is not callable",
	KindWrongArgCount:             "wrong number of arguments",
	KindWrongArgType:              "argument type mismatch",
	KindNotAddressable:            "expression is not addressable",
	KindNotIndexable:              "value cannot be indexed",
	KindNoSuchMember:              "no such field, port, or member",
	KindCallContextBanned:         "this call is not legal in the current context",
	KindNoInitializer:             "component declares no initializer but arguments were given",
	KindWrongNumberOfInitializers: "no single initializer accepts this number of arguments",

	TypeInfo:              "type mismatch",
	TypeMismatch:          "incompatible types",
	TypeNotRepresentable:  "constant is not representable by the target type",
	TypeAmbiguousConstant: "untyped constant has no default type in this context",
	TypeBadOperandsForOp:  "operator not defined for these operand types",
	TypeReturnMismatch:    "return expression type does not match the declared result",
	TypeRecursive:         "type has infinite size",
	TypeBoundOutOfRange:   "index or bound out of range",
	TypeBoundNotConstant:  "bound must be a compile-time constant",

	MutInfo:            "mutability",
	MutAssignToConst:   "cannot assign through an immutable or foreign reference",
	MutLeaksPointers:   "expression leaks a more mutable pointer than its context allows",
	MutForeignEscape:   "foreign value escapes its call",
	MutWriteDuringRead: "write access during an immutable phase",

	CtrlInfo:                "control flow",
	CtrlMissingReturn:       "missing return on a path that requires a value",
	CtrlUnreachable:         "unreachable statement",
	CtrlChangeOutsideAction: "change statement outside an action or reaction body",
	CtrlActivateBadContext:  "activate statement outside an action or reaction body",
	CtrlActivateNested:      "activate statement nested inside another activate statement",

	CompInfo:                       "composition analysis",
	CompRecursiveComposition:       "recursive composition: an instance transitively activates itself",
	CompUnboundPullPort:            "pull port has no bound caller",
	CompMultiplyBoundPullPort:      "pull port is bound more than once",
	CompMultiplyBoundReaction:      "reaction is bound to more than one port",
	CompNonDeterministicActivation: "activation is reachable through incompatible write-write instance sets",
	CompNonDeterministicPushPort:   "push port call is reachable through incompatible write-write instance sets",
	CompNonDeterministicPullPort:   "pull port call is reachable through incompatible write-write instance sets",
	CompBindElaborationFailed:      "bind block could not be elaborated to a constant composition graph",

	TemplInfo:          "built-in template",
	TemplBadMoveTarget: "move target is not a mutable, addressable heap value",
	TemplBadMergeArgs:  "merge requires two values of the same heap type",
	TemplBadCopyArgs:   "copy requires an immutable source and a mutable destination",

	ProjInfo:             "project information",
	ProjDuplicateModule:  "duplicate package definition",
	ProjMissingModule:    "missing package",
	ProjSelfImport:       "package imports itself",
	ProjImportCycle:      "import cycle detected",
	ProjInvalidManifest:  "invalid rc.toml manifest",
	ProjDependencyFailed: "dependency package has errors",
}

// ID formats a Code using RC's banded prefixes, mirroring the historical
// E-numbers documented on each constant above for cross-referencing
// against the scenarios that named them.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("NAME%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("KIND%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYPE%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("MUT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CTRL%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("COMP%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("TEMPL%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("PROJ%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable description of c.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
