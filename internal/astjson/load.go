// Package astjson loads a program into internal/ast's Builder seam from
// a declarative JSON document instead of RC source text. There is no RC
// parser in this repository (component D's AST is described as "the
// seam a parser populates", and tests build it directly) — astjson is
// the honest stand-in `cmd/rc check` drives when pointed at a file on
// disk: a 1:1 JSON rendering of the same New*Decl/New*Expr/New*Stmt
// calls a test would make by hand.
package astjson

import (
	"encoding/json"
	"fmt"
	"os"

	"rc/internal/ast"
	"rc/internal/source"
)

// Program is the root JSON document: one package made of one or more
// files, each a flat list of top-level declaration nodes.
type Program struct {
	Package string        `json:"package"`
	Files   []ProgramFile `json:"files"`
}

// ProgramFile is one source file's worth of top-level declarations.
type ProgramFile struct {
	Path  string `json:"path"`
	Decls []Node `json:"decls"`
}

// Node is a generic JSON node: Kind selects which fields the decoder
// reads out of the remaining, kind-specific members. Using one open
// struct instead of a discriminated union of Go types keeps the schema
// a single flat JSON shape a hand-written program.json can target
// without a client-side code generator.
type Node struct {
	Kind string `json:"kind"`

	Name string `json:"name,omitempty"`

	// Literals.
	Bool bool   `json:"bool,omitempty"`
	Text string `json:"text,omitempty"` // int/float literal source text
	Str  string `json:"str,omitempty"`  // string literal value
	Rune string `json:"rune,omitempty"` // single rune, as a one-element UTF-8 string

	// Operators.
	Op string `json:"op,omitempty"`

	// Shared structural fields, reused across decl/stmt/expr kinds.
	Type         *Node `json:"type,omitempty"`
	Result       *Node `json:"result,omitempty"`
	Body         *Node `json:"body,omitempty"`
	Expr         *Node `json:"expr,omitempty"`
	Lhs          *Node `json:"lhs,omitempty"`
	Rhs          *Node `json:"rhs,omitempty"`
	Cond         *Node `json:"cond,omitempty"`
	Then         *Node `json:"then,omitempty"`
	Else         *Node `json:"else,omitempty"`
	Bound        *Node `json:"bound,omitempty"`
	Init         *Node `json:"init,omitempty"`
	Receiver     *Node `json:"receiver,omitempty"`
	Base         *Node `json:"base,omitempty"`
	Index        *Node `json:"index,omitempty"`
	Low          *Node `json:"low,omitempty"`
	High         *Node `json:"high,omitempty"`
	Max          *Node `json:"max,omitempty"`
	Callee       *Node `json:"callee,omitempty"`
	Precondition *Node `json:"precondition,omitempty"`
	Component    *Node `json:"component,omitempty"`
	Port         *Node `json:"port,omitempty"`
	Getter       *Node `json:"getter,omitempty"`
	Reaction     *Node `json:"reaction,omitempty"`

	Var          string `json:"var,omitempty"`           // ForRangeStmt loop variable name
	PortName     string `json:"port_name,omitempty"`     // ReactionDecl's "on port" name
	ReceiverName string `json:"receiver_name,omitempty"` // MethodDecl receiver binding name
	Mutable      bool   `json:"mutable,omitempty"`
	Pull         bool   `json:"pull,omitempty"`

	Stmts        []Node `json:"stmts,omitempty"`
	Args         []Node `json:"args,omitempty"`
	Params       []Node `json:"params,omitempty"`
	Fields       []Node `json:"fields,omitempty"`
	Ports        []Node `json:"ports,omitempty"`
	Instances    []Node `json:"instances,omitempty"`
	Binds        []Node `json:"binds,omitempty"`
	Actions      []Node `json:"actions,omitempty"`
	Reactions    []Node `json:"reactions,omitempty"`
	Getters      []Node `json:"getters,omitempty"`
	Initializers []Node `json:"initializers,omitempty"`
}

// loader threads the shared Builder/Interner/FileSet/current-file state
// through every decode call, mirroring the checker's own single-struct
// threading style in internal/sema.
type loader struct {
	builder *ast.Builder
	strings *source.Interner
	file    source.FileID
}

// LoadFile reads path as a Program document and builds the equivalent
// ast.Package, ast.Builder, and source.Interner. The returned
// source.FileSet holds one virtual entry per file, named by its "path"
// field, so diagnostics still resolve to a readable location even
// though the file was never tokenized from RC source text.
func LoadFile(path string) (*ast.Package, *ast.Builder, *source.Interner, *source.FileSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("astjson: %w", err)
	}
	var prog Program
	if err := json.Unmarshal(raw, &prog); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("astjson: %s: %w", path, err)
	}
	return Load(prog)
}

// Load builds prog's AST in memory, without touching disk. Exported
// separately from LoadFile so callers that already have a decoded
// Program (e.g. assembled programmatically in a test) can skip the
// read-and-unmarshal step.
func Load(prog Program) (*ast.Package, *ast.Builder, *source.Interner, *source.FileSet, error) {
	b := ast.NewBuilder()
	strs := source.NewInterner()
	fs := source.NewFileSet()

	pkg := &ast.Package{Name: prog.Package}
	for _, pf := range prog.Files {
		fid := fs.AddVirtual(pf.Path, nil)
		ld := &loader{builder: b, strings: strs, file: fid}
		idx := pkg.AddFile(pf.Path)
		for _, d := range pf.Decls {
			id, err := ld.decl(d)
			if err != nil {
				return nil, nil, nil, nil, fmt.Errorf("astjson: %s: %w", pf.Path, err)
			}
			pkg.AddDecl(idx, id)
		}
	}
	return pkg, b, strs, fs, nil
}

func (l *loader) span() source.Span { return source.Span{File: l.file} }

func (l *loader) intern(s string) source.StringID { return l.strings.Intern(s) }

func (l *loader) nodeList(ns []Node, f func(Node) (ast.NodeID, error)) ([]ast.NodeID, error) {
	out := make([]ast.NodeID, 0, len(ns))
	for _, n := range ns {
		id, err := f(n)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (l *loader) opt(n *Node) (ast.NodeID, error) {
	if n == nil {
		return ast.NoNodeID, nil
	}
	return l.expr(*n)
}
