// Package sema implements RC's declaration pass, expression checker,
// statement/control checker, and receiver-access analyzer: everything a
// composition analyzer needs already resolved before it can enumerate
// instances and elaborate their behavior.
package sema

import (
	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/source"
	"rc/internal/symbols"
	"rc/internal/types"
	"rc/internal/value"
)

// Options configures a single Check invocation.
type Options struct {
	MaxDiagnostics int
}

// Result is everything downstream passes (notably the composition
// analyzer) need out of a completed Check.
type Result struct {
	Symbols         *symbols.Table
	Types           *types.Interner
	Bag             *diag.Bag
	AccessSummaries map[types.DeclID]value.ReceiverAccessSummary
	// TopLevelInstances lists every program-level `instance` declaration,
	// in declaration order, for the composition analyzer to enumerate
	// instance trees from.
	TopLevelInstances []ast.NodeID
	// FrameRanges records, for every function, method, action, reaction,
	// getter, and initializer, the span of scope IDs its body allocated,
	// letting internal/runtime compute a MemoryModel without re-walking
	// the AST.
	FrameRanges map[types.DeclID]symbols.FrameRange
}

// checker carries the mutable state threaded through every sub-pass; it
// is the generalization of the teacher's single-struct typeChecker to
// RC's multi-pass pipeline (declare, expr, stmt, receiver-access).
type checker struct {
	ast          *ast.Builder
	strings      *source.Interner
	types        *types.Interner
	symbols      *symbols.Table
	bag          *diag.Bag
	rep          diag.Reporter
	access       map[types.DeclID]value.ReceiverAccessSummary
	topInstances []ast.NodeID
	frames       map[types.DeclID]symbols.FrameRange
}

// Check runs the full semantic core over pkg and returns the resulting
// symbol table, type registry, and collected diagnostics. It does not
// itself run the composition analyzer (component I); callers pipe
// Result into internal/composition once Check reports no errors.
func Check(pkg *ast.Package, builder *ast.Builder, strings *source.Interner, opts Options) Result {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 200
	}
	bag := diag.NewBag(maxDiag)
	c := &checker{
		ast:     builder,
		strings: strings,
		types:   types.NewInterner(),
		symbols: symbols.NewTable(),
		bag:     bag,
		rep:     diag.BagReporter{Bag: bag},
	}
	symbols.Predeclared(c.symbols, strings, c.types)

	c.enterTopLevelSymbols(pkg)
	c.processDeclarations(pkg)
	c.checkBodies(pkg)
	c.declareAccessSummaries(pkg)

	return Result{
		Symbols:           c.symbols,
		Types:             c.types,
		Bag:               bag,
		AccessSummaries:   c.access,
		TopLevelInstances: c.topInstances,
		FrameRanges:       c.frames,
	}
}
