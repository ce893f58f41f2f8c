package sema

import (
	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/symbols"
	"rc/internal/types"
)

// checkBodies is declare_symbols's third subpass, generalized across
// every shape of executable body RC has: free functions, methods, and a
// component's actions, reactions, getters, initializers, and bind
// blocks. Each body gets its own function-scoped symbol tree with
// parameters declared ahead of the statement checker running over it.
func (c *checker) checkBodies(pkg *ast.Package) {
	for _, file := range pkg.Files {
		for _, decl := range file.Decls {
			switch c.ast.At(decl).Kind {
			case ast.KindFuncDecl:
				c.checkFuncBody(decl)
			case ast.KindMethodDecl:
				c.checkMethodBody(decl)
			case ast.KindComponentDecl:
				c.checkComponentBodies(decl)
			}
		}
	}
}

func (c *checker) declareParams(scope symbols.ScopeID, params []ast.NodeID) {
	for _, p := range params {
		pd := c.ast.ParamDecl(p)
		flags := symbols.FlagNone
		if pd.Mutable {
			flags = symbols.FlagMutable
		}
		c.symbols.Declare(scope, symbols.Symbol{
			Name: pd.Name, Kind: symbols.KindParameter, Type: c.resolveTypeExpr(pd.Type),
			Flags: flags, Span: c.ast.At(p).Span,
		})
	}
}

// beginFrame captures the scope-arena watermark before a body is
// walked; endFrame closes the range out and records it against decl.
func (c *checker) beginFrame() symbols.ScopeID {
	return symbols.ScopeID(c.symbols.ScopeCount())
}

func (c *checker) endFrame(decl ast.NodeID, start symbols.ScopeID) {
	if c.frames == nil {
		c.frames = make(map[types.DeclID]symbols.FrameRange)
	}
	c.frames[types.DeclID(decl)] = symbols.FrameRange{
		Start: start,
		End:   symbols.ScopeID(c.symbols.ScopeCount()),
	}
}

func (c *checker) checkFuncBody(decl ast.NodeID) {
	d := c.ast.FuncDecl(decl)
	start := c.beginFrame()
	scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerFunction)
	c.declareParams(scope, d.Params)
	ctx := stmtContext{
		exprContext: exprContext{scope: scope, receiver: types.NoTypeID},
		result:      c.resolveTypeExpr(d.Result),
	}
	c.checkBlock(ctx, d.Body)
	c.endFrame(decl, start)
}

func (c *checker) checkMethodBody(decl ast.NodeID) {
	d := c.ast.MethodDecl(decl)
	recv := c.resolveTypeExpr(d.ReceiverType)
	start := c.beginFrame()
	scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerMethod)
	c.declareParams(scope, d.Params)
	ctx := stmtContext{
		exprContext: exprContext{scope: scope, receiver: recv},
		result:      c.resolveTypeExpr(d.Result),
	}
	c.checkBlock(ctx, d.Body)
	c.endFrame(decl, start)
}

// checkComponentBodies checks every behavioral member of a component:
// actions and reactions entering the action/reaction-owned scope the
// statement checker requires to permit `change`/`activate`, getters and
// initializers entering getter- and initializer-owned scopes instead, and
// bind blocks entering a bind-owned scope.
func (c *checker) checkComponentBodies(decl ast.NodeID) {
	d := c.ast.ComponentDecl(decl)
	sym, ok := c.symbols.FindGlobal(d.Name)
	if !ok {
		return
	}
	recv := c.symbols.SymbolAt(sym).Type

	for _, a := range d.Actions {
		ad := c.ast.ActionDecl(a)
		start := c.beginFrame()
		scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerAction)
		c.declareParams(scope, ad.Params)
		ctx := stmtContext{exprContext: exprContext{scope: scope, receiver: recv}, result: types.NoTypeID}
		if ad.Precondition != ast.NoNodeID {
			precond := c.checkExpr(ctx.exprContext, ad.Precondition)
			if precond.Type != types.NoTypeID && precond.Type != c.types.Builtins().Bool {
				diag.ReportError(c.rep, diag.TypeBadOperandsForOp, c.ast.At(ad.Precondition).Span, "action precondition must be bool").Emit()
			}
		}
		c.checkBlock(ctx, ad.Body)
		c.endFrame(a, start)
	}

	for _, r := range d.Reactions {
		rd := c.ast.ReactionDecl(r)
		start := c.beginFrame()
		scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerReaction)
		c.declareParams(scope, rd.Params)
		ctx := stmtContext{exprContext: exprContext{scope: scope, receiver: recv}, result: types.NoTypeID}
		if _, ok := c.types.Select(recv, rd.Port); !ok {
			diag.ReportError(c.rep, diag.KindNoSuchMember, c.ast.At(r).Span, "reaction binds to an undeclared port").Emit()
		}
		if rd.Precondition != ast.NoNodeID {
			precond := c.checkExpr(ctx.exprContext, rd.Precondition)
			if precond.Type != types.NoTypeID && precond.Type != c.types.Builtins().Bool {
				diag.ReportError(c.rep, diag.TypeBadOperandsForOp, c.ast.At(rd.Precondition).Span, "reaction precondition must be bool").Emit()
			}
		}
		c.checkBlock(ctx, rd.Body)
		c.endFrame(r, start)
	}

	for _, g := range d.Getters {
		gd := c.ast.GetterDecl(g)
		start := c.beginFrame()
		scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerGetter)
		c.declareParams(scope, gd.Params)
		ctx := stmtContext{
			exprContext: exprContext{scope: scope, receiver: recv},
			result:      c.resolveTypeExpr(gd.Result),
		}
		c.checkBlock(ctx, gd.Body)
		c.endFrame(g, start)
	}

	for _, i := range d.Initializers {
		id := c.ast.InitializerDecl(i)
		start := c.beginFrame()
		scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerInitializer)
		c.declareParams(scope, id.Params)
		ctx := stmtContext{exprContext: exprContext{scope: scope, receiver: recv}, result: types.NoTypeID}
		c.checkBlock(ctx, id.Body)
		c.endFrame(i, start)
	}

	for _, bnd := range d.Binds {
		bd := c.ast.BindDecl(bnd)
		start := c.beginFrame()
		scope := c.symbols.EnterScope(c.symbols.GlobalScope(), symbols.OwnerBind)
		ctx := stmtContext{exprContext: exprContext{scope: scope, receiver: recv}, result: types.NoTypeID}
		c.checkBlock(ctx, bd.Body)
		c.endFrame(bnd, start)
	}
}
