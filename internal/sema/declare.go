package sema

import (
	"strconv"

	"rc/internal/ast"
	"rc/internal/diag"
	"rc/internal/source"
	"rc/internal/symbols"
	"rc/internal/types"
	"rc/internal/value"
)

// color implements the White/Grey/Black cycle detector original_source
// uses while resolving a struct's field types: white means unvisited,
// grey means "currently being resolved" (finding it again means a
// direct, indirection-free cycle), black means fully resolved.
type color uint8

const (
	white color = iota
	grey
	black
)

// declareTopLevel binds name in the global scope to a fresh symbol of
// the given kind/type, reporting a duplicate-declaration diagnostic
// instead of silently overwriting an earlier binding.
func (c *checker) declareTopLevel(name source.StringID, kind symbols.Kind, tid types.TypeID, node ast.Node) {
	_, ok := c.symbols.Declare(c.symbols.GlobalScope(), symbols.Symbol{
		Name: name,
		Kind: kind,
		Type: tid,
		Span: node.Span,
	})
	if !ok {
		diag.ReportError(c.rep, diag.NameDuplicateSymbol, node.Span, "duplicate top-level declaration").Emit()
	}
}

// enterTopLevelSymbols is enter_symbols's first subpass: register every
// top-level struct/component/function name before resolving any body, so
// forward references within the same file work regardless of
// declaration order.
func (c *checker) enterTopLevelSymbols(pkg *ast.Package) {
	for _, file := range pkg.Files {
		for _, decl := range file.Decls {
			node := c.ast.At(decl)
			switch node.Kind {
			case ast.KindStructDecl:
				d := c.ast.StructDecl(decl)
				tid := c.types.RegisterStruct(d.Name, types.DeclID(decl))
				c.declareTopLevel(d.Name, symbols.KindType, tid, node)
			case ast.KindComponentDecl:
				d := c.ast.ComponentDecl(decl)
				tid := c.types.RegisterComponent(d.Name, types.DeclID(decl))
				c.declareTopLevel(d.Name, symbols.KindType, tid, node)
			case ast.KindFuncDecl:
				d := c.ast.FuncDecl(decl)
				c.declareTopLevel(d.Name, symbols.KindFunction, types.NoTypeID, node)
			}
		}
	}
}

// processDeclarations is enter_symbols's second subpass: resolve every
// struct's fields and every component's fields/ports, catching
// unresolvable names and direct (non-indirect) recursion along the way.
func (c *checker) processDeclarations(pkg *ast.Package) {
	colors := make(map[types.TypeID]color)
	for _, file := range pkg.Files {
		for _, decl := range file.Decls {
			node := c.ast.At(decl)
			switch node.Kind {
			case ast.KindStructDecl:
				c.resolveStruct(decl, colors)
			case ast.KindComponentDecl:
				c.resolveComponent(decl, colors)
			case ast.KindInstanceDecl:
				c.resolveTopLevelInstance(decl)
			}
		}
	}
}

func (c *checker) resolveStruct(decl ast.NodeID, colors map[types.TypeID]color) {
	d := c.ast.StructDecl(decl)
	sym, ok := c.symbols.FindGlobal(d.Name)
	if !ok {
		return
	}
	c.resolveStructType(c.symbols.SymbolAt(sym).Type, colors)
}

// resolveStructType resolves one struct TypeID's fields, recursing on
// demand into any directly-embedded struct field that hasn't been
// resolved yet (white) rather than waiting for processDeclarations to
// reach it in top-level order. Without that, the White/Grey/Black DFS
// only ever finds a field still Grey on a direct self-reference
// (`A{ x A }`); an indirect cycle (`A{ b B }`, `B{ a A }`) would resolve
// A, leave B white, resolve B clean (A is already Black by the time B's
// turn comes around in file order), and miss the cycle entirely.
func (c *checker) resolveStructType(tid types.TypeID, colors map[types.TypeID]color) {
	if colors[tid] == black {
		return
	}
	info, ok := c.types.StructInfoOf(tid)
	if !ok {
		return
	}
	colors[tid] = grey

	d := c.ast.StructDecl(ast.NodeID(info.Decl))
	fields := make([]types.Field, 0, len(d.Fields))
	for _, fdecl := range d.Fields {
		fd := c.ast.FieldDecl(fdecl)
		ftype := c.resolveTypeExpr(fd.Type)
		if ftype != types.NoTypeID {
			if ft, ok := c.types.Lookup(ftype); ok && ft.Kind == types.KindStruct {
				switch colors[ftype] {
				case grey:
					diag.ReportError(c.rep, diag.TypeRecursive, c.ast.At(fdecl).Span,
						"struct field recurses into its own type without indirection").Emit()
					ftype = types.NoTypeID
				case white:
					c.resolveStructType(ftype, colors)
				}
			}
		}
		fields = append(fields, types.Field{Name: fd.Name, Type: ftype})
	}
	c.types.SetStructFields(tid, fields)
	colors[tid] = black
}

// resolveTopLevelInstance declares a program-level component instance —
// the root of a tree the composition analyzer enumerates, as opposed to
// an InstanceDecl nested inside a component body (a field).
func (c *checker) resolveTopLevelInstance(decl ast.NodeID) {
	inst := c.ast.InstanceDecl(decl)
	comp := c.resolveTypeExpr(inst.Component)
	_, ok := c.symbols.Declare(c.symbols.GlobalScope(), symbols.Symbol{
		Name: inst.Name, Kind: symbols.KindInstance, Type: comp, Decl: types.DeclID(decl), Span: c.ast.At(decl).Span,
	})
	if !ok {
		diag.ReportError(c.rep, diag.NameDuplicateSymbol, c.ast.At(decl).Span, "duplicate top-level instance declaration").Emit()
		return
	}
	c.checkInstanceInitializer(comp, inst.Args, c.symbols.GlobalScope(), c.ast.At(decl).Span)
	c.topInstances = append(c.topInstances, decl)
}

// checkInstanceInitializer resolves an instance site's arguments against
// its component type's declared initializers by arity, mirroring E51
// ("wrong number of initializers"): a component with no initializers
// accepts only a bare, argument-less instance; one with initializers
// must have exactly one whose parameter count matches the argument
// count, since initializers are only ever overloaded by arity here, not
// by parameter type. scope is where the argument expressions themselves
// are evaluated (the instance site's enclosing scope).
func (c *checker) checkInstanceInitializer(comp types.TypeID, args []ast.NodeID, scope symbols.ScopeID, span source.Span) {
	argVals := make([]value.ExpressionValue, 0, len(args))
	for _, a := range args {
		argVals = append(argVals, c.checkExpr(exprContext{scope: scope}, a))
	}

	info, ok := c.types.ComponentInfoOf(comp)
	if !ok {
		return
	}
	if len(info.Initializers) == 0 {
		if len(args) != 0 {
			diag.ReportError(c.rep, diag.KindNoInitializer, span, "component declares no initializer but arguments were given").Emit()
		}
		return
	}

	var match *ast.InitializerDecl
	matches := 0
	for _, id := range info.Initializers {
		decl := c.ast.InitializerDecl(ast.NodeID(id))
		if len(decl.Params) == len(args) {
			matches++
			d := decl
			match = &d
		}
	}
	if matches != 1 {
		diag.ReportError(c.rep, diag.KindWrongNumberOfInitializers, span, "no single initializer accepts this number of arguments").Emit()
		return
	}
	for i, p := range match.Params {
		ptype := c.resolveTypeExpr(c.ast.ParamDecl(p).Type)
		if argVals[i].Type != types.NoTypeID && argVals[i].Type != ptype && !(argVals[i].IsConstant() && c.representable(argVals[i], ptype)) {
			diag.ReportError(c.rep, diag.KindWrongArgType, span, "initializer argument type mismatch").Emit()
		}
	}
}

func (c *checker) resolveComponent(decl ast.NodeID, colors map[types.TypeID]color) {
	d := c.ast.ComponentDecl(decl)
	sym, ok := c.symbols.FindGlobal(d.Name)
	if !ok {
		return
	}
	tid := c.symbols.SymbolAt(sym).Type
	info, _ := c.types.ComponentInfoOf(tid)

	for _, fdecl := range d.Fields {
		fd := c.ast.FieldDecl(fdecl)
		ftype := c.resolveTypeExpr(fd.Type)
		info.Fields = append(info.Fields, types.Field{Name: fd.Name, Type: ftype})
	}
	for _, pdecl := range d.Ports {
		pd := c.ast.PortDecl(pdecl)
		params := make([]types.TypeID, 0, len(pd.Params))
		for _, p := range pd.Params {
			params = append(params, c.resolveTypeExpr(c.ast.ParamDecl(p).Type))
		}
		result := types.NoTypeID
		if pd.Result != ast.NoNodeID {
			result = c.resolveTypeExpr(pd.Result)
		}
		sig := c.types.InternFunc(params, false, result)
		kind := types.PortPush
		if pd.Pull {
			kind = types.PortPull
		}
		info.Ports = append(info.Ports, types.Port{Name: pd.Name, Kind: kind, Signature: sig})
	}
	for _, idecl := range d.Instances {
		inst := c.ast.InstanceDecl(idecl)
		comp := c.resolveTypeExpr(inst.Component)
		c.checkInstanceInitializer(comp, inst.Args, c.symbols.GlobalScope(), c.ast.At(idecl).Span)
		info.Instances = append(info.Instances, types.Field{Name: inst.Name, Type: comp})
	}
	for _, a := range d.Actions {
		info.Actions = append(info.Actions, types.DeclID(a))
	}
	for _, r := range d.Reactions {
		info.Reactions = append(info.Reactions, types.DeclID(r))
	}
	for _, g := range d.Getters {
		info.Getters = append(info.Getters, types.DeclID(g))
	}
	for _, init := range d.Initializers {
		info.Initializers = append(info.Initializers, types.DeclID(init))
	}
	for _, bnd := range d.Binds {
		info.Binds = append(info.Binds, types.DeclID(bnd))
	}
}

// resolveTypeExpr interprets the small subset of expression shapes used
// in type-spec position: a bare identifier names a primitive or a
// previously declared struct/component; AddrExpr denotes *T; IndexExpr
// with a zero Index denotes []T, and with a literal Index denotes [N]T.
func (c *checker) resolveTypeExpr(node ast.NodeID) types.TypeID {
	if node == ast.NoNodeID {
		return types.NoTypeID
	}
	n := c.ast.At(node)
	switch n.Kind {
	case ast.KindIdentExpr:
		name := c.ast.IdentExpr(node).Name
		sym, ok := c.symbols.FindGlobal(name)
		if !ok {
			diag.ReportError(c.rep, diag.NameUndefined, n.Span, "undefined type name").Emit()
			return types.NoTypeID
		}
		s := c.symbols.SymbolAt(sym)
		if s.Kind != symbols.KindType {
			diag.ReportError(c.rep, diag.NameNotAType, n.Span, "expected a type name").Emit()
			return types.NoTypeID
		}
		return s.Type
	case ast.KindAddrExpr:
		elem := c.resolveTypeExpr(c.ast.AddrExpr(node).Expr)
		return c.types.Intern(types.MakePointer(elem))
	case ast.KindIndexExpr:
		ie := c.ast.IndexExpr(node)
		elem := c.resolveTypeExpr(ie.Base)
		if ie.Index == ast.NoNodeID {
			return c.types.Intern(types.MakeSlice(elem))
		}
		lit := c.ast.IntLit(ie.Index)
		length, err := strconv.ParseUint(lit.Text, 0, 32)
		if err != nil {
			diag.ReportError(c.rep, diag.TypeBoundOutOfRange, c.ast.At(ie.Index).Span, "invalid array length").Emit()
			return types.NoTypeID
		}
		return c.types.Intern(types.MakeArray(elem, uint32(length)))
	default:
		diag.ReportError(c.rep, diag.NameRequiresType, n.Span, "expected a type").Emit()
		return types.NoTypeID
	}
}
