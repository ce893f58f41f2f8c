package sema

import (
	"testing"

	"rc/internal/astjson"
	"rc/internal/diag"
)

// widgetComponent builds a component with one field, a pull port, a push
// port, a getter, and the actions/reactions passed in — enough context for
// the call-context and change/activate tests to exercise a real receiver.
func widgetComponent(name string, actions, reactions []astjson.Node) astjson.Node {
	return astjson.Node{
		Kind: "component",
		Name: name,
		Fields: []astjson.Node{
			{Kind: "field", Name: "n", Type: ident("int")},
		},
		Ports: []astjson.Node{
			{Kind: "port", Name: "tick", Pull: true, Result: ident("int")},
			{Kind: "port", Name: "notify", Pull: false},
		},
		Getters: []astjson.Node{
			{Kind: "getter", Name: "peek", Result: ident("int"),
				Body: &astjson.Node{Kind: "block", Stmts: []astjson.Node{
					{Kind: "return", Expr: ident("n")},
				}}},
		},
		Actions:   actions,
		Reactions: reactions,
	}
}

func actionDecl(name string, stmts ...astjson.Node) astjson.Node {
	return astjson.Node{Kind: "action", Name: name, Body: &astjson.Node{Kind: "block", Stmts: stmts}}
}

func reactionDecl(name, port string, stmts ...astjson.Node) astjson.Node {
	return astjson.Node{Kind: "reaction", Name: name, PortName: port, Body: &astjson.Node{Kind: "block", Stmts: stmts}}
}

func componentProgram(comp astjson.Node) astjson.Program {
	return programWithDecls(comp)
}

func programWithDecls(decls ...astjson.Node) astjson.Program {
	return astjson.Program{
		Package: "test",
		Files: []astjson.ProgramFile{{
			Path:  "test.rc",
			Decls: decls,
		}},
	}
}

func methodDecl(receiverType, name string, stmts ...astjson.Node) astjson.Node {
	return astjson.Node{
		Kind: "method", ReceiverName: "self", Type: ident(receiverType), Name: name,
		Body: &astjson.Node{Kind: "block", Stmts: stmts},
	}
}

func callExpr(callee string, args ...astjson.Node) *astjson.Node {
	return &astjson.Node{Kind: "call", Callee: ident(callee), Args: args}
}

func activateStmt(component string, body ...astjson.Node) astjson.Node {
	return astjson.Node{Kind: "activate", Name: component, Body: &astjson.Node{Kind: "block", Stmts: body}}
}

func changeStmt(name string, expr *astjson.Node, body ...astjson.Node) astjson.Node {
	return astjson.Node{Kind: "change", Name: name, Expr: expr, Body: &astjson.Node{Kind: "block", Stmts: body}}
}

func exprStmt(e *astjson.Node) astjson.Node {
	return astjson.Node{Kind: "exprstmt", Expr: e}
}

func assignStmt(lhs, rhs *astjson.Node) astjson.Node {
	return astjson.Node{Kind: "assign", Op: "=", Lhs: lhs, Rhs: rhs}
}

func returnStmt(e *astjson.Node) astjson.Node {
	return astjson.Node{Kind: "return", Expr: e}
}

func TestActivateNestedInsideAnotherActivateIsRejected(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", activateStmt("Widget", activateStmt("Widget"))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.CtrlActivateNested) {
		t.Fatalf("expected CtrlActivateNested for an activate nested in another activate, got: %+v", bag.Items())
	}
}

func TestActivateOutsideActionOrReactionIsRejected(t *testing.T) {
	prog := funcBody(activateStmt("Widget"))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.CtrlActivateBadContext) {
		t.Fatalf("expected CtrlActivateBadContext for an activate outside an action/reaction, got: %+v", bag.Items())
	}
}

func TestActivateTopLevelInAnActionChecksCleanly(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", activateStmt("Widget")),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if bag.HasErrors() {
		t.Fatalf("expected a single top-level activate to check cleanly, got: %+v", bag.Items())
	}
}

func TestPushPortIsNeverCallable(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", exprStmt(callExpr("notify"))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.KindCallContextBanned) {
		t.Fatalf("expected KindCallContextBanned for calling a push port, got: %+v", bag.Items())
	}
}

func TestPullPortCallableBeforeMutablePhaseOnly(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run",
			varStmt("a", nil, callExpr("tick")),
			changeStmt("h", callExpr("new", *intLit("5")),
				varStmt("b", nil, callExpr("tick")),
			),
		),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.KindCallContextBanned) {
		t.Fatalf("expected KindCallContextBanned for a pull port call after the mutable phase begins, got: %+v", bag.Items())
	}
}

func TestGetterCallableBeforeMutablePhaseOnly(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run",
			varStmt("a", nil, callExpr("peek")),
			changeStmt("h", callExpr("new", *intLit("5")),
				varStmt("b", nil, callExpr("peek")),
			),
		),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.KindCallContextBanned) {
		t.Fatalf("expected KindCallContextBanned for a getter call after the mutable phase begins, got: %+v", bag.Items())
	}
}

// TestGetterNotCallableFromOrdinaryMethod proves E32's caller-kind rule:
// a getter may only be called from a getter, an action, a reaction, or
// an initializer — an ordinary method on the same component, even
// before any mutable phase, is not one of those.
func TestGetterNotCallableFromOrdinaryMethod(t *testing.T) {
	comp := widgetComponent("Widget", nil, nil)
	method := methodDecl("Widget", "helper", varStmt("a", nil, callExpr("peek")))
	bag := checkProgram(t, programWithDecls(comp, method))
	if !hasCode(bag, diag.KindCallContextBanned) {
		t.Fatalf("expected KindCallContextBanned for calling a getter from an ordinary method, got: %+v", bag.Items())
	}
}

// TestPullPortNotCallableFromOrdinaryMethod is TestGetterNotCallableFromOrdinaryMethod's
// pull-port counterpart: legal only from an action, a reaction, or a getter.
func TestPullPortNotCallableFromOrdinaryMethod(t *testing.T) {
	comp := widgetComponent("Widget", nil, nil)
	method := methodDecl("Widget", "helper", varStmt("a", nil, callExpr("tick")))
	bag := checkProgram(t, programWithDecls(comp, method))
	if !hasCode(bag, diag.KindCallContextBanned) {
		t.Fatalf("expected KindCallContextBanned for calling a pull port from an ordinary method, got: %+v", bag.Items())
	}
}

func TestGetterCallableFromAnotherGetter(t *testing.T) {
	comp := astjson.Node{
		Kind: "component",
		Name: "Widget",
		Fields: []astjson.Node{
			{Kind: "field", Name: "n", Type: ident("int")},
		},
		Getters: []astjson.Node{
			{Kind: "getter", Name: "peek", Result: ident("int"),
				Body: &astjson.Node{Kind: "block", Stmts: []astjson.Node{returnStmt(ident("n"))}}},
			{Kind: "getter", Name: "peekTwice", Result: ident("int"),
				Body: &astjson.Node{Kind: "block", Stmts: []astjson.Node{
					varStmt("a", nil, callExpr("peek")),
					returnStmt(ident("a")),
				}}},
		},
	}
	bag := checkProgram(t, componentProgram(comp))
	if bag.HasErrors() {
		t.Fatalf("expected one getter calling another getter to check cleanly, got: %+v", bag.Items())
	}
}

func TestActionsAndReactionsAreNeverCallableDirectly(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run"),
		actionDecl("other", exprStmt(callExpr("run"))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.KindCallContextBanned) {
		t.Fatalf("expected KindCallContextBanned for calling an action directly, got: %+v", bag.Items())
	}
}

func TestReactionBoundToUndeclaredPortReportsNoSuchMember(t *testing.T) {
	comp := widgetComponent("Widget", nil, []astjson.Node{
		reactionDecl("onGhost", "ghost"),
	})
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.KindNoSuchMember) {
		t.Fatalf("expected KindNoSuchMember for a reaction bound to an undeclared port, got: %+v", bag.Items())
	}
}

func TestChangeStatementRebindsNameToPointerTarget(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run",
			changeStmt("h", callExpr("new", *intLit("5")),
				assignStmt(&astjson.Node{Kind: "deref", Expr: ident("h")}, intLit("9")),
			),
		),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if bag.HasErrors() {
		t.Fatalf("expected *h to check cleanly as the *T rebinding of a *heap T change target, got: %+v", bag.Items())
	}
}

func TestChangeStatementOutsideActionOrReactionIsRejected(t *testing.T) {
	prog := funcBody(changeStmt("h", callExpr("new", *intLit("5"))))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.CtrlChangeOutsideAction) {
		t.Fatalf("expected CtrlChangeOutsideAction for a change statement outside an action/reaction, got: %+v", bag.Items())
	}
}

func TestChangeStatementOnNonHeapPointerReportsTypeMismatch(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", changeStmt("h", intLit("5"))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.TypeMismatch) {
		t.Fatalf("expected TypeMismatch for a change statement whose expression isn't *heap T, got: %+v", bag.Items())
	}
}

// TestAmbientPointerIsForeignInsideChangeBlock proves a pointer-typed name
// declared outside a change block is demoted to Foreign for the block's
// duration: returning it (rather than the block's own rebound name) must
// trip MutForeignEscape, since only a Foreign-tagged value does that.
func TestAmbientPointerIsForeignInsideChangeBlock(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run",
			varStmt("p", nil, callExpr("new", *intLit("5"))),
			changeStmt("h", ident("p"), returnStmt(ident("p"))),
		),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.MutForeignEscape) {
		t.Fatalf("expected MutForeignEscape for a change block returning an ambient pointer declared outside it, got: %+v", bag.Items())
	}
}

func TestReturningTheChangeBlocksOwnNameDoesNotEscape(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run",
			changeStmt("h", callExpr("new", *intLit("5")), returnStmt(ident("h"))),
		),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if hasCode(bag, diag.MutForeignEscape) {
		t.Fatalf("expected the change block's own rebound name to escape cleanly, got: %+v", bag.Items())
	}
}

func TestWritingToReceiverStateBeforeMutablePhaseReportsMutWriteDuringRead(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", assignStmt(ident("n"), intLit("5"))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.MutWriteDuringRead) {
		t.Fatalf("expected MutWriteDuringRead for writing receiver state before the mutable phase begins, got: %+v", bag.Items())
	}
}

// TestOrdinaryLocalAssignmentInsideActionIsNotReceiverAccess proves an
// action's own local variable, not the receiver, can be reassigned before
// the mutable phase begins: only a real receiver-field write is gated by
// MutWriteDuringRead.
func TestOrdinaryLocalAssignmentInsideActionIsNotReceiverAccess(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", mutVarStmt("a", nil, intLit("5")), assignStmt(ident("a"), intLit("6"))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if hasCode(bag, diag.MutWriteDuringRead) {
		t.Fatalf("expected reassigning an action's own local variable to check cleanly, got: %+v", bag.Items())
	}
}

func TestWritingToReceiverStateDuringMutablePhaseChecksCleanly(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", changeStmt("h", callExpr("new", *intLit("5")), assignStmt(ident("n"), intLit("5")))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if hasCode(bag, diag.MutWriteDuringRead) {
		t.Fatalf("expected a receiver-state write during the mutable phase to check cleanly, got: %+v", bag.Items())
	}
}

func TestUntypedNilWithoutAnnotationReportsTypeAmbiguousConstant(t *testing.T) {
	prog := funcBody(varStmt("x", nil, ident("nil")))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.TypeAmbiguousConstant) {
		t.Fatalf("expected TypeAmbiguousConstant for an untyped nil with no explicit type annotation, got: %+v", bag.Items())
	}
}

func TestVarWithExplicitTypeAndNoInitializerChecksCleanly(t *testing.T) {
	prog := funcBody(varStmt("x", &astjson.Node{Kind: "index", Base: ident("int"), Index: intLit("3")}, nil))
	bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("expected a var with an explicit type annotation and no initializer to check cleanly, got: %+v", bag.Items())
	}
}

func forRangeStmt(varName string, bound *astjson.Node, stmts ...astjson.Node) astjson.Node {
	return astjson.Node{Kind: "forrange", Var: varName, Bound: bound, Body: &astjson.Node{Kind: "block", Stmts: stmts}}
}

func TestForRangeBoundMustBeAPositiveConstant(t *testing.T) {
	prog := funcBody(forRangeStmt("i", intLit("3")))
	bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("expected a positive integer literal bound to check cleanly, got: %+v", bag.Items())
	}
}

func TestForRangeBoundRejectsNonConstant(t *testing.T) {
	comp := widgetComponent("Widget", []astjson.Node{
		actionDecl("run", forRangeStmt("i", ident("n"))),
	}, nil)
	bag := checkProgram(t, componentProgram(comp))
	if !hasCode(bag, diag.TypeBoundNotConstant) {
		t.Fatalf("expected TypeBoundNotConstant for a for-range bound that isn't a compile-time constant, got: %+v", bag.Items())
	}
}

func TestForRangeBoundRejectsZero(t *testing.T) {
	prog := funcBody(forRangeStmt("i", intLit("0")))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.TypeBoundOutOfRange) {
		t.Fatalf("expected TypeBoundOutOfRange for a zero for-range bound, got: %+v", bag.Items())
	}
}

func TestForRangeBoundRejectsNegative(t *testing.T) {
	prog := funcBody(forRangeStmt("i", &astjson.Node{Kind: "unary", Op: "neg", Expr: intLit("1")}))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.TypeBoundOutOfRange) {
		t.Fatalf("expected TypeBoundOutOfRange for a negative for-range bound, got: %+v", bag.Items())
	}
}

func TestMissingReturnOnNonUnitResultReportsCtrlMissingReturn(t *testing.T) {
	prog := astjson.Program{
		Package: "test",
		Files: []astjson.ProgramFile{{
			Path: "test.rc",
			Decls: []astjson.Node{{
				Kind:   "func",
				Name:   "f",
				Result: ident("int"),
				Body:   &astjson.Node{Kind: "block", Stmts: []astjson.Node{returnStmt(nil)}},
			}},
		}},
	}
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.CtrlMissingReturn) {
		t.Fatalf("expected CtrlMissingReturn for a bare return in a function with a declared result type, got: %+v", bag.Items())
	}
}
