package sema

import (
	"testing"

	"rc/internal/astjson"
	"rc/internal/diag"
)

func instanceDecl(name, component string, args ...astjson.Node) astjson.Node {
	return astjson.Node{Kind: "instance", Name: name, Component: ident(component), Args: args}
}

func initializerDecl(params []astjson.Node, stmts ...astjson.Node) astjson.Node {
	return astjson.Node{Kind: "initializer", Params: params, Body: &astjson.Node{Kind: "block", Stmts: stmts}}
}

func paramDecl(name, typ string) astjson.Node {
	return astjson.Node{Kind: "param", Name: name, Type: ident(typ)}
}

func bareComponent(name string) astjson.Node {
	return astjson.Node{
		Kind:   "component",
		Name:   name,
		Fields: []astjson.Node{{Kind: "field", Name: "n", Type: ident("int")}},
	}
}

func TestInstanceWithNoInitializerAcceptsNoArgs(t *testing.T) {
	comp := bareComponent("Widget")
	prog := programWithDecls(comp, instanceDecl("w", "Widget"))
	bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("expected a bare instance of a component with no initializer to check cleanly, got: %+v", bag.Items())
	}
}

func TestInstanceWithNoInitializerRejectsArgs(t *testing.T) {
	comp := bareComponent("Widget")
	prog := programWithDecls(comp, instanceDecl("w", "Widget", *intLit("1")))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.KindNoInitializer) {
		t.Fatalf("expected KindNoInitializer for an instance supplying arguments to an initializer-less component, got: %+v", bag.Items())
	}
}

func TestInstanceMatchesSingleInitializerByArity(t *testing.T) {
	comp := bareComponent("Widget")
	comp.Initializers = []astjson.Node{initializerDecl([]astjson.Node{paramDecl("x", "int")})}
	prog := programWithDecls(comp, instanceDecl("w", "Widget", *intLit("5")))
	bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("expected an instance matching its single initializer's arity to check cleanly, got: %+v", bag.Items())
	}
}

func TestInstanceWrongNumberOfInitializersWhenArityDoesNotMatch(t *testing.T) {
	comp := bareComponent("Widget")
	comp.Initializers = []astjson.Node{initializerDecl([]astjson.Node{paramDecl("x", "int")})}
	prog := programWithDecls(comp, instanceDecl("w", "Widget", *intLit("1"), *intLit("2")))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.KindWrongNumberOfInitializers) {
		t.Fatalf("expected KindWrongNumberOfInitializers for an instance whose argument count matches no initializer, got: %+v", bag.Items())
	}
}

func TestInstanceWrongNumberOfInitializersWhenArityIsAmbiguous(t *testing.T) {
	comp := bareComponent("Widget")
	comp.Initializers = []astjson.Node{
		initializerDecl([]astjson.Node{paramDecl("x", "int")}),
		initializerDecl([]astjson.Node{paramDecl("y", "int")}),
	}
	prog := programWithDecls(comp, instanceDecl("w", "Widget", *intLit("1")))
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.KindWrongNumberOfInitializers) {
		t.Fatalf("expected KindWrongNumberOfInitializers when two initializers accept the same argument count, got: %+v", bag.Items())
	}
}

func TestResolveStructDetectsDirectSelfCycle(t *testing.T) {
	structA := astjson.Node{Kind: "struct", Name: "A", Fields: []astjson.Node{
		{Kind: "field", Name: "x", Type: ident("A")},
	}}
	prog := programWithDecls(structA)
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.TypeRecursive) {
		t.Fatalf("expected TypeRecursive for a struct field recursing into its own type, got: %+v", bag.Items())
	}
}

func TestResolveStructDetectsIndirectCycle(t *testing.T) {
	structA := astjson.Node{Kind: "struct", Name: "A", Fields: []astjson.Node{
		{Kind: "field", Name: "b", Type: ident("B")},
	}}
	structB := astjson.Node{Kind: "struct", Name: "B", Fields: []astjson.Node{
		{Kind: "field", Name: "a", Type: ident("A")},
	}}
	prog := programWithDecls(structA, structB)
	bag := checkProgram(t, prog)
	if !hasCode(bag, diag.TypeRecursive) {
		t.Fatalf("expected TypeRecursive for a two-struct cycle resolved in either declaration order, got: %+v", bag.Items())
	}
}

func TestResolveStructAllowsSharedNonCyclicReference(t *testing.T) {
	structC := astjson.Node{Kind: "struct", Name: "C", Fields: []astjson.Node{
		{Kind: "field", Name: "n", Type: ident("int")},
	}}
	structA := astjson.Node{Kind: "struct", Name: "A", Fields: []astjson.Node{
		{Kind: "field", Name: "c1", Type: ident("C")},
	}}
	structB := astjson.Node{Kind: "struct", Name: "B", Fields: []astjson.Node{
		{Kind: "field", Name: "c2", Type: ident("C")},
	}}
	prog := programWithDecls(structA, structB, structC)
	bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("expected two structs sharing a common, non-cyclic field type to check cleanly, got: %+v", bag.Items())
	}
}
