package idassign_test

import (
	"testing"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/idassign"
	"github.com/hilcore/hilc/internal/module"
)

func must(t *testing.T) func(*ast.Node, error) *ast.Node {
	return func(n *ast.Node, err error) *ast.Node {
		t.Helper()
		if err != nil {
			t.Fatalf("building node: %v", err)
		}
		return n
	}
}

func newModule(t *testing.T, name string, decls ...*ast.Node) *module.Module {
	t.Helper()
	ctx := ast.NewContext()
	modDecl := must(t)(ast.NewModuleDecl(ctx, name, ast.LinkagePublic))
	for _, d := range decls {
		if err := modDecl.AddChild(d); err != nil {
			t.Fatalf("AddChild: %v", err)
		}
	}
	return &module.Module{UID: module.UID{Name: name}, Decl: modDecl}
}

func TestRunAssignsFullyQualifiedAndCanonicalIDs(t *testing.T) {
	intT := must(t)(ast.NewIntType(nil, 64, true))
	g := must(t)(ast.NewGlobalVarDecl(nil, "counter", ast.LinkagePublic, intT, nil))
	mod := newModule(t, "main", g)

	a := idassign.New()
	assigned, err := a.Run(mod)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if assigned != 1 {
		t.Fatalf("expected 1 declaration assigned, got %d", assigned)
	}
	if g.Decl.FullyQualifiedID != "main::counter" {
		t.Fatalf("unexpected fully-qualified ID: %q", g.Decl.FullyQualifiedID)
	}
	if g.Decl.CanonicalID != "main::counter" {
		t.Fatalf("unexpected canonical ID: %q", g.Decl.CanonicalID)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	intT := must(t)(ast.NewIntType(nil, 64, true))
	g := must(t)(ast.NewGlobalVarDecl(nil, "x", ast.LinkagePublic, intT, nil))
	mod := newModule(t, "m", g)

	a := idassign.New()
	if _, err := a.Run(mod); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := g.Decl.CanonicalID
	assigned, err := a.Run(mod)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if assigned != 0 {
		t.Fatalf("expected no reassignment on second run, got %d", assigned)
	}
	if g.Decl.CanonicalID != before {
		t.Fatalf("canonical ID changed across idempotent re-run")
	}
}

func TestRunDisambiguatesOverloadsWithHashSuffix(t *testing.T) {
	newOverload := func() *ast.Node {
		funcType := must(t)(ast.NewFunctionType(nil, []*ast.Node{must(t)(ast.NewIntType(nil, 64, true))}, must(t)(ast.NewIntType(nil, 64, true))))
		param := must(t)(ast.NewParamDecl(nil, "a", must(t)(ast.NewIntType(nil, 64, true)), nil))
		body := must(t)(ast.NewBlockStmt(nil, nil))
		return must(t)(ast.NewFunctionDecl(nil, "f", ast.LinkagePublic, funcType, []*ast.Node{param}, body))
	}

	f1 := newOverload()
	f2 := newOverload()
	mod := newModule(t, "m", f1, f2)

	a := idassign.New()
	if _, err := a.Run(mod); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f1.Decl.FullyQualifiedID != f2.Decl.FullyQualifiedID {
		t.Fatalf("expected both overloads to share a fully-qualified ID")
	}
	if f1.Decl.CanonicalID == f2.Decl.CanonicalID {
		t.Fatalf("expected distinct canonical IDs, both got %q", f1.Decl.CanonicalID)
	}
	if f1.Decl.CanonicalID != "m::f" {
		t.Fatalf("expected first overload to keep the unsuffixed canonical ID, got %q", f1.Decl.CanonicalID)
	}
	if f2.Decl.CanonicalID != "m::f#2" {
		t.Fatalf("expected second overload to get a #2 suffix, got %q", f2.Decl.CanonicalID)
	}
}

func TestRunQualifiesNestedDeclarationsByScopePath(t *testing.T) {
	param := must(t)(ast.NewParamDecl(nil, "a", must(t)(ast.NewIntType(nil, 64, true)), nil))
	local := must(t)(ast.NewLocalVarDecl(nil, "tmp", must(t)(ast.NewIntType(nil, 64, true)), nil))
	declStmt := must(t)(ast.NewDeclStmt(nil, local))
	body := must(t)(ast.NewBlockStmt(nil, []*ast.Node{declStmt}))
	funcType := must(t)(ast.NewFunctionType(nil, []*ast.Node{must(t)(ast.NewIntType(nil, 64, true))}, must(t)(ast.NewIntType(nil, 64, true))))
	fn := must(t)(ast.NewFunctionDecl(nil, "run", ast.LinkagePublic, funcType, []*ast.Node{param}, body))
	mod := newModule(t, "m", fn)

	a := idassign.New()
	if _, err := a.Run(mod); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fn.Decl.FullyQualifiedID != "m::run" {
		t.Fatalf("unexpected function ID: %q", fn.Decl.FullyQualifiedID)
	}
	if local.Decl.FullyQualifiedID != "m::run::tmp" {
		t.Fatalf("expected local declared inside run to be scoped under it, got %q", local.Decl.FullyQualifiedID)
	}
}

func TestDebugModeDoesNotErrorOnceEveryDeclarationIsAssigned(t *testing.T) {
	intT := must(t)(ast.NewIntType(nil, 64, true))
	g := must(t)(ast.NewGlobalVarDecl(nil, "x", ast.LinkagePublic, intT, nil))
	mod := newModule(t, "m", g)

	a := idassign.New()
	a.DebugMode = true
	if _, err := a.Run(mod); err != nil {
		t.Fatalf("expected no Diverged error once every declaration is reachable, got %v", err)
	}
}

func TestAllCanonicalIDsIsSorted(t *testing.T) {
	b := must(t)(ast.NewGlobalVarDecl(nil, "b", ast.LinkagePublic, must(t)(ast.NewIntType(nil, 64, true)), nil))
	a1 := must(t)(ast.NewGlobalVarDecl(nil, "a", ast.LinkagePublic, must(t)(ast.NewIntType(nil, 64, true)), nil))
	mod := newModule(t, "m", b, a1)

	a := idassign.New()
	if _, err := a.Run(mod); err != nil {
		t.Fatalf("Run: %v", err)
	}
	ids := a.AllCanonicalIDs()
	if len(ids) != 2 || ids[0] != "m::a" || ids[1] != "m::b" {
		t.Fatalf("expected sorted [m::a m::b], got %v", ids)
	}
}
