package testparser

import (
	"context"
	"strings"
	"testing"

	"github.com/hilcore/hilc/internal/ast"
)

func TestParseModuleWithGlobalsTypesAndFunc(t *testing.T) {
	src := `(module geom
  (import spd_rt)
  (type point (struct (field x real) (field y real)))
  (global origin point)
  (func add ((param a int) (param b int)) int
    (return (op + (name a) (name b)))))`

	parsed, err := New().Parse(context.Background(), "geom.hilfix", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Decl.Decl == nil || parsed.Decl.Decl.ID != "geom" {
		t.Fatalf("expected module decl named geom, got %+v", parsed.Decl.Decl)
	}
	if len(parsed.Imports) != 1 || parsed.Imports[0] != "spd_rt" {
		t.Fatalf("expected imports [spd_rt], got %v", parsed.Imports)
	}
	if len(parsed.Decl.Children) != 3 {
		t.Fatalf("expected 3 top-level decls (type, global, func), got %d", len(parsed.Decl.Children))
	}

	typeDecl, global, fn := parsed.Decl.Children[0], parsed.Decl.Children[1], parsed.Decl.Children[2]
	if typeDecl.Kind != ast.KindTypeDecl || typeDecl.Decl.ID != "point" {
		t.Fatalf("expected type decl point, got %+v", typeDecl)
	}
	st := typeDecl.Underlying()
	if st.Kind != ast.KindTypeStruct || len(st.Fields()) != 2 {
		t.Fatalf("expected struct type with 2 fields, got %+v", st)
	}

	if global.Kind != ast.KindGlobalVar || global.Decl.ID != "origin" {
		t.Fatalf("expected global var origin, got %+v", global)
	}

	if fn.Kind != ast.KindFuncDecl || fn.Decl.ID != "add" {
		t.Fatalf("expected func decl add, got %+v", fn)
	}
	if len(fn.FuncParams()) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.FuncParams()))
	}
	body := fn.FuncBody()
	if body == nil || len(body.Children) != 1 {
		t.Fatalf("expected func body with one return statement, got %+v", body)
	}
	ret := body.Children[0]
	if ret.Kind != ast.KindStmtReturn {
		t.Fatalf("expected return statement, got kind %v", ret.Kind)
	}
	opExpr := ret.Child(0)
	if opExpr.Kind != ast.KindExprOpUnres || opExpr.Op != "+" {
		t.Fatalf("expected unresolved + operator, got %+v", opExpr)
	}
	if len(opExpr.Operands()) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(opExpr.Operands()))
	}
}

func TestParseTwoCharOperators(t *testing.T) {
	src := `(module cmp
  (func lte ((param a int) (param b int)) bool
    (return (op <= (name a) (name b)))))`

	parsed, err := New().Parse(context.Background(), "cmp.hilfix", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := parsed.Decl.Children[0]
	ret := fn.FuncBody().Children[0]
	opExpr := ret.Child(0)
	if opExpr.Op != "<=" {
		t.Fatalf("expected <= operator, got %q", opExpr.Op)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	src := `(module broken (global)`
	if _, err := New().Parse(context.Background(), "broken.hilfix", strings.NewReader(src)); err == nil {
		t.Fatalf("expected a parse error for malformed input")
	}
}

func TestParseLocalVarStatement(t *testing.T) {
	src := `(module locals
  (func compute () int
    (local x int (int 42))
    (return (name x))))`

	parsed, err := New().Parse(context.Background(), "locals.hilfix", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	body := parsed.Decl.Children[0].FuncBody()
	if len(body.Children) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(body.Children))
	}
	if body.Children[0].Kind != ast.KindStmtDecl {
		t.Fatalf("expected first statement to be a decl carrier, got %v", body.Children[0].Kind)
	}
	inner := body.Children[0].InnerDecl()
	if inner == nil || inner.Decl.ID != "x" {
		t.Fatalf("expected inner decl x, got %+v", inner)
	}
}
