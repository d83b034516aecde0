package hilcore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/hilcore"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/module/testparser"
	"github.com/hilcore/hilc/internal/operator"
	"github.com/hilcore/hilc/internal/unify"
)

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func newRegistry(t *testing.T) *module.Registry {
	t.Helper()
	reg := module.NewRegistry(ast.NewContext())
	reg.RegisterParser(".hilfix", testparser.New())
	return reg
}

// runToFixedPoint drives BuildScopes/unify/Resolve the way internal/driver
// does, without pulling in the full driver so these tests stay scoped to
// the core plugin's own resolution logic.
func runToFixedPoint(t *testing.T, reg *module.Registry, plugin *hilcore.Plugin, ops *operator.Registry) {
	t.Helper()
	ctx := reg.Context()
	for i := 0; i < 64; i++ {
		if ctx.RebuildScopes {
			for _, mod := range reg.Modules() {
				if err := plugin.BuildScopes(ctx, mod); err != nil {
					t.Fatalf("BuildScopes: %v", err)
				}
			}
			ctx.RebuildScopes = false
		}
		progressed := unify.New().Run(ctx)
		for _, mod := range reg.Modules() {
			n, err := plugin.Resolve(ctx, mod)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			progressed += n
		}
		if progressed == 0 {
			return
		}
	}
	t.Fatalf("fixed point did not settle within 64 iterations")
}

func TestResolveBindsLocalNameToFunctionParam(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hilfix", `(module main
  (func add ((param a int) (param b int)) int
    (return (op + (name a) (name b)))))`)

	reg := newRegistry(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	ops := operator.NewRegistry()
	ops.Register("+", operator.Signature{
		Operands: []operator.Operand{{Type: hilcore.BuiltinInt}, {Type: hilcore.BuiltinInt}},
		Result:   hilcore.BuiltinInt,
	})
	plugin := hilcore.New(reg, ops)
	runToFixedPoint(t, reg, plugin, ops)

	mod := reg.GetModuleByPath(path)
	var opExpr *ast.Node
	ast.Accept(mod.Decl, ast.PreOrder, ast.NewFuncVisitor(func(n *ast.Node) bool {
		if n.Kind == ast.KindExprOpResolved {
			opExpr = n
		}
		return true
	}), false)
	if opExpr == nil {
		t.Fatalf("expected the + operator to resolve")
	}
	if ref := opExpr.ResolvedOperatorRef(); ref == nil || !ast.Same(ref.ResultType.Type(true), hilcore.BuiltinInt) {
		t.Fatalf("expected a+b to resolve to int, got %+v", opExpr.ResolvedOperatorRef())
	}
}

func TestResolveFollowsCrossModuleImport(t *testing.T) {
	dir := t.TempDir()
	utilPath := writeFile(t, dir, "util.hilfix", `(module util
  (global shared int (int 7)))`)
	mainPath := writeFile(t, dir, "main.hilfix", `(module main
  (import util)
  (func get () int (return (name shared))))`)

	reg := newRegistry(t)
	if _, err := reg.ParseSource(context.Background(), utilPath, ""); err != nil {
		t.Fatalf("ParseSource util: %v", err)
	}
	if _, err := reg.ParseSource(context.Background(), mainPath, ""); err != nil {
		t.Fatalf("ParseSource main: %v", err)
	}

	ops := operator.NewRegistry()
	plugin := hilcore.New(reg, ops)
	runToFixedPoint(t, reg, plugin, ops)

	errs := plugin.ValidatePost(reg.Context(), reg.GetModuleByPath(mainPath))
	if len(errs) != 0 {
		t.Fatalf("expected no unresolved names after cross-module resolve, got %v", errs)
	}
}

func TestValidatePreCatchesDuplicateParam(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.hilfix", `(module bad
  (func f ((param a int) (param a int)) int (return (name a))))`)

	reg := newRegistry(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	plugin := hilcore.New(reg, operator.NewRegistry())
	errs := plugin.ValidatePre(reg.Context(), reg.GetModuleByPath(path))
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 duplicate-parameter error, got %v", errs)
	}
}

func TestValidatePostReportsUnresolvedName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.hilfix", `(module bad
  (func f () int (return (name missing))))`)

	reg := newRegistry(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	plugin := hilcore.New(reg, operator.NewRegistry())
	mod := reg.GetModuleByPath(path)
	if err := plugin.BuildScopes(reg.Context(), mod); err != nil {
		t.Fatalf("BuildScopes: %v", err)
	}
	if _, err := plugin.Resolve(reg.Context(), mod); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	errs := plugin.ValidatePost(reg.Context(), mod)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 unresolved-name error, got %v", errs)
	}
}

func TestBuiltinSingletonsCompareSameAsFreshlyUnifiedEquivalents(t *testing.T) {
	ctx := ast.NewContext()
	freshInt, err := ast.NewIntType(ctx, 64, true)
	if err != nil {
		t.Fatalf("NewIntType: %v", err)
	}
	unify.New().Run(ctx)

	if !ast.Same(hilcore.BuiltinInt, freshInt) {
		t.Fatalf("expected hilcore.BuiltinInt to compare Same as a freshly unified int<64,s>")
	}
	if ast.Same(hilcore.BuiltinInt, hilcore.BuiltinReal) {
		t.Fatalf("expected BuiltinInt and BuiltinReal not to compare Same")
	}
}

func TestResolveUnifiesStructTypedGlobalEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hilfix", `(module main
  (type Point (struct (field x int) (field y int)))
  (global origin Point))`)

	reg := newRegistry(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	plugin := hilcore.New(reg, operator.NewRegistry())
	runToFixedPoint(t, reg, plugin, operator.NewRegistry())

	mod := reg.GetModuleByPath(path)
	if errs := plugin.ValidatePost(reg.Context(), mod); len(errs) != 0 {
		t.Fatalf("expected no unresolved names/types, got %v", errs)
	}

	var global, typeDecl *ast.Node
	for _, c := range mod.Body() {
		if c.Kind == ast.KindGlobalVar {
			global = c
		}
		if c.Kind == ast.KindTypeDecl {
			typeDecl = c
		}
	}
	if global == nil || typeDecl == nil {
		t.Fatalf("expected both a global and a type declaration in module body")
	}

	nameType := global.DeclaredType()
	if nameType.ResolvedDeclaration() == nil {
		t.Fatalf("expected the global's Point name type to resolve to the type declaration")
	}
	if !nameType.TypeData.Resolved {
		t.Fatalf("expected the resolved name type to be marked Resolved")
	}
	if !nameType.TypeData.Unification.IsSet() {
		t.Fatalf("expected the resolved name type to carry a canonical unification string")
	}
	if !ast.Same(nameType, typeDecl.DeclaredType()) {
		t.Fatalf("expected the global's type to compare Same as the struct it names")
	}
}

// opResolvedNode builds a binary operator node already past resolution
// (the shape resolveOperator leaves behind), so Optimize's fold can be
// tested without driving a full parse/resolve pipeline.
func opResolvedNode(t *testing.T, ctx *ast.Context, op string, lhs, rhs *ast.Node, resultType *ast.Node) *ast.Node {
	t.Helper()
	n, err := ast.NewUnresolvedOperator(ctx, op, []*ast.Node{lhs, rhs})
	if err != nil {
		t.Fatalf("NewUnresolvedOperator: %v", err)
	}
	n.SetResolvedOperatorRef(&ast.ResolvedOperator{
		Kind:       op,
		ResultType: ast.NewQualifiedType(resultType, ast.NonConst, ast.RHS),
	})
	n.Kind = ast.KindExprOpResolved
	return n
}

func moduleWrapping(t *testing.T, ctx *ast.Context, expr *ast.Node) *module.Module {
	t.Helper()
	ret, err := ast.NewReturnStmt(ctx, expr)
	if err != nil {
		t.Fatalf("NewReturnStmt: %v", err)
	}
	block, err := ast.NewBlockStmt(ctx, []*ast.Node{ret})
	if err != nil {
		t.Fatalf("NewBlockStmt: %v", err)
	}
	result, err := ast.NewIntType(ctx, 64, true)
	if err != nil {
		t.Fatalf("NewIntType: %v", err)
	}
	funcType, err := ast.NewFunctionType(ctx, nil, result)
	if err != nil {
		t.Fatalf("NewFunctionType: %v", err)
	}
	fn, err := ast.NewFunctionDecl(ctx, "f", ast.LinkagePublic, funcType, nil, block)
	if err != nil {
		t.Fatalf("NewFunctionDecl: %v", err)
	}
	modDecl, err := ast.NewModuleDecl(ctx, "m", ast.LinkagePublic)
	if err != nil {
		t.Fatalf("NewModuleDecl: %v", err)
	}
	if err := modDecl.AddChild(fn); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	return &module.Module{UID: module.UID{Name: "m"}, Decl: modDecl}
}

func TestOptimizeFoldsLiteralIntAddition(t *testing.T) {
	ctx := ast.NewContext()
	lhs := ast.NewIntCtor(ctx, 2, 64, true)
	rhs := ast.NewIntCtor(ctx, 3, 64, true)
	opExpr := opResolvedNode(t, ctx, "+", lhs, rhs, hilcore.BuiltinInt)
	mod := moduleWrapping(t, ctx, opExpr)

	plugin := hilcore.New(module.NewRegistry(ctx), operator.NewRegistry())
	changed, err := plugin.Optimize(ctx, mod)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !changed {
		t.Fatalf("expected Optimize to report a change")
	}
	if opExpr.Kind != ast.KindCtorInt || opExpr.Literal.(int64) != 5 {
		t.Fatalf("expected 2+3 to fold to the int literal 5, got %v %v", opExpr.Kind, opExpr.Literal)
	}
	if len(opExpr.Children) != 0 {
		t.Fatalf("expected the folded node's old operands to be detached")
	}

	again, err := plugin.Optimize(ctx, mod)
	if err != nil {
		t.Fatalf("second Optimize: %v", err)
	}
	if again {
		t.Fatalf("expected Optimize to be a no-op once nothing but literals remain")
	}
}

func TestOptimizeFoldsLiteralComparisonToBool(t *testing.T) {
	ctx := ast.NewContext()
	lhs := ast.NewIntCtor(ctx, 7, 64, true)
	rhs := ast.NewIntCtor(ctx, 3, 64, true)
	opExpr := opResolvedNode(t, ctx, ">", lhs, rhs, hilcore.BuiltinBool)
	mod := moduleWrapping(t, ctx, opExpr)

	plugin := hilcore.New(module.NewRegistry(ctx), operator.NewRegistry())
	if _, err := plugin.Optimize(ctx, mod); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if opExpr.Kind != ast.KindCtorBool || !opExpr.Literal.(bool) {
		t.Fatalf("expected 7>3 to fold to the bool literal true, got %v %v", opExpr.Kind, opExpr.Literal)
	}
}

func TestOptimizeLeavesDivisionByZeroUnfolded(t *testing.T) {
	ctx := ast.NewContext()
	lhs := ast.NewIntCtor(ctx, 7, 64, true)
	rhs := ast.NewIntCtor(ctx, 0, 64, true)
	opExpr := opResolvedNode(t, ctx, "/", lhs, rhs, hilcore.BuiltinInt)
	mod := moduleWrapping(t, ctx, opExpr)

	plugin := hilcore.New(module.NewRegistry(ctx), operator.NewRegistry())
	changed, err := plugin.Optimize(ctx, mod)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if changed {
		t.Fatalf("expected Optimize not to fold a division by zero")
	}
	if opExpr.Kind != ast.KindExprOpResolved {
		t.Fatalf("expected the unfoldable node to keep its kind, got %v", opExpr.Kind)
	}
}

func TestResolveUnifiesContainerTypedGlobalEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hilfix", `(module main
  (global items (list int)))`)

	reg := newRegistry(t)
	if _, err := reg.ParseSource(context.Background(), path, ""); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}

	plugin := hilcore.New(reg, operator.NewRegistry())
	runToFixedPoint(t, reg, plugin, operator.NewRegistry())

	mod := reg.GetModuleByPath(path)
	if errs := plugin.ValidatePost(reg.Context(), mod); len(errs) != 0 {
		t.Fatalf("expected no unresolved names/types, got %v", errs)
	}

	var global *ast.Node
	for _, c := range mod.Body() {
		if c.Kind == ast.KindGlobalVar {
			global = c
		}
	}
	if global == nil {
		t.Fatalf("expected a global declaration in module body")
	}

	listType := global.DeclaredType()
	if listType.Kind != ast.KindTypeList {
		t.Fatalf("expected the global's type to be a list, got %v", listType.Kind)
	}
	if !listType.TypeData.Unification.IsSet() {
		t.Fatalf("expected the list type to carry a canonical unification string")
	}
	if !listType.Elem().TypeData.Unification.IsSet() {
		t.Fatalf("expected the list's element type to carry a canonical unification string")
	}
}
