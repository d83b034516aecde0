package unify_test

import (
	"testing"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/unify"
)

func mustNode(t *testing.T) func(*ast.Node, error) *ast.Node {
	return func(n *ast.Node, err error) *ast.Node {
		t.Helper()
		if err != nil {
			t.Fatalf("building node: %v", err)
		}
		return n
	}
}

func TestRunStampsPrimitivesAndIntegers(t *testing.T) {
	ctx := ast.NewContext()
	boolT := mustNode(t)(ast.NewPrimitiveType(ctx, ast.KindTypeBool))
	i32 := mustNode(t)(ast.NewIntType(ctx, 32, true))
	u8 := mustNode(t)(ast.NewIntType(ctx, 8, false))

	unify.New().Run(ctx)

	if !boolT.TypeData.Unification.IsSet() || boolT.TypeData.Unification.String() != string(ast.KindTypeBool) {
		t.Fatalf("bool canonical = %q", boolT.TypeData.Unification.String())
	}
	if i32.TypeData.Unification.String() != "int<32,s>" {
		t.Fatalf("i32 canonical = %q", i32.TypeData.Unification.String())
	}
	if u8.TypeData.Unification.String() != "int<8,u>" {
		t.Fatalf("u8 canonical = %q", u8.TypeData.Unification.String())
	}
}

func TestRunIsIdempotentAcrossCalls(t *testing.T) {
	ctx := ast.NewContext()
	i64 := mustNode(t)(ast.NewIntType(ctx, 64, true))

	u := unify.New()
	if progressed := u.Run(ctx); progressed != 1 {
		t.Fatalf("expected 1 node unified on first run, got %d", progressed)
	}
	before := i64.TypeData.Unification.String()
	if progressed := u.Run(ctx); progressed != 0 {
		t.Fatalf("expected 0 progress on second run, got %d", progressed)
	}
	if i64.TypeData.Unification.String() != before {
		t.Fatalf("canonical string changed across idempotent re-run")
	}
}

func TestRunTwoStructurallyEqualIntsUnifyEqual(t *testing.T) {
	ctx := ast.NewContext()
	a := mustNode(t)(ast.NewIntType(ctx, 64, true))
	b := mustNode(t)(ast.NewIntType(ctx, 64, true))

	unify.New().Run(ctx)

	if !ast.Same(a, b) {
		t.Fatalf("expected two separately-built int<64,s> nodes to be Same")
	}
}

func TestRunContainerRecursesIntoElement(t *testing.T) {
	ctx := ast.NewContext()
	elem := mustNode(t)(ast.NewIntType(ctx, 32, true))
	list := mustNode(t)(ast.NewContainerType(ctx, ast.KindTypeList, elem))

	unify.New().Run(ctx)

	want := "type.listint<32,s>"
	if got := list.TypeData.Unification.String(); got != want {
		t.Fatalf("list canonical = %q, want %q", got, want)
	}
}

func TestRunStructUnifiesNominallyByName(t *testing.T) {
	ctx := ast.NewContext()
	a := mustNode(t)(ast.NewStructType(ctx, "Point"))
	b := mustNode(t)(ast.NewStructType(ctx, "Point"))
	c := mustNode(t)(ast.NewStructType(ctx, "Other"))

	unify.New().Run(ctx)

	if !ast.Same(a, b) {
		t.Fatalf("expected two struct types named Point to be Same")
	}
	if ast.Same(a, c) {
		t.Fatalf("expected differently-named struct types not to be Same")
	}
}

func TestRunDefersUnresolvedNameType(t *testing.T) {
	ctx := ast.NewContext()
	nameT := mustNode(t)(ast.NewNameType(ctx, "Missing"))

	u := unify.New()
	progressed := u.Run(ctx)

	if progressed != 0 {
		t.Fatalf("expected no progress on an unresolved name type, got %d", progressed)
	}
	if nameT.TypeData.Unification.IsSet() {
		t.Fatalf("expected unresolved name type to remain unset")
	}
}

func TestRunFollowsResolvedNameTypeToTarget(t *testing.T) {
	ctx := ast.NewContext()
	target := mustNode(t)(ast.NewIntType(ctx, 64, true))
	decl := mustNode(t)(ast.NewTypeDecl(ctx, "MyInt", ast.LinkagePublic, target))
	nameT := mustNode(t)(ast.NewNameType(ctx, "MyInt"))
	nameT.SetResolvedDeclaration(decl)

	unify.New().Run(ctx)

	// ast.Same follows a resolved Name chain to its target before ever
	// consulting the Name node's own Unification, so comparisons against
	// it work once the target itself has unified.
	if !ast.Same(nameT, target) {
		t.Fatalf("expected name type to compare Same as its resolved target")
	}
}
