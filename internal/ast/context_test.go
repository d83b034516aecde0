package ast_test

import (
	"testing"

	"github.com/hilcore/hilc/internal/ast"
)

func TestAdoptSubtreeTracksEveryDescendant(t *testing.T) {
	elem, err := ast.NewIntType(nil, 32, true)
	if err != nil {
		t.Fatalf("NewIntType: %v", err)
	}
	list, err := ast.NewContainerType(nil, ast.KindTypeList, elem)
	if err != nil {
		t.Fatalf("NewContainerType: %v", err)
	}

	ctx := ast.NewContext()
	before := len(ctx.AllNodes())
	ctx.AdoptSubtree(list)

	all := ctx.AllNodes()
	if len(all) != before+2 {
		t.Fatalf("expected 2 newly tracked nodes, got %d", len(all)-before)
	}
	var sawList, sawElem bool
	for _, n := range all {
		if n == list {
			sawList = true
		}
		if n == elem {
			sawElem = true
		}
	}
	if !sawList || !sawElem {
		t.Fatalf("expected both the container and its element to be tracked")
	}
	if list.Context() != ctx || elem.Context() != ctx {
		t.Fatalf("expected adopted nodes to report ctx as their Context()")
	}
}

func TestAdoptSubtreeIsIdempotent(t *testing.T) {
	n, err := ast.NewPrimitiveType(nil, ast.KindTypeBool)
	if err != nil {
		t.Fatalf("NewPrimitiveType: %v", err)
	}
	ctx := ast.NewContext()
	ctx.AdoptSubtree(n)
	countAfterFirst := len(ctx.AllNodes())
	ctx.AdoptSubtree(n)
	if len(ctx.AllNodes()) != countAfterFirst {
		t.Fatalf("expected re-adopting an already-tracked node to be a no-op")
	}
}

func TestAdoptSubtreeLetsUnifierReachExternallyBuiltNodes(t *testing.T) {
	// Mirrors what module.Registry.addModuleToAST does for a tree built by
	// a SourceParser with no *ast.Context of its own.
	a, err := ast.NewIntType(nil, 64, true)
	if err != nil {
		t.Fatalf("NewIntType: %v", err)
	}
	ctx := ast.NewContext()
	if err := ctx.Root().AddChild(a); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	ctx.AdoptSubtree(a)

	if a.TypeData.Unification.IsSet() {
		t.Fatalf("sanity check failed: node should start unset")
	}
	found := false
	for _, n := range ctx.AllNodes() {
		if n == a {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected externally-built node to be reachable via ctx.AllNodes after adoption")
	}
}
