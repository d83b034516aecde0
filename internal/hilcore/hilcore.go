// Package hilcore implements the core HIL driver.Plugin: scope building
// and name/operator resolution for the general-purpose language itself,
// as opposed to internal/spd's SPD-specific lowering. It is the plugin
// that makes spec.md §4.4's buildScopes/resolve steps concrete, the way
// the teacher's internal/parser.Visitor implementations make its own
// Node tree walkable — generalized here into the driver's plugin
// contract instead of a one-shot pass.
package hilcore

import (
	"fmt"

	"github.com/hilcore/hilc/internal/ast"
	"github.com/hilcore/hilc/internal/module"
	"github.com/hilcore/hilc/internal/operator"
)

// Plugin is the core HIL language plugin: every module registered with
// the driver gets scopes built and names/operators resolved by this
// plugin, regardless of which other plugins (e.g. spd) also run over it.
type Plugin struct {
	Registry  *module.Registry
	Operators *operator.Registry
}

// New creates the core plugin bound to reg (for cross-module import
// resolution) and ops (for operator overload resolution).
func New(reg *module.Registry, ops *operator.Registry) *Plugin {
	return &Plugin{Registry: reg, Operators: ops}
}

// Name implements driver.Plugin.
func (p *Plugin) Name() string { return "hil" }

// BuildScopes implements driver.Plugin: it (re)builds the scope chain
// for mod's entire body from scratch. Called whenever ast.Context.RebuildScopes
// is set, so it must be idempotent and safe to re-run after new
// modules/declarations have been added (spec.md §4.3/§4.8).
func (p *Plugin) BuildScopes(ctx *ast.Context, mod *module.Module) error {
	moduleScope := mod.Decl.EnsureScope(nil)
	for _, decl := range mod.Body() {
		declareInto(moduleScope, decl)
	}
	for _, decl := range mod.Body() {
		buildNestedScopes(decl, moduleScope)
	}
	return nil
}

// isContainer reports whether n owns its own scope (spec.md §3: module,
// struct, function, block).
func isContainer(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindModuleDecl, ast.KindTypeStruct, ast.KindFuncDecl, ast.KindStmtBlock:
		return true
	default:
		return false
	}
}

// declareInto binds decl's own name into scope, if it is a declaration.
// A block statement's local declarations are wrapped in a KindStmtDecl
// carrier node; declareInto unwraps that carrier to reach the actual
// declaration through the carrier's InnerDecl accessor.
func declareInto(scope *ast.Scope, decl *ast.Node) {
	if decl == nil {
		return
	}
	if decl.Kind == ast.KindStmtDecl {
		decl = decl.InnerDecl()
	}
	if decl == nil || decl.Decl == nil {
		return
	}
	scope.Declare(decl.Decl.ID, decl)
}

// buildNestedScopes recurses into n's children, creating a fresh scope
// for every container node it finds and declaring that container's
// direct member declarations into it.
func buildNestedScopes(n *ast.Node, parentScope *ast.Scope) {
	if n == nil {
		return
	}
	scope := parentScope
	if isContainer(n) {
		scope = n.EnsureScope(parentScope)
		for _, c := range n.ChildrenOf(false) {
			declareInto(scope, c)
		}
	}
	for _, c := range n.ChildrenOf(false) {
		buildNestedScopes(c, scope)
	}
}

// enclosingScope finds the nearest scope reachable from n by walking up
// the parent chain, used by Resolve to look a bare name up from wherever
// it was referenced.
func enclosingScope(n *ast.Node) *ast.Scope {
	for cur := n; cur != nil; cur = cur.Parent {
		if s := cur.Scope(); s != nil {
			return s
		}
	}
	return nil
}

// Resolve implements driver.Plugin: it matches every still-unresolved
// name expression/name type to a declaration, preferring local scope,
// falling back to declarations exported by the module's imports.
func (p *Plugin) Resolve(ctx *ast.Context, mod *module.Module) (int, error) {
	progressed := 0
	for _, decl := range mod.Body() {
		ast.Accept(decl, ast.PreOrder, ast.NewFuncVisitor(func(n *ast.Node) bool {
			switch n.Kind {
			case ast.KindExprName, ast.KindTypeName:
				if n.ResolvedDeclaration() != nil {
					return true
				}
				if target := p.lookupName(mod, n); target != nil {
					n.SetResolvedDeclaration(target)
					progressed++
				}
			case ast.KindExprOpUnres:
				if n.ResolvedOperatorRef() != nil {
					return true
				}
				if p.resolveOperator(n) {
					progressed++
				}
			}
			return true
		}), false)
	}
	return progressed, nil
}

// lookupName resolves a bare name first in n's local scope chain, then
// against every module mod imports (spec.md §4.3 "modules report which
// other modules they import").
func (p *Plugin) lookupName(mod *module.Module, n *ast.Node) *ast.Node {
	if scope := enclosingScope(n); scope != nil {
		if d := scope.Lookup(n.Name); d != nil {
			return d
		}
	}
	if p.Registry == nil {
		return nil
	}
	for _, imp := range mod.Imports() {
		dep := p.Registry.GetModuleByPath(imp)
		if dep == nil {
			// Imports are recorded by name, not path; fall back to a
			// linear scan over registered modules sharing that name.
			for _, m := range p.Registry.Modules() {
				if m.UID.Name == imp {
					dep = m
					break
				}
			}
		}
		if dep == nil || dep.Decl.Scope() == nil {
			continue
		}
		if d, ok := dep.Decl.Scope().LookupLocal(n.Name); ok {
			return d
		}
	}
	return nil
}

// resolveOperator resolves one unresolved operator expression against
// p.Operators, using each operand's declared/resolved type.
func (p *Plugin) resolveOperator(n *ast.Node) bool {
	if p.Operators == nil {
		return false
	}
	operands := n.Operands()
	types := make([]*ast.Node, len(operands))
	consts := make([]ast.Constness, len(operands))
	for i, o := range operands {
		t := exprType(o)
		if t == nil {
			return false // an operand's type isn't known yet; retry later
		}
		types[i] = t
		consts[i] = ast.NonConst
	}
	sig, _, err := p.Operators.Resolve(n, n.Op, types, consts)
	if err != nil {
		// Leave unresolved; the driver surfaces this as a diagnostic once
		// the fixed point settles without further progress.
		return false
	}
	n.SetResolvedOperatorRef(&ast.ResolvedOperator{
		Kind:       n.Op,
		ResultType: ast.NewQualifiedType(sig.Result, ast.NonConst, ast.RHS),
	})
	n.Kind = ast.KindExprOpResolved
	return true
}

// exprType returns the best-effort static type of a resolved expression,
// covering the constructs the operator resolver needs to see through: a
// resolved name's declared type, a member's field type, a cast's target
// type. Expressions whose type can't yet be determined return nil so
// callers can retry on a later round.
func exprType(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindExprName:
		decl := n.ResolvedDeclaration()
		if decl == nil {
			return nil
		}
		return decl.DeclaredType()
	case ast.KindExprMember:
		base := exprType(n.Base())
		if base == nil {
			return nil
		}
		resolved := ast.Follow(base)
		if resolved == nil {
			return nil
		}
		for _, f := range resolved.Fields() {
			if f.Decl != nil && f.Decl.ID == n.Name {
				return f.DeclaredType()
			}
		}
		return nil
	case ast.KindExprCast:
		return n.CastTarget()
	case ast.KindExprOpResolved:
		if ref := n.ResolvedOperatorRef(); ref != nil {
			return ref.ResultType.Type(true)
		}
		return nil
	case ast.KindCtorBool:
		return BuiltinBool
	case ast.KindCtorInt:
		return BuiltinInt
	case ast.KindCtorReal:
		return BuiltinReal
	case ast.KindCtorString:
		return BuiltinString
	default:
		return nil
	}
}

// Builtin{Bool,Int,Real,String} are the primitive type singletons every
// literal constructor's static type resolves to; service.RegisterBuiltinOperators
// reuses them directly so the operand types registered for "+"/"<"/...
// are the exact same nodes exprType returns for a literal, rather than a
// structurally-equal-but-distinct copy. They are never attached to any
// ast.Context and never visited by the real unifier.
var (
	BuiltinBool   *ast.Node
	BuiltinInt    *ast.Node
	BuiltinReal   *ast.Node
	BuiltinString *ast.Node
)

func init() {
	BuiltinBool, _ = ast.NewPrimitiveType(nil, ast.KindTypeBool)
	BuiltinInt, _ = ast.NewIntType(nil, 64, true)
	BuiltinReal, _ = ast.NewRealType(nil, 64)
	BuiltinString, _ = ast.NewPrimitiveType(nil, ast.KindTypeString)
	// These singletons are never tracked by an ast.Context, so the
	// unifier's ctx.AllNodes() walk never reaches them; stamp the same
	// canonical string it would compute so ast.Same still sees them as
	// resolved types instead of permanently "not yet unified".
	stampBuiltinUnification(BuiltinBool, string(ast.KindTypeBool))
	stampBuiltinUnification(BuiltinInt, "int<64,s>")
	stampBuiltinUnification(BuiltinReal, "real<64>")
	stampBuiltinUnification(BuiltinString, string(ast.KindTypeString))
}

func stampBuiltinUnification(n *ast.Node, canonical string) {
	n.TypeData.Unification = ast.SetUnification(canonical)
}

// ValidatePre implements driver.Plugin: no-name-collisions-in-one-scope
// check (spec.md §8 property 2's precondition).
func (p *Plugin) ValidatePre(ctx *ast.Context, mod *module.Module) []error {
	var errs []error
	ast.Accept(mod.Decl, ast.PreOrder, ast.NewFuncVisitor(func(n *ast.Node) bool {
		if n.Kind == ast.KindFuncDecl {
			seen := make(map[string]bool)
			for _, param := range n.FuncParams() {
				if param.Decl == nil {
					continue
				}
				if seen[param.Decl.ID] {
					errs = append(errs, fmt.Errorf("%s: duplicate parameter %q", n, param.Decl.ID))
				}
				seen[param.Decl.ID] = true
			}
		}
		return true
	}), false)
	return errs
}

// ValidatePost implements driver.Plugin: every name/type reference must
// have resolved by the time the fixed point settles.
func (p *Plugin) ValidatePost(ctx *ast.Context, mod *module.Module) []error {
	var errs []error
	ast.Accept(mod.Decl, ast.PreOrder, ast.NewFuncVisitor(func(n *ast.Node) bool {
		if (n.Kind == ast.KindExprName || n.Kind == ast.KindTypeName) && n.ResolvedDeclaration() == nil {
			errs = append(errs, fmt.Errorf("%s: unresolved name %q", n, n.Name))
		}
		return true
	}), false)
	return errs
}

// Transform implements driver.Plugin. Core HIL has nothing to lower;
// lowering is an extension concern (internal/spd).
func (p *Plugin) Transform(ctx *ast.Context, mod *module.Module) (bool, error) { return false, nil }

// Optimize implements driver.Plugin: constant folding over already-resolved
// operator expressions (spec.md §4.8 step 6). Only binary int/real/bool
// literal operands are folded; anything else is left for a later round, or
// forever if it never becomes literal.
func (p *Plugin) Optimize(ctx *ast.Context, mod *module.Module) (bool, error) {
	changed := false
	ast.Accept(mod.Decl, ast.PreOrder, ast.NewFuncVisitor(func(n *ast.Node) bool {
		if n.Kind == ast.KindExprOpResolved && foldConstantOp(n) {
			changed = true
		}
		return true
	}), false)
	return changed, nil
}

// foldConstantOp rewrites n in place into a literal ctor node if n is a
// binary operator over two already-literal operands, returning whether it
// did so. n keeps its position in the tree; only its Kind/Literal/Children
// change, matching the in-place rewrite resolveOperator already performs
// when it turns a plain op node into a KindExprOpResolved one.
func foldConstantOp(n *ast.Node) bool {
	operands := n.Operands()
	if len(operands) != 2 {
		return false
	}
	lhs, rhs := operands[0], operands[1]
	if lhs.Kind != rhs.Kind {
		return false
	}
	switch lhs.Kind {
	case ast.KindCtorInt:
		l, lok := lhs.Literal.(int64)
		r, rok := rhs.Literal.(int64)
		if !lok || !rok {
			return false
		}
		return foldIntOp(n, lhs, l, r)
	case ast.KindCtorReal:
		l, lok := lhs.Literal.(float64)
		r, rok := rhs.Literal.(float64)
		if !lok || !rok {
			return false
		}
		return foldRealOp(n, l, r)
	case ast.KindCtorBool:
		l, lok := lhs.Literal.(bool)
		r, rok := rhs.Literal.(bool)
		if !lok || !rok {
			return false
		}
		return foldBoolOp(n, l, r)
	default:
		return false
	}
}

func foldIntOp(n, lhs *ast.Node, l, r int64) bool {
	width, signed := 64, true
	if w, ok := lhs.Property("width"); ok {
		width, _ = w.(int)
	}
	if s, ok := lhs.Property("signed"); ok {
		signed, _ = s.(bool)
	}
	switch n.Op {
	case "+":
		return rewriteAsIntCtor(n, l+r, width, signed)
	case "-":
		return rewriteAsIntCtor(n, l-r, width, signed)
	case "*":
		return rewriteAsIntCtor(n, l*r, width, signed)
	case "/":
		if r == 0 {
			return false // defer to runtime: don't fold a division by zero
		}
		return rewriteAsIntCtor(n, l/r, width, signed)
	case "%":
		if r == 0 {
			return false
		}
		return rewriteAsIntCtor(n, l%r, width, signed)
	case "==":
		return rewriteAsBoolCtor(n, l == r)
	case "!=":
		return rewriteAsBoolCtor(n, l != r)
	case "<":
		return rewriteAsBoolCtor(n, l < r)
	case "<=":
		return rewriteAsBoolCtor(n, l <= r)
	case ">":
		return rewriteAsBoolCtor(n, l > r)
	case ">=":
		return rewriteAsBoolCtor(n, l >= r)
	default:
		return false
	}
}

func foldRealOp(n *ast.Node, l, r float64) bool {
	switch n.Op {
	case "+":
		return rewriteAsRealCtor(n, l+r)
	case "-":
		return rewriteAsRealCtor(n, l-r)
	case "*":
		return rewriteAsRealCtor(n, l*r)
	case "/":
		if r == 0 {
			return false
		}
		return rewriteAsRealCtor(n, l/r)
	case "==":
		return rewriteAsBoolCtor(n, l == r)
	case "!=":
		return rewriteAsBoolCtor(n, l != r)
	case "<":
		return rewriteAsBoolCtor(n, l < r)
	case "<=":
		return rewriteAsBoolCtor(n, l <= r)
	case ">":
		return rewriteAsBoolCtor(n, l > r)
	case ">=":
		return rewriteAsBoolCtor(n, l >= r)
	default:
		return false
	}
}

func foldBoolOp(n *ast.Node, l, r bool) bool {
	switch n.Op {
	case "&&":
		return rewriteAsBoolCtor(n, l && r)
	case "||":
		return rewriteAsBoolCtor(n, l || r)
	case "==":
		return rewriteAsBoolCtor(n, l == r)
	case "!=":
		return rewriteAsBoolCtor(n, l != r)
	default:
		return false
	}
}

// rewriteAsIntCtor/rewriteAsRealCtor/rewriteAsBoolCtor turn n into a leaf
// literal node of the folded value, detaching its former operands.
func rewriteAsIntCtor(n *ast.Node, v int64, width int, signed bool) bool {
	n.RemoveChildren(0)
	n.Op = ""
	n.SetResolvedOperatorRef(nil)
	n.Kind = ast.KindCtorInt
	n.Literal = v
	n.SetProperty("width", width)
	n.SetProperty("signed", signed)
	return true
}

func rewriteAsRealCtor(n *ast.Node, v float64) bool {
	n.RemoveChildren(0)
	n.Op = ""
	n.SetResolvedOperatorRef(nil)
	n.Kind = ast.KindCtorReal
	n.Literal = v
	return true
}

func rewriteAsBoolCtor(n *ast.Node, v bool) bool {
	n.RemoveChildren(0)
	n.Op = ""
	n.SetResolvedOperatorRef(nil)
	n.Kind = ast.KindCtorBool
	n.Literal = v
	return true
}
