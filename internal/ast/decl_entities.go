package ast

// This file provides constructors for the declaration subkinds named in
// spec.md §3: module, type declaration, global/local variable, parameter,
// constant, function, struct/union field, enum label, expression alias.
//
// Every declaration's Children[0] is its declared type (or nil if the
// type is to be inferred); Children[1], where applicable, is its
// initializer/body.

const (
	declSlotType = 0
	declSlotInit = 1
)

func newVarLikeDecl(ctx *Context, kind Kind, id string, linkage Linkage, declType, init *Node) (*Node, error) {
	n, err := NewDeclaration(ctx, kind, id, linkage)
	if err != nil {
		return nil, err
	}
	if err := n.SetChild(declSlotType, declType); err != nil {
		return nil, err
	}
	if init != nil {
		if err := n.SetChild(declSlotInit, init); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// NewGlobalVarDecl builds `global|public T id = init;`.
func NewGlobalVarDecl(ctx *Context, id string, linkage Linkage, declType, init *Node) (*Node, error) {
	return newVarLikeDecl(ctx, KindGlobalVar, id, linkage, declType, init)
}

// NewLocalVarDecl builds a local `local T id = init;`.
func NewLocalVarDecl(ctx *Context, id string, declType, init *Node) (*Node, error) {
	return newVarLikeDecl(ctx, KindLocalVar, id, LinkagePrivate, declType, init)
}

// NewConstDecl builds `const T id = init;`.
func NewConstDecl(ctx *Context, id string, linkage Linkage, declType, init *Node) (*Node, error) {
	return newVarLikeDecl(ctx, KindConstDecl, id, linkage, declType, init)
}

// NewParamDecl builds a function/catch parameter declaration.
func NewParamDecl(ctx *Context, id string, declType, defaultVal *Node) (*Node, error) {
	return newVarLikeDecl(ctx, KindParam, id, LinkagePrivate, declType, defaultVal)
}

// DeclaredType returns a declaration's type child (slot 0), possibly nil
// when the type is to be inferred from the initializer.
func (n *Node) DeclaredType() *Node { return n.Child(declSlotType) }

// SetDeclaredType overwrites a declaration's type slot, used by the
// resolver once an inferred type has been computed.
func (n *Node) SetDeclaredType(t *Node) error { return n.SetChild(declSlotType, t) }

// Initializer returns a declaration's initializer/default child (slot
// 1), or nil.
func (n *Node) Initializer() *Node { return n.Child(declSlotInit) }

// NewFieldDecl builds a struct/union field declaration.
func NewFieldDecl(ctx *Context, id string, declType *Node) (*Node, error) {
	return newVarLikeDecl(ctx, KindFieldDecl, id, LinkageStruct, declType, nil)
}

// NewEnumLabel builds one enum label, with an explicit or auto-assigned
// ordinal value stored in Literal.
func NewEnumLabel(ctx *Context, id string, ordinal int64) (*Node, error) {
	n, err := NewDeclaration(ctx, KindEnumLabel, id, LinkageStruct)
	if err != nil {
		return nil, err
	}
	n.Literal = ordinal
	return n, nil
}

// NewExprAlias builds `expr id = value;` (an expression alias
// declaration, spec.md §3 subkinds).
func NewExprAlias(ctx *Context, id string, value *Node) (*Node, error) {
	return newVarLikeDecl(ctx, KindExprAliasDec, id, LinkagePrivate, nil, value)
}

// NewTypeDecl builds `type id = underlying;`. The underlying type is
// slot 0, same convention as every other declaration, so Follow's
// `target.Child(0)` works uniformly across type declarations.
func NewTypeDecl(ctx *Context, id string, linkage Linkage, underlying *Node) (*Node, error) {
	n, err := NewDeclaration(ctx, KindTypeDecl, id, linkage)
	if err != nil {
		return nil, err
	}
	if err := n.SetChild(declSlotType, underlying); err != nil {
		return nil, err
	}
	if underlying != nil && underlying.TypeData != nil {
		underlying.TypeData.DeclRef = n
	}
	return n, nil
}

// Underlying returns a type declaration's underlying type.
func (n *Node) Underlying() *Node { return n.Child(declSlotType) }

const funcSlotBody = 1

// NewFunctionDecl builds `function id(params...) : result { body }`.
// The function's own type (parameters + result) lives at slot 0 as a
// type.func node; its body is slot 1. Additional parameter *declarations*
// (distinct from the type's bare parameter types) are appended from
// Children[2:] so name lookup inside the body resolves to them.
func NewFunctionDecl(ctx *Context, id string, linkage Linkage, funcType *Node, params []*Node, body *Node) (*Node, error) {
	n, err := NewDeclaration(ctx, KindFuncDecl, id, linkage)
	if err != nil {
		return nil, err
	}
	if err := n.SetChild(declSlotType, funcType); err != nil {
		return nil, err
	}
	if err := n.SetChild(funcSlotBody, body); err != nil {
		return nil, err
	}
	for _, p := range params {
		if err := n.AddChild(p); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// FuncType returns a function declaration's signature type.
func (n *Node) FuncType() *Node { return n.Child(declSlotType) }

// FuncBody returns a function declaration's body, or nil for a
// declaration-only prototype.
func (n *Node) FuncBody() *Node { return n.Child(funcSlotBody) }

// FuncParams returns a function declaration's parameter declarations.
func (n *Node) FuncParams() []*Node {
	if len(n.Children) <= 2 {
		return nil
	}
	return n.Children[2:]
}

// NewModuleDecl builds the declaration wrapper for a module's top-level
// entry in the AST context root (spec.md §3 "Module" subkind).
func NewModuleDecl(ctx *Context, id string, linkage Linkage) (*Node, error) {
	return NewDeclaration(ctx, KindModuleDecl, id, linkage)
}
